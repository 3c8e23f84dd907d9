package detect

import (
	"fmt"
	"gocv.io/x/gocv"
	"strconv"
	"strings"
)

// dictionaryNames maps the OpenCV predefined dictionary names to their codes
var dictionaryNames = map[string]gocv.ArucoDictionaryCode{
	"DICT_4X4_50":         gocv.ArucoDict4x4_50,
	"DICT_4X4_100":        gocv.ArucoDict4x4_100,
	"DICT_4X4_250":        gocv.ArucoDict4x4_250,
	"DICT_4X4_1000":       gocv.ArucoDict4x4_1000,
	"DICT_5X5_50":         gocv.ArucoDict5x5_50,
	"DICT_5X5_100":        gocv.ArucoDict5x5_100,
	"DICT_5X5_250":        gocv.ArucoDict5x5_250,
	"DICT_5X5_1000":       gocv.ArucoDict5x5_1000,
	"DICT_6X6_50":         gocv.ArucoDict6x6_50,
	"DICT_6X6_100":        gocv.ArucoDict6x6_100,
	"DICT_6X6_250":        gocv.ArucoDict6x6_250,
	"DICT_6X6_1000":       gocv.ArucoDict6x6_1000,
	"DICT_7X7_50":         gocv.ArucoDict7x7_50,
	"DICT_7X7_100":        gocv.ArucoDict7x7_100,
	"DICT_7X7_250":        gocv.ArucoDict7x7_250,
	"DICT_7X7_1000":       gocv.ArucoDict7x7_1000,
	"DICT_ARUCO_ORIGINAL": gocv.ArucoDictArucoOriginal,
	"DICT_APRILTAG_16H5":  gocv.ArucoDictAprilTag_16h5,
	"DICT_APRILTAG_25H9":  gocv.ArucoDictAprilTag_25h9,
	"DICT_APRILTAG_36H10": gocv.ArucoDictAprilTag_36h10,
	"DICT_APRILTAG_36H11": gocv.ArucoDictAprilTag_36h11,
}

// ParseDictionary returns the ArUco dictionary given either its OpenCV
// numeric code, eg: "0", or its name, eg: "DICT_4X4_50"
func ParseDictionary(s string) (gocv.ArucoDictionaryCode, error) {

	s = strings.TrimSpace(s)

	if code, err := strconv.Atoi(s); err == nil {
		if code < int(gocv.ArucoDict4x4_50) || code > int(gocv.ArucoDictAprilTag_36h11) {
			return 0, fmt.Errorf("unknown dictionary code: %d", code)
		}
		return gocv.ArucoDictionaryCode(code), nil
	}

	if code, ok := dictionaryNames[strings.ToUpper(s)]; ok {
		return code, nil
	}

	return 0, fmt.Errorf("unknown dictionary: %s", s)
}

// Corner refinement methods, matching the OpenCV CORNER_REFINE_* values
const (
	CornerRefineNone     = 0
	CornerRefineSubpix   = 1
	CornerRefineContour  = 2
	CornerRefineAprilTag = 3
)

// ValidCornerRefinement checks the corner refinement method is one OpenCV
// knows about
func ValidCornerRefinement(method int) error {

	if method < CornerRefineNone || method > CornerRefineAprilTag {
		return fmt.Errorf("unknown corner refinement method: %d", method)
	}

	return nil
}
