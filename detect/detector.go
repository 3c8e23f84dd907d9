package detect

import (
	"errors"
	"fmt"
	"github.com/swdee/go-jointtrack"
	"gocv.io/x/gocv"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// solvePnPIPPESquare is OpenCV's SOLVEPNP_IPPE_SQUARE flag, for pose
// estimation of a square planar marker
const solvePnPIPPESquare = 7

// Detector finds ArUco markers in an image and estimates the pose of each
// one relative to the camera
type Detector struct {
	aruco        gocv.ArucoDetector
	camMatrix    gocv.Mat
	distCoeffs   gocv.Mat
	markerLength float64
	// objPoints are the marker corners in the marker coordinate system
	objPoints []gocv.Point3f
}

// NewDetector returns a Detector for markers from the given dictionary with
// side length markerLength in meters
func NewDetector(dictionary gocv.ArucoDictionaryCode, params *DetectorParams,
	calib *Calibration, markerLength float64) (*Detector, error) {

	if markerLength <= 0 {
		return nil, fmt.Errorf("%w: %g", jointtrack.ErrMarkerLength, markerLength)
	}

	if calib == nil {
		return nil, errors.New("camera calibration is required")
	}

	if err := calib.Validate(); err != nil {
		return nil, err
	}

	if params == nil {
		params = &DetectorParams{}
	}

	d := &Detector{
		aruco: gocv.NewArucoDetectorWithParams(
			gocv.GetPredefinedDictionary(dictionary), params.ArucoParams()),
		markerLength: markerLength,
		objPoints:    markerObjectPoints(markerLength),
	}

	d.camMatrix, d.distCoeffs = calib.Mats()

	return d, nil
}

// markerObjectPoints returns the four corners of a square marker centered on
// the origin in the order ArUco reports detected corners
func markerObjectPoints(length float64) []gocv.Point3f {

	half := float32(length / 2)

	return []gocv.Point3f{
		{X: -half, Y: half, Z: 0},
		{X: half, Y: half, Z: 0},
		{X: half, Y: -half, Z: 0},
		{X: -half, Y: -half, Z: 0},
	}
}

// Detect finds the markers in the image and returns their pose.  Markers
// whose pose can not be estimated are left out.
func (d *Detector) Detect(img gocv.Mat) ([]jointtrack.Observation, error) {

	if img.Empty() {
		return nil, nil
	}

	corners, ids, _ := d.aruco.DetectMarkers(img)

	if len(ids) == 0 {
		return nil, nil
	}

	if len(corners) != len(ids) {
		return nil, fmt.Errorf("detector returned %d corner sets for %d markers",
			len(corners), len(ids))
	}

	objPoints := gocv.NewPoint3fVectorFromPoints(d.objPoints)
	defer objPoints.Close()

	obs := make([]jointtrack.Observation, 0, len(ids))

	for i, id := range ids {
		rot, tvec, ok := d.estimatePose(objPoints, corners[i])

		if !ok {
			continue
		}

		obs = append(obs, jointtrack.Observation{
			ID:          id,
			Rotation:    rot,
			Translation: tvec,
		})
	}

	return obs, nil
}

// estimatePose solves the pose of a single marker from its image corners,
// returning its rotation matrix and translation in the camera frame
func (d *Detector) estimatePose(objPoints gocv.Point3fVector,
	corners []gocv.Point2f) (*mat.Dense, r3.Vec, bool) {

	imgPoints := gocv.NewPoint2fVectorFromPoints(corners)
	defer imgPoints.Close()

	rvec := gocv.NewMat()
	defer rvec.Close()
	tvec := gocv.NewMat()
	defer tvec.Close()

	if !gocv.SolvePnP(objPoints, imgPoints, d.camMatrix, d.distCoeffs,
		&rvec, &tvec, false, solvePnPIPPESquare) {
		return nil, r3.Vec{}, false
	}

	return rotationMatrix(rvec), matToVec(tvec), true
}

// matToVec reads a 3x1 double Mat as a vector
func matToVec(m gocv.Mat) r3.Vec {
	return r3.Vec{
		X: m.GetDoubleAt(0, 0),
		Y: m.GetDoubleAt(1, 0),
		Z: m.GetDoubleAt(2, 0),
	}
}

// MarkerLength returns the marker side length in meters
func (d *Detector) MarkerLength() float64 {
	return d.markerLength
}

// Close frees the OpenCV resources held by the Detector
func (d *Detector) Close() error {
	d.aruco.Close()

	if err := d.camMatrix.Close(); err != nil {
		return err
	}

	return d.distCoeffs.Close()
}
