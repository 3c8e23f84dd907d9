package detect

import (
	"gocv.io/x/gocv"
)

// DetectorParams are the ArUco marker detector parameters that can be set
// from a detector parameters file.  Parameters not given in the file are
// left at the OpenCV defaults.
type DetectorParams struct {
	AdaptiveThreshWinSizeMin              *int     `yaml:"adaptiveThreshWinSizeMin"`
	AdaptiveThreshWinSizeMax              *int     `yaml:"adaptiveThreshWinSizeMax"`
	AdaptiveThreshWinSizeStep             *int     `yaml:"adaptiveThreshWinSizeStep"`
	AdaptiveThreshConstant                *float64 `yaml:"adaptiveThreshConstant"`
	MinMarkerPerimeterRate                *float64 `yaml:"minMarkerPerimeterRate"`
	MaxMarkerPerimeterRate                *float64 `yaml:"maxMarkerPerimeterRate"`
	PolygonalApproxAccuracyRate           *float64 `yaml:"polygonalApproxAccuracyRate"`
	MinCornerDistanceRate                 *float64 `yaml:"minCornerDistanceRate"`
	MinDistanceToBorder                   *int     `yaml:"minDistanceToBorder"`
	MinMarkerDistanceRate                 *float64 `yaml:"minMarkerDistanceRate"`
	CornerRefinementMethod                *int     `yaml:"cornerRefinementMethod"`
	CornerRefinementWinSize               *int     `yaml:"cornerRefinementWinSize"`
	CornerRefinementMaxIterations         *int     `yaml:"cornerRefinementMaxIterations"`
	CornerRefinementMinAccuracy           *float64 `yaml:"cornerRefinementMinAccuracy"`
	MarkerBorderBits                      *int     `yaml:"markerBorderBits"`
	PerspectiveRemovePixelPerCell         *int     `yaml:"perspectiveRemovePixelPerCell"`
	PerspectiveRemoveIgnoredMarginPerCell *float64 `yaml:"perspectiveRemoveIgnoredMarginPerCell"`
	MaxErroneousBitsInBorderRate          *float64 `yaml:"maxErroneousBitsInBorderRate"`
	MinOtsuStdDev                         *float64 `yaml:"minOtsuStdDev"`
	ErrorCorrectionRate                   *float64 `yaml:"errorCorrectionRate"`
}

// LoadDetectorParams reads detector parameters from an OpenCV FileStorage
// file
func LoadDetectorParams(file string) (*DetectorParams, error) {

	p := &DetectorParams{}

	if err := readFileStorage(file, p); err != nil {
		return nil, err
	}

	if p.CornerRefinementMethod != nil {
		if err := ValidCornerRefinement(*p.CornerRefinementMethod); err != nil {
			return nil, err
		}
	}

	return p, nil
}

// OverrideCornerRefinement replaces the corner refinement method read from
// file with the given method
func (p *DetectorParams) OverrideCornerRefinement(method int) error {

	if err := ValidCornerRefinement(method); err != nil {
		return err
	}

	p.CornerRefinementMethod = &method

	return nil
}

// RefinementMethod returns the corner refinement method that will be used
func (p *DetectorParams) RefinementMethod() int {

	if p.CornerRefinementMethod == nil {
		return CornerRefineNone
	}

	return *p.CornerRefinementMethod
}

// ArucoParams creates GoCV detector parameters with the values set
func (p *DetectorParams) ArucoParams() gocv.ArucoDetectorParameters {

	ap := gocv.NewArucoDetectorParameters()

	setInt(p.AdaptiveThreshWinSizeMin, ap.SetAdaptiveThreshWinSizeMin)
	setInt(p.AdaptiveThreshWinSizeMax, ap.SetAdaptiveThreshWinSizeMax)
	setInt(p.AdaptiveThreshWinSizeStep, ap.SetAdaptiveThreshWinSizeStep)
	setFloat(p.AdaptiveThreshConstant, ap.SetAdaptiveThreshConstant)
	setFloat(p.MinMarkerPerimeterRate, ap.SetMinMarkerPerimeterRate)
	setFloat(p.MaxMarkerPerimeterRate, ap.SetMaxMarkerPerimeterRate)
	setFloat(p.PolygonalApproxAccuracyRate, ap.SetPolygonalApproxAccuracyRate)
	setFloat(p.MinCornerDistanceRate, ap.SetMinCornerDistanceRate)
	setInt(p.MinDistanceToBorder, ap.SetMinDistanceToBorder)
	setFloat(p.MinMarkerDistanceRate, ap.SetMinMarkerDistanceRate)
	setInt(p.CornerRefinementMethod, ap.SetCornerRefinementMethod)
	setInt(p.CornerRefinementWinSize, ap.SetCornerRefinementWinSize)
	setInt(p.CornerRefinementMaxIterations, ap.SetCornerRefinementMaxIterations)
	setFloat(p.CornerRefinementMinAccuracy, ap.SetCornerRefinementMinAccuracy)
	setInt(p.MarkerBorderBits, ap.SetMarkerBorderBits)
	setInt(p.PerspectiveRemovePixelPerCell, ap.SetPerspectiveRemovePixelPerCell)
	setFloat(p.PerspectiveRemoveIgnoredMarginPerCell, ap.SetPerspectiveRemoveIgnoredMarginPerCell)
	setFloat(p.MaxErroneousBitsInBorderRate, ap.SetMaxErroneousBitsInBorderRate)
	setFloat(p.MinOtsuStdDev, ap.SetMinOtsuStdDev)
	setFloat(p.ErrorCorrectionRate, ap.SetErrorCorrectionRate)

	return ap
}

func setInt(v *int, set func(int)) {
	if v != nil {
		set(*v)
	}
}

func setFloat(v *float64, set func(float64)) {
	if v != nil {
		set(*v)
	}
}
