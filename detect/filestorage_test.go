package detect

import (
	"os"
	"path/filepath"
	"testing"
)

const calibrationYAML = `%YAML:1.0
---
calibration_time: "Wed 08 Jun 2022 11:27:17 AM CDT"
image_width: 640
image_height: 480
flags: 0
camera_matrix: !!opencv-matrix
   rows: 3
   cols: 3
   dt: d
   data: [ 6.1390318111815361e+02, 0., 3.1683291259005829e+02, 0.,
       6.1421458612785123e+02, 2.4064566548089387e+02, 0., 0., 1. ]
distortion_coefficients: !!opencv-matrix
   rows: 1
   cols: 5
   dt: d
   data: [ 1.2318460433398633e-01, -6.8235473404934216e-01,
       -1.0512367893221582e-03, 2.1547539209069218e-03,
       9.4735104117549106e-01 ]
avg_reprojection_error: 1.8209898015468751e-01
`

const detectorYAML = `%YAML:1.0
adaptiveThreshWinSizeMin: 3
adaptiveThreshWinSizeMax: 23
adaptiveThreshWinSizeStep: 10
adaptiveThreshConstant: 7
minMarkerPerimeterRate: 0.03
maxMarkerPerimeterRate: 4.0
polygonalApproxAccuracyRate: 0.05
minCornerDistanceRate: 10.0
minDistanceToBorder: 3
minMarkerDistanceRate: 0.05
cornerRefinementMethod: 1
cornerRefinementWinSize: 5
cornerRefinementMaxIterations: 30
cornerRefinementMinAccuracy: 0.1
markerBorderBits: 1
perspectiveRemovePixelPerCell: 8
perspectiveRemoveIgnoredMarginPerCell: 0.13
maxErroneousBitsInBorderRate: 0.04
minOtsuStdDev: 5.0
errorCorrectionRate: 0.6
`

// writeTemp writes content to a file in a temporary directory
func writeTemp(t *testing.T, name, content string) string {
	t.Helper()

	file := filepath.Join(t.TempDir(), name)

	if err := os.WriteFile(file, []byte(content), 0644); err != nil {
		t.Fatalf("error writing %s: %v", name, err)
	}

	return file
}

func TestLoadCalibration(t *testing.T) {

	calib, err := LoadCalibration(writeTemp(t, "camera.yml", calibrationYAML))

	if err != nil {
		t.Fatalf("error loading calibration: %v", err)
	}

	cm := calib.CameraMatrix

	if cm.Rows != 3 || cm.Cols != 3 || len(cm.Data) != 9 {
		t.Fatalf("unexpected camera matrix %+v", cm)
	}

	if cm.At(0, 0) != 6.1390318111815361e+02 || cm.At(1, 2) != 2.4064566548089387e+02 ||
		cm.At(2, 2) != 1 {
		t.Errorf("unexpected camera matrix values %v", cm.Data)
	}

	if len(calib.DistCoeffs.Data) != 5 || calib.DistCoeffs.At(0, 4) != 9.4735104117549106e-01 {
		t.Errorf("unexpected distortion coefficients %+v", calib.DistCoeffs)
	}
}

func TestLoadCalibrationInvalid(t *testing.T) {

	tests := []struct {
		name    string
		content string
	}{
		{"missing matrix", "%YAML:1.0\nimage_width: 640\n"},
		{"wrong size", `%YAML:1.0
camera_matrix: !!opencv-matrix
   rows: 2
   cols: 2
   dt: d
   data: [ 1., 0., 0., 1. ]
distortion_coefficients: !!opencv-matrix
   rows: 1
   cols: 1
   dt: d
   data: [ 0. ]
`},
		{"short data", `%YAML:1.0
camera_matrix: !!opencv-matrix
   rows: 3
   cols: 3
   dt: d
   data: [ 1., 0., 0. ]
`},
		{"not yaml", "%YAML:1.0\ncamera_matrix: [1, 2\n"},
	}

	for _, tc := range tests {
		if _, err := LoadCalibration(writeTemp(t, "camera.yml", tc.content)); err == nil {
			t.Errorf("%s: expected error", tc.name)
		}
	}

	if _, err := LoadCalibration(filepath.Join(t.TempDir(), "missing.yml")); err == nil {
		t.Errorf("missing file: expected error")
	}
}

func TestLoadDetectorParams(t *testing.T) {

	p, err := LoadDetectorParams(writeTemp(t, "detector.yml", detectorYAML))

	if err != nil {
		t.Fatalf("error loading detector params: %v", err)
	}

	if p.AdaptiveThreshWinSizeMax == nil || *p.AdaptiveThreshWinSizeMax != 23 {
		t.Errorf("unexpected adaptiveThreshWinSizeMax %v", p.AdaptiveThreshWinSizeMax)
	}

	if p.ErrorCorrectionRate == nil || *p.ErrorCorrectionRate != 0.6 {
		t.Errorf("unexpected errorCorrectionRate %v", p.ErrorCorrectionRate)
	}

	if p.RefinementMethod() != CornerRefineSubpix {
		t.Errorf("expected subpixel refinement, got %d", p.RefinementMethod())
	}

	if err := p.OverrideCornerRefinement(CornerRefineAprilTag); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if p.RefinementMethod() != CornerRefineAprilTag {
		t.Errorf("expected override to AprilTag refinement, got %d", p.RefinementMethod())
	}

	if err := p.OverrideCornerRefinement(4); err == nil {
		t.Errorf("expected error for unknown refinement method")
	}
}

func TestLoadDetectorParamsPartial(t *testing.T) {

	p, err := LoadDetectorParams(writeTemp(t, "detector.yml", "%YAML:1.0\nmarkerBorderBits: 2\n"))

	if err != nil {
		t.Fatalf("error loading detector params: %v", err)
	}

	if p.MarkerBorderBits == nil || *p.MarkerBorderBits != 2 {
		t.Errorf("unexpected markerBorderBits %v", p.MarkerBorderBits)
	}

	if p.MinOtsuStdDev != nil || p.RefinementMethod() != CornerRefineNone {
		t.Errorf("unset parameters should be left nil: %+v", p)
	}

	if _, err := LoadDetectorParams(writeTemp(t, "bad.yml", "cornerRefinementMethod: 9\n")); err == nil {
		t.Errorf("expected error for unknown refinement method")
	}
}

func TestParseDictionary(t *testing.T) {

	tests := []struct {
		input    string
		expected int
		hasError bool
	}{
		{"0", 0, false},
		{"20", 20, false},
		{"DICT_6X6_250", 10, false},
		{"dict_aruco_original", 16, false},
		{"DICT_APRILTAG_36h11", 20, false},
		{"21", 0, true},
		{"-1", 0, true},
		{"DICT_9X9_50", 0, true},
	}

	for _, tc := range tests {
		code, err := ParseDictionary(tc.input)

		if tc.hasError {
			if err == nil {
				t.Errorf("%q: expected error", tc.input)
			}
			continue
		}

		if err != nil {
			t.Errorf("%q: unexpected error: %v", tc.input, err)
			continue
		}

		if int(code) != tc.expected {
			t.Errorf("%q: expected code %d, got %d", tc.input, tc.expected, code)
		}
	}
}
