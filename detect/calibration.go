package detect

import (
	"fmt"
	"gocv.io/x/gocv"
)

// Calibration holds the camera intrinsic parameters
type Calibration struct {
	CameraMatrix Matrix `yaml:"camera_matrix"`
	DistCoeffs   Matrix `yaml:"distortion_coefficients"`
}

// LoadCalibration reads the camera matrix and distortion coefficients from an
// OpenCV camera calibration file
func LoadCalibration(file string) (*Calibration, error) {

	c := &Calibration{}

	if err := readFileStorage(file, c); err != nil {
		return nil, err
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid camera file %s: %w", file, err)
	}

	return c, nil
}

// Validate checks the calibration has a 3x3 camera matrix and a row or
// column of distortion coefficients
func (c *Calibration) Validate() error {

	if err := c.CameraMatrix.validate("camera_matrix"); err != nil {
		return err
	}

	if c.CameraMatrix.Rows != 3 || c.CameraMatrix.Cols != 3 {
		return fmt.Errorf("camera_matrix must be 3x3, got %dx%d",
			c.CameraMatrix.Rows, c.CameraMatrix.Cols)
	}

	if err := c.DistCoeffs.validate("distortion_coefficients"); err != nil {
		return err
	}

	if c.DistCoeffs.Rows != 1 && c.DistCoeffs.Cols != 1 {
		return fmt.Errorf("distortion_coefficients must be a vector, got %dx%d",
			c.DistCoeffs.Rows, c.DistCoeffs.Cols)
	}

	return nil
}

// Mats returns the camera matrix and distortion coefficients as GoCV Mats.
// The caller must Close them.
func (c *Calibration) Mats() (gocv.Mat, gocv.Mat) {
	return toMat(c.CameraMatrix), toMat(c.DistCoeffs)
}

// toMat copies a FileStorage matrix into a 64 bit float Mat
func toMat(m Matrix) gocv.Mat {

	out := gocv.NewMatWithSize(m.Rows, m.Cols, gocv.MatTypeCV64F)

	for i := 0; i < m.Rows; i++ {
		for j := 0; j < m.Cols; j++ {
			out.SetDoubleAt(i, j, m.At(i, j))
		}
	}

	return out
}
