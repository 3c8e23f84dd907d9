package detect

import (
	"gocv.io/x/gocv"
	"gonum.org/v1/gonum/mat"
)

// rotationMatrix converts a 3x1 rotation vector Mat, whose direction is the
// rotation axis and length is the rotation angle in radians, to a 3x3
// rotation matrix using OpenCV's Rodrigues transform
func rotationMatrix(rvec gocv.Mat) *mat.Dense {

	dst := gocv.NewMat()
	defer dst.Close()

	gocv.Rodrigues(rvec, &dst)

	rot := mat.NewDense(3, 3, nil)

	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			rot.Set(i, j, dst.GetDoubleAt(i, j))
		}
	}

	return rot
}
