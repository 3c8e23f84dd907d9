package detect

import (
	"gocv.io/x/gocv"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
	"math"
	"testing"
)

// matricesEqual compare matrices
func matricesEqual(a, b mat.Matrix, epsilon float64) bool {
	r1, c1 := a.Dims()
	r2, c2 := b.Dims()

	if r1 != r2 || c1 != c2 {
		return false
	}

	for i := 0; i < r1; i++ {
		for j := 0; j < c1; j++ {
			if diff := a.At(i, j) - b.At(i, j); diff > epsilon || diff < -epsilon {
				return false
			}
		}
	}

	return true
}

// vecMat returns v as a 3x1 double Mat.  The caller must Close it.
func vecMat(v r3.Vec) gocv.Mat {

	m := gocv.NewMatWithSize(3, 1, gocv.MatTypeCV64F)
	m.SetDoubleAt(0, 0, v.X)
	m.SetDoubleAt(1, 0, v.Y)
	m.SetDoubleAt(2, 0, v.Z)

	return m
}

func TestRotationMatrix(t *testing.T) {

	c30, s30 := math.Cos(math.Pi/6), math.Sin(math.Pi/6)

	tests := []struct {
		name     string
		rvec     r3.Vec
		expected *mat.Dense
	}{
		{
			name: "zero",
			rvec: r3.Vec{},
			expected: mat.NewDense(3, 3, []float64{
				1, 0, 0,
				0, 1, 0,
				0, 0, 1,
			}),
		},
		{
			name: "x 90",
			rvec: r3.Vec{X: math.Pi / 2},
			expected: mat.NewDense(3, 3, []float64{
				1, 0, 0,
				0, 0, -1,
				0, 1, 0,
			}),
		},
		{
			name: "y 180",
			rvec: r3.Vec{Y: math.Pi},
			expected: mat.NewDense(3, 3, []float64{
				-1, 0, 0,
				0, 1, 0,
				0, 0, -1,
			}),
		},
		{
			name: "z 30",
			rvec: r3.Vec{Z: math.Pi / 6},
			expected: mat.NewDense(3, 3, []float64{
				c30, -s30, 0,
				s30, c30, 0,
				0, 0, 1,
			}),
		},
	}

	for _, tc := range tests {
		rvec := vecMat(tc.rvec)
		rot := rotationMatrix(rvec)
		rvec.Close()

		if !matricesEqual(rot, tc.expected, 1e-9) {
			t.Errorf("%s: expected %v, got %v", tc.name,
				mat.Formatted(tc.expected, mat.Prefix(""), mat.Excerpt(0)),
				mat.Formatted(rot, mat.Prefix(""), mat.Excerpt(0)),
			)
		}
	}
}

func TestRotationMatrixOrthonormal(t *testing.T) {

	rvec := vecMat(r3.Vec{X: 0.3, Y: -1.2, Z: 0.7})
	defer rvec.Close()

	rot := rotationMatrix(rvec)

	var prod mat.Dense
	prod.Mul(rot.T(), rot)

	ident := mat.NewDense(3, 3, []float64{1, 0, 0, 0, 1, 0, 0, 0, 1})

	if !matricesEqual(&prod, ident, 1e-9) {
		t.Errorf("R'R is not identity: %v", mat.Formatted(&prod, mat.Prefix(""), mat.Excerpt(0)))
	}

	if det := mat.Det(rot); math.Abs(det-1) > 1e-9 {
		t.Errorf("expected determinant 1, got %f", det)
	}
}
