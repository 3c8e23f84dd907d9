package jointtrack

import (
	"gonum.org/v1/gonum/mat"
	"math"
)

// GimbalThreshold is the value of rotation matrix element m10 above which
// (or below its negative) the conversion treats the rotation as being at
// the north (or south) pole singularity.  The magnitude was chosen
// empirically and is kept so output matches earlier recordings.
const GimbalThreshold = 0.998

// Orientation is a rotation expressed as X-Y-Z Tait-Bryan angles in degrees
type Orientation struct {
	Bank     float64
	Heading  float64
	Attitude float64
}

// OrientationSample is the orientation of a marker slot.  Present is false
// when the slot was empty in the frame
type OrientationSample struct {
	Orientation
	Present bool
}

// ToOrientation converts a 3x3 rotation matrix to bank, heading and attitude.
// The matrix is assumed to be orthonormal.
func ToOrientation(r mat.Matrix) Orientation {

	m10 := r.At(1, 0)

	var bank, heading, attitude float64

	switch {
	case m10 > GimbalThreshold:
		// singularity at north pole
		bank = 0
		attitude = math.Pi / 2
		heading = math.Atan2(r.At(0, 2), r.At(2, 2))

	case m10 < -GimbalThreshold:
		// singularity at south pole
		bank = 0
		attitude = -math.Pi / 2
		heading = math.Atan2(r.At(0, 2), r.At(2, 2))

	default:
		bank = math.Atan2(-r.At(1, 2), r.At(1, 1))
		attitude = math.Asin(m10)
		heading = math.Atan2(-r.At(2, 0), r.At(0, 0))
	}

	return Orientation{
		Bank:     radToDeg(bank),
		Heading:  radToDeg(heading),
		Attitude: radToDeg(attitude),
	}
}

// Orientations converts the rotation of every filled slot
func Orientations(slots JointSlots) []OrientationSample {

	samples := make([]OrientationSample, len(slots))

	for i, slot := range slots {
		if !slot.Filled || slot.Rotation == nil {
			continue
		}

		samples[i] = OrientationSample{
			Orientation: ToOrientation(slot.Rotation),
			Present:     true,
		}
	}

	return samples
}
