package jointtrack

import (
	"gonum.org/v1/gonum/spatial/r3"
	"math"
)

// JointAngle is the bend angle of a joint in degrees.  Value is only
// meaningful when Detected is true
type JointAngle struct {
	Value    float64
	Detected bool
}

// notDetected is returned when a joint angle can not be calculated
var notDetected = JointAngle{Value: math.NaN(), Detected: false}

// AngleAt calculates the angle of joint i, which is the angle at the vertex
// slot i+1 between the arms to slots i and i+2.  The joint is reported as
// not detected if any of its three slots are empty or an arm has zero length.
func AngleAt(slots JointSlots, i int) JointAngle {

	if i < 0 || i+2 >= len(slots) {
		return notDetected
	}

	if !slots[i].Filled || !slots[i+1].Filled || !slots[i+2].Filled {
		return notDetected
	}

	vertex := slots[i+1].Translation
	v1 := r3.Sub(slots[i].Translation, vertex)
	v2 := r3.Sub(slots[i+2].Translation, vertex)

	n1 := r3.Norm(v1)
	n2 := r3.Norm(v2)

	if n1 == 0 || n2 == 0 {
		return notDetected
	}

	// clamp as rounding can push collinear vectors just outside acos domain
	cos := r3.Dot(v1, v2) / (n1 * n2)
	cos = math.Max(-1, math.Min(1, cos))

	return JointAngle{
		Value:    radToDeg(math.Acos(cos)),
		Detected: true,
	}
}

// Angles calculates the angle of every joint in the chain
func Angles(slots JointSlots, numJoints int) []JointAngle {

	if numJoints < 0 {
		return nil
	}

	angles := make([]JointAngle, numJoints)

	for i := range angles {
		angles[i] = AngleAt(slots, i)
	}

	return angles
}

// radToDeg converts radians to degrees
func radToDeg(rad float64) float64 {
	return rad * 180.0 / math.Pi
}
