package jointtrack

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Observation is a single marker detected in the current frame with its
// estimated pose relative to the camera
type Observation struct {
	// ID is the marker identity from the ArUco dictionary
	ID int
	// Rotation is the 3x3 orthonormal rotation matrix of the marker
	Rotation mat.Matrix
	// Translation is the position of the marker center in camera coordinates
	Translation r3.Vec
}

// Slot is a position in the joint chain.  Filled is false when no marker
// with the slots ID was seen in the current frame
type Slot struct {
	Filled      bool
	Translation r3.Vec
	Rotation    mat.Matrix
}

// JointSlots is the ordered chain of marker slots for a single frame
type JointSlots []Slot

// NumSlots returns the number of marker slots needed to track the given
// number of joints
func NumSlots(numJoints int) int {
	return numJoints + 2
}

// Aggregate projects the markers observed in a frame onto the joint chain.
// The result always has NumSlots(numJoints) entries.  Observations with an ID
// outside the chain are ignored and if an ID is seen more than once the last
// observation wins.
func Aggregate(obs []Observation, numJoints int) JointSlots {

	if numJoints < 0 {
		return JointSlots{}
	}

	slots := make(JointSlots, NumSlots(numJoints))

	for _, o := range obs {
		if o.ID < 0 || o.ID >= len(slots) {
			continue
		}

		slots[o.ID] = Slot{
			Filled:      true,
			Translation: o.Translation,
			Rotation:    o.Rotation,
		}
	}

	return slots
}

// Filled returns the number of slots that have a marker in them
func (s JointSlots) Filled() int {

	cnt := 0

	for _, slot := range s {
		if slot.Filled {
			cnt++
		}
	}

	return cnt
}
