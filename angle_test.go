package jointtrack

import (
	"math"
	"testing"
)

// almostEqual checks if two float64 values are approximately equal
func almostEqual(a, b, tolerance float64) bool {
	return math.Abs(a-b) <= tolerance
}

func TestAngleAt(t *testing.T) {

	tests := []struct {
		name     string
		obs      []Observation
		expected float64
	}{
		{
			name:     "straight",
			obs:      []Observation{obsAt(0, -1, 0, 0), obsAt(1, 0, 0, 0), obsAt(2, 1, 0, 0)},
			expected: 180,
		},
		{
			name:     "folded",
			obs:      []Observation{obsAt(0, 1, 0, 0), obsAt(1, 0, 0, 0), obsAt(2, 2, 0, 0)},
			expected: 0,
		},
		{
			name:     "right angle",
			obs:      []Observation{obsAt(0, 0, 1, 0), obsAt(1, 0, 0, 0), obsAt(2, 1, 0, 0)},
			expected: 90,
		},
		{
			name:     "offset vertex",
			obs:      []Observation{obsAt(0, 1, 1, 1), obsAt(1, 1, 1, 2), obsAt(2, 2, 1, 3)},
			expected: 135,
		},
		{
			name: "unordered",
			obs: []Observation{obsAt(2, 0.1, 0.1, 0.5), obsAt(0, 0.1, 0.2, 0.5),
				obsAt(1, 0.2, 0.1, 0.5)},
			expected: 45,
		},
	}

	for _, tc := range tests {
		slots := Aggregate(tc.obs, 1)
		angle := AngleAt(slots, 0)

		if !angle.Detected {
			t.Errorf("%s: expected joint to be detected", tc.name)
			continue
		}

		if !almostEqual(angle.Value, tc.expected, 1e-6) {
			t.Errorf("%s: expected angle %f, got %f", tc.name, tc.expected, angle.Value)
		}

		if angle.Value < 0 || angle.Value > 180 {
			t.Errorf("%s: angle %f out of range", tc.name, angle.Value)
		}
	}
}

func TestAngleAtMissingSlot(t *testing.T) {

	full := []Observation{obsAt(0, -1, 0, 0), obsAt(1, 0, 0, 0), obsAt(2, 0, 1, 0)}

	// remove each of the three required markers in turn
	for missing := 0; missing < 3; missing++ {
		var obs []Observation

		for _, o := range full {
			if o.ID != missing {
				obs = append(obs, o)
			}
		}

		angle := AngleAt(Aggregate(obs, 1), 0)

		if angle.Detected {
			t.Errorf("marker %d missing: expected joint not detected, got %f",
				missing, angle.Value)
		}
	}
}

func TestAngleAtDegenerate(t *testing.T) {

	// slot 0 at the same position as the vertex
	obs := []Observation{obsAt(0, 1, 1, 1), obsAt(1, 1, 1, 1), obsAt(2, 0, 1, 0)}

	angle := AngleAt(Aggregate(obs, 1), 0)

	if angle.Detected {
		t.Errorf("zero length arm should not be detected, got %f", angle.Value)
	}

	if !math.IsNaN(angle.Value) {
		t.Errorf("expected NaN sentinel, got %f", angle.Value)
	}
}

func TestAngleAtIndexOutOfRange(t *testing.T) {

	slots := Aggregate([]Observation{obsAt(0, -1, 0, 0), obsAt(1, 0, 0, 0),
		obsAt(2, 1, 0, 0)}, 1)

	for _, i := range []int{-1, 1, 5} {
		if AngleAt(slots, i).Detected {
			t.Errorf("joint %d should not be detected", i)
		}
	}
}

func TestAnglesChain(t *testing.T) {

	// slots 0..3 for two joints, slot 3 missing
	obs := []Observation{obsAt(0, -1, 0, 0), obsAt(1, 0, 0, 0), obsAt(2, 0, 1, 0)}

	angles := Angles(Aggregate(obs, 2), 2)

	if len(angles) != 2 {
		t.Fatalf("expected 2 angles, got %d", len(angles))
	}

	if !angles[0].Detected || !almostEqual(angles[0].Value, 90, 1e-6) {
		t.Errorf("joint 0: expected 90 degrees, got %+v", angles[0])
	}

	if angles[1].Detected {
		t.Errorf("joint 1: expected not detected, got %+v", angles[1])
	}
}
