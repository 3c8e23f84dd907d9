package jointtrack

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrNilSink is returned when a Tracker is created without a RowSink
	ErrNilSink = errors.New("row sink is nil")
)

// Frame holds the results calculated for a single video frame
type Frame struct {
	Elapsed      time.Duration
	Slots        JointSlots
	Angles       []JointAngle
	Orientations []OrientationSample
}

// Row formats the frame results for output
func (f *Frame) Row() Row {
	return Serialize(f.Elapsed, f.Angles, f.Orientations)
}

// Tracker runs the per frame pipeline of projecting markers onto the joint
// chain, calculating joint angles and marker orientations, and writing
// sampled frames to the sink.  It is not safe for concurrent use.
type Tracker struct {
	numJoints int
	sampler   *Sampler
	sink      RowSink
	// rows is the number of rows written to the sink
	rows int
}

// NewTracker returns a Tracker for the given number of joints writing a row
// to sink at most once per interval
func NewTracker(numJoints int, interval time.Duration,
	sink RowSink) (*Tracker, error) {

	if numJoints < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeJoints, numJoints)
	}

	if interval < 0 {
		return nil, fmt.Errorf("%w: %s", ErrNegativeInterval, interval)
	}

	if sink == nil {
		return nil, ErrNilSink
	}

	return &Tracker{
		numJoints: numJoints,
		sampler:   NewSampler(interval),
		sink:      sink,
	}, nil
}

// Process calculates the results of a frame from the markers observed in it.
// It returns the frame results and if they were written to the sink.
func (t *Tracker) Process(elapsed time.Duration,
	obs []Observation) (*Frame, bool, error) {

	slots := Aggregate(obs, t.numJoints)

	frame := &Frame{
		Elapsed:      elapsed,
		Slots:        slots,
		Angles:       Angles(slots, t.numJoints),
		Orientations: Orientations(slots),
	}

	if !t.sampler.Sample(elapsed) {
		return frame, false, nil
	}

	if err := t.sink.WriteRow(frame.Row()); err != nil {
		return frame, false, err
	}

	t.rows++

	return frame, true, nil
}

// NumJoints returns the number of joints tracked
func (t *Tracker) NumJoints() int {
	return t.numJoints
}

// Interval returns the minimum time between rows written to the sink
func (t *Tracker) Interval() time.Duration {
	return t.sampler.Interval()
}

// Rows returns the number of rows written
func (t *Tracker) Rows() int {
	return t.rows
}
