package jointtrack

import (
	"time"
)

// DetectionStats keeps a running total of the time spent detecting markers
// and estimating their pose
type DetectionStats struct {
	// Frames is the number of frames timed
	Frames int
	// Last is the detection time of the most recent frame
	Last time.Duration
	// Total is the detection time of all frames
	Total time.Duration
}

// Add records the detection time of a frame
func (d *DetectionStats) Add(dur time.Duration) {
	d.Frames++
	d.Last = dur
	d.Total += dur
}

// Mean returns the average detection time per frame
func (d *DetectionStats) Mean() time.Duration {

	if d.Frames == 0 {
		return 0
	}

	return d.Total / time.Duration(d.Frames)
}

// Due reports if the frame count is a multiple of every, used to log
// statistics periodically
func (d *DetectionStats) Due(every int) bool {
	return every > 0 && d.Frames > 0 && d.Frames%every == 0
}

// LastMs returns the most recent detection time in milliseconds
func (d *DetectionStats) LastMs() float32 {
	return float32(d.Last) / float32(time.Millisecond)
}

// MeanMs returns the average detection time in milliseconds
func (d *DetectionStats) MeanMs() float32 {
	return float32(d.Mean()) / float32(time.Millisecond)
}
