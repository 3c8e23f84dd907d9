package jointtrack

import (
	"time"
)

// ShouldEmit decides if the results of a frame should be written.  The first
// frame is always written, after that a frame is written once at least the
// interval has elapsed since the last written frame.  An interval of zero
// writes every frame.
func ShouldEmit(elapsed, lastEmitted, interval time.Duration, first bool) bool {
	return first || elapsed-lastEmitted >= interval
}

// CollectionInterval returns the time between written rows for the given
// collection rate in rows per second.  Pre-recorded video (offline) and a
// rate of zero collect every frame.
func CollectionInterval(rate int, offline bool) time.Duration {

	if rate <= 0 || offline {
		return 0
	}

	return time.Duration(float64(time.Second) / float64(rate))
}

// Sampler keeps the state needed to call ShouldEmit across frames.  Frames
// that are not sampled are dropped, they are never buffered for later.
type Sampler struct {
	interval    time.Duration
	lastEmitted time.Duration
	started     bool
}

// NewSampler returns a Sampler that emits at most once per interval
func NewSampler(interval time.Duration) *Sampler {
	return &Sampler{interval: interval}
}

// Sample reports if the frame at the given elapsed time should be written
// and records it as the last written frame if so
func (s *Sampler) Sample(elapsed time.Duration) bool {

	if !ShouldEmit(elapsed, s.lastEmitted, s.interval, !s.started) {
		return false
	}

	s.started = true
	s.lastEmitted = elapsed

	return true
}

// Interval returns the configured collection interval
func (s *Sampler) Interval() time.Duration {
	return s.interval
}

// Reset clears the sampler so the next frame is treated as the first
func (s *Sampler) Reset() {
	s.started = false
	s.lastEmitted = 0
}
