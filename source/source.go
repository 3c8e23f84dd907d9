package source

import (
	"context"
	"errors"
	"fmt"
	"gocv.io/x/gocv"
	"time"
)

var (
	// ErrEndOfStream is returned by Read when no more frames are available
	ErrEndOfStream = errors.New("end of video stream")
)

// Source reads video frames from a pre-recorded file or a camera
type Source struct {
	video   *gocv.VideoCapture
	name    string
	offline bool
}

// OpenFile opens a pre-recorded video file
func OpenFile(file string) (*Source, error) {

	video, err := gocv.VideoCaptureFile(file)

	if err != nil {
		return nil, fmt.Errorf("error opening video file %s: %w", file, err)
	}

	return &Source{
		video:   video,
		name:    file,
		offline: true,
	}, nil
}

// OpenCamera opens the camera device with the given id
func OpenCamera(id int) (*Source, error) {

	video, err := gocv.OpenVideoCapture(id)

	if err != nil {
		return nil, fmt.Errorf("error opening camera %d: %w", id, err)
	}

	return &Source{
		video: video,
		name:  fmt.Sprintf("camera %d", id),
	}, nil
}

// Open opens the file if one is given, otherwise the camera
func Open(file string, cameraID int) (*Source, error) {

	if file != "" {
		return OpenFile(file)
	}

	return OpenCamera(cameraID)
}

// Read reads the next frame into img.  Reading stops with the context's
// error once ctx is cancelled, checked between frames only.
func (s *Source) Read(ctx context.Context, img *gocv.Mat) error {

	if err := ctx.Err(); err != nil {
		return err
	}

	if ok := s.video.Read(img); !ok {
		return ErrEndOfStream
	}

	return nil
}

// Offline reports if frames come from a pre-recorded file
func (s *Source) Offline() bool {
	return s.offline
}

// Name returns the file name or camera description
func (s *Source) Name() string {
	return s.name
}

// FrameCount returns the number of frames in a pre-recorded file, or zero for
// a camera or if unknown
func (s *Source) FrameCount() int {

	if !s.offline {
		return 0
	}

	cnt := int(s.video.Get(gocv.VideoCaptureFrameCount))

	if cnt < 0 {
		return 0
	}

	return cnt
}

// Close releases the video capture
func (s *Source) Close() error {
	return s.video.Close()
}

// Clock measures elapsed time from the first frame it is asked about
type Clock struct {
	now     func() time.Time
	start   time.Time
	started bool
}

// NewClock returns a Clock using the wall clock
func NewClock() *Clock {
	return NewClockWithFunc(time.Now)
}

// NewClockWithFunc returns a Clock that reads the time from now
func NewClockWithFunc(now func() time.Time) *Clock {
	return &Clock{now: now}
}

// Elapsed returns the time since the first call to Elapsed, which itself
// returns zero
func (c *Clock) Elapsed() time.Duration {

	t := c.now()

	if !c.started {
		c.start = t
		c.started = true
	}

	return t.Sub(c.start)
}
