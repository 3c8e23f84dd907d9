package jointtrack

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"
)

var (
	ErrNegativeJoints   = errors.New("number of joints can not be negative")
	ErrNegativeRate     = errors.New("collection rate can not be negative")
	ErrNegativeInterval = errors.New("collection interval can not be negative")
	ErrMarkerLength     = errors.New("marker length must be greater than zero")
	ErrNoCalibration    = errors.New("camera calibration file is required to estimate marker pose")
	ErrOutputExists     = errors.New("output file already exists")
	ErrNoIndexedFile    = errors.New("maximum number of indexed output files used")
)

// Config holds the settings for a joint tracking session
type Config struct {
	// Dictionary is the OpenCV predefined ArUco dictionary code
	Dictionary int
	// CornerRefinement overrides the detector parameters corner refinement
	// method when set
	CornerRefinement *int
	// CameraID is the camera device to capture from when InputFile is empty
	CameraID int
	// InputFile is a pre-recorded video to read instead of a camera
	InputFile string
	// CalibFile is the camera calibration file
	CalibFile string
	// DetectorFile is an optional file of detector parameters
	DetectorFile string
	// OutputFile is the CSV file joint angle data is written to
	OutputFile string
	// MarkerLength is the marker side length in meters
	MarkerLength float64
	// CollectionRate is the number of rows to write per second.  Zero writes
	// every frame
	CollectionRate int
	// NumJoints is the number of joints to collect angle data for
	NumJoints int
}

// DefaultConfig returns the default settings
func DefaultConfig() Config {
	return Config{
		MarkerLength: 0.1,
		NumJoints:    1,
	}
}

// Offline reports if the input is a pre-recorded video
func (c Config) Offline() bool {
	return c.InputFile != ""
}

// CollectionInterval returns the time between written rows
func (c Config) CollectionInterval() time.Duration {
	return CollectionInterval(c.CollectionRate, c.Offline())
}

// Validate checks the configuration before the tracking loop is started
func (c Config) Validate() error {

	if c.NumJoints < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeJoints, c.NumJoints)
	}

	if c.CollectionRate < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeRate, c.CollectionRate)
	}

	if c.MarkerLength <= 0 {
		return fmt.Errorf("%w: %g", ErrMarkerLength, c.MarkerLength)
	}

	if c.CalibFile == "" {
		return ErrNoCalibration
	}

	if fileExists(c.OutputFile) {
		return fmt.Errorf("%w: %s", ErrOutputExists, c.OutputFile)
	}

	return nil
}

// IndexedFilename returns the first unused filename of the form outputN.csv
// in the given directory, starting from output1.csv
func IndexedFilename(dir string) (string, error) {

	for i := 1; i < math.MaxInt32; i++ {
		name := filepath.Join(dir, fmt.Sprintf("output%d.csv", i))

		if !fileExists(name) {
			return name, nil
		}
	}

	return "", ErrNoIndexedFile
}

// fileExists checks if a file exists at the given path
func fileExists(name string) bool {

	if name == "" {
		return false
	}

	_, err := os.Stat(name)

	return err == nil
}
