package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"github.com/cheggaaa/pb/v3"
	"github.com/swdee/go-jointtrack"
	"github.com/swdee/go-jointtrack/detect"
	"github.com/swdee/go-jointtrack/source"
	"gocv.io/x/gocv"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// statsEvery is the number of frames between detection time log lines
const statsEvery = 30

// Session holds everything needed to run a joint tracking session
type Session struct {
	cfg      jointtrack.Config
	src      *source.Source
	detector *detect.Detector
	tracker  *jointtrack.Tracker
	out      *os.File
	stats    jointtrack.DetectionStats
}

// NewSession validates the config and opens the input, output and detector
func NewSession(cfg jointtrack.Config, dictionary gocv.ArucoDictionaryCode) (*Session, error) {

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	params := &detect.DetectorParams{}

	if cfg.DetectorFile != "" {
		var err error
		params, err = detect.LoadDetectorParams(cfg.DetectorFile)

		if err != nil {
			return nil, fmt.Errorf("Invalid detector parameters file: %w", err)
		}
	}

	if cfg.CornerRefinement != nil {
		if err := params.OverrideCornerRefinement(*cfg.CornerRefinement); err != nil {
			return nil, err
		}
	}

	log.Printf("Corner refinement method (0: None, 1: Subpixel, 2: Contour, 3: AprilTag 2): %d",
		params.RefinementMethod())

	calib, err := detect.LoadCalibration(cfg.CalibFile)

	if err != nil {
		return nil, fmt.Errorf("Invalid camera file: %w", err)
	}

	s := &Session{cfg: cfg}

	s.detector, err = detect.NewDetector(dictionary, params, calib, cfg.MarkerLength)

	if err != nil {
		return nil, fmt.Errorf("Error creating marker detector: %w", err)
	}

	// O_EXCL so an existing recording is never overwritten
	s.out, err = os.OpenFile(cfg.OutputFile, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)

	if err != nil {
		s.Close()
		return nil, fmt.Errorf("File \"%s\" failed to open: %w", cfg.OutputFile, err)
	}

	log.Printf("File \"%s\" opened successfully", cfg.OutputFile)

	writer := jointtrack.NewRowWriter(s.out)

	if err := writer.WriteHeader(cfg.NumJoints); err != nil {
		s.Close()
		return nil, err
	}

	s.tracker, err = jointtrack.NewTracker(cfg.NumJoints, cfg.CollectionInterval(), writer)

	if err != nil {
		s.Close()
		return nil, err
	}

	s.src, err = source.Open(cfg.InputFile, cfg.CameraID)

	if err != nil {
		s.Close()
		return nil, err
	}

	return s, nil
}

// Run processes frames until the video ends or ctx is cancelled
func (s *Session) Run(ctx context.Context) error {

	var bar *pb.ProgressBar

	if cnt := s.src.FrameCount(); cnt > 0 {
		bar = pb.StartNew(cnt)
		defer bar.Finish()
	}

	img := gocv.NewMat()
	defer img.Close()

	clock := source.NewClock()

	for {
		err := s.src.Read(ctx, &img)

		if errors.Is(err, source.ErrEndOfStream) || errors.Is(err, context.Canceled) {
			return nil
		} else if err != nil {
			return err
		}

		// detect markers and estimate pose
		start := time.Now()
		obs, err := s.detector.Detect(img)

		if err != nil {
			// a bad frame is recorded as no markers seen
			log.Printf("Error detecting markers: %v", err)
			obs = nil
		}

		s.stats.Add(time.Since(start))

		if bar != nil {
			bar.Set("suffix", fmt.Sprintf("%.2fms", s.stats.MeanMs()))
			bar.Increment()

		} else if s.stats.Due(statsEvery) {
			log.Printf("Detection Time = %.2f ms (Mean = %.2f ms)",
				s.stats.LastMs(), s.stats.MeanMs())
		}

		if _, _, err := s.tracker.Process(clock.Elapsed(), obs); err != nil {
			return err
		}
	}
}

// Close releases the session resources
func (s *Session) Close() {

	if s.src != nil {
		s.src.Close()
	}

	if s.detector != nil {
		s.detector.Close()
	}

	if s.out != nil {
		s.out.Close()
	}
}

func main() {
	// disable logging timestamps
	log.SetFlags(0)

	cfg := jointtrack.DefaultConfig()

	// read in cli flags
	dict := flag.String("d", "0", "ArUco dictionary, OpenCV code or name, eg: 0 or DICT_4X4_50")
	flag.StringVar(&cfg.InputFile, "v", "", "Input from video file, if omitted input comes from camera")
	flag.IntVar(&cfg.CameraID, "ci", 0, "Camera id if input doesn't come from video (-v)")
	flag.StringVar(&cfg.CalibFile, "c", "", "Camera intrinsic parameters file, needed for camera pose")
	flag.Float64Var(&cfg.MarkerLength, "l", cfg.MarkerLength, "Marker side length in meters")
	flag.StringVar(&cfg.DetectorFile, "dp", "", "File of marker detector parameters")
	refine := flag.Int("refine", -1, "Corner refinement: CORNER_REFINE_NONE=0, CORNER_REFINE_SUBPIX=1, CORNER_REFINE_CONTOUR=2, CORNER_REFINE_APRILTAG=3")
	flag.StringVar(&cfg.OutputFile, "o", "", "Joint angle output filename, if none filename is automatically indexed")
	flag.IntVar(&cfg.CollectionRate, "cr", 0, "Number of times per second to collect joint angle data, 0 collects every frame")
	flag.IntVar(&cfg.NumJoints, "j", cfg.NumJoints, "Number of joints to collect angle data for")
	cpus := flag.String("cpus", "", "Comma delimited list of CPU cores to run on, eg: 4,5,6,7")

	flag.Parse()

	if *cpus != "" {
		cores, err := jointtrack.ParseCPUList(*cpus)

		if err != nil {
			log.Fatalf("Invalid CPU list: %v", err)
		}

		if err := jointtrack.SetCPUAffinity(jointtrack.CPUCoreMask(cores)); err != nil {
			log.Printf("Failed to set CPU Affinity: %v", err)
		}

		if mask, err := jointtrack.GetCPUAffinity(); err != nil {
			log.Printf("Failed to get CPU Affinity: %v", err)
		} else {
			log.Printf("Running on CPU mask %#x", mask)
		}
	}

	if *refine >= 0 {
		cfg.CornerRefinement = refine
	}

	if cfg.OutputFile == "" {
		var err error
		cfg.OutputFile, err = jointtrack.IndexedFilename(".")

		if err != nil {
			log.Fatal(err)
		}
	}

	dictionary, err := detect.ParseDictionary(*dict)

	if err != nil {
		log.Fatalf("Invalid dictionary: %v", err)
	}

	session, err := NewSession(cfg, dictionary)

	if err != nil {
		log.Fatalf("Error starting session: %v", err)
	}

	defer session.Close()

	// stop cleanly between frames on Ctrl-C
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	interval := "every frame"

	if session.tracker.Interval() > 0 {
		interval = "every " + session.tracker.Interval().String()
	}

	log.Printf("Reading from %s, tracking %d joints with %gm markers, collecting %s",
		session.src.Name(), session.tracker.NumJoints(), session.detector.MarkerLength(),
		interval)

	if err := session.Run(ctx); err != nil {
		log.Printf("Error processing video: %v", err)
	}

	log.Printf("Wrote %d rows to %s", session.tracker.Rows(), cfg.OutputFile)
}
