package jointtrack

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// Row is a single line of output data
type Row []string

// Header returns the column titles for the given number of joints
func Header(numJoints int) []string {

	if numJoints < 0 {
		numJoints = 0
	}

	cols := make([]string, 0, 1+numJoints+NumSlots(numJoints))
	cols = append(cols, "Total Time")

	for i := 1; i <= numJoints; i++ {
		cols = append(cols, fmt.Sprintf("Joint %d Angle", i))
	}

	for i := 0; i < NumSlots(numJoints); i++ {
		cols = append(cols, fmt.Sprintf("Marker %d Rotation", i))
	}

	return cols
}

// Serialize formats the results of a frame as a Row.  Joints that were not
// detected and slots without a marker are left as empty columns.  Each
// orientation column holds bank, heading and attitude joined by commas.
func Serialize(elapsed time.Duration, angles []JointAngle,
	orientations []OrientationSample) Row {

	row := make(Row, 0, 1+len(angles)+len(orientations))
	row = append(row, formatElapsed(elapsed))

	for _, a := range angles {
		if !a.Detected {
			row = append(row, "")
			continue
		}

		row = append(row, formatFloat(a.Value))
	}

	for _, o := range orientations {
		if !o.Present {
			row = append(row, "")
			continue
		}

		row = append(row, strings.Join([]string{
			formatFloat(o.Bank),
			formatFloat(o.Heading),
			formatFloat(o.Attitude),
		}, ","))
	}

	return row
}

// formatElapsed writes the elapsed time in seconds to microsecond resolution
// so rows stay distinct on long sessions
func formatElapsed(elapsed time.Duration) string {
	return strconv.FormatFloat(elapsed.Round(time.Microsecond).Seconds(), 'f', -1, 64)
}

// formatFloat writes a value with six significant digits
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}

// RowSink receives rows that have been sampled for output
type RowSink interface {
	WriteRow(row Row) error
}

// RowWriter writes rows as CSV.  Columns containing commas (the marker
// orientations) are quoted.
type RowWriter struct {
	w *csv.Writer
}

// NewRowWriter returns a RowWriter writing to w
func NewRowWriter(w io.Writer) *RowWriter {
	return &RowWriter{w: csv.NewWriter(w)}
}

// WriteHeader writes the column titles for the given number of joints
func (r *RowWriter) WriteHeader(numJoints int) error {
	return r.write(Header(numJoints))
}

// WriteRow writes a single row and flushes it so a stopped program never
// leaves a partially written row
func (r *RowWriter) WriteRow(row Row) error {
	return r.write(row)
}

func (r *RowWriter) write(rec []string) error {

	if err := r.w.Write(rec); err != nil {
		return fmt.Errorf("error writing row: %w", err)
	}

	r.w.Flush()

	if err := r.w.Error(); err != nil {
		return fmt.Errorf("error flushing row: %w", err)
	}

	return nil
}
