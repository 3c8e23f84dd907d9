package detect

import (
	"bufio"
	"bytes"
	"fmt"
	"gopkg.in/yaml.v3"
	"os"
	"strings"
)

// Matrix is a dense matrix as written by OpenCV's FileStorage, tagged in the
// file as !!opencv-matrix
type Matrix struct {
	Rows int       `yaml:"rows"`
	Cols int       `yaml:"cols"`
	DT   string    `yaml:"dt"`
	Data []float64 `yaml:"data"`
}

// At returns the element at row i, column j
func (m Matrix) At(i, j int) float64 {
	return m.Data[i*m.Cols+j]
}

// validate checks the data length matches the matrix dimensions
func (m Matrix) validate(name string) error {

	if m.Rows <= 0 || m.Cols <= 0 {
		return fmt.Errorf("%s has invalid dimensions %dx%d", name, m.Rows, m.Cols)
	}

	if len(m.Data) != m.Rows*m.Cols {
		return fmt.Errorf("%s has %d values, expected %d", name, len(m.Data),
			m.Rows*m.Cols)
	}

	return nil
}

// readFileStorage reads an OpenCV FileStorage YAML file and decodes it into
// out
func readFileStorage(file string, out interface{}) error {

	data, err := os.ReadFile(file)

	if err != nil {
		return fmt.Errorf("error opening file: %w", err)
	}

	if err := yaml.Unmarshal(normaliseFileStorage(data), out); err != nil {
		return fmt.Errorf("error decoding file %s: %w", file, err)
	}

	return nil
}

// normaliseFileStorage converts OpenCV's YAML 1.0 dialect into YAML that
// yaml.v3 accepts.  The %YAML:1.0 directive is dropped along with the custom
// !!opencv-matrix tags, leaving plain mappings.
func normaliseFileStorage(data []byte) []byte {

	var buf bytes.Buffer
	scanner := bufio.NewScanner(bytes.NewReader(data))

	for scanner.Scan() {
		line := scanner.Text()

		if strings.HasPrefix(strings.TrimSpace(line), "%YAML") {
			continue
		}

		line = strings.Replace(line, "!!opencv-matrix", "", 1)

		buf.WriteString(line)
		buf.WriteByte('\n')
	}

	return buf.Bytes()
}
