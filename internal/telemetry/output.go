package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
)

// CSVWriter appends WindowStats records to a CSV file.
type CSVWriter struct {
	file          *os.File
	headerWritten bool
}

// NewCSVWriter creates the file at path, including parent directories.
// Returns nil if path is empty (output disabled).
func NewCSVWriter(path string) (*CSVWriter, error) {
	if path == "" {
		return nil, nil
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("telemetry: creating output directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("telemetry: creating %s: %w", path, err)
	}
	return &CSVWriter{file: f}, nil
}

// Write appends one record. The first write includes the header row.
func (w *CSVWriter) Write(stats WindowStats) error {
	if w == nil {
		return nil
	}

	records := []WindowStats{stats}

	if !w.headerWritten {
		if err := gocsv.Marshal(records, w.file); err != nil {
			return fmt.Errorf("telemetry: writing window: %w", err)
		}
		w.headerWritten = true
		return nil
	}

	if err := gocsv.MarshalWithoutHeaders(records, w.file); err != nil {
		return fmt.Errorf("telemetry: writing window: %w", err)
	}
	return nil
}

// Close closes the underlying file.
func (w *CSVWriter) Close() error {
	if w == nil {
		return nil
	}
	return w.file.Close()
}

// ReadCSV loads records previously written by CSVWriter.
func ReadCSV(path string) ([]WindowStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("telemetry: opening %s: %w", path, err)
	}
	defer f.Close()

	var records []WindowStats
	if err := gocsv.UnmarshalFile(f, &records); err != nil {
		return nil, fmt.Errorf("telemetry: parsing %s: %w", path, err)
	}
	return records, nil
}
