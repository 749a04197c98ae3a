package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jlogtenberg/leakscan/internal/model"
)

// JSONWriter outputs results in JSON format.
// This is the persisted results format consumed by downstream analysis;
// the field layout must stay stable.
type JSONWriter struct {
	baseWriter

	// indent enables pretty-printed JSON output.
	indent bool

	// indentString is the indentation string (typically "  ").
	indentString string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithPrettyPrint enables pretty-printed JSON with two-space indentation,
// matching the recorded results files.
func WithPrettyPrint() JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentString = "  "
	}
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the results in JSON format.
func (w *JSONWriter) Write(results []model.SiteResult) (int, error) {
	var data []byte
	var err error

	if w.indent {
		data, err = json.MarshalIndent(results, "", w.indentString)
	} else {
		data, err = json.Marshal(results)
	}

	if err != nil {
		return 0, err
	}

	data = append(data, '\n')

	return w.output.Write(data)
}

// WriteResultsFile writes the results to the given path, creating parent
// directories as needed. When results is empty nothing is written and no
// file is created: an absent results file means "no leaks anywhere", and
// an empty JSON array would blur that signal.
func WriteResultsFile(path string, results []model.SiteResult) (written bool, err error) {
	if len(results) == 0 {
		return false, nil
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return false, fmt.Errorf("failed to create results directory: %w", err)
		}
	}

	f, err := os.Create(path) //nolint:gosec // User-provided results path is intentional
	if err != nil {
		return false, fmt.Errorf("failed to create results file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	if _, err := NewJSONWriter(f, WithPrettyPrint()).Write(results); err != nil {
		return false, fmt.Errorf("failed to write results: %w", err)
	}

	return true, nil
}
