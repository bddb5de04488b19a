package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Formats a report can be written in.
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// ErrUnsupportedFormat is returned for any format other than yaml or json.
var ErrUnsupportedFormat = errors.New("unsupported report format")

// CheckFormat normalizes a format name and rejects unknown ones.
func CheckFormat(format string) (string, error) {
	f := strings.ToLower(strings.TrimSpace(format))
	switch f {
	case FormatYAML, "yml":
		return FormatYAML, nil
	case FormatJSON:
		return FormatJSON, nil
	}
	return "", fmt.Errorf("%w: %q (use yaml or json)", ErrUnsupportedFormat, format)
}

// Encode writes the Document of r to w.
func Encode(w io.Writer, r *Result, format string) error {
	f, err := CheckFormat(format)
	if err != nil {
		return err
	}
	doc := SummaryView(r)

	if f == FormatJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}

// WriteFile writes r into dir under r.OutputFileName and returns the path.
// A failed write leaves no file behind.
func WriteFile(dir string, r *Result, format string) (string, error) {
	if r.OutputFileName == "" {
		return "", errors.New("result has no output file name")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(dir, r.OutputFileName)
	tmp, err := os.CreateTemp(dir, ".migration_summary_*")
	if err != nil {
		return "", fmt.Errorf("failed to create report file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := Encode(tmp, r, format); err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	return path, nil
}
