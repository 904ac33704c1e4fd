package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/shinji-kodama/cityreports/internal/model"
)

// File name stems for the generated reports. The extension depends on the
// output format (see model.OutputFormat.Extension).
const (
	populationStem  = "Cities_By_Population"
	interstatesStem = "Interstates_By_City"
	degreesPrefix   = "Degrees_From_"
)

// Report is implemented by every generated report.
type Report interface {
	// Kind identifies the report.
	Kind() model.ReportKind

	// WriteText writes the line-oriented text layout.
	WriteText(w io.Writer) error
}

// document wraps a report for JSON/YAML output so consumers can tell the
// documents apart without looking at the file name.
type document struct {
	Report string `json:"report" yaml:"report"`
	Data   Report `json:"data" yaml:"data"`
}

// FileName returns the output file name for a report in the given format.
//
// Example:
//
//	Cities_By_Population.txt
//	Interstates_By_City.json
//	Degrees_From_Chicago.yaml
func FileName(r Report, format model.OutputFormat) string {
	return FileNameFor(r.Kind(), baseOf(r), format)
}

// FileNameFor returns the output file name for a report kind. base is only
// used for the degrees report and is used as given by the user, with path
// separators replaced so the name stays inside the output directory.
func FileNameFor(kind model.ReportKind, base string, format model.OutputFormat) string {
	var stem string
	switch kind {
	case model.ReportPopulation:
		stem = populationStem
	case model.ReportInterstates:
		stem = interstatesStem
	default:
		stem = degreesPrefix + sanitizeFileComponent(base)
	}
	return stem + format.Extension()
}

func baseOf(r Report) string {
	if d, ok := r.(*DegreesReport); ok {
		return d.Base
	}
	return ""
}

// sanitizeFileComponent replaces characters that would escape the output
// directory or are invalid in file names on common platforms.
func sanitizeFileComponent(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', 0:
			return '_'
		}
		return r
	}, s)
}

// Render serializes a report in the given format.
func Render(r Report, format model.OutputFormat) ([]byte, error) {
	switch format {
	case model.FormatText:
		var buf bytes.Buffer
		if err := r.WriteText(&buf); err != nil {
			return nil, fmt.Errorf("failed to render %s report: %w", r.Kind(), err)
		}
		return buf.Bytes(), nil

	case model.FormatJSON:
		data, err := json.MarshalIndent(document{Report: r.Kind().String(), Data: r}, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to serialize %s report as JSON: %w", r.Kind(), err)
		}
		// Trailing newline for POSIX text files.
		return append(data, '\n'), nil

	case model.FormatYAML:
		var buf bytes.Buffer
		fmt.Fprintf(&buf, "# Generated by cityreports (%s report)\n", r.Kind())
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(document{Report: r.Kind().String(), Data: r}); err != nil {
			return nil, fmt.Errorf("failed to serialize %s report as YAML: %w", r.Kind(), err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("failed to serialize %s report as YAML: %w", r.Kind(), err)
		}
		return buf.Bytes(), nil

	default:
		return nil, fmt.Errorf("unsupported output format %q", format)
	}
}

// WriteFile renders a report and writes it into dir, creating dir if needed.
// It returns the path of the written file.
func WriteFile(dir string, r Report, format model.OutputFormat) (string, error) {
	data, err := Render(r, format)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, FileName(r, format))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
