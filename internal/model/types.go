// Package model defines the domain types for the cityreports CLI.
//
// All entities in this package are transient, in-memory representations
// built from the flat-file dataset at the start of a run. Nothing is
// persisted other than the generated report files.
package model

import (
	"fmt"
	"strconv"
	"strings"
)

// DegreeUnreachable is the degree assigned to a city that shares no chain of
// interstates with the base city.
const DegreeUnreachable = -1

// DegreeBase is the degree of the base city itself.
const DegreeBase = 0

// interstatePrefix is the designation prefix every interstate identifier
// carries in the dataset (e.g. "I-90").
const interstatePrefix = "I-"

// CityID identifies a City for the lifetime of a run. It is the zero-based
// ordinal of the record among the successfully loaded dataset lines, so it
// is stable across reloads of an identical file.
type CityID int

// City represents one dataset row.
//
// Name and State are not required to be unique. Name is the lookup key for
// the base city (case-insensitive, exact match).
type City struct {
	// ID is the immutable identifier assigned at load time.
	ID CityID `json:"id" yaml:"id"`

	// Population is the non-negative population count.
	Population int `json:"population" yaml:"population"`

	// Name is the city name, e.g. "Chicago".
	Name string `json:"name" yaml:"name"`

	// State is the state abbreviation, e.g. "IL".
	State string `json:"state" yaml:"state"`

	// Interstates lists the interstate identifiers in dataset order.
	// Duplicates are permitted and are treated as a single edge label.
	Interstates []string `json:"interstates" yaml:"interstates"`
}

// Label returns the "<name>, <state>" form used throughout the reports.
func (c City) Label() string {
	return fmt.Sprintf("%s, %s", c.Name, c.State)
}

// HasInterstate reports whether the city lists the given interstate.
func (c City) HasInterstate(interstate string) bool {
	for _, i := range c.Interstates {
		if i == interstate {
			return true
		}
	}
	return false
}

// UniqueInterstates returns the city's interstates with duplicates removed,
// preserving first-seen order.
func (c City) UniqueInterstates() []string {
	seen := make(map[string]struct{}, len(c.Interstates))
	out := make([]string, 0, len(c.Interstates))
	for _, i := range c.Interstates {
		if _, ok := seen[i]; ok {
			continue
		}
		seen[i] = struct{}{}
		out = append(out, i)
	}
	return out
}

// InterstateNumber extracts the numeric designation from an identifier of
// the form "I-<number>". ok is false when the identifier does not have that
// shape.
//
// Example:
//
//	InterstateNumber("I-90")  → 90, true
//	InterstateNumber("US-41") → 0, false
func InterstateNumber(interstate string) (n int, ok bool) {
	if !strings.HasPrefix(interstate, interstatePrefix) {
		return 0, false
	}
	n, err := strconv.Atoi(interstate[len(interstatePrefix):])
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// NameMatches reports whether the city's name equals name under Unicode
// case folding.
func (c City) NameMatches(name string) bool {
	return strings.EqualFold(c.Name, name)
}

// ReportKind identifies one of the three generated reports.
type ReportKind string

const (
	// ReportPopulation is the cities-by-population report.
	ReportPopulation ReportKind = "population"

	// ReportInterstates is the interstates-by-city report.
	ReportInterstates ReportKind = "interstates"

	// ReportDegrees is the degrees-from-base-city report.
	ReportDegrees ReportKind = "degrees"
)

// String returns the string representation of ReportKind.
func (k ReportKind) String() string {
	return string(k)
}

// IsValid checks whether the ReportKind value is one of the predefined kinds.
func (k ReportKind) IsValid() bool {
	switch k {
	case ReportPopulation, ReportInterstates, ReportDegrees:
		return true
	default:
		return false
	}
}

// AllReports lists every report kind in generation order.
func AllReports() []ReportKind {
	return []ReportKind{ReportPopulation, ReportInterstates, ReportDegrees}
}

// OutputFormat is the serialization used for report files.
type OutputFormat string

const (
	// FormatText writes the line-oriented text layout.
	FormatText OutputFormat = "text"

	// FormatJSON writes an indented JSON document.
	FormatJSON OutputFormat = "json"

	// FormatYAML writes a YAML document.
	FormatYAML OutputFormat = "yaml"
)

// String returns the string representation of OutputFormat.
func (f OutputFormat) String() string {
	return string(f)
}

// IsValid checks whether the OutputFormat value is supported.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatText, FormatJSON, FormatYAML:
		return true
	default:
		return false
	}
}

// Extension returns the file extension (with leading dot) for the format.
func (f OutputFormat) Extension() string {
	switch f {
	case FormatJSON:
		return ".json"
	case FormatYAML:
		return ".yaml"
	default:
		return ".txt"
	}
}

// ParseOutputFormat converts a string to an OutputFormat.
// "yml" is accepted as an alias for "yaml".
func ParseOutputFormat(s string) (OutputFormat, error) {
	lower := strings.ToLower(strings.TrimSpace(s))
	if lower == "yml" {
		lower = string(FormatYAML)
	}
	format := OutputFormat(lower)
	if !format.IsValid() {
		return "", fmt.Errorf("invalid output format: %q (valid: text, json, yaml)", s)
	}
	return format, nil
}

// ExitCode defines the CLI exit codes. These codes allow scripts to
// determine the outcome of a run programmatically.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError ExitCode = 1

	// ExitInvalidDataset indicates the input dataset contained a malformed
	// line and the strict parsing policy was in effect.
	ExitInvalidDataset ExitCode = 2

	// ExitBaseCityNotFound indicates the base city was missing from the
	// dataset or its name matched more than one city. Only the dedicated
	// degrees command reports this as a failure.
	ExitBaseCityNotFound ExitCode = 3

	// ExitInvalidConfig indicates the configuration file or flags were invalid.
	ExitInvalidConfig ExitCode = 4
)

// CLIError is a custom error type that carries an exit code.
// This allows the CLI layer to translate domain errors into
// appropriate process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}
