package dataset

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/shinji-kodama/cityreports/internal/model"
)

const (
	// fieldSeparator splits a dataset line into its four fields.
	fieldSeparator = "|"

	// interstateSeparator splits the fourth field into interstate identifiers.
	interstateSeparator = ";"

	// fieldCount is the number of fields every dataset line must have.
	fieldCount = 4

	// maxLineBytes bounds a single dataset line. Longer lines are malformed.
	maxLineBytes = 1024 * 1024

	// longLinePrefix is how much of an oversized line a LineError keeps.
	longLinePrefix = 64
)

var (
	// ErrInputNotFound is returned by LoadFile when the dataset file does not exist.
	ErrInputNotFound = errors.New("dataset: input file not found")

	// ErrMalformedLine is wrapped by every LineError.
	ErrMalformedLine = errors.New("dataset: malformed line")
)

// LineError describes a dataset line that could not be parsed.
type LineError struct {
	// Line is the 1-based line number in the input.
	Line int

	// Text is the raw line content.
	Text string

	// Reason describes what is wrong with the line.
	Reason string
}

// Error implements the error interface for LineError.
func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %s: %q", e.Line, e.Reason, e.Text)
}

// Unwrap lets errors.Is match ErrMalformedLine.
func (e *LineError) Unwrap() error {
	return ErrMalformedLine
}

// Options controls how malformed lines are handled.
type Options struct {
	// SkipMalformed drops malformed lines instead of aborting the load.
	SkipMalformed bool

	// OnSkip, if set, is called for every dropped line when SkipMalformed is true.
	OnSkip func(*LineError)
}

// Dataset is the result of a load.
type Dataset struct {
	// Cities holds the parsed records in file order. Cities[i].ID == CityID(i).
	Cities []model.City

	// Skipped lists the lines dropped under the skip policy.
	Skipped []*LineError
}

// LoadFile opens the dataset at path and parses it with Parse.
//
// Returns an error wrapping ErrInputNotFound if the file does not exist, so
// callers can distinguish "nothing to do" from a broken file.
func LoadFile(path string, opts Options) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrInputNotFound, path)
		}
		return nil, fmt.Errorf("failed to open dataset %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	ds, err := Parse(f, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset %s: %w", path, err)
	}
	return ds, nil
}

// Parse reads dataset lines from r.
//
// Blank lines are ignored and a trailing carriage return is stripped, so files
// written with CRLF line endings load the same as LF files. Under the strict
// policy the first malformed line is returned as a *LineError.
func Parse(r io.Reader, opts Options) (*Dataset, error) {
	ds := &Dataset{}
	br := bufio.NewReader(r)

	lineNo := 0
	for {
		raw, tooLong, err := readLine(br)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read dataset: %w", err)
		}
		lineNo++

		var (
			city    model.City
			lineErr *LineError
		)
		text := strings.TrimRight(string(raw), "\r")
		switch {
		case tooLong:
			lineErr = &LineError{
				Line:   lineNo,
				Text:   text + "...",
				Reason: fmt.Sprintf("line exceeds %d bytes", maxLineBytes),
			}
		case strings.TrimSpace(text) == "":
			continue
		default:
			city, lineErr = parseLine(lineNo, text)
		}

		if lineErr != nil {
			if !opts.SkipMalformed {
				return nil, lineErr
			}
			ds.Skipped = append(ds.Skipped, lineErr)
			if opts.OnSkip != nil {
				opts.OnSkip(lineErr)
			}
			continue
		}

		city.ID = model.CityID(len(ds.Cities))
		ds.Cities = append(ds.Cities, city)
	}

	return ds, nil
}

// readLine returns the next line without its terminator. A line longer than
// maxLineBytes is consumed to its end and reported with tooLong set; only
// its first longLinePrefix bytes are returned. io.EOF is returned once the
// input is exhausted.
func readLine(br *bufio.Reader) (line []byte, tooLong bool, err error) {
	size := 0
	for {
		chunk, isPrefix, err := br.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) && size > 0 {
				return line, tooLong, nil
			}
			return nil, false, err
		}
		size += len(chunk)
		if size > maxLineBytes {
			if !tooLong {
				tooLong = true
				if len(line) > longLinePrefix {
					line = line[:longLinePrefix]
				}
			}
		} else {
			line = append(line, chunk...)
		}
		if !isPrefix {
			return line, tooLong, nil
		}
	}
}

// parseLine converts one dataset line into a City. The ID is left for the
// caller to assign because only successfully parsed lines consume an ID.
func parseLine(lineNo int, text string) (model.City, *LineError) {
	parts := strings.Split(text, fieldSeparator)
	if len(parts) != fieldCount {
		return model.City{}, &LineError{
			Line:   lineNo,
			Text:   text,
			Reason: fmt.Sprintf("expected %d fields, got %d", fieldCount, len(parts)),
		}
	}

	population, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return model.City{}, &LineError{Line: lineNo, Text: text, Reason: "population is not an integer"}
	}
	if population < 0 {
		return model.City{}, &LineError{Line: lineNo, Text: text, Reason: "population is negative"}
	}

	name := strings.TrimSpace(parts[1])
	if name == "" {
		return model.City{}, &LineError{Line: lineNo, Text: text, Reason: "city name is empty"}
	}

	return model.City{
		Population:  population,
		Name:        name,
		State:       strings.TrimSpace(parts[2]),
		Interstates: splitInterstates(parts[3]),
	}, nil
}

// splitInterstates splits the interstate field. Empty tokens are dropped so a
// city with no interstates gets an empty set rather than a "" identifier that
// would link it to every other such city.
func splitInterstates(field string) []string {
	tokens := strings.Split(field, interstateSeparator)
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		out = append(out, tok)
	}
	return out
}
