// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package positional reads and rewrites IWFM positional text files: a block
// of comment and settings lines followed by whitespace-separated records.
// Files are read whole into memory, edited as a slice of lines, and written
// back in one pass.
package positional

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

var (
	// ErrMissingFile is returned when an input path does not exist.
	ErrMissingFile = errors.New("missing file")

	// ErrMalformedFormat is returned when a line does not hold the expected
	// field, or the scan for the next data line runs off the end of the file.
	ErrMalformedFormat = errors.New("malformed format")

	// ErrIOWrite is returned when the destination cannot be written.
	ErrIOWrite = errors.New("write failed")
)

// FormatError describes a line whose content does not match what the file
// format requires at that position.
type FormatError struct {
	Path string
	Line int // 1-based
	Want string
	Got  string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s:%d: expected %s, found %q", e.Path, e.Line, e.Want, e.Got)
}

// Unwrap lets errors.Is match ErrMalformedFormat.
func (e *FormatError) Unwrap() error {
	return ErrMalformedFormat
}

// commentMarkers are the first-column characters that mark a comment line.
const commentMarkers = "Cc*#"

// IsComment reports whether line is skipped when scanning for data: a line
// starting with a comment marker, or one holding only whitespace.
func IsComment(line string) bool {
	if strings.TrimSpace(line) == "" {
		return true
	}
	return strings.IndexByte(commentMarkers, line[0]) >= 0
}

// Table holds the lines of a positional file and the index of its first
// data line after the header block.
type Table struct {
	Path  string
	Lines []string
	Data  int
}

// Read loads the file at path and positions Data past headerLines settings
// lines, skipping any comments before and between them. With headerLines 0,
// Data is the first non-comment line.
func Read(path string, headerLines int) (*Table, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrMissingFile, path)
		}
		return nil, fmt.Errorf("checking %s: %w", path, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	t := &Table{Path: path, Lines: SplitLines(string(data))}
	t.Data, err = t.SkipAhead(0, headerLines)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// SplitLines splits s into lines without terminators. A final newline does
// not produce an empty trailing line.
func SplitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

// SkipAhead skips comment lines starting at index, then advances over skip
// further data lines, and returns the index of the data line reached.
func (t *Table) SkipAhead(index, skip int) (int, error) {
	i, err := t.skipComments(index)
	if err != nil {
		return i, err
	}
	for n := 0; n < skip; n++ {
		if i, err = t.skipComments(i + 1); err != nil {
			return i, err
		}
	}
	return i, nil
}

func (t *Table) skipComments(i int) (int, error) {
	for i < len(t.Lines) && IsComment(t.Lines[i]) {
		i++
	}
	if i >= len(t.Lines) {
		return i, &FormatError{Path: t.Path, Line: i + 1, Want: "data line", Got: "end of file"}
	}
	return i, nil
}

// Fields splits the line at index on whitespace.
func (t *Table) Fields(index int) []string {
	if index < 0 || index >= len(t.Lines) {
		return nil
	}
	return strings.Fields(t.Lines[index])
}

// Field returns field n of the line at index.
func (t *Table) Field(index, n int) (string, error) {
	f := t.Fields(index)
	if n >= len(f) {
		return "", t.Malformed(index, fmt.Sprintf("field %d", n+1))
	}
	return f[n], nil
}

// Int parses field n of the line at index as an integer.
func (t *Table) Int(index, n int) (int, error) {
	s, err := t.Field(index, n)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, t.Malformed(index, fmt.Sprintf("integer in field %d", n+1))
	}
	return v, nil
}

// Float parses field n of the line at index as a float.
func (t *Table) Float(index, n int) (float64, error) {
	s, err := t.Field(index, n)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, t.Malformed(index, fmt.Sprintf("number in field %d", n+1))
	}
	return v, nil
}

// Header returns a copy of the lines before Data.
func (t *Table) Header() []string {
	return append([]string(nil), t.Lines[:t.Data]...)
}

// Malformed returns a FormatError for the line at index.
func (t *Table) Malformed(index int, want string) *FormatError {
	got := "end of file"
	if index >= 0 && index < len(t.Lines) {
		got = t.Lines[index]
	}
	return &FormatError{Path: t.Path, Line: index + 1, Want: want, Got: got}
}
