// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package positional

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Render joins lines with newlines after appending one blank line, so the
// result always ends with exactly one newline.
func Render(lines []string) string {
	return strings.Join(append(lines[:len(lines):len(lines)], ""), "\n")
}

// WriteLines renders lines and replaces the file at path with the result.
// The content goes to a temporary file in the same directory which is
// synced and renamed over path, so readers never see a partial file.
func WriteLines(path string, lines []string) error {
	if err := writeAtomic(path, []byte(Render(lines))); err != nil {
		return fmt.Errorf("%w %s: %w", ErrIOWrite, path, err)
	}
	return nil
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}

// FormatFloat renders v with the fewest digits that round-trip, without an
// exponent. Integral values print without a decimal point.
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// PadBoth prefixes s with front spaces and pads it on the right to width
// columns. Values longer than width are not truncated.
func PadBoth(s string, front, width int) string {
	var b strings.Builder
	b.WriteString(strings.Repeat(" ", front))
	b.WriteString(s)
	if n := width - len(s); n > 0 {
		b.WriteString(strings.Repeat(" ", n))
	}
	return b.String()
}

// ReplaceToken replaces the first whitespace-delimited token of line with
// value, keeping the leading whitespace and everything after the token.
func ReplaceToken(line, value string) string {
	start := len(line) - len(strings.TrimLeft(line, " \t"))
	end := start
	for end < len(line) && line[end] != ' ' && line[end] != '\t' {
		end++
	}
	return line[:start] + value + line[end:]
}
