// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package positional

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestIsComment(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"C  comment", true},
		{"c lower", true},
		{"* star", true},
		{"# hash", true},
		{"", true},
		{"   \t ", true},
		{"   12   / NLAKES", false},
		{"10/31/1990_24:00\t1\t2.0", false},
		{"\t5\t1.0", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsComment(tt.line), "line %q", tt.line)
	}
}

func TestRead_SkipsCommentsAndHeader(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "table.dat", "C header\n1.0  / FACT\nC between\n* more\n2  / NSP\n# data\n10 20\n")

	tbl, err := Read(path, 2)
	require.NoError(t, err)
	assert.Equal(t, 6, tbl.Data)
	assert.Equal(t, "10 20", tbl.Lines[tbl.Data])
	assert.Len(t, tbl.Header(), 6)
}

func TestRead_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.dat")
	_, err := Read(path, 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingFile)
	assert.Contains(t, err.Error(), path)
}

func TestRead_HeaderCountPastEnd(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "short.dat", "C only\n1 / ONE\n")

	_, err := Read(path, 3)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedFormat)

	var fe *FormatError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "end of file", fe.Got)
}

func TestTable_IntAndFloat(t *testing.T) {
	tbl := &Table{Path: "x.dat", Lines: []string{"  12  3.5  abc"}}

	n, err := tbl.Int(0, 0)
	require.NoError(t, err)
	assert.Equal(t, 12, n)

	f, err := tbl.Float(0, 1)
	require.NoError(t, err)
	assert.Equal(t, 3.5, f)

	_, err = tbl.Int(0, 2)
	assert.ErrorIs(t, err, ErrMalformedFormat)
	assert.Contains(t, err.Error(), "x.dat:1")

	_, err = tbl.Float(0, 9)
	assert.ErrorIs(t, err, ErrMalformedFormat)
}

func TestSplitLines(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, SplitLines("a\r\nb\r\n"))
	assert.Equal(t, []string{"a", "", "b"}, SplitLines("a\n\nb"))
	assert.Nil(t, SplitLines(""))
}

func TestRender_SingleTrailingNewline(t *testing.T) {
	lines := []string{"a", "b"}
	assert.Equal(t, "a\nb\n", Render(lines))
	assert.Len(t, lines, 2, "Render must not modify its input")
}

func TestWriteLines(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out", "new.dat")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("old content that is longer\n"), 0o644))

	require.NoError(t, WriteLines(path, []string{"x", "y"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "x\ny\n", string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file left behind")
}

func TestWriteLines_Failure(t *testing.T) {
	dir := t.TempDir()
	blocker := writeFile(t, dir, "file", "x")

	err := WriteLines(filepath.Join(blocker, "child.dat"), []string{"x"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIOWrite)
}

func TestPadBoth(t *testing.T) {
	assert.Equal(t, "    ab   ", PadBoth("ab", 4, 5))
	assert.Equal(t, "  abcdef", PadBoth("abcdef", 2, 3))
}

func TestReplaceToken(t *testing.T) {
	assert.Equal(t, "     3    / NLAKES", ReplaceToken("     12    / NLAKES", "3"))
	assert.Equal(t, "\t0\t7", ReplaceToken("\t20\t7", "0"))
	assert.Equal(t, "9", ReplaceToken("1", "9"))
}

func TestFormatFloat(t *testing.T) {
	assert.Equal(t, "100", FormatFloat(100))
	assert.Equal(t, "0.25", FormatFloat(0.25))
	assert.Equal(t, "1000000", FormatFloat(1e6))
}
