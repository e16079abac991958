package document

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		text  string
		lines int
	}{
		{"empty", "", 0},
		{"single unterminated", "abc", 1},
		{"single terminated", "abc\n", 1},
		{"crlf", "a\r\nb\r\n", 2},
		{"mixed tail", "a\nb\nc", 3},
		{"blank lines", "\n\n\n", 3},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			doc := Parse(tt.text)
			assert.Equal(t, tt.lines, doc.Len())
			assert.Equal(t, tt.text, doc.String())
		})
	}
}

func TestContentAndEnding(t *testing.T) {
	t.Parallel()

	doc := Parse("one\r\ntwo\nthree")
	assert.Equal(t, "one", doc.Content(0))
	assert.Equal(t, "\r\n", doc.Ending(0))
	assert.Equal(t, "two", doc.Content(1))
	assert.Equal(t, "\n", doc.Ending(1))
	assert.Equal(t, "three", doc.Content(2))
	assert.Equal(t, "", doc.Ending(2))
}

func TestNewline(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "\n", Parse("").Newline())
	assert.Equal(t, "\n", Parse("a\nb\n").Newline())
	assert.Equal(t, "\r\n", Parse("a\r\nb\r\nc\n").Newline())
}

func TestReadMissing(t *testing.T) {
	t.Parallel()

	_, err := Read(filepath.Join(t.TempDir(), "nope.cs"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Contains(t, err.Error(), "nope.cs")
}

func TestWriteReplacesAndKeepsMode(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "target.cs")
	require.NoError(t, os.WriteFile(path, []byte("old\n"), 0o600))

	require.NoError(t, Write(path, Parse("new\r\ncontent")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new\r\ncontent", string(data))

	fi, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), fi.Mode().Perm())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file left behind")
}

func TestWriteCreates(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "fresh.txt")
	require.NoError(t, Write(path, Parse("x\n")))

	doc, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, "x\n", doc.String())
}
