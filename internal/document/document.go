// Package document holds line-oriented text documents that keep every
// original byte, including line endings.
package document

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// ErrNotFound is returned when a required document does not exist.
var ErrNotFound = errors.New("document not found")

// Document is an ordered sequence of lines. Each line retains its original
// terminator, so String() reproduces the input exactly.
type Document struct {
	Lines []string
}

// Parse splits text into lines, keeping line endings attached.
func Parse(text string) *Document {
	var lines []string
	for len(text) > 0 {
		i := strings.IndexByte(text, '\n')
		if i < 0 {
			lines = append(lines, text)
			break
		}
		lines = append(lines, text[:i+1])
		text = text[i+1:]
	}
	return &Document{Lines: lines}
}

// New builds a document from already-terminated lines.
func New(lines []string) *Document {
	return &Document{Lines: lines}
}

// Len returns the number of lines.
func (d *Document) Len() int {
	return len(d.Lines)
}

// String joins the lines back into the full text.
func (d *Document) String() string {
	return strings.Join(d.Lines, "")
}

// Equal reports whether two documents have identical bytes.
func (d *Document) Equal(other *Document) bool {
	return d.String() == other.String()
}

// Content returns line i without its terminator.
func (d *Document) Content(i int) string {
	return strings.TrimRight(d.Lines[i], "\r\n")
}

// Ending returns the terminator of line i ("\n", "\r\n" or "").
func (d *Document) Ending(i int) string {
	return d.Lines[i][len(d.Content(i)):]
}

// Newline returns the dominant line terminator of the document,
// defaulting to "\n".
func (d *Document) Newline() string {
	var lf, crlf int
	for _, line := range d.Lines {
		switch {
		case strings.HasSuffix(line, "\r\n"):
			crlf++
		case strings.HasSuffix(line, "\n"):
			lf++
		}
	}
	if crlf > lf {
		return "\r\n"
	}
	return "\n"
}

// Read loads the document at path.
func Read(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, ErrNotFound)
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return Parse(string(data)), nil
}
