// Package block locates marker-introduced, delimiter-balanced blocks in a
// document and replaces their bodies.
package block

import (
	"errors"
	"fmt"
	"strings"

	"github.com/phobologic/regen/internal/document"
)

var (
	ErrMarkerNotFound = errors.New("marker not found")
	ErrOpenNotFound   = errors.New("opening delimiter not found")
	ErrUnbalanced     = errors.New("closing delimiter not found")
	// ErrInlineBlock is returned when a block opens and closes on the same
	// line, leaving no body lines to replace.
	ErrInlineBlock = errors.New("block opens and closes on one line")
)

// CountError reports a marker count that differs from the expected one.
type CountError struct {
	Marker string
	Want   int
	Got    int
}

func (e *CountError) Error() string {
	return fmt.Sprintf("expected %d %q block(s), found %d", e.Want, e.Marker, e.Got)
}

// Block identifies a located region by line index. Lines strictly between
// Open and Close form the body.
type Block struct {
	Marker int
	Open   int
	Close  int
}

// Locator finds blocks in one document. Delimiter counts are computed once
// so several blocks can be located without rescanning.
type Locator struct {
	doc    *document.Document
	counts []Counts
	delims Delims
}

// NewLocator scans doc for delimiters with sc.
func NewLocator(doc *document.Document, d Delims, sc Scanner) (*Locator, error) {
	counts, err := sc.Scan(doc, d)
	if err != nil {
		return nil, err
	}
	return &Locator{doc: doc, counts: counts, delims: d}, nil
}

// Locate finds the first line at or after cursor containing marker, the
// first line from there containing an opening delimiter, and the line at
// which the running delimiter balance first returns to zero.
func (l *Locator) Locate(marker string, cursor int) (Block, error) {
	n := l.doc.Len()
	if cursor < 0 {
		cursor = 0
	}

	m := cursor
	for m < n && !strings.Contains(l.doc.Lines[m], marker) {
		m++
	}
	if m >= n {
		return Block{}, fmt.Errorf("%w: %q after line %d", ErrMarkerNotFound, marker, cursor+1)
	}

	open := m
	for open < n && l.counts[open].Open == 0 {
		open++
	}
	if open >= n {
		return Block{}, fmt.Errorf("%w: %q after %q on line %d", ErrOpenNotFound, l.delims.Open, marker, m+1)
	}

	depth := 0
	for i := open; i < n; i++ {
		depth += l.counts[i].Delta()
		if depth == 0 {
			if i == open {
				return Block{}, fmt.Errorf("%w: line %d", ErrInlineBlock, open+1)
			}
			return Block{Marker: m, Open: open, Close: i}, nil
		}
	}
	return Block{}, fmt.Errorf("%w: %q opened on line %d", ErrUnbalanced, l.delims.Close, open+1)
}

// Locate is a convenience wrapper for a single search.
func Locate(doc *document.Document, marker string, cursor int, d Delims, sc Scanner) (Block, error) {
	l, err := NewLocator(doc, d, sc)
	if err != nil {
		return Block{}, err
	}
	return l.Locate(marker, cursor)
}

// Count returns the number of lines containing marker.
func Count(doc *document.Document, marker string) int {
	n := 0
	for _, line := range doc.Lines {
		if strings.Contains(line, marker) {
			n++
		}
	}
	return n
}

// Splice returns a new document with the body of b replaced by lines. The
// opening and closing delimiter lines are kept.
func Splice(doc *document.Document, b Block, lines []string) *document.Document {
	out := make([]string, 0, doc.Len()-(b.Close-b.Open-1)+len(lines))
	out = append(out, doc.Lines[:b.Open+1]...)
	out = append(out, lines...)
	out = append(out, doc.Lines[b.Close:]...)
	return document.New(out)
}

// ReplaceAll replaces the bodies of every marker block in doc, in order.
// The document must contain exactly len(bodies) marker lines. Either every
// block is replaced or an error is returned and doc is left untouched.
func ReplaceAll(doc *document.Document, marker string, d Delims, sc Scanner, bodies [][]string) (*document.Document, []Block, error) {
	if got := Count(doc, marker); got != len(bodies) {
		return nil, nil, &CountError{Marker: marker, Want: len(bodies), Got: got}
	}

	loc, err := NewLocator(doc, d, sc)
	if err != nil {
		return nil, nil, err
	}

	var (
		out    []string
		blocks []Block
		prev   int
	)
	for _, body := range bodies {
		b, err := loc.Locate(marker, prev)
		if err != nil {
			return nil, nil, err
		}
		out = append(out, doc.Lines[prev:b.Open+1]...)
		out = append(out, body...)
		prev = b.Close
		blocks = append(blocks, b)
	}
	out = append(out, doc.Lines[prev:]...)

	return document.New(out), blocks, nil
}
