package block

import (
	"strings"

	"github.com/phobologic/regen/internal/document"
	"github.com/phobologic/regen/internal/lang"
	"github.com/phobologic/regen/internal/parse"
)

// Delims is a pair of single-byte block delimiters.
type Delims struct {
	Open  byte
	Close byte
}

// Braces is the default delimiter pair.
var Braces = Delims{Open: '{', Close: '}'}

// Counts holds the number of opening and closing delimiters on one line.
type Counts struct {
	Open  int
	Close int
}

// Delta returns the net change in balance contributed by the line.
func (c Counts) Delta() int {
	return c.Open - c.Close
}

// Scanner counts delimiters per line.
type Scanner interface {
	Scan(doc *document.Document, d Delims) ([]Counts, error)
}

// PlainScanner counts every delimiter byte, including those inside
// comments and string literals.
type PlainScanner struct{}

// Scan implements Scanner.
func (PlainScanner) Scan(doc *document.Document, d Delims) ([]Counts, error) {
	counts := make([]Counts, doc.Len())
	for i, line := range doc.Lines {
		counts[i] = countLine(line, d)
	}
	return counts, nil
}

// SyntaxScanner ignores delimiters inside the comments and literals of its
// language, as recognised by tree-sitter.
type SyntaxScanner struct {
	Lang *lang.Language
}

// Scan implements Scanner.
func (s SyntaxScanner) Scan(doc *document.Document, d Delims) ([]Counts, error) {
	source := []byte(doc.String())
	spans, err := parse.OpaqueSpans(s.Lang, source)
	if err != nil {
		return nil, err
	}
	masked := document.Parse(string(parse.Mask(source, spans)))

	counts := make([]Counts, doc.Len())
	for i, line := range masked.Lines {
		counts[i] = countLine(line, d)
	}
	return counts, nil
}

// ScannerFor returns a SyntaxScanner when the path has a registered
// language and syntax is true; otherwise a PlainScanner.
func ScannerFor(path string, syntax bool) Scanner {
	if !syntax {
		return PlainScanner{}
	}
	if l := lang.ForPath(path); l != nil {
		return SyntaxScanner{Lang: l}
	}
	return PlainScanner{}
}

func countLine(line string, d Delims) Counts {
	return Counts{
		Open:  strings.Count(line, string(d.Open)),
		Close: strings.Count(line, string(d.Close)),
	}
}
