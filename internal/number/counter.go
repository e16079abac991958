package number

import "github.com/phobologic/regen/internal/document"

// Counter numbers every literal its rule matches across a whole document.
// It is the degenerate form of Paragraphs: one paragraph spanning the
// document, step 1, no overrides. Numbering runs in two passes: Reset
// sets every literal to Sentinel, then Enumerate replaces each literal
// equal to Sentinel with 0, 1, 2, ... in document order.
type Counter struct {
	Rule *Rule
	// Sentinel must be non-negative; rules only match unsigned literals.
	Sentinel int
}

// Reset rewrites every matched literal to the sentinel.
func (c Counter) Reset(doc *document.Document) (*document.Document, int) {
	lines, n := renumber(doc.Lines, c.Rule, func(int) (int, bool) {
		return c.Sentinel, true
	})
	return document.New(lines), n
}

// Enumerate rewrites literals equal to the sentinel with increasing values
// starting at 0. Other literals are left alone and do not consume a value.
func (c Counter) Enumerate(doc *document.Document) (*document.Document, int) {
	var seq sequence
	lines, n := renumber(doc.Lines, c.Rule, func(old int) (int, bool) {
		if old != c.Sentinel {
			return 0, false
		}
		return seq.take(), true
	})
	return document.New(lines), n
}

// Renumber runs Reset followed by Enumerate.
func (c Counter) Renumber(doc *document.Document) (*document.Document, int) {
	reset, _ := c.Reset(doc)
	return c.Enumerate(reset)
}
