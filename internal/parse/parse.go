// Package parse finds the byte ranges of comments and literals in source
// files using tree-sitter.
package parse

import (
	"context"
	"fmt"
	"sort"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/phobologic/regen/internal/lang"
)

// Span is a half-open byte range [Start, End) of the source.
type Span struct {
	Start int
	End   int
}

// Contains reports whether offset lies inside the span.
func (s Span) Contains(offset int) bool {
	return offset >= s.Start && offset < s.End
}

// OpaqueSpans parses source with the language's grammar and returns the
// ranges covered by its opaque nodes, sorted and non-overlapping.
// Source that does not fully parse still yields spans for the nodes
// tree-sitter recovered.
func OpaqueSpans(l *lang.Language, source []byte) ([]Span, error) {
	if len(source) == 0 {
		return nil, nil
	}

	parser := l.NewParser()
	defer parser.Close()

	tree, err := parser.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return nil, fmt.Errorf("parsing %s source: %w", l.Name, err)
	}
	defer tree.Close()

	var spans []Span
	collect(l, tree.RootNode(), &spans)

	sort.Slice(spans, func(i, j int) bool {
		return spans[i].Start < spans[j].Start
	})
	return spans, nil
}

func collect(l *lang.Language, node *sitter.Node, spans *[]Span) {
	if node == nil {
		return
	}
	if l.IsOpaque(node.Type()) {
		if end := int(node.EndByte()); end > int(node.StartByte()) {
			*spans = append(*spans, Span{Start: int(node.StartByte()), End: end})
		}
		return
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		collect(l, node.Child(i), spans)
	}
}

// Mask returns a copy of source with every byte inside spans replaced by a
// space. Newlines are kept so line structure is unchanged.
func Mask(source []byte, spans []Span) []byte {
	out := make([]byte, len(source))
	copy(out, source)
	for _, s := range spans {
		for i := s.Start; i < s.End && i < len(out); i++ {
			if out[i] != '\n' && out[i] != '\r' {
				out[i] = ' '
			}
		}
	}
	return out
}
