package regen

import (
	"github.com/pmezard/go-difflib/difflib"

	"github.com/phobologic/regen/internal/document"
)

// Diff returns a unified diff from before to after labelled with path.
func Diff(path string, before, after *document.Document) (string, error) {
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(before.String()),
		B:        difflib.SplitLines(after.String()),
		FromFile: "a/" + path,
		ToFile:   "b/" + path,
		Context:  3,
	})
}
