// Package entity extracts declared entity names from a source document.
package entity

import (
	"errors"
	"strings"

	"github.com/phobologic/regen/internal/document"
)

var (
	// ErrNoEntities is returned when a source document declares nothing.
	ErrNoEntities = errors.New("no entities declared")
	// ErrEmptyPrefix is returned when the declaration prefix is empty.
	ErrEmptyPrefix = errors.New("empty declaration prefix")
)

// Extract returns the names declared by lines starting with prefix, in
// document order. The prefix must match at the very start of the line; the
// remainder is trimmed and blank remainders are skipped. Duplicates are
// kept.
func Extract(doc *document.Document, prefix string) ([]string, error) {
	if prefix == "" {
		return nil, ErrEmptyPrefix
	}

	var names []string
	for i := range doc.Lines {
		line := doc.Content(i)
		if !strings.HasPrefix(line, prefix) {
			continue
		}
		name := strings.TrimSpace(line[len(prefix):])
		if name == "" {
			continue
		}
		names = append(names, name)
	}

	if len(names) == 0 {
		return nil, ErrNoEntities
	}
	return names, nil
}
