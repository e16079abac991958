// Package lang provides a language registry mapping file extensions to
// tree-sitter grammars and the node types whose text is opaque to
// delimiter counting (comments, strings and character literals).
package lang

import (
	"path/filepath"
	"strings"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
)

// Language holds tree-sitter configuration for a supported language.
type Language struct {
	Name       string
	Extensions []string
	lang       *sitter.Language

	// Opaque lists node types whose whole byte range is skipped when
	// counting delimiters. Nodes nested inside an opaque node are not
	// visited.
	Opaque []string

	opaqueOnce sync.Once
	opaqueSet  map[string]struct{}
}

// GetLanguage returns the tree-sitter Language pointer.
func (l *Language) GetLanguage() *sitter.Language {
	return l.lang
}

// NewParser creates a fresh tree-sitter parser for this language.
// Parsers are not safe for concurrent use.
func (l *Language) NewParser() *sitter.Parser {
	p := sitter.NewParser()
	p.SetLanguage(l.lang)
	return p
}

// IsOpaque reports whether nodes of the given type hide their contents
// from delimiter counting.
func (l *Language) IsOpaque(nodeType string) bool {
	l.opaqueOnce.Do(func() {
		l.opaqueSet = make(map[string]struct{}, len(l.Opaque))
		for _, t := range l.Opaque {
			l.opaqueSet[t] = struct{}{}
		}
	})
	_, ok := l.opaqueSet[nodeType]
	return ok
}

// Languages maps language names to their configuration.
// Populated by init() functions in per-language files.
var Languages = map[string]*Language{}

// extensionMap is built lazily after all init() functions have run.
var extensionMap map[string]string
var extensionOnce sync.Once

func getExtensionMap() map[string]string {
	extensionOnce.Do(func() {
		extensionMap = make(map[string]string)
		for _, l := range Languages {
			for _, ext := range l.Extensions {
				extensionMap[ext] = l.Name
			}
		}
	})
	return extensionMap
}

// ForExtension returns the language name for a file extension, or "" if unsupported.
func ForExtension(ext string) string {
	return getExtensionMap()[strings.ToLower(ext)]
}

// ForPath returns the language for a file path, or nil if its extension is
// not registered.
func ForPath(path string) *Language {
	name := ForExtension(filepath.Ext(path))
	if name == "" {
		return nil
	}
	return Languages[name]
}
