package lang

import "github.com/smacker/go-tree-sitter/python"

func init() {
	// Interpolation holes in f-strings are part of the string node, so
	// braces inside them are never counted.
	Languages["python"] = &Language{
		Name:       "python",
		Extensions: []string{".py"},
		lang:       python.GetLanguage(),
		Opaque:     []string{"comment", "string"},
	}
}
