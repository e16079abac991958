package lang

import "github.com/smacker/go-tree-sitter/golang"

func init() {
	Languages["go"] = &Language{
		Name:       "go",
		Extensions: []string{".go"},
		lang:       golang.GetLanguage(),
		Opaque: []string{
			"comment",
			"interpreted_string_literal",
			"raw_string_literal",
			"rune_literal",
		},
	}
}
