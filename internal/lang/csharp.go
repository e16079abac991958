package lang

import "github.com/smacker/go-tree-sitter/csharp"

func init() {
	Languages["csharp"] = &Language{
		Name:       "csharp",
		Extensions: []string{".cs"},
		lang:       csharp.GetLanguage(),
		Opaque: []string{
			"comment",
			"string_literal",
			"verbatim_string_literal",
			"raw_string_literal",
			"interpolated_string_expression",
			"character_literal",
		},
	}
}
