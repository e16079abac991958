package lang

import "github.com/smacker/go-tree-sitter/protobuf"

func init() {
	Languages["proto"] = &Language{
		Name:       "proto",
		Extensions: []string{".proto"},
		lang:       protobuf.GetLanguage(),
		Opaque:     []string{"comment", "string"},
	}
}
