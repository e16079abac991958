package lang

import (
	"testing"
)

func TestForExtension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		ext  string
		want string
	}{
		{".cs", "csharp"},
		{".CS", "csharp"},
		{".go", "go"},
		{".proto", "proto"},
		{".py", "python"},
		{".rb", "ruby"},
		{".js", ""},
		{"", ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.ext, func(t *testing.T) {
			t.Parallel()
			got := ForExtension(tt.ext)
			if got != tt.want {
				t.Errorf("ForExtension(%q) = %q, want %q", tt.ext, got, tt.want)
			}
		})
	}
}

func TestForPath(t *testing.T) {
	t.Parallel()

	if l := ForPath("Assets/Host/HostInterpretRequest.cs"); l == nil || l.Name != "csharp" {
		t.Errorf("ForPath(.cs) = %v, want csharp", l)
	}
	if l := ForPath("README"); l != nil {
		t.Errorf("ForPath(README) = %v, want nil", l.Name)
	}
}

func TestLanguagesRegistered(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"csharp", "go", "proto", "python", "ruby"} {
		l, ok := Languages[name]
		if !ok {
			t.Fatalf("%s language not registered", name)
		}
		if l.GetLanguage() == nil {
			t.Errorf("%s language is nil", name)
		}
		if !l.IsOpaque("comment") {
			t.Errorf("%s: comment should be opaque", name)
		}
		if l.IsOpaque("block") {
			t.Errorf("%s: block should not be opaque", name)
		}
	}
}

func TestNewParser(t *testing.T) {
	t.Parallel()

	p := Languages["csharp"].NewParser()
	if p == nil {
		t.Fatal("NewParser returned nil")
	}
}
