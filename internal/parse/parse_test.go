package parse

import (
	"strings"
	"testing"

	"github.com/phobologic/regen/internal/lang"
)

func spansText(source string, spans []Span) []string {
	var out []string
	for _, s := range spans {
		out = append(out, source[s.Start:s.End])
	}
	return out
}

func setup(t *testing.T, langName string) func(source string) []Span {
	t.Helper()
	l := lang.Languages[langName]
	if l == nil {
		t.Fatalf("language %q not registered", langName)
	}
	return func(source string) []Span {
		spans, err := OpaqueSpans(l, []byte(source))
		if err != nil {
			t.Fatalf("OpaqueSpans: %v", err)
		}
		return spans
	}
}

func TestCSharpStringsAndComments(t *testing.T) {
	t.Parallel()
	spans := setup(t, "csharp")

	source := `class A {
    void F() {
        // close } here
        var s = "{{";
        var c = '}';
    }
}
`
	got := spansText(source, spans(source))
	joined := strings.Join(got, "|")
	for _, want := range []string{"// close } here", `"{{"`, `'}'`} {
		if !strings.Contains(joined, want) {
			t.Errorf("missing opaque span %q in %q", want, joined)
		}
	}
	for _, s := range got {
		if strings.Contains(s, "class") || strings.Contains(s, "void") {
			t.Errorf("span %q covers code", s)
		}
	}
}

func TestGoStringsAndComments(t *testing.T) {
	t.Parallel()
	spans := setup(t, "go")

	source := "package p\n\nfunc f() {\n\t_ = \"}\" // {\n\t_ = `{`\n}\n"
	got := spansText(source, spans(source))
	want := []string{`"}"`, "// {", "`{`"}
	if len(got) != len(want) {
		t.Fatalf("spans = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("span %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSpansSortedAndDisjoint(t *testing.T) {
	t.Parallel()
	spans := setup(t, "go")

	source := "package p\n// a\n// b\nvar x = \"c\"\n"
	got := spans(source)
	for i := 1; i < len(got); i++ {
		if got[i].Start < got[i-1].End {
			t.Errorf("span %d overlaps previous: %+v %+v", i, got[i-1], got[i])
		}
	}
}

func TestEmptySource(t *testing.T) {
	t.Parallel()
	spans := setup(t, "csharp")

	if got := spans(""); got != nil {
		t.Errorf("expected nil spans, got %+v", got)
	}
}

func TestMask(t *testing.T) {
	t.Parallel()

	source := []byte("a \"{\n}\" b")
	got := string(Mask(source, []Span{{Start: 2, End: 7}}))
	if got != "a   \n   b" {
		t.Errorf("Mask = %q", got)
	}
	if string(source) != "a \"{\n}\" b" {
		t.Error("Mask modified its input")
	}
}

func TestSpanContains(t *testing.T) {
	t.Parallel()

	s := Span{Start: 3, End: 5}
	if s.Contains(2) || !s.Contains(3) || !s.Contains(4) || s.Contains(5) {
		t.Errorf("Contains is not half-open: %+v", s)
	}
}
