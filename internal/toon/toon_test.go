package toon

import (
	"strings"
	"testing"

	"github.com/phobologic/regen/internal/model"
)

func TestEncodeValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", `""`},
		{"simple", "hello", "hello"},
		{"leading space", " hello", `" hello"`},
		{"trailing space", "hello ", `"hello "`},
		{"newline", "a\nb", `"a\nb"`},
		{"tab", "a\tb", `"a\tb"`},
		{"carriage return", "a\rb", `"a\rb"`},
		{"true keyword", "true", `"true"`},
		{"True keyword", "True", `"True"`},
		{"false keyword", "false", `"false"`},
		{"null keyword", "null", `"null"`},
		{"integer", "42", "42"},
		{"negative integer", "-1", "-1"},
		{"float", "3.14", "3.14"},
		{"zero", "0", "0"},
		{"leading zero invalid", "01", "01"},
		{"comma", "a,b", `"a,b"`},
		{"colon", "a:b", `"a:b"`},
		{"quote", `a"b`, `"a\"b"`},
		{"backslash", `a\b`, `"a\\b"`},
		{"bracket", "a[b", `"a[b"`},
		{"brace", "a{b", `"a{b"`},
		{"dash prefix", "-foo", `"-foo"`},
		{"path", "ABI/RenderAction.proto", "ABI/RenderAction.proto"},
		{"job name", "render-actions", "render-actions"},
		{"windows path", `Assets\Host\A.cs`, `"Assets\\Host\\A.cs"`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := encodeValue(tt.in)
			if got != tt.want {
				t.Errorf("encodeValue(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestEncode(t *testing.T) {
	t.Parallel()

	r := &model.Report{
		Root: "unity",
		Results: []model.Result{
			{Job: "render-actions", Kind: model.Cases, Path: "HostInterpretRequest.cs", Blocks: 1, Lines: 3, Changed: true},
			{Job: "render-action-proto", Kind: model.Paragraphs, Path: "ABI/RenderAction.proto", Blocks: 2, Lines: 5},
			{Job: "true", Kind: model.Counters, Path: "and/world.go", Lines: 12},
		},
	}

	want := `root: unity
mode: write
results[3]{job,kind,path,blocks,lines,changed}:
  render-actions,cases,HostInterpretRequest.cs,1,3,true
  render-action-proto,paragraphs,ABI/RenderAction.proto,2,5,false
  "true",counters,and/world.go,0,12,false`

	if got := Encode(r); got != want {
		t.Errorf("Encode mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestEncodeDryRunEmpty(t *testing.T) {
	t.Parallel()

	got := Encode(&model.Report{Root: "/tmp/x", DryRun: true})
	lines := strings.Split(got, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %q", got)
	}
	if lines[1] != "mode: dry-run" {
		t.Errorf("mode line = %q", lines[1])
	}
	if lines[2] != "results[0]{job,kind,path,blocks,lines,changed}:" {
		t.Errorf("table header = %q", lines[2])
	}
}
