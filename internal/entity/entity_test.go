package entity

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/phobologic/regen/internal/document"
)

const prefix = "public void "

func TestExtract(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want []string
	}{
		{
			name: "order preserved",
			src:  "public void Move\npublic void Rotate\r\npublic void Scale",
			want: []string{"Move", "Rotate", "Scale"},
		},
		{
			name: "surrounding whitespace trimmed",
			src:  "public void    Move   \n",
			want: []string{"Move"},
		},
		{
			name: "indented lines ignored",
			src:  "    public void Hidden\npublic void Move\n",
			want: []string{"Move"},
		},
		{
			name: "blank remainder skipped",
			src:  "public void \npublic void    \npublic void Move\n",
			want: []string{"Move"},
		},
		{
			name: "duplicates kept",
			src:  "public void Move\npublic void Move\n",
			want: []string{"Move", "Move"},
		},
		{
			name: "other lines ignored",
			src:  "using System;\n// public void Commented\npublic void Move\n}\n",
			want: []string{"Move"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Extract(document.Parse(tt.src), prefix)
			if err != nil {
				t.Fatalf("Extract: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Extract mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestExtractNone(t *testing.T) {
	t.Parallel()

	_, err := Extract(document.Parse("class Writer {\n}\n"), prefix)
	if !errors.Is(err, ErrNoEntities) {
		t.Fatalf("err = %v, want ErrNoEntities", err)
	}
}

func TestExtractEmptyPrefix(t *testing.T) {
	t.Parallel()

	_, err := Extract(document.Parse("anything\n"), "")
	if !errors.Is(err, ErrEmptyPrefix) {
		t.Fatalf("err = %v, want ErrEmptyPrefix", err)
	}
}
