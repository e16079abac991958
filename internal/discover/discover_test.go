package discover

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func rels(t *testing.T, root string, paths []string) []string {
	t.Helper()
	out := make([]string, len(paths))
	for i, p := range paths {
		r, err := filepath.Rel(root, p)
		if err != nil {
			t.Fatal(err)
		}
		out[i] = filepath.ToSlash(r)
	}
	return out
}

func TestPathsLiteral(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	got, err := Paths(dir, "ABI/RenderAction.proto")
	if err != nil {
		t.Fatalf("Paths: %v", err)
	}
	want := filepath.Join(dir, "ABI", "RenderAction.proto")
	if len(got) != 1 || got[0] != want {
		t.Errorf("Paths = %v, want [%s]", got, want)
	}
}

func TestPathsGlob(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "and/world.go", "package and")
	writeFile(t, dir, "and/peer.go", "package and")
	writeFile(t, dir, "and/notes.txt", "")
	writeFile(t, dir, "and/.hidden.go", "package and")
	writeFile(t, dir, "other/world.go", "package other")

	got, err := Paths(dir, "and/*.go")
	if err != nil {
		t.Fatalf("Paths: %v", err)
	}
	r := rels(t, dir, got)
	if len(r) != 2 || r[0] != "and/peer.go" || r[1] != "and/world.go" {
		t.Errorf("Paths = %v", r)
	}
}

func TestPathsSkipDirs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "main.go", "package main")
	writeFile(t, dir, "vendor/lib.go", "package lib")
	writeFile(t, dir, ".cache/x.go", "package x")

	got, err := Paths(dir, "*/*.go")
	if err == nil {
		t.Fatalf("expected no match, got %v", rels(t, dir, got))
	}
	if !errors.Is(err, ErrNoMatch) {
		t.Errorf("err = %v, want ErrNoMatch", err)
	}
}

func TestPathsGitignore(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, ".gitignore", "generated/\n")
	writeFile(t, dir, "src/a.go", "package src")
	writeFile(t, dir, "generated/b.go", "package generated")

	got, err := Paths(dir, "*/*.go")
	if err != nil {
		t.Fatalf("Paths: %v", err)
	}
	r := rels(t, dir, got)
	if len(r) != 1 || r[0] != "src/a.go" {
		t.Errorf("Paths = %v, want [src/a.go]", r)
	}
}

func TestPathsBadPattern(t *testing.T) {
	t.Parallel()

	if _, err := Paths(t.TempDir(), "[a-"); err == nil {
		t.Error("expected error for malformed pattern")
	}
}

func TestIsGlob(t *testing.T) {
	t.Parallel()

	tests := map[string]bool{
		"a.go":     false,
		"and/*.go": true,
		"file?.cs": true,
		"[ab].go":  true,
		"dir/x.cs": false,
	}
	for in, want := range tests {
		if got := IsGlob(in); got != want {
			t.Errorf("IsGlob(%q) = %v, want %v", in, got, want)
		}
	}
}
