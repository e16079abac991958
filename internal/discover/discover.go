// Package discover resolves configured document paths, expanding globs
// relative to the workspace root.
package discover

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
)

// ErrNoMatch is returned when a glob matches no files.
var ErrNoMatch = errors.New("pattern matched no files")

var skipDirs = map[string]struct{}{
	"node_modules": {},
	".git":         {},
	".hg":          {},
	".svn":         {},
	"bin":          {},
	"obj":          {},
	"Library":      {},
	"Temp":         {},
	"build":        {},
	"dist":         {},
	"vendor":       {},
}

// IsGlob reports whether pattern contains glob metacharacters.
func IsGlob(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[")
}

// Paths resolves pattern against root and returns absolute paths. A
// literal pattern is returned as-is, whether or not the file exists, so
// callers can report it as missing. A glob is matched against
// slash-separated paths relative to root; hidden files, skipDirs and
// .gitignore'd paths are never matched. Results are sorted.
func Paths(root, pattern string) ([]string, error) {
	if !IsGlob(pattern) {
		return []string{filepath.Join(root, filepath.FromSlash(pattern))}, nil
	}
	if _, err := path.Match(pattern, ""); err != nil {
		return nil, fmt.Errorf("pattern %q: %w", pattern, err)
	}

	gi := loadGitignore(root)

	var results []string
	err := filepath.WalkDir(root, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return nil // skip errors
		}

		name := d.Name()

		if d.IsDir() {
			if p == root {
				return nil
			}
			if _, skip := skipDirs[name]; skip || strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			return nil
		}

		if strings.HasPrefix(name, ".") {
			return nil
		}

		// Skip symlinks
		if d.Type()&os.ModeSymlink != 0 {
			return nil
		}

		rel, err := filepath.Rel(root, p)
		if err != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if gi != nil && gi.MatchesPath(rel) {
			return nil
		}

		if ok, _ := path.Match(pattern, rel); ok {
			results = append(results, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(results) == 0 {
		return nil, fmt.Errorf("%w: %q under %s", ErrNoMatch, pattern, root)
	}

	sort.Strings(results)
	return results, nil
}

func loadGitignore(root string) *ignore.GitIgnore {
	p := filepath.Join(root, ".gitignore")
	gi, err := ignore.CompileIgnoreFile(p)
	if err != nil {
		return nil
	}
	return gi
}
