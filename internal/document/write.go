package document

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
)

const defaultPerm = 0o644

// Write replaces the file at path with the document contents. The data is
// written to a temporary file in the same directory and renamed over the
// target, so readers never observe a partially written document. The mode
// of an existing file is preserved.
func Write(path string, doc *Document) error {
	perm := os.FileMode(defaultPerm)
	if fi, err := os.Stat(path); err == nil {
		perm = fi.Mode().Perm()
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".regen-*")
	if err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	tmpPath := tmp.Name()

	fail := func(err error) error {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("writing %s: %w", path, err)
	}

	bw := bufio.NewWriter(tmp)
	for _, line := range doc.Lines {
		if _, err := bw.WriteString(line); err != nil {
			return fail(err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fail(err)
	}
	if err := tmp.Sync(); err != nil {
		return fail(err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("writing %s: %w", path, err)
	}

	// Best effort: persist the rename.
	if d, err := os.Open(dir); err == nil {
		_ = d.Sync()
		_ = d.Close()
	}
	return nil
}
