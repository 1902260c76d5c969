// Package evallist loads and persists the ordered, newline-delimited scene
// lists that connect scene selection to batch processing. The line format
// is the sole interchange format: one identifier per line, blank lines
// ignored, no header.
package evallist

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Load reads the eval list at path, preserving line order and skipping
// blank lines. An absent file returns an error wrapping fs.ErrNotExist;
// callers treat that as a first-run condition, not a crash.
func Load(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("eval list: %w", err)
	}
	defer f.Close()

	var ids []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		id := strings.TrimSpace(sc.Text())
		if id == "" {
			continue
		}
		ids = append(ids, id)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("eval list %s: %w", path, err)
	}
	return ids, nil
}

// Save writes ids one per line, in the given order, replacing any existing
// file. The write goes to a same-directory temp file followed by a rename,
// so a crash mid-write cannot corrupt a previously valid list.
func Save(ids []string, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		tmp.Close()
		os.Remove(tmpName)
	}()

	w := bufio.NewWriter(tmp)
	for _, id := range ids {
		if _, err := w.WriteString(id + "\n"); err != nil {
			return err
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
