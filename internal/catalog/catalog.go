// Package catalog enumerates candidate scene identifiers, either from the
// scans directory of a dataset tree or from a pre-captured textual tree
// listing.
package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
)

// sceneName matches directory names following the ScanNet scene convention,
// e.g. scene0000_00.
var sceneName = regexp.MustCompile(`^scene\d+_\d+$`)

// SourcePath returns the expected location of a scene's source artifact
// under the scans directory: <scansDir>/<id>/<id><ext>.
func SourcePath(scansDir, id, ext string) string {
	return filepath.Join(scansDir, id, id+ext)
}

// Scan lists the immediate subdirectories of scansDir whose names follow
// the scene convention, sorted lexicographically. When verifySource is set,
// scenes without their source artifact are excluded.
//
// A missing scans directory returns an empty slice and an error wrapping
// fs.ErrNotExist; the caller decides whether that is fatal.
func Scan(scansDir, ext string, verifySource bool) ([]string, error) {
	entries, err := os.ReadDir(scansDir)
	if err != nil {
		return nil, fmt.Errorf("scans directory %s: %w", scansDir, err)
	}

	var scenes []string
	for _, e := range entries {
		if !e.IsDir() || !sceneName.MatchString(e.Name()) {
			continue
		}
		if verifySource {
			if _, err := os.Stat(SourcePath(scansDir, e.Name(), ext)); err != nil {
				continue
			}
		}
		scenes = append(scenes, e.Name())
	}
	sort.Strings(scenes)
	return scenes, nil
}
