// Package verify partitions scene lists by source-artifact existence and
// reconciles persisted eval lists against the live dataset tree.
package verify

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/backmassage/sensweep/internal/catalog"
	"github.com/backmassage/sensweep/internal/evallist"
)

// Partition splits ids into scenes whose source artifact exists under
// <root>/<scansSubdir>/<id>/<id><ext> and scenes missing it. Both slices
// preserve the input order; together they cover the input exactly.
func Partition(ids []string, root, scansSubdir, ext string) (valid, missing []string) {
	scansDir := filepath.Join(root, filepath.FromSlash(scansSubdir))
	valid = make([]string, 0, len(ids))
	missing = make([]string, 0)
	for _, id := range ids {
		if _, err := os.Stat(catalog.SourcePath(scansDir, id, ext)); err == nil {
			valid = append(valid, id)
		} else {
			missing = append(missing, id)
		}
	}
	return valid, missing
}

// Reconcile loads the eval list at listPath, partitions it against the
// dataset, and writes the valid subset to outPath. The source list is never
// rewritten: outPath must name a different file, and when no scene survives
// the check nothing is written at all.
func Reconcile(listPath, outPath, root, scansSubdir, ext string) (valid, missing []string, err error) {
	srcAbs, err1 := filepath.Abs(listPath)
	dstAbs, err2 := filepath.Abs(outPath)
	if err1 == nil && err2 == nil && srcAbs == dstAbs {
		return nil, nil, fmt.Errorf("refusing to overwrite the source list %s", listPath)
	}

	ids, err := evallist.Load(listPath)
	if err != nil {
		return nil, nil, err
	}

	valid, missing = Partition(ids, root, scansSubdir, ext)
	if len(valid) == 0 {
		return valid, missing, nil
	}
	if err := evallist.Save(valid, outPath); err != nil {
		return valid, missing, err
	}
	return valid, missing, nil
}
