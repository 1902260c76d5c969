// Package copier duplicates selected scene bundles out of the scans tree
// into a separate directory, preserving the per-scene layout. It is a plain
// data mover: per-scene failures are isolated and tallied, never fatal to
// the batch.
package copier

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"

	"github.com/backmassage/sensweep/internal/catalog"
	"github.com/backmassage/sensweep/internal/config"
	"github.com/backmassage/sensweep/internal/display"
	"github.com/backmassage/sensweep/internal/logging"
)

// Stats tallies the outcome of one copy run.
type Stats struct {
	Copied      int
	Failed      int
	CopiedBytes int64
}

// Copier copies scene directories from the dataset's scans tree to
// cfg.OutputDir.
type Copier struct {
	cfg *config.Config
	log *logging.Logger
}

// New returns a Copier operating under cfg.
func New(cfg *config.Config, log *logging.Logger) *Copier {
	return &Copier{cfg: cfg, log: log}
}

// CopyScenes copies each listed scene bundle in order. An existing target
// directory is replaced. With cfg.VerifySrc set, scenes missing their
// source artifact are counted as failures and not copied.
func (c *Copier) CopyScenes(ids []string) Stats {
	var stats Stats
	scansDir := filepath.Join(c.cfg.DatasetRoot, filepath.FromSlash(c.cfg.ScansSubdir))

	bar := progressbar.NewOptions(len(ids),
		progressbar.OptionSetDescription("copying scenes"),
		progressbar.OptionSetWidth(30),
		progressbar.OptionClearOnFinish(),
	)

	for _, id := range ids {
		if c.cfg.VerifySrc {
			if _, err := os.Stat(catalog.SourcePath(scansDir, id, c.cfg.SourceExt)); err != nil {
				c.log.Warn("%s: source artifact missing, skipped", id)
				stats.Failed++
				_ = bar.Add(1)
				continue
			}
		}

		n, err := c.copyScene(id, scansDir)
		if err != nil {
			c.log.Error("%s: %v", id, err)
			stats.Failed++
		} else {
			stats.Copied++
			stats.CopiedBytes += n
			c.log.Debug(c.cfg.Verbose, "%s: copied %s", id, display.FormatBytes(n))
		}
		_ = bar.Add(1)
	}

	c.log.Info("Copied %d scenes (%s), %d failed -> %s",
		stats.Copied, display.FormatBytes(stats.CopiedBytes), stats.Failed, c.cfg.OutputDir)
	return stats
}

// copyScene replaces <OutputDir>/<id> with a fresh copy of the scene
// directory and reports when the copied bundle lacks its source artifact
// (copy still counts as success, matching a partially synced source).
func (c *Copier) copyScene(id, scansDir string) (int64, error) {
	src := filepath.Join(scansDir, id)
	dst := filepath.Join(c.cfg.OutputDir, id)

	fi, err := os.Stat(src)
	if err != nil {
		return 0, fmt.Errorf("source directory: %w", err)
	}
	if !fi.IsDir() {
		return 0, fmt.Errorf("source %s is not a directory", src)
	}

	if err := os.RemoveAll(dst); err != nil {
		return 0, err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return 0, err
	}

	n, err := copyTree(src, dst)
	if err != nil {
		return n, err
	}

	if _, err := os.Stat(catalog.SourcePath(c.cfg.OutputDir, id, c.cfg.SourceExt)); err != nil {
		c.log.Warn("%s: copied, but bundle has no %s artifact", id, c.cfg.SourceExt)
	}
	return n, nil
}

// copyTree recursively copies the directory at src to dst and returns the
// number of file bytes written.
func copyTree(src, dst string) (int64, error) {
	var total int64
	err := filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}

		n, err := copyFile(path, target)
		total += n
		return err
	})
	return total, err
}

func copyFile(src, dst string) (int64, error) {
	in, err := os.Open(src)
	if err != nil {
		return 0, err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return 0, err
	}

	n, err := io.Copy(out, in)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	return n, err
}
