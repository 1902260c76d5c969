// Package check provides preflight diagnostics (the check command) and
// pre-batch dependency validation for the converter interpreter, the
// reader script, and the dataset layout.
package check

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/backmassage/sensweep/internal/catalog"
	"github.com/backmassage/sensweep/internal/config"
)

// Sentinel errors returned by CheckDeps when a required piece is missing.
var (
	ErrPythonNotFound = errors.New("converter interpreter not found on PATH")
	ErrReaderNotFound = errors.New("converter script not found")
)

// Logger is the minimal logging interface needed by RunCheck. Defined here
// (rather than importing the logging package) so that check stays
// dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(bool, string, ...interface{})
}

// RunCheck runs the interactive check flow: interpreter availability, reader
// script presence, and (when a dataset root is configured) the scans tree
// and its scene/artifact counts. Informational only; returns false when any
// hard requirement is missing.
func RunCheck(cfg *config.Config, log Logger) bool {
	log.Info("=== System Check ===")
	ok := checkPython(cfg, log)
	if !checkReader(cfg, log) {
		ok = false
	}
	checkDataset(cfg, log)
	return ok
}

// CheckDeps fails fast before a batch run when the interpreter or the
// reader script is unavailable.
func CheckDeps(cfg *config.Config) error {
	if _, err := exec.LookPath(cfg.PythonBin); err != nil {
		return fmt.Errorf("%w: %s", ErrPythonNotFound, cfg.PythonBin)
	}
	if _, err := os.Stat(cfg.ReaderScript); err != nil {
		return fmt.Errorf("%w: %s", ErrReaderNotFound, cfg.ReaderScript)
	}
	return nil
}

func checkPython(cfg *config.Config, log Logger) bool {
	path, err := exec.LookPath(cfg.PythonBin)
	if err != nil {
		log.Error("Interpreter not found: %s", cfg.PythonBin)
		return false
	}
	out, err := exec.Command(path, "--version").CombinedOutput()
	if err != nil {
		log.Warn("%s found but --version failed: %v", cfg.PythonBin, err)
		return true
	}
	log.Success("Interpreter: %s (%s)", strings.TrimSpace(string(out)), path)
	return true
}

func checkReader(cfg *config.Config, log Logger) bool {
	fi, err := os.Stat(cfg.ReaderScript)
	if err != nil {
		log.Error("Reader script not found: %s", cfg.ReaderScript)
		return false
	}
	if fi.IsDir() {
		log.Error("Reader script path is a directory: %s", cfg.ReaderScript)
		return false
	}
	log.Success("Reader script: %s", cfg.ReaderScript)
	return true
}

func checkDataset(cfg *config.Config, log Logger) {
	if cfg.DatasetRoot == "" {
		log.Info("No dataset root configured, skipping dataset check")
		return
	}

	scansDir := filepath.Join(cfg.DatasetRoot, filepath.FromSlash(cfg.ScansSubdir))
	all, err := catalog.Scan(scansDir, cfg.SourceExt, false)
	if err != nil {
		log.Warn("Scans directory not readable: %s", scansDir)
		return
	}

	withSource, _ := catalog.Scan(scansDir, cfg.SourceExt, true)
	if len(all) == 0 {
		log.Warn("No scenes found under %s", scansDir)
		return
	}
	log.Success("Dataset: %d scenes, %d with %s artifact", len(all), len(withSource), cfg.SourceExt)
	if len(withSource) < len(all) {
		log.Warn("%d scenes are missing their source artifact", len(all)-len(withSource))
	}
}
