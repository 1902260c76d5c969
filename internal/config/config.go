// Package config holds runtime configuration: defaults, an optional YAML
// settings file, environment overrides, and per-command CLI flag parsing.
// Precedence from lowest to highest: defaults, settings file, environment,
// flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// --- Enum types for validated string fields ---

// SampleMode selects the scene sampling strategy.
type SampleMode string

const (
	SampleInterval SampleMode = "interval" // Fixed-stride over the sorted catalog (default).
	SampleRandom   SampleMode = "random"   // Seeded sample without replacement.
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// ExportFlags mirrors the converter's export-mode switches. All four are on
// by default, matching a full export of every available data type.
type ExportFlags struct {
	DepthImages bool `yaml:"depth_images"`
	ColorImages bool `yaml:"color_images"`
	Poses       bool `yaml:"poses"`
	Intrinsics  bool `yaml:"intrinsics"`
}

// Config holds all runtime settings. It is populated by [DefaultConfig] and
// then layered by [LoadFile], [LoadEnv], and [ParseArgs] before being passed
// (by pointer) to packages that need it.
type Config struct {
	// Dataset layout.
	DatasetRoot string `env:"SENSWEEP_DATASET_ROOT" yaml:"dataset_root"`
	ScansSubdir string `env:"SENSWEEP_SCANS_SUBDIR" yaml:"scans_subdir"` // Default: "raw/scans".
	SourceExt   string `env:"SENSWEEP_SOURCE_EXT" yaml:"source_ext"`     // Default: ".sens".

	// Scene selection.
	ListPath    string     `env:"SENSWEEP_EVAL_LIST" yaml:"eval_list"` // Default: "eval_list.txt".
	OutputList  string     `yaml:"-"`                                  // Per-command -o flag.
	ListingPath string     `yaml:"listing"`                            // Pre-captured tree listing (structure.txt).
	Partition   string     `yaml:"-"`                                  // Restrict listing scan: "raw", "processed" or "".
	Mode        SampleMode `env:"SENSWEEP_SAMPLE_MODE" yaml:"sample_mode"`
	SampleCount int        `env:"SENSWEEP_SAMPLE_COUNT" yaml:"sample_count"` // Default: 50.
	Seed        int64      `env:"SENSWEEP_SEED" yaml:"seed"`                 // Default: 42.
	VerifySrc   bool       `yaml:"verify_source"`                           // Cross-check source artifact during discovery.

	// Batch processing.
	OutputDir    string        `env:"SENSWEEP_OUTPUT_DIR" yaml:"output_dir"`
	PythonBin    string        `env:"SENSWEEP_PYTHON" yaml:"python_bin"`       // Default: "python3".
	ReaderScript string        `env:"SENSWEEP_READER" yaml:"reader_script"`    // Default: "reader.py".
	JobTimeout   time.Duration `env:"SENSWEEP_JOB_TIMEOUT" yaml:"job_timeout"` // Default: 1h per scene.
	StartFrom    int           `yaml:"-"`                                      // Resume offset (jobs to skip).
	MaxJobs      int           `yaml:"-"`                                      // Cap after the offset; 0 = unlimited.
	DryRun       bool          `yaml:"-"`
	Exports      ExportFlags   `yaml:"exports"`

	// Display and logging.
	Verbose    bool      `yaml:"-"`
	ColorMode  ColorMode `env:"SENSWEEP_COLOR" yaml:"color"`
	LogFile    string    `yaml:"-"` // Explicit -log path; process also opens a per-run log.
	ConfigFile string    `env:"SENSWEEP_CONFIG" yaml:"-"`
}

// DefaultConfig returns the baseline configuration before any file,
// environment, or flag layering.
func DefaultConfig() Config {
	return Config{
		ScansSubdir:  "raw/scans",
		SourceExt:    ".sens",
		ListPath:     "eval_list.txt",
		Mode:         SampleInterval,
		SampleCount:  50,
		Seed:         42,
		PythonBin:    "python3",
		ReaderScript: "reader.py",
		JobTimeout:   time.Hour,
		Exports: ExportFlags{
			DepthImages: true,
			ColorImages: true,
			Poses:       true,
			Intrinsics:  true,
		},
		ColorMode: ColorAuto,
	}
}

// LoadEnv applies environment overrides to cfg. A .env file in the working
// directory is loaded first when present, so local setups work without
// exporting variables.
func LoadEnv(cfg *Config) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}
	return nil
}

// LoadFile merges a YAML settings file into cfg. Only keys present in the
// file are overridden; everything else keeps its current value.
func LoadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read settings file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse settings file %s: %w", path, err)
	}
	return nil
}

// NormalizeDirArg strips trailing slashes from a directory argument,
// leaving a bare "/" untouched.
func NormalizeDirArg(dir string) string {
	if dir == "/" {
		return dir
	}
	return strings.TrimRight(dir, "/")
}

// Validate checks the fields required by the given command. Commands not
// listed here have no requirements beyond parse-time ones.
func (c *Config) Validate(command string) error {
	if c.Mode != SampleInterval && c.Mode != SampleRandom {
		return fmt.Errorf("invalid sample mode %q (want %q or %q)", c.Mode, SampleInterval, SampleRandom)
	}
	if c.ColorMode != ColorAuto && c.ColorMode != ColorAlways && c.ColorMode != ColorNever {
		return fmt.Errorf("invalid color mode %q (want auto, always or never)", c.ColorMode)
	}
	if !strings.HasPrefix(c.SourceExt, ".") {
		return fmt.Errorf("source extension %q must start with a dot", c.SourceExt)
	}

	switch command {
	case "sample":
		if c.DatasetRoot == "" && c.ListingPath == "" {
			return errors.New("sample requires -dataset-root or -listing")
		}
		if c.SampleCount <= 0 {
			return fmt.Errorf("sample count must be positive, got %d", c.SampleCount)
		}
		if c.OutputList == "" {
			return errors.New("sample requires an output list path")
		}
		if c.Partition != "" && c.Partition != "raw" && c.Partition != "processed" {
			return fmt.Errorf("invalid partition %q (want raw or processed)", c.Partition)
		}
	case "verify":
		if c.DatasetRoot == "" {
			return errors.New("verify requires -dataset-root")
		}
		if c.OutputList == "" {
			return errors.New("verify requires an output list path")
		}
	case "copy":
		if c.DatasetRoot == "" {
			return errors.New("copy requires -dataset-root")
		}
		if c.OutputDir == "" {
			return errors.New("copy requires -output-dir")
		}
	case "process":
		if c.DatasetRoot == "" {
			return errors.New("process requires -dataset-root")
		}
		if c.OutputDir == "" {
			return errors.New("process requires -output-dir")
		}
		if c.StartFrom < 0 {
			return fmt.Errorf("start-from must not be negative, got %d", c.StartFrom)
		}
		if c.MaxJobs < 0 {
			return fmt.Errorf("max-jobs must not be negative, got %d", c.MaxJobs)
		}
		if c.JobTimeout <= 0 {
			return fmt.Errorf("job timeout must be positive, got %s", c.JobTimeout)
		}
	}
	return nil
}
