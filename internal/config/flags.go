package config

// This file implements CLI parsing for the sensweep subcommands. Each
// command gets its own flag set seeded with the current Config values, so
// flags layered on top of file/env settings only override what the user
// actually passed.

import (
	"flag"
	"fmt"
	"os"
	"strings"
)

// Command names accepted by ParseArgs, in help order.
var commands = []string{"sample", "verify", "copy", "process", "check"}

// ParseArgs resolves the subcommand and parses its flags into cfg, layering
// settings file and environment underneath. Returns the command name.
//
// The settings file is located from -config (scanned before flag parsing so
// flags still win) or SENSWEEP_CONFIG.
func ParseArgs(cfg *Config, args []string, version string) (string, error) {
	if len(args) == 0 {
		printUsage(os.Stderr, version)
		return "", fmt.Errorf("no command given (want one of: %s)", strings.Join(commands, ", "))
	}

	switch args[0] {
	case "-h", "--help", "help":
		printUsage(os.Stdout, version)
		os.Exit(0)
	case "-version", "--version", "version":
		fmt.Fprintln(os.Stdout, "sensweep v"+version)
		os.Exit(0)
	}

	command := args[0]
	rest := args[1:]
	if !knownCommand(command) {
		printUsage(os.Stderr, version)
		return "", fmt.Errorf("unknown command %q", command)
	}

	if path := settingsPath(rest); path != "" {
		if err := LoadFile(cfg, path); err != nil {
			return "", err
		}
		cfg.ConfigFile = path
	}
	if err := LoadEnv(cfg); err != nil {
		return "", err
	}

	fs := flag.NewFlagSet("sensweep "+command, flag.ContinueOnError)
	fs.Usage = func() { printCommandUsage(fs, command) }

	var negated negatedFlags
	defineCommandFlags(fs, cfg, command, &negated)

	if err := fs.Parse(rest); err != nil {
		return "", err
	}
	applyNegatedFlags(cfg, &negated)

	cfg.DatasetRoot = NormalizeDirArg(cfg.DatasetRoot)
	cfg.OutputDir = NormalizeDirArg(cfg.OutputDir)
	return command, nil
}

func knownCommand(name string) bool {
	for _, c := range commands {
		if c == name {
			return true
		}
	}
	return false
}

// negatedFlags holds boolean flags applied after Parse, so that defaults
// from DefaultConfig hold unless the user passes the flag.
type negatedFlags struct {
	noDepth      bool
	noColorImgs  bool
	noPoses      bool
	noIntrinsics bool
	forceColor   bool
	noColor      bool
}

func applyNegatedFlags(cfg *Config, n *negatedFlags) {
	if n.noDepth {
		cfg.Exports.DepthImages = false
	}
	if n.noColorImgs {
		cfg.Exports.ColorImages = false
	}
	if n.noPoses {
		cfg.Exports.Poses = false
	}
	if n.noIntrinsics {
		cfg.Exports.Intrinsics = false
	}
	if n.forceColor {
		cfg.ColorMode = ColorAlways
	}
	if n.noColor {
		cfg.ColorMode = ColorNever
	}
}

func defineCommandFlags(fs *flag.FlagSet, cfg *Config, command string, n *negatedFlags) {
	defineCommonFlags(fs, cfg, n)

	switch command {
	case "sample":
		defineDatasetFlags(fs, cfg)
		fs.IntVar(&cfg.SampleCount, "count", cfg.SampleCount, "Number of scenes to select")
		fs.IntVar(&cfg.SampleCount, "n", cfg.SampleCount, "Same as -count")
		fs.Var(&sampleModeValue{&cfg.Mode}, "mode", "Sampling mode: interval | random")
		fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "Seed for random mode")
		fs.StringVar(&cfg.ListingPath, "listing", cfg.ListingPath, "Pre-captured tree listing to scan instead of the filesystem")
		fs.StringVar(&cfg.Partition, "partition", cfg.Partition, "Restrict listing matches to a partition: raw | processed")
		fs.BoolVar(&cfg.VerifySrc, "verify", cfg.VerifySrc, "Keep only scenes whose source artifact exists")
		fs.StringVar(&cfg.OutputList, "o", cfg.ListPath, "Output eval list path")

	case "verify":
		defineDatasetFlags(fs, cfg)
		fs.StringVar(&cfg.ListPath, "list", cfg.ListPath, "Eval list to reconcile")
		fs.StringVar(&cfg.OutputList, "o", "eval_list_valid.txt", "Output path for the valid subset")

	case "copy":
		defineDatasetFlags(fs, cfg)
		fs.StringVar(&cfg.ListPath, "list", cfg.ListPath, "Eval list naming the scenes to copy")
		fs.StringVar(&cfg.OutputDir, "output-dir", cfg.OutputDir, "Destination directory for scene bundles")
		fs.BoolVar(&cfg.VerifySrc, "verify", cfg.VerifySrc, "Skip scenes whose source artifact is missing")

	case "process":
		defineDatasetFlags(fs, cfg)
		fs.StringVar(&cfg.OutputDir, "output-dir", cfg.OutputDir, "Output directory for converted scenes")
		fs.StringVar(&cfg.ListPath, "list", "", "Optional eval list; when empty, every discovered scene is processed")
		fs.IntVar(&cfg.StartFrom, "start-from", cfg.StartFrom, "Skip this many leading jobs (for resuming)")
		fs.IntVar(&cfg.MaxJobs, "max-jobs", cfg.MaxJobs, "Process at most this many jobs after the offset (0 = all)")
		fs.DurationVar(&cfg.JobTimeout, "timeout", cfg.JobTimeout, "Wall-clock limit per converter invocation")
		fs.StringVar(&cfg.PythonBin, "python", cfg.PythonBin, "Python interpreter for the converter")
		fs.StringVar(&cfg.ReaderScript, "reader", cfg.ReaderScript, "Path to the converter script")
		fs.BoolVar(&cfg.DryRun, "dry-run", cfg.DryRun, "Plan jobs and print them without invoking the converter")
		fs.BoolVar(&n.noDepth, "no-depth", false, "Do not export depth images")
		fs.BoolVar(&n.noColorImgs, "no-color-images", false, "Do not export color images")
		fs.BoolVar(&n.noPoses, "no-poses", false, "Do not export poses")
		fs.BoolVar(&n.noIntrinsics, "no-intrinsics", false, "Do not export intrinsics")

	case "check":
		defineDatasetFlags(fs, cfg)
		fs.StringVar(&cfg.PythonBin, "python", cfg.PythonBin, "Python interpreter for the converter")
		fs.StringVar(&cfg.ReaderScript, "reader", cfg.ReaderScript, "Path to the converter script")
	}
}

func defineDatasetFlags(fs *flag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.DatasetRoot, "dataset-root", cfg.DatasetRoot, "Dataset root containing the scans tree")
	fs.StringVar(&cfg.ScansSubdir, "scans-subdir", cfg.ScansSubdir, "Scans directory relative to the dataset root")
	fs.StringVar(&cfg.SourceExt, "source-ext", cfg.SourceExt, "Source artifact file extension")
}

func defineCommonFlags(fs *flag.FlagSet, cfg *Config, n *negatedFlags) {
	fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "Verbose output")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "Same as -verbose")
	fs.BoolVar(&n.forceColor, "color", false, "Force colored logs")
	fs.BoolVar(&n.noColor, "no-color", false, "Disable colored logs")
	fs.StringVar(&cfg.LogFile, "log", cfg.LogFile, "Append logs to file")
	// Already consumed by settingsPath; registered so Parse accepts it.
	fs.String("config", cfg.ConfigFile, "YAML settings file")
}

// settingsPath scans raw args for -config/--config before flag parsing, so
// the settings file can be layered below the remaining flags.
func settingsPath(args []string) string {
	for i, arg := range args {
		trimmed := strings.TrimLeft(arg, "-")
		switch {
		case trimmed == "config":
			if i+1 < len(args) {
				return args[i+1]
			}
		case strings.HasPrefix(trimmed, "config="):
			return strings.TrimPrefix(trimmed, "config=")
		}
	}
	return ""
}

// sampleModeValue adapts SampleMode to the flag.Value interface.
type sampleModeValue struct{ mode *SampleMode }

func (s *sampleModeValue) String() string {
	if s.mode == nil {
		return ""
	}
	return string(*s.mode)
}

func (s *sampleModeValue) Set(raw string) error {
	switch m := SampleMode(strings.ToLower(raw)); m {
	case SampleInterval, SampleRandom:
		*s.mode = m
		return nil
	default:
		return fmt.Errorf("invalid sample mode %q (want interval or random)", raw)
	}
}

func printUsage(w *os.File, version string) {
	fmt.Fprintf(w, `sensweep v%s - resumable batch conversion for ScanNet-style scene captures

Usage:
  sensweep <command> [flags]

Commands:
  sample    Select a bounded subset of scenes and write an eval list
  verify    Reconcile an eval list against the dataset; write the valid subset
  copy      Copy listed scene bundles to another directory
  process   Run the external converter over the selected scenes
  check     Verify converter and dataset availability

Run "sensweep <command> -h" for command flags.
`, version)
}

func printCommandUsage(fs *flag.FlagSet, command string) {
	fmt.Fprintf(os.Stderr, "Usage: sensweep %s [flags]\n\nFlags:\n", command)
	fs.PrintDefaults()
}
