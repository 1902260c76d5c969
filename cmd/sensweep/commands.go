package main

// Command implementations. Each run* function owns one subcommand: it wires
// the internal packages together, logs progress, and returns the process
// exit code (0 only when every attempted unit of work succeeded).

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/backmassage/sensweep/internal/batch"
	"github.com/backmassage/sensweep/internal/catalog"
	"github.com/backmassage/sensweep/internal/check"
	"github.com/backmassage/sensweep/internal/config"
	"github.com/backmassage/sensweep/internal/converter"
	"github.com/backmassage/sensweep/internal/copier"
	"github.com/backmassage/sensweep/internal/evallist"
	"github.com/backmassage/sensweep/internal/logging"
	"github.com/backmassage/sensweep/internal/sample"
	"github.com/backmassage/sensweep/internal/verify"
)

func scansDir(cfg *config.Config) string {
	return filepath.Join(cfg.DatasetRoot, filepath.FromSlash(cfg.ScansSubdir))
}

// runSample discovers the scene catalog (filesystem or tree listing),
// selects a bounded subset, optionally drops scenes missing their source
// artifact, and persists the result as the eval list.
func runSample(cfg *config.Config, log *logging.Logger) int {
	scenes, ok := discoverCatalog(cfg, log)
	if !ok {
		return 1
	}
	if len(scenes) == 0 {
		log.Error("No scenes discovered")
		return 1
	}
	log.Info("Found %d scenes", len(scenes))

	var picked []string
	switch cfg.Mode {
	case config.SampleRandom:
		if len(scenes) < cfg.SampleCount {
			log.Warn("Only %d scenes available, selecting all of them", len(scenes))
		}
		picked = sample.Random(scenes, cfg.SampleCount, cfg.Seed)
		log.Info("Random sample: %d scenes (seed %d)", len(picked), cfg.Seed)
	default:
		picked = sample.Interval(scenes, cfg.SampleCount)
		log.Info("Interval sample: %d scenes", len(picked))
	}

	// The freshly sampled list is only trusted after the artifact check;
	// the check runs after sampling so the stride stays a pure function of
	// the full catalog.
	if cfg.VerifySrc && cfg.DatasetRoot != "" {
		valid, missing := verify.Partition(picked, cfg.DatasetRoot, cfg.ScansSubdir, cfg.SourceExt)
		for _, id := range missing {
			log.Warn("%s: missing %s artifact, dropped", id, cfg.SourceExt)
		}
		picked = valid
	}

	if len(picked) == 0 {
		log.Error("No scenes left after verification")
		return 1
	}
	if err := evallist.Save(picked, cfg.OutputList); err != nil {
		log.Error("Cannot write eval list: %v", err)
		return 1
	}
	log.Success("Wrote %d scenes to %s", len(picked), cfg.OutputList)
	return 0
}

// discoverCatalog returns the candidate scenes from either the tree listing
// or the scans directory. A missing scans directory or listing file is a
// warning plus an empty catalog, not a crash; the caller treats empty as
// fatal.
func discoverCatalog(cfg *config.Config, log *logging.Logger) ([]string, bool) {
	if cfg.ListingPath != "" {
		f, err := os.Open(cfg.ListingPath)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				log.Warn("Listing file not found: %s", cfg.ListingPath)
				return nil, true
			}
			log.Error("Cannot open listing: %v", err)
			return nil, false
		}
		defer f.Close()

		entries, err := catalog.ScanListing(f)
		if err != nil {
			log.Error("Cannot parse listing: %v", err)
			return nil, false
		}
		return catalog.Names(entries, catalog.Partition(cfg.Partition)), true
	}

	dir := scansDir(cfg)
	scenes, err := catalog.Scan(dir, cfg.SourceExt, false)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Warn("Scans directory not found: %s", dir)
			return nil, true
		}
		log.Error("Cannot scan dataset: %v", err)
		return nil, false
	}
	return scenes, true
}

// runVerify reconciles a persisted eval list against the live dataset and
// writes the surviving subset to a new file, leaving the source untouched.
func runVerify(cfg *config.Config, log *logging.Logger) int {
	valid, missing, err := verify.Reconcile(cfg.ListPath, cfg.OutputList, cfg.DatasetRoot, cfg.ScansSubdir, cfg.SourceExt)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Warn("Eval list not found: %s", cfg.ListPath)
			return 1
		}
		log.Error("%v", err)
		return 1
	}

	for _, id := range valid {
		log.Debug(cfg.Verbose, "ok %s", id)
	}
	for _, id := range missing {
		log.Warn("%s: missing %s artifact", id, cfg.SourceExt)
	}

	log.Info("Scenes in eval list: %d", len(valid)+len(missing))
	log.Info("Valid: %d, missing: %d", len(valid), len(missing))
	if len(valid) == 0 {
		log.Error("No valid scenes found, nothing written")
		return 1
	}
	log.Success("Valid scenes saved to %s", cfg.OutputList)
	return 0
}

// runCopy copies every listed scene bundle into the output directory.
func runCopy(cfg *config.Config, log *logging.Logger) int {
	ids, err := evallist.Load(cfg.ListPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Warn("Eval list not found: %s", cfg.ListPath)
			return 1
		}
		log.Error("%v", err)
		return 1
	}
	if len(ids) == 0 {
		log.Error("Eval list %s is empty", cfg.ListPath)
		return 1
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		log.Error("Cannot create output directory: %v", err)
		return 1
	}

	log.Info("Copying %d scenes from %s", len(ids), scansDir(cfg))
	stats := copier.New(cfg, log).CopyScenes(ids)
	if stats.Failed > 0 {
		return 1
	}
	return 0
}

// runProcess drives the converter over the selected scenes: resolve the
// job list (eval list reconciled against the dataset, or full discovery),
// apply the resume offset and cap, then run sequentially with per-job
// timeout and failure isolation.
func runProcess(ctx context.Context, cfg *config.Config, log *logging.Logger) int {
	ids, ok := resolveProcessScenes(cfg, log)
	if !ok || len(ids) == 0 {
		log.Error("No scenes to process")
		return 1
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		log.Error("Cannot create output directory: %v", err)
		return 1
	}

	if !cfg.DryRun {
		runLog := logging.RunLogPath(cfg.OutputDir)
		if err := log.AttachFile(runLog); err != nil {
			log.Error("Cannot open run log %s: %v", runLog, err)
			return 1
		}
		if err := check.CheckDeps(cfg); err != nil {
			log.Error("%v", err)
			return 1
		}
	}

	log.Info("Dataset root: %s", cfg.DatasetRoot)
	log.Info("Output directory: %s", cfg.OutputDir)
	log.Info("Converter: %s %s (timeout %s)", cfg.PythonBin, cfg.ReaderScript, cfg.JobTimeout)
	if cfg.DryRun {
		log.Warn("DRY RUN: the converter will not be invoked")
	}

	jobs := batch.JobsFromScenes(ids, scansDir(cfg), cfg.OutputDir, cfg.SourceExt)
	planned := batch.Plan(jobs, cfg.StartFrom, cfg.MaxJobs)
	if cfg.StartFrom > 0 {
		log.Info("Resuming from job index %d", cfg.StartFrom)
	}
	if len(planned) == 0 {
		log.Error("No jobs to run after offset/cap (have %d, start-from %d)", len(jobs), cfg.StartFrom)
		return 1
	}
	log.Info("Processing %d jobs", len(planned))

	orc := batch.New(cfg, log, converter.Exec{Verbose: cfg.Verbose})
	stats, _ := orc.Run(ctx, planned)
	if stats.Failed > 0 || stats.Current == 0 {
		return 1
	}
	return 0
}

// resolveProcessScenes picks the scene set for a batch run. With an eval
// list configured the list is loaded and reconciled against the filesystem
// (scenes can disappear between selection and processing); otherwise every
// scene with a source artifact is discovered directly.
func resolveProcessScenes(cfg *config.Config, log *logging.Logger) ([]string, bool) {
	if cfg.ListPath != "" {
		ids, err := evallist.Load(cfg.ListPath)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				log.Warn("Eval list not found: %s", cfg.ListPath)
				return nil, true
			}
			log.Error("%v", err)
			return nil, false
		}

		valid, missing := verify.Partition(ids, cfg.DatasetRoot, cfg.ScansSubdir, cfg.SourceExt)
		for _, id := range missing {
			log.Warn("%s: missing %s artifact, skipped", id, cfg.SourceExt)
		}
		return valid, true
	}

	dir := scansDir(cfg)
	scenes, err := catalog.Scan(dir, cfg.SourceExt, true)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Warn("Scans directory not found: %s", dir)
			return nil, true
		}
		log.Error("Cannot scan dataset: %v", err)
		return nil, false
	}
	return scenes, true
}
