// Package batch drives the external converter over an ordered job list,
// strictly sequentially, with per-job failure isolation, timeout
// enforcement, and resume support via an index offset.
package batch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/backmassage/sensweep/internal/catalog"
	"github.com/backmassage/sensweep/internal/config"
	"github.com/backmassage/sensweep/internal/converter"
	"github.com/backmassage/sensweep/internal/logging"
)

// Job is one unit of work: one converter invocation for one scene. Each
// job owns its output directory exclusively, so jobs never coordinate.
type Job struct {
	SceneID    string
	SourcePath string
	OutputDir  string
}

// Outcome is the terminal state of a job. Every attempted job lands on
// exactly one outcome; there are no in-run retries.
type Outcome int

const (
	Succeeded Outcome = iota
	Failed
	TimedOut
)

func (o Outcome) String() string {
	switch o {
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	case TimedOut:
		return "timed out"
	}
	return "unknown"
}

// JobResult records how one job resolved.
type JobResult struct {
	Job        Job
	Outcome    Outcome
	Diagnostic string
	Elapsed    time.Duration
}

// JobsFromScenes maps scene ids onto jobs: the source artifact inside the
// scans tree and a per-scene output directory under outputDir.
func JobsFromScenes(ids []string, scansDir, outputDir, ext string) []Job {
	jobs := make([]Job, len(ids))
	for i, id := range ids {
		jobs[i] = Job{
			SceneID:    id,
			SourcePath: catalog.SourcePath(scansDir, id, ext),
			OutputDir:  filepath.Join(outputDir, id),
		}
	}
	return jobs
}

// Plan applies the resume offset and then the job cap, both with slice
// semantics. Resuming a run that attempted k jobs means startFrom=k picks
// up exactly where it left off, given an unchanged job list.
func Plan(jobs []Job, startFrom, maxJobs int) []Job {
	if startFrom < 0 {
		startFrom = 0
	}
	if startFrom > len(jobs) {
		startFrom = len(jobs)
	}
	planned := jobs[startFrom:]
	if maxJobs > 0 && maxJobs < len(planned) {
		planned = planned[:maxJobs]
	}
	return planned
}

// Orchestrator processes a planned job list one converter invocation at a
// time. A failing or timed-out job never aborts the remaining jobs.
type Orchestrator struct {
	cfg    *config.Config
	log    *logging.Logger
	runner converter.Runner
}

// New returns an orchestrator driving runner under cfg.
func New(cfg *config.Config, log *logging.Logger, runner converter.Runner) *Orchestrator {
	return &Orchestrator{cfg: cfg, log: log, runner: runner}
}

// Run processes jobs in order and returns aggregate stats plus the per-job
// outcomes. Context cancellation stops the run between jobs; jobs already
// attempted keep their recorded outcomes.
func (o *Orchestrator) Run(ctx context.Context, jobs []Job) (RunStats, []JobResult) {
	stats := RunStats{Total: len(jobs)}
	results := make([]JobResult, 0, len(jobs))

	for i, job := range jobs {
		if ctx.Err() != nil {
			o.log.Warn("Interrupted after %d/%d jobs", stats.Current, stats.Total)
			break
		}
		stats.Current = i + 1

		pct := float64(stats.Current) / float64(stats.Total) * 100
		o.log.Info("[%d/%d] (%.1f%%) %s", stats.Current, stats.Total, pct, job.SceneID)

		res := o.processJob(ctx, job)
		results = append(results, res)
		if res.Outcome == Succeeded {
			stats.Succeeded++
		} else {
			stats.Failed++
		}
	}

	o.logSummary(&stats)
	return stats, results
}

// processJob runs the converter for one scene and maps the result onto a
// terminal outcome. Invocation faults (e.g. missing interpreter) count as
// plain failures with the fault text as diagnostic.
func (o *Orchestrator) processJob(ctx context.Context, job Job) JobResult {
	if o.cfg.DryRun {
		o.log.Success("[DRY] Would convert %s -> %s", job.SceneID, job.OutputDir)
		return JobResult{Job: job, Outcome: Succeeded}
	}

	if err := os.MkdirAll(job.OutputDir, 0o755); err != nil {
		o.log.Error("Cannot create output directory for %s: %v", job.SceneID, err)
		return JobResult{Job: job, Outcome: Failed, Diagnostic: err.Error()}
	}

	args := converter.Build(o.cfg, job.SourcePath, job.OutputDir)
	o.log.Debug(o.cfg.Verbose, "Command: %s", strings.Join(args, " "))

	start := time.Now()
	res := o.runner.Run(ctx, args, o.cfg.JobTimeout)
	elapsed := time.Since(start)

	switch {
	case res.TimedOut:
		o.log.Error("Timeout converting %s after %s", job.SceneID, o.cfg.JobTimeout)
		return JobResult{Job: job, Outcome: TimedOut, Diagnostic: "timeout after " + o.cfg.JobTimeout.String(), Elapsed: elapsed}
	case res.Err != nil:
		o.log.Error("Failed to convert %s: %v", job.SceneID, res.Err)
		o.logStderr(res.Stderr)
		diag := res.Err.Error()
		if res.Stderr != "" {
			diag = strings.TrimSpace(res.Stderr)
		}
		return JobResult{Job: job, Outcome: Failed, Diagnostic: diag, Elapsed: elapsed}
	}

	o.log.Success("Converted %s in %ds", job.SceneID, int(elapsed.Seconds()))
	return JobResult{Job: job, Outcome: Succeeded, Elapsed: elapsed}
}

// logStderr prints the tail of the converter's error output.
func (o *Orchestrator) logStderr(stderr string) {
	if stderr == "" {
		return
	}
	o.log.Error("Last converter output:")
	lines := strings.Split(strings.TrimSpace(stderr), "\n")
	start := 0
	if len(lines) > 20 {
		start = len(lines) - 20
	}
	for _, l := range lines[start:] {
		o.log.Error("  %s", l)
	}
}

func (o *Orchestrator) logSummary(stats *RunStats) {
	o.log.Info("==============================")
	o.log.Info("Batch processing complete")
	o.log.Info("  Jobs attempted: %d of %d", stats.Current, stats.Total)
	o.log.Info("  Successful: %d", stats.Succeeded)
	o.log.Info("  Failed: %d", stats.Failed)
	if stats.Current > 0 {
		o.log.Info("  Success rate: %.1f%%", stats.SuccessRate())
	}
	if path := o.log.FilePath(); path != "" {
		o.log.Info("  Log file: %s", path)
	}
}
