// Package converter builds and executes invocations of the external scene
// converter. The converter is opaque to the rest of the program: it takes a
// source artifact path and an output directory, exits zero on success, and
// writes diagnostics to stderr on failure.
package converter

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"time"
)

// Result holds the outcome of a single converter invocation.
type Result struct {
	Stderr   string
	TimedOut bool
	Err      error
}

// Runner abstracts external process invocation behind a narrow capability,
// so orchestration logic and its tests do not depend on os/exec.
type Runner interface {
	Run(ctx context.Context, args []string, timeout time.Duration) Result
}

// Exec runs commands via os/exec with a bounded wall-clock timeout. When
// the deadline expires the process is killed and the result is marked
// TimedOut; the orchestrator moves on to the next job.
type Exec struct {
	// Verbose tees converter stderr to os.Stderr in real time; otherwise
	// it is captured silently for diagnostics.
	Verbose bool
}

// Run executes args[0] with the remaining arguments under a deadline of
// timeout. Cancellation of ctx (e.g. SIGINT) also terminates the process
// but is reported as a plain error, not a timeout.
func (e Exec) Run(ctx context.Context, args []string, timeout time.Duration) Result {
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, args[0], args[1:]...)

	var stderrBuf bytes.Buffer
	if e.Verbose {
		cmd.Stderr = io.MultiWriter(&stderrBuf, os.Stderr)
	} else {
		cmd.Stderr = &stderrBuf
	}

	err := cmd.Run()
	timedOut := errors.Is(runCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil
	return Result{
		Stderr:   stderrBuf.String(),
		TimedOut: timedOut,
		Err:      err,
	}
}
