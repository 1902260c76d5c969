// Command sensweep is the CLI entrypoint for the scene conversion toolkit.
// It selects evaluation subsets of ScanNet-style scene captures, reconciles
// persisted eval lists against the dataset, copies scene bundles, and drives
// the external converter over the selected scenes with per-scene failure
// isolation and resume support.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/backmassage/sensweep/internal/check"
	"github.com/backmassage/sensweep/internal/config"
	"github.com/backmassage/sensweep/internal/display"
	"github.com/backmassage/sensweep/internal/logging"
)

// version and commit are injected at build time via -ldflags. When built
// with plain "go build" these retain their defaults.
var (
	version = "1.0.0"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Errors before NewLogger succeeds go directly to stderr.
	cfg := config.DefaultConfig()
	command, err := config.ParseArgs(&cfg, os.Args[1:], version)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "sensweep: %v\n", err)
		return 1
	}

	if err := cfg.Validate(command); err != nil {
		fmt.Fprintf(os.Stderr, "sensweep: %v\n", err)
		return 1
	}

	log, err := logging.NewLogger(&cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "sensweep: %v\n", err)
		return 1
	}
	defer log.Close()

	display.PrintBanner()
	log.Info("=== sensweep v%s (%s) ===", version, commit)
	log.Debug(cfg.Verbose, "Config file: %s", cfg.ConfigFile)

	// Cancel the context on SIGINT/SIGTERM so the batch loop can stop
	// between jobs without leaving a half-written output directory behind.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn("Received interrupt, finishing current job…")
		cancel()
	}()

	switch command {
	case "sample":
		return runSample(&cfg, log)
	case "verify":
		return runVerify(&cfg, log)
	case "copy":
		return runCopy(&cfg, log)
	case "process":
		return runProcess(ctx, &cfg, log)
	case "check":
		if !check.RunCheck(&cfg, log) {
			return 1
		}
		return 0
	}
	return 1
}
