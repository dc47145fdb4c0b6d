// Package cli is the command line front end shared by the programs under
// cmd/ and basic/.
package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/miku/brcstat/internal/engine"
	"github.com/miku/brcstat/internal/measure"
	"github.com/miku/brcstat/internal/report"
	"github.com/pkg/profile"
)

// DefaultPath is read when no file is given.
const DefaultPath = "measurements.txt"

// Main runs the program with the given default variant and exits.
func Main(variant engine.Variant) {
	os.Exit(Run(context.Background(), os.Args[1:], os.Stdout, os.Stderr, variant))
}

// Run parses args, processes the input and writes the summary to stdout. It
// returns the process exit status. Nothing is written to stdout unless the
// whole input was processed.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer, variant engine.Variant) int {
	var (
		fs         = flag.NewFlagSet(filepath.Base(os.Args[0]), flag.ContinueOnError)
		cfg        = engine.Config{Variant: variant}
		mean       report.Policy
		hash       = fs.String("hash", "fx", "hash for the station table: fx or xxh3")
		verbose    = fs.Bool("v", false, "log chunk progress to stderr")
		profMode   = fs.String("profile", "", "write a cpu, mem or trace profile")
		profileDir = fs.String("profiledir", ".", "directory for profile output")
	)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: %s [flags] [file]\n\nReads %s when no file is given.\n\n", fs.Name(), DefaultPath)
		fs.PrintDefaults()
	}
	fs.Var(&cfg.Variant, "variant", "chunked, mmap, scan or reference")
	fs.IntVar(&cfg.Workers, "workers", 0, "number of chunks, 0 for twice the CPUs (env BRC_WORKERS)")
	fs.IntVar(&cfg.Slack, "slack", engine.DefaultSlack, "bytes read past each chunk, must exceed the longest line")
	fs.Var(&mean, "mean", "mean rounding: truncate or round")

	logger := slog.New(slog.NewTextHandler(stderr, nil))
	if s := os.Getenv("BRC_WORKERS"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			logger.Error("invalid BRC_WORKERS", "value", s, "err", err)
			return 1
		}
		cfg.Workers = n
	}
	if err := fs.Parse(args); err != nil {
		return 1
	}
	if *verbose {
		logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	cfg.Logger = logger
	cfg.Path = DefaultPath
	if fs.NArg() > 0 {
		cfg.Path = fs.Arg(0)
	}
	h, err := measure.ParseHash(*hash)
	if err != nil {
		logger.Error("invalid flag", "err", err)
		return 1
	}
	cfg.Hash = h
	if *profMode != "" {
		p, err := startProfile(*profMode, *profileDir)
		if err != nil {
			logger.Error("invalid flag", "err", err)
			return 1
		}
		defer p.Stop()
	}
	ms, err := engine.Run(ctx, cfg)
	if err != nil {
		logger.Error("processing failed", "path", cfg.Path, "err", err)
		return 1
	}
	if err := report.Write(stdout, ms, mean); err != nil {
		logger.Error("writing output failed", "err", err)
		return 1
	}
	return 0
}

func startProfile(mode, dir string) (interface{ Stop() }, error) {
	var kind func(*profile.Profile)
	switch mode {
	case "cpu":
		kind = profile.CPUProfile
	case "mem":
		kind = profile.MemProfile
	case "trace":
		kind = profile.TraceProfile
	default:
		return nil, fmt.Errorf("unknown profile %q (use cpu, mem or trace)", mode)
	}
	return profile.Start(kind, profile.ProfilePath(dir), profile.Quiet, profile.NoShutdownHook), nil
}
