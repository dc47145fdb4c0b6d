// Package engine splits an input file into chunks, parses the chunks in
// parallel and merges the results.
package engine

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/miku/brcstat/internal/chunk"
	"github.com/miku/brcstat/internal/measure"
	"github.com/pechorka/stdlib/pkg/errs"
	"golang.org/x/sync/errgroup"
)

// ErrEmptyRead is returned when a worker reads nothing for its chunk.
var ErrEmptyRead = errors.New("empty read")

// Parser turns one chunk of the input into a table. Each call returns a new
// table that the caller owns.
type Parser interface {
	Parse(ctx context.Context, c chunk.Chunk) (measure.Table, error)
}

// NewParser returns the parser for cfg.Variant over a file of size bytes.
func NewParser(cfg Config, size int64) Parser {
	switch cfg.Variant {
	case Mmap:
		return &Worker{Path: cfg.Path, Size: size, Slack: cfg.Slack, Open: OpenMmap, NewTable: cfg.newTable, Logger: cfg.Logger}
	case Scan:
		return &LineScanner{Path: cfg.Path, Size: size, NewTable: cfg.newTable, Logger: cfg.Logger}
	case Reference:
		return &ByteScanner{Path: cfg.Path, Size: size, NewTable: cfg.newTable}
	}
	return &Worker{Path: cfg.Path, Size: size, Slack: cfg.Slack, Open: OpenFile, NewTable: cfg.newTable, Logger: cfg.Logger}
}

// Run computes the measurements for every station in cfg.Path, sorted by
// name. Any error aborts the whole run; there are no partial results.
func Run(ctx context.Context, cfg Config) ([]*measure.Measurements, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	fi, err := os.Stat(cfg.Path)
	if err != nil {
		return nil, errs.Wrap(err, "failed to stat input")
	}
	if !fi.Mode().IsRegular() {
		return nil, fmt.Errorf("%s: not a regular file", cfg.Path)
	}
	var (
		size   = fi.Size()
		chunks = chunk.Split(size, cfg.workers())
		data   = cfg.newTable()
	)
	cfg.Logger.Debug("split input", "path", cfg.Path, "size", size, "chunks", len(chunks), "variant", cfg.Variant)
	if err := Collect(ctx, NewParser(cfg, size), chunks, data); err != nil {
		return nil, err
	}
	cfg.Logger.Debug("merged", "stations", data.Len())
	return measure.Sorted(data), nil
}

// Collect parses every chunk in its own goroutine and merges the tables into
// data as they arrive. The first error cancels the remaining workers and is
// returned.
func Collect(ctx context.Context, p Parser, chunks []chunk.Chunk, data measure.Table) error {
	var (
		g, gctx = errgroup.WithContext(ctx)
		resultC = make(chan measure.Table, len(chunks))
		err     error
	)
	for _, c := range chunks {
		c := c
		g.Go(func() error {
			t, err := p.Parse(gctx, c)
			if err != nil {
				return err
			}
			resultC <- t
			return nil
		})
	}
	go func() {
		err = g.Wait()
		close(resultC)
	}()
	for t := range resultC {
		measure.Merge(data, t)
	}
	return err
}
