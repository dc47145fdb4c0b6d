package engine

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"

	"github.com/miku/brcstat/internal/measure"
)

// DefaultSlack is read past each chunk so that a record starting inside the
// chunk can be finished. It must exceed the longest record: a 100 byte name,
// the delimiter, "-99.9" and the terminator.
const DefaultSlack = 128

// Variant selects how a chunk is read and which table backs it.
type Variant string

const (
	// Chunked reads each chunk with one positioned read on its own file
	// handle and scans it byte by byte into an open addressing table.
	Chunked Variant = "chunked"
	// Mmap is Chunked reading from a memory mapping of the file.
	Mmap Variant = "mmap"
	// Scan reads lines through a buffered reader into a SwissTable.
	Scan Variant = "scan"
	// Reference is a single-threaded byte-at-a-time pass over a builtin map.
	Reference Variant = "reference"
)

var variants = []Variant{Chunked, Mmap, Scan, Reference}

func (v Variant) String() string { return string(v) }

// Set implements flag.Value.
func (v *Variant) Set(s string) error {
	for _, k := range variants {
		if string(k) == s {
			*v = k
			return nil
		}
	}
	return fmt.Errorf("unknown variant %q", s)
}

// Config describes a run.
type Config struct {
	Path    string
	Variant Variant
	// Workers is the number of chunks, and so goroutines. Zero means twice
	// the number of CPUs, to keep the disk busy while others parse.
	// Reference always uses one.
	Workers int
	// Slack is the number of bytes read past the end of a chunk.
	Slack int
	// Hash keys the open addressing table. Nil selects fxhash.
	Hash   measure.HashFunc
	Logger *slog.Logger
}

// Validate checks c and fills in defaults.
func (c *Config) Validate() error {
	if c.Path == "" {
		return errors.New("missing input path")
	}
	if c.Variant == "" {
		c.Variant = Chunked
	}
	if err := c.Variant.Set(string(c.Variant)); err != nil {
		return err
	}
	if c.Workers < 0 {
		return fmt.Errorf("invalid worker count %d", c.Workers)
	}
	if c.Slack == 0 {
		c.Slack = DefaultSlack
	}
	if c.Slack < 0 {
		return fmt.Errorf("invalid slack %d", c.Slack)
	}
	if c.Logger == nil {
		c.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return nil
}

func (c *Config) workers() int {
	switch {
	case c.Variant == Reference:
		return 1
	case c.Workers > 0:
		return c.Workers
	}
	return 2 * runtime.NumCPU()
}

// expected number of distinct names
const tableSize = 1 << 10

func (c *Config) newTable() measure.Table {
	switch c.Variant {
	case Scan:
		return measure.NewSwissTable(tableSize)
	case Reference:
		return measure.NewMapTable()
	}
	return measure.NewHashTable(c.Hash, tableSize)
}
