package engine

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"unicode/utf8"

	"github.com/miku/brcstat/internal/chunk"
	"github.com/miku/brcstat/internal/fixed"
	"github.com/miku/brcstat/internal/measure"
	"github.com/miku/brcstat/internal/parse"
	"github.com/pechorka/stdlib/pkg/errs"
)

// LineScanner reads a chunk line by line through a buffered reader. It
// follows the same boundary rule as Worker: a line belongs to the chunk that
// holds its first byte.
type LineScanner struct {
	Path     string
	Size     int64
	NewTable func() measure.Table
	Logger   *slog.Logger
}

func (s *LineScanner) Parse(ctx context.Context, c chunk.Chunk) (measure.Table, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, errs.Wrap(err, "failed to open input")
	}
	defer f.Close()

	offset := c.Start
	if offset > 0 {
		offset--
	}
	var (
		br   = bufio.NewReaderSize(io.NewSectionReader(f, offset, s.Size-offset), 1<<20)
		end  = c.End() - offset
		pos  int64
		data = s.NewTable()
	)
	if c.Start > 0 {
		skipped, err := br.ReadSlice(parse.Terminator)
		pos += int64(len(skipped))
		switch {
		case err == io.EOF && pos > 0:
			return data, nil
		case err == io.EOF:
			return nil, fmt.Errorf("chunk %v: %w", c, ErrEmptyRead)
		case err != nil:
			return nil, errs.Wrap(err, fmt.Sprintf("failed to read chunk %v", c))
		}
	}
	for pos < end {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		line, err := br.ReadSlice(parse.Terminator)
		if len(line) > 0 {
			if perr := s.parseLine(data, line, offset+pos); perr != nil {
				return nil, fmt.Errorf("chunk %v: %w", c, perr)
			}
		}
		pos += int64(len(line))
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errs.Wrap(err, fmt.Sprintf("failed to read chunk %v", c))
		}
	}
	if pos == 0 {
		return nil, fmt.Errorf("chunk %v: %w", c, ErrEmptyRead)
	}
	if s.Logger != nil {
		s.Logger.Debug("chunk done", "offset", c.Start, "length", c.Length, "stations", data.Len())
	}
	return data, nil
}

func (s *LineScanner) parseLine(data measure.Table, line []byte, at int64) error {
	terminated := line[len(line)-1] == parse.Terminator
	if terminated {
		line = line[:len(line)-1]
	}
	index := bytes.IndexByte(line, parse.Delimiter)
	switch {
	case index == -1 && !terminated:
		return &parse.Error{Offset: at, Err: parse.ErrTruncated}
	case index == -1:
		return &parse.Error{Offset: at, Err: parse.ErrDelimiter}
	case index == 0:
		return &parse.Error{Offset: at, Err: parse.ErrEmptyName}
	}
	name := line[:index]
	v, err := fixed.Parse(line[index+1:])
	if err != nil {
		return &parse.Error{Offset: at + int64(index) + 1, Err: err}
	}
	n := data.Len()
	m := data.Lookup(name)
	if data.Len() != n && !utf8.Valid(name) {
		return &parse.Error{Offset: at, Err: parse.ErrEncoding}
	}
	m.Add(v)
	return nil
}
