package engine

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/miku/brcstat/internal/chunk"
	"github.com/miku/brcstat/internal/fixed"
	"github.com/miku/brcstat/internal/measure"
	"github.com/miku/brcstat/internal/parse"
	"github.com/pechorka/stdlib/pkg/errs"
)

// ByteScanner is the simplest parser: it reads one byte at a time and copies
// name and value into scratch buffers. Run uses it with a single chunk, as a
// reference for the faster variants.
type ByteScanner struct {
	Path     string
	Size     int64
	NewTable func() measure.Table
}

func (s *ByteScanner) Parse(ctx context.Context, c chunk.Chunk) (measure.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
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
		br    = bufio.NewReader(io.NewSectionReader(f, offset, s.Size-offset))
		end   = c.End() - offset
		pos   int64
		start int64 // where the current record began
		name  = make([]byte, 0, 128)
		value = make([]byte, 0, 8)
		inVal bool
		data  = s.NewTable()
	)
	if c.Start > 0 {
		for {
			b, err := br.ReadByte()
			if err == io.EOF {
				return data, nil
			}
			if err != nil {
				return nil, errs.Wrap(err, fmt.Sprintf("failed to read chunk %v", c))
			}
			pos++
			if b == parse.Terminator {
				break
			}
		}
	}
	take := func() error {
		if len(name) == 0 {
			return &parse.Error{Offset: offset + start, Err: parse.ErrEmptyName}
		}
		if !utf8.Valid(name) {
			return &parse.Error{Offset: offset + start, Err: parse.ErrEncoding}
		}
		v, err := fixed.Parse(value)
		if err != nil {
			return &parse.Error{Offset: offset + start + int64(len(name)) + 1, Err: err}
		}
		data.Lookup(name).Add(v)
		name, value, inVal = name[:0], value[:0], false
		return nil
	}
	start = pos
	for pos < end || len(name) > 0 || inVal {
		b, err := br.ReadByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errs.Wrap(err, fmt.Sprintf("failed to read chunk %v", c))
		}
		pos++
		switch {
		case b == parse.Terminator && !inVal:
			return nil, fmt.Errorf("chunk %v: %w", c, &parse.Error{Offset: offset + start, Err: parse.ErrDelimiter})
		case b == parse.Terminator:
			if err := take(); err != nil {
				return nil, fmt.Errorf("chunk %v: %w", c, err)
			}
			start = pos
		case inVal:
			value = append(value, b)
		case b == parse.Delimiter:
			inVal = true
		default:
			name = append(name, b)
		}
	}
	// the last record may lack its terminator
	switch {
	case inVal:
		if err := take(); err != nil {
			return nil, fmt.Errorf("chunk %v: %w", c, err)
		}
	case len(name) > 0:
		return nil, fmt.Errorf("chunk %v: %w", c, &parse.Error{Offset: offset + start, Err: parse.ErrTruncated})
	}
	if pos == 0 {
		return nil, fmt.Errorf("chunk %v: %w", c, ErrEmptyRead)
	}
	return data, nil
}
