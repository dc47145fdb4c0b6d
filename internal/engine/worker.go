package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/miku/brcstat/internal/chunk"
	"github.com/miku/brcstat/internal/measure"
	"github.com/miku/brcstat/internal/parse"
	"github.com/pechorka/stdlib/pkg/errs"
	"golang.org/x/exp/mmap"
)

// File is what a worker reads its chunk from.
type File interface {
	io.ReaderAt
	io.Closer
}

// Opener opens the input for a single worker.
type Opener func(path string) (File, error)

// OpenFile opens path as a regular file.
func OpenFile(path string) (File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// OpenMmap maps path into memory.
func OpenMmap(path string) (File, error) {
	r, err := mmap.Open(path)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// Worker reads a chunk, plus the byte before it and Slack bytes after it,
// with a single positioned read on its own handle, then scans the buffer.
type Worker struct {
	Path     string
	Size     int64
	Slack    int
	Open     Opener
	NewTable func() measure.Table
	Logger   *slog.Logger
}

func (w *Worker) Parse(ctx context.Context, c chunk.Chunk) (measure.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := w.Open(w.Path)
	if err != nil {
		return nil, errs.Wrap(err, "failed to open input")
	}
	defer f.Close()

	offset := c.Start
	if offset > 0 {
		offset--
	}
	length := c.End() - offset + int64(w.Slack)
	if rest := w.Size - offset; length > rest {
		length = rest
	}
	if osf, ok := f.(*os.File); ok {
		advise(osf, offset, length)
	}
	buf := make([]byte, length)
	n, err := f.ReadAt(buf, offset)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, errs.Wrap(err, fmt.Sprintf("failed to read chunk %v", c))
	}
	if n == 0 {
		return nil, fmt.Errorf("chunk %v: %w", c, ErrEmptyRead)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var (
		data = w.NewTable()
		win  = parse.Window{
			Buf:    buf[:n],
			Offset: offset,
			Align:  c.Start > 0,
			End:    int(c.End() - offset),
			EOF:    err != nil || offset+int64(n) >= w.Size,
		}
	)
	if err := parse.Scan(win, data); err != nil {
		return nil, fmt.Errorf("chunk %v: %w", c, err)
	}
	if w.Logger != nil {
		w.Logger.Debug("chunk done", "offset", c.Start, "length", c.Length, "stations", data.Len())
	}
	return data, nil
}
