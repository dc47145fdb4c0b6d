// Package parse turns a buffer of "name;value\n" records into measurements.
//
// The scanner is a small state machine driven one byte at a time:
//
//	seeking      discard bytes up to and including the first '\n'
//	readingName  collect the name up to ';'
//	readingValue collect the value up to '\n', then record it
//	done         the next record belongs to another chunk
//
// A buffer that starts one byte before its chunk begins in seeking, so a
// record cut by the chunk boundary is left to the chunk that owns its first
// byte.
package parse

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/miku/brcstat/internal/fixed"
	"github.com/miku/brcstat/internal/measure"
)

const (
	Delimiter  = ';'
	Terminator = '\n'
)

var (
	ErrSlack     = errors.New("record exceeds read slack")
	ErrTruncated = errors.New("truncated record")
	ErrDelimiter = errors.New("missing field delimiter")
	ErrEmptyName = errors.New("empty station name")
	ErrEncoding  = errors.New("station name is not valid UTF-8")
)

// Error is a malformed record at Offset in the input.
type Error struct {
	Offset int64
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("offset %d: %s", e.Offset, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Window is the part of the input one worker parses.
type Window struct {
	// Buf holds the chunk and any slack read past it.
	Buf []byte
	// Offset is the input offset of Buf[0], used in errors.
	Offset int64
	// Align is set when Buf[0] is the byte before the chunk. Bytes up to
	// the first terminator then belong to the previous chunk.
	Align bool
	// End is the index in Buf where the chunk ends. No record starting at
	// or after End is parsed.
	End int
	// EOF is set when Buf runs to the end of the input.
	EOF bool
}

type kind uint8

const (
	seeking kind = iota
	readingName
	readingValue
	done
)

var kindNames = [...]string{"seeking", "readingName", "readingValue", "done"}

func (k kind) String() string { return kindNames[k] }

// state is the scanner position. start is the index of the first name byte
// in readingName and of the first value byte in readingValue; entity is only
// set in readingValue.
type state struct {
	kind   kind
	start  int
	entity *measure.Measurements
}

type scanner struct {
	w Window
	t measure.Table
}

// Scan parses every record that starts inside the window into t.
func Scan(w Window, t measure.Table) error {
	s := &scanner{w: w, t: t}
	st := s.initial()
	var err error
	for i := 0; i < len(w.Buf) && st.kind != done; i++ {
		if st, err = s.step(st, i); err != nil {
			return err
		}
	}
	return s.finish(st)
}

func (s *scanner) initial() state {
	switch {
	case s.w.Align:
		return state{kind: seeking}
	case s.w.End > 0:
		return state{kind: readingName}
	}
	return state{kind: done}
}

func (s *scanner) step(st state, i int) (state, error) {
	b := s.w.Buf[i]
	switch st.kind {
	case seeking:
		if b == Terminator {
			return s.next(i), nil
		}
	case readingName:
		switch b {
		case Delimiter:
			m, err := s.lookup(st.start, i)
			if err != nil {
				return st, err
			}
			return state{kind: readingValue, start: i + 1, entity: m}, nil
		case Terminator:
			return st, s.errorAt(st.start, ErrDelimiter)
		}
	case readingValue:
		if b == Terminator {
			if err := s.take(st, i); err != nil {
				return st, err
			}
			return s.next(i), nil
		}
	}
	return st, nil
}

// next is the state after the terminator at i.
func (s *scanner) next(i int) state {
	if i+1 < s.w.End {
		return state{kind: readingName, start: i + 1}
	}
	return state{kind: done}
}

// lookup returns the measurements for the name in Buf[start:end]. Names are
// validated once, when they first enter the table.
func (s *scanner) lookup(start, end int) (*measure.Measurements, error) {
	name := s.w.Buf[start:end]
	if len(name) == 0 {
		return nil, s.errorAt(start, ErrEmptyName)
	}
	n := s.t.Len()
	m := s.t.Lookup(name)
	if s.t.Len() != n && !utf8.Valid(name) {
		return nil, s.errorAt(start, ErrEncoding)
	}
	return m, nil
}

func (s *scanner) take(st state, end int) error {
	v, err := fixed.Parse(s.w.Buf[st.start:end])
	if err != nil {
		return s.errorAt(st.start, err)
	}
	st.entity.Add(v)
	return nil
}

// finish handles a buffer that ran out before the scanner reached done.
func (s *scanner) finish(st state) error {
	switch st.kind {
	case readingName:
		if st.start == len(s.w.Buf) && s.w.EOF {
			return nil
		}
		if s.w.EOF {
			return s.errorAt(st.start, ErrTruncated)
		}
		return s.errorAt(st.start, ErrSlack)
	case readingValue:
		if !s.w.EOF {
			return s.errorAt(st.start, ErrSlack)
		}
		// the last record may lack its terminator
		return s.take(st, len(s.w.Buf))
	}
	return nil
}

func (s *scanner) errorAt(i int, err error) error {
	return &Error{Offset: s.w.Offset + int64(i), Err: err}
}
