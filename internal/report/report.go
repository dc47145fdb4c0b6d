// Package report writes the per-station summary lines.
package report

import (
	"bufio"
	"fmt"
	"io"

	"github.com/miku/brcstat/internal/fixed"
	"github.com/miku/brcstat/internal/measure"
)

// Policy decides how the mean of fixed-point values is brought back to one
// fractional digit.
type Policy int

const (
	// Truncate divides sum by count in integers, dropping the remainder
	// toward zero: 1.0 and 1.5 give 1.2.
	Truncate Policy = iota
	// Round rounds the quotient half away from zero: 1.0 and 1.5 give 1.3.
	Round
)

func (p Policy) String() string {
	switch p {
	case Truncate:
		return "truncate"
	case Round:
		return "round"
	}
	return fmt.Sprintf("Policy(%d)", int(p))
}

// Set implements flag.Value.
func (p *Policy) Set(s string) error {
	switch s {
	case "truncate":
		*p = Truncate
	case "round":
		*p = Round
	default:
		return fmt.Errorf("unknown mean policy %q (use truncate or round)", s)
	}
	return nil
}

// Mean returns sum/count as a fixed-point value. count must be positive.
func Mean(sum, count int64, p Policy) int64 {
	if p == Truncate {
		return sum / count
	}
	if sum < 0 {
		return -((-2*sum + count) / (2 * count))
	}
	return (2*sum + count) / (2 * count)
}

// AppendLine appends "name;min;mean;max\n" for m to dst.
func AppendLine(dst []byte, m *measure.Measurements, p Policy) []byte {
	dst = append(dst, m.Name...)
	dst = append(dst, ';')
	dst = fixed.Append(dst, m.Min)
	dst = append(dst, ';')
	dst = fixed.Append(dst, Mean(m.Sum, m.Count, p))
	dst = append(dst, ';')
	dst = fixed.Append(dst, m.Max)
	return append(dst, '\n')
}

// Write writes one line per station, in the given order. Stations without
// values are skipped.
func Write(w io.Writer, ms []*measure.Measurements, p Policy) error {
	bw := bufio.NewWriterSize(w, 1<<16)
	line := make([]byte, 0, 128)
	for _, m := range ms {
		if m.Count == 0 {
			continue
		}
		line = AppendLine(line[:0], m, p)
		if _, err := bw.Write(line); err != nil {
			return err
		}
	}
	return bw.Flush()
}
