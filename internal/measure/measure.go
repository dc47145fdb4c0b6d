// Package measure holds the per-station running statistics and the tables
// that map station names to them.
package measure

import (
	"math"
	"sort"

	"golang.org/x/exp/maps"
)

// Measurements, as there is no need to keep all numbers around, we can compute
// them on the fly. Values are fixed-point, scaled by ten.
type Measurements struct {
	Name  string
	Min   int64
	Max   int64
	Sum   int64
	Count int64
}

// New returns empty measurements for name. Min and Max start at the
// opposite ends of the range, so the first Add sets both.
func New(name string) *Measurements {
	return &Measurements{
		Name: name,
		Min:  math.MaxInt64,
		Max:  math.MinInt64,
	}
}

// Add records a single value.
func (m *Measurements) Add(v int64) {
	if v < m.Min {
		m.Min = v
	}
	if v > m.Max {
		m.Max = v
	}
	m.Sum += v
	m.Count++
}

// Merge folds o into m. Merge is associative and commutative, and empty
// measurements are its identity.
func (m *Measurements) Merge(o *Measurements) {
	if o.Min < m.Min {
		m.Min = o.Min
	}
	if o.Max > m.Max {
		m.Max = o.Max
	}
	m.Sum += o.Sum
	m.Count += o.Count
}

// Table maps station names to measurements. A table is used by a single
// goroutine at a time.
type Table interface {
	// Lookup returns the measurements for name, inserting empty ones if
	// the name has not been seen. Implementations must copy name.
	Lookup(name []byte) *Measurements
	// Each calls fn for every entry, in no particular order.
	Each(fn func(m *Measurements))
	Len() int
}

// Merge folds every entry of src into dst. Entries of src must not be used
// afterwards.
func Merge(dst, src Table) {
	src.Each(func(m *Measurements) {
		dst.Lookup([]byte(m.Name)).Merge(m)
	})
}

// Snapshot copies the entries of t into a map keyed by name.
func Snapshot(t Table) map[string]Measurements {
	data := make(map[string]Measurements, t.Len())
	t.Each(func(m *Measurements) {
		data[m.Name] = *m
	})
	return data
}

// Sorted returns the entries of t ordered by name, byte-wise.
func Sorted(t Table) []*Measurements {
	data := make(map[string]*Measurements, t.Len())
	t.Each(func(m *Measurements) {
		data[m.Name] = m
	})
	keys := maps.Keys(data)
	sort.Strings(keys)
	result := make([]*Measurements, len(keys))
	for i, k := range keys {
		result[i] = data[k]
	}
	return result
}
