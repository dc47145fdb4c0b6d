package measure

import (
	"fmt"
	"math/bits"

	"github.com/miku/brcstat/internal/fxhash"
	"github.com/zeebo/xxh3"
)

// HashFunc hashes a station name.
type HashFunc func([]byte) uint64

// ParseHash returns the hash function registered under name, "fx" or "xxh3".
func ParseHash(name string) (HashFunc, error) {
	switch name {
	case "", "fx":
		return fxhash.Sum64, nil
	case "xxh3":
		return xxh3.Hash, nil
	}
	return nil, fmt.Errorf("unknown hash %q (use fx or xxh3)", name)
}

type slot struct {
	hash uint64
	m    *Measurements
}

// HashTable is an open addressing Table with linear probing. The slot index
// is taken from the high bits of the hash. It is meant for a few thousand
// names looked up hundreds of millions of times.
type HashTable struct {
	hash  HashFunc
	slots []slot
	shift uint
	n     int
}

// NewHashTable returns a table that holds size names without growing. A nil
// hash selects fxhash.
func NewHashTable(hash HashFunc, size int) *HashTable {
	if hash == nil {
		hash = fxhash.Sum64
	}
	t := &HashTable{hash: hash}
	t.alloc(2 * size)
	return t
}

func (t *HashTable) alloc(n int) {
	if n < 16 {
		n = 16
	}
	k := bits.Len(uint(n - 1))
	t.slots = make([]slot, 1<<k)
	t.shift = uint(64 - k)
}

func (t *HashTable) Lookup(name []byte) *Measurements {
	h := t.hash(name)
	mask := uint64(len(t.slots) - 1)
	for i := h >> t.shift; ; i = (i + 1) & mask {
		s := &t.slots[i]
		if s.m == nil {
			if 2*(t.n+1) > len(t.slots) {
				t.grow()
				return t.Lookup(name)
			}
			s.hash, s.m = h, New(string(name))
			t.n++
			return s.m
		}
		if s.hash == h && s.m.Name == string(name) {
			return s.m
		}
	}
}

func (t *HashTable) grow() {
	old := t.slots
	t.alloc(2 * len(old))
	mask := uint64(len(t.slots) - 1)
	for _, s := range old {
		if s.m == nil {
			continue
		}
		i := s.hash >> t.shift
		for t.slots[i].m != nil {
			i = (i + 1) & mask
		}
		t.slots[i] = s
	}
}

func (t *HashTable) Each(fn func(m *Measurements)) {
	for _, s := range t.slots {
		if s.m != nil {
			fn(s.m)
		}
	}
}

func (t *HashTable) Len() int { return t.n }
