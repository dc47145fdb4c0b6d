package measure

import "github.com/dolthub/swiss"

// SwissTable is a Table backed by a SwissTable map.
type SwissTable struct {
	m *swiss.Map[string, *Measurements]
}

// NewSwissTable returns an empty table sized for size names.
func NewSwissTable(size uint32) *SwissTable {
	return &SwissTable{m: swiss.NewMap[string, *Measurements](size)}
}

func (t *SwissTable) Lookup(name []byte) *Measurements {
	if m, ok := t.m.Get(string(name)); ok {
		return m
	}
	m := New(string(name))
	t.m.Put(m.Name, m)
	return m
}

func (t *SwissTable) Each(fn func(m *Measurements)) {
	t.m.Iter(func(_ string, m *Measurements) bool {
		fn(m)
		return false
	})
}

func (t *SwissTable) Len() int { return t.m.Count() }
