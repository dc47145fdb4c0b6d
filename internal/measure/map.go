package measure

// MapTable is a Table backed by a builtin map.
type MapTable map[string]*Measurements

// NewMapTable returns an empty MapTable.
func NewMapTable() MapTable {
	return make(MapTable, 1024)
}

func (t MapTable) Lookup(name []byte) *Measurements {
	if m, ok := t[string(name)]; ok {
		return m
	}
	m := New(string(name))
	t[m.Name] = m
	return m
}

func (t MapTable) Each(fn func(m *Measurements)) {
	for _, m := range t {
		fn(m)
	}
}

func (t MapTable) Len() int { return len(t) }
