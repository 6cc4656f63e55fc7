package store

// MapBackend keeps a frequency table in a go map
type MapBackend struct {
	storage map[string]float64
}

func NewMapBackend(sizeHint int) *MapBackend {
	return &MapBackend{storage: make(map[string]float64, sizeHint)}
}

func (m *MapBackend) Upsert(token string, freq float64) error {
	m.storage[token] = freq
	return nil
}

func (m *MapBackend) Frequency(token string) (float64, bool) {
	v, ok := m.storage[token]
	return v, ok
}

func (m *MapBackend) Len() int {
	return len(m.storage)
}

func (m *MapBackend) Close() error {
	m.storage = nil
	return nil
}
