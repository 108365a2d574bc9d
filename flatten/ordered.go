package flatten

import (
	"iter"

	"github.com/flatjson/flatjson/escape"
)

// OrderedMap is a string-keyed mapping that preserves insertion order. The
// flattening engine fills one in traversal order, so iterating it replays the
// document order of the source. Overwriting an existing key keeps the key's
// original position.
type OrderedMap struct {
	keys   []string
	values map[string]any
}

// NewOrderedMap returns an empty ordered map.
func NewOrderedMap() *OrderedMap {
	return &OrderedMap{values: make(map[string]any)}
}

// Set stores v under key, appending the key on first sight.
func (m *OrderedMap) Set(key string, v any) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = v
}

// Get returns the value stored under key.
func (m *OrderedMap) Get(key string) (any, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Has reports whether key is present.
func (m *OrderedMap) Has(key string) bool {
	_, ok := m.values[key]
	return ok
}

// Len returns the number of entries.
func (m *OrderedMap) Len() int { return len(m.keys) }

// Keys returns the keys in insertion order as a fresh slice.
func (m *OrderedMap) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// All iterates entries in insertion order.
func (m *OrderedMap) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for _, k := range m.keys {
			if !yield(k, m.values[k]) {
				return
			}
		}
	}
}

// String renders the map as a minimal JSON object under the default escape
// policy.
func (m *OrderedMap) String() string {
	return JSONRenderer{}.Render(m, PrintMinimal, escape.Default)
}
