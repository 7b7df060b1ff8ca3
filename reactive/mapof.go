package reactive

import "github.com/depcell/depcell/cell"

// Map is an instrumented map: every accessor reports the exact read pattern
// it depends on (one key, the whole enumeration, the key set), every
// mutator reports the mutation, and the trigger resolver works out which
// subscribers care.
type Map[K comparable, V comparable] struct {
	rt    *cell.Runtime
	items map[K]V
}

func NewMap[K comparable, V comparable](rt *cell.Runtime) *Map[K, V] {
	return &Map[K, V]{rt: rt, items: map[K]V{}}
}

func (m *Map[K, V]) CollectionKind() cell.TargetKind { return cell.KindMap }

// Get reads one key.
func (m *Map[K, V]) Get(k K) (V, bool) {
	m.rt.Track(m, k)
	v, ok := m.items[k]
	return v, ok
}

// Has reads one key's presence.
func (m *Map[K, V]) Has(k K) bool {
	m.rt.Track(m, k)
	_, ok := m.items[k]
	return ok
}

// Len reads the whole enumeration: it changes whenever an entry is added
// or removed.
func (m *Map[K, V]) Len() int {
	m.rt.Track(m, cell.IterateKey)
	return len(m.items)
}

// Keys reads the key set only; value replacements do not invalidate it.
func (m *Map[K, V]) Keys() []K {
	m.rt.Track(m, cell.MapKeyIterateKey)
	keys := make([]K, 0, len(m.items))
	for k := range m.items {
		keys = append(keys, k)
	}
	return keys
}

// Range reads the whole enumeration, values included.
func (m *Map[K, V]) Range(fn func(K, V) bool) {
	m.rt.Track(m, cell.IterateKey)
	for k, v := range m.items {
		if !fn(k, v) {
			return
		}
	}
}

// Set writes one key, reported as an addition or a value replacement.
// Replacing a value with an equal one is a no-op.
func (m *Map[K, V]) Set(k K, v V) {
	old, had := m.items[k]
	if had && old == v {
		return
	}
	m.items[k] = v
	if had {
		m.rt.Trigger(m, cell.OpSet, k, v, old)
	} else {
		m.rt.Trigger(m, cell.OpAdd, k, v, nil)
	}
}

// Delete removes one key if present.
func (m *Map[K, V]) Delete(k K) {
	old, had := m.items[k]
	if !had {
		return
	}
	delete(m.items, k)
	m.rt.Trigger(m, cell.OpDelete, k, nil, old)
}

// Clear removes every entry, invalidating every read pattern ever seen on
// the map.
func (m *Map[K, V]) Clear() {
	if len(m.items) == 0 {
		return
	}
	m.items = map[K]V{}
	m.rt.Trigger(m, cell.OpClear, nil, nil, nil)
}
