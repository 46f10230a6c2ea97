package layered

import (
	"errors"
	"iter"
	"maps"
)

// Has reports whether any layer holds key.
func (m *Map[K, V]) Has(key K) bool {
	for _, layer := range m.layers {
		if _, ok := layer.Get(key); ok {
			return true
		}
	}
	return false
}

// GetOr returns the resolved value for key, or fallback if no layer holds it.
func (m *Map[K, V]) GetOr(key K, fallback V) V {
	v, err := m.Get(key)
	if err != nil {
		return fallback
	}
	return v
}

// Values yields the resolved value of every key, in the order of Keys.
func (m *Map[K, V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		for _, v := range m.All() {
			if !yield(v) {
				return
			}
		}
	}
}

// All yields every key with its resolved value. Shadowed values are never
// yielded.
func (m *Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for key := range m.Keys() {
			v, err := m.Get(key)
			if err != nil {
				continue
			}
			if !yield(key, v) {
				return
			}
		}
	}
}

// Update sets every pair into the primary layer.
func (m *Map[K, V]) Update(pairs iter.Seq2[K, V]) {
	for key, value := range pairs {
		m.Set(key, value)
	}
}

// UpdateMap sets every entry of src into the primary layer.
func (m *Map[K, V]) UpdateMap(src map[K]V) {
	m.Update(maps.All(src))
}

// Pop resolves key and then deletes it from the primary layer. A key held
// only by a deeper layer fails with a ScopePrimary *KeyError and nothing is
// removed.
func (m *Map[K, V]) Pop(key K) (V, error) {
	v, err := m.Get(key)
	if err != nil {
		return v, err
	}
	if err := m.Delete(key); err != nil {
		var zero V
		return zero, err
	}
	return v, nil
}

// PopOr is Pop returning fallback instead of an error.
func (m *Map[K, V]) PopOr(key K, fallback V) V {
	v, err := m.Pop(key)
	if errors.Is(err, ErrKeyNotFound) {
		return fallback
	}
	return v
}

// SetDefault returns the resolved value for key if any layer holds it.
// Otherwise it sets value in the primary layer and returns it.
func (m *Map[K, V]) SetDefault(key K, value V) V {
	if v, err := m.Get(key); err == nil {
		return v
	}
	m.Set(key, value)
	return value
}

// Clear removes every key from the primary layer. Keys held by deeper layers
// stay visible afterwards.
func (m *Map[K, V]) Clear() {
	keys := make([]K, 0, m.layers[0].Len())
	for key := range m.layers[0].Keys() {
		keys = append(keys, key)
	}
	for _, key := range keys {
		m.Delete(key)
	}
}

// Snapshot returns a flattened copy of the resolved view.
func (m *Map[K, V]) Snapshot() map[K]V {
	return maps.Collect(m.All())
}

// Equal reports whether m resolves exactly the entries of other.
func Equal[K, V comparable](m *Map[K, V], other map[K]V) bool {
	return EqualFunc(m, other, func(a, b V) bool { return a == b })
}

// EqualFunc is like Equal but compares values with eq.
func EqualFunc[K comparable, V any](m *Map[K, V], other map[K]V, eq func(V, V) bool) bool {
	if m.Len() != len(other) {
		return false
	}
	for key, want := range other {
		got, err := m.Get(key)
		if err != nil || !eq(got, want) {
			return false
		}
	}
	return true
}
