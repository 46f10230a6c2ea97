// Package layered provides a read-through view over an ordered sequence of
// key-value layers. Reads resolve against the layers in priority order and
// writes and deletes only ever touch the first (primary) layer.
//
//	defaults := layered.MapLayer[string, int]{"a": 1, "b": 2}
//	m := layered.New(layered.MapLayer[string, int]{}, defaults)
//	m.Set("b", 4)    // shadows defaults["b"]
//	m.Delete("b")    // reveals defaults["b"] again
//
// A Map holds references to its layers, not copies. Changes made through a
// layer's own handle are visible through the Map and the other way around.
// Nothing in this package is safe for concurrent use.
package layered

import (
	"iter"
	"maps"
)

// Layer is the capability set a mapping must provide to take part in a Map.
type Layer[K comparable, V any] interface {
	// Get returns the value stored under key and whether it was present.
	Get(key K) (V, bool)
	// Set stores value under key, replacing any previous value.
	Set(key K, value V)
	// Delete removes key and reports whether it was present.
	Delete(key K) bool
	// Keys yields every key held by the layer.
	Keys() iter.Seq[K]
	// Len returns the number of keys held by the layer.
	Len() int
}

// MapLayer adapts a built-in map to Layer. Converting an existing map shares
// it: MapLayer[K, V](m) and m see the same entries. A nil MapLayer is a valid
// read-only empty layer.
type MapLayer[K comparable, V any] map[K]V

func (l MapLayer[K, V]) Get(key K) (V, bool) {
	v, ok := l[key]
	return v, ok
}

func (l MapLayer[K, V]) Set(key K, value V) {
	l[key] = value
}

func (l MapLayer[K, V]) Delete(key K) bool {
	if _, ok := l[key]; !ok {
		return false
	}
	delete(l, key)
	return true
}

func (l MapLayer[K, V]) Keys() iter.Seq[K] {
	return maps.Keys(l)
}

func (l MapLayer[K, V]) Len() int {
	return len(l)
}
