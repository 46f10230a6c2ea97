package layered

import (
	"context"
	"iter"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/tailored-agentic-units/layered/observability"
)

// Map presents an ordered sequence of layers as a single mapping. Index 0 is
// the primary layer. Lookups scan the layers in order and the first layer
// holding a key wins; Set and Delete act on the primary layer only.
//
// The layer sequence is fixed at construction. Every operation is computed
// from the current layer contents; nothing is cached between calls.
//
// Create a Map with New or FromConfig. The zero value has no layers and only
// supports reads, all of which miss.
type Map[K comparable, V any] struct {
	layers   []Layer[K, V]
	observer observability.Observer
	id       string
}

// New creates a Map over layers, highest priority first. With no layers the
// Map gets a single empty MapLayer as its primary layer.
//
// Layers are held by reference and never validated or copied. The primary
// layer must accept writes: a nil MapLayer reads as empty but Set on it
// panics like any write to a nil map.
func New[K comparable, V any](layers ...Layer[K, V]) *Map[K, V] {
	return newMap(observability.NoOpObserver{}, layers)
}

func newMap[K comparable, V any](observer observability.Observer, layers []Layer[K, V]) *Map[K, V] {
	if len(layers) == 0 {
		layers = []Layer[K, V]{MapLayer[K, V]{}}
	}

	m := &Map[K, V]{
		layers:   slices.Clone(layers),
		observer: observer,
		id:       uuid.Must(uuid.NewV7()).String(),
	}

	m.emit(EventCreate, observability.LevelVerbose, map[string]any{"layers": len(m.layers)})
	return m
}

// ID returns the identifier assigned to the Map at construction. It is
// attached to every event the Map emits.
func (m *Map[K, V]) ID() string {
	return m.id
}

// SetObserver replaces the observer receiving operation events. A nil
// observer discards them.
func (m *Map[K, V]) SetObserver(observer observability.Observer) {
	if observer == nil {
		observer = observability.NoOpObserver{}
	}
	m.observer = observer
}

// Layers returns the layer sequence. The slice is a copy; the layers are not.
func (m *Map[K, V]) Layers() []Layer[K, V] {
	return slices.Clone(m.layers)
}

// Primary returns the layer that receives writes and deletes.
func (m *Map[K, V]) Primary() Layer[K, V] {
	return m.layers[0]
}

// Get returns the value from the first layer holding key. If no layer holds
// it, the error is a *KeyError with ScopeAll.
func (m *Map[K, V]) Get(key K) (V, error) {
	for _, layer := range m.layers {
		if v, ok := layer.Get(key); ok {
			return v, nil
		}
	}

	m.emit(EventGetMiss, observability.LevelVerbose, map[string]any{"key": key})

	var zero V
	return zero, &KeyError{Key: key, Scope: ScopeAll}
}

// Set writes value under key in the primary layer. Deeper layers keep their
// own value for key, which stays hidden while the primary layer holds it.
func (m *Map[K, V]) Set(key K, value V) {
	m.layers[0].Set(key, value)
	m.emit(EventSet, observability.LevelVerbose, map[string]any{"key": key})
}

// Delete removes key from the primary layer. If a deeper layer also holds
// key, its value becomes visible again. A key missing from the primary layer
// yields a *KeyError with ScopePrimary even when a deeper layer holds it.
func (m *Map[K, V]) Delete(key K) error {
	if !m.layers[0].Delete(key) {
		m.emit(EventDeleteMiss, observability.LevelWarning, map[string]any{"key": key})
		return &KeyError{Key: key, Scope: ScopePrimary}
	}

	m.emit(EventDelete, observability.LevelVerbose, map[string]any{"key": key})
	return nil
}

// Keys yields the distinct keys of all layers in no particular order. Each
// range over the returned sequence takes a fresh pass over the layers.
func (m *Map[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for key := range m.union() {
			if !yield(key) {
				return
			}
		}
	}
}

// Len returns the number of distinct keys across all layers.
func (m *Map[K, V]) Len() int {
	return len(m.union())
}

func (m *Map[K, V]) union() map[K]struct{} {
	seen := make(map[K]struct{}, m.layers[0].Len())
	for _, layer := range m.layers {
		for key := range layer.Keys() {
			seen[key] = struct{}{}
		}
	}
	return seen
}

func (m *Map[K, V]) emit(typ observability.EventType, level observability.Level, data map[string]any) {
	if m.observer == nil {
		return
	}
	data["map_id"] = m.id
	m.observer.OnEvent(context.Background(), observability.Event{
		Type:      typ,
		Level:     level,
		Timestamp: time.Now(),
		Source:    "layered",
		Data:      data,
	})
}
