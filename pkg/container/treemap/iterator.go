package treemap

import "github.com/graph-guard/ggmap/pkg/container"

// Iterator is a position in the ascending key order of a Map.
// Iterators are comparable, two iterators are equal
// if they point to the same position of the same map.
// The zero value is an invalid position.
type Iterator[K, V any] struct {
	m *Map[K, V]
	i uint32
}

// Begin returns the position of the least key,
// or End() if the map is empty.
func (m *Map[K, V]) Begin() Iterator[K, V] {
	if m.size == 0 {
		return m.End()
	}
	return Iterator[K, V]{m: m, i: m.t.leftmost(m.t.root())}
}

// End returns the position past the greatest key.
func (m *Map[K, V]) End() Iterator[K, V] {
	return Iterator[K, V]{m: m, i: anchor}
}

// IsEnd returns true if the iterator points past the greatest key.
func (it Iterator[K, V]) IsEnd() bool { return it.m == nil || it.i == anchor }

// Key returns the key at the current position.
func (it Iterator[K, V]) Key() (key K, err error) {
	if it.IsEnd() {
		return key, &container.ErrorInvalidPosition{
			Op:     "key",
			Reason: container.ReasonEnd,
		}
	}
	return it.m.t.At(it.i).key, nil
}

// Value returns a pointer to the value at the current position.
func (it Iterator[K, V]) Value() (*V, error) {
	if it.IsEnd() {
		return nil, &container.ErrorInvalidPosition{
			Op:     "value",
			Reason: container.ReasonEnd,
		}
	}
	return &it.m.t.At(it.i).value, nil
}

// Next returns the position of the next greater key.
func (it Iterator[K, V]) Next() (Iterator[K, V], error) {
	if it.IsEnd() {
		return it, &container.ErrorInvalidPosition{
			Op:     "next",
			Reason: container.ReasonEnd,
		}
	}
	return Iterator[K, V]{m: it.m, i: it.m.t.successor(it.i)}, nil
}

// Prev returns the position of the next lesser key.
// Prev of End() is the greatest key.
func (it Iterator[K, V]) Prev() (Iterator[K, V], error) {
	if it.m != nil {
		if p, ok := it.m.t.predecessor(it.i); ok {
			return Iterator[K, V]{m: it.m, i: p}, nil
		}
	}
	return it, &container.ErrorInvalidPosition{
		Op:     "prev",
		Reason: container.ReasonBegin,
	}
}
