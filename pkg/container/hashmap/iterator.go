package hashmap

import "github.com/graph-guard/ggmap/pkg/container"

// Iterator is a position in the insertion order of a Map.
// Iterators are comparable, two iterators are equal
// if they point to the same position of the same map.
// The zero value is an invalid position.
type Iterator[K comparable, V any] struct {
	m *Map[K, V]
	i uint32
}

// Begin returns the position of the first inserted entry,
// or End() if the map is empty.
func (m *Map[K, V]) Begin() Iterator[K, V] {
	return Iterator[K, V]{m: m, i: m.n(tail).next}
}

// End returns the position past the last entry.
func (m *Map[K, V]) End() Iterator[K, V] {
	return Iterator[K, V]{m: m, i: tail}
}

// IsEnd returns true if the iterator points past the last entry.
func (it Iterator[K, V]) IsEnd() bool { return it.m == nil || it.i == tail }

// Key returns the key at the current position.
func (it Iterator[K, V]) Key() (key K, err error) {
	if it.IsEnd() {
		return key, &container.ErrorInvalidPosition{
			Op:     "key",
			Reason: container.ReasonEnd,
		}
	}
	return it.m.n(it.i).key, nil
}

// Value returns a pointer to the value at the current position.
func (it Iterator[K, V]) Value() (*V, error) {
	if it.IsEnd() {
		return nil, &container.ErrorInvalidPosition{
			Op:     "value",
			Reason: container.ReasonEnd,
		}
	}
	return &it.m.n(it.i).value, nil
}

// Next returns the position of the entry inserted after the current one.
func (it Iterator[K, V]) Next() (Iterator[K, V], error) {
	if it.IsEnd() {
		return it, &container.ErrorInvalidPosition{
			Op:     "next",
			Reason: container.ReasonEnd,
		}
	}
	return Iterator[K, V]{m: it.m, i: it.m.n(it.i).next}, nil
}

// Prev returns the position of the entry inserted before the current one.
// Prev of End() is the last entry.
func (it Iterator[K, V]) Prev() (Iterator[K, V], error) {
	if it.m == nil || it.i == it.m.n(tail).next {
		return it, &container.ErrorInvalidPosition{
			Op:     "prev",
			Reason: container.ReasonBegin,
		}
	}
	return Iterator[K, V]{m: it.m, i: it.m.n(it.i).prev}, nil
}
