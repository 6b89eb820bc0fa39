// package gomap provides a container.Map implementation
// backed by Go's native map for benchmark reference.
// Visit order is unspecified.
package gomap

import "github.com/graph-guard/ggmap/pkg/container"

type Gomap[K comparable, V any] struct {
	m map[K]*V
}

var _ container.Map[string, int] = (*Gomap[string, int])(nil)

func New[K comparable, V any](capacity int) *Gomap[K, V] {
	return &Gomap[K, V]{
		m: make(map[K]*V, capacity),
	}
}

func (m *Gomap[K, V]) InsertOrGet(key K) *V {
	if v, ok := m.m[key]; ok {
		return v
	}
	v := new(V)
	m.m[key] = v
	return v
}

func (m *Gomap[K, V]) Set(key K, value V) {
	*m.InsertOrGet(key) = value
}

func (m *Gomap[K, V]) Get(key K) (*V, error) {
	if len(m.m) == 0 {
		return nil, &container.ErrorEmpty{Op: "get"}
	}
	if v, ok := m.m[key]; ok {
		return v, nil
	}
	return nil, &container.ErrorKeyNotFound{Op: "get", Key: key}
}

func (m *Gomap[K, V]) Contains(key K) bool {
	_, ok := m.m[key]
	return ok
}

func (m *Gomap[K, V]) Erase(key K) error {
	if len(m.m) == 0 {
		return &container.ErrorEmpty{Op: "erase"}
	}
	if _, ok := m.m[key]; !ok {
		return &container.ErrorKeyNotFound{Op: "erase", Key: key}
	}
	delete(m.m, key)
	return nil
}

func (m *Gomap[K, V]) Reset() {
	m.m = make(map[K]*V)
}

func (m *Gomap[K, V]) Len() int {
	return len(m.m)
}

func (m *Gomap[K, V]) IsEmpty() bool {
	return len(m.m) == 0
}

func (m *Gomap[K, V]) Visit(fn func(K, V) (stop bool)) {
	for k, v := range m.m {
		if fn(k, *v) {
			break
		}
	}
}
