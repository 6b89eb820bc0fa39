// Package treemap provides an unbalanced binary search tree map
// which iterates in ascending key order.
//
// Nodes are linked to their parents, iteration steps between nodes
// along parent and child links and needs no auxiliary storage.
// The tree is never rebalanced, lookups cost O(height) which degrades
// to O(n) when keys are inserted in sorted order.
package treemap

import (
	"github.com/graph-guard/ggmap/pkg/container"
	"golang.org/x/exp/constraints"
)

// Map is a binary search tree ordered by key.
//
// Pointers to values remain valid until the entry is erased
// or the map is reset.
type Map[K, V any] struct {
	size    int
	t       nodes[K, V]
	compare func(a, b K) int
}

var _ container.Map[string, int] = (*Map[string, int])(nil)

// New creates a new map ordered by the natural order of K
// filled with pairs. Later pairs overwrite earlier pairs with the same key.
func New[K constraints.Ordered, V any](pairs ...container.Pair[K, V]) *Map[K, V] {
	return NewFunc[K, V](compareOrdered[K], pairs...)
}

// NewFunc creates a new map ordered by compare filled with pairs.
// compare must return a negative number if a < b,
// a positive number if a > b and zero if a and b are equal.
func NewFunc[K, V any](
	compare func(a, b K) int,
	pairs ...container.Pair[K, V],
) *Map[K, V] {
	m := &Map[K, V]{
		t:       newNodes[K, V](),
		compare: compare,
	}
	for _, p := range pairs {
		*m.InsertOrGet(p.Key) = p.Value
	}
	return m
}

func compareOrdered[K constraints.Ordered](a, b K) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// lookup returns the node holding key or anchor if key doesn't exist.
func (m *Map[K, V]) lookup(key K) uint32 {
	for i := m.t.root(); i != none; {
		n := m.t.At(i)
		c := m.compare(key, n.key)
		if c == 0 {
			return i
		}
		if c < 0 {
			i = n.left
		} else {
			i = n.right
		}
	}
	return anchor
}

// InsertOrGet returns a pointer to the value associated with key.
// If key doesn't exist yet, a new leaf holding the zero value is attached.
func (m *Map[K, V]) InsertOrGet(key K) *V {
	// The first node is attached to the left of the anchor.
	parent, c := anchor, -1
	for i := m.t.root(); i != none; {
		n := m.t.At(i)
		if c = m.compare(key, n.key); c == 0 {
			return &n.value
		}
		parent = i
		if c < 0 {
			i = n.left
		} else {
			i = n.right
		}
	}

	i := m.t.Alloc()
	n := m.t.At(i)
	n.key, n.parent = key, parent
	if c < 0 {
		m.t.At(parent).left = i
	} else {
		m.t.At(parent).right = i
	}
	m.size++
	return &n.value
}

// Set associates key with value overwriting any existing association.
func (m *Map[K, V]) Set(key K, value V) {
	*m.InsertOrGet(key) = value
}

// Get returns a pointer to the value associated with key.
func (m *Map[K, V]) Get(key K) (*V, error) {
	if m.size == 0 {
		return nil, &container.ErrorEmpty{Op: "get"}
	}
	if i := m.lookup(key); i != anchor {
		return &m.t.At(i).value, nil
	}
	return nil, &container.ErrorKeyNotFound{Op: "get", Key: key}
}

// Contains returns true if key exists.
func (m *Map[K, V]) Contains(key K) bool {
	return m.lookup(key) != anchor
}

// Find returns the position of key or End() if key doesn't exist.
func (m *Map[K, V]) Find(key K) Iterator[K, V] {
	return Iterator[K, V]{m: m, i: m.lookup(key)}
}

// Erase removes key.
func (m *Map[K, V]) Erase(key K) error {
	if m.size == 0 {
		return &container.ErrorEmpty{Op: "erase"}
	}
	i := m.lookup(key)
	if i == anchor {
		return &container.ErrorKeyNotFound{Op: "erase", Key: key}
	}
	m.remove(i)
	return nil
}

// EraseAt removes the entry at position p.
// p and any other iterator at the same position are invalidated.
// Erasing at a position whose entry was already erased fails
// unless its slot was reused by a later insertion.
func (m *Map[K, V]) EraseAt(p Iterator[K, V]) error {
	if p.m != m {
		return &container.ErrorInvalidPosition{
			Op:     "erase",
			Reason: container.ReasonForeign,
		}
	}
	if p.i == anchor {
		return &container.ErrorInvalidPosition{
			Op:     "erase",
			Reason: container.ReasonEnd,
		}
	}
	if !m.t.IsLive(p.i) {
		return &container.ErrorInvalidPosition{
			Op:     "erase",
			Reason: container.ReasonErased,
		}
	}
	m.remove(p.i)
	return nil
}

func (m *Map[K, V]) remove(i uint32) {
	m.t.detach(i)
	m.t.Free(i)
	m.size--
	if m.size == 0 {
		m.t.At(anchor).left = anchor
	}
}

// Len returns the number of stored key-value pairs.
func (m *Map[K, V]) Len() int { return m.size }

// IsEmpty returns true if the map contains no entries.
func (m *Map[K, V]) IsEmpty() bool { return m.size == 0 }

// Height returns the number of nodes on the longest
// path from the root to a leaf.
func (m *Map[K, V]) Height() int { return m.t.height() }

// Reset removes all entries. All iterators are invalidated.
func (m *Map[K, V]) Reset() {
	m.t.Reset()
	m.t.init()
	m.size = 0
}

// Visit calls fn for every stored key-value pair in ascending key order.
// Returns immediately if fn returns true.
func (m *Map[K, V]) Visit(fn func(key K, value V) (stop bool)) {
	if m.size == 0 {
		return
	}
	for i := m.t.leftmost(m.t.root()); i != anchor; i = m.t.successor(i) {
		n := m.t.At(i)
		if fn(n.key, n.value) {
			return
		}
	}
}

// Equal returns true if both maps hold equal key-value pairs
// at every position of their in-order sequences.
// Keys are compared using the comparison function of m,
// values are compared deeply using container.EqualValues.
func (m *Map[K, V]) Equal(o *Map[K, V]) bool {
	if m == o {
		return true
	}
	if m.size != o.size {
		return false
	}
	if m.size == 0 {
		return true
	}
	i := m.t.leftmost(m.t.root())
	j := o.t.leftmost(o.t.root())
	for ; i != anchor; i, j = m.t.successor(i), o.t.successor(j) {
		a, b := m.t.At(i), o.t.At(j)
		if m.compare(a.key, b.key) != 0 || !container.EqualValues(a.value, b.value) {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the map preserving the tree shape.
// Values are copied by assignment.
func (m *Map[K, V]) Clone() *Map[K, V] {
	return &Map[K, V]{
		size:    m.size,
		t:       nodes[K, V]{m.t.Arena.Clone()},
		compare: m.compare,
	}
}

// Move transfers all entries to a new map and leaves m empty.
// Iterators of m are invalidated.
func (m *Map[K, V]) Move() *Map[K, V] {
	moved := &Map[K, V]{
		size:    m.size,
		t:       m.t,
		compare: m.compare,
	}
	m.t = newNodes[K, V]()
	m.size = 0
	return moved
}
