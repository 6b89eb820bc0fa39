// Package hashmap provides a hash table with a fixed number of buckets
// which iterates in insertion order.
//
// All entries are linked into a single ring list closed by a sentinel
// which defines the iteration order. Each bucket additionally links
// its own entries so lookups only scan entries sharing the same slot.
// The table never grows, once the number of entries considerably
// exceeds TableSize lookups degrade to O(bucket length).
// Any custom hasher can be provided during initialization.
// By default, XXH3 from github.com/zeebo/xxh3 is used with seed 0.
package hashmap

import (
	"github.com/graph-guard/ggmap/pkg/arena"
	"github.com/graph-guard/ggmap/pkg/container"
	"golang.org/x/exp/slices"
)

// TableSize is the fixed number of buckets.
const TableSize = 16384

// tail is the index of the ring sentinel.
// It never belongs to a bucket, so 0 also marks an absent bucket link.
const tail uint32 = 0

type node[K comparable, V any] struct {
	key   K
	value V
	slot  uint32

	// Global list, defines iteration order.
	next, prev uint32

	// Bucket chain.
	bnext, bprev uint32
}

type bucket struct{ first, last uint32 }

// Map is a hash table ordered by insertion.
//
// Pointers to values remain valid until the entry is erased
// or the map is reset.
type Map[K comparable, V any] struct {
	size   int
	nodes  *arena.Arena[node[K, V]]
	table  []bucket
	hasher Hasher[K]
}

var _ container.Map[string, int] = (*Map[string, int])(nil)

// New creates a new map instance filled with pairs.
// Later pairs overwrite earlier pairs with the same key.
// The default XXH3 hasher is used if hasher is nil.
func New[K comparable, V any](
	hasher Hasher[K],
	pairs ...container.Pair[K, V],
) *Map[K, V] {
	if hasher == nil {
		hasher = &HasherXXH3[K]{}
	}
	m := &Map[K, V]{
		nodes:  arena.New[node[K, V]](),
		table:  make([]bucket, TableSize),
		hasher: hasher,
	}
	m.init()
	for _, p := range pairs {
		*m.InsertOrGet(p.Key) = p.Value
	}
	return m
}

func (m *Map[K, V]) init() {
	// The sentinel is a zeroed node at index 0 linked to itself.
	_ = m.nodes.Alloc()
}

func (m *Map[K, V]) n(i uint32) *node[K, V] { return m.nodes.At(i) }

func (m *Map[K, V]) slot(key K) uint32 {
	return uint32(m.hasher.Hash(key) % TableSize)
}

// lookup returns the slot of key and the index of its entry,
// or tail if key doesn't exist.
func (m *Map[K, V]) lookup(key K) (slot, i uint32) {
	slot = m.slot(key)
	for i = m.table[slot].first; i != tail; i = m.n(i).bnext {
		if m.n(i).key == key {
			return slot, i
		}
	}
	return slot, tail
}

// InsertOrGet returns a pointer to the value associated with key.
// If key doesn't exist yet, a zero value entry is appended
// to the end of the iteration order.
func (m *Map[K, V]) InsertOrGet(key K) *V {
	slot, i := m.lookup(key)
	if i != tail {
		return &m.n(i).value
	}

	i = m.nodes.Alloc()
	n := m.n(i)
	n.key, n.slot = key, slot

	// Splice in before the sentinel
	t := m.n(tail)
	n.prev, n.next = t.prev, tail
	m.n(t.prev).next = i
	t.prev = i

	// Append to the bucket chain
	b := &m.table[slot]
	if b.first == tail {
		b.first = i
	} else {
		m.n(b.last).bnext = i
		n.bprev = b.last
	}
	b.last = i

	m.size++
	return &n.value
}

// Set associates key with value overwriting any existing association.
// Overwriting doesn't change the position of key in the iteration order.
func (m *Map[K, V]) Set(key K, value V) {
	*m.InsertOrGet(key) = value
}

// Get returns a pointer to the value associated with key.
func (m *Map[K, V]) Get(key K) (*V, error) {
	if m.size == 0 {
		return nil, &container.ErrorEmpty{Op: "get"}
	}
	if _, i := m.lookup(key); i != tail {
		return &m.n(i).value, nil
	}
	return nil, &container.ErrorKeyNotFound{Op: "get", Key: key}
}

// Contains returns true if key exists.
func (m *Map[K, V]) Contains(key K) bool {
	_, i := m.lookup(key)
	return i != tail
}

// Find returns the position of key or End() if key doesn't exist.
func (m *Map[K, V]) Find(key K) Iterator[K, V] {
	if m.size == 0 {
		return m.End()
	}
	_, i := m.lookup(key)
	return Iterator[K, V]{m: m, i: i}
}

// Erase removes key.
func (m *Map[K, V]) Erase(key K) error {
	if m.size == 0 {
		return &container.ErrorEmpty{Op: "erase"}
	}
	_, i := m.lookup(key)
	if i == tail {
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
	if p.i == tail {
		return &container.ErrorInvalidPosition{
			Op:     "erase",
			Reason: container.ReasonEnd,
		}
	}
	if !m.nodes.IsLive(p.i) {
		return &container.ErrorInvalidPosition{
			Op:     "erase",
			Reason: container.ReasonErased,
		}
	}
	m.remove(p.i)
	return nil
}

func (m *Map[K, V]) remove(i uint32) {
	n := m.n(i)

	m.n(n.prev).next = n.next
	m.n(n.next).prev = n.prev

	b := &m.table[n.slot]
	if b.first == i {
		b.first = n.bnext
	} else {
		m.n(n.bprev).bnext = n.bnext
	}
	if b.last == i {
		b.last = n.bprev
	} else {
		m.n(n.bnext).bprev = n.bprev
	}

	m.nodes.Free(i)
	m.size--
}

// Len returns the number of stored key-value pairs.
func (m *Map[K, V]) Len() int { return m.size }

// IsEmpty returns true if the map contains no entries.
func (m *Map[K, V]) IsEmpty() bool { return m.size == 0 }

// Reset removes all entries. All iterators are invalidated.
func (m *Map[K, V]) Reset() {
	m.nodes.Reset()
	clear(m.table)
	m.size = 0
	m.init()
}

// Visit calls fn for every stored key-value pair in insertion order.
// Returns immediately if fn returns true.
func (m *Map[K, V]) Visit(fn func(key K, value V) (stop bool)) {
	for i := m.n(tail).next; i != tail; i = m.n(i).next {
		n := m.n(i)
		if fn(n.key, n.value) {
			return
		}
	}
}

// Equal returns true if both maps contain the same keys
// associated with equal values regardless of insertion order.
// Values are compared deeply using container.EqualValues.
func (m *Map[K, V]) Equal(o *Map[K, V]) bool {
	if m == o {
		return true
	}
	if m.size != o.size {
		return false
	}
	for i := m.n(tail).next; i != tail; i = m.n(i).next {
		n := m.n(i)
		_, j := o.lookup(n.key)
		if j == tail || !container.EqualValues(n.value, o.n(j).value) {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the map preserving the iteration order.
// Values are copied by assignment.
func (m *Map[K, V]) Clone() *Map[K, V] {
	return &Map[K, V]{
		size:   m.size,
		nodes:  m.nodes.Clone(),
		table:  slices.Clone(m.table),
		hasher: m.hasher,
	}
}

// Move transfers all entries to a new map and leaves m empty.
// Iterators of m are invalidated.
func (m *Map[K, V]) Move() *Map[K, V] {
	moved := &Map[K, V]{
		size:   m.size,
		nodes:  m.nodes,
		table:  m.table,
		hasher: m.hasher,
	}
	m.nodes = arena.New[node[K, V]]()
	m.table = make([]bucket, TableSize)
	m.size = 0
	m.init()
	return moved
}
