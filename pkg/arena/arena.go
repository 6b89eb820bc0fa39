// Package arena provides paged storage for container nodes
// addressed by uint32 indexes instead of pointers.
//
// Slots are allocated in fixed-size pages which are never moved,
// pointers obtained via At remain valid until the slot is freed
// or the arena is reset. Freed slots are zeroed and reused.
package arena

import (
	"math"

	"github.com/graph-guard/ggmap/pkg/stack"
	"github.com/yourbasic/bit"
)

// PageSize is the number of slots per page.
const PageSize = 1 << pageShift

const (
	pageShift = 8
	pageMask  = PageSize - 1
)

// Arena is a slot allocator for values of type T.
// The zero value is not usable, use New.
type Arena[T any] struct {
	pages []*[PageSize]T
	next  uint32 // Index of the first never allocated slot
	free  *stack.Stack[uint32]
	freed *bit.Set // Indexes currently on the free list
}

// New creates a new empty arena.
func New[T any]() *Arena[T] {
	return &Arena[T]{free: stack.New[uint32](0), freed: bit.New()}
}

// Alloc returns the index of a zeroed slot.
// Indexes are handed out sequentially starting from 0
// unless previously freed slots are available.
func (a *Arena[T]) Alloc() uint32 {
	if a.free.Len() > 0 {
		i := a.free.Pop()
		a.freed.Delete(int(i))
		return i
	}
	if a.next == math.MaxUint32 {
		panic("arena: index space exhausted")
	}
	i := a.next
	if int(i>>pageShift) == len(a.pages) {
		a.pages = append(a.pages, new([PageSize]T))
	}
	a.next++
	return i
}

// Free zeroes slot i and makes it available for reuse.
// Freeing a slot that isn't allocated has no effect.
func (a *Arena[T]) Free(i uint32) {
	if !a.IsLive(i) {
		return
	}
	a.freed.Add(int(i))
	var zero T
	*a.At(i) = zero
	a.free.Push(i)
}

// IsLive returns true if slot i is allocated and wasn't freed since.
func (a *Arena[T]) IsLive(i uint32) bool {
	return i < a.next && !a.freed.Contains(int(i))
}

// At returns a pointer to slot i.
func (a *Arena[T]) At(i uint32) *T {
	return &a.pages[i>>pageShift][i&pageMask]
}

// Len returns the number of allocated slots.
func (a *Arena[T]) Len() int {
	return int(a.next) - a.free.Len()
}

// Reset releases all pages at once.
func (a *Arena[T]) Reset() {
	a.pages, a.next = nil, 0
	a.free.Reset()
	a.freed = bit.New()
}

// Clone returns a deep copy of the arena.
// Slot indexes are preserved.
func (a *Arena[T]) Clone() *Arena[T] {
	c := &Arena[T]{
		pages: make([]*[PageSize]T, len(a.pages)),
		next:  a.next,
		free:  a.free.Clone(),
		freed: new(bit.Set).Set(a.freed),
	}
	for i, p := range a.pages {
		cp := *p
		c.pages[i] = &cp
	}
	return c
}
