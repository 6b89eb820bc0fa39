// Package container defines the associative container contract
// shared by the map implementations in its subpackages.
//
// Implementations are not safe for concurrent use.
package container

// Map is a key-value associative container.
type Map[K, V any] interface {
	// InsertOrGet returns a pointer to the value associated with key.
	// If key doesn't exist yet, an entry holding the zero value
	// is created first.
	InsertOrGet(key K) *V

	// Set associates key with value overwriting any existing association.
	Set(key K, value V)

	// Get returns a pointer to the value associated with key.
	// Returns an error matching ErrKeyNotFound if key doesn't exist.
	Get(key K) (*V, error)

	// Contains returns true if key exists.
	Contains(key K) bool

	// Erase removes key.
	// Returns an error matching ErrKeyNotFound if key doesn't exist.
	Erase(key K) error

	// Len returns the number of stored entries.
	Len() int

	// IsEmpty returns true if Len() == 0.
	IsEmpty() bool

	// Reset removes all entries.
	Reset()

	// Visit calls fn for every stored entry in iteration order.
	// Returns immediately if fn returns true.
	Visit(fn func(key K, value V) (stop bool))
}

// Pair is a key-value pair.
type Pair[K, V any] struct {
	Key   K
	Value V
}
