// Package stack provides a generic slice-backed LIFO container.
package stack

// Stack is an implementation of stack container.
type Stack[T any] struct{ s []T }

// New creates a new instance of Stack.
func New[T any](capacity int) *Stack[T] {
	return &Stack[T]{s: make([]T, 0, capacity)}
}

// Reset resets the stack keeping the allocated capacity.
func (s *Stack[T]) Reset() { s.s = s.s[:0] }

// Push adds an element to the stack.
func (s *Stack[T]) Push(f T) { s.s = append(s.s, f) }

// Pop returns and deletes the last stack element.
// Returns the zero value if the stack is empty.
func (s *Stack[T]) Pop() (top T) {
	if l := len(s.s) - 1; l >= 0 {
		top = s.s[l]
		s.s = s.s[:l]
	}
	return
}

// Len returns the stack length.
func (s *Stack[T]) Len() int {
	return len(s.s)
}

// Clone returns an independent copy of the stack.
func (s *Stack[T]) Clone() *Stack[T] {
	c := &Stack[T]{s: make([]T, len(s.s), cap(s.s))}
	copy(c.s, s.s)
	return c
}
