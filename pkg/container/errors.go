package container

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyContainer  = errors.New("empty container")
	ErrKeyNotFound     = errors.New("key not found")
	ErrInvalidPosition = errors.New("invalid position")
)

// ErrorEmpty is returned when an operation requires at least one entry.
// It matches both ErrEmptyContainer and ErrKeyNotFound.
type ErrorEmpty struct {
	Op string
}

func (e ErrorEmpty) Error() string {
	var b strings.Builder
	b.Grow(len(e.Op) + len(": ") + len("empty container"))
	b.WriteString(e.Op)
	b.WriteString(": empty container")
	return b.String()
}

func (e ErrorEmpty) Unwrap() []error {
	return []error{ErrEmptyContainer, ErrKeyNotFound}
}

// ErrorKeyNotFound is returned when a key doesn't exist.
type ErrorKeyNotFound struct {
	Op  string
	Key any
}

func (e ErrorKeyNotFound) Error() string {
	return fmt.Sprintf("%s: key %v not found", e.Op, e.Key)
}

func (e ErrorKeyNotFound) Unwrap() error { return ErrKeyNotFound }

// ErrorInvalidPosition is returned when an iterator is dereferenced
// or moved past either end of the sequence.
type ErrorInvalidPosition struct {
	Op     string
	Reason string
}

func (e ErrorInvalidPosition) Error() string {
	var b strings.Builder
	b.Grow(len(e.Op) + len(": invalid position: ") + len(e.Reason))
	b.WriteString(e.Op)
	b.WriteString(": invalid position: ")
	b.WriteString(e.Reason)
	return b.String()
}

func (e ErrorInvalidPosition) Unwrap() error { return ErrInvalidPosition }

// Reasons reported by ErrorInvalidPosition.
const (
	ReasonEnd     = "end"
	ReasonBegin   = "begin"
	ReasonForeign = "position belongs to another container"
	ReasonErased  = "entry erased"
)
