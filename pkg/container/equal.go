package container

import (
	"reflect"

	"github.com/google/go-cmp/cmp"
)

var allUnexported = cmp.Exporter(func(reflect.Type) bool { return true })

// EqualValues compares a and b deeply using github.com/google/go-cmp
// including unexported struct fields.
func EqualValues[V any](a, b V) bool {
	return cmp.Equal(a, b, allUnexported)
}
