package hashmap

import (
	"encoding/binary"
	"fmt"
	"math"
	"reflect"

	"github.com/pierrec/xxHash/xxHash64"
	"github.com/zeebo/xxh3"
)

// Hasher hashes keys to 64-bit values.
// Equal keys must produce equal hashes.
type Hasher[K any] interface{ Hash(K) uint64 }

// HasherXXH3 can be used to provide custom seeds during initialization.
type HasherXXH3[K comparable] struct {
	Seed uint64
}

// Hash hashes k to a 64-bit hash value.
func (h *HasherXXH3[K]) Hash(k K) uint64 {
	if s, ok := any(k).(string); ok {
		return xxh3.HashSeed([]byte(s), h.Seed)
	}
	var buf [16]byte
	return xxh3.HashSeed(appendKey(buf[:0], k), h.Seed)
}

// HasherXXH64 hashes keys using XXH64.
type HasherXXH64[K comparable] struct {
	Seed uint64
}

// Hash hashes k to a 64-bit hash value.
func (h *HasherXXH64[K]) Hash(k K) uint64 {
	var buf [16]byte
	d := xxHash64.New(h.Seed)
	_, _ = d.Write(appendKey(buf[:0], k))
	return d.Sum64()
}

// appendKey appends the binary representation of k to b.
// Equal keys are guaranteed to produce equal representations.
func appendKey[K comparable](b []byte, k K) []byte {
	switch k := any(k).(type) {
	case string:
		return append(b, k...)
	case int:
		return binary.LittleEndian.AppendUint64(b, uint64(k))
	case int64:
		return binary.LittleEndian.AppendUint64(b, uint64(k))
	case uint64:
		return binary.LittleEndian.AppendUint64(b, k)
	case float64:
		return appendFloat64(b, k)
	}
	return appendValue(b, reflect.ValueOf(k))
}

// appendValue appends the binary representation of v to b.
// Pointers, channels and unsafe pointers are represented by address,
// interfaces by their dynamic value.
// Strings are length-prefixed so that composite keys don't collide
// on field boundaries.
func appendValue(b []byte, v reflect.Value) []byte {
	switch v.Kind() {
	case reflect.Invalid:
		// Nil interface
		return append(b, 0)
	case reflect.Bool:
		if v.Bool() {
			return append(b, 1)
		}
		return append(b, 0)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return binary.LittleEndian.AppendUint64(b, uint64(v.Int()))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32,
		reflect.Uint64, reflect.Uintptr:
		return binary.LittleEndian.AppendUint64(b, v.Uint())
	case reflect.Float32, reflect.Float64:
		return appendFloat64(b, v.Float())
	case reflect.Complex64, reflect.Complex128:
		c := v.Complex()
		return appendFloat64(appendFloat64(b, real(c)), imag(c))
	case reflect.String:
		b = binary.AppendUvarint(b, uint64(v.Len()))
		return append(b, v.String()...)
	case reflect.Pointer, reflect.Chan, reflect.UnsafePointer:
		return binary.LittleEndian.AppendUint64(b, uint64(v.Pointer()))
	case reflect.Interface:
		if v.IsNil() {
			return append(b, 0)
		}
		return appendValue(append(b, 1), v.Elem())
	case reflect.Array:
		for i := 0; i < v.Len(); i++ {
			b = appendValue(b, v.Index(i))
		}
		return b
	case reflect.Struct:
		for i := 0; i < v.NumField(); i++ {
			b = appendValue(b, v.Field(i))
		}
		return b
	}
	panic(fmt.Errorf("hashmap: unhashable key type %s", v.Type()))
}

// appendFloat64 normalizes -0 to +0 since both are equal.
func appendFloat64(b []byte, f float64) []byte {
	if f == 0 {
		f = 0
	}
	return binary.LittleEndian.AppendUint64(b, math.Float64bits(f))
}
