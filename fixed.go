package serial

import (
	"encoding/binary"
	"fmt"
	"reflect"

	"github.com/puzpuzpuz/xsync/v4"
)

// sizeCache avoids the cost of reflection in `binary.Size` on every call.
var sizeCache = xsync.NewMap[reflect.Type, int]()

// fixedSize returns the binary size of T, or -1 if T is not fixed-size.
func fixedSize[T any]() int {
	t := reflect.TypeFor[T]()
	if size, ok := sizeCache.Load(t); ok {
		return size
	}
	var zero T
	size := binary.Size(&zero)
	sizeCache.Store(t, size)
	return size
}

// FixedSerializer is a blittable codec for any struct composed only of
// fixed-size fields, moved as one contiguous image.
//
// Constraint: T MUST NOT contain slices, maps, strings or pointers;
// Initialize panics otherwise.
type FixedSerializer[T any] struct{ Blittable[T] }

// Initialize verifies that T is fixed-size.
func (c FixedSerializer[T]) Initialize(*Selector) {
	if c.Size() < 0 {
		panic(fmt.Errorf("serial: %s is not a fixed-size type", c.Type()))
	}
}

// Size returns the wire size of T in bytes.
func (FixedSerializer[T]) Size() int { return fixedSize[T]() }

func (FixedSerializer[T]) Serialize(v *T, mode Mode, s *Stream) {
	if mode == ModeSerialize || mode == ModeDeserialize {
		s.SerializeData(v)
	}
}
