package serial

import (
	"fmt"
	"unsafe"

	"golang.org/x/exp/constraints"
)

// TypedEnumSerializer moves an enum whose type is known statically, using
// the width of its underlying integer.
//
// Enums one or two bytes wide are zero-extended to four bytes on the wire to
// stay compatible with earlier output. Four and eight byte enums are moved
// as-is. Changing this is a format break.
type TypedEnumSerializer[T constraints.Integer] struct {
	Base[T]
	size uintptr
}

// NewTypedEnumSerializer returns an uninitialized codec for T; the Selector
// initializes it on registration.
func NewTypedEnumSerializer[T constraints.Integer]() *TypedEnumSerializer[T] {
	return &TypedEnumSerializer[T]{}
}

// Initialize caches the width of T.
func (e *TypedEnumSerializer[T]) Initialize(*Selector) {
	var zero T
	e.size = unsafe.Sizeof(zero)
}

// Size returns the cached width of T in bytes, or zero before Initialize.
func (e *TypedEnumSerializer[T]) Size() int { return int(e.size) }

// Serialize follows the direction of s, like the fixed-width primitives.
// It panics if the cached width is not 1, 2, 4 or 8, which includes a codec
// that was never initialized.
func (e *TypedEnumSerializer[T]) Serialize(v *T, _ Mode, s *Stream) {
	p := unsafe.Pointer(v)
	switch e.size {
	case 1:
		ref := (*uint8)(p)
		value := uint32(*ref)
		s.SerializeUint32(&value)
		if s.Mode() == ModeDeserialize && s.Err() == nil {
			*ref = uint8(value)
		}
	case 2:
		ref := (*uint16)(p)
		value := uint32(*ref)
		s.SerializeUint32(&value)
		if s.Mode() == ModeDeserialize && s.Err() == nil {
			*ref = uint16(value)
		}
	case 4:
		s.SerializeUint32((*uint32)(p))
	case 8:
		s.SerializeUint64((*uint64)(p))
	default:
		panic(fmt.Errorf("%w: %d bytes for %s", ErrInvalidEnumSize, e.size, e.Type()))
	}
}
