package serial

import "reflect"

// Serializer is the type-independent face of a codec. The Selector stores
// and initializes codecs through it.
type Serializer interface {
	// Type returns the type of value the codec converts.
	Type() reflect.Type

	// IsBlittable reports whether the value's wire form is a fixed-size image
	// of the value, so a run of them can be moved in one bulk transfer.
	IsBlittable() bool

	// Initialize runs once, before the first Serialize call.
	Initialize(sel *Selector)
}

// DataSerializer moves exactly one value of type T to or from a Stream.
//
// Serialize is bidirectional: in ModeSerialize it writes *v and never
// modifies it; in ModeDeserialize it overwrites *v with the value read.
// Both directions advance the stream by the same number of bytes for equal
// values. Any other mode is a no-op. Errors are reported through the stream.
// Implementations must not retain v or s after returning.
type DataSerializer[T any] interface {
	Serializer
	Serialize(v *T, mode Mode, s *Stream)
}

// Base supplies the default parts of the codec contract: not blittable and
// no initialization. Codecs embed it and add Serialize.
type Base[T any] struct{}

func (Base[T]) Type() reflect.Type   { return reflect.TypeFor[T]() }
func (Base[T]) IsBlittable() bool    { return false }
func (Base[T]) Initialize(*Selector) {}

// Blittable is Base for codecs whose wire form is the value's fixed-size image.
type Blittable[T any] struct{ Base[T] }

func (Blittable[T]) IsBlittable() bool { return true }
