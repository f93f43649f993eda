package serial

import (
	"fmt"
	"math"
)

// ArraySerializer moves a slice as an int32 element count followed by the
// elements. A nil slice is written with count -1 and read back as nil.
//
// When the element codec is blittable the elements move in one bulk transfer
// instead of one call per element; both paths produce the same bytes.
type ArraySerializer[T any] struct {
	Base[[]T]
	elem   DataSerializer[T]
	err    error
	bulk   bool
	size   int
	maxLen int
}

// NewArraySerializer returns a codec for []T. The codec for T must be
// registered before this one.
func NewArraySerializer[T any]() *ArraySerializer[T] {
	return &ArraySerializer[T]{}
}

// Initialize resolves the element codec and decides on the bulk path.
func (a *ArraySerializer[T]) Initialize(sel *Selector) {
	a.maxLen = sel.MaxArrayLength()
	a.elem, a.err = Get[T](sel)
	if a.err != nil {
		return
	}
	a.size = fixedSize[T]()
	a.bulk = a.elem.IsBlittable() && a.size > 0
}

// Bulk reports whether elements move in one transfer.
func (a *ArraySerializer[T]) Bulk() bool { return a.bulk }

func (a *ArraySerializer[T]) Serialize(v *[]T, mode Mode, s *Stream) {
	if a.elem == nil {
		err := a.err
		if err == nil {
			err = fmt.Errorf("%w: array codec used before Initialize", ErrNoSerializer)
		}
		s.Fail(err)
		return
	}

	switch mode {
	case ModeSerialize:
		if *v == nil {
			s.WriteInt32(-1)
			return
		}
		if len(*v) > math.MaxInt32 {
			s.Fail(fmt.Errorf("%w: %d elements", ErrArrayTooLong, len(*v)))
			return
		}
		s.WriteInt32(int32(len(*v)))
		a.elements(*v, mode, s)

	case ModeDeserialize:
		n := s.ReadInt32()
		if s.Err() != nil {
			return
		}
		if n == -1 {
			*v = nil
			return
		}
		if n < 0 || (a.maxLen > 0 && int(n) > a.maxLen) {
			s.Fail(fmt.Errorf("%w: %d elements", ErrArrayTooLong, n))
			return
		}
		// Bulk elements cannot outnumber the bytes left to read.
		if left := s.Remaining(); a.bulk && left >= 0 && int64(n)*int64(a.size) > left {
			s.Fail(fmt.Errorf("%w: %d elements of %d bytes, %d bytes left", ErrTruncatedData, n, a.size, left))
			return
		}
		out := make([]T, n)
		a.elements(out, mode, s)
		if s.Err() == nil {
			*v = out
		}
	}
}

func (a *ArraySerializer[T]) elements(items []T, mode Mode, s *Stream) {
	if len(items) == 0 {
		return
	}
	if a.bulk {
		s.SerializeData(items)
		return
	}
	for i := range items {
		a.elem.Serialize(&items[i], mode, s)
		if s.Err() != nil {
			return
		}
	}
}
