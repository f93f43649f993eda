package serial

import (
	"bytes"
	"errors"
	"fmt"
	"io"
)

// Marshal encodes v with the codec sel holds for T and returns a new slice.
func Marshal[T any](sel *Selector, v T, opts ...Option) ([]byte, error) {
	buf := bytesBufPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer bytesBufPool.Put(buf)

	s, err := NewWriteStream(buf, opts...)
	if err != nil {
		return nil, err
	}
	SerializeValue(sel, &v, ModeSerialize, s)
	if _, err := s.Result(); err != nil {
		return nil, err
	}
	return bytes.Clone(buf.Bytes()), nil
}

// MarshalTo encodes v into p without allocating, returning the number of
// bytes written. It reports io.ErrShortWrite if p is too small.
func MarshalTo[T any](sel *Selector, v T, p []byte, opts ...Option) (int, error) {
	w := NewBytesWriter(p)
	s, err := NewWriteStream(w, opts...)
	if err != nil {
		return 0, err
	}
	SerializeValue(sel, &v, ModeSerialize, s)
	n, err := s.Result()
	return int(n), err
}

// Unmarshal decodes data into v with the codec sel holds for T.
// Bytes left after the value must all be zero.
func Unmarshal[T any](sel *Selector, data []byte, v *T, opts ...Option) error {
	r := NewBytesReader(data)
	s, err := NewReadStream(r, opts...)
	if err != nil {
		return err
	}
	SerializeValue(sel, v, ModeDeserialize, s)
	if err := s.Err(); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: %w", ErrTruncatedData, err)
		}
		return err
	}
	return CheckTrailingNotZeros(r)
}
