package serial

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

// encode writes v with ser and returns the bytes produced.
func encode[T any](t *testing.T, ser DataSerializer[T], v T, opts ...Option) []byte {
	t.Helper()
	var buf bytes.Buffer
	s, err := NewWriteStream(&buf, opts...)
	require.NoError(t, err)
	ser.Serialize(&v, ModeSerialize, s)
	n, err := s.Result()
	require.NoError(t, err)
	require.EqualValues(t, buf.Len(), n)
	return buf.Bytes()
}

// decode reads data into a copy of into and returns it with the stream used.
func decode[T any](t *testing.T, ser DataSerializer[T], data []byte, into T, opts ...Option) (T, *Stream) {
	t.Helper()
	s, err := NewReadStream(bytes.NewReader(data), opts...)
	require.NoError(t, err)
	ser.Serialize(&into, ModeDeserialize, s)
	return into, s
}

// roundTrip writes v, reads it into a fresh slot, and checks that read
// consumed exactly what write produced.
func roundTrip[T any](t *testing.T, ser DataSerializer[T], v T, opts ...Option) T {
	t.Helper()
	data := encode(t, ser, v, opts...)
	var fresh T
	got, s := decode(t, ser, data, fresh, opts...)
	require.NoError(t, s.Err())
	require.EqualValues(t, len(data), s.Count())
	return got
}
