package serial

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalUnmarshal(t *testing.T) {
	sel := NewDefaultSelector()

	data, err := Marshal(sel, "hello")
	require.NoError(t, err)
	assert.Equal(t, []byte{5, 'h', 'e', 'l', 'l', 'o'}, data)

	var got string
	require.NoError(t, Unmarshal(sel, data, &got))
	assert.Equal(t, "hello", got)

	t.Run("TrailingZerosAllowed", func(t *testing.T) {
		var v uint16
		require.NoError(t, Unmarshal(sel, []byte{1, 0, 0, 0}, &v))
		assert.Equal(t, uint16(1), v)
	})

	t.Run("TrailingData", func(t *testing.T) {
		var v uint16
		err := Unmarshal(sel, []byte{1, 0, 9}, &v)
		assert.ErrorIs(t, err, ErrTrailingData)
	})

	t.Run("Truncated", func(t *testing.T) {
		var v uint64
		err := Unmarshal(sel, []byte{1, 2}, &v)
		assert.ErrorIs(t, err, ErrTruncatedData)
		assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	})

	t.Run("ReadLimit", func(t *testing.T) {
		data, err := Marshal(sel, "a longer string")
		require.NoError(t, err)
		var v string
		err = Unmarshal(sel, data, &v, WithReadLimit(4))
		assert.ErrorIs(t, err, ErrTruncatedData)
	})

	t.Run("MaxStringLength", func(t *testing.T) {
		var v string
		err := Unmarshal(sel, data, &v, WithMaxStringLength(3))
		assert.ErrorIs(t, err, ErrStringTooLong)
	})

	t.Run("NoCodec", func(t *testing.T) {
		_, err := Marshal(sel, struct{}{})
		assert.ErrorIs(t, err, ErrNoSerializer)
	})
}

func TestMarshalTo(t *testing.T) {
	sel := NewDefaultSelector()

	buf := make([]byte, 8)
	n, err := MarshalTo(sel, int64(-2), buf)
	require.NoError(t, err)
	assert.Equal(t, 8, n)
	assert.Equal(t, []byte{0xFE, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}, buf)

	_, err = MarshalTo(sel, int64(-2), make([]byte, 7))
	assert.ErrorIs(t, err, io.ErrShortWrite)
}
