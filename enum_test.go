package serial

import (
	"bytes"
	"encoding/binary"
	"reflect"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type Color int32

const (
	Red Color = iota
	Green
	Blue
)

type (
	Small  uint8
	Medium int16
	Large  uint64
	Wide   int64
)

func TestTypedEnumWidths(t *testing.T) {
	t.Run("Width1", func(t *testing.T) {
		ser := NewTypedEnumSerializer[Small]()
		ser.Initialize(nil)
		require.Equal(t, 1, ser.Size())

		data := encode[Small](t, ser, 3)
		assert.Equal(t, []byte{3, 0, 0, 0}, data, "small enums are padded to four bytes")
		assert.Equal(t, Small(3), roundTrip[Small](t, ser, 3))
		assert.Equal(t, Small(255), roundTrip[Small](t, ser, 255))
	})

	t.Run("Width2", func(t *testing.T) {
		ser := NewTypedEnumSerializer[Medium]()
		ser.Initialize(nil)
		require.Equal(t, 2, ser.Size())

		data := encode[Medium](t, ser, -1)
		assert.Equal(t, []byte{0xFF, 0xFF, 0, 0}, data, "zero-extended, not sign-extended")
		assert.Equal(t, Medium(-1), roundTrip[Medium](t, ser, -1))
	})

	t.Run("Width4", func(t *testing.T) {
		ser := NewTypedEnumSerializer[Color]()
		ser.Initialize(nil)
		require.Equal(t, 4, ser.Size())

		data := encode[Color](t, ser, Blue)
		assert.Equal(t, []byte{2, 0, 0, 0}, data)
		assert.Equal(t, Blue, roundTrip[Color](t, ser, Blue))
	})

	t.Run("Width8", func(t *testing.T) {
		ser := NewTypedEnumSerializer[Large]()
		ser.Initialize(nil)
		require.Equal(t, 8, ser.Size())

		data := encode[Large](t, ser, 1<<40)
		require.Len(t, data, 8)
		assert.Equal(t, uint64(1<<40), binary.LittleEndian.Uint64(data))
		assert.Equal(t, Large(1<<40), roundTrip[Large](t, ser, 1<<40))

		wide := NewTypedEnumSerializer[Wide]()
		wide.Initialize(nil)
		assert.Equal(t, Wide(-5), roundTrip[Wide](t, wide, -5))
	})
}

func TestTypedEnumNarrowReadLeavesNeighboursAlone(t *testing.T) {
	ser := NewTypedEnumSerializer[Small]()
	ser.Initialize(nil)

	// Two adjacent one-byte slots; reading into the first must not touch the second.
	slots := [2]Small{0, 0xAA}
	s, err := NewReadStream(bytes.NewReader([]byte{3, 0, 0, 0}))
	require.NoError(t, err)
	ser.Serialize(&slots[0], ModeDeserialize, s)
	require.NoError(t, s.Err())
	assert.Equal(t, [2]Small{3, 0xAA}, slots)
}

func TestTypedEnumLastValueOfStream(t *testing.T) {
	ser := NewTypedEnumSerializer[Small]()
	ser.Initialize(nil)

	// The source returns the final bytes together with io.EOF.
	src := iotest.DataErrReader(bytes.NewReader([]byte{3, 0, 0, 0}))
	s, err := NewReadStream(src, WithBufferSize(-1))
	require.NoError(t, err)

	var v Small
	ser.Serialize(&v, ModeDeserialize, s)
	require.NoError(t, s.Err())
	assert.Equal(t, Small(3), v)
	assert.EqualValues(t, 4, s.Count())
}

func TestTypedEnumFollowsStreamDirection(t *testing.T) {
	ser := NewTypedEnumSerializer[Small]()
	ser.Initialize(nil)

	s, err := NewReadStream(bytes.NewReader([]byte{7, 0, 0, 0}))
	require.NoError(t, err)
	var v Small
	ser.Serialize(&v, Mode(7), s)
	require.NoError(t, s.Err())
	assert.Equal(t, Small(7), v, "bytes consumed from a read stream are stored")
	assert.EqualValues(t, 4, s.Count())
}

func TestTypedEnumInvalidWidthPanics(t *testing.T) {
	ser := NewTypedEnumSerializer[Large]()
	ser.Initialize(nil)
	ser.size = 3

	s, err := NewWriteStream(&bytes.Buffer{})
	require.NoError(t, err)
	v := Large(1)

	defer func() {
		r := recover()
		require.NotNil(t, r, "an impossible width must not be silently truncated")
		err, ok := r.(error)
		require.True(t, ok)
		assert.ErrorIs(t, err, ErrInvalidEnumSize)
		assert.Zero(t, s.Count())
	}()
	ser.Serialize(&v, ModeSerialize, s)
}

func TestTypedEnumUninitializedPanics(t *testing.T) {
	ser := NewTypedEnumSerializer[Color]()
	s, err := NewWriteStream(&bytes.Buffer{})
	require.NoError(t, err)
	v := Red
	assert.Panics(t, func() { ser.Serialize(&v, ModeSerialize, s) })
}

func newEnumSelector(t *testing.T) (*Selector, *EnumSerializer, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	sel := NewDefaultSelector(WithLogger(zap.New(core)))
	RegisterEnum[Color](sel)
	ser, err := Get[Enum](sel)
	require.NoError(t, err)
	return sel, ser.(*EnumSerializer), logs
}

func TestEnumSerializer(t *testing.T) {
	_, ser, logs := newEnumSelector(t)
	name := EnumTypeName(reflect.TypeOf(Blue))
	assert.Equal(t, "github.com/oy3o/serial.Color", name)

	t.Run("WireForm", func(t *testing.T) {
		data := encode[Enum](t, ser, Blue)

		var expected bytes.Buffer
		w, _ := NewWriter(&expected)
		w.WriteString(name)
		w.WriteInt32(2)
		_, err := w.Result()
		require.NoError(t, err)
		assert.Equal(t, expected.Bytes(), data)
	})

	t.Run("RoundTrip", func(t *testing.T) {
		got := roundTrip[Enum](t, ser, Blue)
		assert.Equal(t, Enum(Blue), got)
		assert.IsType(t, Color(0), got)
	})

	t.Run("Nil", func(t *testing.T) {
		data := encode[Enum](t, ser, nil)
		assert.Equal(t, []byte{0, 0, 0, 0, 0}, data)

		got, s := decode[Enum](t, ser, data, Green)
		require.NoError(t, s.Err())
		assert.Equal(t, Enum(Green), got)
		assert.EqualValues(t, len(data), s.Count())
	})

	t.Run("UnresolvedLeavesValueUntouched", func(t *testing.T) {
		var buf bytes.Buffer
		w, _ := NewWriter(&buf)
		w.WriteString("example.com/gone.Color")
		w.WriteInt32(2)
		w.WriteUint8(0x7F) // trailing marker
		_, err := w.Result()
		require.NoError(t, err)

		before := ser.Unresolved()
		s, err := NewReadStream(bytes.NewReader(buf.Bytes()))
		require.NoError(t, err)

		v := Enum(Red)
		require.NotPanics(t, func() { ser.Serialize(&v, ModeDeserialize, s) })
		require.NoError(t, s.Err())
		assert.Equal(t, Enum(Red), v)
		assert.Equal(t, before+1, ser.Unresolved())

		// The stream stays aligned with what the writer emitted.
		var marker uint8
		s.SerializeUint8(&marker)
		assert.Equal(t, uint8(0x7F), marker)

		entries := logs.FilterMessage("unresolved enum type, value left unchanged").All()
		require.NotEmpty(t, entries)
		assert.Equal(t, "example.com/gone.Color", entries[len(entries)-1].ContextMap()["type"])
	})

	t.Run("NotAnEnum", func(t *testing.T) {
		s, err := NewWriteStream(&bytes.Buffer{})
		require.NoError(t, err)
		v := Enum("blue")
		ser.Serialize(&v, ModeSerialize, s)
		assert.ErrorIs(t, s.Err(), ErrNotEnum)
	})

	t.Run("Overflow", func(t *testing.T) {
		s, err := NewWriteStream(&bytes.Buffer{})
		require.NoError(t, err)
		v := Enum(Large(1 << 40))
		ser.Serialize(&v, ModeSerialize, s)
		assert.ErrorIs(t, s.Err(), ErrEnumOverflow)
	})

	t.Run("IgnoresUnknownMode", func(t *testing.T) {
		s, err := NewWriteStream(&bytes.Buffer{})
		require.NoError(t, err)
		v := Enum(Blue)
		ser.Serialize(&v, Mode(9), s)
		assert.Zero(t, s.Count())
		assert.NoError(t, s.Err())
	})
}

func TestEnumSerializerCustomResolver(t *testing.T) {
	resolver := resolverFunc(func(name string) (EnumFactory, bool) {
		if name != "legacy.Shade" {
			return nil, false
		}
		return func(v int32) Enum { return Color(v) }, true
	})
	ser := NewEnumSerializer(resolver)
	ser.Initialize(NewSelector())

	var buf bytes.Buffer
	w, _ := NewWriter(&buf)
	w.WriteString("legacy.Shade")
	w.WriteInt32(1)
	_, err := w.Result()
	require.NoError(t, err)

	got, s := decode[Enum](t, ser, buf.Bytes(), nil)
	require.NoError(t, s.Err())
	assert.Equal(t, Enum(Green), got)
}

type resolverFunc func(name string) (EnumFactory, bool)

func (f resolverFunc) ResolveEnum(name string) (EnumFactory, bool) { return f(name) }
