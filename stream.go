package serial

import (
	"fmt"
	"io"

	"go.uber.org/zap"
)

// Mode is the direction of a Serialize call.
type Mode uint8

const (
	ModeSerialize Mode = iota
	ModeDeserialize
)

func (m Mode) String() string {
	switch m {
	case ModeSerialize:
		return "serialize"
	case ModeDeserialize:
		return "deserialize"
	default:
		return fmt.Sprintf("mode(%d)", uint8(m))
	}
}

// Char is a single UTF-16 code unit.
type Char uint16

// Stream is the sequential byte stream every codec reads from or writes to.
// A Stream is built for exactly one direction; its Serialize* primitives
// write in ModeSerialize and fill their argument in ModeDeserialize.
//
// Errors are latched: the first one sticks, later calls are no-ops, and read
// destinations are left untouched once an error is recorded.
//
// A Stream is not safe for concurrent use.
type Stream struct {
	mode Mode
	w    *Writer
	r    *Reader
	cfg  *config
}

// NewWriteStream returns a stream in ModeSerialize that appends to w.
// Call Result or Flush once done.
func NewWriteStream(w io.Writer, opts ...Option) (*Stream, error) {
	cfg := newConfig(opts)
	writer, err := NewWriterSize(w, cfg.bufferSize)
	if err != nil {
		return nil, err
	}
	writer.WithByteOrder(cfg.order)
	return &Stream{mode: ModeSerialize, w: writer, cfg: cfg}, nil
}

// NewReadStream returns a stream in ModeDeserialize that consumes r.
func NewReadStream(r io.Reader, opts ...Option) (*Stream, error) {
	cfg := newConfig(opts)
	reader, err := NewReaderSize(r, cfg.bufferSize)
	if err != nil {
		return nil, err
	}
	reader.WithByteOrder(cfg.order).WithMaxStringLength(cfg.maxString)
	if cfg.readLimit > 0 {
		reader.WithLimit(cfg.readLimit)
	}
	return &Stream{mode: ModeDeserialize, r: reader, cfg: cfg}, nil
}

func (s *Stream) Mode() Mode { return s.mode }

// Logger returns the logger the stream was configured with.
func (s *Stream) Logger() *zap.Logger { return s.cfg.logger }

// Err returns the first error recorded on the stream.
func (s *Stream) Err() error {
	if s.w != nil {
		return s.w.Err()
	}
	return s.r.Err()
}

// Count returns the number of bytes moved so far.
func (s *Stream) Count() int64 {
	if s.w != nil {
		return s.w.Count()
	}
	return s.r.Count()
}

// Remaining returns the number of unread bytes of a read stream, or -1 when
// unknown or when writing.
func (s *Stream) Remaining() int64 {
	if s.r == nil {
		return -1
	}
	return s.r.Remaining()
}

// Flush pushes buffered output to the underlying writer. It is a no-op for
// read streams.
func (s *Stream) Flush() error {
	if s.w != nil {
		return s.w.Flush()
	}
	return s.r.Err()
}

// Result flushes and returns the byte count and the first error.
func (s *Stream) Result() (int64, error) {
	if s.w != nil {
		return s.w.Result()
	}
	return s.r.Result()
}

// Fail records err as the stream's error unless one is already latched.
func (s *Stream) Fail(err error) {
	if s.w != nil {
		s.w.setError(err)
		return
	}
	s.r.setError(err)
}

func (s *Stream) writing() bool { return s.mode == ModeSerialize }

// --- Bidirectional primitives ---

func (s *Stream) SerializeBool(v *bool) {
	switch s.mode {
	case ModeSerialize:
		s.w.WriteBool(*v)
	case ModeDeserialize:
		s.r.ReadBool(v)
	}
}

func (s *Stream) SerializeInt8(v *int8) {
	switch s.mode {
	case ModeSerialize:
		s.w.WriteInt8(*v)
	case ModeDeserialize:
		s.r.ReadInt8(v)
	}
}

func (s *Stream) SerializeUint8(v *uint8) {
	switch s.mode {
	case ModeSerialize:
		s.w.WriteUint8(*v)
	case ModeDeserialize:
		s.r.ReadUint8(v)
	}
}

func (s *Stream) SerializeInt16(v *int16) {
	switch s.mode {
	case ModeSerialize:
		s.w.WriteInt16(*v)
	case ModeDeserialize:
		s.r.ReadInt16(v)
	}
}

func (s *Stream) SerializeUint16(v *uint16) {
	switch s.mode {
	case ModeSerialize:
		s.w.WriteUint16(*v)
	case ModeDeserialize:
		s.r.ReadUint16(v)
	}
}

func (s *Stream) SerializeInt32(v *int32) {
	switch s.mode {
	case ModeSerialize:
		s.w.WriteInt32(*v)
	case ModeDeserialize:
		s.r.ReadInt32(v)
	}
}

func (s *Stream) SerializeUint32(v *uint32) {
	switch s.mode {
	case ModeSerialize:
		s.w.WriteUint32(*v)
	case ModeDeserialize:
		s.r.ReadUint32(v)
	}
}

func (s *Stream) SerializeInt64(v *int64) {
	switch s.mode {
	case ModeSerialize:
		s.w.WriteInt64(*v)
	case ModeDeserialize:
		s.r.ReadInt64(v)
	}
}

func (s *Stream) SerializeUint64(v *uint64) {
	switch s.mode {
	case ModeSerialize:
		s.w.WriteUint64(*v)
	case ModeDeserialize:
		s.r.ReadUint64(v)
	}
}

func (s *Stream) SerializeFloat32(v *float32) {
	switch s.mode {
	case ModeSerialize:
		s.w.WriteFloat32(*v)
	case ModeDeserialize:
		s.r.ReadFloat32(v)
	}
}

func (s *Stream) SerializeFloat64(v *float64) {
	switch s.mode {
	case ModeSerialize:
		s.w.WriteFloat64(*v)
	case ModeDeserialize:
		s.r.ReadFloat64(v)
	}
}

func (s *Stream) SerializeChar(v *Char) {
	switch s.mode {
	case ModeSerialize:
		s.w.WriteUint16(uint16(*v))
	case ModeDeserialize:
		var u uint16
		s.r.ReadUint16(&u)
		if s.r.Err() == nil {
			*v = Char(u)
		}
	}
}

// SerializeString moves a length-prefixed UTF-8 string.
func (s *Stream) SerializeString(v *string) {
	switch s.mode {
	case ModeSerialize:
		s.w.WriteString(*v)
	case ModeDeserialize:
		s.r.ReadString(v)
	}
}

// SerializeBytes moves len(p) raw bytes with no length prefix.
func (s *Stream) SerializeBytes(p []byte) {
	switch s.mode {
	case ModeSerialize:
		s.w.WriteBytes(p)
	case ModeDeserialize:
		s.r.ReadBytesTo(p)
	}
}

// SerializeData moves a pointer to a fixed-size value, or a slice of
// fixed-size values, as one contiguous image in the stream's byte order.
func (s *Stream) SerializeData(data any) {
	switch s.mode {
	case ModeSerialize:
		s.w.WriteData(data)
	case ModeDeserialize:
		s.r.ReadData(data)
	}
}

// --- Directional helpers for codecs that branch on mode ---

func (s *Stream) WriteString(v string) {
	if !s.writing() {
		s.Fail(fmt.Errorf("%w: WriteString on a %s stream", ErrWrongMode, s.mode))
		return
	}
	s.w.WriteString(v)
}

func (s *Stream) ReadString() string {
	var v string
	if s.writing() {
		s.Fail(fmt.Errorf("%w: ReadString on a %s stream", ErrWrongMode, s.mode))
		return v
	}
	s.r.ReadString(&v)
	return v
}

func (s *Stream) WriteInt32(v int32) {
	if !s.writing() {
		s.Fail(fmt.Errorf("%w: WriteInt32 on a %s stream", ErrWrongMode, s.mode))
		return
	}
	s.w.WriteInt32(v)
}

func (s *Stream) ReadInt32() int32 {
	var v int32
	if s.writing() {
		s.Fail(fmt.Errorf("%w: ReadInt32 on a %s stream", ErrWrongMode, s.mode))
		return v
	}
	s.r.ReadInt32(&v)
	return v
}

func (s *Stream) WriteInt64(v int64) {
	if !s.writing() {
		s.Fail(fmt.Errorf("%w: WriteInt64 on a %s stream", ErrWrongMode, s.mode))
		return
	}
	s.w.WriteInt64(v)
}

func (s *Stream) ReadInt64() int64 {
	var v int64
	if s.writing() {
		s.Fail(fmt.Errorf("%w: ReadInt64 on a %s stream", ErrWrongMode, s.mode))
		return v
	}
	s.r.ReadInt64(&v)
	return v
}
