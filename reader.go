package serial

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// Reader provides a buffered reader that simplifies reading binary data.
// It tracks the first error; subsequent reads become no-ops and leave their
// destinations untouched.
type Reader struct {
	r     source
	count int64 // total bytes read
	err   error // first error encountered.
	order binary.ByteOrder
	tmp   [8]byte

	maxString int
}

// NewReaderSize creates a new Reader with a specified buffer size.
// A negative size disables buffering so that nothing beyond the cursor is
// consumed from r.
func NewReaderSize(r io.Reader, size int) (*Reader, error) {
	if r == nil {
		return nil, ErrNilIO
	}

	switch reader := r.(type) {
	case *Reader:
		return &Reader{r: reader.r, order: reader.order, maxString: reader.maxString}, nil

	// prevent unpredictable double-buffering.
	case *bufio.Reader:
		if reader.Size() >= size {
			return &Reader{r: reader, order: Order}, nil
		}
		return nil, ErrAlreadyBuffered

	// underlying is a buf so we don't need buffering
	case *BytesReader:
		return &Reader{r: reader, order: Order}, nil
	case *bytes.Reader:
		return &Reader{r: reader, order: Order}, nil
	case *bytes.Buffer:
		return &Reader{r: reader, order: Order}, nil
	}

	if size < 0 {
		return &Reader{r: &byteReaderAdapter{Reader: r}, order: Order}, nil
	}
	if size == 0 {
		size = BUFFER_SIZE
	}
	return &Reader{r: bufio.NewReaderSize(r, size), order: Order}, nil
}

// NewReader creates a new Reader with a default buffer size.
func NewReader(r io.Reader) (*Reader, error) {
	return NewReaderSize(r, 0)
}

// WithByteOrder sets the byte order of fixed-width values and returns
// the Reader for chaining.
func (r *Reader) WithByteOrder(order binary.ByteOrder) *Reader {
	r.order = order
	return r
}

// WithLimit caps the total number of bytes this Reader will consume.
func (r *Reader) WithLimit(n int64) *Reader {
	r.r = limitSource(r.r, n)
	return r
}

// WithMaxStringLength rejects length prefixes above n. Zero means unlimited.
func (r *Reader) WithMaxStringLength(n int) *Reader {
	r.maxString = n
	return r
}

// Read implements the io.Reader interface.
func (r *Reader) Read(p []byte) (int, error) {
	if r.err != nil {
		return 0, r.err
	}
	n, err := r.r.Read(p)
	if n < 0 || n > len(p) {
		n, err = 0, ErrInvalidRead
	}
	r.count += int64(n)
	// A source may return its final bytes together with io.EOF. Only an
	// empty read marks the end of the stream.
	if err == io.EOF && n > 0 {
		err = nil
	}
	r.setError(err)
	return n, r.err
}

// Remaining returns the number of bytes left in the source, or -1 when the
// source cannot tell.
func (r *Reader) Remaining() int64 { return remaining(r.r) }

func (r *Reader) Count() int64 { return r.count }
func (r *Reader) Err() error   { return r.err }
func (r *Reader) IsEOF() bool  { return r.err == io.EOF }

// setError records the first non-nil error.
func (r *Reader) setError(err error) {
	if r.err == nil && err != nil {
		r.err = err
	}
}

// Result returns the total bytes read and the final error state.
func (r *Reader) Result() (int64, error) {
	return r.count, r.err
}

// readFull fills dest completely or latches an error.
func (r *Reader) readFull(dest []byte) bool {
	if r.err != nil {
		return false
	}
	if _, err := io.ReadFull(r, dest); err != nil {
		if err == io.EOF {
			// A partial read is different from a clean end-of-stream.
			r.err = io.ErrUnexpectedEOF
		} else {
			r.err = err
		}
		return false
	}
	return true
}

// ReadBytes reads n bytes and returns a new byte slice.
func (r *Reader) ReadBytes(n int) []byte {
	if n <= 0 || r.err != nil {
		return nil
	}
	buf := make([]byte, n)
	if !r.readFull(buf) {
		return nil
	}
	return buf
}

// ReadBytesTo fills dest from the stream.
func (r *Reader) ReadBytesTo(dest []byte) {
	if len(dest) == 0 {
		return
	}
	if r.err != nil {
		return
	}
	// Staged through a scratch buffer for small spans so a failed read
	// leaves dest untouched.
	if len(dest) <= 16 {
		var scratch [16]byte
		if r.readFull(scratch[:len(dest)]) {
			copy(dest, scratch[:len(dest)])
		}
		return
	}
	buf := make([]byte, len(dest))
	if r.readFull(buf) {
		copy(dest, buf)
	}
}

// ReadUvarint reads an unsigned LEB128 varint.
func (r *Reader) ReadUvarint() uint64 {
	if r.err != nil {
		return 0
	}
	v, err := binary.ReadUvarint(byteCounter{r})
	if err != nil {
		switch err {
		case io.EOF:
			r.setError(io.ErrUnexpectedEOF)
		case io.ErrUnexpectedEOF:
			r.setError(err)
		default:
			r.setError(ErrVarintOverflow)
		}
		return 0
	}
	return v
}

// ReadString reads a uvarint byte length followed by that many UTF-8 bytes.
func (r *Reader) ReadString(dest *string) {
	n := r.ReadUvarint()
	if r.err != nil {
		return
	}
	if (r.maxString > 0 && n > uint64(r.maxString)) || n > math.MaxInt32 {
		r.setError(fmt.Errorf("%w: %d bytes", ErrStringTooLong, n))
		return
	}
	if n == 0 {
		*dest = ""
		return
	}
	buf := make([]byte, n)
	if r.readFull(buf) {
		*dest = string(buf)
	}
}

// --- Primitive Read Operations ---

func (r *Reader) ReadBool(dest *bool) {
	var b uint8
	r.ReadUint8(&b)
	if r.err == nil {
		*dest = b != 0
	}
}

func (r *Reader) ReadUint8(dest *uint8) {
	if r.err != nil {
		return
	}
	b, err := r.r.ReadByte()
	if err == nil {
		r.count++
		*dest = b
	} else {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		r.err = err
	}
}

func (r *Reader) ReadUint16(dest *uint16) {
	if r.readFull(r.tmp[:2]) {
		*dest = r.order.Uint16(r.tmp[:2])
	}
}

func (r *Reader) ReadUint32(dest *uint32) {
	if r.readFull(r.tmp[:4]) {
		*dest = r.order.Uint32(r.tmp[:4])
	}
}

func (r *Reader) ReadUint64(dest *uint64) {
	if r.readFull(r.tmp[:8]) {
		*dest = r.order.Uint64(r.tmp[:8])
	}
}

func (r *Reader) ReadInt8(dest *int8) {
	var v uint8
	r.ReadUint8(&v)
	if r.err == nil {
		*dest = int8(v)
	}
}

func (r *Reader) ReadInt16(dest *int16) {
	if r.readFull(r.tmp[:2]) {
		*dest = int16(r.order.Uint16(r.tmp[:2]))
	}
}

func (r *Reader) ReadInt32(dest *int32) {
	if r.readFull(r.tmp[:4]) {
		*dest = int32(r.order.Uint32(r.tmp[:4]))
	}
}

func (r *Reader) ReadInt64(dest *int64) {
	if r.readFull(r.tmp[:8]) {
		*dest = int64(r.order.Uint64(r.tmp[:8]))
	}
}

func (r *Reader) ReadFloat32(dest *float32) {
	if r.readFull(r.tmp[:4]) {
		*dest = math.Float32frombits(r.order.Uint32(r.tmp[:4]))
	}
}

func (r *Reader) ReadFloat64(dest *float64) {
	if r.readFull(r.tmp[:8]) {
		*dest = math.Float64frombits(r.order.Uint64(r.tmp[:8]))
	}
}

// ReadData fills a pointer to a fixed-size value, or a slice of fixed-size
// values, in one call.
func (r *Reader) ReadData(data any) {
	if r.err != nil {
		return
	}
	if err := binary.Read(r, r.order, data); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		if r.err == nil || r.err == io.EOF {
			r.err = err
		}
	}
}

// byteCounter lets binary.ReadUvarint consume bytes through the Reader's
// accounting.
type byteCounter struct{ r *Reader }

func (b byteCounter) ReadByte() (byte, error) {
	c, err := b.r.r.ReadByte()
	if err == nil {
		b.r.count++
	}
	return c, err
}
