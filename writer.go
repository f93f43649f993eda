package serial

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"io"
	"math"
)

// Writer provides a buffered writer that simplifies writing binary data.
// It tracks the first error that occurs; after an error, all subsequent
// write operations become no-ops.
type Writer struct {
	w     sink
	count int64 // total bytes written
	err   error // first error encountered. Subsequent writes become no-ops.
	depth int
	order binary.ByteOrder
	tmp   [binary.MaxVarintLen64]byte
}

// NewWriterSize creates a new Writer with a specified buffer size.
// A negative size disables buffering entirely. Already-buffered writers are
// reused rather than wrapped a second time.
func NewWriterSize(w io.Writer, size int) (*Writer, error) {
	if w == nil {
		return nil, ErrNilIO
	}

	switch bw := w.(type) {
	// Share the sink of an enclosing Writer; only the outermost one flushes.
	case *Writer:
		return &Writer{w: bw.w, depth: bw.depth + 1, order: bw.order}, nil

	// prevent unpredictable double-buffering.
	case *bufio.Writer:
		if bw.Size() >= size {
			return &Writer{w: bw, order: Order}, nil
		}
		return nil, ErrAlreadyBuffered

	// underlying is a buf so we don't need buffering
	case *BytesWriter:
		return &Writer{w: bw, order: Order}, nil
	case *bytes.Buffer:
		return &Writer{w: &bytesBufferWriterAdapter{bw}, order: Order}, nil
	}

	if size < 0 {
		return &Writer{w: &nopFlushWriterAdapter{w}, order: Order}, nil
	}
	return &Writer{w: bufio.NewWriterSize(w, size), order: Order}, nil
}

// NewWriter creates a new Writer with a default buffer size.
func NewWriter(w io.Writer) (*Writer, error) {
	return NewWriterSize(w, 0)
}

// WithByteOrder sets the byte order of fixed-width values and returns
// the Writer for chaining.
func (w *Writer) WithByteOrder(order binary.ByteOrder) *Writer {
	w.order = order
	return w
}

// Write implements the io.Writer interface.
func (w *Writer) Write(buf []byte) (int, error) {
	if len(buf) == 0 || w.err != nil {
		return 0, w.err
	}
	n, err := w.w.Write(buf)
	if n < 0 {
		n, err = 0, ErrInvalidWrite
	}
	w.count += int64(n)
	w.setError(err)
	return n, w.err
}

func (w *Writer) Count() int64 { return w.count }
func (w *Writer) Err() error   { return w.err }

// setError records the first non-nil error.
// This preserves the root cause of a failure chain instead of a later,
// less relevant error.
func (w *Writer) setError(err error) {
	if w.err == nil && err != nil {
		w.err = err
	}
}

// Result flushes the buffer and returns the final count and error state.
func (w *Writer) Result() (int64, error) {
	w.Flush()
	return w.count, w.err
}

// Flush writes any buffered data to the underlying io.Writer.
func (w *Writer) Flush() error {
	// Only the outermost writer is responsible for the final flush.
	if w.depth > 0 || w.err != nil {
		return w.err
	}
	err := w.w.Flush()
	w.setError(err)
	return err
}

// WriteBytes writes a byte slice verbatim.
func (w *Writer) WriteBytes(buf []byte) {
	if w.err != nil {
		return
	}
	_, _ = w.Write(buf)
}

// WriteUvarint writes v as an unsigned LEB128 varint.
func (w *Writer) WriteUvarint(v uint64) {
	if w.err != nil {
		return
	}
	n := binary.PutUvarint(w.tmp[:], v)
	_, _ = w.Write(w.tmp[:n])
}

// WriteString writes a uvarint byte length followed by the UTF-8 bytes of s.
func (w *Writer) WriteString(s string) {
	if w.err != nil {
		return
	}
	w.WriteUvarint(uint64(len(s)))
	if len(s) == 0 || w.err != nil {
		return
	}
	if sw, ok := w.w.(io.StringWriter); ok {
		n, err := sw.WriteString(s)
		w.count += int64(n)
		w.setError(err)
		return
	}
	_, _ = w.Write([]byte(s))
}

// --- Primitive Write Operations ---

func (w *Writer) WriteBool(v bool) {
	if v {
		w.WriteUint8(1)
	} else {
		w.WriteUint8(0)
	}
}

func (w *Writer) WriteUint8(v uint8) {
	if w.err != nil {
		return
	}
	err := w.w.WriteByte(v)
	if err == nil {
		w.count++
	} else {
		w.err = err
	}
}

func (w *Writer) WriteUint16(v uint16) {
	if w.err != nil {
		return
	}
	w.order.PutUint16(w.tmp[:2], v)
	_, _ = w.Write(w.tmp[:2])
}

func (w *Writer) WriteUint32(v uint32) {
	if w.err != nil {
		return
	}
	w.order.PutUint32(w.tmp[:4], v)
	_, _ = w.Write(w.tmp[:4])
}

func (w *Writer) WriteUint64(v uint64) {
	if w.err != nil {
		return
	}
	w.order.PutUint64(w.tmp[:8], v)
	_, _ = w.Write(w.tmp[:8])
}

func (w *Writer) WriteInt8(v int8)   { w.WriteUint8(uint8(v)) }
func (w *Writer) WriteInt16(v int16) { w.WriteUint16(uint16(v)) }
func (w *Writer) WriteInt32(v int32) { w.WriteUint32(uint32(v)) }
func (w *Writer) WriteInt64(v int64) { w.WriteUint64(uint64(v)) }

func (w *Writer) WriteFloat32(v float32) { w.WriteUint32(math.Float32bits(v)) }
func (w *Writer) WriteFloat64(v float64) { w.WriteUint64(math.Float64bits(v)) }

// WriteData writes a fixed-size value or slice of fixed-size values in one
// call, with the same layout the primitive writes would produce.
func (w *Writer) WriteData(data any) {
	if w.err != nil {
		return
	}
	w.setError(binary.Write(w, w.order, data))
}
