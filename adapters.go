package serial

import (
	"bufio"
	"bytes"
	"io"
)

// sink is what a Writer needs from the layer below it.
type sink interface {
	io.Writer
	io.ByteWriter
	Flush() error
}

// source is what a Reader needs from the layer below it.
type source interface {
	io.Reader
	io.ByteReader
}

type (
	bytesBufferWriterAdapter struct{ *bytes.Buffer }
	nopFlushWriterAdapter    struct{ io.Writer }
	byteReaderAdapter        struct {
		io.Reader
		one [1]byte
	}
)

var (
	_ sink   = (*bufio.Writer)(nil)
	_ sink   = (*BytesWriter)(nil)
	_ source = (*bufio.Reader)(nil)
	_ source = (*bytes.Reader)(nil)
	_ source = (*BytesReader)(nil)
)

func (w *bytesBufferWriterAdapter) Flush() error { return nil }

// WriteByte is only used for unbuffered writers that already provide io.ByteWriter semantics
// through a single-byte Write.
func (w *nopFlushWriterAdapter) WriteByte(c byte) error {
	_, err := w.Write([]byte{c})
	return err
}

func (w *nopFlushWriterAdapter) Flush() error { return nil }

// ReadByte reads exactly one byte without any read-ahead, so nothing past the
// cursor is consumed from the underlying reader.
func (r *byteReaderAdapter) ReadByte() (byte, error) {
	n, err := io.ReadFull(r.Reader, r.one[:])
	if n == 1 {
		return r.one[0], nil
	}
	return 0, err
}

// limitedSource caps the total number of bytes a Reader may consume.
type limitedSource struct {
	r source
	n int64 // bytes remaining
}

func limitSource(r source, n int64) *limitedSource {
	return &limitedSource{r: r, n: n}
}

func (l *limitedSource) Read(p []byte) (int, error) {
	if l.n <= 0 {
		return 0, io.EOF
	}
	if int64(len(p)) > l.n {
		p = p[:l.n]
	}
	n, err := l.r.Read(p)
	l.n -= int64(n)
	return n, err
}

// remaining reports how many bytes src still holds, or -1 if unknown.
func remaining(src source) int64 {
	switch s := src.(type) {
	case *BytesReader:
		return int64(s.Available())
	case *bytes.Reader:
		return int64(s.Len())
	case *bytes.Buffer:
		return int64(s.Len())
	case *limitedSource:
		if n := remaining(s.r); n >= 0 && n < s.n {
			return n
		}
		return max(s.n, 0)
	}
	return -1
}

func (l *limitedSource) ReadByte() (byte, error) {
	if l.n <= 0 {
		return 0, io.EOF
	}
	b, err := l.r.ReadByte()
	if err == nil {
		l.n--
	}
	return b, err
}
