package serial

import (
	"encoding/binary"
	"fmt"
	"io"
)

var (
	BE = binary.BigEndian
	LE = binary.LittleEndian
	// Order is the default byte order of fixed-width values on the wire.
	Order binary.ByteOrder = LE
)

const BUFFER_SIZE = 4096

// MAX_PADDING defines the maximum number of trailing bytes to check.
// Anything larger is considered a protocol error.
const MAX_PADDING = 1024 // 1KB

// CheckBufferNotZeros verifies that every byte of a trailing buffer is zero.
func CheckBufferNotZeros(trailing []byte) error {
	if len(trailing) > MAX_PADDING {
		return fmt.Errorf("%w: exceeds maximum expected size of %d bytes", ErrTrailingData, MAX_PADDING)
	}
	for i, b := range trailing {
		if b != 0 {
			return fmt.Errorf("%w: found non-zero byte 0x%02x at offset %d", ErrTrailingData, b, i)
		}
	}
	return nil
}

// CheckTrailingNotZeros verifies that any remaining bytes in a reader are all zero.
func CheckTrailingNotZeros(r io.Reader) error {
	if reader, ok := r.(*BytesReader); ok {
		if reader.Available() == 0 {
			return nil
		}
		return CheckBufferNotZeros(reader.B[reader.N:])
	}

	// Read up to MAX_PADDING + 1 bytes; if that succeeds there was too much data.
	lr := &io.LimitedReader{R: r, N: MAX_PADDING + 1}
	trailingData, err := io.ReadAll(lr)
	if err != nil {
		return err
	}
	return CheckBufferNotZeros(trailingData)
}
