package serial

import "errors"

var (
	// ErrNilIO indicates that NewReader/NewWriter was called with an nil interface
	ErrNilIO = errors.New("serial: NewReader/NewWriter called with a nil io.Reader/io.Writer")

	// ErrAlreadyBuffered indicates that NewReader/NewWriter was called with an already-buffered
	// reader/writer, which would lead to unpredictable behavior and performance issues.
	ErrAlreadyBuffered = errors.New("serial: reader or writer is already buffered")

	// ErrInvalidWrite indicates that an io.Writer returned an invalid (negative) count from Write.
	ErrInvalidWrite = errors.New("serial: writer returned invalid count from Write")

	// ErrInvalidRead indicates that an io.Reader returned an invalid (negative or outbound) count from Read.
	ErrInvalidRead = errors.New("serial: reader returned invalid count from Read")


	// ErrTrailingData is returned by Unmarshal when non-zero bytes are found
	// after the expected end of the value.
	ErrTrailingData = errors.New("serial: non-zero trailing data found after decoding")

	// ErrTruncatedData indicates that the underlying data source ended before
	// all expected bytes were read.
	ErrTruncatedData = errors.New("serial: truncated data")

	// ErrStringTooLong indicates a length prefix above the configured maximum.
	ErrStringTooLong = errors.New("serial: string length exceeds limit")

	// ErrArrayTooLong indicates an element count above the configured maximum, or a negative one.
	ErrArrayTooLong = errors.New("serial: array length out of range")

	// ErrVarintOverflow indicates a malformed uvarint length prefix.
	ErrVarintOverflow = errors.New("serial: varint overflows a 64-bit integer")

	// ErrDurationOverflow indicates a tick count that does not fit a time.Duration.
	ErrDurationOverflow = errors.New("serial: duration overflows time.Duration")

	// ErrInvalidURL indicates the text read for a URL slot could not be parsed.
	ErrInvalidURL = errors.New("serial: invalid url")

	// ErrNotEnum indicates a type-erased enum slot holding something that is not an integer type.
	ErrNotEnum = errors.New("serial: value is not an enum")

	// ErrEnumOverflow indicates an enum value that does not fit the 32-bit type-erased wire form.
	ErrEnumOverflow = errors.New("serial: enum value overflows int32")

	// ErrInvalidEnumSize is the panic value (wrapped) of a typed enum codec whose
	// underlying width is not 1, 2, 4 or 8 bytes.
	ErrInvalidEnumSize = errors.New("serial: unsupported enum underlying size")

	// ErrNoSerializer indicates no codec is registered for the requested type.
	ErrNoSerializer = errors.New("serial: no serializer registered")

	// ErrWrongMode indicates a stream used in a direction it was not built for.
	ErrWrongMode = errors.New("serial: stream mode does not match operation")
)
