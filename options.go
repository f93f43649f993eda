package serial

import (
	"encoding/binary"

	"go.uber.org/zap"
)

// config holds the settings shared by streams and selectors.
type config struct {
	order      binary.ByteOrder
	logger     *zap.Logger
	maxString  int
	maxArray   int
	readLimit  int64
	bufferSize int
}

// Option configures a Stream or a Selector.
type Option func(*config)

func newConfig(opts []Option) *config {
	c := &config{
		order:    Order,
		logger:   zap.NewNop(),
		maxArray: DefaultMaxArrayLength,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// DefaultMaxArrayLength bounds element counts read by ArraySerializer.
const DefaultMaxArrayLength = 1 << 20

// WithByteOrder sets the byte order of fixed-width values. Both ends of a
// stream must agree on it.
func WithByteOrder(order binary.ByteOrder) Option {
	return func(c *config) {
		if order != nil {
			c.order = order
		}
	}
}

// WithLogger sets the logger used for diagnostics. Nil restores the no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *config) {
		if logger == nil {
			logger = zap.NewNop()
		}
		c.logger = logger
	}
}

// WithMaxStringLength rejects strings whose byte length prefix exceeds n on read.
// Zero means unlimited.
func WithMaxStringLength(n int) Option {
	return func(c *config) { c.maxString = n }
}

// WithMaxArrayLength rejects array counts above n on read.
func WithMaxArrayLength(n int) Option {
	return func(c *config) { c.maxArray = n }
}

// WithReadLimit caps the total number of bytes a read stream may consume.
// Zero means unlimited.
func WithReadLimit(n int64) Option {
	return func(c *config) { c.readLimit = n }
}

// WithBufferSize sets the bufio buffer size for readers and writers that are
// not already in-memory. A negative size disables buffering.
func WithBufferSize(n int) Option {
	return func(c *config) { c.bufferSize = n }
}
