package serial

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/puzpuzpuz/xsync/v4"
	"go.uber.org/zap"
	"golang.org/x/exp/constraints"
)

// Selector is the registry mapping a type to its codec, and an enum type
// name to its factory. Populate it before the first lookup; after that it is
// safe for concurrent use.
type Selector struct {
	serializers *xsync.Map[reflect.Type, Serializer]
	enums       *xsync.Map[string, EnumFactory]
	cfg         *config
}

var _ TypeResolver = (*Selector)(nil)

// NewSelector returns an empty Selector.
func NewSelector(opts ...Option) *Selector {
	return &Selector{
		serializers: xsync.NewMap[reflect.Type, Serializer](),
		enums:       xsync.NewMap[string, EnumFactory](),
		cfg:         newConfig(opts),
	}
}

// NewDefaultSelector returns a Selector holding the codecs of every
// primitive type plus the type-erased enum codec.
func NewDefaultSelector(opts ...Option) *Selector {
	sel := NewSelector(opts...)
	sel.Register(BoolSerializer{}).
		Register(Int8Serializer{}).
		Register(Uint8Serializer{}).
		Register(Int16Serializer{}).
		Register(Uint16Serializer{}).
		Register(Int32Serializer{}).
		Register(Uint32Serializer{}).
		Register(Int64Serializer{}).
		Register(Uint64Serializer{}).
		Register(Float32Serializer{}).
		Register(Float64Serializer{}).
		Register(CharSerializer{}).
		Register(StringSerializer{}).
		Register(UUIDSerializer{}).
		Register(DurationSerializer{}).
		Register(TimeSerializer{}).
		Register(URLSerializer{}).
		Register(NewEnumSerializer(nil))
	return sel
}

var defaultSelector = sync.OnceValue(func() *Selector { return NewDefaultSelector() })

// Default returns the process-wide Selector, built on first use.
func Default() *Selector { return defaultSelector() }

// Logger returns the logger the Selector hands to its codecs.
func (sel *Selector) Logger() *zap.Logger { return sel.cfg.logger }

// MaxArrayLength returns the configured bound on array counts.
func (sel *Selector) MaxArrayLength() int { return sel.cfg.maxArray }

// Register initializes s and makes it the codec for s.Type(), replacing any
// previous one. Initialize completes before the codec becomes visible.
func (sel *Selector) Register(s Serializer) *Selector {
	s.Initialize(sel)
	t := s.Type()
	if _, replaced := sel.serializers.LoadAndStore(t, s); replaced {
		sel.cfg.logger.Debug("serializer replaced", zap.Stringer("type", t))
	}
	return sel
}

// Lookup returns the codec registered for t.
func (sel *Selector) Lookup(t reflect.Type) (Serializer, bool) {
	return sel.serializers.Load(t)
}

// Len returns the number of registered codecs.
func (sel *Selector) Len() int { return sel.serializers.Size() }

// RegisterEnumFactory associates a wire type name with a factory.
func (sel *Selector) RegisterEnumFactory(name string, f EnumFactory) *Selector {
	sel.enums.Store(name, f)
	return sel
}

// ResolveEnum implements TypeResolver.
func (sel *Selector) ResolveEnum(name string) (EnumFactory, bool) {
	return sel.enums.Load(name)
}

// RegisterEnum registers the typed codec for T and makes T resolvable by the
// type-erased enum codec.
func RegisterEnum[T constraints.Integer](sel *Selector) *Selector {
	sel.Register(NewTypedEnumSerializer[T]())
	return sel.RegisterEnumFactory(EnumTypeName(reflect.TypeFor[T]()), func(v int32) Enum { return T(v) })
}

// Get returns the codec registered for T.
func Get[T any](sel *Selector) (DataSerializer[T], error) {
	t := reflect.TypeFor[T]()
	s, ok := sel.Lookup(t)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoSerializer, t)
	}
	ds, ok := s.(DataSerializer[T])
	if !ok {
		return nil, fmt.Errorf("%w: %T does not serialize %s", ErrNoSerializer, s, t)
	}
	return ds, nil
}

// SerializeValue looks up the codec for T and runs it on v. A missing codec
// is recorded as the stream's error.
func SerializeValue[T any](sel *Selector, v *T, mode Mode, s *Stream) {
	ds, err := Get[T](sel)
	if err != nil {
		s.Fail(err)
		return
	}
	ds.Serialize(v, mode, s)
}
