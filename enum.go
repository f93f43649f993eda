package serial

import (
	"fmt"
	"math"
	"reflect"

	"go.uber.org/atomic"
	"go.uber.org/zap"
)

// Enum holds a value of an enum type that is only known at run time.
// Any named integer type qualifies once it is registered with RegisterEnum.
type Enum any

// EnumFactory rebuilds a value of one enum type from its 32-bit form.
type EnumFactory func(v int32) Enum

// TypeResolver maps a stable type name to the factory of that type.
type TypeResolver interface {
	ResolveEnum(name string) (EnumFactory, bool)
}

// EnumTypeName returns the fully-qualified name used on the wire for t.
func EnumTypeName(t reflect.Type) string {
	if t.PkgPath() == "" {
		return t.Name()
	}
	return t.PkgPath() + "." + t.Name()
}

// EnumSerializer moves an Enum as its type name followed by its value as an
// int32. It is self-describing, and slower than TypedEnumSerializer.
//
// When the type name read back cannot be resolved the destination is left
// untouched and no error is reported; the miss is logged and counted by
// Unresolved.
type EnumSerializer struct {
	Base[Enum]
	resolver   TypeResolver
	logger     *zap.Logger
	unresolved atomic.Int64
}

// NewEnumSerializer returns a type-erased enum codec using resolver. A nil
// resolver is replaced by the Selector the codec is registered with.
func NewEnumSerializer(resolver TypeResolver) *EnumSerializer {
	return &EnumSerializer{resolver: resolver, logger: zap.NewNop()}
}

func (e *EnumSerializer) Initialize(sel *Selector) {
	if e.resolver == nil {
		e.resolver = sel
	}
	e.logger = sel.Logger()
}

// Unresolved returns how many values were skipped because their type name
// could not be resolved.
func (e *EnumSerializer) Unresolved() int64 { return e.unresolved.Load() }

func (e *EnumSerializer) Serialize(v *Enum, mode Mode, s *Stream) {
	switch mode {
	case ModeSerialize:
		if *v == nil {
			s.WriteString("")
			s.WriteInt32(0)
			return
		}
		name, value, err := enumParts(*v)
		if err != nil {
			s.Fail(err)
			return
		}
		s.WriteString(name)
		s.WriteInt32(value)

	case ModeDeserialize:
		// Both parts are always consumed so the cursor stays in step with the
		// writer, whether or not the type resolves.
		name := s.ReadString()
		value := s.ReadInt32()
		if s.Err() != nil || name == "" {
			return
		}
		var factory EnumFactory
		ok := false
		if e.resolver != nil {
			factory, ok = e.resolver.ResolveEnum(name)
		}
		if !ok {
			e.unresolved.Inc()
			e.logger.Warn("unresolved enum type, value left unchanged",
				zap.String("type", name), zap.Int32("value", value))
			return
		}
		*v = factory(value)
	}
}

func enumParts(v Enum) (string, int32, error) {
	rv := reflect.ValueOf(v)
	t := rv.Type()

	var n int64
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n = rv.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > math.MaxInt32 {
			return "", 0, fmt.Errorf("%w: %s(%d)", ErrEnumOverflow, t, u)
		}
		n = int64(u)
	default:
		return "", 0, fmt.Errorf("%w: %s", ErrNotEnum, t)
	}
	if n < math.MinInt32 || n > math.MaxInt32 {
		return "", 0, fmt.Errorf("%w: %s(%d)", ErrEnumOverflow, t, n)
	}
	return EnumTypeName(t), int32(n), nil
}
