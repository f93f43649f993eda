package serial

import (
	"fmt"
	"math"
	"net/url"
	"time"

	"github.com/google/uuid"
)

type (
	BoolSerializer    struct{ Blittable[bool] }
	Int8Serializer    struct{ Blittable[int8] }
	Uint8Serializer   struct{ Blittable[uint8] }
	Int16Serializer   struct{ Blittable[int16] }
	Uint16Serializer  struct{ Blittable[uint16] }
	Int32Serializer   struct{ Blittable[int32] }
	Uint32Serializer  struct{ Blittable[uint32] }
	Int64Serializer   struct{ Blittable[int64] }
	Uint64Serializer  struct{ Blittable[uint64] }
	Float32Serializer struct{ Blittable[float32] }
	Float64Serializer struct{ Blittable[float64] }
	UUIDSerializer    struct{ Blittable[uuid.UUID] }

	CharSerializer     struct{ Base[Char] }
	StringSerializer   struct{ Base[string] }
	DurationSerializer struct{ Base[time.Duration] }
	TimeSerializer     struct{ Base[time.Time] }
	URLSerializer      struct{ Base[*url.URL] }
)

func (BoolSerializer) Serialize(v *bool, _ Mode, s *Stream)       { s.SerializeBool(v) }
func (Int8Serializer) Serialize(v *int8, _ Mode, s *Stream)       { s.SerializeInt8(v) }
func (Uint8Serializer) Serialize(v *uint8, _ Mode, s *Stream)     { s.SerializeUint8(v) }
func (Int16Serializer) Serialize(v *int16, _ Mode, s *Stream)     { s.SerializeInt16(v) }
func (Uint16Serializer) Serialize(v *uint16, _ Mode, s *Stream)   { s.SerializeUint16(v) }
func (Int32Serializer) Serialize(v *int32, _ Mode, s *Stream)     { s.SerializeInt32(v) }
func (Uint32Serializer) Serialize(v *uint32, _ Mode, s *Stream)   { s.SerializeUint32(v) }
func (Int64Serializer) Serialize(v *int64, _ Mode, s *Stream)     { s.SerializeInt64(v) }
func (Uint64Serializer) Serialize(v *uint64, _ Mode, s *Stream)   { s.SerializeUint64(v) }
func (Float32Serializer) Serialize(v *float32, _ Mode, s *Stream) { s.SerializeFloat32(v) }
func (Float64Serializer) Serialize(v *float64, _ Mode, s *Stream) { s.SerializeFloat64(v) }
func (CharSerializer) Serialize(v *Char, _ Mode, s *Stream)       { s.SerializeChar(v) }
func (StringSerializer) Serialize(v *string, _ Mode, s *Stream)   { s.SerializeString(v) }

// Serialize moves the 16 bytes of the UUID verbatim.
func (UUIDSerializer) Serialize(v *uuid.UUID, mode Mode, s *Stream) {
	if mode == ModeSerialize || mode == ModeDeserialize {
		s.SerializeBytes(v[:])
	}
}

// Serialize moves the duration as a count of 100ns ticks, the same unit as
// TimeSerializer. Sub-tick precision is dropped. A tick count outside the
// range of time.Duration fails with ErrDurationOverflow.
func (DurationSerializer) Serialize(v *time.Duration, mode Mode, s *Stream) {
	switch mode {
	case ModeSerialize:
		s.WriteInt64(int64(*v / durationTick))
	case ModeDeserialize:
		ticks := s.ReadInt64()
		if s.Err() != nil {
			return
		}
		if ticks > math.MaxInt64/int64(durationTick) || ticks < math.MinInt64/int64(durationTick) {
			s.Fail(fmt.Errorf("%w: %d ticks", ErrDurationOverflow, ticks))
			return
		}
		*v = time.Duration(ticks) * durationTick
	}
}

// Serialize moves the time as a count of 100ns ticks since 0001-01-01 of its
// wall clock. The location is not kept: values are read back in UTC.
func (TimeSerializer) Serialize(v *time.Time, mode Mode, s *Stream) {
	switch mode {
	case ModeSerialize:
		s.WriteInt64(TimeToTicks(*v))
	case ModeDeserialize:
		ticks := s.ReadInt64()
		if s.Err() == nil {
			*v = TicksToTime(ticks)
		}
	}
}

// Serialize moves the URL as its canonical string. A nil URL is written as
// the empty string and read back as nil.
func (URLSerializer) Serialize(v **url.URL, mode Mode, s *Stream) {
	switch mode {
	case ModeSerialize:
		var text string
		if *v != nil {
			text = (*v).String()
		}
		s.WriteString(text)
	case ModeDeserialize:
		text := s.ReadString()
		if s.Err() != nil {
			return
		}
		if text == "" {
			*v = nil
			return
		}
		u, err := url.Parse(text)
		if err != nil {
			s.Fail(fmt.Errorf("%w: %q: %v", ErrInvalidURL, text, err))
			return
		}
		*v = u
	}
}

const (
	TicksPerSecond = int64(time.Second / 100)

	durationTick = 100 * time.Nanosecond

	// unixEpochSeconds is 1970-01-01 expressed in seconds since 0001-01-01.
	unixEpochSeconds = int64(62135596800)
)

// TimeToTicks returns the number of 100ns ticks between 0001-01-01T00:00:00
// and the wall clock reading of t. Sub-tick precision is dropped.
func TimeToTicks(t time.Time) int64 {
	_, offset := t.Zone()
	secs := t.Unix() + int64(offset) + unixEpochSeconds
	return secs*TicksPerSecond + int64(t.Nanosecond())/100
}

// TicksToTime is the inverse of TimeToTicks, in UTC.
func TicksToTime(ticks int64) time.Time {
	secs := ticks / TicksPerSecond
	rem := ticks % TicksPerSecond
	if rem < 0 {
		secs--
		rem += TicksPerSecond
	}
	return time.Unix(secs-unixEpochSeconds, rem*100).UTC()
}
