package wire

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/graphbin-protocol/graphbin-go/pkg/buffer"
	"github.com/graphbin-protocol/graphbin-go/pkg/graph"
)

// Leaf codecs: bodies with a statically known layout and no nested
// envelopes. Encode and decode are exact inverses; none of them performs
// a partial read.

type booleanCodec struct{}

func (booleanCodec) Write(v any, buf *buffer.Buffer, _ *Writer) error {
	b, ok := v.(bool)
	if !ok {
		return typeMismatch(v, "bool")
	}
	if b {
		buf.WriteUint8(0x01)
	} else {
		buf.WriteUint8(0x00)
	}
	return nil
}

func (booleanCodec) Read(buf *buffer.Buffer, _ *Reader) (any, error) {
	b, err := buf.ReadUint8()
	if err != nil {
		return nil, err
	}
	switch b {
	case 0x00:
		return false, nil
	case 0x01:
		return true, nil
	default:
		return nil, fmt.Errorf("boolean byte 0x%02X: %w", b, ErrMalformedValue)
	}
}

type int8Codec struct{}

func (int8Codec) Write(v any, buf *buffer.Buffer, _ *Writer) error {
	n, ok := v.(int8)
	if !ok {
		return typeMismatch(v, "int8")
	}
	buf.WriteInt8(n)
	return nil
}

func (int8Codec) Read(buf *buffer.Buffer, _ *Reader) (any, error) {
	return buf.ReadInt8()
}

type int16Codec struct{}

func (int16Codec) Write(v any, buf *buffer.Buffer, _ *Writer) error {
	n, ok := v.(int16)
	if !ok {
		return typeMismatch(v, "int16")
	}
	buf.WriteInt16(n)
	return nil
}

func (int16Codec) Read(buf *buffer.Buffer, _ *Reader) (any, error) {
	return buf.ReadInt16()
}

type int32Codec struct{}

func (int32Codec) Write(v any, buf *buffer.Buffer, _ *Writer) error {
	n, ok := v.(int32)
	if !ok {
		return typeMismatch(v, "int32")
	}
	buf.WriteInt32(n)
	return nil
}

func (int32Codec) Read(buf *buffer.Buffer, _ *Reader) (any, error) {
	return buf.ReadInt32()
}

// int64Codec also carries Go's plain int, which always encodes as a
// 64-bit value so output does not depend on platform word size.
type int64Codec struct{}

func (int64Codec) Write(v any, buf *buffer.Buffer, _ *Writer) error {
	switch n := v.(type) {
	case int64:
		buf.WriteInt64(n)
	case int:
		buf.WriteInt64(int64(n))
	default:
		return typeMismatch(v, "int64")
	}
	return nil
}

func (int64Codec) Read(buf *buffer.Buffer, _ *Reader) (any, error) {
	return buf.ReadInt64()
}

type float32Codec struct{}

func (float32Codec) Write(v any, buf *buffer.Buffer, _ *Writer) error {
	f, ok := v.(float32)
	if !ok {
		return typeMismatch(v, "float32")
	}
	buf.WriteUint32(math.Float32bits(f))
	return nil
}

func (float32Codec) Read(buf *buffer.Buffer, _ *Reader) (any, error) {
	bits, err := buf.ReadUint32()
	if err != nil {
		return nil, err
	}
	return math.Float32frombits(bits), nil
}

type float64Codec struct{}

func (float64Codec) Write(v any, buf *buffer.Buffer, _ *Writer) error {
	f, ok := v.(float64)
	if !ok {
		return typeMismatch(v, "float64")
	}
	buf.WriteUint64(math.Float64bits(f))
	return nil
}

func (float64Codec) Read(buf *buffer.Buffer, _ *Reader) (any, error) {
	bits, err := buf.ReadUint64()
	if err != nil {
		return nil, err
	}
	return math.Float64frombits(bits), nil
}

// dateCodec body: int32 year, uint8 month, uint8 day. Out-of-range fields
// are rejected on both directions, never clamped.
type dateCodec struct{}

func (dateCodec) Write(v any, buf *buffer.Buffer, _ *Writer) error {
	d, ok := v.(graph.Date)
	if !ok {
		return typeMismatch(v, "graph.Date")
	}
	if !d.Valid() {
		return fmt.Errorf("date %s: %w", d, ErrMalformedValue)
	}
	buf.WriteInt32(d.Year)
	buf.WriteUint8(d.Month)
	buf.WriteUint8(d.Day)
	return nil
}

func (dateCodec) Read(buf *buffer.Buffer, _ *Reader) (any, error) {
	year, err := buf.ReadInt32()
	if err != nil {
		return nil, err
	}
	month, err := buf.ReadUint8()
	if err != nil {
		return nil, err
	}
	day, err := buf.ReadUint8()
	if err != nil {
		return nil, err
	}
	d, err := graph.NewDate(year, month, day)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedValue, err)
	}
	return d, nil
}

type stringCodec struct{}

func (stringCodec) Write(v any, buf *buffer.Buffer, _ *Writer) error {
	s, ok := v.(string)
	if !ok {
		return typeMismatch(v, "string")
	}
	buf.WriteString(s)
	return nil
}

func (stringCodec) Read(buf *buffer.Buffer, _ *Reader) (any, error) {
	return buf.ReadString()
}

// uuidCodec body: the 16 raw bytes, big-endian as in RFC 4122.
type uuidCodec struct{}

func (uuidCodec) Write(v any, buf *buffer.Buffer, _ *Writer) error {
	id, ok := v.(uuid.UUID)
	if !ok {
		return typeMismatch(v, "uuid.UUID")
	}
	buf.WriteBytes(id[:])
	return nil
}

func (uuidCodec) Read(buf *buffer.Buffer, _ *Reader) (any, error) {
	p, err := buf.ReadBytes(16)
	if err != nil {
		return nil, err
	}
	id, err := uuid.FromBytes(p)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedValue, err)
	}
	return id, nil
}

// timestampCodec body: int64 milliseconds since the Unix epoch, UTC.
// Sub-millisecond precision does not survive the wire; callers needing
// nanoseconds must carry them in a custom type.
type timestampCodec struct{}

func (timestampCodec) Write(v any, buf *buffer.Buffer, _ *Writer) error {
	t, ok := v.(time.Time)
	if !ok {
		return typeMismatch(v, "time.Time")
	}
	buf.WriteInt64(t.UnixMilli())
	return nil
}

func (timestampCodec) Read(buf *buffer.Buffer, _ *Reader) (any, error) {
	ms, err := buf.ReadInt64()
	if err != nil {
		return nil, err
	}
	return time.UnixMilli(ms).UTC(), nil
}

// typeMismatch reports a value handed to a codec that cannot legally
// occupy that typed slot.
func typeMismatch(v any, want string) error {
	return fmt.Errorf("value of type %T in %s slot: %w", v, want, ErrUnsupportedType)
}
