package wire

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/graphbin-protocol/graphbin-go/pkg/buffer"
	"github.com/graphbin-protocol/graphbin-go/pkg/graph"
)

// Codec encodes and decodes the body of one wire type. The envelope (type
// code and value flag) is handled by Writer and Reader; a Codec sees only
// the body bytes. Composite codecs recurse through the ctx parameter so
// nested values dispatch through the full registry.
type Codec interface {
	Write(v any, buf *buffer.Buffer, ctx *Writer) error
	Read(buf *buffer.Buffer, ctx *Reader) (any, error)
}

// Matcher reports whether a runtime value belongs to a registered custom
// type. Built-in types do not use matchers; their dispatch is a closed
// type switch.
type Matcher func(v any) bool

type entry struct {
	code    TypeCode
	codec   Codec
	matcher Matcher
}

// Registry binds wire type codes and runtime value kinds to codecs. It is
// the only place type-code knowledge is centralized.
//
// Build a Registry and complete all Register calls before any concurrent
// encode/decode traffic begins; lookups are lock-free and assume the table
// no longer changes.
type Registry struct {
	byCode [256]*entry
	custom []*entry
}

// NewRegistry returns a Registry populated with the built-in catalogue.
func NewRegistry() *Registry {
	r := &Registry{}
	builtins := []struct {
		code  TypeCode
		codec Codec
	}{
		{TypeBoolean, booleanCodec{}},
		{TypeInt8, int8Codec{}},
		{TypeInt16, int16Codec{}},
		{TypeInt32, int32Codec{}},
		{TypeInt64, int64Codec{}},
		{TypeFloat32, float32Codec{}},
		{TypeDate, dateCodec{}},
		{TypeFloat64, float64Codec{}},
		{TypeList, listCodec{}},
		{TypeSet, setCodec{}},
		{TypeMap, mapCodec{}},
		{TypeString, stringCodec{}},
		{TypeUUID, uuidCodec{}},
		{TypeTimestamp, timestampCodec{}},
		{TypeVertex, vertexCodec{}},
		{TypeEdge, edgeCodec{}},
		{TypeVertexProperty, vertexPropertyCodec{}},
		{TypeProperty, propertyCodec{}},
		{TypePath, pathCodec{}},
	}
	for _, b := range builtins {
		r.byCode[b.code] = &entry{code: b.code, codec: b.codec}
	}
	return r
}

// Register adds a custom type to the registry. The code must lie in the
// reserved custom range (CustomTypeMin-CustomTypeMax) and must not already
// be in use. The codec's body must be self-length-prefixed so that peers
// unaware of the type can determine where it ends.
//
// Register is not safe to call concurrently with lookups; complete all
// registrations at startup.
func (r *Registry) Register(code TypeCode, matcher Matcher, codec Codec) error {
	if !code.IsCustom() {
		return fmt.Errorf("code 0x%02X: %w", byte(code), ErrCodeOutOfRange)
	}
	if matcher == nil || codec == nil {
		return fmt.Errorf("code 0x%02X: matcher and codec are required", byte(code))
	}
	if r.byCode[code] != nil {
		return fmt.Errorf("code 0x%02X: %w", byte(code), ErrCodeInUse)
	}
	e := &entry{code: code, codec: codec, matcher: matcher}
	r.byCode[code] = e
	r.custom = append(r.custom, e)
	return nil
}

// builtinCode maps a runtime value to its built-in type code. The type
// switch is the closed union of kinds the protocol speaks natively.
func builtinCode(v any) (TypeCode, bool) {
	switch v.(type) {
	case bool:
		return TypeBoolean, true
	case int8:
		return TypeInt8, true
	case int16:
		return TypeInt16, true
	case int32:
		return TypeInt32, true
	case int64, int:
		return TypeInt64, true
	case float32:
		return TypeFloat32, true
	case float64:
		return TypeFloat64, true
	case graph.Date:
		return TypeDate, true
	case string:
		return TypeString, true
	case uuid.UUID:
		return TypeUUID, true
	case time.Time:
		return TypeTimestamp, true
	case graph.Set:
		return TypeSet, true
	case []any:
		return TypeList, true
	case map[any]any, map[string]any:
		return TypeMap, true
	case *graph.Vertex:
		return TypeVertex, true
	case *graph.Edge:
		return TypeEdge, true
	case *graph.VertexProperty:
		return TypeVertexProperty, true
	case *graph.Property:
		return TypeProperty, true
	case *graph.Path:
		return TypePath, true
	}
	return 0, false
}

// resolveEncode finds the registry entry for a runtime value: built-in
// kinds first, then custom matchers in registration order.
func (r *Registry) resolveEncode(v any) (*entry, error) {
	if code, ok := builtinCode(v); ok {
		return r.byCode[code], nil
	}
	for _, e := range r.custom {
		if e.matcher(v) {
			return e, nil
		}
	}
	return nil, fmt.Errorf("no codec for value of type %T: %w", v, ErrUnsupportedType)
}

// resolveDecode finds the codec for a wire type code.
func (r *Registry) resolveDecode(code TypeCode) (Codec, error) {
	e := r.byCode[code]
	if e == nil {
		if code.IsCustom() {
			return nil, fmt.Errorf("unregistered custom type 0x%02X: %w", byte(code), ErrUnsupportedType)
		}
		return nil, fmt.Errorf("unknown type code 0x%02X: %w", byte(code), ErrUnsupportedType)
	}
	return e.codec, nil
}
