package wire

import (
	"bytes"
	"fmt"
	"reflect"
	"sort"

	"github.com/graphbin-protocol/graphbin-go/pkg/buffer"
	"github.com/graphbin-protocol/graphbin-go/pkg/graph"
)

// Composite codecs: bodies that contain nested envelopes, written and read
// through the shared Writer/Reader context so nested values dispatch
// through the full registry.

// readCount reads a collection count. Negative counts are malformed; a
// count exceeding the remaining bytes is an underrun up front, since every
// envelope occupies at least one byte.
func readCount(buf *buffer.Buffer) (int, error) {
	n, err := buf.ReadInt32()
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("collection count %d: %w", n, ErrMalformedValue)
	}
	if int(n) > buf.Remaining() {
		return 0, fmt.Errorf("collection count %d with %d bytes available: %w", n, buf.Remaining(), buffer.ErrUnderrun)
	}
	return int(n), nil
}

type listCodec struct{}

func (listCodec) Write(v any, buf *buffer.Buffer, ctx *Writer) error {
	vs, ok := v.([]any)
	if !ok {
		return typeMismatch(v, "[]any")
	}
	buf.WriteInt32(int32(len(vs)))
	for i, e := range vs {
		if err := ctx.WriteValue(e, buf); err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
	}
	return nil
}

func (listCodec) Read(buf *buffer.Buffer, ctx *Reader) (any, error) {
	n, err := readCount(buf)
	if err != nil {
		return nil, err
	}
	vs := make([]any, n)
	for i := range vs {
		e, err := ctx.ReadValue(buf)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		vs[i] = e
	}
	return vs, nil
}

type setCodec struct{}

func (setCodec) Write(v any, buf *buffer.Buffer, ctx *Writer) error {
	s, ok := v.(graph.Set)
	if !ok {
		return typeMismatch(v, "graph.Set")
	}
	return listCodec{}.Write([]any(s), buf, ctx)
}

func (setCodec) Read(buf *buffer.Buffer, ctx *Reader) (any, error) {
	vs, err := listCodec{}.Read(buf, ctx)
	if err != nil {
		return nil, err
	}
	return graph.Set(vs.([]any)), nil
}

// mapCodec body: int32 count, then key/value envelope pairs. Entries are
// written in the byte order of their encoded keys so the same logical map
// always yields identical bytes.
type mapCodec struct{}

func (mapCodec) Write(v any, buf *buffer.Buffer, ctx *Writer) error {
	type pair struct {
		key   []byte
		value any
	}
	var pairs []pair

	add := func(k, val any) error {
		kb := buffer.New()
		if err := ctx.WriteValue(k, kb); err != nil {
			return fmt.Errorf("key %v: %w", k, err)
		}
		pairs = append(pairs, pair{key: kb.Bytes(), value: val})
		return nil
	}

	switch m := v.(type) {
	case map[any]any:
		for k, val := range m {
			if err := add(k, val); err != nil {
				return err
			}
		}
	case map[string]any:
		for k, val := range m {
			if err := add(k, val); err != nil {
				return err
			}
		}
	default:
		return typeMismatch(v, "map")
	}

	sort.Slice(pairs, func(i, j int) bool {
		return bytes.Compare(pairs[i].key, pairs[j].key) < 0
	})

	buf.WriteInt32(int32(len(pairs)))
	for _, p := range pairs {
		buf.WriteBytes(p.key)
		if err := ctx.WriteValue(p.value, buf); err != nil {
			return fmt.Errorf("value for key: %w", err)
		}
	}
	return nil
}

func (mapCodec) Read(buf *buffer.Buffer, ctx *Reader) (any, error) {
	n, err := readCount(buf)
	if err != nil {
		return nil, err
	}
	m := make(map[any]any, n)
	for i := 0; i < n; i++ {
		k, err := ctx.ReadValue(buf)
		if err != nil {
			return nil, fmt.Errorf("key %d: %w", i, err)
		}
		if !hashable(k) {
			return nil, fmt.Errorf("map key %d of type %T is not hashable: %w", i, k, ErrMalformedValue)
		}
		val, err := ctx.ReadValue(buf)
		if err != nil {
			return nil, fmt.Errorf("value %d: %w", i, err)
		}
		if err := insertKey(m, k, val); err != nil {
			return nil, fmt.Errorf("map key %d: %w", i, err)
		}
	}
	return m, nil
}

// hashable reports whether a decoded value can serve as a Go map key.
// Collection-shaped keys (built-in or custom) are valid on the wire but
// have no hashable Go representation, so they are rejected rather than
// left to panic.
func hashable(v any) bool {
	return v == nil || reflect.TypeOf(v).Comparable()
}

// insertKey adds one decoded pair to the map. A comparable key type can
// still hide unhashable interface contents (a struct-backed custom type
// holding a slice); the runtime panic on insert is converted to an error.
func insertKey(m map[any]any, k, v any) (err error) {
	defer func() {
		if recover() != nil {
			err = fmt.Errorf("key of type %T is not hashable: %w", k, ErrMalformedValue)
		}
	}()
	m[k] = v
	return nil
}

// Graph entity codecs. Each body is a fixed ordered sequence of fields,
// every field a full envelope.

type vertexCodec struct{}

func (vertexCodec) Write(v any, buf *buffer.Buffer, ctx *Writer) error {
	x, ok := v.(*graph.Vertex)
	if !ok {
		return typeMismatch(v, "*graph.Vertex")
	}
	if err := ctx.WriteValue(x.ID, buf); err != nil {
		return fmt.Errorf("id: %w", err)
	}
	if err := ctx.WriteValue(x.Label, buf); err != nil {
		return fmt.Errorf("label: %w", err)
	}
	return writeProperties(x.Properties, buf, ctx)
}

func (vertexCodec) Read(buf *buffer.Buffer, ctx *Reader) (any, error) {
	id, err := ctx.ReadValue(buf)
	if err != nil {
		return nil, fmt.Errorf("id: %w", err)
	}
	label, err := readStringField(buf, ctx, "label")
	if err != nil {
		return nil, err
	}
	props, err := readProperties(buf, ctx)
	if err != nil {
		return nil, err
	}
	return &graph.Vertex{ID: id, Label: label, Properties: props}, nil
}

type edgeCodec struct{}

func (edgeCodec) Write(v any, buf *buffer.Buffer, ctx *Writer) error {
	x, ok := v.(*graph.Edge)
	if !ok {
		return typeMismatch(v, "*graph.Edge")
	}
	fields := []struct {
		name string
		v    any
	}{
		{"id", x.ID},
		{"label", x.Label},
		{"outV id", x.OutVertexID},
		{"outV label", x.OutVertexLabel},
		{"inV id", x.InVertexID},
		{"inV label", x.InVertexLabel},
	}
	for _, f := range fields {
		if err := ctx.WriteValue(f.v, buf); err != nil {
			return fmt.Errorf("%s: %w", f.name, err)
		}
	}
	return writeProperties(x.Properties, buf, ctx)
}

func (edgeCodec) Read(buf *buffer.Buffer, ctx *Reader) (any, error) {
	id, err := ctx.ReadValue(buf)
	if err != nil {
		return nil, fmt.Errorf("id: %w", err)
	}
	label, err := readStringField(buf, ctx, "label")
	if err != nil {
		return nil, err
	}
	outID, err := ctx.ReadValue(buf)
	if err != nil {
		return nil, fmt.Errorf("outV id: %w", err)
	}
	outLabel, err := readStringField(buf, ctx, "outV label")
	if err != nil {
		return nil, err
	}
	inID, err := ctx.ReadValue(buf)
	if err != nil {
		return nil, fmt.Errorf("inV id: %w", err)
	}
	inLabel, err := readStringField(buf, ctx, "inV label")
	if err != nil {
		return nil, err
	}
	props, err := readProperties(buf, ctx)
	if err != nil {
		return nil, err
	}
	return &graph.Edge{
		ID:             id,
		Label:          label,
		OutVertexID:    outID,
		OutVertexLabel: outLabel,
		InVertexID:     inID,
		InVertexLabel:  inLabel,
		Properties:     props,
	}, nil
}

type vertexPropertyCodec struct{}

func (vertexPropertyCodec) Write(v any, buf *buffer.Buffer, ctx *Writer) error {
	x, ok := v.(*graph.VertexProperty)
	if !ok {
		return typeMismatch(v, "*graph.VertexProperty")
	}
	if err := ctx.WriteValue(x.ID, buf); err != nil {
		return fmt.Errorf("id: %w", err)
	}
	if err := ctx.WriteValue(x.Label, buf); err != nil {
		return fmt.Errorf("label: %w", err)
	}
	if err := ctx.WriteValue(x.Value, buf); err != nil {
		return fmt.Errorf("value: %w", err)
	}
	return writeProperties(x.Properties, buf, ctx)
}

func (vertexPropertyCodec) Read(buf *buffer.Buffer, ctx *Reader) (any, error) {
	id, err := ctx.ReadValue(buf)
	if err != nil {
		return nil, fmt.Errorf("id: %w", err)
	}
	label, err := readStringField(buf, ctx, "label")
	if err != nil {
		return nil, err
	}
	value, err := ctx.ReadValue(buf)
	if err != nil {
		return nil, fmt.Errorf("value: %w", err)
	}
	props, err := readProperties(buf, ctx)
	if err != nil {
		return nil, err
	}
	return &graph.VertexProperty{ID: id, Label: label, Value: value, Properties: props}, nil
}

type propertyCodec struct{}

func (propertyCodec) Write(v any, buf *buffer.Buffer, ctx *Writer) error {
	x, ok := v.(*graph.Property)
	if !ok {
		return typeMismatch(v, "*graph.Property")
	}
	if err := ctx.WriteValue(x.Key, buf); err != nil {
		return fmt.Errorf("key: %w", err)
	}
	if err := ctx.WriteValue(x.Value, buf); err != nil {
		return fmt.Errorf("value: %w", err)
	}
	return nil
}

func (propertyCodec) Read(buf *buffer.Buffer, ctx *Reader) (any, error) {
	key, err := readStringField(buf, ctx, "key")
	if err != nil {
		return nil, err
	}
	value, err := ctx.ReadValue(buf)
	if err != nil {
		return nil, fmt.Errorf("value: %w", err)
	}
	return &graph.Property{Key: key, Value: value}, nil
}

type pathCodec struct{}

func (pathCodec) Write(v any, buf *buffer.Buffer, ctx *Writer) error {
	x, ok := v.(*graph.Path)
	if !ok {
		return typeMismatch(v, "*graph.Path")
	}
	if len(x.Labels) != len(x.Objects) {
		return fmt.Errorf("path with %d label sets and %d objects: %w", len(x.Labels), len(x.Objects), ErrMalformedValue)
	}
	labels := make([]any, len(x.Labels))
	for i, ls := range x.Labels {
		inner := make([]any, len(ls))
		for j, s := range ls {
			inner[j] = s
		}
		labels[i] = inner
	}
	if err := ctx.WriteValue(labels, buf); err != nil {
		return fmt.Errorf("labels: %w", err)
	}
	if err := ctx.WriteValue(x.Objects, buf); err != nil {
		return fmt.Errorf("objects: %w", err)
	}
	return nil
}

func (pathCodec) Read(buf *buffer.Buffer, ctx *Reader) (any, error) {
	rawLabels, err := ctx.ReadValue(buf)
	if err != nil {
		return nil, fmt.Errorf("labels: %w", err)
	}
	labelLists, ok := rawLabels.([]any)
	if !ok {
		return nil, fmt.Errorf("path labels of type %T: %w", rawLabels, ErrMalformedValue)
	}
	labels := make([][]string, len(labelLists))
	for i, raw := range labelLists {
		inner, ok := raw.([]any)
		if !ok {
			return nil, fmt.Errorf("path label set %d of type %T: %w", i, raw, ErrMalformedValue)
		}
		set := make([]string, len(inner))
		for j, e := range inner {
			s, ok := e.(string)
			if !ok {
				return nil, fmt.Errorf("path label %d/%d of type %T: %w", i, j, e, ErrMalformedValue)
			}
			set[j] = s
		}
		labels[i] = set
	}
	rawObjects, err := ctx.ReadValue(buf)
	if err != nil {
		return nil, fmt.Errorf("objects: %w", err)
	}
	objects, ok := rawObjects.([]any)
	if !ok {
		return nil, fmt.Errorf("path objects of type %T: %w", rawObjects, ErrMalformedValue)
	}
	if len(labels) != len(objects) {
		return nil, fmt.Errorf("path with %d label sets and %d objects: %w", len(labels), len(objects), ErrMalformedValue)
	}
	return &graph.Path{Labels: labels, Objects: objects}, nil
}

// writeProperties writes an entity property map, preserving nil as a
// typed-null Map so round-trips keep the distinction from an empty map.
func writeProperties(m map[string]any, buf *buffer.Buffer, ctx *Writer) error {
	if m == nil {
		return ctx.WriteTypedNull(TypeMap, buf)
	}
	if err := ctx.WriteValue(m, buf); err != nil {
		return fmt.Errorf("properties: %w", err)
	}
	return nil
}

// readProperties reads an entity property map; keys must be strings.
func readProperties(buf *buffer.Buffer, ctx *Reader) (map[string]any, error) {
	v, err := ctx.ReadValue(buf)
	if err != nil {
		return nil, fmt.Errorf("properties: %w", err)
	}
	if v == nil {
		return nil, nil
	}
	m, ok := v.(map[any]any)
	if !ok {
		return nil, fmt.Errorf("properties of type %T: %w", v, ErrMalformedValue)
	}
	out := make(map[string]any, len(m))
	for k, val := range m {
		s, ok := k.(string)
		if !ok {
			return nil, fmt.Errorf("property key of type %T: %w", k, ErrMalformedValue)
		}
		out[s] = val
	}
	return out, nil
}

// readStringField reads an envelope that must hold a non-null string.
func readStringField(buf *buffer.Buffer, ctx *Reader, field string) (string, error) {
	v, err := ctx.ReadValue(buf)
	if err != nil {
		return "", fmt.Errorf("%s: %w", field, err)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%s of type %T: %w", field, v, ErrMalformedValue)
	}
	return s, nil
}
