package wire

import (
	"bytes"
	"errors"
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/graphbin-protocol/graphbin-go/pkg/buffer"
	"github.com/graphbin-protocol/graphbin-go/pkg/graph"
)

func newPair() (*Writer, *Reader) {
	reg := NewRegistry()
	return NewWriter(reg), NewReader(reg)
}

func mustDate(t *testing.T, year int32, month, day uint8) graph.Date {
	t.Helper()
	d, err := graph.NewDate(year, month, day)
	if err != nil {
		t.Fatalf("NewDate(%d, %d, %d) failed: %v", year, month, day, err)
	}
	return d
}

func TestRoundTrip(t *testing.T) {
	id := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	ts := time.UnixMilli(1700000000123).UTC()

	tests := []struct {
		name string
		in   any
		want any // defaults to in
	}{
		{name: "boolean true", in: true},
		{name: "boolean false", in: false},
		{name: "int8", in: int8(-5)},
		{name: "int16", in: int16(-300)},
		{name: "int32", in: int32(70000)},
		{name: "int64", in: int64(-9000000000)},
		{name: "plain int maps to int64", in: 42, want: int64(42)},
		{name: "float32", in: float32(1.5)},
		{name: "float64", in: 3.141592653589793},
		{name: "float64 infinity", in: math.Inf(1)},
		{name: "string", in: "gremlin"},
		{name: "empty string", in: ""},
		{name: "utf8 string", in: "héllo wörld ✓"},
		{name: "uuid", in: id},
		{name: "timestamp", in: ts},
		{name: "date", in: graph.Date{Year: 2023, Month: 3, Day: 15}},
		{name: "date before common era", in: graph.Date{Year: -44, Month: 3, Day: 15}},
		{name: "empty list", in: []any{}},
		{name: "heterogeneous list", in: []any{int64(1), "two", 3.0, true, nil}},
		{name: "set", in: graph.Set{int64(1), int64(2), int64(3)}},
		{
			name: "map",
			in:   map[any]any{"a": int64(1), int64(2): "b", true: 0.5},
		},
		{
			name: "string-keyed map decodes as map[any]any",
			in:   map[string]any{"x": int64(1)},
			want: map[any]any{"x": int64(1)},
		},
		{
			name: "vertex",
			in: &graph.Vertex{
				ID:    int64(1),
				Label: "person",
				Properties: map[string]any{
					"name": "alice",
					"age":  int32(30),
				},
			},
		},
		{
			name: "vertex without properties",
			in:   &graph.Vertex{ID: id, Label: "software"},
		},
		{
			name: "edge",
			in: &graph.Edge{
				ID:             int64(7),
				Label:          "knows",
				OutVertexID:    int64(1),
				OutVertexLabel: "person",
				InVertexID:     int64(2),
				InVertexLabel:  "person",
				Properties:     map[string]any{"weight": 0.5},
			},
		},
		{
			name: "property",
			in:   &graph.Property{Key: "since", Value: graph.Date{Year: 2019, Month: 6, Day: 1}},
		},
		{
			name: "vertex property",
			in: &graph.VertexProperty{
				ID:         int64(13),
				Label:      "name",
				Value:      "alice",
				Properties: map[string]any{"acl": "public"},
			},
		},
		{
			name: "path",
			in: &graph.Path{
				Labels: [][]string{{"a"}, {}, {"b", "c"}},
				Objects: []any{
					&graph.Vertex{ID: int64(1), Label: "person"},
					&graph.Edge{ID: int64(7), Label: "knows", OutVertexID: int64(1), OutVertexLabel: "person", InVertexID: int64(2), InVertexLabel: "person"},
					&graph.Vertex{ID: int64(2), Label: "person"},
				},
			},
		},
		{name: "untyped null", in: nil},
	}

	w, r := newPair()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := w.Encode(tt.in)
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}

			got, err := r.Decode(data)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}

			want := tt.want
			if want == nil && tt.in != nil {
				want = tt.in
			}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("round trip mismatch:\n got  %#v\n want %#v", got, want)
			}
		})
	}
}

func TestDeterminism(t *testing.T) {
	// Map entries are the only unordered input; encoding must still be
	// byte-identical across runs.
	v := map[any]any{
		"alpha": int64(1),
		"beta":  int64(2),
		"gamma": []any{int32(1), "x"},
		int64(4): map[any]any{
			"nested": true,
		},
	}

	w, _ := newPair()
	first, err := w.Encode(v)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	for i := 0; i < 20; i++ {
		again, err := w.Encode(v)
		if err != nil {
			t.Fatalf("Encode failed on attempt %d: %v", i, err)
		}
		if !bytes.Equal(first, again) {
			t.Fatalf("encoding not deterministic:\n first %x\n again %x", first, again)
		}
	}
}

func TestDateScenarioExactBytes(t *testing.T) {
	w, r := newPair()

	data, err := w.Encode(mustDate(t, 2023, 3, 15))
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	want := []byte{0x07, 0x00, 0x00, 0x00, 0x07, 0xE7, 0x03, 0x0F}
	if !bytes.Equal(data, want) {
		t.Fatalf("encoded bytes mismatch:\n got  %x\n want %x", data, want)
	}

	v, err := r.Decode(want)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	d, ok := v.(graph.Date)
	if !ok {
		t.Fatalf("decoded %T, want graph.Date", v)
	}
	if d.Year != 2023 || d.Month != 3 || d.Day != 15 {
		t.Errorf("decoded %v, want 2023-03-15", d)
	}
}

func TestTypedNullListExactBytes(t *testing.T) {
	w, r := newPair()

	buf := buffer.New()
	if err := w.WriteTypedNull(TypeList, buf); err != nil {
		t.Fatalf("WriteTypedNull failed: %v", err)
	}
	if !bytes.Equal(buf.Bytes(), []byte{0x09, 0x01}) {
		t.Fatalf("encoded bytes mismatch: got %x, want 0901", buf.Bytes())
	}

	v, err := r.Decode([]byte{0x09, 0x01})
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if v != nil {
		t.Errorf("decoded %#v, want nil", v)
	}
}

func TestNullMarkerExactBytes(t *testing.T) {
	w, r := newPair()

	data, err := w.Encode(nil)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if !bytes.Equal(data, []byte{0xFE}) {
		t.Fatalf("encoded bytes mismatch: got %x, want fe", data)
	}

	v, err := r.Decode(data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if v != nil {
		t.Errorf("decoded %#v, want nil", v)
	}
}

func TestTypedNullRoundTrip(t *testing.T) {
	// Every nullable-capable built-in encodes a typed null as exactly
	// {code, 0x01} and decodes back to nil.
	codes := []TypeCode{
		TypeBoolean, TypeInt8, TypeInt16, TypeInt32, TypeInt64,
		TypeFloat32, TypeDate, TypeFloat64, TypeList, TypeSet, TypeMap,
		TypeString, TypeUUID, TypeTimestamp,
		TypeVertex, TypeEdge, TypeVertexProperty, TypeProperty, TypePath,
	}

	w, r := newPair()
	for _, code := range codes {
		t.Run(code.String(), func(t *testing.T) {
			buf := buffer.New()
			if err := w.WriteTypedNull(code, buf); err != nil {
				t.Fatalf("WriteTypedNull failed: %v", err)
			}
			if !bytes.Equal(buf.Bytes(), []byte{byte(code), 0x01}) {
				t.Fatalf("encoded bytes mismatch: got %x", buf.Bytes())
			}
			v, err := r.Decode(buf.Bytes())
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if v != nil {
				t.Errorf("decoded %#v, want nil", v)
			}
		})
	}
}

func TestNilEntityPointerEncodesTypedNull(t *testing.T) {
	w, _ := newPair()

	data, err := w.Encode((*graph.Vertex)(nil))
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if !bytes.Equal(data, []byte{byte(TypeVertex), 0x01}) {
		t.Fatalf("encoded bytes mismatch: got %x, want 1001", data)
	}
}

func TestTypedNullRejections(t *testing.T) {
	w, _ := newPair()
	buf := buffer.New()

	if err := w.WriteTypedNull(TypeNull, buf); !errors.Is(err, ErrNullNotAllowed) {
		t.Errorf("null marker: got %v, want ErrNullNotAllowed", err)
	}
	if err := w.WriteTypedNull(TypeCode(0x55), buf); !errors.Is(err, ErrUnsupportedType) {
		t.Errorf("unregistered code: got %v, want ErrUnsupportedType", err)
	}
	if buf.Len() != 0 {
		t.Errorf("failed WriteTypedNull wrote %d bytes", buf.Len())
	}
}

func TestUnknownTypeCode(t *testing.T) {
	_, r := newPair()

	_, err := r.Decode([]byte{0xFF})
	if !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("got %v, want ErrUnsupportedType", err)
	}

	// The failing code byte is consumed; nothing after it is.
	buf := buffer.From([]byte{0xFF, 0x00, 0x01})
	if _, err := NewReader(NewRegistry()).ReadValue(buf); !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("got %v, want ErrUnsupportedType", err)
	}
	if buf.Remaining() != 2 {
		t.Errorf("reader consumed past the type code: %d bytes remain, want 2", buf.Remaining())
	}
}

func TestUnsupportedEncodeValue(t *testing.T) {
	w, _ := newPair()

	type opaque struct{ x int }
	_, err := w.Encode(opaque{x: 1})
	if !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("got %v, want ErrUnsupportedType", err)
	}
}

func TestListLengthIntegrity(t *testing.T) {
	w, r := newPair()

	list := []any{int64(1), int64(2), int64(3), int64(4), int64(5)}
	data, err := w.Encode(list)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	// {code}{flag}{count} prefix: count sits at bytes 2-5.
	if got := data[2:6]; !bytes.Equal(got, []byte{0x00, 0x00, 0x00, 0x05}) {
		t.Errorf("count field %x, want 00000005", got)
	}

	// A count exceeding the remaining bytes is an underrun, never a
	// short list.
	_, err = r.Decode([]byte{0x09, 0x00, 0x00, 0x00, 0x00, 0x05})
	if !errors.Is(err, buffer.ErrUnderrun) {
		t.Fatalf("got %v, want ErrUnderrun", err)
	}

	// Truncated mid-element is also an underrun.
	_, err = r.Decode(data[:len(data)-4])
	if !errors.Is(err, buffer.ErrUnderrun) {
		t.Fatalf("truncated list: got %v, want ErrUnderrun", err)
	}
}

func TestNegativeCollectionCount(t *testing.T) {
	_, r := newPair()

	for _, code := range []TypeCode{TypeList, TypeSet, TypeMap} {
		t.Run(code.String(), func(t *testing.T) {
			_, err := r.Decode([]byte{byte(code), 0x00, 0xFF, 0xFF, 0xFF, 0xFF})
			if !errors.Is(err, ErrMalformedValue) {
				t.Fatalf("got %v, want ErrMalformedValue", err)
			}
		})
	}
}

func TestMalformedBodies(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"boolean byte 0x02", []byte{0x01, 0x00, 0x02}, ErrMalformedValue},
		{"month thirteen", []byte{0x07, 0x00, 0x00, 0x00, 0x07, 0xE7, 0x0D, 0x0F}, ErrMalformedValue},
		{"day thirty of february", []byte{0x07, 0x00, 0x00, 0x00, 0x07, 0xE7, 0x02, 0x1E}, ErrMalformedValue},
		{"value flag 0x02", []byte{0x01, 0x02, 0x01}, ErrMalformedValue},
		{"negative string length", []byte{0x0C, 0x00, 0xFF, 0xFF, 0xFF, 0xFF}, buffer.ErrInvalidLength},
		{"truncated date body", []byte{0x07, 0x00, 0x00, 0x00}, buffer.ErrUnderrun},
		{"truncated uuid body", []byte{0x0D, 0x00, 0x01, 0x02}, buffer.ErrUnderrun},
		{"empty input", nil, buffer.ErrUnderrun},
		{"trailing bytes", []byte{0xFE, 0x00}, ErrMalformedValue},
	}

	_, r := newPair()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Decode(tt.data)
			if !errors.Is(err, tt.want) {
				t.Fatalf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestUnhashableMapKey(t *testing.T) {
	_, r := newPair()

	// Map with one pair whose key is an empty list: structurally valid on
	// the wire but unrepresentable as a Go map key.
	data := []byte{
		0x0B, 0x00, 0x00, 0x00, 0x00, 0x01, // map, 1 pair
		0x09, 0x00, 0x00, 0x00, 0x00, 0x00, // key: empty list
		0x01, 0x00, 0x01, // value: true
	}
	_, err := r.Decode(data)
	if !errors.Is(err, ErrMalformedValue) {
		t.Fatalf("got %v, want ErrMalformedValue", err)
	}
}

func TestEntityKeyedMap(t *testing.T) {
	// Composite keys with a hashable Go representation survive decoding.
	w, r := newPair()

	in := map[any]any{
		&graph.Vertex{ID: int64(1), Label: "person"}: "alice",
	}
	data, err := w.Encode(in)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	out, err := r.Decode(data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	m, ok := out.(map[any]any)
	if !ok || len(m) != 1 {
		t.Fatalf("decoded %#v, want one-entry map", out)
	}
	for k, v := range m {
		vert, ok := k.(*graph.Vertex)
		if !ok {
			t.Fatalf("key decoded as %T, want *graph.Vertex", k)
		}
		if vert.ID != int64(1) || vert.Label != "person" {
			t.Errorf("key decoded as %v", vert)
		}
		if v != "alice" {
			t.Errorf("value decoded as %v", v)
		}
	}
}

func TestPathLengthMismatch(t *testing.T) {
	w, _ := newPair()

	_, err := w.Encode(&graph.Path{
		Labels:  [][]string{{"a"}},
		Objects: []any{int64(1), int64(2)},
	})
	if !errors.Is(err, ErrMalformedValue) {
		t.Fatalf("got %v, want ErrMalformedValue", err)
	}
}

func TestEnvelopeConsumesExactBytes(t *testing.T) {
	w, r := newPair()

	values := []any{
		true,
		graph.Date{Year: 2023, Month: 3, Day: 15},
		[]any{int64(1), "two"},
		&graph.Vertex{ID: int64(1), Label: "person", Properties: map[string]any{"a": int64(1)}},
	}

	// Several envelopes written back to back decode in sequence, each
	// consuming exactly its own bytes.
	buf := buffer.New()
	for _, v := range values {
		if err := w.WriteValue(v, buf); err != nil {
			t.Fatalf("WriteValue failed: %v", err)
		}
	}

	read := buffer.From(buf.Bytes())
	for i, want := range values {
		got, err := r.ReadValue(read)
		if err != nil {
			t.Fatalf("ReadValue %d failed: %v", i, err)
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("value %d mismatch: got %#v, want %#v", i, got, want)
		}
	}
	if read.Remaining() != 0 {
		t.Errorf("%d bytes left after reading all envelopes", read.Remaining())
	}
}

func TestConcurrentUse(t *testing.T) {
	// One registry, many concurrent passes, each with its own Buffer.
	w, r := newPair()
	v := []any{int64(1), "two", map[any]any{"k": graph.Date{Year: 2023, Month: 3, Day: 15}}}

	want, err := w.Encode(v)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	done := make(chan error, 16)
	for i := 0; i < 16; i++ {
		go func() {
			for j := 0; j < 50; j++ {
				data, err := w.Encode(v)
				if err != nil {
					done <- err
					return
				}
				if !bytes.Equal(data, want) {
					done <- errors.New("nondeterministic concurrent encode")
					return
				}
				if _, err := r.Decode(data); err != nil {
					done <- err
					return
				}
			}
			done <- nil
		}()
	}
	for i := 0; i < 16; i++ {
		if err := <-done; err != nil {
			t.Fatal(err)
		}
	}
}

func TestTimestampMillisecondPrecision(t *testing.T) {
	w, r := newPair()

	in := time.Date(2023, 3, 15, 12, 30, 45, 123456789, time.UTC)
	data, err := w.Encode(in)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	out, err := r.Decode(data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	got := out.(time.Time)
	if !got.Equal(in.Truncate(time.Millisecond)) {
		t.Errorf("got %v, want %v", got, in.Truncate(time.Millisecond))
	}
}
