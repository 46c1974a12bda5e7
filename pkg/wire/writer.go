package wire

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/graphbin-protocol/graphbin-go/pkg/buffer"
	"github.com/graphbin-protocol/graphbin-go/pkg/graph"
	"github.com/graphbin-protocol/graphbin-go/pkg/log"
)

// Writer encodes values into the GraphBin wire format. A Writer is
// stateless between calls and safe for concurrent use as long as each
// call gets its own Buffer.
type Writer struct {
	registry *Registry
	logger   log.Logger
	session  string
}

// WriterOption configures a Writer.
type WriterOption func(*Writer)

// WithWriterLogger attaches a logger that receives one event per Encode
// call. Pass nil to disable (the default).
func WithWriterLogger(l log.Logger) WriterOption {
	return func(w *Writer) {
		w.logger = l
	}
}

// NewWriter creates a Writer that dispatches through the given registry.
func NewWriter(registry *Registry, opts ...WriterOption) *Writer {
	w := &Writer{
		registry: registry,
		logger:   log.NoopLogger{},
		session:  uuid.New().String(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Encode serializes a single value into a fresh buffer and returns its
// bytes. This is the usual entry point for callers that hand complete
// messages to a transport.
func (w *Writer) Encode(v any) ([]byte, error) {
	buf := buffer.New()
	err := w.WriteValue(v, buf)
	var code TypeCode
	if buf.Len() > 0 {
		code = TypeCode(buf.Bytes()[0])
	}
	w.logEvent(log.DirectionEncode, code, buf.Len(), err)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteValue appends one full envelope for v to buf.
//
// A nil value with no declared type is written as the bare null marker. A
// nil entity pointer (e.g. (*graph.Vertex)(nil)) keeps its declared type:
// the type code is written with value flag 1 and no body. Everything else
// resolves a codec through the registry and writes
// {type_code}{0x00}{body}.
//
// Composite codecs call back into WriteValue for each nested value, so
// recursion depth is bounded only by the call stack.
func (w *Writer) WriteValue(v any, buf *buffer.Buffer) error {
	if v == nil {
		buf.WriteUint8(byte(TypeNull))
		return nil
	}
	e, err := w.registry.resolveEncode(v)
	if err != nil {
		return err
	}
	buf.WriteUint8(byte(e.code))
	if isNilEntity(v) {
		buf.WriteUint8(flagNull)
		return nil
	}
	buf.WriteUint8(flagPresent)
	if err := e.codec.Write(v, buf, w); err != nil {
		return fmt.Errorf("encoding %s body: %w", e.code, err)
	}
	return nil
}

// WriteTypedNull writes a null for a declared type: the type code followed
// by value flag 1 and no body. The null marker itself has no typed-null
// form, and the code must be registered.
func (w *Writer) WriteTypedNull(code TypeCode, buf *buffer.Buffer) error {
	if code == TypeNull {
		return fmt.Errorf("null marker 0x%02X: %w", byte(code), ErrNullNotAllowed)
	}
	if _, err := w.registry.resolveDecode(code); err != nil {
		return fmt.Errorf("typed null: %w", err)
	}
	buf.WriteUint8(byte(code))
	buf.WriteUint8(flagNull)
	return nil
}

func (w *Writer) logEvent(dir log.Direction, code TypeCode, size int, err error) {
	ev := log.Event{
		Timestamp: time.Now(),
		SessionID: w.session,
		Direction: dir,
		TypeCode:  byte(code),
		Size:      size,
	}
	if err != nil {
		ev.Error = err.Error()
	}
	w.logger.Log(ev)
}

// isNilEntity reports whether v is a typed nil entity pointer, which
// encodes as a typed null.
func isNilEntity(v any) bool {
	switch p := v.(type) {
	case *graph.Vertex:
		return p == nil
	case *graph.Edge:
		return p == nil
	case *graph.VertexProperty:
		return p == nil
	case *graph.Property:
		return p == nil
	case *graph.Path:
		return p == nil
	}
	return false
}
