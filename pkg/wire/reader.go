package wire

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/graphbin-protocol/graphbin-go/pkg/buffer"
	"github.com/graphbin-protocol/graphbin-go/pkg/log"
)

// Reader decodes values from the GraphBin wire format. A Reader is
// stateless between calls and safe for concurrent use as long as each
// call gets its own Buffer.
type Reader struct {
	registry *Registry
	logger   log.Logger
	session  string
}

// ReaderOption configures a Reader.
type ReaderOption func(*Reader)

// WithReaderLogger attaches a logger that receives one event per Decode
// call. Pass nil to disable (the default).
func WithReaderLogger(l log.Logger) ReaderOption {
	return func(r *Reader) {
		r.logger = l
	}
}

// NewReader creates a Reader that dispatches through the given registry.
func NewReader(registry *Registry, opts ...ReaderOption) *Reader {
	r := &Reader{
		registry: registry,
		logger:   log.NoopLogger{},
		session:  uuid.New().String(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Decode deserializes a single value from data. The bytes must hold
// exactly one envelope; trailing bytes are reported as malformed rather
// than silently ignored.
func (r *Reader) Decode(data []byte) (any, error) {
	buf := buffer.From(data)
	var code TypeCode
	if len(data) > 0 {
		code = TypeCode(data[0])
	}
	v, err := r.ReadValue(buf)
	if err == nil && buf.Remaining() > 0 {
		err = fmt.Errorf("%d trailing bytes after value: %w", buf.Remaining(), ErrMalformedValue)
	}
	r.logEvent(log.DirectionDecode, code, len(data), err)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// ReadValue reads one full envelope from buf and reconstructs its value.
//
// The null marker code yields an untyped nil. Any other code is resolved
// through the registry (an unknown code fails with ErrUnsupportedType
// before further bytes are consumed); value flag 1 yields nil for that
// declared type, and flag 0 dispatches the body to the codec.
//
// On success the read cursor sits exactly past the envelope. After a
// failure the cursor position is undefined and the Buffer must not be
// reused.
func (r *Reader) ReadValue(buf *buffer.Buffer) (any, error) {
	c, err := buf.ReadUint8()
	if err != nil {
		return nil, fmt.Errorf("reading type code: %w", err)
	}
	code := TypeCode(c)
	if code == TypeNull {
		return nil, nil
	}
	codec, err := r.registry.resolveDecode(code)
	if err != nil {
		return nil, err
	}
	flag, err := buf.ReadUint8()
	if err != nil {
		return nil, fmt.Errorf("reading %s value flag: %w", code, err)
	}
	switch flag {
	case flagNull:
		return nil, nil
	case flagPresent:
		v, err := codec.Read(buf, r)
		if err != nil {
			return nil, fmt.Errorf("decoding %s body: %w", code, err)
		}
		return v, nil
	default:
		return nil, fmt.Errorf("%s value flag 0x%02X: %w", code, flag, ErrMalformedValue)
	}
}

func (r *Reader) logEvent(dir log.Direction, code TypeCode, size int, err error) {
	ev := log.Event{
		Timestamp: time.Now(),
		SessionID: r.session,
		Direction: dir,
		TypeCode:  byte(code),
		Size:      size,
	}
	if err != nil {
		ev.Error = err.Error()
	}
	r.logger.Log(ev)
}
