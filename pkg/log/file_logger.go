package log

import (
	"os"
	"sync"

	"github.com/fxamacker/cbor/v2"
)

// FileLogger appends codec events to a file as CBOR records. It is safe
// for concurrent use; events from different goroutines are serialized but
// their order is whatever the lock grants.
type FileLogger struct {
	mu   sync.Mutex
	file *os.File
	enc  *cbor.Encoder
}

// NewFileLogger opens (or creates, mode 0644) the event file at path and
// appends to it.
func NewFileLogger(path string) (*FileLogger, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	return &FileLogger{file: f, enc: NewEncoder(f)}, nil
}

// Log appends one event. Write errors are swallowed; event logging must
// never fail an encode or decode. Calls after Close are no-ops.
func (l *FileLogger) Log(event Event) {
	l.mu.Lock()
	if l.file != nil {
		_ = l.enc.Encode(event)
	}
	l.mu.Unlock()
}

// Close closes the event file. Calling Close again returns nil.
func (l *FileLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	l.enc = nil
	return err
}

var _ Logger = (*FileLogger)(nil)
