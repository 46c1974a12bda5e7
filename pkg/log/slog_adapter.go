package log

import (
	"context"
	"log/slog"
)

// SlogAdapter writes codec events to an slog.Logger.
// Useful in development to watch codec traffic on the console.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a SlogAdapter that writes to the given slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event to the slog logger. Successful operations log at
// Debug level, failures at Warn.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("session_id", event.SessionID),
		slog.String("direction", event.Direction.String()),
		slog.Int("type_code", int(event.TypeCode)),
		slog.Int("size", event.Size),
	}

	level := slog.LevelDebug
	if event.Error != "" {
		attrs = append(attrs, slog.String("error", event.Error))
		level = slog.LevelWarn
	}

	a.logger.LogAttrs(context.Background(), level, "codec", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
