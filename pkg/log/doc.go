// Package log provides codec event logging for GraphBin.
//
// Encoders and decoders emit one Event per top-level operation: the root
// type code, the byte count, and the failure (if any). Applications choose
// where events go by implementing Logger, or by using one of the bundled
// implementations:
//
//   - NoopLogger discards events (the default).
//   - SlogAdapter forwards events to a log/slog logger.
//   - FileLogger appends CBOR-encoded events to a file; Reader replays
//     such a file, optionally filtered.
//
// Logging never disrupts encoding or decoding: implementations swallow
// their own I/O errors.
package log
