package buffer

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// Buffer errors.
var (
	// ErrUnderrun indicates a read past the available bytes. The read
	// cursor position is undefined after an underrun; the Buffer must not
	// be reused for further reads.
	ErrUnderrun = errors.New("buffer underrun")

	// ErrInvalidLength indicates a negative length prefix.
	ErrInvalidLength = errors.New("invalid length prefix")
)

// Buffer is a byte sequence with an append-only write cursor and a
// forward-only read cursor.
type Buffer struct {
	buf []byte
	off int // read cursor
}

// New returns an empty Buffer for encoding.
func New() *Buffer {
	return &Buffer{}
}

// From returns a Buffer that reads the given bytes. The Buffer does not
// copy data; the caller must not mutate it during the pass.
func From(data []byte) *Buffer {
	return &Buffer{buf: data}
}

// Bytes returns the full written contents.
func (b *Buffer) Bytes() []byte {
	return b.buf
}

// Len returns the total number of bytes held.
func (b *Buffer) Len() int {
	return len(b.buf)
}

// Remaining returns the number of unread bytes.
func (b *Buffer) Remaining() int {
	return len(b.buf) - b.off
}

// Reset discards all contents and rewinds both cursors.
func (b *Buffer) Reset() {
	b.buf = b.buf[:0]
	b.off = 0
}

// WriteUint8 appends a single byte.
func (b *Buffer) WriteUint8(v uint8) {
	b.buf = append(b.buf, v)
}

// WriteUint16 appends a big-endian uint16.
func (b *Buffer) WriteUint16(v uint16) {
	b.buf = binary.BigEndian.AppendUint16(b.buf, v)
}

// WriteUint32 appends a big-endian uint32.
func (b *Buffer) WriteUint32(v uint32) {
	b.buf = binary.BigEndian.AppendUint32(b.buf, v)
}

// WriteUint64 appends a big-endian uint64.
func (b *Buffer) WriteUint64(v uint64) {
	b.buf = binary.BigEndian.AppendUint64(b.buf, v)
}

// WriteInt8 appends a single byte holding a signed value.
func (b *Buffer) WriteInt8(v int8) {
	b.WriteUint8(uint8(v))
}

// WriteInt16 appends a big-endian int16.
func (b *Buffer) WriteInt16(v int16) {
	b.WriteUint16(uint16(v))
}

// WriteInt32 appends a big-endian int32.
func (b *Buffer) WriteInt32(v int32) {
	b.WriteUint32(uint32(v))
}

// WriteInt64 appends a big-endian int64.
func (b *Buffer) WriteInt64(v int64) {
	b.WriteUint64(uint64(v))
}

// WriteBytes appends a raw byte run with no length prefix.
func (b *Buffer) WriteBytes(p []byte) {
	b.buf = append(b.buf, p...)
}

// WriteString appends an int32 byte-length prefix followed by the UTF-8
// bytes of s.
func (b *Buffer) WriteString(s string) {
	b.WriteInt32(int32(len(s)))
	b.buf = append(b.buf, s...)
}

// ReadUint8 reads a single byte.
func (b *Buffer) ReadUint8() (uint8, error) {
	if b.Remaining() < 1 {
		return 0, fmt.Errorf("reading byte: %w", ErrUnderrun)
	}
	v := b.buf[b.off]
	b.off++
	return v, nil
}

// ReadUint16 reads a big-endian uint16.
func (b *Buffer) ReadUint16() (uint16, error) {
	if b.Remaining() < 2 {
		return 0, fmt.Errorf("reading uint16: %w", ErrUnderrun)
	}
	v := binary.BigEndian.Uint16(b.buf[b.off:])
	b.off += 2
	return v, nil
}

// ReadUint32 reads a big-endian uint32.
func (b *Buffer) ReadUint32() (uint32, error) {
	if b.Remaining() < 4 {
		return 0, fmt.Errorf("reading uint32: %w", ErrUnderrun)
	}
	v := binary.BigEndian.Uint32(b.buf[b.off:])
	b.off += 4
	return v, nil
}

// ReadUint64 reads a big-endian uint64.
func (b *Buffer) ReadUint64() (uint64, error) {
	if b.Remaining() < 8 {
		return 0, fmt.Errorf("reading uint64: %w", ErrUnderrun)
	}
	v := binary.BigEndian.Uint64(b.buf[b.off:])
	b.off += 8
	return v, nil
}

// ReadInt8 reads a single byte as a signed value.
func (b *Buffer) ReadInt8() (int8, error) {
	v, err := b.ReadUint8()
	return int8(v), err
}

// ReadInt16 reads a big-endian int16.
func (b *Buffer) ReadInt16() (int16, error) {
	v, err := b.ReadUint16()
	return int16(v), err
}

// ReadInt32 reads a big-endian int32.
func (b *Buffer) ReadInt32() (int32, error) {
	v, err := b.ReadUint32()
	return int32(v), err
}

// ReadInt64 reads a big-endian int64.
func (b *Buffer) ReadInt64() (int64, error) {
	v, err := b.ReadUint64()
	return int64(v), err
}

// ReadBytes reads exactly n raw bytes. The returned slice aliases the
// Buffer's storage and is valid until the Buffer is reset.
func (b *Buffer) ReadBytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("reading %d bytes: %w", n, ErrInvalidLength)
	}
	if b.Remaining() < n {
		return nil, fmt.Errorf("reading %d bytes with %d available: %w", n, b.Remaining(), ErrUnderrun)
	}
	v := b.buf[b.off : b.off+n]
	b.off += n
	return v, nil
}

// ReadString reads an int32 byte-length prefix followed by that many UTF-8
// bytes.
func (b *Buffer) ReadString() (string, error) {
	n, err := b.ReadInt32()
	if err != nil {
		return "", fmt.Errorf("reading string length: %w", err)
	}
	if n < 0 {
		return "", fmt.Errorf("string length %d: %w", n, ErrInvalidLength)
	}
	p, err := b.ReadBytes(int(n))
	if err != nil {
		return "", fmt.Errorf("reading string body: %w", err)
	}
	return string(p), nil
}
