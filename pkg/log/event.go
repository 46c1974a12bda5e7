package log

import (
	"io"
	"time"

	"github.com/fxamacker/cbor/v2"
)

// Event records one top-level codec operation.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the operation completed (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// SessionID identifies the Writer or Reader instance (UUID).
	SessionID string `cbor:"2,keyasint"`

	// Direction distinguishes encode from decode.
	Direction Direction `cbor:"3,keyasint"`

	// TypeCode is the root type code of the value, zero if the
	// operation failed before one was determined.
	TypeCode uint8 `cbor:"4,keyasint"`

	// Size is the number of bytes produced or consumed.
	Size int `cbor:"5,keyasint"`

	// Error holds the failure message for failed operations.
	Error string `cbor:"6,keyasint,omitempty"`
}

// Direction indicates whether an event describes an encode or a decode.
type Direction uint8

const (
	// DirectionEncode indicates a value was serialized.
	DirectionEncode Direction = 0
	// DirectionDecode indicates bytes were deserialized.
	DirectionDecode Direction = 1
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirectionEncode:
		return "ENCODE"
	case DirectionDecode:
		return "DECODE"
	default:
		return "UNKNOWN"
	}
}

// Events are stored as back-to-back CBOR records. Writing is
// deterministic; reading is lenient so event files written by newer
// versions with extra fields still replay.
var (
	eventEncMode = mustEncMode(cbor.EncOptions{
		Sort:          cbor.SortCanonical,
		IndefLength:   cbor.IndefLengthForbidden,
		NilContainers: cbor.NilContainerAsNull,
		Time:          cbor.TimeRFC3339Nano,
	})
	eventDecMode = mustDecMode(cbor.DecOptions{
		DupMapKey:         cbor.DupMapKeyQuiet,
		IndefLength:       cbor.IndefLengthAllowed,
		ExtraReturnErrors: cbor.ExtraDecErrorNone,
	})
)

func mustEncMode(opts cbor.EncOptions) cbor.EncMode {
	em, err := opts.EncMode()
	if err != nil {
		panic(err)
	}
	return em
}

func mustDecMode(opts cbor.DecOptions) cbor.DecMode {
	dm, err := opts.DecMode()
	if err != nil {
		panic(err)
	}
	return dm
}

// EncodeEvent serializes a single event record.
func EncodeEvent(event Event) ([]byte, error) {
	return eventEncMode.Marshal(event)
}

// DecodeEvent deserializes a single event record.
func DecodeEvent(data []byte) (Event, error) {
	var event Event
	if err := eventDecMode.Unmarshal(data, &event); err != nil {
		return Event{}, err
	}
	return event, nil
}

// NewEncoder returns a streaming encoder for event records.
func NewEncoder(w io.Writer) *cbor.Encoder {
	return eventEncMode.NewEncoder(w)
}

// NewDecoder returns a streaming decoder for event records.
func NewDecoder(r io.Reader) *cbor.Decoder {
	return eventDecMode.NewDecoder(r)
}
