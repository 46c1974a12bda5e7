package wire

import "errors"

// Codec errors. Failures inside a nested value abort the whole encode or
// decode; the Buffer's cursor is not meaningful for reuse afterwards.
var (
	// ErrUnsupportedType indicates that encode found no registered kind
	// match for a value, or decode encountered an unregistered type code.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrMalformedValue indicates a body that violates a type's structural
	// constraints, such as a negative collection count or an invalid date.
	ErrMalformedValue = errors.New("malformed value")

	// ErrNullNotAllowed indicates a typed null was requested for a code
	// that has no typed-null representation.
	ErrNullNotAllowed = errors.New("type does not allow typed null")

	// ErrCodeInUse indicates a registration collision.
	ErrCodeInUse = errors.New("type code already registered")

	// ErrCodeOutOfRange indicates a custom registration outside the
	// reserved custom code range.
	ErrCodeOutOfRange = errors.New("type code outside custom range")
)
