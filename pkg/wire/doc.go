// Package wire implements the GraphBin binary serialization format for
// graph-structured values.
//
// Every encoded value is a self-describing envelope:
//
//	{type_code: u8}{value_flag: u8}{body}
//
// where value_flag 0x00 means the body follows and 0x01 means the value is
// a typed null with no body. The one exception is the null marker code
// (0xFE), which is written alone for a value with no declared type. All
// multi-byte integers are big-endian; collection bodies start with an
// int32 count and string bodies with an int32 byte length.
//
// The type-code table is a versioned contract: new protocol versions add
// codes, existing codes are never reassigned. Codes 0x80-0xEF are reserved
// for application-registered custom types, whose bodies must be
// self-length-prefixed so an unaware peer can at least skip them.
//
// # Usage
//
//	reg := wire.NewRegistry()
//	w := wire.NewWriter(reg)
//	data, err := w.Encode(&graph.Vertex{ID: int64(1), Label: "person"})
//
//	r := wire.NewReader(reg)
//	v, err := r.Decode(data)
//
// Encoding is deterministic: the same logical value always produces
// byte-identical output (map entries are ordered by their encoded key
// bytes).
//
// # Concurrency
//
// A Registry is immutable after construction and safe for concurrent use.
// Registration of custom types must complete before encode or decode
// traffic begins. Writer and Reader are stateless apart from the Registry
// and optional logger; a Buffer, however, must not be shared between
// in-flight calls.
package wire
