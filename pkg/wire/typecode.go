package wire

import "fmt"

// TypeCode identifies a value's wire type. The table below is protocol
// version 1; codes are never reassigned or reused across versions.
type TypeCode byte

const (
	TypeBoolean   TypeCode = 0x01
	TypeInt8      TypeCode = 0x02
	TypeInt16     TypeCode = 0x03
	TypeInt32     TypeCode = 0x04
	TypeInt64     TypeCode = 0x05
	TypeFloat32   TypeCode = 0x06
	TypeDate      TypeCode = 0x07
	TypeFloat64   TypeCode = 0x08
	TypeList      TypeCode = 0x09
	TypeSet       TypeCode = 0x0A
	TypeMap       TypeCode = 0x0B
	TypeString    TypeCode = 0x0C
	TypeUUID      TypeCode = 0x0D
	TypeTimestamp TypeCode = 0x0E

	TypeVertex         TypeCode = 0x10
	TypeEdge           TypeCode = 0x11
	TypeVertexProperty TypeCode = 0x12
	TypeProperty       TypeCode = 0x13
	TypePath           TypeCode = 0x14

	// TypeNull marks a null value with no declared type. It is written
	// alone: no value flag, no body.
	TypeNull TypeCode = 0xFE
)

// Custom type codes. CustomTypeMin through CustomTypeMax are reserved for
// application-registered types; built-in codes never enter this range, so
// a peer that does not know a specific custom type can still classify it.
const (
	CustomTypeMin TypeCode = 0x80
	CustomTypeMax TypeCode = 0xEF
)

// Value flag bytes following the type code.
const (
	flagPresent uint8 = 0x00
	flagNull    uint8 = 0x01
)

// IsCustom reports whether the code lies in the reserved custom range.
func (c TypeCode) IsCustom() bool {
	return c >= CustomTypeMin && c <= CustomTypeMax
}

// String returns the type name, or a hex form for custom and unknown codes.
func (c TypeCode) String() string {
	switch c {
	case TypeBoolean:
		return "Boolean"
	case TypeInt8:
		return "Int8"
	case TypeInt16:
		return "Int16"
	case TypeInt32:
		return "Int32"
	case TypeInt64:
		return "Int64"
	case TypeFloat32:
		return "Float32"
	case TypeDate:
		return "Date"
	case TypeFloat64:
		return "Float64"
	case TypeList:
		return "List"
	case TypeSet:
		return "Set"
	case TypeMap:
		return "Map"
	case TypeString:
		return "String"
	case TypeUUID:
		return "UUID"
	case TypeTimestamp:
		return "Timestamp"
	case TypeVertex:
		return "Vertex"
	case TypeEdge:
		return "Edge"
	case TypeVertexProperty:
		return "VertexProperty"
	case TypeProperty:
		return "Property"
	case TypePath:
		return "Path"
	case TypeNull:
		return "Null"
	}
	if c.IsCustom() {
		return fmt.Sprintf("Custom(0x%02X)", byte(c))
	}
	return fmt.Sprintf("Unknown(0x%02X)", byte(c))
}
