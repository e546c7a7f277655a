package wire

import "fmt"

// ===== WIRE FORMAT TYPES =====

// WireType represents the 3-bit payload shape carried in a field tag
type WireType uint8

const (
	WireVarint  WireType = 0 // a single varint
	WireBytes   WireType = 2 // varint length followed by that many bytes
	WireFixed32 WireType = 5 // 4 bytes, little-endian signed 32-bit integer
)

// String returns the lower-case name of the wire type
func (wt WireType) String() string {
	switch wt {
	case WireVarint:
		return "varint"
	case WireBytes:
		return "bytes"
	case WireFixed32:
		return "fixed32"
	default:
		return fmt.Sprintf("wiretype(%d)", uint8(wt))
	}
}

// ParseWireType converts the low bits of a tag into a WireType
func ParseWireType(v uint64) (WireType, error) {
	switch v {
	case 0:
		return WireVarint, nil
	case 2:
		return WireBytes, nil
	case 5:
		return WireFixed32, nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrInvalidWireType, v)
	}
}

// FieldNumber identifies a field within a message. It is not validated
// against any schema; sinks decide which numbers they understand.
type FieldNumber uint64

// UnpackTag splits a decoded tag into its field number and wire type
func UnpackTag(tag uint64) (FieldNumber, WireType, error) {
	wt, err := ParseWireType(tag & 0x7)
	if err != nil {
		return 0, 0, err
	}
	return FieldNumber(tag >> 3), wt, nil
}

// Field is a single decoded field: its number and its value
type Field struct {
	Number FieldNumber
	Value  FieldValue
}

// String renders the field as "number:type=value"
func (f Field) String() string {
	return fmt.Sprintf("%d:%s", f.Number, f.Value)
}
