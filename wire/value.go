package wire

import (
	"fmt"
	"unicode/utf8"
)

// FieldValue is a field payload typed by its wire type. Bytes payloads are
// sub-slices of the decoded buffer, so a FieldValue is only valid while that
// buffer is left unmodified.
type FieldValue struct {
	Type WireType

	num    uint64   // varint value, or the fixed32 bits
	data   []byte   // bytes payload
	dec    *Decoder // decoder that produced a bytes payload, nil if constructed
	offset int      // position of data in the top-level input
}

// VarintValue builds a varint field value
func VarintValue(v uint64) FieldValue {
	return FieldValue{Type: WireVarint, num: v}
}

// BytesValue builds a length-delimited field value borrowing b
func BytesValue(b []byte) FieldValue {
	return FieldValue{Type: WireBytes, data: b}
}

// Fixed32Value builds a fixed32 field value
func Fixed32Value(v int32) FieldValue {
	return FieldValue{Type: WireFixed32, num: uint64(uint32(v))}
}

// ===== TYPED ACCESSORS =====

// AsString returns a length-delimited payload as text. The bytes must be
// valid UTF-8.
func (v FieldValue) AsString() (string, error) {
	if v.Type != WireBytes {
		return "", v.mismatch(WireBytes)
	}
	if !utf8.Valid(v.data) {
		return "", ErrInvalidString
	}
	return string(v.data), nil
}

// AsBytes returns a length-delimited payload without copying it
func (v FieldValue) AsBytes() ([]byte, error) {
	if v.Type != WireBytes {
		return nil, v.mismatch(WireBytes)
	}
	return v.data, nil
}

// AsUint64 returns a varint payload
func (v FieldValue) AsUint64() (uint64, error) {
	if v.Type != WireVarint {
		return 0, v.mismatch(WireVarint)
	}
	return v.num, nil
}

// AsBool returns a varint payload as a boolean (any non-zero is true)
func (v FieldValue) AsBool() (bool, error) {
	n, err := v.AsUint64()
	if err != nil {
		return false, err
	}
	return n != 0, nil
}

// AsInt32 returns a fixed32 payload
func (v FieldValue) AsInt32() (int32, error) {
	if v.Type != WireFixed32 {
		return 0, v.mismatch(WireFixed32)
	}
	return int32(uint32(v.num)), nil
}

// AsMessage decodes a length-delimited payload as an embedded message into
// sink, one nesting level below the message the value came from.
func (v FieldValue) AsMessage(sink Sink) error {
	data, err := v.AsBytes()
	if err != nil {
		return err
	}

	d := v.dec
	if d == nil {
		d = NewDecoder()
	}
	nested, err := d.nested(v.offset)
	if err != nil {
		return err
	}
	return nested.Decode(data, sink)
}

// DecodeEmbedded decodes a length-delimited value into a freshly
// constructed T.
func DecodeEmbedded[T any, PT interface {
	*T
	Sink
}](v FieldValue) (*T, error) {
	msg := PT(new(T))
	if err := v.AsMessage(msg); err != nil {
		return nil, err
	}
	return (*T)(msg), nil
}

func (v FieldValue) mismatch(want WireType) error {
	return fmt.Errorf("%w: want %s, got %s", ErrUnexpectedWireType, want, v.Type)
}

// String renders the value for debugging
func (v FieldValue) String() string {
	switch v.Type {
	case WireVarint:
		return fmt.Sprintf("varint=%d", v.num)
	case WireBytes:
		if utf8.Valid(v.data) {
			return fmt.Sprintf("bytes=%q", v.data)
		}
		return fmt.Sprintf("bytes=%x", v.data)
	case WireFixed32:
		return fmt.Sprintf("fixed32=%d", int32(uint32(v.num)))
	default:
		return v.Type.String()
	}
}
