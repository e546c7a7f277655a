package wire

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Decoder decodes fields and messages from byte slices. It holds no cursor:
// every method takes the slice to read and returns the unconsumed rest. A
// Decoder is immutable after construction and safe for concurrent use.
type Decoder struct {
	opts  Options
	depth int
	base  int // offset of the decoded buffer within the top-level input
}

// NewDecoder creates a new wire format decoder
func NewDecoder(opts ...Option) *Decoder {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Decoder{opts: o}
}

// Options returns the options the decoder was built with
func (d *Decoder) Options() Options {
	return d.opts
}

// Depth returns the nesting level the decoder reads at; 0 is top level
func (d *Decoder) Depth() int {
	return d.depth
}

// nested returns a decoder one level deeper for a payload starting at
// base, enforcing MaxDepth
func (d *Decoder) nested(base int) (*Decoder, error) {
	if d.opts.MaxDepth >= 0 && d.depth+1 > d.opts.MaxDepth {
		return nil, fmt.Errorf("%w (%d)", ErrMaxDepth, d.opts.MaxDepth)
	}
	return &Decoder{opts: d.opts, depth: d.depth + 1, base: base}, nil
}

// DecodeField decodes exactly one field from the front of b using default
// options and returns the remaining bytes.
func DecodeField(b []byte) (Field, []byte, error) {
	return defaultDecoder.DecodeField(b)
}

var defaultDecoder = NewDecoder()

// DecodeField decodes exactly one field from the front of b
func (d *Decoder) DecodeField(b []byte) (Field, []byte, error) {
	tag, rest, err := d.DecodeVarint(b)
	if err != nil {
		return Field{}, b, fmt.Errorf("failed to decode tag: %w", err)
	}

	num, wireType, err := UnpackTag(tag)
	if err != nil {
		return Field{}, b, err
	}

	value, rest, err := d.decodeValue(wireType, rest)
	if err != nil {
		return Field{}, b, fmt.Errorf("failed to decode field %d (%s): %w", num, wireType, err)
	}

	return Field{Number: num, Value: value}, rest, nil
}

// decodeValue routes to the payload reader for wireType
func (d *Decoder) decodeValue(wireType WireType, b []byte) (FieldValue, []byte, error) {
	switch wireType {
	case WireVarint:
		v, rest, err := d.DecodeVarint(b)
		if err != nil {
			return FieldValue{}, b, err
		}
		return VarintValue(v), rest, nil
	case WireBytes:
		data, rest, err := d.decodeBytes(b)
		if err != nil {
			return FieldValue{}, b, err
		}
		return FieldValue{Type: WireBytes, data: data, dec: d}, rest, nil
	case WireFixed32:
		v, rest, err := d.decodeFixed32(b)
		if err != nil {
			return FieldValue{}, b, err
		}
		return Fixed32Value(v), rest, nil
	default:
		return FieldValue{}, b, fmt.Errorf("%w: %d", ErrInvalidWireType, wireType)
	}
}

// decodeBytes reads a varint length and splits off that many bytes
// without copying them.
func (d *Decoder) decodeBytes(b []byte) ([]byte, []byte, error) {
	length, rest, err := d.DecodeVarint(b)
	if err != nil {
		return nil, b, fmt.Errorf("failed to decode bytes length: %w", err)
	}

	if length > math.MaxInt {
		return nil, b, fmt.Errorf("%w: %d", ErrInvalidLength, length)
	}
	n := int(length)
	if n > len(rest) {
		return nil, b, fmt.Errorf("%w: need %d bytes, have %d", ErrTruncated, n, len(rest))
	}

	return rest[:n:n], rest[n:], nil
}

// decodeFixed32 reads 4 little-endian bytes, or a varint in legacy mode
func (d *Decoder) decodeFixed32(b []byte) (int32, []byte, error) {
	if d.opts.LegacyFixed32 {
		v, rest, err := d.DecodeVarint(b)
		if err != nil {
			return 0, b, err
		}
		return int32(uint32(v)), rest, nil
	}

	if len(b) < 4 {
		return 0, b, fmt.Errorf("%w: need 4 bytes for fixed32, have %d", ErrTruncated, len(b))
	}
	return int32(binary.LittleEndian.Uint32(b)), b[4:], nil
}
