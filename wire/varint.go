package wire

const (
	// MaxVarintLen is the default cap on varint groups. Values needing more
	// than 49 bits cannot be decoded under this cap.
	MaxVarintLen = 7

	// StandardVarintLen is the number of groups needed for any uint64
	StandardVarintLen = 10
)

// DecodeVarint decodes a varint from the front of b with the default
// 7-group cap, returning the value and the unconsumed remainder.
func DecodeVarint(b []byte) (uint64, []byte, error) {
	return decodeVarint(b, MaxVarintLen)
}

// DecodeVarint decodes a varint using the decoder's varint cap
func (d *Decoder) DecodeVarint(b []byte) (uint64, []byte, error) {
	return decodeVarint(b, d.opts.varintLimit())
}

// decodeVarint reads at most limit groups. The first byte holds the least
// significant 7 bits; a clear high bit terminates the value.
func decodeVarint(b []byte, limit int) (uint64, []byte, error) {
	var result uint64
	var shift uint

	for i := 0; i < limit; i++ {
		if i >= len(b) {
			return 0, b, ErrInvalidVarint
		}

		c := b[i]
		// The tenth group may only contribute the 64th bit.
		if i == StandardVarintLen-1 && c > 1 {
			return 0, b, ErrInvalidVarint
		}

		result |= uint64(c&0x7F) << shift
		if c&0x80 == 0 {
			return result, b[i+1:], nil
		}

		shift += 7
	}

	return 0, b, ErrInvalidVarint
}

// VarintSize returns the number of bytes needed to encode the given varint
func VarintSize(v uint64) int {
	switch {
	case v < 1<<7:
		return 1
	case v < 1<<14:
		return 2
	case v < 1<<21:
		return 3
	case v < 1<<28:
		return 4
	case v < 1<<35:
		return 5
	case v < 1<<42:
		return 6
	case v < 1<<49:
		return 7
	case v < 1<<56:
		return 8
	case v < 1<<63:
		return 9
	default:
		return 10
	}
}

// MaxVarint returns the largest value decodable under the given group cap
func MaxVarint(groups int) uint64 {
	if groups*7 >= 64 {
		return ^uint64(0)
	}
	return 1<<(uint(groups)*7) - 1
}
