package wire

// DefaultMaxDepth is the nesting limit applied when no option overrides it
const DefaultMaxDepth = 100

// Options controls optional decoding behaviors. The zero value is not
// used directly; NewDecoder starts from DefaultOptions.
type Options struct {
	// MaxDepth bounds how many levels of embedded messages may be decoded
	// below the top-level buffer. A negative value disables the limit.
	MaxDepth int

	// ExtendedVarint raises the varint cap from MaxVarintLen (7) groups to
	// the full StandardVarintLen (10), allowing every uint64 value.
	ExtendedVarint bool

	// LegacyFixed32 reads fixed32 payloads through the varint path instead
	// of as 4 little-endian bytes. Only needed for payloads produced by
	// encoders that wrote fixed32 fields as varints.
	LegacyFixed32 bool
}

// Option mutates Options
type Option func(*Options)

// DefaultOptions returns the options used when none are supplied
func DefaultOptions() Options {
	return Options{MaxDepth: DefaultMaxDepth}
}

// WithMaxDepth sets the embedded message nesting limit
func WithMaxDepth(n int) Option {
	return func(o *Options) { o.MaxDepth = n }
}

// WithExtendedVarint toggles the 10-group varint cap
func WithExtendedVarint(on bool) Option {
	return func(o *Options) { o.ExtendedVarint = on }
}

// WithLegacyFixed32 toggles varint-path decoding of fixed32 payloads
func WithLegacyFixed32(on bool) Option {
	return func(o *Options) { o.LegacyFixed32 = on }
}

// WithOptions replaces all options at once
func WithOptions(opts Options) Option {
	return func(o *Options) { *o = opts }
}

func (o Options) varintLimit() int {
	if o.ExtendedVarint {
		return StandardVarintLen
	}
	return MaxVarintLen
}
