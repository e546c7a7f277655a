package wire

import "fmt"

// Sink receives the fields of one message, in wire order. Implementations
// are per record shape: they decide which field numbers are meaningful and
// fail with their own errors (typically wrapping ErrUnknownField) for the
// rest.
type Sink interface {
	AddField(f Field) error
}

// Decode feeds every field of data to sink. The whole buffer must be
// consumed; the first error from the field decoder or the sink aborts the
// call. Errors raised by the sink are wrapped in a *FieldError. Offsets in
// errors count from the start of the top-level input, also for embedded
// messages.
func (d *Decoder) Decode(data []byte, sink Sink) error {
	rest := data
	for len(rest) > 0 {
		offset := d.base + len(data) - len(rest)

		field, next, err := d.DecodeField(rest)
		if err != nil {
			return fmt.Errorf("at offset %d: %w", offset, err)
		}
		if field.Value.Type == WireBytes {
			field.Value.offset = d.base + len(data) - len(next) - len(field.Value.data)
		}

		if err := sink.AddField(field); err != nil {
			return wrapWithField(err, field.Number)
		}
		rest = next
	}
	return nil
}

// DecodeInto drives an existing sink over data
func DecodeInto(data []byte, sink Sink, opts ...Option) error {
	return NewDecoder(opts...).Decode(data, sink)
}

// DecodeMessage decodes data into a freshly constructed T. PT is inferred
// from T, e.g. DecodeMessage[Person](data).
func DecodeMessage[T any, PT interface {
	*T
	Sink
}](data []byte, opts ...Option) (*T, error) {
	msg := PT(new(T))
	if err := DecodeInto(data, msg, opts...); err != nil {
		return nil, err
	}
	return (*T)(msg), nil
}

// RawMessage is a Sink that keeps every field in wire order
type RawMessage struct {
	Fields []Field
}

// AddField implements Sink
func (m *RawMessage) AddField(f Field) error {
	m.Fields = append(m.Fields, f)
	return nil
}

// Get returns all fields with the given number, in wire order
func (m *RawMessage) Get(num FieldNumber) []Field {
	var out []Field
	for _, f := range m.Fields {
		if f.Number == num {
			out = append(out, f)
		}
	}
	return out
}

// Last returns the last occurrence of a field, matching the
// last-one-wins rule for singular fields.
func (m *RawMessage) Last(num FieldNumber) (Field, bool) {
	for i := len(m.Fields) - 1; i >= 0; i-- {
		if m.Fields[i].Number == num {
			return m.Fields[i], true
		}
	}
	return Field{}, false
}
