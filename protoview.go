// Package protoview decodes protobuf-style wire payloads without generated
// code. Records are filled through wire.Sink implementations; Parse and
// Dump inspect payloads with no record type at all.
package protoview

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/anirudhraja/protoview/registry"
	"github.com/anirudhraja/protoview/wire"
)

// ===== SCHEMA-LESS API =====

// Protoview bundles decode options, a logger and a label registry
type Protoview struct {
	registry *registry.Registry
	decoder  *wire.Decoder
	logger   zerolog.Logger
}

// Option configures a Protoview
type Option func(*config)

type config struct {
	logger     zerolog.Logger
	decodeOpts []wire.Option
}

// WithLogger sets the logger used for diagnostics
func WithLogger(l zerolog.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithDecodeOptions sets the wire options used for every decode
func WithDecodeOptions(opts ...wire.Option) Option {
	return func(c *config) { c.decodeOpts = append(c.decodeOpts, opts...) }
}

// New creates a Protoview that searches protoDirs for .proto imports
func New(protoDirs []string, opts ...Option) *Protoview {
	c := config{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&c)
	}
	return &Protoview{
		registry: registry.NewRegistry(protoDirs, c.logger),
		decoder:  wire.NewDecoder(c.decodeOpts...),
		logger:   c.logger,
	}
}

// LoadSchemaFromFile loads field labels from a .proto file and its imports
func (p *Protoview) LoadSchemaFromFile(protoPath string) error {
	return p.registry.LoadSchemaFromFile(protoPath)
}

// Unmarshal decodes data into sink
func (p *Protoview) Unmarshal(data []byte, sink wire.Sink) error {
	if err := p.decoder.Decode(data, sink); err != nil {
		p.logger.Debug().Err(err).Int("bytes", len(data)).Str("sink", fmt.Sprintf("%T", sink)).Msg("decode failed")
		return err
	}
	return nil
}

// Parse decodes data without a record type. Each field becomes an entry
// keyed "field_N" holding {"type": wire type name, "value": payload};
// numbers seen more than once hold a list of such entries in wire order.
// Byte payloads are copied, so the result does not alias data.
func (p *Protoview) Parse(data []byte) (map[string]interface{}, error) {
	var raw wire.RawMessage
	if err := p.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	result := make(map[string]interface{})
	for _, f := range raw.Fields {
		key := fmt.Sprintf("field_%d", f.Number)
		entry := map[string]interface{}{
			"type":  f.Value.Type.String(),
			"value": plainValue(f.Value),
		}

		switch existing := result[key].(type) {
		case nil:
			result[key] = entry
		case map[string]interface{}:
			result[key] = []interface{}{existing, entry}
		case []interface{}:
			result[key] = append(existing, entry)
		}
	}
	return result, nil
}

// plainValue converts a field value into a plain Go value
func plainValue(v wire.FieldValue) interface{} {
	switch v.Type {
	case wire.WireVarint:
		n, _ := v.AsUint64()
		return n
	case wire.WireFixed32:
		n, _ := v.AsInt32()
		return n
	default:
		b, _ := v.AsBytes()
		return append([]byte{}, b...)
	}
}

// ===== REGISTRY ACCESS =====

func (p *Protoview) GetRegistry() *registry.Registry { return p.registry }
func (p *Protoview) ListMessages() []string          { return p.registry.ListMessages() }
func (p *Protoview) ListEnums() []string             { return p.registry.ListEnums() }
