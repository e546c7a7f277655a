package protoview

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/anirudhraja/protoview/schema"
	"github.com/anirudhraja/protoview/wire"
)

// Dump writes an indented listing of every field in data. When
// messageType names a loaded message, fields are labelled with their
// names and embedded messages are expanded; otherwise fields are listed
// by number only.
func (p *Protoview) Dump(w io.Writer, data []byte, messageType string) error {
	var msg *schema.Message
	if messageType != "" {
		m, err := p.registry.GetMessage(messageType)
		if err != nil {
			return err
		}
		msg = m
	}

	var raw wire.RawMessage
	if err := p.Unmarshal(data, &raw); err != nil {
		return err
	}

	var sb strings.Builder
	if err := p.dumpFields(&sb, raw.Fields, msg, 0); err != nil {
		return err
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func (p *Protoview) dumpFields(sb *strings.Builder, fields []wire.Field, msg *schema.Message, indent int) error {
	pad := strings.Repeat("  ", indent)

	for _, f := range fields {
		label := msg.FieldByNumber(uint64(f.Number))

		sb.WriteString(pad)
		sb.WriteString(strconv.FormatUint(uint64(f.Number), 10))
		if label != nil {
			sb.WriteString(" (" + label.Name + ")")
		}

		if nested := p.nestedMessage(label, f.Value); nested != nil {
			var raw wire.RawMessage
			if err := f.Value.AsMessage(&raw); err != nil {
				return fmt.Errorf("field %d (%s): %w", f.Number, label.Name, err)
			}
			sb.WriteString(" {\n")
			if err := p.dumpFields(sb, raw.Fields, nested, indent+1); err != nil {
				return err
			}
			sb.WriteString(pad + "}\n")
			continue
		}

		sb.WriteString(": ")
		sb.WriteString(p.formatValue(label, f.Value))
		sb.WriteString("\n")
	}
	return nil
}

// nestedMessage returns the label of an embedded message field, or nil
func (p *Protoview) nestedMessage(label *schema.Field, v wire.FieldValue) *schema.Message {
	if label == nil || v.Type != wire.WireBytes {
		return nil
	}
	if label.Kind != schema.KindMessage && label.Kind != schema.KindMap {
		return nil
	}
	nested, err := p.registry.GetMessage(label.TypeName)
	if err != nil {
		return nil
	}
	return nested
}

// formatValue renders a scalar using its label when the wire type agrees
func (p *Protoview) formatValue(label *schema.Field, v wire.FieldValue) string {
	typeName := ""
	if label != nil {
		typeName = label.TypeName
	}

	switch v.Type {
	case wire.WireVarint:
		n, _ := v.AsUint64()
		switch {
		case typeName == "bool":
			return strconv.FormatBool(n != 0)
		case typeName == "sint32" || typeName == "sint64":
			return strconv.FormatInt(int64(n>>1)^-int64(n&1), 10)
		case label != nil && label.Kind == schema.KindEnum:
			enum, err := p.registry.GetEnum(typeName)
			if err == nil {
				if name, ok := enum.ValueName(int32(n)); ok {
					return fmt.Sprintf("%s (%d)", name, n)
				}
			}
		}
		return strconv.FormatUint(n, 10)

	case wire.WireFixed32:
		n, _ := v.AsInt32()
		switch typeName {
		case "float":
			return strconv.FormatFloat(float64(math.Float32frombits(uint32(n))), 'g', -1, 32)
		case "fixed32":
			return strconv.FormatUint(uint64(uint32(n)), 10)
		}
		return strconv.FormatInt(int64(n), 10)

	default:
		b, _ := v.AsBytes()
		if typeName == "bytes" || !utf8.Valid(b) {
			return fmt.Sprintf("0x%x", b)
		}
		return strconv.Quote(string(b))
	}
}
