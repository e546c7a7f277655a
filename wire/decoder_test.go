package wire

import (
	"bytes"
	"errors"
	"testing"

	"google.golang.org/protobuf/encoding/protowire"
)

func TestDecodeField_WireTypes(t *testing.T) {
	var buf []byte
	buf = protowire.AppendTag(buf, 1, protowire.VarintType)
	buf = protowire.AppendVarint(buf, 300)
	buf = protowire.AppendTag(buf, 2, protowire.BytesType)
	buf = protowire.AppendString(buf, "hello")
	buf = protowire.AppendTag(buf, 3, protowire.Fixed32Type)
	buf = protowire.AppendFixed32(buf, uint32(0xfffffffe))

	field, rest, err := DecodeField(buf)
	if err != nil {
		t.Fatalf("field 1: %v", err)
	}
	if field.Number != 1 || field.Value.Type != WireVarint {
		t.Errorf("field 1: got %s", field)
	}
	if v, _ := field.Value.AsUint64(); v != 300 {
		t.Errorf("field 1: expected 300, got %d", v)
	}

	field, rest, err = DecodeField(rest)
	if err != nil {
		t.Fatalf("field 2: %v", err)
	}
	if s, _ := field.Value.AsString(); field.Number != 2 || s != "hello" {
		t.Errorf("field 2: got %s", field)
	}

	field, rest, err = DecodeField(rest)
	if err != nil {
		t.Fatalf("field 3: %v", err)
	}
	if v, _ := field.Value.AsInt32(); field.Number != 3 || v != -2 {
		t.Errorf("field 3: got %s", field)
	}

	if len(rest) != 0 {
		t.Errorf("expected input fully consumed, %d bytes left", len(rest))
	}
}

func TestDecodeField_BorrowsInput(t *testing.T) {
	buf := protowire.AppendTag(nil, 4, protowire.BytesType)
	buf = protowire.AppendBytes(buf, []byte("payload"))
	buf = append(buf, 0x08, 0x01)

	field, rest, err := DecodeField(buf)
	if err != nil {
		t.Fatalf("DecodeField failed: %v", err)
	}

	data, err := field.Value.AsBytes()
	if err != nil {
		t.Fatalf("AsBytes failed: %v", err)
	}
	if !bytes.Equal(data, []byte("payload")) {
		t.Errorf("expected payload, got %q", data)
	}
	if &data[0] != &buf[2] {
		t.Error("bytes payload should alias the input buffer")
	}
	if cap(data) != len(data) {
		t.Errorf("bytes payload capacity should be clipped, cap=%d len=%d", cap(data), len(data))
	}
	if !bytes.Equal(rest, []byte{0x08, 0x01}) {
		t.Errorf("unexpected remainder %x", rest)
	}
}

func TestDecodeField_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  error
	}{
		{"empty", nil, ErrInvalidVarint},
		{"bad_tag_varint", []byte{0x80}, ErrInvalidVarint},
		{"wire_type_1", []byte{0x09, 0, 0, 0, 0, 0, 0, 0, 0}, ErrInvalidWireType},
		{"wire_type_3", []byte{0x0b}, ErrInvalidWireType},
		{"wire_type_6", []byte{0x0e}, ErrInvalidWireType},
		{"missing_varint_payload", []byte{0x08}, ErrInvalidVarint},
		{"missing_length", []byte{0x0a}, ErrInvalidVarint},
		{"length_exceeds_buffer", []byte{0x0a, 0x07, 'm', 'a', 'x'}, ErrTruncated},
		{"short_fixed32", []byte{0x0d, 0x01, 0x02}, ErrTruncated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, rest, err := DecodeField(tt.input)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if !bytes.Equal(rest, tt.input) {
				t.Error("input should be returned unconsumed on error")
			}
		})
	}
}

func TestDecodeField_InvalidLength(t *testing.T) {
	buf := protowire.AppendTag(nil, 1, protowire.BytesType)
	buf = protowire.AppendVarint(buf, 1<<63)

	d := NewDecoder(WithExtendedVarint(true))
	_, _, err := d.DecodeField(buf)
	if !errors.Is(err, ErrInvalidLength) {
		t.Fatalf("expected ErrInvalidLength, got %v", err)
	}
}

func TestDecodeField_Fixed32Modes(t *testing.T) {
	t.Run("little_endian", func(t *testing.T) {
		buf := protowire.AppendTag(nil, 1, protowire.Fixed32Type)
		buf = protowire.AppendFixed32(buf, 0x01020304)

		field, rest, err := NewDecoder().DecodeField(buf)
		if err != nil {
			t.Fatalf("DecodeField failed: %v", err)
		}
		if v, _ := field.Value.AsInt32(); v != 0x01020304 {
			t.Errorf("expected %#x, got %#x", 0x01020304, v)
		}
		if len(rest) != 0 {
			t.Errorf("expected 4-byte payload consumed, %d left", len(rest))
		}
	})

	t.Run("legacy_varint_path", func(t *testing.T) {
		buf := protowire.AppendTag(nil, 1, protowire.Fixed32Type)
		buf = protowire.AppendVarint(buf, 0xfffffffb)

		field, rest, err := NewDecoder(WithLegacyFixed32(true)).DecodeField(buf)
		if err != nil {
			t.Fatalf("DecodeField failed: %v", err)
		}
		if v, _ := field.Value.AsInt32(); v != -5 {
			t.Errorf("expected -5, got %d", v)
		}
		if len(rest) != 0 {
			t.Errorf("expected varint payload consumed, %d left", len(rest))
		}
	})
}

func TestNewDecoder_Options(t *testing.T) {
	d := NewDecoder()
	if got := d.Options(); got != DefaultOptions() {
		t.Errorf("expected default options, got %+v", got)
	}

	want := Options{MaxDepth: 3, ExtendedVarint: true, LegacyFixed32: true}
	d = NewDecoder(WithOptions(want))
	if got := d.Options(); got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
	if d.Depth() != 0 {
		t.Errorf("expected depth 0, got %d", d.Depth())
	}
}
