package protoview

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/anirudhraja/protoview/addressbook"
	"github.com/anirudhraja/protoview/wire"
)

func TestProtoview_Parse(t *testing.T) {
	proto := New(nil)

	t.Run("empty_data", func(t *testing.T) {
		result, err := proto.Parse([]byte{})
		if err != nil {
			t.Fatalf("Parse failed: %v", err)
		}
		if len(result) != 0 {
			t.Errorf("Expected empty result, got %v", result)
		}
	})

	t.Run("simple_varint", func(t *testing.T) {
		data := protowire.AppendTag(nil, 1, protowire.VarintType)
		data = protowire.AppendVarint(data, 42)

		result, err := proto.Parse(data)
		if err != nil {
			t.Fatalf("Parse failed: %v", err)
		}

		expected := map[string]interface{}{
			"field_1": map[string]interface{}{
				"type":  "varint",
				"value": uint64(42),
			},
		}
		if !reflect.DeepEqual(result, expected) {
			t.Errorf("Expected %v, got %v", expected, result)
		}
	})

	t.Run("multiple_fields", func(t *testing.T) {
		var data []byte
		data = protowire.AppendTag(data, 1, protowire.VarintType)
		data = protowire.AppendVarint(data, 123)
		data = protowire.AppendTag(data, 2, protowire.BytesType)
		data = protowire.AppendString(data, "hello")
		data = protowire.AppendTag(data, 3, protowire.Fixed32Type)
		data = protowire.AppendFixed32(data, uint32(0xffffffff))
		data = protowire.AppendTag(data, 1, protowire.VarintType)
		data = protowire.AppendVarint(data, 124)

		result, err := proto.Parse(data)
		if err != nil {
			t.Fatalf("Parse failed: %v", err)
		}

		expected := map[string]interface{}{
			"field_1": []interface{}{
				map[string]interface{}{"type": "varint", "value": uint64(123)},
				map[string]interface{}{"type": "varint", "value": uint64(124)},
			},
			"field_2": map[string]interface{}{"type": "bytes", "value": []byte("hello")},
			"field_3": map[string]interface{}{"type": "fixed32", "value": int32(-1)},
		}
		if !reflect.DeepEqual(result, expected) {
			t.Errorf("Expected %v, got %v", expected, result)
		}
	})

	t.Run("bytes_are_copied", func(t *testing.T) {
		data := protowire.AppendTag(nil, 2, protowire.BytesType)
		data = protowire.AppendString(data, "abc")

		result, err := proto.Parse(data)
		if err != nil {
			t.Fatalf("Parse failed: %v", err)
		}
		data[2] = 'z'

		value := result["field_2"].(map[string]interface{})["value"].([]byte)
		if string(value) != "abc" {
			t.Errorf("Parse result should not alias the input, got %q", value)
		}
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := proto.Parse([]byte{0x0a, 0x05, 'a'})
		if !errors.Is(err, wire.ErrTruncated) {
			t.Errorf("Expected ErrTruncated, got %v", err)
		}
	})
}

func TestProtoview_Unmarshal(t *testing.T) {
	var logs bytes.Buffer
	logger := zerolog.New(&logs).Level(zerolog.DebugLevel)
	proto := New(nil, WithLogger(logger), WithDecodeOptions(wire.WithMaxDepth(1)))

	phone := protowire.AppendTag(nil, 1, protowire.BytesType)
	phone = protowire.AppendString(phone, "+1202-555-1212")
	data := protowire.AppendTag(nil, 1, protowire.BytesType)
	data = protowire.AppendString(data, "maxwell")
	data = protowire.AppendTag(data, 3, protowire.BytesType)
	data = protowire.AppendBytes(data, phone)

	var person addressbook.Person
	if err := proto.Unmarshal(data, &person); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	expected := addressbook.Person{
		Name:   "maxwell",
		Phones: []addressbook.PhoneNumber{{Number: "+1202-555-1212"}},
	}
	if !reflect.DeepEqual(person, expected) {
		t.Errorf("Expected %+v, got %+v", expected, person)
	}
	if logs.Len() != 0 {
		t.Errorf("successful decode should not log, got %s", logs.String())
	}

	var book addressbook.AddressBook
	bookData := protowire.AppendTag(nil, 1, protowire.BytesType)
	bookData = protowire.AppendBytes(bookData, data)
	err := proto.Unmarshal(bookData, &book)
	if !errors.Is(err, wire.ErrMaxDepth) {
		t.Fatalf("Expected ErrMaxDepth, got %v", err)
	}
	if !strings.Contains(logs.String(), "decode failed") || !strings.Contains(logs.String(), "*addressbook.AddressBook") {
		t.Errorf("expected a debug entry for the failure, got %s", logs.String())
	}
}
