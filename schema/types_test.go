package schema

import "testing"

func TestMessage_FieldByNumber(t *testing.T) {
	msg := &Message{
		Name: "Person",
		Fields: []*Field{
			{Name: "name", Number: 1, Kind: KindScalar, TypeName: "string"},
			{Name: "id", Number: 2, Kind: KindScalar, TypeName: "uint64"},
		},
	}

	if f := msg.FieldByNumber(2); f == nil || f.Name != "id" {
		t.Errorf("expected field id, got %+v", f)
	}
	if f := msg.FieldByNumber(3); f != nil {
		t.Errorf("expected nil for unlabelled field, got %+v", f)
	}

	var missing *Message
	if f := missing.FieldByNumber(1); f != nil {
		t.Errorf("nil message should have no fields, got %+v", f)
	}
}

func TestEnum_ValueName(t *testing.T) {
	enum := &Enum{
		Name: "PhoneType",
		Values: []*EnumValue{
			{Name: "MOBILE", Number: 0},
			{Name: "HOME", Number: 1},
		},
	}

	if name, ok := enum.ValueName(1); !ok || name != "HOME" {
		t.Errorf("expected HOME, got %q (%v)", name, ok)
	}
	if _, ok := enum.ValueName(9); ok {
		t.Error("value 9 should be unknown")
	}
}

func TestIsScalar(t *testing.T) {
	for _, name := range []string{"string", "uint64", "sfixed32", "bytes"} {
		if !IsScalar(name) {
			t.Errorf("%s should be scalar", name)
		}
	}
	for _, name := range []string{"Person", "tutorial.PhoneNumber", ""} {
		if IsScalar(name) {
			t.Errorf("%q should not be scalar", name)
		}
	}
}
