package schema

// ProtoFile represents a single .proto file
type ProtoFile struct {
	Name     string     `json:"name"`     // file.proto
	Package  string     `json:"package"`  // package name
	Syntax   string     `json:"syntax"`   // proto2 or proto3
	Imports  []string   `json:"imports"`  // imported file paths
	Messages []*Message `json:"messages"` // message definitions
	Enums    []*Enum    `json:"enums"`    // enum definitions
}

// Message represents a protobuf message definition. It only labels field
// numbers for display; decoding never depends on it.
type Message struct {
	Name        string     `json:"name"`         // "Person"
	FullName    string     `json:"full_name"`    // "tutorial.Person"
	Fields      []*Field   `json:"fields"`       // message fields, oneof members included
	NestedTypes []*Message `json:"nested_types"` // nested messages
	NestedEnums []*Enum    `json:"nested_enums"` // nested enums
}

// FieldByNumber returns the field labelled with num, or nil
func (m *Message) FieldByNumber(num uint64) *Field {
	if m == nil {
		return nil
	}
	for _, f := range m.Fields {
		if f.Number == num {
			return f
		}
	}
	return nil
}

// Field represents a message field
type Field struct {
	Name     string     `json:"name"`      // "phone"
	Number   uint64     `json:"number"`    // 3
	Label    FieldLabel `json:"label"`     // optional, required, repeated
	Kind     TypeKind   `json:"kind"`      // scalar, message, enum, map
	TypeName string     `json:"type_name"` // "string", "tutorial.PhoneNumber"
}

// FieldLabel represents field labels
type FieldLabel string

const (
	LabelOptional FieldLabel = "optional"
	LabelRequired FieldLabel = "required"
	LabelRepeated FieldLabel = "repeated"
)

// TypeKind represents the kind of field type
type TypeKind string

const (
	KindScalar  TypeKind = "scalar"
	KindMessage TypeKind = "message"
	KindEnum    TypeKind = "enum"
	KindMap     TypeKind = "map"
)

var scalarTypes = map[string]struct{}{
	"double":   {},
	"float":    {},
	"int64":    {},
	"uint64":   {},
	"int32":    {},
	"fixed64":  {},
	"fixed32":  {},
	"bool":     {},
	"string":   {},
	"bytes":    {},
	"uint32":   {},
	"sfixed32": {},
	"sfixed64": {},
	"sint32":   {},
	"sint64":   {},
}

// IsScalar reports whether typeName is a built-in scalar type
func IsScalar(typeName string) bool {
	_, ok := scalarTypes[typeName]
	return ok
}

// Enum represents an enum definition
type Enum struct {
	Name     string       `json:"name"`      // "PhoneType"
	FullName string       `json:"full_name"` // "tutorial.Person.PhoneType"
	Values   []*EnumValue `json:"values"`    // enum values
}

// ValueName returns the name of the enum value numbered num
func (e *Enum) ValueName(num int32) (string, bool) {
	if e == nil {
		return "", false
	}
	for _, v := range e.Values {
		if v.Number == num {
			return v.Name, true
		}
	}
	return "", false
}

// EnumValue represents an enum value
type EnumValue struct {
	Name   string `json:"name"`   // "MOBILE"
	Number int32  `json:"number"` // 0
}
