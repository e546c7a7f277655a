package registry

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/anirudhraja/protoview/schema"
)

// Registry stores message and enum labels loaded from .proto files. The
// decoder never consults it; it only names fields when dumping payloads.
type Registry struct {
	// ProtoDirectories are searched, in order, for imported files
	ProtoDirectories []string

	files    map[string]*schema.ProtoFile // resolved path -> file
	messages map[string]*schema.Message   // fully qualified name -> message
	enums    map[string]*schema.Enum      // fully qualified name -> enum
	logger   zerolog.Logger
}

// NewRegistry creates an empty registry searching dirs for imports
func NewRegistry(dirs []string, logger zerolog.Logger) *Registry {
	if len(dirs) == 0 {
		dirs = []string{"."}
	}
	return &Registry{
		ProtoDirectories: dirs,
		files:            make(map[string]*schema.ProtoFile),
		messages:         make(map[string]*schema.Message),
		enums:            make(map[string]*schema.Enum),
		logger:           logger.With().Str("component", "registry").Logger(),
	}
}

// LoadSchemaFromFile loads protoFile and everything it imports, then
// resolves field type references across all loaded files.
func (r *Registry) LoadSchemaFromFile(protoFile string) error {
	paths, err := r.getAllProtoInfo(protoFile)
	if err != nil {
		return errors.Wrapf(err, "failed to load %s", protoFile)
	}

	for _, p := range paths {
		r.registerNames(r.files[p])
	}

	for _, p := range paths {
		if err := r.resolveFile(r.files[p]); err != nil {
			return errors.Wrapf(err, "failed to resolve %s", p)
		}
	}

	r.logger.Debug().
		Str("file", protoFile).
		Int("files", len(paths)).
		Int("messages", len(r.messages)).
		Int("enums", len(r.enums)).
		Msg("schema loaded")
	return nil
}

// registerNames registers all message and enum names of a file
func (r *Registry) registerNames(protoFile *schema.ProtoFile) {
	for _, msg := range protoFile.Messages {
		r.registerMessage(msg)
	}
	for _, enum := range protoFile.Enums {
		r.enums[enum.FullName] = enum
	}
}

// registerMessage registers msg and its nested messages and enums
func (r *Registry) registerMessage(msg *schema.Message) {
	r.messages[msg.FullName] = msg
	for _, nested := range msg.NestedTypes {
		r.registerMessage(nested)
	}
	for _, enum := range msg.NestedEnums {
		r.enums[enum.FullName] = enum
	}
}

// resolveFile fills in Kind and fully qualified TypeName for every field
func (r *Registry) resolveFile(protoFile *schema.ProtoFile) error {
	for _, msg := range protoFile.Messages {
		if err := r.resolveMessage(msg); err != nil {
			return err
		}
	}
	return nil
}

func (r *Registry) resolveMessage(msg *schema.Message) error {
	entities := r.allEntities()
	for _, field := range msg.Fields {
		if field.Kind == schema.KindMap || schema.IsScalar(field.TypeName) {
			continue
		}
		if field.Kind != "" {
			continue // already resolved through another load
		}

		fullName, err := getReferencedType(field.TypeName, msg.FullName, entities)
		if err != nil {
			if strings.HasPrefix(strings.TrimPrefix(field.TypeName, "."), "google.protobuf.") {
				r.logger.Warn().Str("message", msg.FullName).Str("field", field.Name).
					Str("type", field.TypeName).Msg("well-known type not loaded, field left unlabelled")
				continue
			}
			return errors.Wrapf(err, "field %s.%s", msg.FullName, field.Name)
		}

		field.TypeName = fullName
		if _, ok := r.enums[fullName]; ok {
			field.Kind = schema.KindEnum
		} else {
			field.Kind = schema.KindMessage
		}
	}

	for _, nested := range msg.NestedTypes {
		if err := r.resolveMessage(nested); err != nil {
			return err
		}
	}
	return nil
}

func (r *Registry) allEntities() map[string]struct{} {
	entities := make(map[string]struct{}, len(r.messages)+len(r.enums))
	for name := range r.messages {
		entities[name] = struct{}{}
	}
	for name := range r.enums {
		entities[name] = struct{}{}
	}
	return entities
}

// GetMessage retrieves a message definition by name. A name without its
// package prefix must match exactly one loaded message.
func (r *Registry) GetMessage(name string) (*schema.Message, error) {
	return lookup(r.messages, "message", name)
}

// GetEnum retrieves an enum definition by name
func (r *Registry) GetEnum(name string) (*schema.Enum, error) {
	return lookup(r.enums, "enum", name)
}

func lookup[V any](defs map[string]V, kind, name string) (V, error) {
	if def, exists := defs[name]; exists {
		return def, nil
	}

	// Try without package prefix
	var matches []string
	for fullName := range defs {
		if strings.HasSuffix(fullName, "."+name) {
			matches = append(matches, fullName)
		}
	}

	var zero V
	switch len(matches) {
	case 0:
		return zero, errors.Errorf("%s not found: %s", kind, name)
	case 1:
		return defs[matches[0]], nil
	default:
		sort.Strings(matches)
		return zero, errors.Errorf("%s %s is ambiguous: %s", kind, name, strings.Join(matches, ", "))
	}
}

// ListMessages returns all registered message names, sorted
func (r *Registry) ListMessages() []string {
	names := make([]string, 0, len(r.messages))
	for name := range r.messages {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ListEnums returns all registered enum names, sorted
func (r *Registry) ListEnums() []string {
	names := make([]string, 0, len(r.enums))
	for name := range r.enums {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// mapEntryMessage creates the synthetic entry message for a map field
func mapEntryMessage(parent, mapFieldName, keyType, valueType string) *schema.Message {
	entryName := toCamel(mapFieldName) + "Entry"
	return &schema.Message{
		Name:     entryName,
		FullName: parent + "." + entryName,
		Fields: []*schema.Field{
			{Name: "key", Number: 1, Label: schema.LabelOptional, Kind: schema.KindScalar, TypeName: keyType},
			{Name: "value", Number: 2, Label: schema.LabelOptional, TypeName: valueType},
		},
	}
}
