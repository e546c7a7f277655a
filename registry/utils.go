package registry

import (
	"bytes"
	"os"
	"path"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	protoparser "github.com/yoheimuta/go-protoparser/v4"
	protoparserparser "github.com/yoheimuta/go-protoparser/v4/parser"

	"github.com/anirudhraja/protoview/schema"
)

// getAllProtoInfo uses DFS to parse protoFile and its imports, returning the
// resolved paths of every file visited
func (r *Registry) getAllProtoInfo(protoFile string) ([]string, error) {
	visited := make(map[string]struct{}) // to make sure we don't end up in a loop
	result := make([]string, 0)

	var dfs func(protoFile string) error
	dfs = func(protoFile string) error {
		if _, ok := visited[protoFile]; ok {
			return nil
		}
		visited[protoFile] = struct{}{}
		result = append(result, protoFile)

		protoBytes, err := os.ReadFile(protoFile)
		if err != nil {
			return errors.Wrap(err, "failed to read file")
		}
		parsedBody, err := protoparser.Parse(bytes.NewBuffer(protoBytes), protoparser.WithFilename(protoFile))
		if err != nil {
			return errors.Wrapf(err, "failed to parse %s", protoFile)
		}

		converted, imports, err := convertProto(path.Base(protoFile), parsedBody)
		if err != nil {
			return errors.Wrapf(err, "failed to convert %s", protoFile)
		}
		r.files[protoFile] = converted

		for _, importPath := range imports {
			if strings.HasPrefix(importPath, "google/protobuf/") {
				r.logger.Debug().Str("import", importPath).Msg("skipping well-known import")
				continue
			}
			fullImportPath, err := r.findIfProtoExists(importPath)
			if err != nil {
				return err
			}
			if err = dfs(fullImportPath); err != nil {
				return err
			}
		}
		return nil
	}

	protoPath, err := r.findIfProtoExists(protoFile)
	if err != nil {
		return nil, err
	}
	if err := dfs(protoPath); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *Registry) findIfProtoExists(protoPath string) (string, error) {
	protoPath = strings.Trim(protoPath, `"`)
	if !strings.HasSuffix(protoPath, ".proto") {
		return "", errors.Errorf("is not a .proto file: %s", protoPath)
	}

	candidates := []string{protoPath}
	for _, dir := range r.ProtoDirectories {
		candidates = append(candidates, path.Join(dir, protoPath))
	}

	var lastErr error
	for _, candidate := range candidates {
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, nil
		}
		lastErr = err
	}
	if lastErr == nil {
		return "", errors.Errorf("path does not exist: %s", protoPath)
	}
	return "", errors.Wrapf(lastErr, "path does not exist: %s", protoPath)
}

// convertProto turns a parsed file into label descriptors and returns its
// import paths
func convertProto(name string, proto *protoparserparser.Proto) (*schema.ProtoFile, []string, error) {
	file := &schema.ProtoFile{
		Name:   name,
		Syntax: "proto2",
	}
	if proto.Syntax != nil {
		file.Syntax = strings.Trim(proto.Syntax.ProtobufVersion, `"'`)
	}

	// Package must be known before message names can be qualified.
	for _, body := range proto.ProtoBody {
		if pkg, ok := body.(*protoparserparser.Package); ok {
			file.Package = pkg.Name
		}
	}

	var imports []string
	for _, body := range proto.ProtoBody {
		switch b := body.(type) {
		case *protoparserparser.Import:
			imports = append(imports, strings.Trim(b.Location, `"'`))
		case *protoparserparser.Message:
			msg, err := convertMessage(file.Package, b)
			if err != nil {
				return nil, nil, err
			}
			file.Messages = append(file.Messages, msg)
		case *protoparserparser.Enum:
			enum, err := convertEnum(file.Package, b)
			if err != nil {
				return nil, nil, err
			}
			file.Enums = append(file.Enums, enum)
		}
	}
	file.Imports = imports
	return file, imports, nil
}

func convertMessage(scope string, m *protoparserparser.Message) (*schema.Message, error) {
	msg := &schema.Message{
		Name:     m.MessageName,
		FullName: qualify(scope, m.MessageName),
	}

	addField := func(name, number, typeName string, label schema.FieldLabel) error {
		num, err := strconv.ParseUint(number, 0, 64)
		if err != nil {
			return errors.Wrapf(err, "field %s.%s has invalid number %q", msg.FullName, name, number)
		}
		field := &schema.Field{Name: name, Number: num, Label: label, TypeName: typeName}
		if schema.IsScalar(typeName) {
			field.Kind = schema.KindScalar
		}
		msg.Fields = append(msg.Fields, field)
		return nil
	}

	for _, body := range m.MessageBody {
		switch b := body.(type) {
		case *protoparserparser.Field:
			label := schema.LabelOptional
			if b.IsRepeated {
				label = schema.LabelRepeated
			} else if b.IsRequired {
				label = schema.LabelRequired
			}
			if err := addField(b.FieldName, b.FieldNumber, b.Type, label); err != nil {
				return nil, err
			}
		case *protoparserparser.Oneof:
			for _, of := range b.OneofFields {
				if err := addField(of.FieldName, of.FieldNumber, of.Type, schema.LabelOptional); err != nil {
					return nil, err
				}
			}
		case *protoparserparser.MapField:
			entry := mapEntryMessage(msg.FullName, b.MapName, b.KeyType, b.Type)
			if schema.IsScalar(b.Type) {
				entry.Fields[1].Kind = schema.KindScalar
			}
			msg.NestedTypes = append(msg.NestedTypes, entry)
			if err := addField(b.MapName, b.FieldNumber, entry.FullName, schema.LabelRepeated); err != nil {
				return nil, err
			}
			msg.Fields[len(msg.Fields)-1].Kind = schema.KindMap
		case *protoparserparser.Message:
			nested, err := convertMessage(msg.FullName, b)
			if err != nil {
				return nil, err
			}
			msg.NestedTypes = append(msg.NestedTypes, nested)
		case *protoparserparser.Enum:
			enum, err := convertEnum(msg.FullName, b)
			if err != nil {
				return nil, err
			}
			msg.NestedEnums = append(msg.NestedEnums, enum)
		}
	}
	return msg, nil
}

func convertEnum(scope string, e *protoparserparser.Enum) (*schema.Enum, error) {
	enum := &schema.Enum{
		Name:     e.EnumName,
		FullName: qualify(scope, e.EnumName),
	}
	for _, body := range e.EnumBody {
		ef, ok := body.(*protoparserparser.EnumField)
		if !ok {
			continue
		}
		num, err := strconv.ParseInt(ef.Number, 0, 32)
		if err != nil {
			return nil, errors.Wrapf(err, "enum value %s.%s has invalid number %q", enum.FullName, ef.Ident, ef.Number)
		}
		enum.Values = append(enum.Values, &schema.EnumValue{Name: ef.Ident, Number: int32(num)})
	}
	return enum, nil
}

func qualify(scope, name string) string {
	if scope == "" {
		return name
	}
	return scope + "." + name
}

// toCamel converts snake_case to CamelCase, as protoc names map entries
func toCamel(s string) string {
	var out strings.Builder
	upperNext := true
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '_' {
			upperNext = true
			continue
		}
		if upperNext && c >= 'a' && c <= 'z' {
			c = c - 'a' + 'A'
		}
		upperNext = false
		out.WriteByte(c)
	}
	return out.String()
}

/*
getReferencedType returns the fully qualified name for any referenced type,
be it top level, nested or imported. If not found it returns an error.
Ref - https://github.com/protocolbuffers/protobuf/blob/b7a5772caf08d62a20fd1bca258f501fa4db022c/src/google/protobuf/descriptor.proto#L186-L191
*/
func getReferencedType(typeName, prefix string, allResolvedEntities map[string]struct{}) (string, error) {
	// check if fully qualifed prefixed by dot
	if strings.HasPrefix(typeName, ".") {
		return getFullyQualifiedType(typeName, allResolvedEntities)
	}
	// try resolving from inner entities up till the parent package
	if result, ok := splitNameAndCheck(typeName, prefix, allResolvedEntities); ok {
		return result, nil
	}
	//  check if the entity is referenced to other packages via packageName
	if _, ok := allResolvedEntities[typeName]; ok {
		return typeName, nil
	}
	return "", errors.Errorf("unable to resolve type name: %s", typeName)
}

// splitNameAndCheck walks from prefix outwards, trying prefix + "." + typeName
// at every level
func splitNameAndCheck(typeName, prefix string, allResolvedEntities map[string]struct{}) (string, bool) {
	prefixSplit := strings.Split(prefix, ".")

	for len(prefixSplit) > 0 && prefixSplit[0] != "" {
		entityName := strings.Join(prefixSplit, ".") + "." + typeName
		if _, ok := allResolvedEntities[entityName]; ok {
			return entityName, true
		}
		// Omit the last element in each iteration as we go level above to outer entity
		prefixSplit = prefixSplit[:len(prefixSplit)-1]
	}
	return "", false
}

func getFullyQualifiedType(typeName string, allResolvedEntities map[string]struct{}) (string, error) {
	typeName = strings.TrimPrefix(typeName, ".")
	if _, ok := allResolvedEntities[typeName]; ok {
		return typeName, nil
	}
	return "", errors.Errorf("unable to resolve fully qualified type name: .%s", typeName)
}
