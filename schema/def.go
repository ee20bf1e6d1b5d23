package schema

import (
	"encoding/json"

	"github.com/iancoleman/strcase"
)

// Kind classifies a declared field for schema generation. The zero value is
// Object, so unknown or unspecified kinds fall back to a bare object schema.
type Kind int

const (
	KindObject Kind = iota
	KindString
	KindBoolean
	KindNumber
	KindArray
	// KindMap is a map of string to string, emitted as an object schema with
	// string-typed additionalProperties.
	KindMap
)

// Field declares one property of a parameter or result type. The external
// JSON name is the camel-cased form of Name (first character lowercased);
// this is a hard contract, the wire surface is camelCase even where declared
// names are not.
type Field struct {
	Name        string
	Kind        Kind
	Items       Kind // element kind for KindArray
	Description string
	Enum        []string // string enum constraint, KindString only
	Fields      []Field  // nested schema for KindObject; empty means bare object
}

// Def declares the shape of a parameter or result type and generates its JSON
// Schema. Generation is deterministic: the same Def always yields
// byte-identical output.
type Def struct {
	Fields []Field

	// Required lists the declared names of required fields; they are
	// camel-cased on output. When nil, every field is required; an empty
	// non-nil slice marks every field optional.
	Required []string

	// Defaults is a prototype value whose serialized JSON form supplies
	// per-field defaults: a string default is included only if non-empty, an
	// array default only if empty, everything else verbatim. This keeps
	// large or complex defaults out of the schema.
	Defaults any
}

// Schema generates the JSON Schema object for the definition. The result is
// always an object schema.
func (d Def) Schema() *JSON {
	return buildObject(d.Fields, d.Required, defaultsMap(d.Defaults))
}

// defaultsMap serializes a prototype value and reads it back as a generic
// object keyed by the camelCase field names.
func defaultsMap(prototype any) map[string]any {
	if prototype == nil {
		return nil
	}
	data, err := json.Marshal(prototype)
	if err != nil {
		return nil
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil
	}
	return m
}

func buildObject(fields []Field, required []string, defaults map[string]any) *JSON {
	s := &JSON{
		Type:       Object,
		Properties: make(map[string]*JSON, len(fields)),
	}

	for _, field := range fields {
		jsonName := strcase.ToLowerCamel(field.Name)
		s.Properties[jsonName] = buildField(field, defaults[jsonName])
	}

	if len(required) > 0 {
		s.Required = make([]string, 0, len(required))
		for _, name := range required {
			s.Required = append(s.Required, strcase.ToLowerCamel(name))
		}
	} else if required == nil && len(fields) > 0 {
		s.Required = make([]string, 0, len(fields))
		for _, field := range fields {
			s.Required = append(s.Required, strcase.ToLowerCamel(field.Name))
		}
	}

	return s
}

func buildField(field Field, defaultValue any) *JSON {
	var s *JSON

	switch field.Kind {
	case KindString:
		s = &JSON{Type: String, Enum: field.Enum}
	case KindBoolean:
		s = &JSON{Type: Boolean}
	case KindNumber:
		s = &JSON{Type: Number}
	case KindArray:
		s = &JSON{Type: Array, Items: &JSON{Type: itemType(field.Items)}}
	case KindMap:
		s = &JSON{Type: Object, AdditionalProperties: &JSON{Type: String}}
	default:
		if len(field.Fields) > 0 {
			nested, _ := defaultValue.(map[string]any)
			s = buildObject(field.Fields, nil, nested)
		} else {
			s = &JSON{Type: Object}
		}
	}

	s.Description = field.Description

	if v, ok := includeDefault(field, defaultValue); ok {
		s.Default = v
	}

	return s
}

// itemType maps an array element kind to its schema type. Item schemas are
// limited to primitive detection; anything else defaults to object.
func itemType(kind Kind) Type {
	switch kind {
	case KindString:
		return String
	case KindBoolean:
		return Boolean
	case KindNumber:
		return Number
	default:
		return Object
	}
}

// includeDefault applies the default-inclusion rules to the value read back
// from the prototype.
func includeDefault(field Field, value any) (any, bool) {
	if value == nil {
		return nil, false
	}
	switch v := value.(type) {
	case string:
		return v, v != ""
	case []any:
		return v, len(v) == 0
	case map[string]any:
		// A nested field list already carries its own schema; only bare
		// object fields embed their prototype as a default.
		if len(field.Fields) > 0 {
			return nil, false
		}
		return v, len(v) > 0
	default:
		return v, true
	}
}
