// Package schema describes and generates JSON Schema documents for tool
// parameter and result types.
package schema

const URL = "http://json-schema.org/draft-07/schema#"

type Type string

const (
	String  Type = "string"
	Boolean Type = "boolean"
	Number  Type = "number"
	Array   Type = "array"
	Object  Type = "object"
)

// JSON is a way to describe a JSON Schema
type JSON struct {
	Type                 Type             `json:"type,omitzero"`
	Description          string           `json:"description,omitzero"`
	Properties           map[string]*JSON `json:"properties,omitzero"`
	Items                *JSON            `json:"items,omitzero"`
	Enum                 []string         `json:"enum,omitzero"`
	Required             []string         `json:"required,omitzero"`
	AdditionalProperties *JSON            `json:"additionalProperties,omitzero"`
	Default              any              `json:"default,omitzero"`
	Schema               string           `json:"$schema,omitzero"`
}
