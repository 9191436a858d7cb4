package jsonschema

import (
	json "github.com/goccy/go-json"
)

// Draft07 is the meta-schema URI of the only draft the generator targets.
const Draft07 = "http://json-schema.org/draft-07/schema#"

// DefinitionsPath prefixes every reference into the definitions table.
const DefinitionsPath = "#/definitions/"

// Schema is a JSON Schema (draft-07) document or subschema.
// Unset fields are omitted on output; an empty Schema accepts any value.
type Schema struct {
	// Root
	MetaSchema string `json:"$schema,omitempty"`
	Ref        string `json:"$ref,omitempty"`

	// Metadata
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Default     any    `json:"default,omitempty"`
	ReadOnly    bool   `json:"readOnly,omitempty"`
	// WriteOnly marks a representation that is accepted on input but never produced on output.
	WriteOnly bool `json:"writeOnly,omitempty"`

	// Core
	Type            string `json:"type,omitempty"`
	Format          string `json:"format,omitempty"`
	ContentEncoding string `json:"contentEncoding,omitempty"`

	// Number
	Minimum *float64 `json:"minimum,omitempty"`
	Maximum *float64 `json:"maximum,omitempty"`

	// Object
	Properties map[string]*Schema `json:"properties,omitempty"`
	Required   []string           `json:"required,omitempty"`
	// AdditionalProperties is either a bool or a *Schema.
	AdditionalProperties any `json:"additionalProperties,omitempty"`

	// Array
	Items *Schema `json:"items,omitempty"`
	// TupleItems holds one schema per position. When set it is written as the
	// draft-07 array form of "items" and Items is ignored.
	TupleItems  []*Schema `json:"-"`
	MinItems    *uint32   `json:"minItems,omitempty"`
	MaxItems    *uint32   `json:"maxItems,omitempty"`
	UniqueItems bool      `json:"uniqueItems,omitempty"`

	// Union
	AnyOf []*Schema `json:"anyOf,omitempty"`
	OneOf []*Schema `json:"oneOf,omitempty"`

	// Definitions is only populated on root documents.
	Definitions map[string]*Schema `json:"definitions,omitempty"`
}

// MarshalJSON writes TupleItems as the positional "items" array. Names
// such as "Map<K>" are written without HTML escaping.
func (s Schema) MarshalJSON() ([]byte, error) {
	type plain Schema
	if len(s.TupleItems) == 0 {
		return json.MarshalNoEscape(plain(s))
	}
	s.Items = nil
	b, err := json.MarshalNoEscape(plain(s))
	if err != nil {
		return nil, err
	}
	items, err := json.MarshalNoEscape(s.TupleItems)
	if err != nil {
		return nil, err
	}
	// Splice "items" into the object b, which may be "{}".
	out := make([]byte, 0, len(b)+len(items)+10)
	out = append(out, b[:len(b)-1]...)
	if len(b) > 2 {
		out = append(out, ',')
	}
	out = append(out, `"items":`...)
	out = append(out, items...)
	return append(out, '}'), nil
}

// NewRef returns a schema that points at the named definition.
func NewRef(name string) *Schema { return &Schema{Ref: DefinitionsPath + name} }

// IsRef reports whether s is a pointer into the definitions table.
func (s *Schema) IsRef() bool { return s != nil && s.Ref != "" }

// RefName returns the definition name s points at.
func (s *Schema) RefName() (string, bool) {
	if s == nil || len(s.Ref) <= len(DefinitionsPath) || s.Ref[:len(DefinitionsPath)] != DefinitionsPath {
		return "", false
	}
	return s.Ref[len(DefinitionsPath):], true
}

// Float returns a pointer to v for Minimum/Maximum.
func Float(v float64) *float64 { return &v }

// Length returns a pointer to n for MinItems/MaxItems.
func Length(n uint32) *uint32 { return &n }
