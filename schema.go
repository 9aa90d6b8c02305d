package formz

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// validate is the shared validator instance for schema documents.
var validate = validator.New()

// Definition declares one field in a schema document.
type Definition struct {
	ID       string `json:"id" yaml:"id" validate:"required"`
	Required bool   `json:"required" yaml:"required"`
}

// Schema is a parsed set of field definitions. Load one from JSON or YAML
// with ParseSchema, then materialize live states with FieldSet.
type Schema struct {
	Fields []Definition `json:"fields" yaml:"fields" validate:"min=1,dive"`
}

// ParseSchema decodes a schema document with the given codec and validates
// its structure. Every definition needs a non-empty identifier.
//
// Example document (YAML):
//
//	fields:
//	  - id: name
//	    required: true
//	  - id: nickname
func ParseSchema(data []byte, codec Codec) (*Schema, error) {
	var schema Schema
	if err := codec.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("unmarshal schema: %w", err)
	}
	if err := validate.Struct(schema); err != nil {
		return nil, fmt.Errorf("invalid schema: %w", err)
	}
	return &schema, nil
}

// Encode serializes the schema back into a document with the given codec.
// An invalid schema (empty field list, missing identifiers) is rejected
// rather than written out.
func (s *Schema) Encode(codec Codec) ([]byte, error) {
	if err := validate.Struct(s); err != nil {
		return nil, fmt.Errorf("invalid schema: %w", err)
	}
	data, err := codec.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	return data, nil
}

// FieldSet constructs fresh FieldStates for every definition, in document
// order. Duplicate identifiers are rejected.
func (s *Schema) FieldSet() (*FieldSet, error) {
	states := make([]*FieldState, 0, len(s.Fields))
	for _, def := range s.Fields {
		fs, err := NewFieldState(Field{ID: def.ID, Required: def.Required})
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", def.ID, err)
		}
		states = append(states, fs)
	}
	return NewFieldSet(states...)
}
