package formz

import (
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// Codec converts schema documents to and from bytes. ParseSchema and
// SchemaStream decode with it; Schema.Encode writes a document back out,
// so a schema edited in memory can round-trip to its source format.
// Implement this interface to carry schemas in other formats.
type Codec interface {
	// Marshal serializes a value into document bytes.
	Marshal(v any) ([]byte, error)

	// Unmarshal deserializes document bytes into a value.
	Unmarshal(data []byte, v any) error

	// ContentType returns the MIME type for observability and debugging.
	ContentType() string
}

// JSONCodec carries schema documents as JSON:
//
//	{"fields": [{"id": "name", "required": true}, {"id": "nickname"}]}
type JSONCodec struct{}

func (JSONCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (JSONCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (JSONCodec) ContentType() string {
	return "application/json"
}

var _ Codec = JSONCodec{}

// YAMLCodec carries schema documents as YAML:
//
//	fields:
//	  - id: name
//	    required: true
//	  - id: nickname
type YAMLCodec struct{}

func (YAMLCodec) Marshal(v any) ([]byte, error) {
	return yaml.Marshal(v)
}

func (YAMLCodec) Unmarshal(data []byte, v any) error {
	return yaml.Unmarshal(data, v)
}

func (YAMLCodec) ContentType() string {
	return "application/x-yaml"
}

var _ Codec = YAMLCodec{}
