package store

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/cairn/pkg/types"
)

// Encoding names accepted by ForEncoding.
const (
	EncodingYAML = "yaml"
	EncodingJSON = "json"
)

// Codec encodes and decodes documents. Exactly two implementations
// exist (YAML and JSON); one is selected at startup from configuration
// and used for every document in the project directory.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error

	// Ext returns the file extension for documents written with this
	// codec, without the leading dot.
	Ext() string
}

// ForEncoding returns the codec for the given encoding name.
// Returns types.ErrUnknownEncoding for anything other than "yaml" or
// "json".
func ForEncoding(name string) (Codec, error) {
	switch name {
	case EncodingYAML:
		return YAMLCodec{}, nil
	case EncodingJSON:
		return JSONCodec{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", types.ErrUnknownEncoding, name)
	}
}

// YAMLCodec encodes documents as YAML.
type YAMLCodec struct{}

func (YAMLCodec) Marshal(v any) ([]byte, error) {
	return yaml.Marshal(v)
}

func (YAMLCodec) Unmarshal(data []byte, v any) error {
	return yaml.Unmarshal(data, v)
}

func (YAMLCodec) Ext() string { return "yaml" }

// JSONCodec encodes documents as indented JSON.
type JSONCodec struct{}

func (JSONCodec) Marshal(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

func (JSONCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (JSONCodec) Ext() string { return "json" }
