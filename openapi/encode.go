package openapi

import (
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/goccy/go-json"
	"golang.org/x/xerrors"
	"gopkg.in/yaml.v3"
)

func MarshalJSON(doc *openapi3.T) ([]byte, error) {
	out, err := json.Marshal(doc)
	if err != nil {
		return nil, xerrors.Errorf("encoding openapi document: %w", err)
	}
	return out, nil
}

// MarshalYAML re-encodes the JSON form of doc as block-style YAML, keeping the
// key order of the JSON encoding.
func MarshalYAML(doc *openapi3.T) ([]byte, error) {
	data, err := MarshalJSON(doc)
	if err != nil {
		return nil, err
	}

	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, xerrors.Errorf("converting openapi document to yaml: %w", err)
	}
	resetStyle(&node)

	out, err := yaml.Marshal(&node)
	if err != nil {
		return nil, xerrors.Errorf("encoding openapi document as yaml: %w", err)
	}
	return out, nil
}

func resetStyle(node *yaml.Node) {
	node.Style = 0
	for _, child := range node.Content {
		resetStyle(child)
	}
}
