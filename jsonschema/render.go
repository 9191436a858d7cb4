package jsonschema

import (
	"bytes"
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Marshal renders s as compact JSON. '<' and '>' in names are kept as is.
func Marshal(s *Schema) ([]byte, error) { return json.MarshalNoEscape(s) }

// MarshalIndent renders s as JSON indented by indent spaces.
func MarshalIndent(s *Schema, indent int) ([]byte, error) {
	if indent <= 0 {
		return Marshal(s)
	}
	return json.MarshalIndentWithOption(s, "", strings.Repeat(" ", indent), json.DisableHTMLEscape())
}

// MarshalYAML renders s as block-style YAML. Key order matches the JSON
// rendering because the document passes through a yaml.Node.
func MarshalYAML(s *Schema, indent int) ([]byte, error) {
	raw, err := Marshal(s)
	if err != nil {
		return nil, err
	}
	var node yaml.Node
	if err := yaml.Unmarshal(raw, &node); err != nil {
		return nil, fmt.Errorf("jsonschema: yaml decode: %w", err)
	}
	blockStyle(&node)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	if indent > 0 {
		enc.SetIndent(indent)
	}
	if err := enc.Encode(&node); err != nil {
		return nil, fmt.Errorf("jsonschema: yaml encode: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// blockStyle clears the flow and quoting styles JSON input leaves behind.
// The encoder still quotes scalars that would not read back as strings.
func blockStyle(n *yaml.Node) {
	switch n.Kind {
	case yaml.MappingNode, yaml.SequenceNode:
		n.Style &^= yaml.FlowStyle
	case yaml.ScalarNode:
		n.Style &^= yaml.DoubleQuotedStyle
	}
	for _, c := range n.Content {
		blockStyle(c)
	}
}
