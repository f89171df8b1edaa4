package catalog

import (
	"fmt"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// The wire form of a catalog is a JSON array of [text, value, filterKey]
// triples. It is the shape embedded in page scripts, served by the preview
// component, and accepted in catalog files.

// MarshalJSON encodes the entry as a three-element array.
func (e Entry) MarshalJSON() ([]byte, error) {
	return json.Marshal([3]string{e.Text, e.Value, e.FilterKey})
}

// UnmarshalJSON decodes a three-element array into the entry. Arrays of any
// other length are rejected.
func (e *Entry) UnmarshalJSON(data []byte) error {
	var triple []string
	if err := json.Unmarshal(data, &triple); err != nil {
		return fmt.Errorf("catalog: entry must be a [text, value, filterKey] triple: %w", err)
	}
	if len(triple) != 3 {
		return fmt.Errorf("catalog: entry has %d elements, want 3", len(triple))
	}
	e.Text, e.Value, e.FilterKey = triple[0], triple[1], triple[2]
	return nil
}

// UnmarshalYAML accepts the same triple form from YAML documents. Elements are
// read as raw scalars so unquoted numeric values and keys survive intact.
func (e *Entry) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.SequenceNode || len(node.Content) != 3 {
		return fmt.Errorf("catalog: line %d: entry must be a [text, value, filterKey] triple", node.Line)
	}
	fields := [3]*string{&e.Text, &e.Value, &e.FilterKey}
	for i, child := range node.Content {
		if child.Kind != yaml.ScalarNode {
			return fmt.Errorf("catalog: line %d: entry element %d must be a scalar", child.Line, i)
		}
		*fields[i] = child.Value
	}
	return nil
}

// Decode parses a catalog from its wire form.
func Decode(data []byte) (Catalog, error) {
	var c Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("catalog: decode: %w", err)
	}
	return c, nil
}

// Encode renders the catalog in its wire form. A nil catalog encodes as [].
func Encode(c Catalog) ([]byte, error) {
	if c == nil {
		c = Catalog{}
	}
	data, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("catalog: encode: %w", err)
	}
	return data, nil
}
