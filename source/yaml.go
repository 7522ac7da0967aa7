package source

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	goform "github.com/reoring/goform"
)

// YAML returns a Driver backed by gopkg.in/yaml.v3. An empty document
// decodes to an empty record.
func YAML() Driver { return driverYAML{} }

type driverYAML struct{}

func (driverYAML) Name() string { return "yaml.v3" }

func (driverYAML) Decode(r io.Reader) (goform.Record, error) {
	var node yaml.Node
	if err := yaml.NewDecoder(r).Decode(&node); err != nil {
		if errors.Is(err, io.EOF) {
			return goform.Record{}, nil
		}
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	if len(node.Content) == 0 {
		return goform.Record{}, nil
	}
	doc := node.Content[0]
	if doc.Kind != yaml.MappingNode {
		return nil, ErrNotObject
	}
	var m map[string]any
	if err := doc.Decode(&m); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	if m == nil {
		m = map[string]any{}
	}
	return goform.Record(m), nil
}
