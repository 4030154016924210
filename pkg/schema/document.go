package schema

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Document wraps a raw payload (YAML or JSON) and its origin.
type Document struct {
	source Source
	raw    []byte
}

// NewDocument validates the inputs and copies raw.
func NewDocument(src Source, raw []byte) (Document, error) {
	if src == nil {
		return Document{}, errors.New("schema: source is required")
	}
	if len(raw) == 0 {
		return Document{}, errors.New("schema: raw document is empty")
	}

	clone := append([]byte(nil), raw...)
	return Document{source: src, raw: clone}, nil
}

// ReadFile loads a payload document from disk.
func ReadFile(path string) (Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("schema: read %s: %w", path, err)
	}
	return NewDocument(SourceFromFile(path), raw)
}

// ReadFS loads a payload document from fsys.
func ReadFS(fsys fs.FS, name string) (Document, error) {
	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		return Document{}, fmt.Errorf("schema: read %s: %w", name, err)
	}
	return NewDocument(SourceFromFS(name), raw)
}

func (d Document) Source() Source {
	return d.source
}

// Raw returns a copy of the payload.
func (d Document) Raw() []byte {
	return append([]byte(nil), d.raw...)
}

func (d Document) Location() string {
	if d.source == nil {
		return ""
	}
	return d.source.Location()
}

// State decodes the payload into a FormState. The document must be a flat
// mapping; scalar values are kept as written and nested values are rejected.
// JSON input is accepted since it parses as YAML.
func (d Document) State() (FormState, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(d.raw, &node); err != nil {
		return nil, fmt.Errorf("schema: decode %s: %w", d.Location(), err)
	}
	if node.Kind != yaml.DocumentNode || len(node.Content) == 0 || node.Content[0].Kind != yaml.MappingNode {
		return nil, fmt.Errorf("schema: decode %s: payload must be a mapping", d.Location())
	}

	mapping := node.Content[0]
	state := make(FormState, len(mapping.Content)/2)
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		key, value := mapping.Content[i], mapping.Content[i+1]
		if value.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("schema: decode %s: field %q must be a scalar", d.Location(), key.Value)
		}
		name := strings.TrimSpace(key.Value)
		if name == "" {
			continue
		}
		if value.Tag == "!!null" {
			state[name] = ""
			continue
		}
		state[name] = value.Value
	}
	return state, nil
}
