package docs

import (
	"fmt"

	"github.com/goccy/go-yaml"
)

// Document is a service definition: named types and the operations using
// them, declared in the param notation.
type Document struct {
	Service    string       `yaml:"service"`
	Namespace  string       `yaml:"namespace,omitempty"`
	Types      NamedSchemas `yaml:"types,omitempty"`
	Operations Operations   `yaml:"operations"`
}

func Parse(bytes []byte) (*Document, error) {
	var document Document

	if err := yaml.Unmarshal(bytes, &document); err != nil {
		return nil, fmt.Errorf("unable to parse document: %w", err)
	}

	return &document, nil
}
