package docs

import (
	"fmt"

	"github.com/goccy/go-yaml"
)

// string expression, sequence or ordered mapping, parsed in compiler

type Property struct {
	Name   string
	Schema Schema
}

type Properties []Property

type Schema struct {
	Value any
}

type NamedSchema struct {
	Name   string
	Schema Schema
}

type NamedSchemas []NamedSchema

func (s *Schema) UnmarshalYAML(data []byte) error {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch raw.(type) {
	case nil:
		s.Value = nil
		return nil
	case string:
		s.Value = raw
		return nil
	case []any:
		var items []Schema
		if err := yaml.Unmarshal(data, &items); err != nil {
			return fmt.Errorf("failed to unmarshal sequence schema: %w", err)
		}
		s.Value = items
		return nil
	}

	// We need to parse mappings manually to preserve order
	props := make(Properties, 0)
	err := unmarshalOrdered(data, func(name string, schema Schema) {
		props = append(props, Property{
			Name:   name,
			Schema: schema,
		})
	})
	if err != nil {
		return fmt.Errorf("failed to unmarshal as string, sequence or object: %w", err)
	}

	s.Value = props
	return nil
}

func (n *NamedSchemas) UnmarshalYAML(data []byte) error {
	out := make(NamedSchemas, 0)

	err := unmarshalOrdered(data, func(name string, schema Schema) {
		out = append(out, NamedSchema{
			Name:   name,
			Schema: schema,
		})
	})
	if err != nil {
		return err
	}

	*n = out
	return nil
}

// unmarshalOrdered decodes a mapping entry by entry, in document order.
func unmarshalOrdered[T any](data []byte, fn func(name string, value T)) error {
	// nested mappings must stay ordered too when marshalled back
	var rawMap yaml.MapSlice
	if err := yaml.UnmarshalWithOptions(data, &rawMap, yaml.UseOrderedMap()); err != nil {
		return err
	}

	for _, item := range rawMap {
		name, ok := item.Key.(string)
		if !ok {
			return fmt.Errorf("key must be a string, got %T", item.Key)
		}

		// Marshal the value back to YAML and unmarshal into T
		valueBytes, err := yaml.Marshal(item.Value)
		if err != nil {
			return fmt.Errorf("failed to marshal value of %q: %w", name, err)
		}

		var value T
		if err := yaml.Unmarshal(valueBytes, &value); err != nil {
			return fmt.Errorf("failed to unmarshal value of %q: %w", name, err)
		}

		fn(name, value)
	}

	return nil
}
