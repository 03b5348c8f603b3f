package validation

import (
	"bytes"
	_ "embed"
	"fmt"

	"github.com/goccy/go-yaml"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed schema.json
var schemaBytes []byte

var schema *jsonschema.Schema

func init() {
	compiler := jsonschema.NewCompiler()
	compiler.DefaultDraft(jsonschema.Draft2020)

	object, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
	if err != nil {
		panic(err)
	}

	if err := compiler.AddResource("wsparam-schema.json", object); err != nil {
		panic(err)
	}

	schema = compiler.MustCompile("wsparam-schema.json")
}

// Validate checks a YAML or JSON service definition against the document
// schema.
func Validate(documentBytes []byte) error {
	jsonBytes, err := yaml.YAMLToJSON(documentBytes)
	if err != nil {
		return fmt.Errorf("unable to parse document: %w", err)
	}

	document, err := jsonschema.UnmarshalJSON(bytes.NewReader(jsonBytes))
	if err != nil {
		return fmt.Errorf("unable to parse document: %w", err)
	}

	return schema.Validate(document)
}
