package cmd

import (
	"fmt"
	"os"

	"github.com/masnyjimmy/wsparam/compilation"
	"github.com/masnyjimmy/wsparam/docs"
	"github.com/masnyjimmy/wsparam/validation"
)

/*
When reading a definition
1. read bytes
2. validate schema
3. unmarshal
4. compile
*/
func readDocument(filename string) (*docs.Document, error) {
	bytes, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("unable to read file: %w", err)
	}

	logger.Debug().Str("file", filename).Msg("validating schema")

	if err := validation.Validate(bytes); err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}

	document, err := docs.Parse(bytes)
	if err != nil {
		return nil, err
	}

	return document, nil
}

func readCatalog(filename string) (*compilation.Catalog, error) {
	document, err := readDocument(filename)
	if err != nil {
		return nil, err
	}

	catalog, err := compilation.Compile(document)
	if err != nil {
		return nil, fmt.Errorf("compilation error: %w", err)
	}

	return catalog, nil
}
