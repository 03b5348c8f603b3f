package validation

import (
	"testing"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		wantErr bool
	}{
		{"valid yaml", `
service: Orders
types:
  Item:
    sku: string
    qty: integer
operations:
  PlaceOrder:
    input:
      id: integer
      tags: [string]
      Item: <Item>
      lines: <Item>[]
    output: boolean
  Ping:
    input: null
`, false},
		{"valid json", `{"service": "Orders", "operations": {"Ping": {"input": "string[]"}}}`, false},
		{"missing operations", `service: Orders`, true},
		{"missing service", `
operations:
  Ping:
    input: string
`, true},
		{"unknown top level key", `
service: Orders
paths: {}
operations:
  Ping:
    input: string
`, true},
		{"unknown simple type", `
service: Orders
operations:
  Ping:
    input:
      qty: int
`, true},
		{"empty sequence", `
service: Orders
operations:
  Ping:
    input:
      tags: []
`, true},
		{"sequence of two types", `
service: Orders
operations:
  Ping:
    input:
      tags: [string, integer]
`, true},
		{"scalar named type", `
service: Orders
types:
  Code: string
operations:
  Ping:
    input: <Code>
`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate([]byte(tt.source))
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidate_ErrorType(t *testing.T) {
	err := Validate([]byte(`service: Orders`))

	var validationErr *jsonschema.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}
