package docs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ordersYAML = `
service: Orders
namespace: urn:orders
types:
  Item:
    sku: string
    qty: integer
  Basket:
    owner: string
    items: [<Item>]
operations:
  PlaceOrder:
    description: Places an order
    input:
      id: integer
      tags: [string]
      Item: <Item>
      shipping:
        zip: string
        city: string
    output: boolean
  Ping:
    input: null
`

func propertyNames(props Properties) []string {
	out := make([]string, len(props))
	for idx, p := range props {
		out[idx] = p.Name
	}
	return out
}

func TestParse(t *testing.T) {
	document, err := Parse([]byte(ordersYAML))
	require.NoError(t, err)

	assert.Equal(t, "Orders", document.Service)
	assert.Equal(t, "urn:orders", document.Namespace)

	require.Len(t, document.Types, 2)
	assert.Equal(t, "Item", document.Types[0].Name)
	assert.Equal(t, "Basket", document.Types[1].Name)

	item, ok := document.Types[0].Schema.Value.(Properties)
	require.True(t, ok)
	assert.Equal(t, []string{"sku", "qty"}, propertyNames(item))
	assert.Equal(t, "string", item[0].Schema.Value)

	basket := document.Types[1].Schema.Value.(Properties)
	items, ok := basket[1].Schema.Value.([]Schema)
	require.True(t, ok)
	require.Len(t, items, 1)
	assert.Equal(t, "<Item>", items[0].Value)

	require.Len(t, document.Operations, 2)
	assert.Equal(t, "PlaceOrder", document.Operations[0].Name)
	assert.Equal(t, "Ping", document.Operations[1].Name)

	placeOrder := document.Operations[0]
	assert.Equal(t, "Places an order", placeOrder.Description)
	assert.Equal(t, "boolean", placeOrder.Output.Value)

	input := placeOrder.Input.Value.(Properties)
	assert.Equal(t, []string{"id", "tags", "Item", "shipping"}, propertyNames(input))

	shipping := input[3].Schema.Value.(Properties)
	assert.Equal(t, []string{"zip", "city"}, propertyNames(shipping))

	assert.Nil(t, document.Operations[1].Input.Value)
	assert.Nil(t, document.Operations[1].Output.Value)
}

func TestParse_InvalidSchema(t *testing.T) {
	_, err := Parse([]byte(`
service: Broken
operations:
  Op:
    input: 5
`))
	assert.Error(t, err)
}
