package param

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type orderLine struct {
	SKU string `param:"sku"`
	Qty int    `param:"qty"`
}

type order struct {
	ID    int64       `param:"id"`
	Price float64     `param:"price"`
	Tags  []string    `param:"tags"`
	Lines []orderLine `param:"lines"`
}

func TestLoadInto(t *testing.T) {
	op := MustDefine("PlaceOrder", Fields{
		{Name: "id", Def: Integer},
		{Name: "price", Def: Double},
		{Name: "tags", Def: []any{String}},
		{Name: "lines", Def: []any{Fields{
			{Name: "sku", Def: String},
			{Name: "qty", Def: Integer},
		}}},
	})

	var out order
	err := op.LoadInto(map[string]any{
		"id":    "42",
		"price": "9.99",
		"tags":  "urgent",
		"lines": []any{
			map[string]any{"sku": "X1", "qty": "3"},
		},
	}, &out)
	require.NoError(t, err)

	assert.Equal(t, order{
		ID:    42,
		Price: 9.99,
		Tags:  []string{"urgent"},
		Lines: []orderLine{{SKU: "X1", Qty: 3}},
	}, out)
}

func TestLoadInto_Missing(t *testing.T) {
	op := MustDefine("PlaceOrder", Fields{{Name: "id", Def: Integer}})

	var out order
	err := op.LoadInto(map[string]any{}, &out)

	var missing *MissingParameterError
	assert.ErrorAs(t, err, &missing)
}
