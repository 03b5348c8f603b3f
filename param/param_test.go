package param

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKind(t *testing.T) {
	for _, kind := range []Kind{String, Integer, Double, Boolean} {
		parsed, err := ParseKind(kind.String())
		require.NoError(t, err)
		assert.Equal(t, kind, parsed)
		assert.True(t, kind.IsScalar())
	}

	assert.False(t, Struct.IsScalar())
	assert.Equal(t, "Kind(9)", Kind(9).String())

	_, err := ParseKind("struct")
	var defErr *DefinitionError
	assert.ErrorAs(t, err, &defErr)
}

func TestNamespacedType(t *testing.T) {
	order := MustDefine("Order", Fields{{Name: "id", Def: Integer}})
	str, err := New("Order", String, false)
	require.NoError(t, err)
	count, err := New("count", Integer, true)
	require.NoError(t, err)

	assert.Equal(t, "tns:Order", order.NamespacedType())
	assert.Equal(t, "xsd:string", str.NamespacedType())
	assert.Equal(t, "xsd:integer", count.NamespacedType())
	assert.NotEqual(t, order.NamespacedType(), str.NamespacedType())
}

func TestClone(t *testing.T) {
	orig := MustDefine("Op", Fields{
		{Name: "item", Def: Fields{
			{Name: "sku", Def: String},
			{Name: "qty", Def: Integer},
		}},
		{Name: "tags", Def: []any{String}},
	})

	dup := orig.Clone()
	assert.Equal(t, orig.String(), dup.String())
	assert.NotSame(t, orig, dup)

	origChildren := orig.Children()
	copyChildren := dup.Children()
	require.Len(t, copyChildren, len(origChildren))
	for idx := range origChildren {
		assert.NotSame(t, origChildren[idx], copyChildren[idx])
	}

	dup.children = append(dup.children, &Param{name: "extra", kind: String})
	dup.children[0].children[0].name = "code"

	assert.Len(t, orig.Children(), 2)
	_, ok := orig.children[0].Field("sku")
	assert.True(t, ok)
	assert.Equal(t, "Op: {item: {sku: string, qty: integer}, tags: [string]}", orig.String())
}

func TestClone_KeepsLift(t *testing.T) {
	op := MustDefine("Op", Integer).Clone()

	got, err := op.Load("5")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"value": int64(5)}, got)
}

func TestChildrenIsCopy(t *testing.T) {
	op := MustDefine("Op", Fields{{Name: "id", Def: Integer}})

	children := op.Children()
	children[0] = nil

	_, ok := op.Field("id")
	assert.True(t, ok)
}

func TestDescribe(t *testing.T) {
	op := MustDefine("PlaceOrder", Fields{
		{Name: "id", Def: Integer},
		{Name: "lines", Def: []any{Fields{{Name: "sku", Def: String}}}},
	})

	got := op.Describe()
	assert.Equal(t, Descriptor{
		Name: "PlaceOrder",
		Type: "tns:PlaceOrder",
		Kind: "struct",
		Fields: []Descriptor{
			{Name: "id", Type: "xsd:integer", Kind: "integer"},
			{Name: "lines", Type: "tns:lines", Kind: "struct", Multiplied: true, Fields: []Descriptor{
				{Name: "sku", Type: "xsd:string", Kind: "string"},
			}},
		},
	}, got)

	bytes, err := json.Marshal(got.Fields[0])
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"id","type":"xsd:integer","kind":"integer"}`, string(bytes))
}
