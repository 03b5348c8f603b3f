// Package param declares typed RPC parameters and loads decoded request data
// into them.
//
// A definition is written in a compact nested notation:
//
//	simple_type := param.String | param.Integer | param.Double | param.Boolean
//	             | "string" | "integer" | "double" | "boolean"
//	nested_type := fields | simple_type | [nested_type] | *param.Param
//	fields      := param.Fields{{Name: "id", Def: ...}, ...}
//	             | map[string]any{"id": ...} | yaml.MapSlice
//	definition  := nil | fields | simple_type | [nested_type] | *param.Param
//
// For example:
//
//	order, err := param.Define("PlaceOrder", param.Fields{
//		{Name: "id", Def: param.Integer},
//		{Name: "tags", Def: []any{param.String}},
//		{Name: "item", Def: param.Fields{
//			{Name: "sku", Def: param.String},
//			{Name: "qty", Def: param.Integer},
//		}},
//	})
//
//	values, err := order.Load(map[string]any{
//		"id":   "42",
//		"tags": []any{"a", "b"},
//		"item": map[string]any{"sku": "X1", "qty": "3"},
//	})
//
// Param trees are immutable once built and may be shared by concurrent Load
// calls.
package param

import (
	"slices"
	"strings"
)

// ValueName is the field name given to a bare simple or repeated definition
// that is not wrapped in a mapping.
const ValueName = "value"

// Param is one named, typed parameter node.
type Param struct {
	name       string
	kind       Kind
	multiplied bool
	children   []*Param

	// lifted marks a root whose definition was a bare type normalized to a
	// single "value" field.
	lifted bool
}

// New builds a single param named name with nested type def. A scalar tag
// yields a leaf, anything else is parsed with ParseDef into a struct.
func New(name string, def any, multiplied bool) (*Param, error) {
	if name == "" {
		return nil, &DefinitionError{Reason: "param name is empty"}
	}
	return newParam(name, def, multiplied, name)
}

// Define builds the struct root of an operation's inputs or outputs.
func Define(name string, def any) (*Param, error) {
	if name == "" {
		return nil, &DefinitionError{Reason: "param name is empty"}
	}

	children, err := ParseDef(def)
	if err != nil {
		return nil, err
	}

	return &Param{
		name:     name,
		kind:     Struct,
		children: children,
		lifted:   isShorthand(def),
	}, nil
}

// MustDefine is like Define but panics on an invalid definition.
func MustDefine(name string, def any) *Param {
	p, err := Define(name, def)
	if err != nil {
		panic(err)
	}
	return p
}

func (p *Param) Name() string     { return p.name }
func (p *Param) Kind() Kind       { return p.kind }
func (p *Param) Multiplied() bool { return p.multiplied }

// IsStruct reports whether p has named children instead of a scalar kind.
func (p *Param) IsStruct() bool {
	return p.kind == Struct
}

// Children returns the ordered child params. The returned slice is a copy.
func (p *Param) Children() []*Param {
	return slices.Clone(p.children)
}

// Field returns the child param called name.
func (p *Param) Field(name string) (*Param, bool) {
	for _, child := range p.children {
		if child.name == name {
			return child, true
		}
	}
	return nil, false
}

// NamespacedType returns the schema document identifier of p's type.
func (p *Param) NamespacedType() string {
	if p.IsStruct() {
		return TargetNamespacePrefix + ":" + p.name
	}
	return SchemaNamespacePrefix + ":" + p.kind.String()
}

// Clone returns a deep copy of p.
func (p *Param) Clone() *Param {
	out := &Param{
		name:       p.name,
		kind:       p.kind,
		multiplied: p.multiplied,
		lifted:     p.lifted,
	}

	if p.children != nil {
		out.children = make([]*Param, len(p.children))
		for idx, child := range p.children {
			out.children[idx] = child.Clone()
		}
	}

	return out
}

func (p *Param) String() string {
	var b strings.Builder
	b.WriteString(p.name)
	b.WriteString(": ")
	p.writeType(&b)
	return b.String()
}

func (p *Param) writeType(b *strings.Builder) {
	if p.multiplied {
		b.WriteByte('[')
		defer b.WriteByte(']')
	}

	if !p.IsStruct() {
		b.WriteString(p.kind.String())
		return
	}

	b.WriteByte('{')
	for idx, child := range p.children {
		if idx > 0 {
			b.WriteString(", ")
		}
		b.WriteString(child.String())
	}
	b.WriteByte('}')
}
