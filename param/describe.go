package param

// Descriptor is the information a schema document renderer needs about a
// param: its name, type reference, multiplicity and nested fields.
type Descriptor struct {
	Name       string       `json:"name" yaml:"name"`
	Type       string       `json:"type" yaml:"type"`
	Kind       string       `json:"kind" yaml:"kind"`
	Multiplied bool         `json:"multiplied,omitempty" yaml:"multiplied,omitempty"`
	Fields     []Descriptor `json:"fields,omitempty" yaml:"fields,omitempty"`
}

func (p *Param) Describe() Descriptor {
	out := Descriptor{
		Name:       p.name,
		Type:       p.NamespacedType(),
		Kind:       p.kind.String(),
		Multiplied: p.multiplied,
	}

	if len(p.children) > 0 {
		out.Fields = DescribeAll(p.children)
	}

	return out
}

// DescribeAll describes params in order.
func DescribeAll(params []*Param) []Descriptor {
	out := make([]Descriptor, len(params))
	for idx, p := range params {
		out[idx] = p.Describe()
	}
	return out
}
