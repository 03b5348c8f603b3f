package docs

type Operation struct {
	Name        string `yaml:"-"`
	Description string `yaml:"description,omitempty"`
	Input       Schema `yaml:"input,omitempty"`
	Output      Schema `yaml:"output,omitempty"`
}

type Operations []Operation

// UnmarshalYAML implements BytesUnmarshaler for goccy/go-yaml
func (o *Operations) UnmarshalYAML(data []byte) error {
	out := make(Operations, 0)

	err := unmarshalOrdered(data, func(name string, op Operation) {
		op.Name = name
		out = append(out, op)
	})
	if err != nil {
		return err
	}

	*o = out
	return nil
}
