package param

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// LoadInto loads data and decodes the result into out, which must be a
// pointer. Struct fields are matched by the "param" tag, falling back to a
// case insensitive match on the field name.
func (p *Param) LoadInto(data any, out any) error {
	value, err := p.Load(data)
	if err != nil {
		return err
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  out,
		TagName: "param",
	})
	if err != nil {
		return fmt.Errorf("unable to create decoder: %w", err)
	}

	if err := decoder.Decode(value); err != nil {
		return fmt.Errorf("unable to decode %s: %w", p.name, err)
	}

	return nil
}
