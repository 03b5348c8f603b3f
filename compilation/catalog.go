package compilation

import (
	"errors"
	"fmt"
	"slices"

	"github.com/masnyjimmy/wsparam/param"
)

var ErrUnknownOperation = errors.New("unknown operation")

type Operation struct {
	Name        string
	Description string
	Input       *param.Param
	Output      *param.Param
}

// Catalog holds the compiled types and operations of a service. It is read
// only once compiled.
type Catalog struct {
	Service   string
	Namespace string

	types      []*param.Param
	operations []*Operation
}

func (c *Catalog) Types() []*param.Param {
	return slices.Clone(c.types)
}

func (c *Catalog) Operations() []*Operation {
	return slices.Clone(c.operations)
}

func (c *Catalog) Operation(name string) (*Operation, bool) {
	idx := slices.IndexFunc(c.operations, func(op *Operation) bool { return op.Name == name })
	if idx == -1 {
		return nil, false
	}
	return c.operations[idx], true
}

// Load coerces the decoded input of operation op.
func (c *Catalog) Load(op string, data any) (map[string]any, error) {
	operation, ok := c.Operation(op)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownOperation, op)
	}

	value, err := operation.Input.Load(data)
	if err != nil {
		return nil, err
	}

	return value.(map[string]any), nil
}

func (c *Catalog) Document() Document {
	out := Document{
		Info: Info{
			Service:   c.Service,
			Namespace: c.Namespace,
		},
	}

	MapArray(c.types, &out.Types, func(_ int, in *param.Param) param.Descriptor {
		return in.Describe()
	})

	MapArray(c.operations, &out.Operations, func(_ int, in *Operation) OperationDoc {
		return OperationDoc{
			Name:        in.Name,
			Description: in.Description,
			Input:       in.Input.Describe(),
			Output:      in.Output.Describe(),
		}
	})

	return out
}
