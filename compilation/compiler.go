package compilation

import (
	"encoding/json"
	"fmt"

	"github.com/goccy/go-yaml"
	"github.com/masnyjimmy/wsparam/docs"
	"github.com/masnyjimmy/wsparam/param"
)

const ResponseSuffix = "Response"

type CompileContext struct {
	in  *docs.Document
	out *Catalog

	types map[string]*param.Param
}

func MapArray[T ~[]I, U ~[]O, I any, O any](in T, out *U, mapFn func(idx int, in I) O) {
	(*out) = make(U, len(in))

	for idx, val := range in {
		(*out)[idx] = mapFn(idx, val)
	}
}

func newCompileContext(input *docs.Document, output *Catalog) *CompileContext {
	return &CompileContext{
		in:    input,
		out:   output,
		types: make(map[string]*param.Param),
	}
}

func (c *CompileContext) CompileInfo() error {
	if c.in.Service == "" {
		return fmt.Errorf("service name is required")
	}

	c.out.Service = c.in.Service
	c.out.Namespace = c.in.Namespace

	if c.out.Namespace == "" {
		c.out.Namespace = "urn:" + c.in.Service
	}
	return nil
}

// Notation converts a document schema into param notation.
func (c *CompileContext) Notation(schema docs.Schema) (any, error) {
	switch v := schema.Value.(type) {
	case nil:
		return nil, nil
	case string: // expr
		return parseSchemaExpr(v, c.types)
	case []docs.Schema:
		out := make([]any, 0, len(v))
		for _, item := range v {
			inner, err := c.Notation(item)
			if err != nil {
				return nil, err
			}
			out = append(out, inner)
		}
		return out, nil
	case docs.Properties:
		out := make(param.Fields, 0, len(v))
		for _, property := range v {
			inner, err := c.Notation(property.Schema)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", property.Name, err)
			}

			// a ref field takes the referenced type's name
			if name, ok := refName(inner); ok && name != property.Name {
				return nil, &param.DefinitionError{
					Path:   property.Name,
					Reason: fmt.Sprintf("field refers to <%s> and must be named %s", name, name),
				}
			}
			out = append(out, param.Field{
				Name: property.Name,
				Def:  inner,
			})
		}
		return out, nil
	default:
		return nil, fmt.Errorf("invalid schema underlying type: %T", v)
	}
}

// refName reports the type name a field defined by def is given by param,
// when def is a ref or a repeated ref.
func refName(def any) (string, bool) {
	if seq, ok := def.([]any); ok && len(seq) == 1 {
		def = seq[0]
	}
	if ref, ok := def.(*param.Param); ok {
		return ref.Name(), true
	}
	return "", false
}

func (c *CompileContext) ParseTypes() error {
	for _, named := range c.in.Types {
		if _, has := c.types[named.Name]; has {
			return fmt.Errorf("duplicate type %s", named.Name)
		}

		def, err := c.Notation(named.Schema)
		if err != nil {
			return fmt.Errorf("type %s: %w", named.Name, err)
		}

		t, err := param.New(named.Name, def, false)
		if err != nil {
			return fmt.Errorf("type %s: %w", named.Name, err)
		}

		if !t.IsStruct() {
			return fmt.Errorf("type %s: named types must be structs, got %s", named.Name, t.Kind())
		}

		c.types[named.Name] = t
		c.out.types = append(c.out.types, t)
	}
	return nil
}

func (c *CompileContext) parseOperation(op *docs.Operation) (*Operation, error) {
	input, err := c.Notation(op.Input)
	if err != nil {
		return nil, fmt.Errorf("input: %w", err)
	}

	output, err := c.Notation(op.Output)
	if err != nil {
		return nil, fmt.Errorf("output: %w", err)
	}

	out := Operation{
		Name:        op.Name,
		Description: op.Description,
	}

	if out.Input, err = param.Define(op.Name, input); err != nil {
		return nil, fmt.Errorf("input: %w", err)
	}

	if out.Output, err = param.Define(op.Name+ResponseSuffix, output); err != nil {
		return nil, fmt.Errorf("output: %w", err)
	}

	return &out, nil
}

func (c *CompileContext) ParseOperations() error {
	for idx := range c.in.Operations {
		op := &c.in.Operations[idx]

		if _, has := c.out.Operation(op.Name); has {
			return fmt.Errorf("duplicate operation %s", op.Name)
		}

		operation, err := c.parseOperation(op)
		if err != nil {
			return fmt.Errorf("operation %s: %w", op.Name, err)
		}

		c.out.operations = append(c.out.operations, operation)
	}
	return nil
}

func (c *CompileContext) Parse() error {
	if err := c.CompileInfo(); err != nil {
		return err
	}

	if err := c.ParseTypes(); err != nil {
		return err
	}

	if err := c.ParseOperations(); err != nil {
		return err
	}

	return nil
}

func Compile(in *docs.Document) (*Catalog, error) {
	out := &Catalog{}
	ctx := newCompileContext(in, out)

	if err := ctx.Parse(); err != nil {
		return nil, err
	}

	return out, nil
}

func CompileToJSON(in *docs.Document) ([]byte, error) {
	catalog, err := Compile(in)
	if err != nil {
		return nil, err
	}

	return json.MarshalIndent(catalog.Document(), "", "  ")
}

func CompileToYAML(in *docs.Document) ([]byte, error) {
	catalog, err := Compile(in)
	if err != nil {
		return nil, err
	}

	return yaml.Marshal(catalog.Document())
}
