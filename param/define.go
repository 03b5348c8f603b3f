package param

import (
	"errors"
	"fmt"
	"reflect"
	"slices"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cast"
)

// Field is one entry of an ordered mapping definition.
type Field struct {
	Name string
	Def  any
}

// Fields is a mapping definition that keeps its declaration order.
type Fields []Field

// ParseDef parses a definition into the ordered params it declares.
//
// nil declares no params. An empty sequence is rejected so that a forgotten
// value is never mistaken for "no params". A bare simple type or a one
// element sequence declares a single param named "value". A *Param instance
// is cloned and keeps its own name; when it is placed under a mapping key the
// key is ignored.
func ParseDef(def any) ([]*Param, error) {
	return parseDef(def, "")
}

func parseDef(def any, path string) ([]*Param, error) {
	if def == nil {
		return []*Param{}, nil
	}

	if seq, ok := asSequence(def); ok && len(seq) == 0 {
		return nil, &DefinitionError{
			Path:   path,
			Reason: "[] should not be used in params, use nil to declare an empty set",
		}
	}

	if instance, ok := def.(*Param); ok {
		if instance == nil {
			return nil, &DefinitionError{Path: path, Reason: "nil *Param instance"}
		}
		return []*Param{instance.Clone()}, nil
	}

	if isShorthand(def) {
		def = Fields{{Name: ValueName, Def: def}}
	}

	fields, err := asFields(def)
	if err != nil {
		var defErr *DefinitionError
		if errors.As(err, &defErr) && defErr.Path == "" {
			defErr.Path = path
		}
		return nil, err
	}

	out := make([]*Param, 0, len(fields))
	for _, field := range fields {
		param, err := newField(field, joinPath(path, field.Name))
		if err != nil {
			return nil, err
		}

		if slices.ContainsFunc(out, func(p *Param) bool { return p.name == param.name }) {
			return nil, &DefinitionError{
				Path:   joinPath(path, param.name),
				Reason: fmt.Sprintf("duplicate param %q", param.name),
			}
		}

		out = append(out, param)
	}

	return out, nil
}

func newField(field Field, path string) (*Param, error) {
	if field.Name == "" {
		return nil, &DefinitionError{Path: path, Reason: "param name is empty"}
	}

	if instance, ok := field.Def.(*Param); ok {
		if instance == nil {
			return nil, &DefinitionError{Path: path, Reason: "nil *Param instance"}
		}
		return instance.Clone(), nil
	}

	if seq, ok := asSequence(field.Def); ok {
		if len(seq) != 1 {
			return nil, &DefinitionError{
				Path:   path,
				Reason: fmt.Sprintf("array definition must hold exactly one type, got %d", len(seq)),
			}
		}

		if instance, ok := seq[0].(*Param); ok && instance != nil {
			out := instance.Clone()
			out.multiplied = true
			return out, nil
		}

		return newParam(field.Name, seq[0], true, path)
	}

	return newParam(field.Name, field.Def, false, path)
}

func newParam(name string, def any, multiplied bool, path string) (*Param, error) {
	out := &Param{
		name:       name,
		multiplied: multiplied,
	}

	kind, isKind, err := asKind(def)
	if err != nil {
		var defErr *DefinitionError
		if errors.As(err, &defErr) {
			defErr.Path = path
		}
		return nil, err
	}

	if isKind {
		out.kind = kind
		return out, nil
	}

	out.kind = Struct
	out.children, err = parseDef(def, path)
	if err != nil {
		return nil, err
	}

	return out, nil
}

// asKind reports whether def is a simple type tag.
func asKind(def any) (Kind, bool, error) {
	switch t := def.(type) {
	case Kind:
		if !t.IsScalar() {
			return 0, true, &DefinitionError{Reason: fmt.Sprintf("%s is not a simple type", t)}
		}
		return t, true, nil
	case string:
		kind, err := ParseKind(t)
		return kind, true, err
	default:
		return 0, false, nil
	}
}

// isShorthand reports whether def is a bare simple type or sequence that
// gets wrapped into a single "value" field.
func isShorthand(def any) bool {
	switch def.(type) {
	case Kind, string:
		return true
	}
	_, ok := asSequence(def)
	return ok
}

func asFields(def any) (Fields, error) {
	switch t := def.(type) {
	case Fields:
		return t, nil
	case yaml.MapSlice:
		out := make(Fields, 0, len(t))
		for _, item := range t {
			name, err := cast.ToStringE(item.Key)
			if err != nil {
				return nil, &DefinitionError{Reason: fmt.Sprintf("param name must be a string, got %T", item.Key)}
			}
			out = append(out, Field{Name: name, Def: item.Value})
		}
		return out, nil
	case map[string]any:
		names := make([]string, 0, len(t))
		for name := range t {
			names = append(names, name)
		}
		slices.Sort(names)

		out := make(Fields, 0, len(t))
		for _, name := range names {
			out = append(out, Field{Name: name, Def: t[name]})
		}
		return out, nil
	}

	rv := reflect.ValueOf(def)
	if rv.Kind() != reflect.Map {
		return nil, &DefinitionError{Reason: fmt.Sprintf("wrong definition: %#v", def)}
	}

	out := make(Fields, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		name, err := cast.ToStringE(iter.Key().Interface())
		if err != nil {
			return nil, &DefinitionError{Reason: fmt.Sprintf("param name must be a string, got %s", iter.Key().Type())}
		}
		out = append(out, Field{Name: name, Def: iter.Value().Interface()})
	}
	slices.SortFunc(out, func(a, b Field) int {
		switch {
		case a.Name < b.Name:
			return -1
		case a.Name > b.Name:
			return 1
		}
		return 0
	})

	return out, nil
}

// asSequence returns v as a generic slice. Ordered mappings are slices in Go
// but never sequences here.
func asSequence(v any) ([]any, bool) {
	switch t := v.(type) {
	case Fields, yaml.MapSlice:
		return nil, false
	case []any:
		return t, true
	case nil:
		return nil, false
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}

	out := make([]any, rv.Len())
	for idx := range out {
		out[idx] = rv.Index(idx).Interface()
	}
	return out, true
}

func joinPath(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}
