package param

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cast"
)

var errNotMapping = errors.New("value is not a mapping")

// Load converts a generic decoded value, such as the output of a JSON, YAML or
// XML decoder, into native values according to p.
//
// nil stands for an absent value and is always a *MissingParameterError:
// every declared param is required, repeated ones included. A repeated param
// given a single value loads it as a one element sequence.
//
// Structs load into map[string]any keyed by child name, repeated params into
// []any, and scalars into string, int64 or float64. Booleans are passed
// through as decoded.
func (p *Param) Load(data any) (any, error) {
	if p.lifted {
		data = liftValue(data)
	}
	return p.load(data, p.name, "")
}

// load coerces data. path names p in errors, prefix is prepended to the
// names of p's children.
func (p *Param) load(data any, path, prefix string) (any, error) {
	if data == nil {
		return nil, &MissingParameterError{Name: p.name, Path: path}
	}

	if !p.multiplied {
		return p.loadOne(data, path, prefix)
	}

	items := toSequence(data)
	out := make([]any, len(items))

	for idx, item := range items {
		itemPath := fmt.Sprintf("%s[%d]", path, idx)
		if item == nil {
			return nil, &MissingParameterError{Name: p.name, Path: itemPath}
		}

		value, err := p.loadOne(item, itemPath, itemPath)
		if err != nil {
			return nil, err
		}
		out[idx] = value
	}

	return out, nil
}

func (p *Param) loadOne(data any, path, prefix string) (any, error) {
	if p.IsStruct() {
		return p.loadStruct(data, path, prefix)
	}
	return p.convert(data, path)
}

func (p *Param) loadStruct(data any, path, prefix string) (map[string]any, error) {
	values, ok := toMapping(data)
	if !ok {
		return nil, &ValueError{Path: path, Kind: Struct, Value: data, Err: errNotMapping}
	}

	out := make(map[string]any, len(p.children))

	for _, child := range p.children {
		childPath := joinPath(prefix, child.name)

		value, err := child.load(values[child.name], childPath, childPath)
		if err != nil {
			return nil, err
		}
		out[child.name] = value
	}

	return out, nil
}

func (p *Param) convert(data any, path string) (any, error) {
	var (
		out any
		err error
	)

	switch p.kind {
	case String:
		out, err = cast.ToStringE(data)
	case Integer:
		out, err = toInteger(data)
	case Double:
		out, err = toDouble(data)
	case Boolean:
		// boolean literals are decoded by the protocol decoder
		return data, nil
	default:
		panic(fmt.Sprintf("param: unhandled kind %s", p.kind))
	}

	if err != nil {
		return nil, &ValueError{Path: path, Kind: p.kind, Value: data, Err: err}
	}
	return out, nil
}

func toInteger(data any) (int64, error) {
	switch t := data.(type) {
	case string:
		return strconv.ParseInt(strings.TrimSpace(t), 10, 64)
	case uint:
		if uint64(t) > math.MaxInt64 {
			return 0, strconv.ErrRange
		}
	case uint64:
		if t > math.MaxInt64 {
			return 0, strconv.ErrRange
		}
	case float32:
		if !inInt64Range(float64(t)) {
			return 0, strconv.ErrRange
		}
	case float64:
		if !inInt64Range(t) {
			return 0, strconv.ErrRange
		}
	}
	return cast.ToInt64E(data)
}

// inInt64Range reports whether f truncates to a representable int64.
// NaN fails every comparison.
func inInt64Range(f float64) bool {
	return f >= math.MinInt64 && f < -math.MinInt64
}

func toDouble(data any) (float64, error) {
	if s, ok := data.(string); ok {
		data = strings.TrimSpace(s)
	}
	return cast.ToFloat64E(data)
}

func toSequence(data any) []any {
	if seq, ok := asSequence(data); ok {
		return seq
	}
	return []any{data}
}

// toMapping returns data as a mapping keyed by strings, so that keys decoded
// as other types are found by name.
func toMapping(data any) (map[string]any, bool) {
	switch t := data.(type) {
	case map[string]any:
		return t, true
	case yaml.MapSlice:
		out := make(map[string]any, len(t))
		for _, item := range t {
			out[cast.ToString(item.Key)] = item.Value
		}
		return out, true
	case map[any]any:
		out := make(map[string]any, len(t))
		for key, value := range t {
			out[cast.ToString(key)] = value
		}
		return out, true
	}

	rv := reflect.ValueOf(data)
	if rv.Kind() != reflect.Map {
		return nil, false
	}

	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[cast.ToString(iter.Key().Interface())] = iter.Value().Interface()
	}
	return out, true
}

// liftValue wraps a bare payload for a root declared as a single "value".
func liftValue(data any) any {
	if data == nil {
		return nil
	}
	if values, ok := toMapping(data); ok {
		if _, has := values[ValueName]; has {
			return data
		}
	}
	return map[string]any{ValueName: data}
}
