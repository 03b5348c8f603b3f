package param

import "fmt"

// DefinitionError is returned while parsing a malformed definition. It is a
// schema author's mistake and surfaces at registration time.
type DefinitionError struct {
	Path   string // Field path inside the definition, empty at the top level
	Reason string
}

func (e *DefinitionError) Error() string {
	if e.Path == "" {
		return "invalid param definition: " + e.Reason
	}
	return fmt.Sprintf("invalid param definition at %q: %s", e.Path, e.Reason)
}

// MissingParameterError is returned by Load when a required value is absent.
type MissingParameterError struct {
	Name string // Name of the missing param
	Path string // Dotted path relative to the param Load was called on
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("required parameter %q is missing", e.Path)
}

// ValueError is returned by Load when a present value cannot be converted to
// the declared kind. Err is the conversion primitive's error, untouched.
type ValueError struct {
	Path  string
	Kind  Kind
	Value any
	Err   error
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("parameter %q: cannot load %T as %s: %v", e.Path, e.Value, e.Kind, e.Err)
}

func (e *ValueError) Unwrap() error {
	return e.Err
}
