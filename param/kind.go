package param

import "fmt"

// Kind is the type tag of a Param. Struct marks a node with named children,
// every other kind is a scalar.
type Kind uint8

const (
	String Kind = iota
	Integer
	Double
	Boolean
	Struct
)

const (
	TargetNamespacePrefix = "tns"
	SchemaNamespacePrefix = "xsd"
)

func (k Kind) String() string {
	switch k {
	case String:
		return "string"
	case Integer:
		return "integer"
	case Double:
		return "double"
	case Boolean:
		return "boolean"
	case Struct:
		return "struct"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// IsScalar reports whether k is one of the simple kinds.
func (k Kind) IsScalar() bool {
	return k < Struct
}

// ParseKind maps a scalar tag to its Kind. "struct" is not a tag, structs
// are declared with a mapping.
func ParseKind(tag string) (Kind, error) {
	switch tag {
	case "string":
		return String, nil
	case "integer":
		return Integer, nil
	case "double":
		return Double, nil
	case "boolean":
		return Boolean, nil
	default:
		return 0, &DefinitionError{Reason: fmt.Sprintf("unknown simple type %q", tag)}
	}
}
