package compilation

import "github.com/masnyjimmy/wsparam/param"

// Document describes a compiled catalog for schema document renderers.
type Document struct {
	Info       Info               `json:"info" yaml:"info"`
	Types      []param.Descriptor `json:"types,omitempty" yaml:"types,omitempty"`
	Operations []OperationDoc     `json:"operations" yaml:"operations"`
}

type OperationDoc struct {
	Name        string           `json:"name" yaml:"name"`
	Description string           `json:"description,omitempty" yaml:"description,omitempty"`
	Input       param.Descriptor `json:"input" yaml:"input"`
	Output      param.Descriptor `json:"output" yaml:"output"`
}
