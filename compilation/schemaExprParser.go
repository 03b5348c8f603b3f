package compilation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/masnyjimmy/wsparam/param"
)

// simple type or <Type> reference, then any number of [] suffixes
var schemaExprRegex = regexp.MustCompile(`^(?:(string|integer|double|boolean)|<(\w+)>)((?:\[\])*)$`)

// parseSchemaExpr turns a string schema expression into param notation.
// References resolve to the named types compiled so far.
func parseSchemaExpr(expr string, types map[string]*param.Param) (any, error) {
	sub := schemaExprRegex.FindStringSubmatch(strings.TrimSpace(expr))
	if sub == nil {
		return nil, fmt.Errorf("invalid schema expression: %s", expr)
	}

	baseType := sub[1] // string, integer, double, boolean
	ref := sub[2]      // reference like <Type>
	arr := sub[3]      // array notation

	var out any

	if ref != "" {
		t, ok := types[ref]
		if !ok {
			return nil, fmt.Errorf("unknown type <%s>", ref)
		}
		out = t
	} else {
		kind, err := param.ParseKind(baseType)
		if err != nil {
			return nil, err
		}
		out = kind
	}

	for range strings.Count(arr, "[]") {
		out = []any{out}
	}

	return out, nil
}
