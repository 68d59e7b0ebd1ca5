package ir

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Filter is a compiled path filter expression. The JSONPath current-node
// symbol '@' is rewritten to the identifier "value" before compiling, so
// "@.price < 30" evaluates with the candidate element bound to "value".
type Filter struct {
	Src  string
	prog *vm.Program
}

func newFilter(src string) (*Filter, error) {
	prog, err := expr.Compile(rewriteAt(src), expr.AllowUndefinedVariables())
	if err != nil {
		return nil, fmt.Errorf("%w: bad filter %q: %v", ErrPathSyntax, src, err)
	}
	return &Filter{Src: src, prog: prog}, nil
}

// Match evaluates the filter against one candidate node. Evaluation errors
// are treated as non-matches, as is anything not truthy.
func (f *Filter) Match(node *Node) bool {
	out, err := expr.Run(f.prog, map[string]any{"value": ToAny(node)})
	if err != nil {
		return false
	}
	return anyTruth(out)
}

func anyTruth(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case int:
		return t != 0
	case int64:
		return t != 0
	case float64:
		return t != 0
	default:
		return true
	}
}

// rewriteAt replaces the '@' current-node symbol outside string literals.
func rewriteAt(src string) string {
	res := make([]byte, 0, len(src)+8)
	var quote byte
	for i := 0; i < len(src); i++ {
		c := src[i]
		if quote != 0 {
			res = append(res, c)
			if c == '\\' && i+1 < len(src) {
				i++
				res = append(res, src[i])
				continue
			}
			if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '\'', '"':
			quote = c
			res = append(res, c)
		case '@':
			res = append(res, "value"...)
		default:
			res = append(res, c)
		}
	}
	return string(res)
}
