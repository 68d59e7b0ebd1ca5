// Package encode serializes document trees to JSON text.
//
// Output is compact by default; Indent enables pretty printing and
// EncodeColors colorizes output for terminals. JSON is the only output
// format; requests for anything else belong to the ingest side (see the
// parse package).
package encode

import (
	"io"
	"strconv"

	json "github.com/goccy/go-json"

	"github.com/docjson-io/docjson/ir"
)

type EncState struct {
	indent int
	depth  int
	colors *Colors
}

// Encode writes node as JSON text.
func Encode(node *ir.Node, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{}
	for _, opt := range opts {
		opt(es)
	}
	return enc(node, w, es)
}

func enc(node *ir.Node, w io.Writer, es *EncState) error {
	switch node.Type {
	case ir.NullType:
		return writeString(w, es.colors.paint(ir.NullType, "null"))
	case ir.BoolType:
		return writeString(w, es.colors.paint(ir.BoolType, strconv.FormatBool(node.Bool)))
	case ir.NumberType:
		return writeString(w, es.colors.paint(ir.NumberType, numberLiteral(node)))
	case ir.StringType:
		return writeString(w, es.colors.paint(ir.StringType, quote(node.String)))
	case ir.ArrayType:
		if len(node.Values) == 0 {
			return writeString(w, "[]")
		}
		if err := writeString(w, "["); err != nil {
			return err
		}
		es.depth++
		for i, v := range node.Values {
			if i > 0 {
				if err := writeString(w, ","); err != nil {
					return err
				}
			}
			if err := writeNL(w, es); err != nil {
				return err
			}
			if err := enc(v, w, es); err != nil {
				return err
			}
		}
		es.depth--
		if err := writeNL(w, es); err != nil {
			return err
		}
		return writeString(w, "]")
	case ir.ObjectType:
		if len(node.Keys) == 0 {
			return writeString(w, "{}")
		}
		if err := writeString(w, "{"); err != nil {
			return err
		}
		es.depth++
		for i, k := range node.Keys {
			if i > 0 {
				if err := writeString(w, ","); err != nil {
					return err
				}
			}
			if err := writeNL(w, es); err != nil {
				return err
			}
			if err := writeString(w, es.colors.paintKey(quote(k))); err != nil {
				return err
			}
			sep := ":"
			if es.indent > 0 {
				sep = ": "
			}
			if err := writeString(w, sep); err != nil {
				return err
			}
			if err := enc(node.Values[i], w, es); err != nil {
				return err
			}
		}
		es.depth--
		if err := writeNL(w, es); err != nil {
			return err
		}
		return writeString(w, "}")
	default:
		panic("type")
	}
}

func numberLiteral(node *ir.Node) string {
	if node.Number != "" {
		return node.Number
	}
	if node.Int64 != nil {
		return strconv.FormatInt(*node.Int64, 10)
	}
	if node.Float64 != nil {
		return strconv.FormatFloat(*node.Float64, 'g', -1, 64)
	}
	return "0"
}

func quote(s string) string {
	d, err := json.Marshal(s)
	if err != nil {
		// strings always marshal
		panic(err)
	}
	return string(d)
}

func writeString(w io.Writer, s string) error {
	_, err := io.WriteString(w, s)
	return err
}

func writeNL(w io.Writer, es *EncState) error {
	if es.indent == 0 {
		return nil
	}
	pad := make([]byte, 1, 1+es.depth*es.indent)
	pad[0] = '\n'
	for i := 0; i < es.depth*es.indent; i++ {
		pad = append(pad, ' ')
	}
	_, err := w.Write(pad)
	return err
}
