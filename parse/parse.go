package parse

import (
	"bytes"
	"fmt"
	"io"

	json "github.com/goccy/go-json"

	"github.com/docjson-io/docjson/ir"
)

type parseOpts struct {
	format Format
}

type ParseOption func(*parseOpts)

func ParseFormat(f Format) ParseOption {
	return func(o *parseOpts) { o.format = f }
}

// Parse decodes a payload in its declared format (JSON by default) into
// a document tree.
func Parse(d []byte, opts ...ParseOption) (*ir.Node, error) {
	po := &parseOpts{format: JSONFormat}
	for _, f := range opts {
		f(po)
	}
	switch po.format {
	case JSONFormat:
		return parseJSON(d)
	case BSONFormat:
		return parseBSON(d)
	case YAMLFormat:
		return parseYAML(d)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, po.format)
	}
}

func parseJSON(d []byte) (*ir.Node, error) {
	// the streaming decoder is lenient with truncated literals ("nul",
	// "tru"), so well-formedness is checked up front
	if !json.Valid(d) {
		return nil, fmt.Errorf("%w: not well-formed json", ErrParse)
	}
	dec := json.NewDecoder(bytes.NewReader(d))
	dec.UseNumber()
	node, err := parseValue(dec)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data after value", ErrParse)
	}
	return node, nil
}

func parseValue(dec *json.Decoder) (*ir.Node, error) {
	tok, err := dec.Token()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("unexpected end of input")
		}
		return nil, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			obj := ir.NewObject()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("object key is not a string: %v", keyTok)
				}
				val, err := parseValue(dec)
				if err != nil {
					return nil, err
				}
				// duplicate keys collapse to the last value
				obj.SetField(key, val)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return obj, nil
		case '[':
			arr := ir.NewArray()
			for dec.More() {
				val, err := parseValue(dec)
				if err != nil {
					return nil, err
				}
				arr.Values = append(arr.Values, val)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return arr, nil
		default:
			return nil, fmt.Errorf("unexpected delimiter %v", t)
		}
	case string:
		return ir.FromString(t), nil
	case bool:
		return ir.FromBool(t), nil
	case json.Number:
		return ir.FromNumberLiteral(t.String())
	case float64:
		// UseNumber is set, but cover the default decoding anyway
		return ir.FromFloat(t), nil
	case nil:
		return ir.Null(), nil
	default:
		return nil, fmt.Errorf("unexpected token %v", tok)
	}
}
