package parse

import (
	"fmt"

	"github.com/goccy/go-yaml"

	"github.com/docjson-io/docjson/ir"
)

// parseYAML decodes a YAML payload, preserving mapping key order.
func parseYAML(d []byte) (*ir.Node, error) {
	var v any
	if err := yaml.UnmarshalWithOptions(d, &v, yaml.UseOrderedMap()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	node, err := yamlValue(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return node, nil
}

func yamlValue(v any) (*ir.Node, error) {
	switch t := v.(type) {
	case nil:
		return ir.Null(), nil
	case bool:
		return ir.FromBool(t), nil
	case string:
		return ir.FromString(t), nil
	case int:
		return ir.FromInt(int64(t)), nil
	case int64:
		return ir.FromInt(t), nil
	case uint64:
		if t > 1<<63-1 {
			return ir.FromFloat(float64(t)), nil
		}
		return ir.FromInt(int64(t)), nil
	case float64:
		return ir.FromFloat(t), nil
	case []any:
		arr := ir.NewArray()
		for _, elem := range t {
			n, err := yamlValue(elem)
			if err != nil {
				return nil, err
			}
			arr.Values = append(arr.Values, n)
		}
		return arr, nil
	case yaml.MapSlice:
		obj := ir.NewObject()
		for _, item := range t {
			key, ok := item.Key.(string)
			if !ok {
				key = fmt.Sprintf("%v", item.Key)
			}
			n, err := yamlValue(item.Value)
			if err != nil {
				return nil, err
			}
			obj.SetField(key, n)
		}
		return obj, nil
	default:
		return nil, fmt.Errorf("unsupported yaml value of type %T", v)
	}
}
