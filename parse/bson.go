package parse

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"

	"github.com/docjson-io/docjson/ir"
)

// parseBSON decodes a single top-level BSON document. The document must
// carry at least one field, and the first field's value becomes the
// resulting tree; any further fields are ignored. This collapsing of a
// multi-field document to one value is an inherited ingest contract.
func parseBSON(d []byte) (*ir.Node, error) {
	raw := bson.Raw(d)
	if err := raw.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	elems, err := raw.Elements()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if len(elems) == 0 {
		return nil, fmt.Errorf("%w: empty bson document", ErrParse)
	}
	node, err := bsonValue(elems[0].Value())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return node, nil
}

func bsonValue(rv bson.RawValue) (*ir.Node, error) {
	switch rv.Type {
	case bsontype.Null:
		return ir.Null(), nil
	case bsontype.Boolean:
		return ir.FromBool(rv.Boolean()), nil
	case bsontype.Double:
		return ir.FromFloat(rv.Double()), nil
	case bsontype.Int32:
		return ir.FromInt(int64(rv.Int32())), nil
	case bsontype.Int64:
		return ir.FromInt(rv.Int64()), nil
	case bsontype.DateTime:
		return ir.FromInt(rv.DateTime()), nil
	case bsontype.String:
		return ir.FromString(rv.StringValue()), nil
	case bsontype.ObjectID:
		return ir.FromString(rv.ObjectID().Hex()), nil
	case bsontype.EmbeddedDocument:
		doc := rv.Document()
		elems, err := doc.Elements()
		if err != nil {
			return nil, err
		}
		obj := ir.NewObject()
		for _, elem := range elems {
			n, err := bsonValue(elem.Value())
			if err != nil {
				return nil, err
			}
			obj.SetField(elem.Key(), n)
		}
		return obj, nil
	case bsontype.Array:
		vals, err := rv.Array().Values()
		if err != nil {
			return nil, err
		}
		arr := ir.NewArray()
		for _, v := range vals {
			n, err := bsonValue(v)
			if err != nil {
				return nil, err
			}
			arr.Values = append(arr.Values, n)
		}
		return arr, nil
	default:
		return nil, fmt.Errorf("bson type %s has no json representation", rv.Type)
	}
}
