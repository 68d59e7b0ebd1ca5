package docjson

import (
	"math"

	"github.com/docjson-io/docjson/encode"
	"github.com/docjson-io/docjson/ir"
)

// valueOp drives one multi-match write. The rebuilt tree is installed
// even on a mix of successes and failures: succeeded sites carry their
// new value, failed sites keep their original one, and the failures are
// surfaced through the aggregation rule of OpErrors.
func (d *Document) valueOp(path string, fn ir.Transform) error {
	newRoot, matched, merrs, err := ir.ReplaceWith(d.root, path, fn)
	if err != nil {
		return err
	}
	d.root = newRoot
	if matched == 0 {
		return ir.ErrNoSuchPath
	}
	return OpErrors(merrs).Err()
}

// ValueOpErrors runs fn at path like valueOp but hands back the
// structured failure list instead of collapsing it.
func (d *Document) ValueOpErrors(path string, fn ir.Transform) (OpErrors, error) {
	newRoot, matched, merrs, err := ir.ReplaceWith(d.root, path, fn)
	if err != nil {
		return nil, err
	}
	d.root = newRoot
	if matched == 0 {
		return nil, ir.ErrNoSuchPath
	}
	return OpErrors(merrs), nil
}

// StrLen returns the byte length of the string at path.
func (d *Document) StrLen(path string) (int, error) {
	node, err := ir.SelectFirst(d.root, path)
	if err != nil {
		return 0, err
	}
	if node.Type != ir.StringType {
		return 0, &WrongTypeError{Expected: ir.StringType, Actual: node.Type}
	}
	return len(node.String), nil
}

// ArrLen returns the element count of the array at path.
func (d *Document) ArrLen(path string) (int, error) {
	node, err := ir.SelectFirst(d.root, path)
	if err != nil {
		return 0, err
	}
	if node.Type != ir.ArrayType {
		return 0, &WrongTypeError{Expected: ir.ArrayType, Actual: node.Type}
	}
	return node.Len(), nil
}

// ObjLen returns the key count of the object at path.
func (d *Document) ObjLen(path string) (int, error) {
	node, err := ir.SelectFirst(d.root, path)
	if err != nil {
		return 0, err
	}
	if node.Type != ir.ObjectType {
		return 0, &WrongTypeError{Expected: ir.ObjectType, Actual: node.Type}
	}
	return node.Len(), nil
}

// ObjKeys returns the keys of the object at path in insertion order.
func (d *Document) ObjKeys(path string) ([]string, error) {
	node, err := ir.SelectFirst(d.root, path)
	if err != nil {
		return nil, err
	}
	if node.Type != ir.ObjectType {
		return nil, &WrongTypeError{Expected: ir.ObjectType, Actual: node.Type}
	}
	keys := make([]string, len(node.Keys))
	copy(keys, node.Keys)
	return keys, nil
}

// StrAppend concatenates suffix onto every string matched by path and
// returns the byte length after the last successful append.
func (d *Document) StrAppend(path, suffix string) (int, error) {
	res := 0
	err := d.valueOp(path, func(n *ir.Node) (*ir.Node, error) {
		if n.Type != ir.StringType {
			return nil, &WrongTypeError{Expected: ir.StringType, Actual: n.Type}
		}
		n.String += suffix
		res = len(n.String)
		return n, nil
	})
	return res, err
}

// NumOpBy applies fn(current, operand) to every number matched by path
// and returns the serialized value of the last successful result.
// Results that are not finite fail with ErrNotRepresentable.
func (d *Document) NumOpBy(path string, operand float64, fn func(a, b float64) float64) (string, error) {
	res := ""
	err := d.valueOp(path, func(n *ir.Node) (*ir.Node, error) {
		if n.Type != ir.NumberType {
			return nil, &WrongTypeError{Expected: ir.NumberType, Actual: n.Type}
		}
		cur, ok := n.Float()
		if !ok {
			return nil, ErrNotRepresentable
		}
		out := fn(cur, operand)
		if math.IsNaN(out) || math.IsInf(out, 0) {
			return nil, ErrNotRepresentable
		}
		newNode := ir.FromResult(out)
		res = encode.MustString(newNode)
		return newNode, nil
	})
	return res, err
}

func (d *Document) NumIncrBy(path string, by float64) (string, error) {
	return d.NumOpBy(path, by, func(a, b float64) float64 { return a + b })
}

func (d *Document) NumMultBy(path string, by float64) (string, error) {
	return d.NumOpBy(path, by, func(a, b float64) float64 { return a * b })
}

func (d *Document) NumPowBy(path string, by float64) (string, error) {
	return d.NumOpBy(path, by, math.Pow)
}

// ArrAppend appends values in argument order to every array matched by
// path and returns the length after the last successful append.
func (d *Document) ArrAppend(path string, values ...*ir.Node) (int, error) {
	res := 0
	err := d.valueOp(path, func(n *ir.Node) (*ir.Node, error) {
		if n.Type != ir.ArrayType {
			return nil, &WrongTypeError{Expected: ir.ArrayType, Actual: n.Type}
		}
		for _, v := range values {
			n.Values = append(n.Values, v.Clone())
		}
		res = n.Len()
		return n, nil
	})
	return res, err
}

// ArrInsert inserts values in order starting at index, shifting later
// elements right. A negative index counts from the end; an index whose
// magnitude reaches the array length is out of bounds. Returns the
// length after the last successful insert.
func (d *Document) ArrInsert(path string, index int, values ...*ir.Node) (int, error) {
	res := 0
	err := d.valueOp(path, func(n *ir.Node) (*ir.Node, error) {
		if n.Type != ir.ArrayType {
			return nil, &WrongTypeError{Expected: ir.ArrayType, Actual: n.Type}
		}
		length := n.Len()
		at := index
		if at < 0 {
			at = -at
		}
		if at >= length {
			return nil, ErrIndexOutOfBounds
		}
		at = index
		if at < 0 {
			at = length + at
		}
		out := make([]*ir.Node, 0, length+len(values))
		out = append(out, n.Values[:at]...)
		for _, v := range values {
			out = append(out, v.Clone())
		}
		out = append(out, n.Values[at:]...)
		n.Values = out
		res = n.Len()
		return n, nil
	})
	return res, err
}

// ArrIndex scans the array at path for the first element equal to
// scalar within [start, end), clamped to the array bounds, and returns
// its absolute index or -1. Equality is restricted to scalar JSON
// values: an array or object scalar never matches.
func (d *Document) ArrIndex(path string, scalar *ir.Node, start, end int) (int, error) {
	node, err := ir.SelectFirst(d.root, path)
	if err != nil {
		return 0, err
	}
	if node.Type != ir.ArrayType {
		return 0, &WrongTypeError{Expected: ir.ArrayType, Actual: node.Type}
	}
	if scalar.Type == ir.ArrayType || scalar.Type == ir.ObjectType {
		return -1, nil
	}
	length := node.Len()
	if start < 0 {
		start = 0
	}
	if end > length {
		end = length
	}
	if start > end {
		start = end
	}
	for i := start; i < end; i++ {
		if ir.Equal(node.Values[i], scalar) {
			return i, nil
		}
	}
	return -1, nil
}

// ArrPop removes the element at index from every array matched by path
// and returns the serialized element removed last. Index defaults to the
// last element via -1; negative values count from the end, and an
// out-of-range positive index clamps down to the last valid one.
func (d *Document) ArrPop(path string, index int) (string, error) {
	res := ""
	err := d.valueOp(path, func(n *ir.Node) (*ir.Node, error) {
		if n.Type != ir.ArrayType {
			return nil, &WrongTypeError{Expected: ir.ArrayType, Actual: n.Type}
		}
		length := n.Len()
		at := index
		if at > length-1 {
			at = length - 1
		}
		if at < 0 {
			at = length + at
		}
		if at < 0 || at >= length {
			return nil, ErrIndexOutOfBounds
		}
		popped := n.Values[at]
		n.Values = append(n.Values[:at], n.Values[at+1:]...)
		res = encode.MustString(popped)
		return n, nil
	})
	return res, err
}

// ArrTrim keeps the half-open range [start, min(stop, length)) of every
// array matched by path, with start clamped into the kept range, and
// returns the length after the last successful trim.
func (d *Document) ArrTrim(path string, start, stop int) (int, error) {
	res := 0
	err := d.valueOp(path, func(n *ir.Node) (*ir.Node, error) {
		if n.Type != ir.ArrayType {
			return nil, &WrongTypeError{Expected: ir.ArrayType, Actual: n.Type}
		}
		length := n.Len()
		lo, hi := start, stop
		if lo < 0 {
			lo = 0
		}
		if hi > length {
			hi = length
		}
		if hi < 0 {
			hi = 0
		}
		if lo > hi {
			lo = hi
		}
		n.Values = n.Values[lo:hi]
		res = n.Len()
		return n, nil
	})
	return res, err
}
