package ir

import (
	"math"
	"strconv"
	"strings"
)

// Node is one JSON value. Objects keep their keys in insertion order via
// the parallel Keys/Values slices; arrays use Values alone. Numbers keep
// the raw literal in Number alongside exactly one of Int64/Float64 so that
// integral and floating values round-trip without loss.
type Node struct {
	Type Type

	Keys   []string
	Values []*Node

	String  string
	Bool    bool
	Number  string
	Int64   *int64
	Float64 *float64
}

func Null() *Node {
	return &Node{Type: NullType}
}

func FromBool(v bool) *Node {
	return &Node{Type: BoolType, Bool: v}
}

func FromString(v string) *Node {
	return &Node{Type: StringType, String: v}
}

func FromInt(v int64) *Node {
	return &Node{Type: NumberType, Int64: &v}
}

func FromFloat(v float64) *Node {
	return &Node{Type: NumberType, Float64: &v}
}

// FromNumberLiteral builds a number node from a JSON number literal,
// keeping the integral/floating distinction.
func FromNumberLiteral(lit string) (*Node, error) {
	n := &Node{Type: NumberType, Number: lit}
	if !strings.ContainsAny(lit, ".eE") {
		i, err := strconv.ParseInt(lit, 10, 64)
		if err == nil {
			n.Int64 = &i
			return n, nil
		}
		// out of int64 range, fall through to float
	}
	f, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return nil, err
	}
	n.Float64 = &f
	return n, nil
}

func NewArray(elems ...*Node) *Node {
	return &Node{Type: ArrayType, Values: elems}
}

func NewObject() *Node {
	return &Node{Type: ObjectType}
}

// Float returns the numeric value of a number node as a float64.
func (n *Node) Float() (float64, bool) {
	if n.Type != NumberType {
		return 0, false
	}
	if n.Int64 != nil {
		return float64(*n.Int64), true
	}
	if n.Float64 != nil {
		return *n.Float64, true
	}
	return 0, false
}

// FromResult builds a number node from a computed float64, restoring an
// integral representation when the result is a whole number that fits.
func FromResult(f float64) *Node {
	if f == math.Trunc(f) && math.Abs(f) < 1<<53 {
		return FromInt(int64(f))
	}
	return FromFloat(f)
}

// KeyIndex returns the position of key in an object node, or -1.
func (n *Node) KeyIndex(key string) int {
	for i, k := range n.Keys {
		if k == key {
			return i
		}
	}
	return -1
}

// Field returns the value stored under key in an object node, or nil.
func (n *Node) Field(key string) *Node {
	if i := n.KeyIndex(key); i >= 0 {
		return n.Values[i]
	}
	return nil
}

// SetField replaces the value under key, appending the field if absent.
func (n *Node) SetField(key string, v *Node) {
	if i := n.KeyIndex(key); i >= 0 {
		n.Values[i] = v
		return
	}
	n.Keys = append(n.Keys, key)
	n.Values = append(n.Values, v)
}

// Len reports the element count of an array or the key count of an object.
func (n *Node) Len() int {
	return len(n.Values)
}

func (n *Node) Clone() *Node {
	res := &Node{}
	return n.CloneTo(res)
}

func (n *Node) CloneTo(dst *Node) *Node {
	dst.Type = n.Type
	dst.String = n.String
	dst.Bool = n.Bool
	dst.Number = n.Number
	if n.Int64 != nil {
		i := *n.Int64
		dst.Int64 = &i
	}
	if n.Float64 != nil {
		f := *n.Float64
		dst.Float64 = &f
	}
	if n.Keys != nil {
		dst.Keys = make([]string, len(n.Keys))
		copy(dst.Keys, n.Keys)
	}
	if n.Values != nil {
		dst.Values = make([]*Node, len(n.Values))
		for i, v := range n.Values {
			dst.Values[i] = v.Clone()
		}
	}
	return dst
}
