package ir

import "fmt"

// Type enumerates the kinds of JSON value a Node can hold.
type Type int

const (
	NullType Type = iota
	BoolType
	NumberType
	StringType
	ArrayType
	ObjectType
)

// String returns the wire-level type name, as reported by type queries
// and type-mismatch errors.
func (t Type) String() string {
	s, ok := map[Type]string{
		NullType:   "null",
		BoolType:   "boolean",
		NumberType: "number",
		StringType: "string",
		ArrayType:  "array",
		ObjectType: "object",
	}[t]
	if ok {
		return s
	}
	return "<unknown type>"
}

func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Type) UnmarshalText(d []byte) error {
	tt, ok := map[string]Type{
		"null":    NullType,
		"boolean": BoolType,
		"number":  NumberType,
		"string":  StringType,
		"array":   ArrayType,
		"object":  ObjectType,
	}[string(d)]
	if !ok {
		return fmt.Errorf("unrecognized type %q", d)
	}
	*t = tt
	return nil
}

func Types() []Type {
	return []Type{
		NullType,
		BoolType,
		NumberType,
		StringType,
		ArrayType,
		ObjectType,
	}
}

func (t Type) IsLeaf() bool {
	switch t {
	case ArrayType, ObjectType:
		return false
	default:
		return true
	}
}
