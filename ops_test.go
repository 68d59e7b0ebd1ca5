package docjson

import (
	"errors"
	"strings"
	"testing"

	"github.com/docjson-io/docjson/ir"
)

func TestStrLen(t *testing.T) {
	doc := mustDoc(t, `{"s": "hello", "n": 1}`)
	n, err := doc.StrLen("$.s")
	if err != nil {
		t.Fatal(err)
	}
	if n != 5 {
		t.Errorf("got %d", n)
	}
	var wt *WrongTypeError
	if _, err := doc.StrLen("$.n"); !errors.As(err, &wt) {
		t.Errorf("got %v, want WrongTypeError", err)
	}
	if _, err := doc.StrLen("$.missing"); !errors.Is(err, ir.ErrNoSuchPath) {
		t.Errorf("got %v, want ErrNoSuchPath", err)
	}
}

func TestStrAppend(t *testing.T) {
	doc := mustDoc(t, `{"s": "foo"}`)
	n, err := doc.StrAppend("$.s", "bar")
	if err != nil {
		t.Fatal(err)
	}
	if n != 6 {
		t.Errorf("got %d", n)
	}
	if res, _ := doc.GetJSON("$.s"); res != `"foobar"` {
		t.Errorf("got %q", res)
	}
}

func TestStrAppendMultiMatch(t *testing.T) {
	doc := mustDoc(t, `{"a": "x", "b": 1, "c": "y"}`)
	n, err := doc.StrAppend("$.*", "!")
	if err == nil {
		t.Fatal("expected the non-string site to fail")
	}
	var wt *WrongTypeError
	if !errors.As(err, &wt) {
		t.Errorf("got %v, want WrongTypeError", err)
	}
	// the collapsed error names the failed match site
	if !strings.Contains(err.Error(), "$.b") {
		t.Errorf("error %q does not name the match site", err)
	}
	// successes land even when one site fails
	if n != 2 {
		t.Errorf("got %d", n)
	}
	if res, _ := doc.GetJSON("$"); res != `{"a":"x!","b":1,"c":"y!"}` {
		t.Errorf("got %q", res)
	}
}

func TestNumIncrBy(t *testing.T) {
	doc := mustDoc(t, `{"n": 1}`)
	res, err := doc.NumIncrBy("$.n", 2)
	if err != nil {
		t.Fatal(err)
	}
	// whole-number results keep their integral rendering
	if res != "3" {
		t.Errorf("got %q", res)
	}
	res, err = doc.NumIncrBy("$.n", 0.5)
	if err != nil {
		t.Fatal(err)
	}
	if res != "3.5" {
		t.Errorf("got %q", res)
	}
}

func TestNumMultByAndPowBy(t *testing.T) {
	doc := mustDoc(t, `{"n": 3}`)
	res, err := doc.NumMultBy("$.n", 4)
	if err != nil {
		t.Fatal(err)
	}
	if res != "12" {
		t.Errorf("got %q", res)
	}
	res, err = doc.NumPowBy("$.n", 2)
	if err != nil {
		t.Fatal(err)
	}
	if res != "144" {
		t.Errorf("got %q", res)
	}
}

func TestNumOpNotRepresentable(t *testing.T) {
	doc := mustDoc(t, `{"n": 1e308}`)
	if _, err := doc.NumMultBy("$.n", 1e308); !errors.Is(err, ErrNotRepresentable) {
		t.Errorf("got %v, want ErrNotRepresentable", err)
	}
	// the failed site keeps its original value
	if res, _ := doc.GetJSON("$.n"); res != "1e308" {
		t.Errorf("got %q", res)
	}
}

func TestNumOpWrongType(t *testing.T) {
	doc := mustDoc(t, `{"s": "x"}`)
	var wt *WrongTypeError
	if _, err := doc.NumIncrBy("$.s", 1); !errors.As(err, &wt) {
		t.Errorf("got %v, want WrongTypeError", err)
	}
}

func TestArrAppend(t *testing.T) {
	doc := mustDoc(t, `{"b": [1, 2, 3]}`)
	n, err := doc.ArrAppend("$.b", ir.FromInt(4), ir.FromString("x"))
	if err != nil {
		t.Fatal(err)
	}
	if n != 5 {
		t.Errorf("got %d", n)
	}
	if res, _ := doc.GetJSON("$.b"); res != `[1,2,3,4,"x"]` {
		t.Errorf("got %q", res)
	}
}

func TestArrInsert(t *testing.T) {
	doc := mustDoc(t, `{"b": [1, 2, 3]}`)
	n, err := doc.ArrInsert("$.b", 1, ir.FromInt(9))
	if err != nil {
		t.Fatal(err)
	}
	if n != 4 {
		t.Errorf("got %d", n)
	}
	if res, _ := doc.GetJSON("$.b"); res != `[1,9,2,3]` {
		t.Errorf("got %q", res)
	}
	// a negative index inserts before the element it addresses
	if _, err := doc.ArrInsert("$.b", -1, ir.FromInt(8)); err != nil {
		t.Fatal(err)
	}
	if res, _ := doc.GetJSON("$.b"); res != `[1,9,2,8,3]` {
		t.Errorf("got %q", res)
	}
	// index magnitude reaching the length is out of bounds
	if _, err := doc.ArrInsert("$.b", 5, ir.FromInt(0)); !errors.Is(err, ErrIndexOutOfBounds) {
		t.Errorf("got %v, want ErrIndexOutOfBounds", err)
	}
	if _, err := doc.ArrInsert("$.b", -5, ir.FromInt(0)); !errors.Is(err, ErrIndexOutOfBounds) {
		t.Errorf("got %v, want ErrIndexOutOfBounds", err)
	}
}

func TestArrIndex(t *testing.T) {
	doc := mustDoc(t, `{"b": [1, "x", true, null, 2.5, 1]}`)
	tests := []struct {
		scalar     *ir.Node
		start, end int
		want       int
	}{
		{ir.FromString("x"), 0, 6, 1},
		{ir.FromBool(true), 0, 6, 2},
		{ir.Null(), 0, 6, 3},
		{ir.FromFloat(2.5), 0, 6, 4},
		{ir.FromInt(1), 0, 6, 0},
		// the returned index is absolute, not range-relative
		{ir.FromInt(1), 2, 6, 5},
		{ir.FromInt(1), 1, 3, -1},
		{ir.FromString("nope"), 0, 6, -1},
		// out-of-bounds ranges clamp instead of failing
		{ir.FromInt(1), -10, 100, 0},
		{ir.FromInt(1), 4, 2, -1},
	}
	for i, tt := range tests {
		got, err := doc.ArrIndex("$.b", tt.scalar, tt.start, tt.end)
		if err != nil {
			t.Errorf("test %d: %s", i, err)
			continue
		}
		if got != tt.want {
			t.Errorf("test %d: got %d, want %d", i, got, tt.want)
		}
	}
}

func TestArrIndexNonScalar(t *testing.T) {
	doc := mustDoc(t, `{"b": [[1], {"a": 1}]}`)
	got, err := doc.ArrIndex("$.b", ir.NewArray(ir.FromInt(1)), 0, 2)
	if err != nil {
		t.Fatal(err)
	}
	if got != -1 {
		t.Errorf("array scalar matched at %d", got)
	}
}

func TestArrPop(t *testing.T) {
	doc := mustDoc(t, `{"b": [1, 2, 3]}`)
	res, err := doc.ArrPop("$.b", -1)
	if err != nil {
		t.Fatal(err)
	}
	if res != "3" {
		t.Errorf("got %q", res)
	}
	res, err = doc.ArrPop("$.b", 0)
	if err != nil {
		t.Fatal(err)
	}
	if res != "1" {
		t.Errorf("got %q", res)
	}
	// a past-the-end index clamps to the last element
	res, err = doc.ArrPop("$.b", 100)
	if err != nil {
		t.Fatal(err)
	}
	if res != "2" {
		t.Errorf("got %q", res)
	}
	if _, err := doc.ArrPop("$.b", -1); !errors.Is(err, ErrIndexOutOfBounds) {
		t.Errorf("pop from empty array: got %v, want ErrIndexOutOfBounds", err)
	}
}

func TestArrTrim(t *testing.T) {
	doc := mustDoc(t, `{"b": [0, 1, 2, 3, 4]}`)
	n, err := doc.ArrTrim("$.b", 1, 4)
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Errorf("got %d", n)
	}
	if res, _ := doc.GetJSON("$.b"); res != `[1,2,3]` {
		t.Errorf("got %q", res)
	}
	// bounds clamp to the array
	if n, _ = doc.ArrTrim("$.b", -5, 100); n != 3 {
		t.Errorf("got %d", n)
	}
	// an inverted range empties the array
	if n, _ = doc.ArrTrim("$.b", 2, 1); n != 0 {
		t.Errorf("got %d", n)
	}
}

func TestObjKeysAndLens(t *testing.T) {
	doc := mustDoc(t, `{"a": 1, "b": [1, 2], "c": {"x": 1, "y": 2, "z": 3}}`)
	keys, err := doc.ObjKeys("$")
	if err != nil {
		t.Fatal(err)
	}
	if len(keys) != 3 || keys[0] != "a" || keys[1] != "b" || keys[2] != "c" {
		t.Errorf("got %v", keys)
	}
	n, err := doc.ObjLen("$.c")
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Errorf("got %d", n)
	}
	n, err = doc.ArrLen("$.b")
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("got %d", n)
	}
	var wt *WrongTypeError
	if _, err := doc.ObjKeys("$.b"); !errors.As(err, &wt) {
		t.Errorf("got %v, want WrongTypeError", err)
	}
}

func TestValueOpErrors(t *testing.T) {
	doc := mustDoc(t, `[1, "x", 2]`)
	merrs, err := doc.ValueOpErrors("$[*]", func(n *ir.Node) (*ir.Node, error) {
		if n.Type != ir.NumberType {
			return nil, ErrNotRepresentable
		}
		return n, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(merrs) != 1 {
		t.Fatalf("got %d errors", len(merrs))
	}
	if merrs[0].Path != "$[1]" {
		t.Errorf("got path %q", merrs[0].Path)
	}
	if !errors.Is(merrs.Err(), ErrNotRepresentable) {
		t.Errorf("single failure should unwrap to its cause: %v", merrs.Err())
	}
	if !strings.Contains(merrs.Err().Error(), "$[1]") {
		t.Errorf("collapsed error %q does not name the match site", merrs.Err())
	}
}

// End-to-end walk through the documented engine scenario.
func TestEngineScenario(t *testing.T) {
	doc := mustDoc(t, `{"a": 1, "b": [1, 2, 3]}`)
	res, err := doc.NumIncrBy("$.a", 2)
	if err != nil {
		t.Fatal(err)
	}
	if res != "3" {
		t.Errorf("incr: got %q", res)
	}
	n, err := doc.ArrAppend("$.b", ir.FromInt(4))
	if err != nil {
		t.Fatal(err)
	}
	if n != 4 {
		t.Errorf("append: got %d", n)
	}
	popped, err := doc.ArrPop("$.b", -1)
	if err != nil {
		t.Fatal(err)
	}
	if popped != "4" {
		t.Errorf("pop: got %q", popped)
	}
	keys, err := doc.ObjKeys("$")
	if err != nil {
		t.Fatal(err)
	}
	if len(keys) != 2 || keys[0] != "a" || keys[1] != "b" {
		t.Errorf("keys: got %v", keys)
	}
	if _, err := doc.DeletePath("$.a"); err != nil {
		t.Fatal(err)
	}
	if _, err := doc.GetJSON("$.a"); !errors.Is(err, ir.ErrNoSuchPath) {
		t.Errorf("get after delete: got %v, want ErrNoSuchPath", err)
	}
	if res, _ := doc.GetJSON("$"); res != `{"b":[1,2,3]}` {
		t.Errorf("final state: got %q", res)
	}
}
