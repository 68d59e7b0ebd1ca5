package ir

import (
	"testing"
)

func TestFilterMatch(t *testing.T) {
	tests := []struct {
		src  string
		node *Node
		want bool
	}{
		{"@ > 1", FromInt(2), true},
		{"@ > 1", FromInt(1), false},
		{"@ == 'x'", FromString("x"), true},
		{"@ == 'x'", FromString("y"), false},
		{"@.on", obj("on", FromBool(true)), true},
		{"@.on", obj("on", FromBool(false)), false},
		{"@.n > 2 && @.n < 5", obj("n", FromInt(3)), true},
		{"@.n > 2 && @.n < 5", obj("n", FromInt(7)), false},
		// missing fields and type mismatches never match
		{"@.missing > 1", obj("n", FromInt(3)), false},
		{"@ > 1", FromString("nope"), false},
	}
	for _, tt := range tests {
		f, err := newFilter(tt.src)
		if err != nil {
			t.Errorf("%q: %s", tt.src, err)
			continue
		}
		if got := f.Match(tt.node); got != tt.want {
			t.Errorf("%q on %v: got %v, want %v", tt.src, tt.node, got, tt.want)
		}
	}
}

func TestFilterBadExpr(t *testing.T) {
	if _, err := newFilter("@ >"); err == nil {
		t.Error("expected a compile error")
	}
}

func TestRewriteAt(t *testing.T) {
	tests := []struct {
		in, out string
	}{
		{"@ > 1", "value > 1"},
		{"@.a == @.b", "value.a == value.b"},
		{`@ == "a@b"`, `value == "a@b"`},
		{`@.mail == '@'`, `value.mail == '@'`},
	}
	for _, tt := range tests {
		if got := rewriteAt(tt.in); got != tt.out {
			t.Errorf("rewriteAt(%q) = %q, want %q", tt.in, got, tt.out)
		}
	}
}

func TestEqual(t *testing.T) {
	tests := []struct {
		a, b *Node
		want bool
	}{
		{FromInt(2), FromFloat(2.0), true},
		{FromInt(2), FromInt(3), false},
		{FromString("a"), FromString("a"), true},
		{FromString("a"), FromInt(1), false},
		{Null(), Null(), true},
		{arr(FromInt(1), FromInt(2)), arr(FromInt(1), FromInt(2)), true},
		{arr(FromInt(1)), arr(FromInt(1), FromInt(2)), false},
		{obj("a", FromInt(1)), obj("a", FromInt(1)), true},
		{obj("a", FromInt(1)), obj("b", FromInt(1)), false},
	}
	for i, tt := range tests {
		if got := Equal(tt.a, tt.b); got != tt.want {
			t.Errorf("test %d: got %v, want %v", i, got, tt.want)
		}
	}
}
