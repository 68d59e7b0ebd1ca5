package ir

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestReplaceWithSingle(t *testing.T) {
	doc := obj("a", FromInt(1), "b", FromInt(2))
	out, matched, merrs, err := ReplaceWith(doc, "$.a", func(n *Node) (*Node, error) {
		return FromInt(10), nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if matched != 1 || len(merrs) != 0 {
		t.Fatalf("matched=%d errs=%d", matched, len(merrs))
	}
	if d := cmp.Diff(obj("a", FromInt(10), "b", FromInt(2)), out); d != "" {
		t.Errorf("result tree differs (-want +got):\n%s", d)
	}
	// the input tree is never mutated
	if d := cmp.Diff(obj("a", FromInt(1), "b", FromInt(2)), doc); d != "" {
		t.Errorf("input tree was mutated (-want +got):\n%s", d)
	}
}

func TestReplaceWithSharesUntouchedSubtrees(t *testing.T) {
	shared := obj("deep", arr(FromInt(1), FromInt(2)))
	doc := obj("keep", shared, "change", FromInt(0))
	out, _, _, err := ReplaceWith(doc, "$.change", func(n *Node) (*Node, error) {
		return FromInt(9), nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if out == doc {
		t.Fatal("expected a rebuilt root")
	}
	if out.Field("keep") != shared {
		t.Errorf("untouched subtree was copied instead of shared")
	}
}

func TestReplaceWithNoChange(t *testing.T) {
	doc := obj("a", FromInt(1))
	out, matched, _, err := ReplaceWith(doc, "$.missing", func(n *Node) (*Node, error) {
		return FromInt(9), nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if matched != 0 {
		t.Errorf("matched=%d", matched)
	}
	if out != doc {
		t.Errorf("unchanged tree should be returned as-is")
	}
}

func TestReplaceWithMixedOutcomes(t *testing.T) {
	boom := errors.New("boom")
	doc := arr(FromInt(1), FromString("x"), FromInt(3))
	out, matched, merrs, err := ReplaceWith(doc, "$[*]", func(n *Node) (*Node, error) {
		if n.Type != NumberType {
			return nil, boom
		}
		v, _ := n.Float()
		return FromResult(v * 10), nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if matched != 3 {
		t.Errorf("matched=%d", matched)
	}
	if len(merrs) != 1 {
		t.Fatalf("errs=%d", len(merrs))
	}
	if merrs[0].Path != "$[1]" {
		t.Errorf("error path %q", merrs[0].Path)
	}
	if !errors.Is(merrs[0], boom) {
		t.Errorf("unwrap failed: %v", merrs[0])
	}
	// failed site keeps its original value, successes carry theirs
	if !Equal(out, arr(FromInt(10), FromString("x"), FromInt(30))) {
		t.Errorf("unexpected result tree")
	}
}

func TestReplaceWithTransformMutatesCopy(t *testing.T) {
	doc := obj("a", arr(FromInt(1)))
	out, _, _, err := ReplaceWith(doc, "$.a", func(n *Node) (*Node, error) {
		n.Values = append(n.Values, FromInt(2))
		return n, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if doc.Field("a").Len() != 1 {
		t.Errorf("transform argument aliased the input tree")
	}
	if out.Field("a").Len() != 2 {
		t.Errorf("result missing appended element")
	}
}

func TestReplaceWithRootRemoval(t *testing.T) {
	doc := obj("a", FromInt(1))
	out, matched, _, err := ReplaceWith(doc, "$", func(n *Node) (*Node, error) {
		return nil, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if matched != 1 {
		t.Errorf("matched=%d", matched)
	}
	if out.Type != NullType {
		t.Errorf("removed root should become null, got %s", out.Type)
	}
}

func TestDeletePath(t *testing.T) {
	doc := obj(
		"a", FromInt(1),
		"b", arr(FromInt(1), FromInt(2), FromInt(3)),
	)
	out, deleted, err := DeletePath(doc, "$.b[1]")
	if err != nil {
		t.Fatal(err)
	}
	if deleted != 1 {
		t.Errorf("deleted=%d", deleted)
	}
	if !Equal(out, obj("a", FromInt(1), "b", arr(FromInt(1), FromInt(3)))) {
		t.Errorf("element was not spliced out")
	}

	out, deleted, err = DeletePath(out, "$.a")
	if err != nil {
		t.Fatal(err)
	}
	if deleted != 1 {
		t.Errorf("deleted=%d", deleted)
	}
	if out.Field("a") != nil {
		t.Errorf("key survived deletion")
	}
	// deleting the same path again is a no-op
	out2, deleted, err := DeletePath(out, "$.a")
	if err != nil {
		t.Fatal(err)
	}
	if deleted != 0 {
		t.Errorf("deleted=%d on second delete", deleted)
	}
	if out2 != out {
		t.Errorf("no-op delete should return the tree unchanged")
	}
}

func TestDeletePathCountsNonNull(t *testing.T) {
	doc := arr(Null(), FromInt(1), Null())
	out, deleted, err := DeletePath(doc, "$[*]")
	if err != nil {
		t.Fatal(err)
	}
	if deleted != 1 {
		t.Errorf("deleted=%d, want only the non-null element counted", deleted)
	}
	if out.Len() != 0 {
		t.Errorf("array should be empty, has %d elements", out.Len())
	}
}

func TestDeletePathRoot(t *testing.T) {
	if _, _, err := DeletePath(obj(), "$"); err == nil {
		t.Error("deleting the root path should fail")
	}
}

func TestDeletePathSubtree(t *testing.T) {
	doc := obj(
		"a", obj("x", FromInt(1)),
		"b", obj("c", obj("x", FromInt(2))),
	)
	out, deleted, err := DeletePath(doc, "$..x")
	if err != nil {
		t.Fatal(err)
	}
	if deleted != 2 {
		t.Errorf("deleted=%d", deleted)
	}
	if !Equal(out, obj("a", obj(), "b", obj("c", obj()))) {
		t.Errorf("descent delete left values behind")
	}
}
