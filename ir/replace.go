package ir

import (
	"fmt"
	"strconv"

	"github.com/docjson-io/docjson/debug"
)

// Transform produces the replacement for one matched node. It is invoked
// once per match with a copy of the matched value, so it may mutate its
// argument freely. Returning (nil, nil) removes the match site from its
// parent container.
type Transform func(*Node) (*Node, error)

// MatchError is one per-match transform failure, located by the canonical
// path of the match site.
type MatchError struct {
	Path string
	Err  error
}

func (e *MatchError) Error() string {
	return e.Path + ": " + e.Err.Error()
}

func (e *MatchError) Unwrap() error {
	return e.Err
}

type replaceState struct {
	fn      Transform
	matched int
	errs    []*MatchError
}

// ReplaceWith rebuilds the tree with fn applied at every node matching
// path. The rebuild is copy-on-write: ancestors of a changed node are
// reconstructed fresh, untouched subtrees are shared with the input tree,
// and the input tree itself is never mutated. A failed transform leaves
// its match site unchanged and is collected; processing never aborts
// early. Returns the rebuilt tree (the input tree when nothing changed),
// the number of matches visited, and the collected per-match failures.
// The error return reports path syntax problems only.
func ReplaceWith(root *Node, path string, fn Transform) (*Node, int, []*MatchError, error) {
	p, err := ParsePath(path)
	if err != nil {
		return root, 0, nil, err
	}
	st := &replaceState{fn: fn}
	out := replaceNode(root, p, "$", st)
	if out == nil {
		// the root was removed; an empty document is null
		out = Null()
	}
	if debug.Replace() {
		debug.Logf("replace %s: %d match(es), %d error(s)\n", path, st.matched, len(st.errs))
	}
	return out, st.matched, st.errs, nil
}

// DeletePath removes every node matching path and reports how many of the
// removed nodes held a non-null value. Deleting "$" is the caller's
// responsibility (it amounts to deleting the owning key) and is rejected.
func DeletePath(root *Node, path string) (*Node, int, error) {
	p, err := ParsePath(path)
	if err != nil {
		return root, 0, err
	}
	if p == nil {
		return root, 0, fmt.Errorf("cannot delete the root path; delete the owning key instead")
	}
	deleted := 0
	out, _, _, err := ReplaceWith(root, path, func(n *Node) (*Node, error) {
		if n.Type != NullType {
			deleted++
		}
		return nil, nil
	})
	if err != nil {
		return root, 0, err
	}
	return out, deleted, nil
}

func replaceNode(n *Node, p *Path, loc string, st *replaceState) *Node {
	if p == nil {
		st.matched++
		out, err := st.fn(n.Clone())
		if err != nil {
			st.errs = append(st.errs, &MatchError{Path: loc, Err: err})
			return n
		}
		return out
	}
	if p.Subtree {
		cur := replaceNode(n, p.Next, loc, st)
		if cur == nil || cur.Type.IsLeaf() {
			return cur
		}
		return replaceChildren(cur, p, loc, st, nil)
	}
	switch n.Type {
	case ObjectType, ArrayType:
		return replaceChildren(n, p.Next, loc, st, p)
	default:
		return n
	}
}

// replaceChildren rebuilds a container, descending with next into each
// child selected by sel. A nil sel selects every child (recursive
// descent). Removed children are spliced out; when nothing changes the
// original container is returned unchanged.
func replaceChildren(n *Node, next *Path, loc string, st *replaceState, sel *Path) *Node {
	changed := false
	var keys []string
	if n.Type == ObjectType {
		keys = make([]string, 0, len(n.Keys))
	}
	vals := make([]*Node, 0, len(n.Values))
	for i, v := range n.Values {
		hit := true
		if sel != nil {
			switch n.Type {
			case ObjectType:
				switch {
				case sel.Field != nil:
					hit = n.Keys[i] == *sel.Field
				case sel.FieldAll:
					hit = true
				case sel.Filter != nil:
					hit = sel.Filter.Match(v)
				default:
					hit = false
				}
			case ArrayType:
				switch {
				case sel.Index != nil:
					hit = i == *sel.Index
				case sel.IndexAll:
					hit = true
				case sel.Filter != nil:
					hit = sel.Filter.Match(v)
				default:
					hit = false
				}
			}
		}
		nv := v
		if hit {
			nv = replaceNode(v, next, childLoc(n, loc, i), st)
		}
		if nv == nil {
			changed = true
			continue
		}
		if nv != v {
			changed = true
		}
		if n.Type == ObjectType {
			keys = append(keys, n.Keys[i])
		}
		vals = append(vals, nv)
	}
	if !changed {
		return n
	}
	return &Node{Type: n.Type, Keys: keys, Values: vals}
}

func childLoc(n *Node, loc string, i int) string {
	if n.Type == ObjectType {
		return loc + "." + pathString(n.Keys[i])
	}
	return loc + "[" + strconv.Itoa(i) + "]"
}
