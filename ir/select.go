package ir

import (
	"github.com/docjson-io/docjson/debug"
)

// SelectAll returns the nodes matching path in document order. The
// returned nodes are references into the tree and must not be retained
// across a subsequent rebuild. An empty result with a nil error means the
// path is well formed but matches nothing.
func SelectAll(root *Node, path string) ([]*Node, error) {
	p, err := ParsePath(path)
	if err != nil {
		return nil, err
	}
	res := selectAll(nil, root, p)
	if debug.Select() {
		debug.Logf("select %s: %d match(es)\n", path, len(res))
	}
	return res, nil
}

// SelectFirst returns the first match of path, or ErrNoSuchPath when the
// match set is empty.
func SelectFirst(root *Node, path string) (*Node, error) {
	all, err := SelectAll(root, path)
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, ErrNoSuchPath
	}
	return all[0], nil
}

func selectAll(dst []*Node, n *Node, p *Path) []*Node {
	if p == nil {
		return append(dst, n)
	}
	if p.Subtree {
		dst = selectAll(dst, n, p.Next)
		for _, v := range n.Values {
			dst = selectAll(dst, v, p)
		}
		return dst
	}
	switch n.Type {
	case ObjectType:
		switch {
		case p.Field != nil:
			if v := n.Field(*p.Field); v != nil {
				dst = selectAll(dst, v, p.Next)
			}
		case p.FieldAll:
			for _, v := range n.Values {
				dst = selectAll(dst, v, p.Next)
			}
		case p.Filter != nil:
			for _, v := range n.Values {
				if p.Filter.Match(v) {
					dst = selectAll(dst, v, p.Next)
				}
			}
		}
		return dst
	case ArrayType:
		switch {
		case p.Index != nil:
			if idx := *p.Index; 0 <= idx && idx < len(n.Values) {
				dst = selectAll(dst, n.Values[idx], p.Next)
			}
		case p.IndexAll:
			for _, v := range n.Values {
				dst = selectAll(dst, v, p.Next)
			}
		case p.Filter != nil:
			for _, v := range n.Values {
				if p.Filter.Match(v) {
					dst = selectAll(dst, v, p.Next)
				}
			}
		}
		return dst
	default:
		// leaves have no children to match the remaining segments
		return dst
	}
}
