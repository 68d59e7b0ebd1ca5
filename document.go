package docjson

import (
	"fmt"

	"github.com/docjson-io/docjson/encode"
	"github.com/docjson-io/docjson/ir"
	"github.com/docjson-io/docjson/parse"
)

// Document owns one JSON tree for one stored key. Every write operation
// swaps the root for a rebuilt tree; the engine assumes the caller
// serializes access per key, so no locking happens here.
type Document struct {
	root *ir.Node
}

// New wraps an existing tree.
func New(root *ir.Node) *Document {
	return &Document{root: root}
}

// FromBytes parses a payload in its declared format into a new Document.
func FromBytes(d []byte, opts ...parse.ParseOption) (*Document, error) {
	root, err := parse.Parse(d, opts...)
	if err != nil {
		return nil, err
	}
	return &Document{root: root}, nil
}

func (d *Document) Root() *ir.Node {
	return d.root
}

// SetRoot replaces the whole tree. Root assignment always succeeds.
func (d *Document) SetRoot(v *ir.Node) {
	d.root = v
}

// SetAtPath replaces every node matching path with v. For non-root paths
// it fails with ir.ErrNoSuchPath when nothing matched; the root path
// replaces the whole tree.
func (d *Document) SetAtPath(path string, v *ir.Node) error {
	if path == "$" {
		d.root = v
		return nil
	}
	newRoot, matched, _, err := ir.ReplaceWith(d.root, path, func(*ir.Node) (*ir.Node, error) {
		return v.Clone(), nil
	})
	if err != nil {
		return err
	}
	if matched == 0 {
		return ir.ErrNoSuchPath
	}
	d.root = newRoot
	return nil
}

// GetJSON serializes the first match of path. Fails with ir.ErrNoSuchPath
// when the match set is empty.
func (d *Document) GetJSON(path string, opts ...encode.EncodeOption) (string, error) {
	node, err := ir.SelectFirst(d.root, path)
	if err != nil {
		return "", err
	}
	return encode.MustString(node, opts...), nil
}

// GetMulti resolves each path independently to its first match (null when
// absent) and assembles one JSON object keyed by the literal path
// strings.
func (d *Document) GetMulti(paths []string, opts ...encode.EncodeOption) (string, error) {
	obj := ir.NewObject()
	for _, p := range paths {
		node, err := ir.SelectFirst(d.root, p)
		if err == ir.ErrNoSuchPath {
			node = ir.Null()
		} else if err != nil {
			return "", err
		}
		obj.SetField(p, node)
	}
	return encode.MustString(obj, opts...), nil
}

// TypeAt returns the wire-level type name of the first match of path.
func (d *Document) TypeAt(path string) (string, error) {
	node, err := ir.SelectFirst(d.root, path)
	if err != nil {
		return "", err
	}
	return node.Type.String(), nil
}

// DeletePath removes every node matching path and returns the number of
// removed non-null values. The root path is the owning key's lifecycle
// and is handled by the key-value layer, not here.
func (d *Document) DeletePath(path string) (int, error) {
	newRoot, deleted, err := ir.DeletePath(d.root, path)
	if err != nil {
		return 0, err
	}
	d.root = newRoot
	return deleted, nil
}

// Serialize renders the whole tree as compact JSON text, the storage
// form used by snapshots.
func (d *Document) Serialize() string {
	return encode.MustString(d.root)
}

// SerializeAs renders the tree in the requested format. JSON is the only
// supported output encoding; BSON and YAML are ingest-only.
func (d *Document) SerializeAs(f parse.Format) (string, error) {
	if f != parse.JSONFormat {
		return "", fmt.Errorf("%w: cannot serialize to %s", parse.ErrUnsupportedFormat, f)
	}
	return d.Serialize(), nil
}
