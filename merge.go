package docjson

import (
	jsonpatch "github.com/evanphx/json-patch"

	"github.com/docjson-io/docjson/ir"
	"github.com/docjson-io/docjson/parse"
)

// MergePatch applies an RFC 7386 merge patch to the first match of path
// and stores the result back at every match site. The patch payload is
// JSON text.
func (d *Document) MergePatch(path string, patch []byte) error {
	target, err := ir.SelectFirst(d.root, path)
	if err != nil {
		return err
	}
	merged, err := jsonpatch.MergePatch([]byte(New(target).Serialize()), patch)
	if err != nil {
		return err
	}
	node, err := parse.Parse(merged)
	if err != nil {
		return err
	}
	return d.SetAtPath(path, node)
}
