package encode

import (
	"bytes"

	"github.com/docjson-io/docjson/ir"
)

// MustString serializes node to a string. Encoding to a buffer cannot
// fail, so no error is returned.
func MustString(node *ir.Node, opts ...EncodeOption) string {
	buf := bytes.NewBuffer(nil)
	if err := Encode(node, buf, opts...); err != nil {
		panic(err)
	}
	return buf.String()
}
