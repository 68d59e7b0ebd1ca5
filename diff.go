package docjson

import (
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"

	"github.com/docjson-io/docjson/encode"
)

// Diff renders a character-level diff between the pretty-printed JSON of
// two documents, suitable for terminal display. Identical documents
// produce an empty string.
func Diff(from, to *Document) string {
	fromText := encode.MustString(from.Root(), encode.Indent(2))
	toText := encode.MustString(to.Root(), encode.Indent(2))
	if fromText == toText {
		return ""
	}
	diffCfg := diffpatch.New()
	diffs := diffCfg.DiffMain(fromText, toText, true)
	diffs = diffCfg.DiffCleanupSemantic(diffs)
	return diffCfg.DiffPrettyText(diffs)
}
