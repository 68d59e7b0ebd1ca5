package docjson

import "strings"

// NormalizePath rewrites a legacy path string to canonical $-anchored
// form. Legacy paths predate the path expression language: "." meant the
// root and paths could start at a bare field name. Canonical input passes
// through unchanged, and no validation happens here; malformed
// expressions are rejected by the path engine.
func NormalizePath(raw string) string {
	switch {
	case raw == ".":
		return "$"
	case strings.HasPrefix(raw, "."):
		return "$" + raw
	case strings.HasPrefix(raw, "$"):
		return raw
	default:
		return "$." + raw
	}
}
