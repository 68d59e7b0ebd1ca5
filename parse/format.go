package parse

import (
	"fmt"
	"strings"
)

// Format identifies a payload encoding accepted on ingest. Output is
// always JSON; see the encode package.
type Format int

const (
	JSONFormat Format = iota
	BSONFormat
	YAMLFormat
)

func (f Format) String() string {
	switch f {
	case JSONFormat:
		return "JSON"
	case BSONFormat:
		return "BSON"
	case YAMLFormat:
		return "YAML"
	default:
		return "<unknown format>"
	}
}

// FormatFromString resolves a caller-supplied format name,
// case-insensitively.
func FormatFromString(s string) (Format, error) {
	switch strings.ToUpper(s) {
	case "JSON":
		return JSONFormat, nil
	case "BSON":
		return BSONFormat, nil
	case "YAML":
		return YAMLFormat, nil
	default:
		return JSONFormat, fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}
