package parse

import "errors"

var (
	// ErrParse reports a payload that is not well formed for its
	// declared format.
	ErrParse = errors.New("parse error")
	// ErrUnsupportedFormat reports a format with no codec for the
	// requested direction.
	ErrUnsupportedFormat = errors.New("unsupported format")
)
