package ir

import "errors"

var (
	// ErrPathSyntax reports a malformed path expression.
	ErrPathSyntax = errors.New("invalid path")
	// ErrNoSuchPath reports a well-formed path with no matches where the
	// operation requires at least one.
	ErrNoSuchPath = errors.New("path does not exist")
)
