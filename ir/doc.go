// Package ir holds the in-memory JSON tree and the path engine that
// selects and rewrites nodes within it.
//
// A document is a tree of *Node values. Paths are $-anchored expressions
// supporting child access (.field, ['field'], [i]), wildcards (.*, [*]),
// recursive descent (..), and filters ([?(@.x > 1)]). SelectAll and
// SelectFirst read from a tree; ReplaceWith produces a new tree with the
// matched nodes transformed, sharing all untouched subtrees with the
// input (copy-on-write).
package ir
