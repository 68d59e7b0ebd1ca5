package main

import (
	"github.com/scott-cotton/cli"
)

const usageText = `docjson - path-addressed JSON document tool

Usage:
  docjson get <file> <path>                 Print the values at path
  docjson set <file> <path> <json>          Replace the values at path
  docjson del <file> <path>                 Delete the values at path
  docjson type <file> <path>                Print the type name at path
  docjson keys <file> <path>                Print object keys at path
  docjson diff <file-a> <file-b>            Diff two documents

Paths are $-anchored expressions; legacy dot paths are accepted and
normalized. Files may be "-" for stdin.

Examples:
  docjson get doc.json '$.store.book[*].title'
  docjson set doc.json '$.user.name' '"ada"'
  docjson del doc.json '$..stale'
  docjson diff a.json b.json`

// Root returns the docjson command tree.
func Root() *cli.Command {
	return cli.NewCommand("docjson").
		WithSynopsis("docjson - path-addressed JSON document tool").
		WithDescription(usageText).
		WithSubs(
			GetCommand(),
			SetCommand(),
			DelCommand(),
			TypeCommand(),
			KeysCommand(),
			DiffCommand(),
		)
}
