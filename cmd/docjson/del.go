package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/docjson-io/docjson"
)

type delConfig struct {
	*cli.Command
	Indent  int    `cli:"name=indent desc='spaces per indent level'"`
	Format  string `cli:"name=format desc='input format: json, yaml, or bson'"`
	InPlace bool   `cli:"name=w desc='rewrite the file instead of printing'"`
}

// DelCommand returns the del subcommand.
func DelCommand() *cli.Command {
	cfg := &delConfig{Indent: 2}
	opts, _ := cli.StructOpts(cfg)
	return cli.NewCommandAt(&cfg.Command, "del").
		WithSynopsis("del <file> <path> - delete the values at path").
		WithOpts(opts...).
		WithRun(cfg.run)
}

func (cfg *delConfig) run(cc *cli.Context, args []string) error {
	args, err := cfg.Parse(cc, args)
	if err != nil {
		cfg.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: del requires a file and a path", cli.ErrUsage)
	}
	doc, err := getDocFile(cc, args[0], cfg.Format)
	if err != nil {
		return err
	}
	path := docjson.NormalizePath(args[1])
	deleted, err := doc.DeletePath(path)
	if err != nil {
		return fmt.Errorf("error deleting %s: %w", path, err)
	}
	fmt.Fprintf(cc.Err, "deleted %d value(s)\n", deleted)
	return writeResult(cfg.InPlace, args[0], cc, doc, cfg.Indent)
}
