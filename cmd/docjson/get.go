package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/docjson-io/docjson"
	"github.com/docjson-io/docjson/encode"
	"github.com/docjson-io/docjson/ir"
)

type getConfig struct {
	*cli.Command
	Indent int    `cli:"name=indent desc='spaces per indent level'"`
	Color  bool   `cli:"name=color desc='force colorized output'"`
	Format string `cli:"name=format desc='input format: json, yaml, or bson'"`
	All    bool   `cli:"name=all aliases=a desc='print every match, not just the first'"`
}

// GetCommand returns the get subcommand.
func GetCommand() *cli.Command {
	cfg := &getConfig{Indent: 2}
	opts, _ := cli.StructOpts(cfg)
	return cli.NewCommandAt(&cfg.Command, "get").
		WithSynopsis("get <file> <path> - print the values at path").
		WithOpts(opts...).
		WithRun(cfg.run)
}

func (cfg *getConfig) run(cc *cli.Context, args []string) error {
	args, err := cfg.Parse(cc, args)
	if err != nil {
		cfg.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: get requires a file and a path", cli.ErrUsage)
	}
	doc, err := getDocFile(cc, args[0], cfg.Format)
	if err != nil {
		return err
	}
	path := docjson.NormalizePath(args[1])
	opts := encOpts(cc, cfg.Indent, cfg.Color)
	if !cfg.All {
		res, err := doc.GetJSON(path, opts...)
		if err != nil {
			return fmt.Errorf("error querying %s: %w", path, err)
		}
		fmt.Fprintln(cc.Out, res)
		return nil
	}
	matches, err := ir.SelectAll(doc.Root(), path)
	if err != nil {
		return fmt.Errorf("error querying %s: %w", path, err)
	}
	for _, m := range matches {
		fmt.Fprintln(cc.Out, encode.MustString(m, opts...))
	}
	return nil
}
