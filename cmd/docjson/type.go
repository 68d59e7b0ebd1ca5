package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/docjson-io/docjson"
)

type typeConfig struct {
	*cli.Command
	Format string `cli:"name=format desc='input format: json, yaml, or bson'"`
}

// TypeCommand returns the type subcommand.
func TypeCommand() *cli.Command {
	cfg := &typeConfig{}
	opts, _ := cli.StructOpts(cfg)
	return cli.NewCommandAt(&cfg.Command, "type").
		WithSynopsis("type <file> <path> - print the type name at path").
		WithOpts(opts...).
		WithRun(cfg.run)
}

func (cfg *typeConfig) run(cc *cli.Context, args []string) error {
	args, err := cfg.Parse(cc, args)
	if err != nil {
		cfg.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: type requires a file and a path", cli.ErrUsage)
	}
	doc, err := getDocFile(cc, args[0], cfg.Format)
	if err != nil {
		return err
	}
	res, err := doc.TypeAt(docjson.NormalizePath(args[1]))
	if err != nil {
		return err
	}
	fmt.Fprintln(cc.Out, res)
	return nil
}
