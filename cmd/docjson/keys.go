package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/docjson-io/docjson"
)

type keysConfig struct {
	*cli.Command
	Format string `cli:"name=format desc='input format: json, yaml, or bson'"`
}

// KeysCommand returns the keys subcommand.
func KeysCommand() *cli.Command {
	cfg := &keysConfig{}
	opts, _ := cli.StructOpts(cfg)
	return cli.NewCommandAt(&cfg.Command, "keys").
		WithSynopsis("keys <file> <path> - print object keys at path").
		WithOpts(opts...).
		WithRun(cfg.run)
}

func (cfg *keysConfig) run(cc *cli.Context, args []string) error {
	args, err := cfg.Parse(cc, args)
	if err != nil {
		cfg.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: keys requires a file and a path", cli.ErrUsage)
	}
	doc, err := getDocFile(cc, args[0], cfg.Format)
	if err != nil {
		return err
	}
	keys, err := doc.ObjKeys(docjson.NormalizePath(args[1]))
	if err != nil {
		return err
	}
	for _, k := range keys {
		fmt.Fprintln(cc.Out, k)
	}
	return nil
}
