package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/docjson-io/docjson"
)

type diffConfig struct {
	*cli.Command
	Format string `cli:"name=format desc='input format: json, yaml, or bson'"`
}

// DiffCommand returns the diff subcommand.
func DiffCommand() *cli.Command {
	cfg := &diffConfig{}
	opts, _ := cli.StructOpts(cfg)
	return cli.NewCommandAt(&cfg.Command, "diff").
		WithSynopsis("diff <file-a> <file-b> - diff two documents").
		WithOpts(opts...).
		WithRun(cfg.run)
}

func (cfg *diffConfig) run(cc *cli.Context, args []string) error {
	args, err := cfg.Parse(cc, args)
	if err != nil {
		cfg.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires 2 args, got %v", cli.ErrUsage, args)
	}
	a, err := getDocFile(cc, args[0], cfg.Format)
	if err != nil {
		return err
	}
	b, err := getDocFile(cc, args[1], cfg.Format)
	if err != nil {
		return err
	}
	res := docjson.Diff(a, b)
	if res == "" {
		return nil
	}
	fmt.Fprintln(cc.Out, res)
	return cli.ExitCodeErr(1)
}
