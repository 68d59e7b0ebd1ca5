package main

import (
	"fmt"
	"os"

	"github.com/scott-cotton/cli"

	"github.com/docjson-io/docjson"
	"github.com/docjson-io/docjson/encode"
	"github.com/docjson-io/docjson/parse"
)

type setConfig struct {
	*cli.Command
	Indent  int    `cli:"name=indent desc='spaces per indent level'"`
	Format  string `cli:"name=format desc='input format: json, yaml, or bson'"`
	InPlace bool   `cli:"name=w desc='rewrite the file instead of printing'"`
}

// SetCommand returns the set subcommand.
func SetCommand() *cli.Command {
	cfg := &setConfig{Indent: 2}
	opts, _ := cli.StructOpts(cfg)
	return cli.NewCommandAt(&cfg.Command, "set").
		WithSynopsis("set <file> <path> <json> - replace the values at path").
		WithOpts(opts...).
		WithRun(cfg.run)
}

func (cfg *setConfig) run(cc *cli.Context, args []string) error {
	args, err := cfg.Parse(cc, args)
	if err != nil {
		cfg.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 3 {
		return fmt.Errorf("%w: set requires a file, a path, and a value", cli.ErrUsage)
	}
	doc, err := getDocFile(cc, args[0], cfg.Format)
	if err != nil {
		return err
	}
	value, err := parse.Parse([]byte(args[2]))
	if err != nil {
		return fmt.Errorf("bad value: %w", err)
	}
	path := docjson.NormalizePath(args[1])
	if err := doc.SetAtPath(path, value); err != nil {
		return fmt.Errorf("error setting %s: %w", path, err)
	}
	return writeResult(cfg.InPlace, args[0], cc, doc, cfg.Indent)
}

func writeResult(inPlace bool, file string, cc *cli.Context, doc *docjson.Document, indent int) error {
	if inPlace && file != "-" {
		f, err := os.Create(file)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := encode.Encode(doc.Root(), f, encode.Indent(indent)); err != nil {
			return err
		}
		_, err = f.WriteString("\n")
		return err
	}
	fmt.Fprintln(cc.Out, encode.MustString(doc.Root(), encode.Indent(indent)))
	return nil
}
