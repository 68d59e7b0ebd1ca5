package main

import (
	"fmt"
	"io"
	"os"

	"github.com/scott-cotton/cli"

	"github.com/docjson-io/docjson"
	"github.com/docjson-io/docjson/encode"
	"github.com/docjson-io/docjson/parse"
)

func getDocFile(cc *cli.Context, path string, format string) (*docjson.Document, error) {
	var r io.Reader
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	} else {
		r = cc.In
	}
	d, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading %q: %w", path, err)
	}
	opts := []parse.ParseOption{}
	if format != "" {
		f, err := parse.FormatFromString(format)
		if err != nil {
			return nil, err
		}
		opts = append(opts, parse.ParseFormat(f))
	}
	return docjson.FromBytes(d, opts...)
}

func encOpts(cc *cli.Context, indent int, colorize bool) []encode.EncodeOption {
	opts := []encode.EncodeOption{encode.Indent(indent)}
	if colorize {
		opts = append(opts, encode.EncodeColors(encode.DefaultColors()))
	} else {
		opts = append(opts, encode.EncodeColors(encode.AutoColors(cc.Out)))
	}
	return opts
}
