package encode

import (
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/docjson-io/docjson/ir"
)

// Colors maps value kinds to terminal colors. A nil *Colors paints
// nothing, so the zero configuration is plain output.
type Colors struct {
	Key    *color.Color
	String *color.Color
	Number *color.Color
	Bool   *color.Color
	Null   *color.Color
}

func DefaultColors() *Colors {
	return &Colors{
		Key:    color.New(color.FgCyan),
		String: color.New(color.FgGreen),
		Number: color.New(color.FgYellow),
		Bool:   color.New(color.FgMagenta),
		Null:   color.New(color.Faint),
	}
}

// AutoColors returns the default palette when w is a terminal and nil
// otherwise.
func AutoColors(w io.Writer) *Colors {
	f, ok := w.(*os.File)
	if !ok {
		return nil
	}
	if !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
		return nil
	}
	return DefaultColors()
}

func (c *Colors) paint(t ir.Type, s string) string {
	if c == nil {
		return s
	}
	var cc *color.Color
	switch t {
	case ir.StringType:
		cc = c.String
	case ir.NumberType:
		cc = c.Number
	case ir.BoolType:
		cc = c.Bool
	case ir.NullType:
		cc = c.Null
	}
	if cc == nil {
		return s
	}
	return cc.Sprint(s)
}

func (c *Colors) paintKey(s string) string {
	if c == nil || c.Key == nil {
		return s
	}
	return c.Key.Sprint(s)
}
