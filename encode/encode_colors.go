package encode

import (
	"strings"

	"github.com/fatih/color"
	"github.com/signadot/tony-format/go-keypath/ir"
)

type Colorable struct {
	Type ir.Type
	Attr ColorAttr
}

type ColorAttr int

const (
	FieldColor ColorAttr = iota
	ValueColor
	SepColor
)

type Colors struct {
	Default func(string, ...any) string
	Map     map[Colorable]func(string, ...any) string
}

// NewColors returns the default palette. Colors are forced on regardless
// of color.NoColor; use AutoColor to decide based on the output.
func NewColors() *Colors {
	colors := &Colors{
		Default: colorDefault,
		Map:     map[Colorable]func(string, ...any) string{},
	}
	for _, t := range ir.Types() {
		colors.Map[Colorable{Type: t, Attr: SepColor}] = rgb(255, 0, 196)
	}
	colors.Map[Colorable{Type: ir.NumberType, Attr: ValueColor}] = rgb(128, 216, 236)
	colors.Map[Colorable{Type: ir.NumberType, Attr: FieldColor}] = rgb(196, 96, 16)
	colors.Map[Colorable{Type: ir.NullType, Attr: ValueColor}] = rgb(168, 0, 196)
	colors.Map[Colorable{Type: ir.BoolType, Attr: ValueColor}] = attr(color.FgCyan)
	colors.Map[Colorable{Type: ir.ObjectType, Attr: FieldColor}] = rgb(128, 168, 196)
	colors.Map[Colorable{Type: ir.ObjectType, Attr: SepColor}] = rgb(196, 128, 128)
	colors.Map[Colorable{Type: ir.StringType, Attr: ValueColor}] = rgb(8, 196, 16)
	for k, f := range colors.Map {
		colors.Map[k] = func(v string, _ ...any) string {
			return f(strings.ReplaceAll(v, "%", "%%"))
		}
	}
	return colors
}

func rgb(r, g, b int) func(string, ...any) string {
	c := color.RGB(r, g, b)
	c.EnableColor()
	return c.SprintfFunc()
}

func attr(a color.Attribute) func(string, ...any) string {
	c := color.New(a)
	c.EnableColor()
	return c.SprintfFunc()
}

func colorDefault(v string, _ ...any) string { return v }

func (c *Colors) Color(t ir.Type, a ColorAttr, s string) string {
	return c.Get(t, a)(s)
}

func (c *Colors) Get(t ir.Type, a ColorAttr) func(string, ...any) string {
	f := c.Map[Colorable{Type: t, Attr: a}]
	if f == nil {
		return c.Default
	}
	return f
}
