package encode

import (
	"io"

	"github.com/mattn/go-isatty"
)

type EncodeOption func(*EncState)

// Indent sets the indentation unit. The empty string, the default,
// selects compact output for JSON.
func Indent(s string) EncodeOption {
	return func(es *EncState) { es.indent = s }
}

// Color turns colored output on or off.
func Color(v bool) EncodeOption {
	return func(es *EncState) {
		if !v {
			es.Color = nil
			return
		}
		es.Color = NewColors().Color
	}
}

func EncodeColors(c *Colors) EncodeOption {
	return func(es *EncState) { es.Color = c.Color }
}

// AutoColor colors output only when w is a terminal.
func AutoColor(w io.Writer) EncodeOption {
	return Color(isTerminal(w))
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
