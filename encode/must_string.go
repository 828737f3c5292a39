package encode

import (
	"bytes"
	"strings"

	"github.com/signadot/tony-format/go-keypath/ir"
)

// MustString returns node as indented JSON, panicking on error.
func MustString(node *ir.Node) string {
	buf := bytes.NewBuffer(nil)
	if err := JSON(node, buf, Indent("  ")); err != nil {
		panic(err)
	}
	return strings.TrimSpace(buf.String())
}
