package parse

import (
	"errors"
	"fmt"

	"github.com/signadot/tony-format/go-keypath/ir"
)

var ErrParse = errors.New("parse error")

// Parse parses d as JSON, or in the format selected by opts.
func Parse(d []byte, opts ...ParseOption) (*ir.Node, error) {
	pOpts := &parseOpts{format: JSONFormat}
	for _, f := range opts {
		f(pOpts)
	}
	switch pOpts.format {
	case JSONFormat:
		return JSON(d)
	case YAMLFormat:
		return YAML(d)
	}
	return nil, fmt.Errorf("%w: unsupported format %s", ErrParse, pOpts.format)
}

func ParseString(s string, opts ...ParseOption) (*ir.Node, error) {
	return Parse([]byte(s), opts...)
}
