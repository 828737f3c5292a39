package encode

import (
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/signadot/tony-format/go-keypath/ir"
)

// YAML writes node to w as a YAML document. The Indent option sets the
// number of spaces per level (two by default); colors are ignored.
func YAML(node *ir.Node, w io.Writer, opts ...EncodeOption) error {
	es := newState(opts)
	spaces := 2
	if es.indent != "" && strings.Trim(es.indent, " ") == "" {
		spaces = len(es.indent)
	}
	v, err := toYAML(node)
	if err != nil {
		return err
	}
	d, err := yaml.MarshalWithOptions(v, yaml.Indent(spaces), yaml.IndentSequence(true))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncoding, err)
	}
	_, err = w.Write(d)
	return err
}

// toYAML converts node to values goccy/go-yaml encodes in order:
// objects become yaml.MapSlice.
func toYAML(node *ir.Node) (any, error) {
	if node == nil {
		return nil, nil
	}
	switch node.Type {
	case ir.ObjectType:
		res := make(yaml.MapSlice, 0, len(node.Fields))
		for i, f := range node.Fields {
			if f.Type == ir.NullType {
				continue
			}
			v, err := toYAML(node.Values[i])
			if err != nil {
				return nil, err
			}
			var key any = f.String
			if f.Type == ir.NumberType && f.Int64 != nil {
				key = *f.Int64
			}
			res = append(res, yaml.MapItem{Key: key, Value: v})
		}
		return res, nil
	case ir.ArrayType:
		res := make([]any, len(node.Values))
		for i, v := range node.Values {
			x, err := toYAML(v)
			if err != nil {
				return nil, err
			}
			res[i] = x
		}
		return res, nil
	case ir.NumberType:
		if node.Int64 == nil && node.Float64 == nil && node.Number == "" {
			return nil, fmt.Errorf("%w: number node has no value", ErrEncoding)
		}
	}
	return ir.ToAny(node, nil), nil
}
