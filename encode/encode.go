package encode

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/signadot/tony-format/go-keypath/ir"
)

var ErrEncoding = errors.New("encoding error")

type EncState struct {
	depth  int
	indent string

	Color func(ir.Type, ColorAttr, string) string
}

func newState(opts []EncodeOption) *EncState {
	es := &EncState{}
	for _, opt := range opts {
		opt(es)
	}
	return es
}

// JSON writes node to w as JSON. Output is compact unless an Indent
// option is given, in which case it ends with a newline.
func JSON(node *ir.Node, w io.Writer, opts ...EncodeOption) error {
	es := newState(opts)
	if err := encodeJSON(node, w, es); err != nil {
		return err
	}
	if es.indent == "" {
		return nil
	}
	return writeString(w, "\n")
}

func encodeJSON(node *ir.Node, w io.Writer, es *EncState) error {
	if node == nil {
		return writeString(w, applyColor(es, ir.NullType, ValueColor, "null"))
	}
	switch node.Type {
	case ir.NullType:
		return writeString(w, applyColor(es, ir.NullType, ValueColor, "null"))
	case ir.BoolType:
		return writeString(w, applyColor(es, ir.BoolType, ValueColor, strconv.FormatBool(node.Bool)))
	case ir.NumberType:
		s, err := numberText(node)
		if err != nil {
			return err
		}
		return writeString(w, applyColor(es, ir.NumberType, ValueColor, s))
	case ir.StringType:
		return writeString(w, applyColor(es, ir.StringType, ValueColor, quoteString(node.String)))
	case ir.ArrayType:
		return encodeArray(node, w, es)
	case ir.ObjectType:
		return encodeObject(node, w, es)
	}
	return fmt.Errorf("%w: unknown node type %d", ErrEncoding, node.Type)
}

func encodeArray(node *ir.Node, w io.Writer, es *EncState) error {
	if len(node.Values) == 0 {
		return writeString(w, applyColor(es, ir.ArrayType, SepColor, "[]"))
	}
	if err := writeString(w, applyColor(es, ir.ArrayType, SepColor, "[")); err != nil {
		return err
	}
	es.depth++
	for i, v := range node.Values {
		if i > 0 {
			if err := writeString(w, applyColor(es, ir.ArrayType, SepColor, ",")); err != nil {
				return err
			}
		}
		if err := writeNL(w, es); err != nil {
			return err
		}
		if err := encodeJSON(v, w, es); err != nil {
			return err
		}
	}
	es.depth--
	if err := writeNL(w, es); err != nil {
		return err
	}
	return writeString(w, applyColor(es, ir.ArrayType, SepColor, "]"))
}

func encodeObject(node *ir.Node, w io.Writer, es *EncState) error {
	n := 0
	for i := range node.Fields {
		if node.Fields[i].Type == ir.NullType {
			continue
		}
		if n == 0 {
			if err := writeString(w, applyColor(es, ir.ObjectType, SepColor, "{")); err != nil {
				return err
			}
			es.depth++
		} else if err := writeString(w, applyColor(es, ir.ObjectType, SepColor, ",")); err != nil {
			return err
		}
		n++
		if err := writeNL(w, es); err != nil {
			return err
		}
		keyType := ir.ObjectType
		if node.Fields[i].Type == ir.NumberType {
			keyType = ir.NumberType
		}
		key := applyColor(es, keyType, FieldColor, quoteString(node.FieldKey(i)))
		sep := ":"
		if es.indent != "" {
			sep = ": "
		}
		if err := writeString(w, key+applyColor(es, ir.ObjectType, SepColor, sep)); err != nil {
			return err
		}
		if err := encodeJSON(node.Values[i], w, es); err != nil {
			return err
		}
	}
	if n == 0 {
		return writeString(w, applyColor(es, ir.ObjectType, SepColor, "{}"))
	}
	es.depth--
	if err := writeNL(w, es); err != nil {
		return err
	}
	return writeString(w, applyColor(es, ir.ObjectType, SepColor, "}"))
}

func numberText(node *ir.Node) (string, error) {
	switch {
	case node.Int64 != nil:
		return strconv.FormatInt(*node.Int64, 10), nil
	case node.Float64 != nil:
		f := *node.Float64
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return "", fmt.Errorf("%w: %v is not representable in JSON", ErrEncoding, f)
		}
		return strconv.FormatFloat(f, 'g', -1, 64), nil
	case node.Number != "":
		if !json.Valid([]byte(node.Number)) {
			return "", fmt.Errorf("%w: invalid number literal %q", ErrEncoding, node.Number)
		}
		return node.Number, nil
	}
	return "", fmt.Errorf("%w: number node has no value", ErrEncoding)
}

func writeNL(w io.Writer, es *EncState) error {
	if es.indent == "" {
		return nil
	}
	return writeString(w, "\n"+strings.Repeat(es.indent, es.depth))
}

func writeString(w io.Writer, s string) error {
	_, err := w.Write([]byte(s))
	return err
}

// quoteString quotes v as a JSON string without HTML escaping.
func quoteString(v string) string {
	buf := bytes.NewBuffer(nil)
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return strconv.Quote(v)
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

func applyColor(es *EncState, nodeType ir.Type, attr ColorAttr, v string) string {
	if es.Color == nil {
		return v
	}
	return es.Color(nodeType, attr, v)
}
