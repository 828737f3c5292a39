package parse

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/signadot/tony-format/go-keypath/ir"
	"github.com/tidwall/gjson"
)

// JSON parses a single JSON value.
func JSON(d []byte) (*ir.Node, error) {
	if !gjson.ValidBytes(d) {
		return nil, fmt.Errorf("%w: invalid json", ErrParse)
	}
	return fromJSON(gjson.ParseBytes(d))
}

func fromJSON(r gjson.Result) (*ir.Node, error) {
	switch r.Type {
	case gjson.Null:
		return ir.Null(), nil
	case gjson.False:
		return ir.FromBool(false), nil
	case gjson.True:
		return ir.FromBool(true), nil
	case gjson.String:
		return ir.FromString(r.Str), nil
	case gjson.Number:
		return jsonNumber(r.Raw)
	}
	switch {
	case r.IsObject():
		res := ir.Object()
		var err error
		r.ForEach(func(k, v gjson.Result) bool {
			var val *ir.Node
			val, err = fromJSON(v)
			if err != nil {
				return false
			}
			res.AppendField(ir.FromString(k.String()), val)
			return true
		})
		return res, err
	case r.IsArray():
		var vals []*ir.Node
		var err error
		r.ForEach(func(_, v gjson.Result) bool {
			var val *ir.Node
			val, err = fromJSON(v)
			if err != nil {
				return false
			}
			vals = append(vals, val)
			return true
		})
		if err != nil {
			return nil, err
		}
		return ir.FromSlice(vals), nil
	}
	return nil, fmt.Errorf("%w: unexpected json %q", ErrParse, r.Raw)
}

func jsonNumber(raw string) (*ir.Node, error) {
	if !strings.ContainsAny(raw, ".eE") {
		if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
			res := ir.FromInt(i)
			res.Number = raw
			return res, nil
		}
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: number %s: %w", ErrParse, raw, err)
	}
	res := ir.FromFloat(f)
	res.Number = raw
	return res, nil
}
