package parse

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/signadot/tony-format/go-keypath/ir"
)

// YAML parses the first document of d. An empty document is null.
func YAML(d []byte) (*ir.Node, error) {
	var v any
	if err := yaml.UnmarshalWithOptions(d, &v, yaml.UseOrderedMap()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return fromYAML(v)
}

func fromYAML(v any) (*ir.Node, error) {
	switch x := v.(type) {
	case nil:
		return ir.Null(), nil
	case bool:
		return ir.FromBool(x), nil
	case string:
		return ir.FromString(x), nil
	case int:
		return ir.FromInt(int64(x)), nil
	case int64:
		return ir.FromInt(x), nil
	case uint64:
		if x > math.MaxInt64 {
			res := ir.FromFloat(float64(x))
			res.Number = strconv.FormatUint(x, 10)
			return res, nil
		}
		return ir.FromInt(int64(x)), nil
	case float64:
		return ir.FromFloat(x), nil
	case time.Time:
		return ir.FromString(x.Format(time.RFC3339Nano)), nil
	case []any:
		vals := make([]*ir.Node, len(x))
		for i, e := range x {
			n, err := fromYAML(e)
			if err != nil {
				return nil, err
			}
			vals[i] = n
		}
		return ir.FromSlice(vals), nil
	case yaml.MapSlice:
		return fromMapSlice(x)
	case map[string]any:
		m := make(map[string]*ir.Node, len(x))
		for k, e := range x {
			n, err := fromYAML(e)
			if err != nil {
				return nil, err
			}
			m[k] = n
		}
		return ir.FromMap(m), nil
	}
	return nil, fmt.Errorf("%w: unsupported yaml value %T", ErrParse, v)
}

func fromMapSlice(ms yaml.MapSlice) (*ir.Node, error) {
	res := ir.Object()
	intKeys := len(ms) > 0
	keys := make([]*ir.Node, len(ms))
	for i, item := range ms {
		switch k := item.Key.(type) {
		case string:
			keys[i] = ir.FromString(k)
			intKeys = false
		case int, int64, uint64:
			s := fmt.Sprint(k)
			n, err := strconv.ParseInt(s, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: key %s: %w", ErrParse, s, err)
			}
			keys[i] = ir.FromInt(n)
			keys[i].String = s
		default:
			keys[i] = ir.FromString(fmt.Sprint(k))
			intKeys = false
		}
	}
	for i, item := range ms {
		key := keys[i]
		if !intKeys && key.Type == ir.NumberType {
			key = ir.FromString(key.String)
		}
		val, err := fromYAML(item.Value)
		if err != nil {
			return nil, err
		}
		res.AppendField(key, val)
	}
	if intKeys {
		res.Tag = ir.IntKeysTag
	}
	return res, nil
}
