package ir

import "strconv"

// ToAny converts node into plain Go values: map[string]any, []any,
// string, int64, float64, bool and nil. Numbers that carry neither an
// int64 nor a float64 are returned as their literal text.
//
// If rename is non-nil it is applied to every string object key.
func ToAny(node *Node, rename func(string) string) any {
	if node == nil {
		return nil
	}
	switch node.Type {
	case NullType:
		return nil
	case BoolType:
		return node.Bool
	case StringType:
		return node.String
	case NumberType:
		switch {
		case node.Int64 != nil:
			return *node.Int64
		case node.Float64 != nil:
			return *node.Float64
		}
		if i, err := strconv.ParseInt(node.Number, 10, 64); err == nil {
			return i
		}
		if f, err := strconv.ParseFloat(node.Number, 64); err == nil {
			return f
		}
		return node.Number
	case ArrayType:
		res := make([]any, len(node.Values))
		for i, v := range node.Values {
			res[i] = ToAny(v, rename)
		}
		return res
	case ObjectType:
		res := make(map[string]any, len(node.Fields))
		for i, f := range node.Fields {
			if f.Type == NullType {
				continue
			}
			key := node.FieldKey(i)
			if rename != nil && f.Type == StringType {
				key = rename(key)
			}
			res[key] = ToAny(node.Values[i], rename)
		}
		return res
	}
	return nil
}
