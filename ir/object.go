package ir

import (
	"strconv"
	"strings"
)

// IntKeysTag marks objects whose keys are all number typed.
const IntKeysTag = "!sparsearray"

// HasTag reports whether tag is the first component of y's tag.
func (y *Node) HasTag(tag string) bool {
	return y.Tag == tag || strings.HasPrefix(y.Tag, tag+".")
}

// FieldKey returns the key of the i'th field of an object in string form.
// Number typed keys render in decimal.
func (y *Node) FieldKey(i int) string {
	f := y.Fields[i]
	if f.Type == NumberType && f.Int64 != nil {
		return strconv.FormatInt(*f.Int64, 10)
	}
	return f.String
}

// IntKeyed reports whether y is an object keyed by numbers.
func (y *Node) IntKeyed() bool {
	if y.HasTag(IntKeysTag) {
		return true
	}
	for _, f := range y.Fields {
		if f.Type == NumberType {
			return true
		}
	}
	return false
}

// FieldIndex returns the index of the first field for which match
// returns true, or -1. Null (merge) keys are never offered to match.
func (y *Node) FieldIndex(match func(key string, field *Node) bool) int {
	for i, f := range y.Fields {
		if f.Type == NullType {
			continue
		}
		if match(y.FieldKey(i), f) {
			return i
		}
	}
	return -1
}

// AppendField adds key: val as the last field of the object y.
func (y *Node) AppendField(key, val *Node) {
	i := len(y.Fields)
	name := y.keyName(key)
	key.Parent = y
	key.ParentIndex = i
	key.ParentField = name
	val.Parent = y
	val.ParentIndex = i
	val.ParentField = name
	y.Fields = append(y.Fields, key)
	y.Values = append(y.Values, val)
}

// ReplaceValue sets the value of the i'th field of the object y.
func (y *Node) ReplaceValue(i int, val *Node) {
	val.Parent = y
	val.ParentIndex = i
	val.ParentField = y.FieldKey(i)
	y.Values[i] = val
}

func (y *Node) keyName(key *Node) string {
	if key.Type == NumberType && key.Int64 != nil {
		return strconv.FormatInt(*key.Int64, 10)
	}
	return key.String
}
