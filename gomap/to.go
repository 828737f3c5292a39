package gomap

import (
	"encoding"
	"math"
	"reflect"
	"slices"
	"strconv"
	"time"

	"github.com/iancoleman/strcase"
	"github.com/signadot/tony-format/go-keypath/debug"
	"github.com/signadot/tony-format/go-keypath/ir"
	"github.com/signadot/tony-format/go-keypath/keypath"
)

var (
	tonyEncoderType   = reflect.TypeFor[TonyEncoder]()
	toTonyType        = reflect.TypeFor[toTony]()
	textMarshalerType = reflect.TypeFor[encoding.TextMarshaler]()
)

// ToIR converts v to an IR node.
func ToIR(v any, opts ...MapOption) (*ir.Node, error) {
	return NewEncoder(opts...).Encode(v)
}

func (e *Encoder) encode(v any) (*ir.Node, error) {
	node, err := e.encodeValue(reflect.ValueOf(v), e.path, map[uintptr]bool{})
	if err != nil {
		return nil, err
	}
	if debug.Map() {
		debug.Logf("gomap encode %s: %v", e.path, node)
	}
	return node, nil
}

func (e *Encoder) encodeValue(val reflect.Value, path keypath.KeyPath, visited map[uintptr]bool) (*ir.Node, error) {
	if !val.IsValid() {
		return ir.Null(), nil
	}
	typ := val.Type()
	switch {
	case typ == nodeType:
		if val.IsNil() {
			return ir.Null(), nil
		}
		return val.Interface().(*ir.Node).Clone(), nil
	case typ == timeType:
		return ir.FromString(val.Interface().(time.Time).Format(e.cfg.timeLayout)), nil
	}
	if typ.Kind() == reflect.Pointer {
		if val.IsNil() {
			return ir.Null(), nil
		}
		if typ.Elem() == timeType {
			return e.encodeValue(val.Elem(), path, visited)
		}
	}
	if hook, ok := e.hook(val); ok {
		return hook(path)
	}

	switch typ.Kind() {
	case reflect.Pointer:
		addr := val.Pointer()
		if visited[addr] {
			return nil, mismatch(path, "circular reference through %s", typ)
		}
		visited[addr] = true
		defer delete(visited, addr)
		return e.encodeValue(val.Elem(), path, visited)
	case reflect.Interface:
		if val.IsNil() {
			return ir.Null(), nil
		}
		return e.encodeValue(val.Elem(), path, visited)
	case reflect.String:
		return ir.FromString(val.String()), nil
	case reflect.Bool:
		return ir.FromBool(val.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return ir.FromInt(val.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := val.Uint()
		if u > math.MaxInt64 {
			return nil, mismatch(path, "%d overflows int64", u)
		}
		return ir.FromInt(int64(u)), nil
	case reflect.Float32, reflect.Float64:
		return ir.FromFloat(val.Float()), nil
	case reflect.Slice:
		if val.IsNil() {
			return ir.Null(), nil
		}
		return e.encodeSlice(val, path, visited)
	case reflect.Array:
		return e.encodeSlice(val, path, visited)
	case reflect.Map:
		if val.IsNil() {
			return ir.Null(), nil
		}
		return e.encodeMap(val, path, visited)
	case reflect.Struct:
		return e.encodeStruct(val, path, visited)
	}
	return nil, mismatch(path, "unsupported type %s", typ)
}

// hook returns the conversion method of val, looking at its pointer type
// too when val is not addressable.
func (e *Encoder) hook(val reflect.Value) (func(keypath.KeyPath) (*ir.Node, error), bool) {
	recv := val
	if val.Kind() != reflect.Pointer {
		if val.CanAddr() {
			recv = val.Addr()
		} else if reflect.PointerTo(val.Type()).Implements(tonyEncoderType) ||
			reflect.PointerTo(val.Type()).Implements(toTonyType) ||
			reflect.PointerTo(val.Type()).Implements(textMarshalerType) {
			recv = reflect.New(val.Type())
			recv.Elem().Set(val)
		}
	}
	typ := recv.Type()
	switch {
	case typ.Implements(tonyEncoderType):
		return func(path keypath.KeyPath) (*ir.Node, error) {
			child := e.Child(nil, path)
			if err := recv.Interface().(TonyEncoder).EncodeTony(child); err != nil {
				return nil, err
			}
			return child.Node(), nil
		}, true
	case typ.Implements(toTonyType):
		return func(path keypath.KeyPath) (*ir.Node, error) {
			node, err := recv.Interface().(toTony).ToTony()
			if err != nil {
				return nil, keypath.Wrap(keypath.ErrTypeMismatch, path, err)
			}
			if node == nil {
				return ir.Null(), nil
			}
			return node, nil
		}, true
	case typ.Implements(textMarshalerType):
		return func(path keypath.KeyPath) (*ir.Node, error) {
			text, err := recv.Interface().(encoding.TextMarshaler).MarshalText()
			if err != nil {
				return nil, keypath.Wrap(keypath.ErrTypeMismatch, path, err)
			}
			return ir.FromString(string(text)), nil
		}, true
	}
	return nil, false
}

func (e *Encoder) encodeSlice(val reflect.Value, path keypath.KeyPath, visited map[uintptr]bool) (*ir.Node, error) {
	elems := make([]*ir.Node, val.Len())
	for i := range val.Len() {
		elem, err := e.encodeValue(val.Index(i), path.Append(keypath.Index(i)), visited)
		if err != nil {
			return nil, err
		}
		elems[i] = elem
	}
	return ir.FromSlice(elems), nil
}

// encodeMap writes string keyed maps as objects with sorted keys and
// integer keyed maps as int keyed objects.
func (e *Encoder) encodeMap(val reflect.Value, path keypath.KeyPath, visited map[uintptr]bool) (*ir.Node, error) {
	type entry struct {
		key  *ir.Node
		name string
		val  reflect.Value
	}
	var entries []entry
	intKeys := false
	iter := val.MapRange()
	for iter.Next() {
		k := iter.Key()
		var key *ir.Node
		switch k.Kind() {
		case reflect.String:
			key = ir.FromString(k.String())
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			key = ir.FromInt(k.Int())
			intKeys = true
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			if k.Uint() > math.MaxInt64 {
				return nil, mismatch(path, "map key %d overflows int64", k.Uint())
			}
			key = ir.FromInt(int64(k.Uint()))
			intKeys = true
		default:
			return nil, mismatch(path, "unsupported map key type %s", k.Type())
		}
		name := key.String
		if key.Int64 != nil {
			name = strconv.FormatInt(*key.Int64, 10)
			key.String = name
		}
		entries = append(entries, entry{key: key, name: name, val: iter.Value()})
	}
	slices.SortFunc(entries, func(a, b entry) int {
		return ir.Compare(a.key, b.key)
	})
	res := ir.Object()
	if intKeys {
		res.Tag = ir.IntKeysTag
	}
	for _, ent := range entries {
		v, err := e.encodeValue(ent.val, path.Append(keypath.Name(ent.name)), visited)
		if err != nil {
			return nil, err
		}
		res.AppendField(ent.key, v)
	}
	return res, nil
}

// encodeStruct writes the exported fields of a plain struct in
// declaration order under their lower camel case names.
func (e *Encoder) encodeStruct(val reflect.Value, path keypath.KeyPath, visited map[uintptr]bool) (*ir.Node, error) {
	typ := val.Type()
	res := ir.Object()
	for i := range typ.NumField() {
		sf := typ.Field(i)
		if !sf.IsExported() {
			continue
		}
		name := strcase.ToLowerCamel(sf.Name)
		v, err := e.encodeValue(val.Field(i), path.Append(keypath.Name(name)), visited)
		if err != nil {
			return nil, err
		}
		res.AppendField(ir.FromString(e.cfg.keys.ToDocument(name)), v)
	}
	return res, nil
}
