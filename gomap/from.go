package gomap

import (
	"encoding"
	"math"
	"reflect"
	"strconv"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/signadot/tony-format/go-keypath/debug"
	"github.com/signadot/tony-format/go-keypath/ir"
	"github.com/signadot/tony-format/go-keypath/keypath"
)

var (
	nodeType            = reflect.TypeFor[*ir.Node]()
	timeType            = reflect.TypeFor[time.Time]()
	tonyDecoderType     = reflect.TypeFor[TonyDecoder]()
	fromTonyType        = reflect.TypeFor[fromTony]()
	textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()
)

// FromIR stores node in the value pointed to by v.
func FromIR(node *ir.Node, v any, opts ...UnmapOption) error {
	return NewDecoder(node, opts...).Decode(v)
}

func (d *Decoder) decode(v any) error {
	if v == nil {
		return keypath.Errorf(keypath.ErrTypeMismatch, d.path, "destination value cannot be nil")
	}
	val := reflect.ValueOf(v)
	if val.Kind() != reflect.Pointer {
		return keypath.Errorf(keypath.ErrTypeMismatch, d.path, "destination value must be a pointer, got %s", val.Type())
	}
	if val.IsNil() {
		return keypath.Errorf(keypath.ErrTypeMismatch, d.path, "destination pointer cannot be nil")
	}
	if d.node == nil {
		return keypath.Errorf(keypath.ErrValueNotFound, d.path, "no value")
	}
	if debug.Map() {
		debug.Logf("gomap decode %s into %s: %v", d.path, val.Type().Elem(), d.node)
	}
	return d.decodeValue(d.node, val.Elem(), d.path)
}

// decodeValue stores node in val, which must be settable.
func (d *Decoder) decodeValue(node *ir.Node, val reflect.Value, path keypath.KeyPath) error {
	typ := val.Type()
	switch {
	case typ == nodeType:
		val.Set(reflect.ValueOf(node))
		return nil
	case typ == timeType:
		return d.decodeTime(node, val, path)
	}
	if val.CanAddr() {
		ptr := val.Addr()
		switch {
		case ptr.Type().Implements(tonyDecoderType):
			return ptr.Interface().(TonyDecoder).DecodeTony(d.Child(node, path))
		case ptr.Type().Implements(fromTonyType):
			if err := ptr.Interface().(fromTony).FromTony(node); err != nil {
				return keypath.Wrap(keypath.ErrDataCorrupted, path, err)
			}
			return nil
		case ptr.Type().Implements(textUnmarshalerType) && typ.Kind() != reflect.Pointer:
			if node.Type != ir.StringType {
				return typeMismatch(path, "String", node)
			}
			if err := ptr.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(node.String)); err != nil {
				return corrupted(path, err)
			}
			return nil
		}
	}

	switch typ.Kind() {
	case reflect.Pointer:
		if node.Type == ir.NullType {
			val.SetZero()
			return nil
		}
		if val.IsNil() {
			val.Set(reflect.New(typ.Elem()))
		}
		return d.decodeValue(node, val.Elem(), path)
	case reflect.Interface:
		if typ.NumMethod() != 0 {
			return mismatch(path, "cannot decode into interface type %s", typ)
		}
		x := ir.ToAny(node, nil)
		if x == nil {
			val.SetZero()
			return nil
		}
		val.Set(reflect.ValueOf(x))
		return nil
	case reflect.String:
		if node.Type != ir.StringType {
			return typeMismatch(path, "String", node)
		}
		val.SetString(node.String)
		return nil
	case reflect.Bool:
		if node.Type != ir.BoolType {
			return typeMismatch(path, "Bool", node)
		}
		val.SetBool(node.Bool)
		return nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, err := nodeInt(node, path)
		if err != nil {
			return err
		}
		if val.OverflowInt(i) {
			return mismatch(path, "%d overflows %s", i, typ)
		}
		val.SetInt(i)
		return nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		i, err := nodeInt(node, path)
		if err != nil {
			return err
		}
		if i < 0 || val.OverflowUint(uint64(i)) {
			return mismatch(path, "%d overflows %s", i, typ)
		}
		val.SetUint(uint64(i))
		return nil
	case reflect.Float32, reflect.Float64:
		f, err := nodeFloat(node, path)
		if err != nil {
			return err
		}
		if val.OverflowFloat(f) {
			return mismatch(path, "%v overflows %s", f, typ)
		}
		val.SetFloat(f)
		return nil
	case reflect.Slice:
		return d.decodeSlice(node, val, path)
	case reflect.Array:
		return d.decodeArray(node, val, path)
	case reflect.Map:
		return d.decodeMap(node, val, path)
	case reflect.Struct:
		return d.decodeStruct(node, val, path)
	}
	return mismatch(path, "unsupported type %s", typ)
}

func (d *Decoder) decodeTime(node *ir.Node, val reflect.Value, path keypath.KeyPath) error {
	if node.Type != ir.StringType {
		return typeMismatch(path, "String", node)
	}
	t, err := time.Parse(d.cfg.timeLayout, node.String)
	if err != nil {
		return corrupted(path, err)
	}
	val.Set(reflect.ValueOf(t))
	return nil
}

func (d *Decoder) decodeSlice(node *ir.Node, val reflect.Value, path keypath.KeyPath) error {
	switch node.Type {
	case ir.NullType:
		val.SetZero()
		return nil
	case ir.ArrayType:
	default:
		return typeMismatch(path, "Array", node)
	}
	res := reflect.MakeSlice(val.Type(), len(node.Values), len(node.Values))
	for i, v := range node.Values {
		if err := d.decodeValue(v, res.Index(i), path.Append(keypath.Index(i))); err != nil {
			return err
		}
	}
	val.Set(res)
	return nil
}

func (d *Decoder) decodeArray(node *ir.Node, val reflect.Value, path keypath.KeyPath) error {
	if node.Type != ir.ArrayType {
		return typeMismatch(path, "Array", node)
	}
	if len(node.Values) != val.Len() {
		return mismatch(path, "expected %d elements, got %d", val.Len(), len(node.Values))
	}
	for i, v := range node.Values {
		if err := d.decodeValue(v, val.Index(i), path.Append(keypath.Index(i))); err != nil {
			return err
		}
	}
	return nil
}

// decodeMap decodes objects into maps keyed by strings or integers. Keys
// are data and do not go through the key strategy.
func (d *Decoder) decodeMap(node *ir.Node, val reflect.Value, path keypath.KeyPath) error {
	switch node.Type {
	case ir.NullType:
		val.SetZero()
		return nil
	case ir.ObjectType:
	default:
		return typeMismatch(path, "Object", node)
	}
	typ := val.Type()
	res := reflect.MakeMapWithSize(typ, len(node.Fields))
	for i, f := range node.Fields {
		if f.Type == ir.NullType {
			continue
		}
		name := node.FieldKey(i)
		fieldPath := path.Append(keypath.Name(name))
		if name == "" {
			return keypath.Errorf(keypath.ErrDataCorrupted, path, "empty key")
		}
		key := reflect.New(typ.Key()).Elem()
		if err := setMapKey(key, name, fieldPath); err != nil {
			return err
		}
		elem := reflect.New(typ.Elem()).Elem()
		if err := d.decodeValue(node.Values[i], elem, fieldPath); err != nil {
			return err
		}
		res.SetMapIndex(key, elem)
	}
	val.Set(res)
	return nil
}

func setMapKey(key reflect.Value, name string, path keypath.KeyPath) error {
	switch key.Kind() {
	case reflect.String:
		key.SetString(name)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, err := strconv.ParseInt(name, 10, 64)
		if err != nil || key.OverflowInt(i) {
			return mismatch(path, "key %q is not a %s", name, key.Type())
		}
		key.SetInt(i)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u, err := strconv.ParseUint(name, 10, 64)
		if err != nil || key.OverflowUint(u) {
			return mismatch(path, "key %q is not a %s", name, key.Type())
		}
		key.SetUint(u)
	default:
		return mismatch(path, "unsupported map key type %s", key.Type())
	}
	return nil
}

// decodeStruct decodes plain structs by field name with mapstructure.
// Document keys pass through the key strategy first and match field names
// case insensitively.
func (d *Decoder) decodeStruct(node *ir.Node, val reflect.Value, path keypath.KeyPath) error {
	if node.Type != ir.ObjectType {
		return typeMismatch(path, "Object", node)
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result: val.Addr().Interface(),
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeHookFunc(d.cfg.timeLayout),
			mapstructure.TextUnmarshallerHookFunc(),
		),
	})
	if err != nil {
		return mismatch(path, "%s: %v", val.Type(), err)
	}
	if err := dec.Decode(ir.ToAny(node, d.cfg.keys.FromDocument)); err != nil {
		return keypath.Wrap(keypath.ErrTypeMismatch, path, err)
	}
	return nil
}

func nodeInt(node *ir.Node, path keypath.KeyPath) (int64, error) {
	if node.Type != ir.NumberType {
		return 0, typeMismatch(path, "Number", node)
	}
	switch {
	case node.Int64 != nil:
		return *node.Int64, nil
	case node.Float64 != nil:
		f := *node.Float64
		if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
			return 0, mismatch(path, "%v is not an integer", f)
		}
		return int64(f), nil
	}
	i, err := strconv.ParseInt(node.Number, 10, 64)
	if err != nil {
		return 0, corrupted(path, err)
	}
	return i, nil
}

func nodeFloat(node *ir.Node, path keypath.KeyPath) (float64, error) {
	if node.Type != ir.NumberType {
		return 0, typeMismatch(path, "Number", node)
	}
	switch {
	case node.Float64 != nil:
		return *node.Float64, nil
	case node.Int64 != nil:
		return float64(*node.Int64), nil
	}
	f, err := strconv.ParseFloat(node.Number, 64)
	if err != nil {
		return 0, corrupted(path, err)
	}
	return f, nil
}
