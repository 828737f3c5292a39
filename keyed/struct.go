package keyed

import (
	"encoding"
	"fmt"
	"reflect"
	"sync"
	"time"

	"github.com/iancoleman/strcase"
	"github.com/signadot/tony-format/go-keypath/debug"
	"github.com/signadot/tony-format/go-keypath/gomap"
	"github.com/signadot/tony-format/go-keypath/ir"
	"github.com/signadot/tony-format/go-keypath/keypath"
)

// fieldLayout maps one struct field to its key path.
type fieldLayout struct {
	index    int
	name     string
	path     keypath.KeyPath
	optional bool
	// nested fields hold structs coded through their own layout in the
	// section at path.
	nested bool
}

type structLayout struct {
	typ    reflect.Type
	fields []fieldLayout
}

// layouts caches compiled layouts by struct type.
var layouts sync.Map

func layoutOf(t reflect.Type) (*structLayout, error) {
	if l, ok := layouts.Load(t); ok {
		return l.(*structLayout), nil
	}
	l, err := compileLayout(t)
	if err != nil {
		return nil, err
	}
	actual, _ := layouts.LoadOrStore(t, l)
	return actual.(*structLayout), nil
}

func compileLayout(t reflect.Type) (*structLayout, error) {
	l := &structLayout{typ: t}
	var paths []string
	for i := range t.NumField() {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		tag, err := parseStructTag(sf.Tag.Get("tony"))
		if err != nil {
			return nil, keypath.Errorf(keypath.ErrInvalidKeyPath, keypath.KeyPath{}, "%s.%s: %v", t, sf.Name, err)
		}
		if _, omit := tag["omit"]; omit {
			continue
		}
		path, ok := tag["path"]
		if !ok {
			path = strcase.ToLowerCamel(sf.Name)
		}
		_, optional := tag["optional"]
		l.fields = append(l.fields, fieldLayout{
			index:    i,
			name:     sf.Name,
			optional: optional || sf.Type.Kind() == reflect.Pointer,
			nested:   isNested(sf.Type),
		})
		paths = append(paths, path)
	}
	table, err := keypath.Compile(paths...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", t, err)
	}
	for i := range l.fields {
		l.fields[i].path, _ = table.Lookup(paths[i])
	}
	if debug.Map() {
		debug.Logger().Debug("keyed layout", "type", t.String(), "fields", len(l.fields))
	}
	return l, nil
}

var (
	timeType            = reflect.TypeFor[time.Time]()
	nodeType            = reflect.TypeFor[ir.Node]()
	tonyDecoderType     = reflect.TypeFor[gomap.TonyDecoder]()
	tonyEncoderType     = reflect.TypeFor[gomap.TonyEncoder]()
	textMarshalerType   = reflect.TypeFor[encoding.TextMarshaler]()
	textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()
	fromTonyType        = reflect.TypeFor[interface{ FromTony(*ir.Node) error }]()
	toTonyType          = reflect.TypeFor[interface{ ToTony() (*ir.Node, error) }]()
)

// isNested reports whether fields of type t are structs coded by layout
// rather than leaf values converted by gomap.
func isNested(t reflect.Type) bool {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct || t == timeType || t == nodeType {
		return false
	}
	p := reflect.PointerTo(t)
	for _, hook := range []reflect.Type{
		tonyDecoderType, tonyEncoderType,
		fromTonyType, toTonyType,
		textMarshalerType, textUnmarshalerType,
	} {
		if p.Implements(hook) {
			return false
		}
	}
	return true
}

func structValue(v any, write bool) (reflect.Value, error) {
	val := reflect.ValueOf(v)
	if val.Kind() == reflect.Pointer && !val.IsNil() {
		val = val.Elem()
	} else if write {
		return reflect.Value{}, keypath.Errorf(keypath.ErrTypeMismatch, keypath.KeyPath{}, "expected a non-nil pointer to a struct, got %T", v)
	}
	if val.Kind() != reflect.Struct {
		return reflect.Value{}, keypath.Errorf(keypath.ErrTypeMismatch, keypath.KeyPath{}, "expected a struct, got %T", v)
	}
	return val, nil
}

// DecodeStruct decodes the object dec is positioned on into the struct
// pointed to by v, following v's tony tags.
func DecodeStruct(dec *gomap.Decoder, v any) error {
	val, err := structValue(v, true)
	if err != nil {
		return err
	}
	if _, err := dec.Reader(); err != nil {
		return err
	}
	return decodeFields(dec, val)
}

func decodeFields(dec *gomap.Decoder, val reflect.Value) error {
	l, err := layoutOf(val.Type())
	if err != nil {
		return err
	}
	for _, f := range l.fields {
		fv := val.Field(f.index)
		if f.nested {
			sub, found, err := descendDecoder(dec, f.path)
			if err != nil {
				return err
			}
			if !found {
				if f.optional {
					continue
				}
				return notFound(dec.Path().Join(f.path))
			}
			if fv.Kind() == reflect.Pointer {
				if fv.IsNil() {
					fv.Set(reflect.New(fv.Type().Elem()))
				}
				fv = fv.Elem()
			}
			if err := decodeFields(sub, fv); err != nil {
				return err
			}
			continue
		}
		found, err := decodeAt(dec, f.path, fv.Addr().Interface())
		if err != nil {
			return err
		}
		if !found && !f.optional {
			return notFound(dec.Path().Join(f.path))
		}
	}
	return nil
}

// EncodeStruct encodes the struct v, or the struct it points to, into the
// object enc is positioned on, following its tony tags. Optional fields
// holding nil are skipped.
func EncodeStruct(enc *gomap.Encoder, v any) error {
	val, err := structValue(v, false)
	if err != nil {
		return err
	}
	if _, err := enc.Writer(); err != nil {
		return err
	}
	visited := map[uintptr]bool{}
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer {
		visited[rv.Pointer()] = true
	}
	return encodeFields(enc, val, visited)
}

// encodeFields tracks the struct pointers on the current descent in
// visited so self-referential layouts fail instead of recursing.
func encodeFields(enc *gomap.Encoder, val reflect.Value, visited map[uintptr]bool) error {
	l, err := layoutOf(val.Type())
	if err != nil {
		return err
	}
	for _, f := range l.fields {
		fv := val.Field(f.index)
		if f.optional && isNil(fv) {
			continue
		}
		if f.nested {
			if fv.Kind() == reflect.Pointer {
				addr := fv.Pointer()
				if visited[addr] {
					return keypath.Errorf(keypath.ErrTypeMismatch, enc.Path().Join(f.path), "circular reference through %s", fv.Type())
				}
				visited[addr] = true
				fv = fv.Elem()
				err := encodeNested(enc, f.path, fv, visited)
				delete(visited, addr)
				if err != nil {
					return err
				}
				continue
			}
			if err := encodeNested(enc, f.path, fv, visited); err != nil {
				return err
			}
			continue
		}
		if err := encodeAt(enc, f.path, fv.Interface()); err != nil {
			return err
		}
	}
	return nil
}

func encodeNested(enc *gomap.Encoder, path keypath.KeyPath, val reflect.Value, visited map[uintptr]bool) error {
	sub, err := descendEncoder(enc, path)
	if err != nil {
		return err
	}
	return encodeFields(sub, val, visited)
}

func isNil(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		return v.IsNil()
	}
	return false
}

// Marshal encodes the struct v into a new document following its tony
// tags.
func Marshal(v any, opts ...gomap.MapOption) (*ir.Node, error) {
	enc := gomap.NewEncoder(opts...)
	if err := EncodeStruct(enc, v); err != nil {
		return nil, err
	}
	return enc.Node(), nil
}

// Unmarshal decodes node into the struct pointed to by v following its
// tony tags.
func Unmarshal(node *ir.Node, v any, opts ...gomap.UnmapOption) error {
	return DecodeStruct(gomap.NewDecoder(node, opts...), v)
}
