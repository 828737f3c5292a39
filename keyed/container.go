package keyed

import (
	"github.com/signadot/tony-format/go-keypath/gomap"
	"github.com/signadot/tony-format/go-keypath/keypath"
)

// DecodeContainer reads the values of one schema, keyed by K, from the
// object a gomap.Decoder is positioned on.
type DecodeContainer[K ~string] struct {
	dec   *gomap.Decoder
	table *keypath.Table[K]
}

// ForDecoding returns a container for table on dec's object. dec must be
// positioned on an object.
func ForDecoding[K ~string](dec *gomap.Decoder, table *keypath.Table[K]) (*DecodeContainer[K], error) {
	if _, err := dec.Reader(); err != nil {
		return nil, err
	}
	return &DecodeContainer[K]{dec: dec, table: table}, nil
}

// Decoder returns the coding context the container reads from.
func (c *DecodeContainer[K]) Decoder() *gomap.Decoder {
	return c.dec
}

// Path returns the document path of the container's object.
func (c *DecodeContainer[K]) Path() keypath.KeyPath {
	return c.dec.Path()
}

// Contains reports whether a non-null value is present at key.
func (c *DecodeContainer[K]) Contains(key K) (bool, error) {
	kp, err := lookup(c.table, c.Path(), key)
	if err != nil {
		return false, err
	}
	return present(c.dec, kp)
}

// EncodeContainer writes the values of one schema, keyed by K, into the
// object a gomap.Encoder is positioned on.
type EncodeContainer[K ~string] struct {
	enc   *gomap.Encoder
	table *keypath.Table[K]
}

// ForEncoding returns a container for table on enc's object.
func ForEncoding[K ~string](enc *gomap.Encoder, table *keypath.Table[K]) (*EncodeContainer[K], error) {
	if _, err := enc.Writer(); err != nil {
		return nil, err
	}
	return &EncodeContainer[K]{enc: enc, table: table}, nil
}

// Encoder returns the coding context the container writes to.
func (c *EncodeContainer[K]) Encoder() *gomap.Encoder {
	return c.enc
}

// Path returns the document path of the container's object.
func (c *EncodeContainer[K]) Path() keypath.KeyPath {
	return c.enc.Path()
}

// Decode returns the value at key. An absent value, an absent section
// along the path or an explicit null is keypath.ErrValueNotFound.
func Decode[T any, K ~string](c *DecodeContainer[K], key K) (T, error) {
	v, found, err := DecodeIfPresent[T](c, key)
	if err != nil {
		return v, err
	}
	if !found {
		kp, _ := c.table.Lookup(key)
		return v, notFound(c.Path().Join(kp))
	}
	return v, nil
}

// DecodeIfPresent returns the value at key, or found == false when it is
// absent or null.
func DecodeIfPresent[T any, K ~string](c *DecodeContainer[K], key K) (v T, found bool, err error) {
	kp, err := lookup(c.table, c.Path(), key)
	if err != nil {
		return v, false, err
	}
	found, err = decodeAt(c.dec, kp, &v)
	if err != nil || !found {
		var zero T
		return zero, false, err
	}
	return v, true, nil
}

// Encode writes v at key, creating the sections along its path.
func Encode[T any, K ~string](c *EncodeContainer[K], key K, v T) error {
	kp, err := lookup(c.table, c.Path(), key)
	if err != nil {
		return err
	}
	return encodeAt(c.enc, kp, v)
}

// EncodeIfPresent writes *v at key. A nil v writes nothing.
func EncodeIfPresent[T any, K ~string](c *EncodeContainer[K], key K, v *T) error {
	if v == nil {
		return nil
	}
	return Encode(c, key, *v)
}

// NestedDecodeContainer returns a container for a second schema rooted at
// key. A missing or null section is keypath.ErrValueNotFound.
func NestedDecodeContainer[N ~string, K ~string](c *DecodeContainer[K], key K, table *keypath.Table[N]) (*DecodeContainer[N], error) {
	kp, err := lookup(c.table, c.Path(), key)
	if err != nil {
		return nil, err
	}
	dec, found, err := descendDecoder(c.dec, kp)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, notFound(c.Path().Join(kp))
	}
	return &DecodeContainer[N]{dec: dec, table: table}, nil
}

// NestedEncodeContainer returns a container for a second schema rooted at
// key, creating the sections along its path.
func NestedEncodeContainer[N ~string, K ~string](c *EncodeContainer[K], key K, table *keypath.Table[N]) (*EncodeContainer[N], error) {
	kp, err := lookup(c.table, c.Path(), key)
	if err != nil {
		return nil, err
	}
	enc, err := descendEncoder(c.enc, kp)
	if err != nil {
		return nil, err
	}
	return &EncodeContainer[N]{enc: enc, table: table}, nil
}

func lookup[K ~string](table *keypath.Table[K], at keypath.KeyPath, key K) (keypath.KeyPath, error) {
	kp, ok := table.Lookup(key)
	if !ok {
		return keypath.KeyPath{}, keypath.Errorf(keypath.ErrInvalidKeyPath, at, "key %q is not registered", string(key))
	}
	return kp, nil
}
