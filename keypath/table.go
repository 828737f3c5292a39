package keypath

import (
	"fmt"
	"slices"
)

// Table is the registered, validated set of key paths of one schema.
// Tables are immutable and safe for concurrent use.
type Table[K ~string] struct {
	keys  []K
	paths map[K]KeyPath
}

// Compile parses and validates keys. Every key must be a non-empty dotted
// path without empty segments, keys must be unique, and no key may be a
// prefix of another: a value and a section nested under it cannot share a
// position in one document.
func Compile[K ~string](keys ...K) (*Table[K], error) {
	t := &Table[K]{
		keys:  slices.Clone(keys),
		paths: make(map[K]KeyPath, len(keys)),
	}
	for _, k := range keys {
		p := Parse(string(k))
		if p.IsEmpty() {
			return nil, Errorf(ErrInvalidKeyPath, p, "key path must not be empty")
		}
		for _, s := range p.segs {
			if s.name == "" {
				return nil, Errorf(ErrInvalidKeyPath, p, "empty segment in %q", string(k))
			}
		}
		if _, dup := t.paths[k]; dup {
			return nil, Errorf(ErrInvalidKeyPath, p, "duplicate key path %q", string(k))
		}
		for other, op := range t.paths {
			if p.HasPrefix(op) || op.HasPrefix(p) {
				return nil, Errorf(ErrInvalidKeyPath, p, "key paths %q and %q overlap", string(other), string(k))
			}
		}
		t.paths[k] = p
	}
	return t, nil
}

// MustCompile is like Compile but panics on error. It is meant for
// package-level schema registration.
func MustCompile[K ~string](keys ...K) *Table[K] {
	t, err := Compile(keys...)
	if err != nil {
		panic(fmt.Sprintf("keypath: %v", err))
	}
	return t
}

// Lookup returns the key path registered for k.
func (t *Table[K]) Lookup(k K) (KeyPath, bool) {
	p, ok := t.paths[k]
	return p, ok
}

// Keys returns the registered keys in registration order.
func (t *Table[K]) Keys() []K {
	return slices.Clone(t.keys)
}

// Len returns the number of registered keys.
func (t *Table[K]) Len() int {
	return len(t.keys)
}
