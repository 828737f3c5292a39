package gomap

import (
	"github.com/signadot/tony-format/go-keypath/cursor"
	"github.com/signadot/tony-format/go-keypath/ir"
	"github.com/signadot/tony-format/go-keypath/keypath"
)

// TonyDecoder is implemented by types that decode themselves from the
// object a Decoder is positioned on.
type TonyDecoder interface {
	DecodeTony(*Decoder) error
}

// TonyEncoder is implemented by types that encode themselves into the
// object an Encoder is positioned on.
type TonyEncoder interface {
	EncodeTony(*Encoder) error
}

type fromTony interface {
	FromTony(*ir.Node) error
}

type toTony interface {
	ToTony() (*ir.Node, error)
}

// Decoder is the context of one decode call: a node, its document path
// and the options in effect. It is not safe for concurrent use.
type Decoder struct {
	node *ir.Node
	path keypath.KeyPath
	cfg  *unmapConfig
}

// NewDecoder returns a Decoder positioned on the document root node.
func NewDecoder(node *ir.Node, opts ...UnmapOption) *Decoder {
	return &Decoder{node: node, cfg: newUnmapConfig(opts)}
}

// Child returns a Decoder on node at path sharing d's options.
func (d *Decoder) Child(node *ir.Node, path keypath.KeyPath) *Decoder {
	return &Decoder{node: node, path: path, cfg: d.cfg}
}

func (d *Decoder) Node() *ir.Node {
	return d.node
}

func (d *Decoder) Path() keypath.KeyPath {
	return d.path
}

func (d *Decoder) KeyStrategy() cursor.KeyStrategy {
	return d.cfg.keys
}

// Reader returns a fresh cursor on d's node, which must be an object.
func (d *Decoder) Reader() (*cursor.Reader, error) {
	return cursor.NewReader(d.node, d.path, d.cfg.keys)
}

// Decode stores d's node in the value pointed to by v.
func (d *Decoder) Decode(v any) error {
	return d.decode(v)
}

// Encoder is the context of one encode call: the object being built, its
// document path and the options in effect. It is not safe for concurrent
// use.
type Encoder struct {
	node *ir.Node
	path keypath.KeyPath
	cfg  *mapConfig
}

// NewEncoder returns an Encoder building a new root object.
func NewEncoder(opts ...MapOption) *Encoder {
	return &Encoder{node: ir.Object(), cfg: newMapConfig(opts)}
}

// Child returns an Encoder on node at path sharing e's options. A nil
// node means a new empty object.
func (e *Encoder) Child(node *ir.Node, path keypath.KeyPath) *Encoder {
	if node == nil {
		node = ir.Object()
	}
	return &Encoder{node: node, path: path, cfg: e.cfg}
}

// Node returns the object built so far.
func (e *Encoder) Node() *ir.Node {
	return e.node
}

func (e *Encoder) Path() keypath.KeyPath {
	return e.path
}

func (e *Encoder) KeyStrategy() cursor.KeyStrategy {
	return e.cfg.keys
}

// Writer returns a fresh cursor on e's object.
func (e *Encoder) Writer() (*cursor.Writer, error) {
	return cursor.NewWriter(e.node, e.path, e.cfg.keys)
}

// Encode converts v to a node using e's options. Errors report paths
// relative to e's path. The result is not attached to e's object.
func (e *Encoder) Encode(v any) (*ir.Node, error) {
	return e.encode(v)
}
