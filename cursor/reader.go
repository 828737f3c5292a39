package cursor

import (
	"github.com/signadot/tony-format/go-keypath/debug"
	"github.com/signadot/tony-format/go-keypath/ir"
	"github.com/signadot/tony-format/go-keypath/keypath"
	"github.com/signadot/tony-format/go-keypath/resolve"
)

// Reader is a cursor on an object of a document being decoded.
type Reader struct {
	node *ir.Node
	path keypath.KeyPath
	keys KeyStrategy
}

// NewReader returns a Reader on node, which must be an object. path is the
// document path of node, used in diagnostics. A nil keys means Identity.
func NewReader(node *ir.Node, path keypath.KeyPath, keys KeyStrategy) (*Reader, error) {
	if keys == nil {
		keys = Identity
	}
	if node == nil || node.Type != ir.ObjectType {
		return nil, notKeyed(path, node)
	}
	return &Reader{node: node, path: path, keys: keys}, nil
}

// Node returns the object r is positioned on.
func (r *Reader) Node() *ir.Node {
	return r.node
}

// Path returns the document path of r.
func (r *Reader) Path() keypath.KeyPath {
	return r.path
}

// Read returns the value at seg, or found == false if there is none.
// An explicit null is found.
func (r *Reader) Read(seg keypath.Segment) (*ir.Node, bool, error) {
	i, err := r.lookup(seg)
	if err != nil || i < 0 {
		return nil, false, err
	}
	if debug.Cursor() {
		debug.Logf("cursor read %s: %v", r.path.Append(seg), r.node.Values[i])
	}
	return r.node.Values[i], true, nil
}

// Descend returns a Reader on the object at seg. A missing or null value
// is absent; any other non-object value is a type mismatch.
func (r *Reader) Descend(seg keypath.Segment) (resolve.Reader[*ir.Node], bool, error) {
	i, err := r.lookup(seg)
	if err != nil || i < 0 {
		return nil, false, err
	}
	child := r.node.Values[i]
	if child.Type == ir.NullType {
		return nil, false, nil
	}
	path := r.path.Append(seg)
	if child.Type != ir.ObjectType {
		return nil, false, notKeyed(path, child)
	}
	return &Reader{node: child, path: path, keys: r.keys}, true, nil
}

func (r *Reader) lookup(seg keypath.Segment) (int, error) {
	if seg.String() == "" {
		return -1, emptyKey(r.path)
	}
	want := seg.String()
	doc := r.keys.ToDocument(want)
	// Keys written by a Writer with the same strategy must read back even
	// when the strategy does not round trip (created_at, userID).
	return r.node.FieldIndex(func(key string, field *ir.Node) bool {
		if field.Type == ir.NumberType {
			return key == want
		}
		return key == doc || r.keys.FromDocument(key) == want
	}), nil
}

func notKeyed(path keypath.KeyPath, node *ir.Node) error {
	if node == nil {
		return keypath.Errorf(keypath.ErrTypeMismatch, path, "expected Object, got nothing")
	}
	return keypath.Errorf(keypath.ErrTypeMismatch, path, "expected Object, got %s", node.Type)
}

func emptyKey(path keypath.KeyPath) error {
	return keypath.Errorf(keypath.ErrDataCorrupted, path, "empty key")
}
