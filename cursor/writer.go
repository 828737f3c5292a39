package cursor

import (
	"github.com/signadot/tony-format/go-keypath/debug"
	"github.com/signadot/tony-format/go-keypath/ir"
	"github.com/signadot/tony-format/go-keypath/keypath"
	"github.com/signadot/tony-format/go-keypath/resolve"
)

// Writer is a cursor on an object of a document being encoded.
type Writer struct {
	node *ir.Node
	path keypath.KeyPath
	keys KeyStrategy
}

// NewWriter returns a Writer on node, which must be an object.
// A nil keys means Identity.
func NewWriter(node *ir.Node, path keypath.KeyPath, keys KeyStrategy) (*Writer, error) {
	if keys == nil {
		keys = Identity
	}
	if node == nil || node.Type != ir.ObjectType {
		return nil, notKeyed(path, node)
	}
	return &Writer{node: node, path: path, keys: keys}, nil
}

// Node returns the object w is positioned on.
func (w *Writer) Node() *ir.Node {
	return w.node
}

// Path returns the document path of w.
func (w *Writer) Path() keypath.KeyPath {
	return w.path
}

// Write sets seg to v, replacing any existing value and otherwise
// appending a new field.
func (w *Writer) Write(seg keypath.Segment, v *ir.Node) error {
	i, err := w.lookup(seg)
	if err != nil {
		return err
	}
	if debug.Cursor() {
		debug.Logf("cursor write %s: %v", w.path.Append(seg), v)
	}
	if i >= 0 {
		w.node.ReplaceValue(i, v)
		return nil
	}
	key, err := w.key(seg)
	if err != nil {
		return err
	}
	w.node.AppendField(key, v)
	return nil
}

// Descend returns a Writer on the object at seg. An existing object is
// reused so sibling key paths share one section; a missing or null value
// is replaced by a new empty object.
func (w *Writer) Descend(seg keypath.Segment) (resolve.Writer[*ir.Node], error) {
	i, err := w.lookup(seg)
	if err != nil {
		return nil, err
	}
	path := w.path.Append(seg)
	var child *ir.Node
	switch {
	case i < 0:
		key, err := w.key(seg)
		if err != nil {
			return nil, err
		}
		child = ir.Object()
		w.node.AppendField(key, child)
		if debug.Cursor() {
			debug.Logger().Debug("cursor created section", "path", path.String())
		}
	case w.node.Values[i].Type == ir.NullType:
		child = ir.Object()
		w.node.ReplaceValue(i, child)
	case w.node.Values[i].Type == ir.ObjectType:
		child = w.node.Values[i]
	default:
		return nil, notKeyed(path, w.node.Values[i])
	}
	return &Writer{node: child, path: path, keys: w.keys}, nil
}

func (w *Writer) lookup(seg keypath.Segment) (int, error) {
	if seg.String() == "" {
		return -1, emptyKey(w.path)
	}
	want := seg.String()
	doc := w.keys.ToDocument(want)
	return w.node.FieldIndex(func(key string, field *ir.Node) bool {
		if field.Type == ir.NumberType {
			return key == want
		}
		return key == doc
	}), nil
}

// key returns the field key node for seg. Segments with an integer form
// become number keys in objects that are empty or already int keyed; int
// keyed objects accept no other keys.
func (w *Writer) key(seg keypath.Segment) (*ir.Node, error) {
	i, isInt := seg.Int()
	switch {
	case isInt && (len(w.node.Fields) == 0 || w.node.IntKeyed()):
		if !w.node.HasTag(ir.IntKeysTag) {
			w.node.Tag = ir.IntKeysTag
		}
		k := ir.FromInt(int64(i))
		k.String = seg.String()
		return k, nil
	case w.node.IntKeyed():
		return nil, keypath.Errorf(keypath.ErrTypeMismatch, w.path.Append(seg), "int keyed object needs an integer segment")
	case isInt:
		return ir.FromString(seg.String()), nil
	}
	return ir.FromString(w.keys.ToDocument(seg.String())), nil
}
