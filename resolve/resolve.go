package resolve

import (
	"github.com/signadot/tony-format/go-keypath/debug"
	"github.com/signadot/tony-format/go-keypath/keypath"
)

func emptyPath(at keypath.KeyPath, kp keypath.KeyPath) error {
	return keypath.Errorf(keypath.ErrInvalidKeyPath, at.Join(kp), "key path must not be empty")
}

// Read resolves kp from r and reads the leaf value. found is false when
// any segment along kp is absent.
func Read[V any](kp keypath.KeyPath, r Reader[V]) (v V, found bool, err error) {
	if kp.IsEmpty() {
		return v, false, emptyPath(r.Path(), kp)
	}
	cur, ok, err := descendRead(kp, kp.Len()-1, r)
	if err != nil || !ok {
		return v, false, err
	}
	leaf := kp.At(kp.Len() - 1)
	if debug.Resolve() {
		debug.Logger().Debug("resolve read", "at", cur.Path().String(), "leaf", leaf.String())
	}
	return cur.Read(leaf)
}

// Write resolves kp from w, creating intermediate containers, and writes
// v at the leaf.
func Write[V any](kp keypath.KeyPath, w Writer[V], v V) error {
	if kp.IsEmpty() {
		return emptyPath(w.Path(), kp)
	}
	cur, err := descendWrite(kp, kp.Len()-1, w)
	if err != nil {
		return err
	}
	leaf := kp.At(kp.Len() - 1)
	if debug.Resolve() {
		debug.Logger().Debug("resolve write", "at", cur.Path().String(), "leaf", leaf.String())
	}
	return cur.Write(leaf, v)
}

// DescendRead returns the reader on the container at kp.
func DescendRead[V any](kp keypath.KeyPath, r Reader[V]) (Reader[V], bool, error) {
	if kp.IsEmpty() {
		return nil, false, emptyPath(r.Path(), kp)
	}
	return descendRead(kp, kp.Len(), r)
}

// DescendWrite returns the writer on the container at kp, creating
// containers as needed.
func DescendWrite[V any](kp keypath.KeyPath, w Writer[V]) (Writer[V], error) {
	if kp.IsEmpty() {
		return nil, emptyPath(w.Path(), kp)
	}
	return descendWrite(kp, kp.Len(), w)
}

// descendRead descends through the first n segments of kp.
func descendRead[V any](kp keypath.KeyPath, n int, r Reader[V]) (Reader[V], bool, error) {
	cur := r
	for i := range n {
		seg := kp.At(i)
		if debug.Resolve() {
			debug.Logger().Debug("resolve descend", "at", cur.Path().String(), "segment", seg.String())
		}
		next, found, err := cur.Descend(seg)
		if err != nil || !found {
			return nil, false, err
		}
		cur = next
	}
	return cur, true, nil
}

// descendWrite descends through the first n segments of kp.
func descendWrite[V any](kp keypath.KeyPath, n int, w Writer[V]) (Writer[V], error) {
	cur := w
	for i := range n {
		seg := kp.At(i)
		if debug.Resolve() {
			debug.Logger().Debug("resolve descend", "at", cur.Path().String(), "segment", seg.String())
		}
		next, err := cur.Descend(seg)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}
