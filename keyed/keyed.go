package keyed

import (
	"github.com/signadot/tony-format/go-keypath/cursor"
	"github.com/signadot/tony-format/go-keypath/gomap"
	"github.com/signadot/tony-format/go-keypath/ir"
	"github.com/signadot/tony-format/go-keypath/keypath"
	"github.com/signadot/tony-format/go-keypath/resolve"
)

// present reports whether a non-null value is at kp.
func present(dec *gomap.Decoder, kp keypath.KeyPath) (bool, error) {
	r, err := dec.Reader()
	if err != nil {
		return false, err
	}
	node, found, err := resolve.Read[*ir.Node](kp, r)
	if err != nil || !found {
		return false, err
	}
	return node.Type != ir.NullType, nil
}

// decodeAt resolves kp from the object dec is positioned on and decodes
// the leaf into dst. An explicit null is absent.
func decodeAt(dec *gomap.Decoder, kp keypath.KeyPath, dst any) (bool, error) {
	r, err := dec.Reader()
	if err != nil {
		return false, err
	}
	node, found, err := resolve.Read[*ir.Node](kp, r)
	if err != nil || !found || node.Type == ir.NullType {
		return false, err
	}
	return true, dec.Child(node, dec.Path().Join(kp)).Decode(dst)
}

// encodeAt converts v and writes it at kp under the object enc is
// positioned on. Conversion happens first so a failure leaves no sections
// behind.
func encodeAt(enc *gomap.Encoder, kp keypath.KeyPath, v any) error {
	node, err := enc.Child(nil, enc.Path().Join(kp)).Encode(v)
	if err != nil {
		return err
	}
	w, err := enc.Writer()
	if err != nil {
		return err
	}
	return resolve.Write[*ir.Node](kp, w, node)
}

func descendDecoder(dec *gomap.Decoder, kp keypath.KeyPath) (*gomap.Decoder, bool, error) {
	r, err := dec.Reader()
	if err != nil {
		return nil, false, err
	}
	sub, found, err := resolve.DescendRead[*ir.Node](kp, r)
	if err != nil || !found {
		return nil, false, err
	}
	return dec.Child(sub.(*cursor.Reader).Node(), sub.Path()), true, nil
}

func descendEncoder(enc *gomap.Encoder, kp keypath.KeyPath) (*gomap.Encoder, error) {
	w, err := enc.Writer()
	if err != nil {
		return nil, err
	}
	sub, err := resolve.DescendWrite[*ir.Node](kp, w)
	if err != nil {
		return nil, err
	}
	return enc.Child(sub.(*cursor.Writer).Node(), sub.Path()), nil
}

func notFound(path keypath.KeyPath) error {
	return keypath.Errorf(keypath.ErrValueNotFound, path, "no value")
}
