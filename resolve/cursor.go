package resolve

import "github.com/signadot/tony-format/go-keypath/keypath"

// Reader is a cursor on a keyed container of a document being decoded.
type Reader[V any] interface {
	// Path returns the document path of the container.
	Path() keypath.KeyPath

	// Read returns the value at seg. found is false, with a nil error,
	// when seg is absent.
	Read(seg keypath.Segment) (v V, found bool, err error)

	// Descend returns a cursor on the keyed container at seg. found is
	// false, with a nil error, when seg is absent.
	Descend(seg keypath.Segment) (child Reader[V], found bool, err error)
}

// Writer is a cursor on a keyed container of a document being encoded.
type Writer[V any] interface {
	// Path returns the document path of the container.
	Path() keypath.KeyPath

	// Write sets the value at seg.
	Write(seg keypath.Segment, v V) error

	// Descend returns a cursor on the keyed container at seg, creating
	// it if needed.
	Descend(seg keypath.Segment) (Writer[V], error)
}
