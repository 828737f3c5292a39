package keypath

import (
	"fmt"
	"slices"
	"strings"

	"github.com/signadot/tony-format/go-keypath/ir/kpath"
)

// KeyPath is an immutable ordered sequence of segments.
// The zero value is the empty key path.
type KeyPath struct {
	segs []Segment
}

// Parse splits a dotted key path. The empty string yields the empty key
// path; every other string yields one segment per dot-separated part, empty
// parts included. Parse never fails: containers reject unusable segments
// when they are accessed.
func Parse(s string) KeyPath {
	if s == "" {
		return KeyPath{}
	}
	parts := strings.Split(s, ".")
	segs := make([]Segment, len(parts))
	for i, part := range parts {
		segs[i] = Name(part)
	}
	return KeyPath{segs: segs}
}

// New returns a key path holding segs.
func New(segs ...Segment) KeyPath {
	return KeyPath{segs: slices.Clone(segs)}
}

// FromKPath converts a kinded path. Fields become names and dense or
// sparse indices become integer segments. Wildcards cannot address a
// single value and are rejected.
func FromKPath(kp *kpath.KPath) (KeyPath, error) {
	segs := make([]Segment, 0, kp.Len())
	for x := kp; x != nil; x = x.Next {
		switch {
		case x.Wild():
			return KeyPath{}, &PathError{
				Kind:    ErrInvalidKeyPath,
				Path:    KeyPath{segs: segs},
				Message: fmt.Sprintf("wildcard %s in %q", x.SegmentString(), kp.String()),
			}
		case x.Field != nil:
			segs = append(segs, Name(*x.Field))
		case x.Index != nil:
			segs = append(segs, Index(*x.Index))
		case x.SparseIndex != nil:
			segs = append(segs, Index(*x.SparseIndex))
		}
	}
	return KeyPath{segs: segs}, nil
}

// Len returns the number of segments.
func (p KeyPath) Len() int {
	return len(p.segs)
}

// IsEmpty reports whether p has no segments.
func (p KeyPath) IsEmpty() bool {
	return len(p.segs) == 0
}

// At returns the i'th segment.
func (p KeyPath) At(i int) Segment {
	return p.segs[i]
}

// Segments returns a copy of the segments of p.
func (p KeyPath) Segments() []Segment {
	return slices.Clone(p.segs)
}

// First returns the first segment and the key path of the rest.
// It panics if p is empty.
func (p KeyPath) First() (Segment, KeyPath) {
	return p.segs[0], KeyPath{segs: p.segs[1:len(p.segs):len(p.segs)]}
}

// Rest returns p without its first segment. The rest of the empty key
// path is empty.
func (p KeyPath) Rest() KeyPath {
	if len(p.segs) == 0 {
		return p
	}
	_, rest := p.First()
	return rest
}

// Append returns p followed by segs. p is not modified.
func (p KeyPath) Append(segs ...Segment) KeyPath {
	res := make([]Segment, 0, len(p.segs)+len(segs))
	res = append(res, p.segs...)
	return KeyPath{segs: append(res, segs...)}
}

// Join returns p followed by the segments of q.
func (p KeyPath) Join(q KeyPath) KeyPath {
	return p.Append(q.segs...)
}

// HasPrefix reports whether the segments of q start p, comparing string
// forms.
func (p KeyPath) HasPrefix(q KeyPath) bool {
	if len(q.segs) > len(p.segs) {
		return false
	}
	for i, s := range q.segs {
		if p.segs[i].name != s.name {
			return false
		}
	}
	return true
}

// String joins the string forms of the segments with dots.
func (p KeyPath) String() string {
	names := make([]string, len(p.segs))
	for i, s := range p.segs {
		names[i] = s.name
	}
	return strings.Join(names, ".")
}
