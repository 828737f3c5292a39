package keypath

import "strconv"

// Segment is one atomic key of a key path. Its string form is always
// set; an integer form is present only for segments built by Index.
type Segment struct {
	name     string
	index    int
	hasIndex bool
}

// Name returns a string-only segment.
func Name(name string) Segment {
	return Segment{name: name}
}

// Index returns a segment with integer form i and string form
// strconv.Itoa(i).
func Index(i int) Segment {
	return Segment{name: strconv.Itoa(i), index: i, hasIndex: true}
}

// String returns the string form of s.
func (s Segment) String() string {
	return s.name
}

// Int returns the integer form of s, if any.
func (s Segment) Int() (int, bool) {
	return s.index, s.hasIndex
}
