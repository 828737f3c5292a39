package kpath

import (
	"fmt"
	"strconv"
	"strings"
)

// KPath is one segment of a kinded path, linked to the next one.
// Exactly one of the segment fields is set.
type KPath struct {
	Field          *string // Object field name
	FieldAll       bool    // Object field wildcard .*
	Index          *int    // Dense array index [n]
	IndexAll       bool    // Dense array wildcard [*]
	SparseIndex    *int    // Sparse array index {n}
	SparseIndexAll bool    // Sparse array wildcard {*}
	Next           *KPath  // Next segment in path (nil for leaf)
}

// Wild reports whether this segment is a wildcard.
func (p *KPath) Wild() bool {
	return p.FieldAll || p.IndexAll || p.SparseIndexAll
}

// Len returns the number of segments in p.
func (p *KPath) Len() int {
	n := 0
	for x := p; x != nil; x = x.Next {
		n++
	}
	return n
}

// String returns the kinded path syntax of p.
//
//	KPath{Field: &"a", Next: &KPath{Index: &0}} → "a[0]"
func (p *KPath) String() string {
	var buf strings.Builder
	for x := p; x != nil; x = x.Next {
		seg := x.SegmentString()
		if buf.Len() > 0 && (x.Field != nil || x.FieldAll) {
			buf.WriteByte('.')
		}
		buf.WriteString(seg)
	}
	return buf.String()
}

// SegmentString returns the syntax of this single segment.
func (p *KPath) SegmentString() string {
	switch {
	case p == nil:
		return ""
	case p.FieldAll:
		return "*"
	case p.Field != nil:
		if needsQuote(*p.Field) {
			return strconv.Quote(*p.Field)
		}
		return *p.Field
	case p.IndexAll:
		return "[*]"
	case p.Index != nil:
		return fmt.Sprintf("[%d]", *p.Index)
	case p.SparseIndexAll:
		return "{*}"
	case p.SparseIndex != nil:
		return fmt.Sprintf("{%d}", *p.SparseIndex)
	}
	return ""
}

func needsQuote(field string) bool {
	return field == "" || field == "*" || strings.ContainsAny(field, ".[]{}\"' \t\n")
}

// Parse parses a kinded path string. The empty string is the root path
// and parses to nil.
func Parse(kp string) (*KPath, error) {
	if kp == "" {
		return nil, nil
	}
	var head, tail *KPath
	i := 0
	for i < len(kp) {
		seg := &KPath{}
		var (
			n   int
			err error
		)
		switch kp[i] {
		case '[', '{':
			n, err = parseIndex(kp[i:], seg)
		default:
			if head != nil {
				if kp[i] != '.' {
					return nil, fmt.Errorf("invalid kinded path %q: expected '.' at %d", kp, i)
				}
				i++
			}
			n, err = parseField(kp[i:], seg)
		}
		if err != nil {
			return nil, fmt.Errorf("invalid kinded path %q at %d: %w", kp, i, err)
		}
		i += n
		if head == nil {
			head = seg
		} else {
			tail.Next = seg
		}
		tail = seg
	}
	return head, nil
}

func parseIndex(s string, seg *KPath) (int, error) {
	closer := byte(']')
	if s[0] == '{' {
		closer = '}'
	}
	end := strings.IndexByte(s, closer)
	if end < 0 {
		return 0, fmt.Errorf("unterminated %c", s[0])
	}
	body := s[1:end]
	if body == "*" {
		if closer == ']' {
			seg.IndexAll = true
		} else {
			seg.SparseIndexAll = true
		}
		return end + 1, nil
	}
	idx, err := strconv.Atoi(body)
	if err != nil || idx < 0 {
		return 0, fmt.Errorf("invalid index %q", body)
	}
	if closer == ']' {
		seg.Index = &idx
	} else {
		seg.SparseIndex = &idx
	}
	return end + 1, nil
}

func parseField(s string, seg *KPath) (int, error) {
	if s == "" {
		return 0, fmt.Errorf("empty field")
	}
	if s[0] == '"' {
		q, err := strconv.QuotedPrefix(s)
		if err != nil {
			return 0, err
		}
		field, err := strconv.Unquote(q)
		if err != nil {
			return 0, err
		}
		seg.Field = &field
		return len(q), nil
	}
	end := strings.IndexAny(s, ".[{")
	if end < 0 {
		end = len(s)
	}
	if end == 0 {
		return 0, fmt.Errorf("empty field")
	}
	field := s[:end]
	if strings.ContainsAny(field, "]}") {
		return 0, fmt.Errorf("unexpected bracket in field %q", field)
	}
	if field == "*" {
		seg.FieldAll = true
		return end, nil
	}
	seg.Field = &field
	return end, nil
}
