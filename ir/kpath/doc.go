// Package kpath implements kinded paths, where the syntax of each segment
// encodes the kind of the container it addresses:
//
//   - "a.b" → object field b of object field a
//   - "a[0]" → dense array element 0
//   - "a{3}" → entry 3 of an int-keyed (sparse array) object
//   - "a.*", "a[*]", "a{*}" → wildcards over fields, elements, entries
//   - "a.\"b.c\"" → a field whose name contains syntax characters
//
// Kinded paths are how other Tony tooling addresses document positions;
// package keypath converts them into plain key paths.
package kpath
