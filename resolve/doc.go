// Package resolve walks key paths over keyed containers.
//
// A key path of n segments is resolved by descending n-1 times, one
// segment at a time and left to right, and then performing a leaf read or
// write on the last segment. Each step owns exactly one new child cursor.
// There is no backtracking and nothing is retried: the first error from a
// cursor is returned as is.
//
// The cursors are abstract. Package cursor provides the implementation
// over *ir.Node documents.
package resolve
