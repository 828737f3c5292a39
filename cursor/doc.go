// Package cursor implements key-path cursors over *ir.Node documents.
//
// A Reader or Writer is positioned on one object of a document and knows
// the document path that led to it. Descending yields a new cursor on a
// nested object; the parent cursor stays usable. Readers and writers share
// no state and neither is safe for concurrent use.
//
// Document keys may be spelled differently from schema keys. A
// KeyStrategy maps between the two: SnakeCase stores reviewStartDate as
// review_start_date.
package cursor
