// Package gomap converts between Go values and IR nodes.
//
// Leaf values (strings, numbers, booleans, times, slices, maps and plain
// structs) are converted by reflection. Schema types take over their own
// conversion with hooks:
//
//   - TonyDecoder / TonyEncoder receive a coding context (Decoder or
//     Encoder) positioned on the object that holds the type's fields.
//     The keyed package builds key path containers on top of them.
//   - FromTony(*ir.Node) error / ToTony() (*ir.Node, error) methods
//     receive or return the node directly.
//   - encoding.TextUnmarshaler / encoding.TextMarshaler map to strings.
//
// Options configure the key strategy used for object keys and the layout
// used for time.Time values:
//
//	node, err := gomap.ToIR(v, gomap.WithKeyStrategy(cursor.SnakeCase))
//	err = gomap.FromIR(node, &v, gomap.WithTimeLayout(time.RFC3339))
//
// Errors are *keypath.PathError values carrying the document path of the
// failing value.
package gomap
