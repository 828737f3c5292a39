// Package ir provides the intermediate representation (IR) of documents
// handled by key-path coding.
//
// # Overview
//
// A document is a tree of *Node values. The IR is purely semantic: it
// carries no position information from input text, and it is produced and
// consumed by the parse, encode and gomap packages.
//
// # Node Types
//
// The Type field indicates the node's type:
//
//   - NullType: null value
//   - BoolType: boolean (true/false)
//   - NumberType: numeric value (int64, float64 or literal text)
//   - StringType: string value
//   - ArrayType: ordered list of nodes
//   - ObjectType: ordered key-value pairs (fields and values)
//
// # Objects
//
// For ObjectType nodes, Fields[i] is the key for the value at Values[i], so
// there will always be the same number of fields as values. Field order is
// insertion order and is preserved by every operation in this module.
//
// Fields are always either:
//   - String typed - normal object keys
//   - Int typed - for int-keyed objects, tagged with IntKeysTag
//   - Null typed - a merge key, ignored by lookups
//
// Objects must either have all keys int typed, or all keys not int typed.
//
// # Creating Nodes
//
//	obj := ir.FromKeyVals([]ir.KeyVal{
//	    {Key: ir.FromString("id"), Val: ir.FromString("SE-0274")},
//	})
//	obj.AppendField(ir.FromString("draft"), ir.FromBool(true))
package ir
