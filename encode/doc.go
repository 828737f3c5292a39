// Package encode writes IR nodes as JSON or YAML text.
//
// # Usage
//
//	node := ir.FromKeyVals([]ir.KeyVal{
//	    {Key: ir.FromString("id"), Val: ir.FromString("SE-0274")},
//	})
//	// compact JSON
//	err := encode.JSON(node, os.Stdout)
//
//	// indented JSON, colored when stdout is a terminal
//	err = encode.JSON(node, os.Stdout, encode.Indent("  "), encode.AutoColor(os.Stdout))
//
//	// YAML
//	err = encode.YAML(node, os.Stdout)
//
// Object fields are written in document order. Int keyed objects are
// written with their keys in decimal.
//
// # Related Packages
//
//   - github.com/signadot/tony-format/go-keypath/ir - IR representation
//   - github.com/signadot/tony-format/go-keypath/parse - Parse text to IR
package encode
