// Package parse reads JSON and YAML text into IR nodes.
//
// # Usage
//
//	node, err := parse.Parse(data)                    // JSON
//	node, err = parse.Parse(data, parse.ParseYAML())  // YAML
//
// Object fields keep their document order. Integral numbers carry an
// int64, other numbers a float64; both keep their literal text.
// YAML mappings whose keys are all integers become int keyed objects.
//
// # Related Packages
//
//   - github.com/signadot/tony-format/go-keypath/ir - IR representation
//   - github.com/signadot/tony-format/go-keypath/encode - Encode IR to text
package parse
