// Package keypath defines key paths: ordered sequences of segments that
// address a value across nested keyed containers of a document.
//
// A key path is usually written as a dotted string:
//
//	metadata.reviewStartDate → [metadata reviewStartDate]
//
// There is no escaping; a literal dot can only be carried by a segment that
// was built directly (New, Name) or converted from a kinded path (FromKPath).
//
// Schemas declare their key paths once, as a closed set of named constants,
// and register them with Compile. Registration validates every path so that
// per-call resolution never has to:
//
//	type proposalPath string
//
//	const (
//		proposalID    proposalPath = "id"
//		proposalStart proposalPath = "metadata.reviewStartDate"
//	)
//
//	var proposalPaths = keypath.MustCompile(proposalID, proposalStart)
//
// Numeric-looking text in a dotted string stays a plain name. Segments with
// an integer form only come from Index or from kinded path indices such as
// "a{3}", and they always compare by their decimal string form.
package keypath
