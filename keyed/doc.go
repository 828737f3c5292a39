// Package keyed lets schema types read and write values at dotted key
// paths of nested documents.
//
// A schema registers its key paths once as a keypath.Table, then builds a
// container from the coding context handed to its gomap hooks:
//
//	type proposalKey string
//
//	const (
//	    keyID        proposalKey = "id"
//	    keyReviewEnd proposalKey = "metadata.reviewEndDate"
//	)
//
//	var proposalKeys = keypath.MustCompile(keyID, keyReviewEnd)
//
//	func (p *Proposal) DecodeTony(dec *gomap.Decoder) error {
//	    c, err := keyed.ForDecoding(dec, proposalKeys)
//	    if err != nil {
//	        return err
//	    }
//	    if p.ID, err = keyed.Decode[string](c, keyID); err != nil {
//	        return err
//	    }
//	    p.ReviewEnd, err = keyed.Decode[time.Time](c, keyReviewEnd)
//	    return err
//	}
//
// Every call resolves its key path from the container root; nothing is
// cached between calls. Decode reports a missing value as
// keypath.ErrValueNotFound while DecodeIfPresent reports it as absent.
// EncodeIfPresent with a nil value leaves no trace in the document, not
// even the sections that would have held it.
//
// Structs can instead declare their paths in tags and use DecodeStruct,
// EncodeStruct, Marshal and Unmarshal:
//
//	type Proposal struct {
//	    ID        string    `tony:"path=id"`
//	    ReviewEnd time.Time `tony:"path=metadata.reviewEndDate"`
//	    Notes     *string   // path "notes", optional
//	    Cache     []byte    `tony:"omit"`
//	}
package keyed
