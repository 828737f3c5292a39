package keyed

import (
	"time"

	"github.com/signadot/tony-format/go-keypath/gomap"
	"github.com/signadot/tony-format/go-keypath/keypath"
)

type EvolutionProposal struct {
	ID              string
	Title           string
	ReviewStartDate time.Time
	ReviewEndDate   time.Time
	Status          *string
}

type proposalKey string

const (
	keyID              proposalKey = "id"
	keyTitle           proposalKey = "title"
	keyReviewStartDate proposalKey = "metadata.reviewStartDate"
	keyReviewEndDate   proposalKey = "metadata.reviewEndDate"
	keyStatus          proposalKey = "metadata.review.status"
)

var proposalKeys = keypath.MustCompile(keyID, keyTitle, keyReviewStartDate, keyReviewEndDate, keyStatus)

func (p *EvolutionProposal) DecodeTony(dec *gomap.Decoder) error {
	c, err := ForDecoding(dec, proposalKeys)
	if err != nil {
		return err
	}
	if p.ID, err = Decode[string](c, keyID); err != nil {
		return err
	}
	if p.Title, err = Decode[string](c, keyTitle); err != nil {
		return err
	}
	if p.ReviewStartDate, err = Decode[time.Time](c, keyReviewStartDate); err != nil {
		return err
	}
	if p.ReviewEndDate, err = Decode[time.Time](c, keyReviewEndDate); err != nil {
		return err
	}
	status, found, err := DecodeIfPresent[string](c, keyStatus)
	if err != nil {
		return err
	}
	if found {
		p.Status = &status
	}
	return nil
}

func (p *EvolutionProposal) EncodeTony(enc *gomap.Encoder) error {
	c, err := ForEncoding(enc, proposalKeys)
	if err != nil {
		return err
	}
	if err := Encode(c, keyID, p.ID); err != nil {
		return err
	}
	if err := Encode(c, keyTitle, p.Title); err != nil {
		return err
	}
	if err := Encode(c, keyReviewStartDate, p.ReviewStartDate); err != nil {
		return err
	}
	if err := Encode(c, keyReviewEndDate, p.ReviewEndDate); err != nil {
		return err
	}
	return EncodeIfPresent(c, keyStatus, p.Status)
}
