package keyed

import (
	"errors"
	"testing"
	"time"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/google/go-cmp/cmp"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/signadot/tony-format/go-keypath/cursor"
	"github.com/signadot/tony-format/go-keypath/encode"
	"github.com/signadot/tony-format/go-keypath/gomap"
	"github.com/signadot/tony-format/go-keypath/ir"
	"github.com/signadot/tony-format/go-keypath/keypath"
	"github.com/signadot/tony-format/go-keypath/parse"
)

const proposalJSON = `{"id":"SE-0274","title":"Concise magic file names","metadata":{"review_start_date":"2020-01-08T00:00:00Z","review_end_date":"2020-01-16T00:00:00Z"}}`

func textDiff(want, got string) string {
	dmp := diffmatchpatch.New()
	return dmp.DiffPrettyText(dmp.DiffMain(want, got, false))
}

func TestEvolutionProposalJSON(t *testing.T) {
	var p EvolutionProposal
	if err := gomap.UnmarshalJSON([]byte(proposalJSON), &p, gomap.WithKeyStrategy(cursor.SnakeCase)); err != nil {
		t.Fatal(err)
	}
	want := EvolutionProposal{
		ID:              "SE-0274",
		Title:           "Concise magic file names",
		ReviewStartDate: time.Date(2020, 1, 8, 0, 0, 0, 0, time.UTC),
		ReviewEndDate:   time.Date(2020, 1, 16, 0, 0, 0, 0, time.UTC),
	}
	if diff := cmp.Diff(want, p); diff != "" {
		t.Fatalf("decode mismatch (-want +got):\n%s", diff)
	}

	d, err := gomap.MarshalJSON(&p, gomap.WithKeyStrategy(cursor.SnakeCase))
	if err != nil {
		t.Fatal(err)
	}
	if !jsonpatch.Equal([]byte(proposalJSON), d) {
		t.Errorf("re-encoded document differs:\n%s", textDiff(proposalJSON, string(d)))
	}
	if string(d) != proposalJSON {
		t.Errorf("field order differs:\n%s", textDiff(proposalJSON, string(d)))
	}
}

func TestEvolutionProposalYAML(t *testing.T) {
	status := "accepted"
	p := EvolutionProposal{
		ID:              "SE-0274",
		Title:           "Concise magic file names",
		ReviewStartDate: time.Date(2020, 1, 8, 0, 0, 0, 0, time.UTC),
		ReviewEndDate:   time.Date(2020, 1, 16, 0, 0, 0, 0, time.UTC),
		Status:          &status,
	}
	d, err := gomap.MarshalYAML(&p, gomap.WithKeyStrategy(cursor.SnakeCase))
	if err != nil {
		t.Fatal(err)
	}
	var back EvolutionProposal
	if err := gomap.UnmarshalYAML(d, &back, gomap.WithKeyStrategy(cursor.SnakeCase)); err != nil {
		t.Fatalf("UnmarshalYAML(%s): %v", d, err)
	}
	if diff := cmp.Diff(p, back); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
	node, err := parse.YAML(d)
	if err != nil {
		t.Fatal(err)
	}
	review := ir.Get(ir.Get(node, "metadata"), "review")
	if review == nil || ir.Get(review, "status").String != "accepted" {
		t.Errorf("status not nested under metadata.review:\n%s", d)
	}
}

func TestSingleSegmentCreatesNoSections(t *testing.T) {
	enc := gomap.NewEncoder()
	c, err := ForEncoding(enc, proposalKeys)
	if err != nil {
		t.Fatal(err)
	}
	if err := Encode(c, keyID, "SE-0001"); err != nil {
		t.Fatal(err)
	}
	want := ir.FromKeyVals([]ir.KeyVal{{Key: ir.FromString("id"), Val: ir.FromString("SE-0001")}})
	if !ir.Equal(want, enc.Node()) {
		t.Errorf("document = %s", encode.MustString(enc.Node()))
	}
}

func TestEncodeIfPresentNilLeavesNoTrace(t *testing.T) {
	enc := gomap.NewEncoder()
	c, err := ForEncoding(enc, proposalKeys)
	if err != nil {
		t.Fatal(err)
	}
	if err := EncodeIfPresent[string](c, keyStatus, nil); err != nil {
		t.Fatal(err)
	}
	if err := EncodeIfPresent[time.Time](c, keyReviewEndDate, nil); err != nil {
		t.Fatal(err)
	}
	if n := len(enc.Node().Fields); n != 0 {
		t.Errorf("document = %s", encode.MustString(enc.Node()))
	}
}

func TestEncodeConversionFailureLeavesNoTrace(t *testing.T) {
	enc := gomap.NewEncoder()
	c, err := ForEncoding(enc, proposalKeys)
	if err != nil {
		t.Fatal(err)
	}
	err = Encode(c, keyStatus, make(chan int))
	var pe *keypath.PathError
	if !errors.As(err, &pe) || !errors.Is(err, keypath.ErrTypeMismatch) {
		t.Fatalf("err = %v", err)
	}
	if pe.Path.String() != "metadata.review.status" {
		t.Errorf("path = %q", pe.Path)
	}
	if n := len(enc.Node().Fields); n != 0 {
		t.Errorf("document = %s", encode.MustString(enc.Node()))
	}
}

func TestAbsenceOnRead(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"missing section", `{"id":"x"}`},
		{"missing leaf", `{"id":"x","metadata":{}}`},
		{"null section", `{"id":"x","metadata":null}`},
		{"null leaf", `{"id":"x","metadata":{"reviewEndDate":null}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, err := parse.JSON([]byte(tt.doc))
			if err != nil {
				t.Fatal(err)
			}
			c, err := ForDecoding(gomap.NewDecoder(node), proposalKeys)
			if err != nil {
				t.Fatal(err)
			}
			_, found, err := DecodeIfPresent[time.Time](c, keyReviewEndDate)
			if err != nil || found {
				t.Errorf("DecodeIfPresent = %v, %v", found, err)
			}
			if ok, err := c.Contains(keyReviewEndDate); ok || err != nil {
				t.Errorf("Contains = %v, %v", ok, err)
			}
			_, err = Decode[time.Time](c, keyReviewEndDate)
			var pe *keypath.PathError
			if !errors.As(err, &pe) || !errors.Is(err, keypath.ErrValueNotFound) {
				t.Fatalf("Decode err = %v", err)
			}
			if pe.Path.String() != "metadata.reviewEndDate" {
				t.Errorf("path = %q", pe.Path)
			}
		})
	}
}

func TestIntermediateTypeMismatch(t *testing.T) {
	for _, doc := range []string{
		`{"metadata":[1,2]}`,
		`{"metadata":"text"}`,
	} {
		node, err := parse.JSON([]byte(doc))
		if err != nil {
			t.Fatal(err)
		}
		c, err := ForDecoding(gomap.NewDecoder(node), proposalKeys)
		if err != nil {
			t.Fatal(err)
		}
		_, _, err = DecodeIfPresent[time.Time](c, keyReviewEndDate)
		var pe *keypath.PathError
		if !errors.As(err, &pe) || !errors.Is(err, keypath.ErrTypeMismatch) {
			t.Fatalf("%s: err = %v", doc, err)
		}
		if pe.Path.String() != "metadata" {
			t.Errorf("%s: path = %q", doc, pe.Path)
		}

		enc := gomap.NewEncoder()
		enc.Node().AppendField(ir.FromString("metadata"), node.Values[0].Clone())
		ec, err := ForEncoding(enc, proposalKeys)
		if err != nil {
			t.Fatal(err)
		}
		if err := Encode(ec, keyReviewEndDate, time.Now()); !errors.Is(err, keypath.ErrTypeMismatch) {
			t.Errorf("%s: Encode err = %v", doc, err)
		}
	}
}

func TestLeafConversionError(t *testing.T) {
	node, err := parse.JSON([]byte(`{"metadata":{"reviewEndDate":"soon","reviewStartDate":5}}`))
	if err != nil {
		t.Fatal(err)
	}
	c, err := ForDecoding(gomap.NewDecoder(node), proposalKeys)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Decode[time.Time](c, keyReviewEndDate); !errors.Is(err, keypath.ErrDataCorrupted) {
		t.Errorf("bad date err = %v", err)
	}
	_, err = Decode[time.Time](c, keyReviewStartDate)
	var pe *keypath.PathError
	if !errors.As(err, &pe) || !errors.Is(err, keypath.ErrTypeMismatch) || pe.Path.String() != "metadata.reviewStartDate" {
		t.Errorf("number as date err = %v", err)
	}
}

func TestUnregisteredKey(t *testing.T) {
	c, err := ForDecoding(gomap.NewDecoder(ir.Object()), proposalKeys)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Decode[string](c, proposalKey("nope")); !errors.Is(err, keypath.ErrInvalidKeyPath) {
		t.Errorf("err = %v", err)
	}
}

func TestContainersNeedObjects(t *testing.T) {
	if _, err := ForDecoding(gomap.NewDecoder(ir.FromSlice(nil)), proposalKeys); !errors.Is(err, keypath.ErrTypeMismatch) {
		t.Errorf("ForDecoding err = %v", err)
	}
}

type authorKey string

const (
	keyAuthorName  authorKey = "name"
	keyAuthorEmail authorKey = "contact.email"
)

var authorKeys = keypath.MustCompile(keyAuthorName, keyAuthorEmail)

type docKey string

const keyAuthor docKey = "people.author"

var docKeys = keypath.MustCompile(keyAuthor)

func TestNestedContainers(t *testing.T) {
	enc := gomap.NewEncoder()
	c, err := ForEncoding(enc, docKeys)
	if err != nil {
		t.Fatal(err)
	}
	ac, err := NestedEncodeContainer(c, keyAuthor, authorKeys)
	if err != nil {
		t.Fatal(err)
	}
	if ac.Path().String() != "people.author" {
		t.Errorf("nested path = %q", ac.Path())
	}
	if err := Encode(ac, keyAuthorName, "Ada"); err != nil {
		t.Fatal(err)
	}
	if err := Encode(ac, keyAuthorEmail, "ada@example.com"); err != nil {
		t.Fatal(err)
	}
	buf := encode.MustString(enc.Node())
	want := `{
  "people": {
    "author": {
      "name": "Ada",
      "contact": {
        "email": "ada@example.com"
      }
    }
  }
}`
	if buf != want {
		t.Errorf("document differs:\n%s", textDiff(want, buf))
	}

	dc, err := ForDecoding(gomap.NewDecoder(enc.Node()), docKeys)
	if err != nil {
		t.Fatal(err)
	}
	adc, err := NestedDecodeContainer(dc, keyAuthor, authorKeys)
	if err != nil {
		t.Fatal(err)
	}
	email, err := Decode[string](adc, keyAuthorEmail)
	if err != nil || email != "ada@example.com" {
		t.Errorf("email = %q, %v", email, err)
	}

	empty, _ := ForDecoding(gomap.NewDecoder(ir.Object()), docKeys)
	_, err = NestedDecodeContainer(empty, keyAuthor, authorKeys)
	var pe *keypath.PathError
	if !errors.As(err, &pe) || !errors.Is(err, keypath.ErrValueNotFound) || pe.Path.String() != "people.author" {
		t.Errorf("missing nested err = %v", err)
	}
}
