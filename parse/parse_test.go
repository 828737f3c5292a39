package parse

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/tony-format/go-keypath/ir"
)

func TestJSON(t *testing.T) {
	node, err := ParseString(`{"z": 1, "a": [1.5, "x", null, true], "m": {"k": -7}, "big": 1e3}`)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := keys(node), []string{"z", "a", "m", "big"}; !cmp.Equal(got, want) {
		t.Errorf("keys = %v want %v", got, want)
	}
	want := map[string]any{
		"z":   int64(1),
		"a":   []any{1.5, "x", nil, true},
		"m":   map[string]any{"k": int64(-7)},
		"big": float64(1000),
	}
	if diff := cmp.Diff(want, ir.ToAny(node, nil)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	if n := ir.Get(node, "big"); n.Number != "1e3" {
		t.Errorf("literal = %q", n.Number)
	}
}

func TestJSONDuplicateKeysKept(t *testing.T) {
	node, err := JSON([]byte(`{"a": 1, "a": 2}`))
	if err != nil {
		t.Fatal(err)
	}
	if len(node.Fields) != 2 {
		t.Errorf("fields = %d", len(node.Fields))
	}
}

func TestJSONInvalid(t *testing.T) {
	for _, in := range []string{"", "{", `{"a":}`, "[1,]"} {
		if _, err := JSON([]byte(in)); !errors.Is(err, ErrParse) {
			t.Errorf("JSON(%q) err = %v", in, err)
		}
	}
}

func TestYAML(t *testing.T) {
	in := `
id: SE-0274
tags:
  - swift
  - evolution
metadata:
  review_start_date: "2020-01-08T00:00:00Z"
  count: 2
slots:
  3: x
  1: y
`
	node, err := Parse([]byte(in), ParseYAML())
	if err != nil {
		t.Fatal(err)
	}
	if got, want := keys(node), []string{"id", "tags", "metadata", "slots"}; !cmp.Equal(got, want) {
		t.Errorf("keys = %v want %v", got, want)
	}
	want := map[string]any{
		"id":   "SE-0274",
		"tags": []any{"swift", "evolution"},
		"metadata": map[string]any{
			"review_start_date": "2020-01-08T00:00:00Z",
			"count":             int64(2),
		},
		"slots": map[string]any{"3": "x", "1": "y"},
	}
	if diff := cmp.Diff(want, ir.ToAny(node, nil)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	slots := ir.Get(node, "slots")
	if !slots.IntKeyed() || !slots.HasTag(ir.IntKeysTag) {
		t.Errorf("slots not int keyed: %+v", slots)
	}
}

func TestYAMLEmpty(t *testing.T) {
	node, err := YAML(nil)
	if err != nil {
		t.Fatal(err)
	}
	if node.Type != ir.NullType {
		t.Errorf("type = %s", node.Type)
	}
}

func TestYAMLInvalid(t *testing.T) {
	if _, err := YAML([]byte("a: [1, 2")); !errors.Is(err, ErrParse) {
		t.Errorf("err = %v", err)
	}
}

func keys(node *ir.Node) []string {
	var res []string
	for i := range node.Fields {
		res = append(res, node.FieldKey(i))
	}
	return res
}
