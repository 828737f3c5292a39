package keyed

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/tony-format/go-keypath/cursor"
	"github.com/signadot/tony-format/go-keypath/encode"
	"github.com/signadot/tony-format/go-keypath/gomap"
	"github.com/signadot/tony-format/go-keypath/ir"
	"github.com/signadot/tony-format/go-keypath/keypath"
	"github.com/signadot/tony-format/go-keypath/parse"
)

type reviewer struct {
	Name  string
	Email *string `tony:"path=contact.email"`
}

type taggedProposal struct {
	ID              string    `tony:"path=id"`
	Title           string
	ReviewStartDate time.Time `tony:"path=metadata.reviewStartDate"`
	ReviewEndDate   time.Time `tony:"path=metadata.reviewEndDate"`
	Reviewer        reviewer  `tony:"path=metadata.reviewManager"`
	Backup          *reviewer `tony:"path=metadata.backup"`
	Labels          []string  `tony:"path=labels,optional"`
	Implemented     *EvolutionProposal
	Cache           map[string]int `tony:"omit"`
	internal        int
}

func TestStructRoundTrip(t *testing.T) {
	email := "ben@example.com"
	p := taggedProposal{
		ID:              "SE-0274",
		Title:           "Concise magic file names",
		ReviewStartDate: time.Date(2020, 1, 8, 0, 0, 0, 0, time.UTC),
		ReviewEndDate:   time.Date(2020, 1, 16, 0, 0, 0, 0, time.UTC),
		Reviewer:        reviewer{Name: "Ben", Email: &email},
		Cache:           map[string]int{"x": 1},
		internal:        3,
	}
	node, err := Marshal(&p, gomap.WithKeyStrategy(cursor.SnakeCase))
	if err != nil {
		t.Fatal(err)
	}
	want := `{
  "id": "SE-0274",
  "title": "Concise magic file names",
  "metadata": {
    "review_start_date": "2020-01-08T00:00:00Z",
    "review_end_date": "2020-01-16T00:00:00Z",
    "review_manager": {
      "name": "Ben",
      "contact": {
        "email": "ben@example.com"
      }
    }
  }
}`
	if got := encode.MustString(node); got != want {
		t.Errorf("document differs:\n%s", textDiff(want, got))
	}

	var back taggedProposal
	if err := Unmarshal(node, &back, gomap.WithKeyStrategy(cursor.SnakeCase)); err != nil {
		t.Fatal(err)
	}
	p.Cache, p.internal = nil, 0
	if diff := cmp.Diff(p, back, cmp.AllowUnexported(taggedProposal{})); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestStructHookFields(t *testing.T) {
	p := taggedProposal{
		ID:     "SE-0001",
		Labels: []string{"swift"},
		Implemented: &EvolutionProposal{
			ID:    "SE-0002",
			Title: "nested",
		},
		Backup: &reviewer{Name: "Ann"},
	}
	node, err := Marshal(p)
	if err != nil {
		t.Fatal(err)
	}
	impl := ir.Get(node, "implemented")
	if impl == nil || ir.Get(ir.Get(impl, "metadata"), "reviewStartDate") == nil {
		t.Fatalf("hook field not encoded through its own schema: %s", encode.MustString(node))
	}
	backup := ir.Get(ir.Get(node, "metadata"), "backup")
	if backup == nil || ir.Get(backup, "contact") != nil {
		t.Errorf("backup = %s", encode.MustString(node))
	}
	var back taggedProposal
	if err := Unmarshal(node, &back); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(p, back, cmp.AllowUnexported(taggedProposal{})); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestStructMissingRequired(t *testing.T) {
	node, err := parse.JSON([]byte(`{"id":"x","title":"t","metadata":{"reviewStartDate":"2020-01-08T00:00:00Z"}}`))
	if err != nil {
		t.Fatal(err)
	}
	var p taggedProposal
	err = Unmarshal(node, &p)
	var pe *keypath.PathError
	if !errors.As(err, &pe) || !errors.Is(err, keypath.ErrValueNotFound) {
		t.Fatalf("err = %v", err)
	}
	if pe.Path.String() != "metadata.reviewEndDate" {
		t.Errorf("path = %q", pe.Path)
	}
}

func TestStructLayoutErrors(t *testing.T) {
	type overlap struct {
		A string `tony:"path=a"`
		B string `tony:"path=a.b"`
	}
	type duplicate struct {
		A string `tony:"path=x"`
		B string `tony:"path=x"`
	}
	type emptySegment struct {
		A string `tony:"path=a..b"`
	}
	type badTag struct {
		A string `tony:"field=a"`
	}
	for _, v := range []any{&overlap{}, &duplicate{}, &emptySegment{}, &badTag{}} {
		_, err := Marshal(v)
		if !errors.Is(err, keypath.ErrInvalidKeyPath) {
			t.Errorf("Marshal(%T) err = %v", v, err)
		}
		if err := Unmarshal(ir.Object(), v); !errors.Is(err, keypath.ErrInvalidKeyPath) {
			t.Errorf("Unmarshal(%T) err = %v", v, err)
		}
	}
}

func TestStructArguments(t *testing.T) {
	if err := Unmarshal(ir.Object(), taggedProposal{}); !errors.Is(err, keypath.ErrTypeMismatch) {
		t.Errorf("non-pointer err = %v", err)
	}
	if _, err := Marshal((*taggedProposal)(nil)); !errors.Is(err, keypath.ErrTypeMismatch) {
		t.Errorf("nil pointer err = %v", err)
	}
	var s string
	if err := Unmarshal(ir.Object(), &s); !errors.Is(err, keypath.ErrTypeMismatch) {
		t.Errorf("non-struct err = %v", err)
	}
	if err := Unmarshal(ir.FromString("x"), &taggedProposal{}); !errors.Is(err, keypath.ErrTypeMismatch) {
		t.Errorf("non-object err = %v", err)
	}
}

func TestParseStructTag(t *testing.T) {
	tests := []struct {
		tag     string
		want    map[string]string
		wantErr string
	}{
		{"", map[string]string{}, ""},
		{"path=a.b,optional", map[string]string{"path": "a.b", "optional": ""}, ""},
		{" omit ", map[string]string{"omit": ""}, ""},
		{"path=a,path=b", nil, "duplicate"},
		{"=a", nil, "empty key"},
		{"required", nil, "unknown"},
	}
	for _, tt := range tests {
		got, err := parseStructTag(tt.tag)
		if tt.wantErr != "" {
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("parseStructTag(%q) err = %v, want %q", tt.tag, err, tt.wantErr)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseStructTag(%q) err = %v", tt.tag, err)
			continue
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("parseStructTag(%q) mismatch (-want +got):\n%s", tt.tag, diff)
		}
	}
}

type chainLink struct {
	Name string
	Next *chainLink `tony:"path=meta.next"`
}

func TestStructCircularReference(t *testing.T) {
	a := &chainLink{Name: "a"}
	a.Next = a
	if _, err := Marshal(a); !errors.Is(err, keypath.ErrTypeMismatch) || !strings.Contains(err.Error(), "circular reference") {
		t.Fatalf("self reference: err = %v", err)
	}

	b := &chainLink{Name: "b"}
	a.Next = b
	b.Next = a
	if _, err := Marshal(a); !errors.Is(err, keypath.ErrTypeMismatch) {
		t.Fatalf("two element cycle: err = %v", err)
	}

	shared := &chainLink{Name: "shared"}
	chain := &chainLink{Name: "a", Next: &chainLink{Name: "b", Next: shared}}
	node, err := Marshal(chain)
	if err != nil {
		t.Fatal(err)
	}
	var got chainLink
	if err := Unmarshal(node, &got); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(*chain, got); diff != "" {
		t.Errorf("chain round trip (-want +got):\n%s", diff)
	}
}

type auditStamp struct {
	CreatedAt string `tony:"path=meta.created_at"`
	UserID    string `tony:"path=meta.userID"`
}

func TestStructSnakeCaseRoundTrip(t *testing.T) {
	in := auditStamp{CreatedAt: "2020-01-08T00:00:00Z", UserID: "u1"}
	node, err := Marshal(&in, gomap.WithKeyStrategy(cursor.SnakeCase))
	if err != nil {
		t.Fatal(err)
	}
	var out auditStamp
	if err := Unmarshal(node, &out, gomap.WithKeyStrategy(cursor.SnakeCase)); err != nil {
		t.Fatalf("Unmarshal(%s): %v", encode.MustString(node), err)
	}
	if out != in {
		t.Errorf("got %+v, want %+v", out, in)
	}
}
