package parse

import (
	"errors"
	"reflect"
	"testing"

	"github.com/kayz/slidesmith/internal/variant"
)

func boxSpec() *variant.Spec {
	return &variant.Spec{
		ID: "hero-three-box",
		Elements: []variant.ElementSpec{
			{
				ID:             "box_1",
				Type:           variant.TypeTextBox,
				RequiredFields: []string{"title", "description"},
				Placeholders:   map[string]string{"title": "box_1_title", "description": "box_1_description"},
			},
		},
	}
}

const cleanResponse = `{"box_1": {"title": "Innovation Leadership", "description": "Our teams ship faster."}}`

func TestResponseDirectJSON(t *testing.T) {
	content, err := Response(cleanResponse, boxSpec())
	if err != nil {
		t.Fatalf("Response: %v", err)
	}
	want := map[string]map[string]string{
		"box_1": {"title": "Innovation Leadership", "description": "Our teams ship faster."},
	}
	if !reflect.DeepEqual(content, want) {
		t.Fatalf("content = %v, want %v", content, want)
	}
}

func TestResponseRecoversWrappedJSON(t *testing.T) {
	wrapped := []struct {
		name string
		raw  string
	}{
		{"code fence", "```json\n" + cleanResponse + "\n```"},
		{"bare fence", "```\n" + cleanResponse + "\n```"},
		{"prose around", "Here is the content you asked for:\n\n" + cleanResponse + "\n\nLet me know if you need edits."},
		{"trailing prose in fence", "Sure!\n```json\n" + cleanResponse + "\n```\nHope that helps."},
	}

	want, err := Response(cleanResponse, boxSpec())
	if err != nil {
		t.Fatalf("baseline parse: %v", err)
	}
	for _, tc := range wrapped {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Response(tc.raw, boxSpec())
			if err != nil {
				t.Fatalf("Response: %v", err)
			}
			if !reflect.DeepEqual(got, want) {
				t.Fatalf("wrapped parse diverged: %v", got)
			}
		})
	}
}

func TestResponseBracesInsideStrings(t *testing.T) {
	raw := `noise {"box_1": {"title": "Use {curly} braces", "description": "a } inside"}} trailing`
	content, err := Response(raw, boxSpec())
	if err != nil {
		t.Fatalf("Response: %v", err)
	}
	if content["box_1"]["title"] != "Use {curly} braces" {
		t.Fatalf("title = %q", content["box_1"]["title"])
	}
}

func TestResponseUnparsable(t *testing.T) {
	// "null" decodes to a nil map under strict unmarshal; that is a decode
	// failure, not a response missing every element.
	for _, raw := range []string{"", "no json here", "{truncated", "[1,2,3]", "null"} {
		if _, err := Response(raw, boxSpec()); !errors.Is(err, ErrUnparsable) {
			t.Errorf("raw %q: expected ErrUnparsable, got %v", raw, err)
		}
	}
}

func TestResponseSkipsStrayBraceInProse(t *testing.T) {
	// An unbalanced brace in leading prose must not defeat recovery of the
	// balanced block that follows.
	raw := "here is the { content you asked for:\n" + cleanResponse
	content, err := Response(raw, boxSpec())
	if err != nil {
		t.Fatalf("Response: %v", err)
	}
	if content["box_1"]["title"] != "Innovation Leadership" {
		t.Fatalf("title = %q", content["box_1"]["title"])
	}
}

func TestResponseElementMissing(t *testing.T) {
	_, err := Response(`{"other": {"title": "x"}}`, boxSpec())
	var em *ElementMissingError
	if !errors.As(err, &em) {
		t.Fatalf("expected ElementMissingError, got %v", err)
	}
	if em.ElementID != "box_1" || em.VariantID != "hero-three-box" {
		t.Fatalf("wrong error detail: %+v", em)
	}

	// An element whose value is not an object is treated as missing.
	_, err = Response(`{"box_1": "just a string"}`, boxSpec())
	if !errors.As(err, &em) {
		t.Fatalf("non-object element: expected ElementMissingError, got %v", err)
	}
}

func TestResponseFieldMissing(t *testing.T) {
	_, err := Response(`{"box_1": {"title": "only a title"}}`, boxSpec())
	var fm *FieldMissingError
	if !errors.As(err, &fm) {
		t.Fatalf("expected FieldMissingError, got %v", err)
	}
	if fm.Field != "description" {
		t.Fatalf("field = %q", fm.Field)
	}
}

func TestResponseCoercesScalars(t *testing.T) {
	raw := `{"box_1": {"title": 42, "description": true, "note": null}}`
	content, err := Response(raw, boxSpec())
	if err != nil {
		t.Fatalf("Response: %v", err)
	}
	got := content["box_1"]
	if got["title"] != "42" || got["description"] != "true" || got["note"] != "" {
		t.Fatalf("coercion wrong: %v", got)
	}
}
