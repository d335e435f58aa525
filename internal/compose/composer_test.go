package compose

import (
	"strings"
	"testing"

	"github.com/kayz/slidesmith/internal/variant"
)

func twoElementSpec() *variant.Spec {
	return &variant.Spec{
		ID:        "metric-row",
		SlideType: "data",
		Elements: []variant.ElementSpec{
			{
				ID:             "metric_1",
				Type:           variant.TypeMetricCard,
				RequiredFields: []string{"value", "label"},
				Placeholders:   map[string]string{"value": "metric_1_value", "label": "metric_1_label"},
				CharReqs: map[string]variant.CharRange{
					"value": {Baseline: 30, Min: 27, Max: 32},
				},
			},
			{
				ID:             "metric_2",
				Type:           variant.TypeMetricCard,
				RequiredFields: []string{"value"},
				Placeholders:   map[string]string{"value": "metric_2_value"},
			},
		},
	}
}

func TestComposeDeterministic(t *testing.T) {
	c := NewComposer(nil)
	spec := twoElementSpec()
	slide := SlideContext{Title: "Revenue", Topic: "Q3 results", Position: 2, TotalSlides: 10}
	pres := &PresentationContext{Title: "Board Deck", Audience: "executives", Tone: "formal"}

	first := c.Compose(spec, slide, pres)
	second := c.Compose(spec, slide, pres)
	if first != second {
		t.Fatal("identical inputs produced different instructions")
	}
}

func TestComposeCoversEveryElementInOrder(t *testing.T) {
	c := NewComposer(nil)
	out := c.Compose(twoElementSpec(), SlideContext{}, nil)

	i1 := strings.Index(out, `Element "metric_1"`)
	i2 := strings.Index(out, `Element "metric_2"`)
	if i1 < 0 || i2 < 0 {
		t.Fatalf("instruction missing elements:\n%s", out)
	}
	if i1 > i2 {
		t.Fatal("elements emitted out of spec order")
	}
	if !strings.Contains(out, "acceptable range 27-32") {
		t.Errorf("character window not stated:\n%s", out)
	}
	if !strings.Contains(out, "Return only JSON") {
		t.Error("output format directive missing")
	}
	if !strings.Contains(out, "distinct information") {
		t.Error("content diversity directive missing")
	}
}

func TestComposeContextSections(t *testing.T) {
	c := NewComposer(nil)
	spec := twoElementSpec()

	bare := c.Compose(spec, SlideContext{}, nil)
	if strings.Contains(bare, "### Context") {
		t.Error("empty context still produced a context section")
	}

	full := c.Compose(spec, SlideContext{Title: "Revenue", Notes: "mention churn"}, &PresentationContext{Audience: "executives"})
	for _, want := range []string{"Slide title: Revenue", "Authoring notes: mention churn", "Audience: executives"} {
		if !strings.Contains(full, want) {
			t.Errorf("context line %q missing", want)
		}
	}
}

func TestGuidanceForKnownAndUnknownTypes(t *testing.T) {
	if guidanceFor(variant.TypeMetricCard) == genericGuidance {
		t.Error("metric-card should carry its own guidance")
	}
	if guidanceFor("made-up-type") != genericGuidance {
		t.Error("unknown type should fall back to generic guidance")
	}
}
