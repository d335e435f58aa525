package validate

import (
	"strings"
	"testing"

	"github.com/kayz/slidesmith/internal/variant"
)

func windowedSpec() *variant.Spec {
	return &variant.Spec{
		ID: "hero-three-box",
		Elements: []variant.ElementSpec{
			{
				ID:             "box_1",
				Type:           variant.TypeTextBox,
				RequiredFields: []string{"title", "description", "footnote"},
				Placeholders: map[string]string{
					"title": "box_1_title", "description": "box_1_description", "footnote": "box_1_footnote",
				},
				CharReqs: map[string]variant.CharRange{
					"title":       {Baseline: 30, Min: 27, Max: 32},
					"description": {Baseline: 240, Min: 228, Max: 252},
				},
			},
		},
	}
}

func TestContentFlagsOutOfWindowFields(t *testing.T) {
	content := map[string]map[string]string{
		"box_1": {
			"title":       "Innovation Leadership", // 21 runes, below 27
			"description": strings.Repeat("d", 240),
			"footnote":    "unchecked but counted",
		},
	}

	counts, report := Content(content, windowedSpec())

	if report.Valid {
		t.Fatal("report should be invalid")
	}
	if len(report.Violations) != 1 {
		t.Fatalf("violations = %v", report.Violations)
	}
	v := report.Violations[0]
	if v.ElementID != "box_1" || v.Field != "title" || v.Actual != 21 || v.Min != 27 || v.Max != 32 {
		t.Fatalf("violation detail wrong: %+v", v)
	}

	if counts["box_1"]["description"] != 240 {
		t.Errorf("description count = %d", counts["box_1"]["description"])
	}
	if counts["box_1"]["footnote"] != 21 {
		t.Errorf("unwindowed field must still be counted, got %d", counts["box_1"]["footnote"])
	}
}

func TestContentAboveWindow(t *testing.T) {
	content := map[string]map[string]string{
		"box_1": {
			"title":       strings.Repeat("t", 33),
			"description": strings.Repeat("d", 228),
			"footnote":    "",
		},
	}
	_, report := Content(content, windowedSpec())
	if len(report.Violations) != 1 || report.Violations[0].Actual != 33 {
		t.Fatalf("violations = %v", report.Violations)
	}
}

func TestContentCountsRunesNotBytes(t *testing.T) {
	// 30 multi-byte runes sit inside [27,32] even though the byte length is 90.
	content := map[string]map[string]string{
		"box_1": {
			"title":       strings.Repeat("星", 30),
			"description": strings.Repeat("d", 240),
			"footnote":    "",
		},
	}
	counts, report := Content(content, windowedSpec())
	if counts["box_1"]["title"] != 30 {
		t.Fatalf("title count = %d", counts["box_1"]["title"])
	}
	if !report.Valid {
		t.Fatalf("report invalid: %v", report.Violations)
	}
}

func TestContentNeverFails(t *testing.T) {
	content := map[string]map[string]string{
		"box_1": {
			"title":       "x",
			"description": "y",
			"footnote":    "",
		},
	}
	_, report := Content(content, windowedSpec())
	if report.Valid {
		t.Fatal("everything out of range should yield an invalid report")
	}
	if len(report.Violations) != 2 {
		t.Fatalf("violations = %v", report.Violations)
	}
}
