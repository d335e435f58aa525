package validate

import (
	"unicode/utf8"

	"github.com/kayz/slidesmith/internal/variant"
)

// Violation records one field whose character count falls outside its window.
type Violation struct {
	ElementID string `json:"element_id"`
	Field     string `json:"field"`
	Actual    int    `json:"actual"`
	Min       int    `json:"min"`
	Max       int    `json:"max"`
}

// Report is the outcome of character-count validation. Violations are
// advisory: they never block assembly.
type Report struct {
	Valid      bool        `json:"valid"`
	Violations []Violation `json:"violations"`
}

// Content checks every element's field values against the spec's character
// windows. It returns measured counts per element/field and a report; it
// never fails, even when every field is out of range. Fields without a
// declared requirement are counted but not checked.
func Content(content map[string]map[string]string, spec *variant.Spec) (map[string]map[string]int, Report) {
	counts := make(map[string]map[string]int, len(content))
	report := Report{Valid: true, Violations: []Violation{}}

	for _, el := range spec.Elements {
		fields, ok := content[el.ID]
		if !ok {
			continue
		}
		elCounts := make(map[string]int, len(fields))
		for _, field := range el.RequiredFields {
			value, ok := fields[field]
			if !ok {
				continue
			}
			n := utf8.RuneCountInString(value)
			elCounts[field] = n

			req, ok := el.CharReqs[field]
			if !ok {
				continue
			}
			if n < req.Min || n > req.Max {
				report.Violations = append(report.Violations, Violation{
					ElementID: el.ID,
					Field:     field,
					Actual:    n,
					Min:       req.Min,
					Max:       req.Max,
				})
			}
		}
		counts[el.ID] = elCounts
	}

	report.Valid = len(report.Violations) == 0
	return counts, report
}
