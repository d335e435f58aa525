package compose

import "github.com/kayz/slidesmith/internal/variant"

// typeGuidance is the fixed authoring guidance table keyed by element type.
// The composer appends the matching line after each element's field list.
var typeGuidance = map[string]string{
	variant.TypeTextBox: "Write a self-contained statement; no lead-in phrases, no markdown.",
	variant.TypeComparisonColumn: "Render list items as alternating subheading/bullet pairs: " +
		"a bold subheading line followed by its supporting bullet, repeated for each point.",
	variant.TypeSequentialStep: "Phrase the content as one step in an ordered process; " +
		"start with an imperative verb and keep it action-oriented.",
	variant.TypeMetricCard: "Lead with the figure or statistic; the supporting text explains " +
		"what the number means, not how it was measured.",
	variant.TypeSectionWithBullets: "Produce a short section heading and concise bullets; " +
		"one idea per bullet, no nested lists.",
}

const genericGuidance = "Write concise presentation copy appropriate for the element's role."

func guidanceFor(elementType string) string {
	if g, ok := typeGuidance[elementType]; ok {
		return g
	}
	return genericGuidance
}
