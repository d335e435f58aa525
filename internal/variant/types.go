package variant

// Element types understood by the authoring guidance table. Unknown types are
// accepted and fall back to generic guidance.
const (
	TypeTextBox            = "text-box"
	TypeComparisonColumn   = "comparison-column"
	TypeSequentialStep     = "sequential-step"
	TypeMetricCard         = "metric-card"
	TypeSectionWithBullets = "section-with-bullets"
)

// CharRange is the acceptable character-count window for one field.
type CharRange struct {
	Baseline int `json:"baseline"`
	Min      int `json:"min"`
	Max      int `json:"max"`
}

// ElementSpec describes one addressable content unit within a slide variant.
type ElementSpec struct {
	ID             string               `json:"element_id"`
	Type           string               `json:"element_type"`
	RequiredFields []string             `json:"required_fields"`
	Placeholders   map[string]string    `json:"placeholders"`
	CharReqs       map[string]CharRange `json:"character_requirements"`
}

// Spec is a fully loaded variant specification. Immutable after load; shared
// read-only across concurrent requests once cached.
type Spec struct {
	ID           string        `json:"variant_id"`
	SlideType    string        `json:"slide_type"`
	TemplatePath string        `json:"template_path"`
	Description  string        `json:"description"`
	Elements     []ElementSpec `json:"elements"`
}

// rawCharRange tolerates documents that give only a baseline as well as ones
// that pin min/max explicitly.
type rawCharRange struct {
	Baseline int  `json:"baseline"`
	Min      *int `json:"min,omitempty"`
	Max      *int `json:"max,omitempty"`
}

type rawElement struct {
	ElementID      string                  `json:"element_id"`
	ElementType    string                  `json:"element_type"`
	RequiredFields []string                `json:"required_fields"`
	Placeholders   map[string]string       `json:"placeholders"`
	CharReqs       map[string]rawCharRange `json:"character_requirements"`
}

type rawSpec struct {
	VariantID    string       `json:"variant_id"`
	SlideType    string       `json:"slide_type"`
	TemplatePath string       `json:"template_path"`
	Description  string       `json:"description"`
	Elements     []rawElement `json:"elements"`
}
