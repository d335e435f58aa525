package compose

import (
	"fmt"
	"strings"

	"github.com/kayz/slidesmith/internal/variant"
)

// Composer turns a variant spec plus slide/presentation context into one
// consolidated generation instruction covering every element. Composition is
// pure: identical inputs produce byte-identical instructions.
type Composer struct {
	auditor *Auditor
}

// NewComposer creates a Composer. auditor may be nil to disable auditing.
func NewComposer(auditor *Auditor) *Composer {
	return &Composer{auditor: auditor}
}

// Compose builds the generation instruction for every element of the spec,
// in spec order. presCtx may be nil.
func (c *Composer) Compose(spec *variant.Spec, slide SlideContext, presCtx *PresentationContext) string {
	var b strings.Builder

	b.WriteString("You are generating the complete content for one presentation slide.\n")
	b.WriteString("Produce content for ALL elements below in a single JSON object keyed by element id.\n")
	b.WriteString("Each element maps to an object keyed by field name with string values.\n")
	b.WriteString("No two elements may restate the same underlying point; every element must add distinct information.\n")
	b.WriteString("Return only JSON.\n")

	writeContext(&b, slide, presCtx)

	b.WriteString("\n### Elements\n")
	for _, el := range spec.Elements {
		fmt.Fprintf(&b, "\nElement %q (type: %s)\n", el.ID, el.Type)
		for _, field := range el.RequiredFields {
			if req, ok := el.CharReqs[field]; ok {
				fmt.Fprintf(&b, "- %s: target %d characters, acceptable range %d-%d\n",
					field, req.Baseline, req.Min, req.Max)
			} else {
				fmt.Fprintf(&b, "- %s\n", field)
			}
		}
		fmt.Fprintf(&b, "Guidance: %s\n", guidanceFor(el.Type))
	}

	instruction := b.String()
	if c.auditor != nil {
		if err := c.auditor.Record(spec, instruction); err != nil {
			// Auditing is best-effort; composition never fails because of it.
			auditWarn(err)
		}
	}
	return instruction
}

func writeContext(b *strings.Builder, slide SlideContext, presCtx *PresentationContext) {
	var lines []string
	if presCtx != nil {
		if presCtx.Title != "" {
			lines = append(lines, "Presentation: "+presCtx.Title)
		}
		if presCtx.Audience != "" {
			lines = append(lines, "Audience: "+presCtx.Audience)
		}
		if presCtx.Tone != "" {
			lines = append(lines, "Tone: "+presCtx.Tone)
		}
		if presCtx.Language != "" {
			lines = append(lines, "Language: "+presCtx.Language)
		}
	}
	if slide.Title != "" {
		lines = append(lines, "Slide title: "+slide.Title)
	}
	if slide.Topic != "" {
		lines = append(lines, "Slide topic: "+slide.Topic)
	}
	if slide.Notes != "" {
		lines = append(lines, "Authoring notes: "+slide.Notes)
	}
	if slide.Position > 0 && slide.TotalSlides > 0 {
		lines = append(lines, fmt.Sprintf("Slide %d of %d", slide.Position, slide.TotalSlides))
	}

	if len(lines) == 0 {
		return
	}
	b.WriteString("\n### Context\n")
	for _, l := range lines {
		b.WriteString(l)
		b.WriteString("\n")
	}
}
