package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kayz/slidesmith/internal/assemble"
	"github.com/kayz/slidesmith/internal/compose"
	"github.com/kayz/slidesmith/internal/logger"
	"github.com/kayz/slidesmith/internal/parse"
	"github.com/kayz/slidesmith/internal/template"
	"github.com/kayz/slidesmith/internal/validate"
	"github.com/kayz/slidesmith/internal/variant"
)

// ErrGenerationFailed wraps any error returned by the external generation
// collaborator. The engine never retries internally.
var ErrGenerationFailed = errors.New("generation failed")

// GenerateFunc is the single external collaborator: prompt in, raw response
// out. Implementations may be backed by any model provider.
type GenerateFunc func(ctx context.Context, prompt string) (string, error)

// ElementResult is the per-element record attached to a completed run.
type ElementResult struct {
	ElementID   string            `json:"element_id"`
	ElementType string            `json:"element_type"`
	Placeholder map[string]string `json:"placeholders"`
	Fields      map[string]string `json:"fields"`
	CharCounts  map[string]int    `json:"char_counts"`
}

// Result is the composite outcome of one slide generation.
type Result struct {
	RequestID    string          `json:"request_id"`
	VariantID    string          `json:"variant_id"`
	Assembled    string          `json:"assembled"`
	Elements     []ElementResult `json:"elements"`
	Validation   validate.Report `json:"validation"`
	PromptDigest string          `json:"prompt_digest"`
	Duration     time.Duration   `json:"-"`
}

// Engine sequences spec load, prompt composition, the external generation
// call, response parsing, validation and assembly. It holds no per-request
// state beyond the two read-mostly stores.
type Engine struct {
	specs     *variant.Store
	templates *template.Store
	composer  *compose.Composer
	sink      EventSink
}

// New creates an Engine over the given stores. sink may be nil.
func New(specs *variant.Store, templates *template.Store, composer *compose.Composer, sink EventSink) *Engine {
	return &Engine{
		specs:     specs,
		templates: templates,
		composer:  composer,
		sink:      sink,
	}
}

// Specs exposes the spec store for catalog listing.
func (e *Engine) Specs() *variant.Store { return e.specs }

// ResetCaches clears both stores; edited assets are reloaded on next use.
func (e *Engine) ResetCaches() {
	e.specs.Reset()
	e.templates.Reset()
}

// Generate runs the full pipeline for one slide. Any failure in spec or
// template loading, generation, or response parsing aborts with the
// originating error and no partial result. Character-count violations do not
// abort; they are attached to the result.
func (e *Engine) Generate(ctx context.Context, variantID string, slide compose.SlideContext,
	presCtx *compose.PresentationContext, generate GenerateFunc) (*Result, error) {

	requestID := uuid.NewString()
	started := time.Now()
	e.emit(Event{Stage: StageStarted, RequestID: requestID, VariantID: variantID})

	spec, err := e.specs.Load(variantID)
	if err != nil {
		return nil, err
	}
	tmpl, err := e.templates.Load(spec.TemplatePath)
	if err != nil {
		return nil, err
	}

	instruction := e.composer.Compose(spec, slide, presCtx)
	digest := compose.Digest(instruction)
	e.emit(Event{Stage: StageComposed, RequestID: requestID, VariantID: variantID})

	raw, err := generate(ctx, instruction)
	if err != nil {
		return nil, fmt.Errorf("%w: variant %s: %v", ErrGenerationFailed, variantID, err)
	}
	if err := ctx.Err(); err != nil {
		// Caller abandoned the request while the call was outstanding;
		// discard the late result.
		return nil, err
	}
	e.emit(Event{Stage: StageGenerated, RequestID: requestID, VariantID: variantID})

	content, err := parse.Response(raw, spec)
	if err != nil {
		return nil, err
	}
	e.emit(Event{Stage: StageParsed, RequestID: requestID, VariantID: variantID})

	counts, report := validate.Content(content, spec)
	if !report.Valid {
		logger.Debug("variant %s: %d character-count violations", variantID, len(report.Violations))
	}
	e.emit(Event{Stage: StageValidated, RequestID: requestID, VariantID: variantID,
		Violations: len(report.Violations)})

	contentMap := Flatten(spec, content)
	assembled, err := assemble.Render(tmpl, contentMap)
	if err != nil {
		return nil, err
	}

	result := &Result{
		RequestID:    requestID,
		VariantID:    variantID,
		Assembled:    assembled,
		Elements:     elementResults(spec, content, counts),
		Validation:   report,
		PromptDigest: digest,
		Duration:     time.Since(started),
	}
	e.emit(Event{Stage: StageAssembled, RequestID: requestID, VariantID: variantID,
		Violations: len(report.Violations)})
	return result, nil
}

// Flatten merges per-element content into one placeholder-keyed map using
// each element's field-to-placeholder mapping.
func Flatten(spec *variant.Spec, content map[string]map[string]string) map[string]string {
	flat := make(map[string]string)
	for _, el := range spec.Elements {
		fields, ok := content[el.ID]
		if !ok {
			continue
		}
		for field, placeholder := range el.Placeholders {
			if value, ok := fields[field]; ok {
				flat[placeholder] = value
			}
		}
	}
	return flat
}

func elementResults(spec *variant.Spec, content map[string]map[string]string,
	counts map[string]map[string]int) []ElementResult {

	results := make([]ElementResult, 0, len(spec.Elements))
	for _, el := range spec.Elements {
		results = append(results, ElementResult{
			ElementID:   el.ID,
			ElementType: el.Type,
			Placeholder: el.Placeholders,
			Fields:      content[el.ID],
			CharCounts:  counts[el.ID],
		})
	}
	return results
}

func (e *Engine) emit(ev Event) {
	if e.sink != nil {
		ev.At = time.Now()
		e.sink.Emit(ev)
	}
}
