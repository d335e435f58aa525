package engine

import "time"

// Stage identifies a point in the generation pipeline.
type Stage string

const (
	StageStarted   Stage = "started"
	StageComposed  Stage = "composed"
	StageGenerated Stage = "generated"
	StageParsed    Stage = "parsed"
	StageValidated Stage = "validated"
	StageAssembled Stage = "assembled"
)

// Event is a lifecycle notification for one generation run.
type Event struct {
	Stage      Stage     `json:"stage"`
	RequestID  string    `json:"request_id"`
	VariantID  string    `json:"variant_id"`
	Violations int       `json:"violations,omitempty"`
	At         time.Time `json:"at"`
}

// EventSink receives pipeline events. Implementations must not block; slow
// consumers should buffer or drop.
type EventSink interface {
	Emit(Event)
}
