package persist

import "time"

// Generation outcome statuses.
const (
	StatusOK     = "ok"
	StatusFailed = "failed"
)

// GenerationRecord is one slide-generation run's metadata.
type GenerationRecord struct {
	ID           string
	VariantID    string
	PromptDigest string
	Status       string
	Error        string
	Violations   int
	DurationMS   int64
	CreatedAt    time.Time
}
