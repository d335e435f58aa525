package compose

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/kayz/slidesmith/internal/config"
	"github.com/kayz/slidesmith/internal/logger"
	"github.com/kayz/slidesmith/internal/variant"
)

var auditMu sync.Mutex

// Auditor appends composed instructions to daily JSONL files for later
// inspection. Old files past the retention window are pruned on write.
type Auditor struct {
	cfg config.AuditConfig
}

// NewAuditor returns an Auditor, or nil when auditing is disabled.
func NewAuditor(cfg config.AuditConfig) *Auditor {
	if !cfg.Enabled {
		return nil
	}
	return &Auditor{cfg: cfg}
}

type auditRecord struct {
	Timestamp    string   `json:"timestamp"`
	VariantID    string   `json:"variant_id"`
	PromptDigest string   `json:"prompt_digest"`
	ElementIDs   []string `json:"element_ids"`
	PromptChars  int      `json:"prompt_chars"`
}

// Record appends one audit record for a composed instruction.
func (a *Auditor) Record(spec *variant.Spec, instruction string) error {
	return a.recordAt(spec, instruction, time.Now())
}

func (a *Auditor) recordAt(spec *variant.Spec, instruction string, now time.Time) error {
	dir := a.cfg.Dir
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create audit dir: %w", err)
	}

	prefix := strings.TrimSpace(a.cfg.FilePrefix)
	if prefix == "" {
		prefix = "compose"
	}
	fileName := fmt.Sprintf("%s-%s.jsonl", prefix, now.Format("2006-01-02"))
	filePath := filepath.Join(dir, fileName)

	ids := make([]string, 0, len(spec.Elements))
	for _, el := range spec.Elements {
		ids = append(ids, el.ID)
	}

	record := auditRecord{
		Timestamp:    now.Format(time.RFC3339),
		VariantID:    spec.ID,
		PromptDigest: Digest(instruction),
		ElementIDs:   ids,
		PromptChars:  len([]rune(instruction)),
	}

	line, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal audit record: %w", err)
	}

	auditMu.Lock()
	defer auditMu.Unlock()

	f, err := os.OpenFile(filePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open audit file: %w", err)
	}
	defer f.Close()
	if _, err := f.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("append audit record: %w", err)
	}

	return a.pruneAt(now)
}

// Prune removes audit files older than the retention window.
func (a *Auditor) Prune() error {
	auditMu.Lock()
	defer auditMu.Unlock()
	return a.pruneAt(time.Now())
}

func (a *Auditor) pruneAt(now time.Time) error {
	if a.cfg.RetentionDays <= 0 {
		return nil
	}
	entries, err := os.ReadDir(a.cfg.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read audit dir: %w", err)
	}

	prefix := strings.TrimSpace(a.cfg.FilePrefix)
	if prefix == "" {
		prefix = "compose"
	}
	cutoff := now.AddDate(0, 0, -a.cfg.RetentionDays)

	for _, e := range entries {
		name := e.Name()
		if !strings.HasPrefix(name, prefix+"-") || !strings.HasSuffix(name, ".jsonl") {
			continue
		}
		dateStr := strings.TrimSuffix(strings.TrimPrefix(name, prefix+"-"), ".jsonl")
		day, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			continue
		}
		if day.Before(cutoff) {
			if err := os.Remove(filepath.Join(a.cfg.Dir, name)); err != nil {
				logger.Warn("failed to prune audit file %s: %v", name, err)
			}
		}
	}
	return nil
}

// Digest returns the hex SHA-256 of an instruction, used to correlate audit
// records with history entries.
func Digest(instruction string) string {
	sum := sha256.Sum256([]byte(instruction))
	return hex.EncodeToString(sum[:])
}

func auditWarn(err error) {
	logger.Warn("compose audit: %v", err)
}
