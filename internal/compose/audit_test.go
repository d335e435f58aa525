package compose

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/kayz/slidesmith/internal/config"
)

func TestAuditorDisabled(t *testing.T) {
	if a := NewAuditor(config.AuditConfig{Enabled: false}); a != nil {
		t.Fatal("disabled config must yield a nil auditor")
	}
}

func TestAuditorRecordAppendsDailyFile(t *testing.T) {
	dir := t.TempDir()
	a := NewAuditor(config.AuditConfig{Enabled: true, Dir: dir, FilePrefix: "compose", RetentionDays: 30})

	spec := twoElementSpec()
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	if err := a.recordAt(spec, "instruction one", now); err != nil {
		t.Fatalf("recordAt: %v", err)
	}
	if err := a.recordAt(spec, "instruction two", now); err != nil {
		t.Fatalf("recordAt: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "compose-2026-03-14.jsonl"))
	if err != nil {
		t.Fatalf("read audit file: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 records, got %d", len(lines))
	}

	var rec auditRecord
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatalf("unmarshal record: %v", err)
	}
	if rec.VariantID != "metric-row" {
		t.Errorf("variant id = %q", rec.VariantID)
	}
	if rec.PromptDigest != Digest("instruction one") {
		t.Error("digest mismatch")
	}
	if len(rec.ElementIDs) != 2 {
		t.Errorf("element ids = %v", rec.ElementIDs)
	}
}

func TestAuditorPruneRemovesExpiredFiles(t *testing.T) {
	dir := t.TempDir()
	a := NewAuditor(config.AuditConfig{Enabled: true, Dir: dir, FilePrefix: "compose", RetentionDays: 7})

	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	old := filepath.Join(dir, "compose-2026-03-01.jsonl")
	fresh := filepath.Join(dir, "compose-2026-03-12.jsonl")
	other := filepath.Join(dir, "notes.txt")
	for _, p := range []string{old, fresh, other} {
		if err := os.WriteFile(p, []byte("{}\n"), 0644); err != nil {
			t.Fatalf("seed %s: %v", p, err)
		}
	}

	if err := a.pruneAt(now); err != nil {
		t.Fatalf("pruneAt: %v", err)
	}
	if _, err := os.Stat(old); !os.IsNotExist(err) {
		t.Error("expired audit file survived prune")
	}
	if _, err := os.Stat(fresh); err != nil {
		t.Error("in-window audit file was pruned")
	}
	if _, err := os.Stat(other); err != nil {
		t.Error("unrelated file was pruned")
	}
}

func TestDigestStable(t *testing.T) {
	if Digest("abc") != Digest("abc") {
		t.Fatal("digest not stable")
	}
	if Digest("abc") == Digest("abd") {
		t.Fatal("digest collision on distinct inputs")
	}
	if len(Digest("abc")) != 64 {
		t.Fatal("digest is not hex sha-256")
	}
}
