package persist

import (
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndListGenerations(t *testing.T) {
	s := newTestStore(t)

	base := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	records := []*GenerationRecord{
		{ID: NewRecordID(), VariantID: "hero-three-box", PromptDigest: "d1",
			Status: StatusOK, Violations: 1, DurationMS: 900, CreatedAt: base},
		{ID: NewRecordID(), VariantID: "metric-row", PromptDigest: "d2",
			Status: StatusFailed, Error: "generation failed", CreatedAt: base.Add(time.Minute)},
	}
	for _, rec := range records {
		if err := s.RecordGeneration(rec); err != nil {
			t.Fatalf("RecordGeneration: %v", err)
		}
	}

	got, err := s.ListGenerations(10)
	if err != nil {
		t.Fatalf("ListGenerations: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d records", len(got))
	}
	// Newest first.
	if got[0].VariantID != "metric-row" || got[1].VariantID != "hero-three-box" {
		t.Fatalf("wrong order: %s, %s", got[0].VariantID, got[1].VariantID)
	}
	if got[0].Status != StatusFailed || got[0].Error != "generation failed" {
		t.Fatalf("failed record round-trip: %+v", got[0])
	}
	if got[1].Violations != 1 || got[1].DurationMS != 900 {
		t.Fatalf("ok record round-trip: %+v", got[1])
	}
	if !got[1].CreatedAt.Equal(base) {
		t.Fatalf("created_at round-trip: %v", got[1].CreatedAt)
	}
}

func TestListGenerationsLimit(t *testing.T) {
	s := newTestStore(t)
	base := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		rec := &GenerationRecord{
			ID: NewRecordID(), VariantID: "hero-three-box", PromptDigest: "d",
			Status: StatusOK, CreatedAt: base.Add(time.Duration(i) * time.Second),
		}
		if err := s.RecordGeneration(rec); err != nil {
			t.Fatalf("RecordGeneration: %v", err)
		}
	}
	got, err := s.ListGenerations(3)
	if err != nil {
		t.Fatalf("ListGenerations: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("limit not applied, got %d", len(got))
	}
}

func TestCountByVariant(t *testing.T) {
	s := newTestStore(t)
	for _, id := range []string{"a", "a", "b"} {
		rec := &GenerationRecord{ID: NewRecordID(), VariantID: id, PromptDigest: "d", Status: StatusOK}
		if err := s.RecordGeneration(rec); err != nil {
			t.Fatalf("RecordGeneration: %v", err)
		}
	}
	counts, err := s.CountByVariant()
	if err != nil {
		t.Fatalf("CountByVariant: %v", err)
	}
	if counts["a"] != 2 || counts["b"] != 1 {
		t.Fatalf("counts = %v", counts)
	}
}

func TestNewRecordIDUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewRecordID()
		if id == "" || seen[id] {
			t.Fatalf("duplicate or empty id %q", id)
		}
		seen[id] = true
	}
}
