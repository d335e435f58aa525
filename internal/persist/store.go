package persist

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// Store persists generation history records using SQLite. Only run metadata
// is stored; assembled slide content itself is never persisted.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewStore creates a SQLite-backed history store at the given path.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}

	s := &Store{db: db}

	if err := s.init(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return s, nil
}

func (s *Store) init() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS generations (
			id             TEXT PRIMARY KEY,
			variant_id     TEXT NOT NULL,
			prompt_digest  TEXT NOT NULL,
			status         TEXT NOT NULL,
			error          TEXT,
			violations     INTEGER NOT NULL DEFAULT 0,
			duration_ms    INTEGER NOT NULL DEFAULT 0,
			created_at     TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_generations_variant ON generations(variant_id);
		CREATE INDEX IF NOT EXISTS idx_generations_created ON generations(created_at);
	`)
	return err
}

// RecordGeneration appends one history record.
func (s *Store) RecordGeneration(rec *GenerationRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	_, err := s.db.Exec(`
		INSERT INTO generations (id, variant_id, prompt_digest, status, error, violations, duration_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.VariantID, rec.PromptDigest, rec.Status, rec.Error,
		rec.Violations, rec.DurationMS, rec.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("insert generation record: %w", err)
	}
	return nil
}

// ListGenerations returns the most recent records, newest first.
func (s *Store) ListGenerations(limit int) ([]*GenerationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(`
		SELECT id, variant_id, prompt_digest, status, error, violations, duration_ms, created_at
		FROM generations
		ORDER BY created_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*GenerationRecord
	for rows.Next() {
		var rec GenerationRecord
		var createdAt string
		var errText sql.NullString
		if err := rows.Scan(&rec.ID, &rec.VariantID, &rec.PromptDigest, &rec.Status,
			&errText, &rec.Violations, &rec.DurationMS, &createdAt); err != nil {
			return nil, err
		}
		rec.Error = errText.String
		if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
			rec.CreatedAt = t
		}
		records = append(records, &rec)
	}
	return records, rows.Err()
}

// CountByVariant returns per-variant run counts.
func (s *Store) CountByVariant() (map[string]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`SELECT variant_id, COUNT(*) FROM generations GROUP BY variant_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var id string
		var n int
		if err := rows.Scan(&id, &n); err != nil {
			return nil, err
		}
		counts[id] = n
	}
	return counts, rows.Err()
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
