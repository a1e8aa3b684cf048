// Package history records build outcomes in a local SQLite database so
// operators can compare successive runs: page counts, rejections, manifest
// hashes, durations.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Record is one completed (or failed) build.
type Record struct {
	ID           string
	StartedAt    time.Time
	DurationMS   int64
	Pages        int
	Rejected     int
	SitemapURLs  int
	Shards       int
	ManifestHash string
	Status       string // success | failed
	Error        string
}

// Store persists build records.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// Open opens (or creates) the history database at path, creating parent
// directories as needed. Use ":memory:" for an in-memory database.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return nil, fmt.Errorf("create history directory: %w", err)
			}
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}
	s := &Store{db: db}
	if err := s.initialize(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize history schema: %w", err)
	}
	return s, nil
}

func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS builds (
		id TEXT PRIMARY KEY,
		started_at INTEGER NOT NULL,
		duration_ms INTEGER NOT NULL,
		pages INTEGER NOT NULL,
		rejected INTEGER NOT NULL,
		sitemap_urls INTEGER NOT NULL,
		shards INTEGER NOT NULL,
		manifest_hash TEXT NOT NULL,
		status TEXT NOT NULL,
		error TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_builds_started_at ON builds(started_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Append stores one build record, assigning an ID when empty, and returns
// the stored record.
func (s *Store) Append(ctx context.Context, r Record) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO builds (id, started_at, duration_ms, pages, rejected, sitemap_urls, shards, manifest_hash, status, error)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.StartedAt.UTC().Unix(), r.DurationMS, r.Pages, r.Rejected,
		r.SitemapURLs, r.Shards, r.ManifestHash, r.Status, r.Error)
	if err != nil {
		return Record{}, fmt.Errorf("insert build record: %w", err)
	}
	return r, nil
}

// Recent returns up to limit records, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, duration_ms, pages, rejected, sitemap_urls, shards, manifest_hash, status, COALESCE(error, '')
		 FROM builds ORDER BY started_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query build records: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var r Record
		var startedAt int64
		if err := rows.Scan(&r.ID, &startedAt, &r.DurationMS, &r.Pages, &r.Rejected,
			&r.SitemapURLs, &r.Shards, &r.ManifestHash, &r.Status, &r.Error); err != nil {
			return nil, fmt.Errorf("scan build record: %w", err)
		}
		r.StartedAt = time.Unix(startedAt, 0).UTC()
		out = append(out, r)
	}
	return out, rows.Err()
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
