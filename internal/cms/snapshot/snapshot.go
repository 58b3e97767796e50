// Package snapshot persists the last successful CMS query results so pages keep rendering
// during CMS outages.
package snapshot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// ErrMiss is returned when no snapshot exists for a query.
var ErrMiss = errors.New("snapshot: miss")

const schema = `CREATE TABLE IF NOT EXISTS snapshots (
	query      TEXT PRIMARY KEY,
	body       BLOB NOT NULL,
	fetched_at INTEGER NOT NULL
)`

// Store is a SQLite-backed snapshot table. It is safe for concurrent use.
type Store struct {
	mu  sync.Mutex
	db  *sql.DB
	now func() time.Time
}

// Open creates or opens the database at path.
func Open(ctx context.Context, path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("snapshot: path is empty")
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("snapshot: create dir: %w", err)
		}
	}
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("snapshot: open: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("snapshot: ensure schema: %w", err)
	}
	return &Store{db: db, now: time.Now}, nil
}

// Put stores body as the latest result for query.
func (s *Store) Put(ctx context.Context, query string, body []byte) error {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO snapshots (query, body, fetched_at) VALUES (?, ?, ?)
		 ON CONFLICT(query) DO UPDATE SET body = excluded.body, fetched_at = excluded.fetched_at`,
		query, body, s.now().Unix())
	if err != nil {
		return fmt.Errorf("snapshot: put: %w", err)
	}
	return nil
}

// Get returns the stored body for query and when it was fetched.
func (s *Store) Get(ctx context.Context, query string) ([]byte, time.Time, error) {
	if s == nil {
		return nil, time.Time{}, ErrMiss
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var (
		body      []byte
		fetchedAt int64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT body, fetched_at FROM snapshots WHERE query = ?`, query).Scan(&body, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, time.Time{}, ErrMiss
	}
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("snapshot: get: %w", err)
	}
	return body, time.Unix(fetchedAt, 0), nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
