// Package store is the persistence boundary: an embedded SQLite database
// holding the seeded city catalog and vibe tag assignments.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"cityforge/internal/config"
)

// Store manages catalog persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

const (
	sqliteBusyCode          = 5
	busyRetryAttempts       = 5
	busyRetryInitialBackoff = 10 * time.Millisecond
	busyRetryMaxBackoff     = 200 * time.Millisecond
)

func ensureContext(ctx context.Context) context.Context {
	if ctx != nil {
		return ctx
	}
	return context.Background()
}

func isSQLiteBusy(err error) bool {
	if err == nil {
		return false
	}
	var coder interface{ Code() int }
	if errors.As(err, &coder) && coder.Code() == sqliteBusyCode {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

func retryOnBusy(ctx context.Context, op func() error) error {
	delay := busyRetryInitialBackoff
	var lastErr error
	for attempt := 0; attempt < busyRetryAttempts; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if !isSQLiteBusy(lastErr) || attempt == busyRetryAttempts-1 {
			break
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		if next := delay * 2; next <= busyRetryMaxBackoff {
			delay = next
		}
	}
	return lastErr
}

// Open initializes or connects to the catalog database.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := cfg.Paths.DatabasePath
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Counts reports the verification figures printed after seeding.
type Counts struct {
	Cities         int     `json:"cities"`
	ScoreRows      int     `json:"score_rows"`
	TagRows        int     `json:"tag_rows"`
	TaggedCities   int     `json:"tagged_cities"`
	DistinctVibes  int     `json:"distinct_vibes"`
	AveragePerCity float64 `json:"average_per_city"`
}

// Verify runs the post-seed verification queries.
func (s *Store) Verify(ctx context.Context) (Counts, error) {
	ctx = ensureContext(ctx)
	var counts Counts

	queries := []struct {
		query string
		dest  *int
	}{
		{"SELECT COUNT(*) FROM cities", &counts.Cities},
		{"SELECT COUNT(*) FROM city_scores", &counts.ScoreRows},
		{"SELECT COUNT(*) FROM city_vibe_tags", &counts.TagRows},
		{"SELECT COUNT(DISTINCT city_id) FROM city_vibe_tags", &counts.TaggedCities},
		{"SELECT COUNT(DISTINCT vibe_tag_id) FROM city_vibe_tags", &counts.DistinctVibes},
	}
	for _, q := range queries {
		if err := s.db.QueryRowContext(ctx, q.query).Scan(q.dest); err != nil {
			return Counts{}, fmt.Errorf("verify %q: %w", q.query, err)
		}
	}
	if counts.TaggedCities > 0 {
		counts.AveragePerCity = float64(counts.TagRows) / float64(counts.TaggedCities)
	}
	return counts, nil
}
