package store

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"

	"cityforge/internal/catalog"
	"cityforge/internal/config"
	"cityforge/internal/logging"
	"cityforge/internal/vibes"
)

// Summary reports the outcome of one batched seed pass. Failed batches are
// logged and counted; the pass keeps going.
type Summary struct {
	Batches       int `json:"batches"`
	FailedBatches int `json:"failed_batches"`
	Rows          int `json:"rows"`
	FailedRows    int `json:"failed_rows"`
}

// Seeder writes curated cities and tag assignments into the store in fixed
// size batches with a pause between batches.
type Seeder struct {
	store     *Store
	batchSize int
	pause     time.Duration
	policy    string
	logger    *slog.Logger
	progress  io.Writer
}

// SeederOption customizes a Seeder.
type SeederOption func(*Seeder)

// WithLogger attaches a logger for batch failures.
func WithLogger(logger *slog.Logger) SeederOption {
	return func(s *Seeder) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithProgress draws a progress bar on the given writer while seeding.
func WithProgress(w io.Writer) SeederOption {
	return func(s *Seeder) {
		s.progress = w
	}
}

// NewSeeder builds a Seeder over an open store with the given seed policy.
func NewSeeder(store *Store, cfg config.Seed, opts ...SeederOption) *Seeder {
	seeder := &Seeder{
		store:     store,
		batchSize: cfg.BatchSize,
		pause:     time.Duration(cfg.BatchPauseMS) * time.Millisecond,
		policy:    cfg.ConflictPolicy,
		logger:    logging.NewNop(),
	}
	if seeder.batchSize <= 0 {
		seeder.batchSize = 100
	}
	for _, opt := range opts {
		opt(seeder)
	}
	return seeder
}

// SeedCities upserts city records plus their per-category score rows.
func (s *Seeder) SeedCities(ctx context.Context, cities []catalog.City) (Summary, error) {
	ctx = ensureContext(ctx)
	var summary Summary

	bar := s.newBar(len(cities), "seeding cities")
	for start := 0; start < len(cities); start += s.batchSize {
		end := min(start+s.batchSize, len(cities))
		batch := cities[start:end]
		summary.Batches++

		err := retryOnBusy(ctx, func() error {
			return s.seedCityBatch(ctx, batch)
		})
		if err != nil {
			if ctx.Err() != nil {
				return summary, ctx.Err()
			}
			summary.FailedBatches++
			summary.FailedRows += len(batch)
			logging.WithContext(ctx, s.logger).Error("city batch failed",
				logging.Int("batch", summary.Batches), logging.Error(err))
		} else {
			summary.Rows += len(batch)
		}

		s.step(bar, len(batch))
		if end < len(cities) {
			if err := s.sleep(ctx); err != nil {
				return summary, err
			}
		}
	}
	s.finish(bar)
	return summary, nil
}

func (s *Seeder) seedCityBatch(ctx context.Context, batch []catalog.City) error {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin batch tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	cityStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO cities (id, name, full_name, country, continent, latitude,
			longitude, population, teleport_city_score, summary, image_url)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`+s.cityConflictClause())
	if err != nil {
		return fmt.Errorf("prepare city insert: %w", err)
	}
	defer cityStmt.Close()

	scoreStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO city_scores (city_id, category, score)
		VALUES (?, ?, ?)`+s.scoreConflictClause())
	if err != nil {
		return fmt.Errorf("prepare score insert: %w", err)
	}
	defer scoreStmt.Close()

	for _, city := range batch {
		if _, err := cityStmt.ExecContext(ctx,
			city.ID, city.Name, city.FullName, city.Country, city.Continent,
			city.Latitude, city.Longitude, city.Population,
			city.TeleportCityScore, city.Summary, city.ImageURL); err != nil {
			return fmt.Errorf("insert city %s: %w", city.ID, err)
		}
		for _, category := range catalog.Categories {
			if _, err := scoreStmt.ExecContext(ctx,
				city.ID, category, city.Scores[category]); err != nil {
				return fmt.Errorf("insert score %s/%s: %w", city.ID, category, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit batch: %w", err)
	}
	return nil
}

// SeedVibes upserts city-tag-strength rows.
func (s *Seeder) SeedVibes(ctx context.Context, rows []vibes.Assignment) (Summary, error) {
	ctx = ensureContext(ctx)
	var summary Summary

	bar := s.newBar(len(rows), "seeding vibe tags")
	for start := 0; start < len(rows); start += s.batchSize {
		end := min(start+s.batchSize, len(rows))
		batch := rows[start:end]
		summary.Batches++

		err := retryOnBusy(ctx, func() error {
			return s.seedVibeBatch(ctx, batch)
		})
		if err != nil {
			if ctx.Err() != nil {
				return summary, ctx.Err()
			}
			summary.FailedBatches++
			summary.FailedRows += len(batch)
			logging.WithContext(ctx, s.logger).Error("vibe batch failed",
				logging.Int("batch", summary.Batches), logging.Error(err))
		} else {
			summary.Rows += len(batch)
		}

		s.step(bar, len(batch))
		if end < len(rows) {
			if err := s.sleep(ctx); err != nil {
				return summary, err
			}
		}
	}
	s.finish(bar)
	return summary, nil
}

func (s *Seeder) seedVibeBatch(ctx context.Context, batch []vibes.Assignment) error {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin batch tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO city_vibe_tags (city_id, vibe_tag_id, strength)
		VALUES (?, ?, ?)`+s.vibeConflictClause())
	if err != nil {
		return fmt.Errorf("prepare vibe insert: %w", err)
	}
	defer stmt.Close()

	for _, row := range batch {
		if _, err := stmt.ExecContext(ctx,
			row.CityID, row.TagID.String(), row.Strength); err != nil {
			return fmt.Errorf("insert vibe %s/%s: %w", row.CityID, row.TagName, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit batch: %w", err)
	}
	return nil
}

func (s *Seeder) cityConflictClause() string {
	if s.policy == config.ConflictIgnore {
		return " ON CONFLICT(id) DO NOTHING"
	}
	columns := []string{
		"name", "full_name", "country", "continent", "latitude", "longitude",
		"population", "teleport_city_score", "summary", "image_url",
	}
	assignments := make([]string, len(columns))
	for i, column := range columns {
		assignments[i] = column + "=excluded." + column
	}
	return " ON CONFLICT(id) DO UPDATE SET " + strings.Join(assignments, ", ")
}

func (s *Seeder) scoreConflictClause() string {
	if s.policy == config.ConflictIgnore {
		return " ON CONFLICT(city_id, category) DO NOTHING"
	}
	return " ON CONFLICT(city_id, category) DO UPDATE SET score=excluded.score"
}

func (s *Seeder) vibeConflictClause() string {
	if s.policy == config.ConflictIgnore {
		return " ON CONFLICT(city_id, vibe_tag_id) DO NOTHING"
	}
	return " ON CONFLICT(city_id, vibe_tag_id) DO UPDATE SET strength=excluded.strength"
}

func (s *Seeder) sleep(ctx context.Context) error {
	if s.pause <= 0 {
		return nil
	}
	select {
	case <-time.After(s.pause):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Seeder) newBar(total int, description string) *progressbar.ProgressBar {
	if s.progress == nil || total == 0 {
		return nil
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(s.progress),
		progressbar.OptionSetDescription(description),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionShowCount(),
	)
}

func (s *Seeder) step(bar *progressbar.ProgressBar, n int) {
	if bar != nil {
		_ = bar.Add(n)
	}
}

func (s *Seeder) finish(bar *progressbar.ProgressBar) {
	if bar != nil {
		_ = bar.Finish()
	}
}
