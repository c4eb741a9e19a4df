package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"cityforge/internal/catalog"
	"cityforge/internal/config"
	"cityforge/internal/curate"
	"cityforge/internal/dataset"
	"cityforge/internal/dedup"
	"cityforge/internal/ingest"
	"cityforge/internal/logging"
	"cityforge/internal/services"
	"cityforge/internal/store"
	"cityforge/internal/vibes"
)

// CompileStage ingests the configured sources, deduplicates candidates, and
// writes the master candidate artifact.
type CompileStage struct {
	cfg    *config.Config
	data   *dataset.Dataset
	logger *slog.Logger

	Ingest *ingest.Result
	Dedup  *dedup.Result
}

// NewCompileStage builds the compile stage.
func NewCompileStage(cfg *config.Config, data *dataset.Dataset, logger *slog.Logger) *CompileStage {
	return &CompileStage{cfg: cfg, data: data, logger: stageLogger(logger, "compile")}
}

func (c *CompileStage) Name() string { return "compile" }

func (c *CompileStage) HealthCheck(context.Context) Health {
	if len(c.cfg.Sources) == 0 {
		return Unhealthy("compile", "no sources configured")
	}
	return Healthy("compile")
}

func (c *CompileStage) Prepare(context.Context) error {
	if err := c.cfg.EnsureDirectories(); err != nil {
		return services.Wrap(services.ErrConfiguration, "compile", "prepare", "create directories", err)
	}
	return nil
}

func (c *CompileStage) Execute(context.Context) error {
	ingestor := ingest.New(c.cfg.Sources, ingest.WithLogger(c.logger))
	result, err := ingestor.Run()
	if err != nil {
		return services.Wrap(services.ErrData, "compile", "ingest", "read sources", err)
	}
	deduped := dedup.Run(result.Candidates, c.data.Existing)
	c.Ingest = result
	c.Dedup = &deduped

	path := c.cfg.ArtifactPath(catalog.CandidatesArtifact)
	if err := catalog.SaveJSON(path, deduped.New); err != nil {
		return services.Wrap(services.ErrData, "compile", "write", "save candidate artifact", err)
	}

	c.logger.Info("candidates compiled",
		logging.Int("parsed", result.Stats.Parsed),
		logging.Int("junk", result.Stats.JunkFiltered),
		logging.Int("unparsed", result.Stats.Unparsed),
		logging.Int("duplicates", deduped.DuplicatesDropped),
		logging.Int("existing", len(deduped.ExistingMatched)),
		logging.Int("new", len(deduped.New)))
	return nil
}

// CurateStage joins candidates against the enrichment tables and writes the
// curated city artifact.
type CurateStage struct {
	cfg    *config.Config
	data   *dataset.Dataset
	logger *slog.Logger

	Result *curate.Result
}

// NewCurateStage builds the curate stage.
func NewCurateStage(cfg *config.Config, data *dataset.Dataset, logger *slog.Logger) *CurateStage {
	return &CurateStage{cfg: cfg, data: data, logger: stageLogger(logger, "curate")}
}

func (c *CurateStage) Name() string { return "curate" }

func (c *CurateStage) HealthCheck(context.Context) Health {
	return artifactHealth("curate", c.cfg.ArtifactPath(catalog.CandidatesArtifact))
}

func (c *CurateStage) Prepare(context.Context) error {
	if err := c.cfg.EnsureDirectories(); err != nil {
		return services.Wrap(services.ErrConfiguration, "curate", "prepare", "create directories", err)
	}
	return nil
}

func (c *CurateStage) Execute(context.Context) error {
	candidates, err := catalog.LoadCandidates(c.cfg.ArtifactPath(catalog.CandidatesArtifact))
	if err != nil {
		return services.Wrap(services.ErrData, "curate", "load", "read candidate artifact", err)
	}

	curator := curate.New(c.data, c.cfg.ScoreBounds(), curate.WithLogger(c.logger))
	result := curator.Run(candidates)
	c.Result = &result

	path := c.cfg.ArtifactPath(catalog.CitiesArtifact)
	if err := catalog.SaveJSON(path, result.Cities); err != nil {
		return services.Wrap(services.ErrData, "curate", "write", "save city artifact", err)
	}

	c.logger.Info("cities curated",
		logging.Int("input", result.Stats.Input),
		logging.Int("removed", result.Stats.Removed),
		logging.Int("curated", result.Stats.Curated),
		logging.Int("data_gaps", result.Stats.DataGaps))
	return nil
}

// VibesStage assigns vibe tags to the curated cities and writes the tag
// assignment artifact.
type VibesStage struct {
	cfg    *config.Config
	data   *dataset.Dataset
	logger *slog.Logger

	Result *vibes.Result
}

// NewVibesStage builds the vibes stage.
func NewVibesStage(cfg *config.Config, data *dataset.Dataset, logger *slog.Logger) *VibesStage {
	return &VibesStage{cfg: cfg, data: data, logger: stageLogger(logger, "vibes")}
}

func (v *VibesStage) Name() string { return "vibes" }

func (v *VibesStage) HealthCheck(context.Context) Health {
	return artifactHealth("vibes", v.cfg.ArtifactPath(catalog.CitiesArtifact))
}

func (v *VibesStage) Prepare(context.Context) error {
	if err := v.cfg.EnsureDirectories(); err != nil {
		return services.Wrap(services.ErrConfiguration, "vibes", "prepare", "create directories", err)
	}
	return nil
}

func (v *VibesStage) Execute(context.Context) error {
	cities, err := catalog.LoadCities(v.cfg.ArtifactPath(catalog.CitiesArtifact))
	if err != nil {
		return services.Wrap(services.ErrData, "vibes", "load", "read city artifact", err)
	}

	policy := vibes.Policy{
		StrengthFloor: v.cfg.Vibes.StrengthFloor,
		MinTags:       v.cfg.Vibes.MinTags,
		MaxTags:       v.cfg.Vibes.MaxTags,
	}
	assigner := vibes.New(vibes.DefaultRules(), policy,
		vibes.WithOverrides(v.data.Overrides), vibes.WithLogger(v.logger))
	result := assigner.Run(cities)
	v.Result = &result

	path := v.cfg.ArtifactPath(catalog.TagsArtifact)
	if err := catalog.SaveJSON(path, result.Rows); err != nil {
		return services.Wrap(services.ErrData, "vibes", "write", "save tag artifact", err)
	}

	v.logger.Info("vibe tags assigned",
		logging.Int("cities", result.Stats.Cities),
		logging.Int("assignments", result.Stats.Assignments),
		logging.Int("min_per_city", result.Stats.MinPerCity),
		logging.Int("max_per_city", result.Stats.MaxPerCity))
	return nil
}

// SeedStage loads the curated artifacts and upserts them into the catalog
// database in batches.
type SeedStage struct {
	cfg      *config.Config
	logger   *slog.Logger
	progress io.Writer

	CitySummary store.Summary
	VibeSummary store.Summary
	Counts      store.Counts
}

// NewSeedStage builds the seed stage.
func NewSeedStage(cfg *config.Config, logger *slog.Logger) *SeedStage {
	return &SeedStage{cfg: cfg, logger: stageLogger(logger, "seed")}
}

// SetProgress draws seeding progress bars on the given writer.
func (s *SeedStage) SetProgress(w io.Writer) {
	s.progress = w
}

func (s *SeedStage) Name() string { return "seed" }

func (s *SeedStage) HealthCheck(context.Context) Health {
	if health := artifactHealth("seed", s.cfg.ArtifactPath(catalog.CitiesArtifact)); !health.Ready {
		return health
	}
	return artifactHealth("seed", s.cfg.ArtifactPath(catalog.TagsArtifact))
}

func (s *SeedStage) Prepare(context.Context) error {
	if err := s.cfg.EnsureDirectories(); err != nil {
		return services.Wrap(services.ErrConfiguration, "seed", "prepare", "create directories", err)
	}
	return nil
}

func (s *SeedStage) Execute(ctx context.Context) error {
	cities, err := catalog.LoadCities(s.cfg.ArtifactPath(catalog.CitiesArtifact))
	if err != nil {
		return services.Wrap(services.ErrData, "seed", "load", "read city artifact", err)
	}
	rows, err := vibes.LoadAssignments(s.cfg.ArtifactPath(catalog.TagsArtifact))
	if err != nil {
		return services.Wrap(services.ErrData, "seed", "load", "read tag artifact", err)
	}

	st, err := store.Open(s.cfg)
	if err != nil {
		return services.Wrap(services.ErrConfiguration, "seed", "open", "open catalog database", err)
	}
	defer st.Close()

	opts := []store.SeederOption{store.WithLogger(s.logger)}
	if s.progress != nil {
		opts = append(opts, store.WithProgress(s.progress))
	}
	seeder := store.NewSeeder(st, s.cfg.Seed, opts...)

	s.CitySummary, err = seeder.SeedCities(ctx, cities)
	if err != nil {
		return services.Wrap(services.ErrData, "seed", "cities", "seed cities", err)
	}
	s.VibeSummary, err = seeder.SeedVibes(ctx, rows)
	if err != nil {
		return services.Wrap(services.ErrData, "seed", "vibes", "seed vibe tags", err)
	}

	s.Counts, err = st.Verify(ctx)
	if err != nil {
		return services.Wrap(services.ErrData, "seed", "verify", "verify seeded rows", err)
	}

	if batchesAllFailed(s.CitySummary) || batchesAllFailed(s.VibeSummary) {
		return services.Wrap(services.ErrData, "seed", "batches",
			fmt.Sprintf("every batch failed (%d city, %d vibe)",
				s.CitySummary.FailedBatches, s.VibeSummary.FailedBatches), nil)
	}

	s.logger.Info("catalog seeded",
		logging.Int("cities", s.Counts.Cities),
		logging.Int("score_rows", s.Counts.ScoreRows),
		logging.Int("tag_rows", s.Counts.TagRows),
		logging.Int("failed_batches", s.CitySummary.FailedBatches+s.VibeSummary.FailedBatches))
	return nil
}

func batchesAllFailed(summary store.Summary) bool {
	return summary.Batches > 0 && summary.FailedBatches == summary.Batches
}

func artifactHealth(stage, path string) Health {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Unhealthy(stage, fmt.Sprintf("missing artifact %s (run the previous stage first)", path))
		}
		return Unhealthy(stage, err.Error())
	}
	return Healthy(stage)
}

func stageLogger(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		return logging.NewNop()
	}
	return logger.With(logging.String(logging.FieldComponent, component))
}
