package config

import (
	"path/filepath"
	"strings"
)

// normalize expands user paths, resolves relative source paths against the
// sources directory, and fills blank fields from defaults.
func (c *Config) normalize() error {
	defaults := Default()

	if strings.TrimSpace(c.Paths.SourcesDir) == "" {
		c.Paths.SourcesDir = defaults.Paths.SourcesDir
	}
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaults.Paths.DataDir
	}
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		c.Paths.OutputDir = defaults.Paths.OutputDir
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaults.Paths.LogDir
	}
	if strings.TrimSpace(c.Paths.DatabasePath) == "" {
		c.Paths.DatabasePath = defaults.Paths.DatabasePath
	}

	for _, field := range []*string{
		&c.Paths.SourcesDir,
		&c.Paths.DataDir,
		&c.Paths.OutputDir,
		&c.Paths.LogDir,
		&c.Paths.DatabasePath,
	} {
		expanded, err := expandPath(*field)
		if err != nil {
			return err
		}
		*field = expanded
	}

	if len(c.Sources) == 0 {
		c.Sources = DefaultSources()
	}
	for i := range c.Sources {
		src := &c.Sources[i]
		src.Label = strings.TrimSpace(src.Label)
		src.Format = strings.ToLower(strings.TrimSpace(src.Format))
		src.Continent = strings.TrimSpace(src.Continent)
		if src.Format == "" {
			src.Format = FormatInternational
		}
		if src.Label == "" {
			src.Label = filepath.Base(src.Path)
		}
		if src.Path != "" && !filepath.IsAbs(src.Path) {
			src.Path = filepath.Join(c.Paths.SourcesDir, src.Path)
		}
	}

	if c.Curation.ScoreFloor == 0 && c.Curation.ScoreCeiling == 0 {
		c.Curation = defaults.Curation
	}
	if c.Vibes.StrengthFloor == 0 {
		c.Vibes.StrengthFloor = defaults.Vibes.StrengthFloor
	}
	if c.Vibes.MinTags == 0 {
		c.Vibes.MinTags = defaults.Vibes.MinTags
	}
	if c.Vibes.MaxTags == 0 {
		c.Vibes.MaxTags = defaults.Vibes.MaxTags
	}
	if c.Seed.BatchSize == 0 {
		c.Seed.BatchSize = defaults.Seed.BatchSize
	}
	if c.Seed.BatchPauseMS == 0 {
		c.Seed.BatchPauseMS = defaults.Seed.BatchPauseMS
	}
	c.Seed.ConflictPolicy = strings.ToLower(strings.TrimSpace(c.Seed.ConflictPolicy))
	if c.Seed.ConflictPolicy == "" {
		c.Seed.ConflictPolicy = defaults.Seed.ConflictPolicy
	}

	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaults.Logging.Format
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaults.Logging.Level
	}

	return nil
}
