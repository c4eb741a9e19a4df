package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate rejects configurations that would produce nonsensical pipeline
// behavior. Called after normalize, so blank fields are already defaulted.
func (c *Config) Validate() error {
	var problems []string

	if c.Curation.ScoreFloor < 0 || c.Curation.ScoreCeiling > 100 {
		problems = append(problems, "curation: score band must lie within [0, 100]")
	}
	if c.Curation.ScoreFloor >= c.Curation.ScoreCeiling {
		problems = append(problems, "curation: score_floor must be below score_ceiling")
	}

	if c.Vibes.StrengthFloor < 0 || c.Vibes.StrengthFloor >= 1 {
		problems = append(problems, "vibes: strength_floor must lie within [0, 1)")
	}
	if c.Vibes.MinTags < 1 || c.Vibes.MaxTags < c.Vibes.MinTags {
		problems = append(problems, "vibes: tag cardinality band is invalid")
	}

	if c.Seed.BatchSize < 1 {
		problems = append(problems, "seed: batch_size must be positive")
	}
	if c.Seed.BatchPauseMS < 0 {
		problems = append(problems, "seed: batch_pause_ms cannot be negative")
	}
	switch c.Seed.ConflictPolicy {
	case ConflictIgnore, ConflictUpdate:
	default:
		problems = append(problems, fmt.Sprintf("seed: conflict_policy must be %q or %q", ConflictIgnore, ConflictUpdate))
	}

	seen := make(map[string]struct{}, len(c.Sources))
	for _, src := range c.Sources {
		if src.Path == "" {
			problems = append(problems, fmt.Sprintf("sources: %q has no path", src.Label))
		}
		switch src.Format {
		case FormatUS, FormatInternational:
		default:
			problems = append(problems, fmt.Sprintf("sources: %q has unsupported format %q", src.Label, src.Format))
		}
		if src.Continent == "" {
			problems = append(problems, fmt.Sprintf("sources: %q has no continent", src.Label))
		}
		if _, dup := seen[src.Label]; dup {
			problems = append(problems, fmt.Sprintf("sources: duplicate label %q", src.Label))
		}
		seen[src.Label] = struct{}{}
	}

	switch c.Logging.Format {
	case "console", "json":
	default:
		problems = append(problems, fmt.Sprintf("logging: unsupported format %q", c.Logging.Format))
	}

	if len(problems) > 0 {
		return errors.New("invalid configuration:\n  - " + strings.Join(problems, "\n  - "))
	}
	return nil
}
