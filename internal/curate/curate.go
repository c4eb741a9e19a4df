// Package curate joins deduplicated candidates against the hand-authored
// enrichment table, applies the removal list, and derives composite scores.
package curate

import (
	"log/slog"
	"sort"

	"cityforge/internal/catalog"
	"cityforge/internal/dataset"
	"cityforge/internal/logging"
	"cityforge/internal/textutil"
)

// Stats summarizes one curation pass.
type Stats struct {
	Input       int            `json:"input"`
	Removed     int            `json:"removed"`
	Curated     int            `json:"curated"`
	DataGaps    int            `json:"data_gaps"`
	ByContinent map[string]int `json:"by_continent"`
	ScoreMin    float64        `json:"score_min"`
	ScoreMax    float64        `json:"score_max"`
	ScoreMean   float64        `json:"score_mean"`
}

// Result carries the curated cities plus the candidates that fell through.
type Result struct {
	Cities []catalog.City
	// Gaps are candidates with neither enrichment data nor a removal entry.
	// They indicate the enrichment table is behind the source lists.
	Gaps  []catalog.Candidate
	Stats Stats
}

// Curator owns one curation pass over a candidate list.
type Curator struct {
	data   *dataset.Dataset
	bounds catalog.ScoreBounds
	logger *slog.Logger
}

// Option customizes a Curator.
type Option func(*Curator)

// WithLogger attaches a logger for data-gap warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Curator) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New builds a Curator over the given data tables and score clamp band.
func New(data *dataset.Dataset, bounds catalog.ScoreBounds, opts ...Option) *Curator {
	curator := &Curator{
		data:   data,
		bounds: bounds,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(curator)
	}
	return curator
}

// Run classifies every candidate as removed, enriched, or a data gap, and
// returns the enriched cities sorted by continent, country, name.
func (c *Curator) Run(candidates []catalog.Candidate) Result {
	result := Result{
		Stats: Stats{Input: len(candidates), ByContinent: make(map[string]int)},
	}

	assigned := make(map[string]struct{})
	var scoreSum float64

	for _, candidate := range candidates {
		key := dataset.Key{Name: candidate.Name, Country: candidate.Country}
		if _, removed := c.data.Removals[key]; removed {
			result.Stats.Removed++
			continue
		}

		record, ok := c.data.Enrichment[key]
		if !ok {
			result.Gaps = append(result.Gaps, candidate)
			c.logger.Warn("no enrichment data for candidate",
				logging.String("name", candidate.Name),
				logging.String("country", candidate.Country),
				logging.String("source", candidate.SourceFile))
			continue
		}

		id := textutil.Slugify(record.Name)
		if _, taken := assigned[id]; taken {
			// Two distinct cities can share a name slug (San José, Costa
			// Rica vs San Jose, United States). Later arrivals get the
			// country appended.
			id = id + "-" + textutil.Slugify(record.Country)
		}
		assigned[id] = struct{}{}

		composite := record.Scores.Composite(c.bounds)
		city := catalog.City{
			ID:                id,
			Name:              record.Name,
			FullName:          record.FullName,
			Country:           record.Country,
			Continent:         record.Continent,
			Latitude:          record.Latitude,
			Longitude:         record.Longitude,
			Population:        record.Population,
			TeleportCityScore: composite,
			Summary:           record.Summary,
			ImageURL:          record.ImageURL,
			Scores:            record.Scores,
		}

		result.Cities = append(result.Cities, city)
		result.Stats.ByContinent[city.Continent]++
		scoreSum += composite
	}

	sort.Slice(result.Cities, func(i, j int) bool {
		a, b := result.Cities[i], result.Cities[j]
		if a.Continent != b.Continent {
			return a.Continent < b.Continent
		}
		if a.Country != b.Country {
			return a.Country < b.Country
		}
		return a.Name < b.Name
	})

	result.Stats.Curated = len(result.Cities)
	result.Stats.DataGaps = len(result.Gaps)
	if len(result.Cities) > 0 {
		result.Stats.ScoreMin = result.Cities[0].TeleportCityScore
		result.Stats.ScoreMax = result.Cities[0].TeleportCityScore
		for _, city := range result.Cities {
			if city.TeleportCityScore < result.Stats.ScoreMin {
				result.Stats.ScoreMin = city.TeleportCityScore
			}
			if city.TeleportCityScore > result.Stats.ScoreMax {
				result.Stats.ScoreMax = city.TeleportCityScore
			}
		}
		result.Stats.ScoreMean = scoreSum / float64(len(result.Cities))
	}

	return result
}
