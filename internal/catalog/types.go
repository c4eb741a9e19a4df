package catalog

import (
	"fmt"

	"cityforge/internal/textutil"
)

// Candidate is an unvalidated city entry produced by source parsing. It lives
// only until curation either matches it against the enrichment table or
// rejects it.
type Candidate struct {
	Name          string `json:"name"`
	StateOrRegion string `json:"state_or_region,omitempty"`
	Country       string `json:"country"`
	Continent     string `json:"continent"`
	SourceFile    string `json:"source_file"`
}

// Slug returns the candidate's name slug.
func (c Candidate) Slug() string {
	return textutil.Slugify(c.Name)
}

// Key returns the canonical deduplication identity: name slug and country
// slug joined with a pipe. Two candidates with equal keys are the same city.
func (c Candidate) Key() string {
	return textutil.Slugify(c.Name) + "|" + textutil.Slugify(c.Country)
}

// City is the enriched record persisted downstream. Created once from the
// hand-authored enrichment table and immutable afterwards.
type City struct {
	ID                string      `json:"id"`
	Name              string      `json:"name"`
	FullName          string      `json:"full_name"`
	Country           string      `json:"country"`
	Continent         string      `json:"continent"`
	Latitude          float64     `json:"latitude"`
	Longitude         float64     `json:"longitude"`
	Population        int64       `json:"population"`
	TeleportCityScore float64     `json:"teleport_city_score"`
	Summary           string      `json:"summary"`
	ImageURL          string      `json:"image_url"`
	Scores            ScoreVector `json:"scores"`
}

// Validate checks the structural invariants every enriched record must hold.
func (c City) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("city %q: empty id", c.Name)
	}
	if c.Name == "" || c.Country == "" {
		return fmt.Errorf("city %q: missing name or country", c.ID)
	}
	if err := c.Scores.Validate(); err != nil {
		return fmt.Errorf("city %q: %w", c.ID, err)
	}
	return nil
}
