package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Artifact file names written under the configured output directory. Each
// command consumes its predecessor's artifact, mirroring the stage order.
const (
	CandidatesArtifact = "new_cities_master.json"
	CitiesArtifact     = "curated_cities_data.json"
	TagsArtifact       = "city_vibe_tags.json"
)

// SaveJSON writes v as indented JSON, creating the parent directory.
func SaveJSON(path string, v any) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create artifact directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode artifact: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write artifact %s: %w", path, err)
	}
	return nil
}

// LoadCandidates reads a candidate artifact. Failure is fatal: artifacts are
// loaded eagerly before any processing begins.
func LoadCandidates(path string) ([]Candidate, error) {
	var candidates []Candidate
	if err := loadJSON(path, &candidates); err != nil {
		return nil, err
	}
	return candidates, nil
}

// LoadCities reads a curated city artifact and validates every record.
func LoadCities(path string) ([]City, error) {
	var cities []City
	if err := loadJSON(path, &cities); err != nil {
		return nil, err
	}
	for _, city := range cities {
		if err := city.Validate(); err != nil {
			return nil, fmt.Errorf("artifact %s: %w", path, err)
		}
	}
	return cities, nil
}

func loadJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read artifact %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse artifact %s: %w", path, err)
	}
	return nil
}
