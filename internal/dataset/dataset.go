package dataset

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"cityforge/internal/catalog"
)

//go:embed data
var embeddedData embed.FS

// File names recognized in the data directory.
const (
	EnrichmentFile = "city_enrichment.json"
	RemovalFile    = "removal_list.json"
	ExistingFile   = "existing_cities.json"
	OverridesFile  = "vibe_overrides.json"
)

// Key identifies a city in the hand-authored tables. Display name and
// country, not slugs: the tables are written against the raw source spelling.
type Key struct {
	Name    string `json:"name"`
	Country string `json:"country"`
}

// Record is one hand-authored enrichment entry. The slug identifier and the
// composite score are derived at curation time, not stored.
type Record struct {
	Name       string              `json:"name"`
	Country    string              `json:"country"`
	FullName   string              `json:"full_name"`
	Continent  string              `json:"continent"`
	Latitude   float64             `json:"latitude"`
	Longitude  float64             `json:"longitude"`
	Population int64               `json:"population"`
	Summary    string              `json:"summary"`
	ImageURL   string              `json:"image_url"`
	Scores     catalog.ScoreVector `json:"scores"`
}

// Dataset aggregates every hand-authored table.
type Dataset struct {
	Enrichment map[Key]Record
	Removals   map[Key]struct{}
	Existing   map[string]struct{}
	Overrides  map[string]map[string]float64
}

// Load reads the data tables, preferring files in dataDir over the embedded
// defaults. An empty dataDir loads embedded data only.
func Load(dataDir string) (*Dataset, error) {
	ds := &Dataset{
		Enrichment: make(map[Key]Record),
		Removals:   make(map[Key]struct{}),
		Existing:   make(map[string]struct{}),
		Overrides:  make(map[string]map[string]float64),
	}

	var records []Record
	if err := loadTable(dataDir, EnrichmentFile, &records); err != nil {
		return nil, err
	}
	for _, record := range records {
		if err := record.Scores.Validate(); err != nil {
			return nil, fmt.Errorf("enrichment record %s, %s: %w", record.Name, record.Country, err)
		}
		ds.Enrichment[Key{Name: record.Name, Country: record.Country}] = record
	}

	var removals []Key
	if err := loadTable(dataDir, RemovalFile, &removals); err != nil {
		return nil, err
	}
	for _, key := range removals {
		ds.Removals[key] = struct{}{}
	}

	var existing []string
	if err := loadTable(dataDir, ExistingFile, &existing); err != nil {
		return nil, err
	}
	for _, id := range existing {
		ds.Existing[id] = struct{}{}
	}

	if err := loadTable(dataDir, OverridesFile, &ds.Overrides); err != nil {
		return nil, err
	}

	return ds, nil
}

func loadTable(dataDir, name string, v any) error {
	if dataDir != "" {
		path := filepath.Join(dataDir, name)
		data, err := os.ReadFile(path)
		if err == nil {
			if err := json.Unmarshal(data, v); err != nil {
				return fmt.Errorf("parse data file %s: %w", path, err)
			}
			return nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("read data file %s: %w", path, err)
		}
	}

	data, err := embeddedData.ReadFile("data/" + name)
	if err != nil {
		return fmt.Errorf("read embedded data %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse embedded data %s: %w", name, err)
	}
	return nil
}
