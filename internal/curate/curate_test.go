package curate_test

import (
	"testing"

	"cityforge/internal/catalog"
	"cityforge/internal/curate"
	"cityforge/internal/dataset"
	"cityforge/internal/testsupport"
)

var bounds = catalog.ScoreBounds{Floor: 40, Ceiling: 75}

func record(name, country, continent string, scoreValue float64) dataset.Record {
	return dataset.Record{
		Name:      name,
		Country:   country,
		FullName:  name + ", " + country,
		Continent: continent,
		Scores:    testsupport.FullScoreVector(scoreValue),
	}
}

func candidate(name, country string) catalog.Candidate {
	return catalog.Candidate{Name: name, Country: country, SourceFile: "test.md"}
}

func newDataset() *dataset.Dataset {
	return &dataset.Dataset{
		Enrichment: make(map[dataset.Key]dataset.Record),
		Removals:   make(map[dataset.Key]struct{}),
		Existing:   make(map[string]struct{}),
		Overrides:  make(map[string]map[string]float64),
	}
}

func TestRunClassifiesCandidates(t *testing.T) {
	ds := newDataset()
	ds.Enrichment[dataset.Key{Name: "Bruges", Country: "Belgium"}] = record("Bruges", "Belgium", "Europe", 6.0)
	ds.Removals[dataset.Key{Name: "Darwin", Country: "Australia"}] = struct{}{}

	curator := curate.New(ds, bounds)
	result := curator.Run([]catalog.Candidate{
		candidate("Bruges", "Belgium"),
		candidate("Darwin", "Australia"),
		candidate("Nowhere", "Atlantis"),
	})

	if result.Stats.Input != 3 || result.Stats.Removed != 1 || result.Stats.Curated != 1 || result.Stats.DataGaps != 1 {
		t.Fatalf("stats = %+v, want input 3, removed 1, curated 1, gaps 1", result.Stats)
	}
	if len(result.Gaps) != 1 || result.Gaps[0].Name != "Nowhere" {
		t.Fatalf("gaps = %v, want Nowhere", result.Gaps)
	}
	city := result.Cities[0]
	if city.ID != "bruges" {
		t.Fatalf("city id = %q, want bruges", city.ID)
	}
	if city.TeleportCityScore != 60.0 {
		t.Fatalf("composite = %v, want 60.0", city.TeleportCityScore)
	}
}

func TestRunClampsCompositeToBounds(t *testing.T) {
	ds := newDataset()
	ds.Enrichment[dataset.Key{Name: "Lowtown", Country: "Testland"}] = record("Lowtown", "Testland", "Other", 1.0)
	ds.Enrichment[dataset.Key{Name: "Hightown", Country: "Testland"}] = record("Hightown", "Testland", "Other", 9.5)

	result := curate.New(ds, bounds).Run([]catalog.Candidate{
		candidate("Lowtown", "Testland"),
		candidate("Hightown", "Testland"),
	})

	if result.Stats.ScoreMin != 40.0 {
		t.Fatalf("score min = %v, want floor 40.0", result.Stats.ScoreMin)
	}
	if result.Stats.ScoreMax != 75.0 {
		t.Fatalf("score max = %v, want ceiling 75.0", result.Stats.ScoreMax)
	}
}

func TestRunResolvesSlugCollisions(t *testing.T) {
	ds := newDataset()
	ds.Enrichment[dataset.Key{Name: "San Jose", Country: "United States"}] = record("San Jose", "United States", "North America", 5.0)
	ds.Enrichment[dataset.Key{Name: "San José", Country: "Costa Rica"}] = record("San José", "Costa Rica", "Central America", 5.0)

	result := curate.New(ds, bounds).Run([]catalog.Candidate{
		candidate("San Jose", "United States"),
		candidate("San José", "Costa Rica"),
	})

	ids := make(map[string]struct{})
	for _, city := range result.Cities {
		ids[city.ID] = struct{}{}
	}
	if _, ok := ids["san-jose"]; !ok {
		t.Fatalf("expected san-jose id, got %v", ids)
	}
	if _, ok := ids["san-jose-costa-rica"]; !ok {
		t.Fatalf("expected san-jose-costa-rica id, got %v", ids)
	}
}

func TestRunSortsByContinentCountryName(t *testing.T) {
	ds := newDataset()
	ds.Enrichment[dataset.Key{Name: "Cusco", Country: "Peru"}] = record("Cusco", "Peru", "South America", 5.0)
	ds.Enrichment[dataset.Key{Name: "Bruges", Country: "Belgium"}] = record("Bruges", "Belgium", "Europe", 5.0)
	ds.Enrichment[dataset.Key{Name: "Hallstatt", Country: "Austria"}] = record("Hallstatt", "Austria", "Europe", 5.0)

	result := curate.New(ds, bounds).Run([]catalog.Candidate{
		candidate("Cusco", "Peru"),
		candidate("Bruges", "Belgium"),
		candidate("Hallstatt", "Austria"),
	})

	var names []string
	for _, city := range result.Cities {
		names = append(names, city.Name)
	}
	want := []string{"Hallstatt", "Bruges", "Cusco"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("order = %v, want %v", names, want)
		}
	}
}
