package catalog_test

import (
	"path/filepath"
	"testing"

	"cityforge/internal/catalog"
	"cityforge/internal/testsupport"
)

func TestCandidateKey(t *testing.T) {
	a := catalog.Candidate{Name: "São Paulo", Country: "Brazil"}
	b := catalog.Candidate{Name: "Sao Paulo", Country: "Brazil"}
	if a.Key() != b.Key() {
		t.Fatalf("diacritic variants should share a key: %q vs %q", a.Key(), b.Key())
	}
	if a.Key() != "sao-paulo|brazil" {
		t.Fatalf("unexpected key %q", a.Key())
	}
}

func TestScoreVectorValidate(t *testing.T) {
	sv := testsupport.FullScoreVector(6.0)
	if err := sv.Validate(); err != nil {
		t.Fatalf("complete vector should validate: %v", err)
	}

	delete(sv, "Outdoors")
	if err := sv.Validate(); err == nil {
		t.Fatal("expected error for missing category")
	}

	sv = testsupport.FullScoreVector(6.0)
	sv["Safety"] = 11
	if err := sv.Validate(); err == nil {
		t.Fatal("expected error for out-of-range score")
	}
}

func TestCompositeScore(t *testing.T) {
	bounds := catalog.ScoreBounds{Floor: 40, Ceiling: 75}

	sv := testsupport.FullScoreVector(6.0)
	if got := sv.Composite(bounds); got != 60.0 {
		t.Fatalf("Composite = %v, want 60.0", got)
	}

	// Mean of 9.5 would give 95; clamps at the ceiling.
	high := testsupport.FullScoreVector(9.5)
	if got := high.Composite(bounds); got != 75.0 {
		t.Fatalf("Composite = %v, want ceiling 75.0", got)
	}

	// Mean of 2 would give 20; clamps at the floor.
	low := testsupport.FullScoreVector(2.0)
	if got := low.Composite(bounds); got != 40.0 {
		t.Fatalf("Composite = %v, want floor 40.0", got)
	}
}

func TestCompositeRoundsToOneDecimal(t *testing.T) {
	sv := testsupport.FullScoreVector(5.0)
	sv["Outdoors"] = 5.3
	got := sv.Composite(catalog.ScoreBounds{Floor: 40, Ceiling: 99})
	// mean = (16*5.0 + 5.3) / 17 = 5.01764..., *10 = 50.1764... -> 50.2
	if got != 50.2 {
		t.Fatalf("Composite = %v, want 50.2", got)
	}
}

func TestArtifactRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "cities.json")
	cities := []catalog.City{testsupport.EnrichedCity("lisbon", "Lisbon", "Portugal")}
	if err := catalog.SaveJSON(path, cities); err != nil {
		t.Fatalf("SaveJSON failed: %v", err)
	}
	loaded, err := catalog.LoadCities(path)
	if err != nil {
		t.Fatalf("LoadCities failed: %v", err)
	}
	if len(loaded) != 1 || loaded[0].ID != "lisbon" {
		t.Fatalf("unexpected round trip result: %#v", loaded)
	}
}

func TestLoadCitiesRejectsIncompleteScores(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cities.json")
	city := testsupport.EnrichedCity("lisbon", "Lisbon", "Portugal")
	delete(city.Scores, "Taxation")
	if err := catalog.SaveJSON(path, []catalog.City{city}); err != nil {
		t.Fatalf("SaveJSON failed: %v", err)
	}
	if _, err := catalog.LoadCities(path); err == nil {
		t.Fatal("expected validation failure for incomplete score vector")
	}
}
