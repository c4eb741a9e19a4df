package dataset_test

import (
	"os"
	"path/filepath"
	"testing"

	"cityforge/internal/dataset"
)

func TestLoadEmbedded(t *testing.T) {
	ds, err := dataset.Load("")
	if err != nil {
		t.Fatalf("load embedded dataset: %v", err)
	}

	if len(ds.Enrichment) == 0 {
		t.Fatal("expected embedded enrichment records")
	}
	record, ok := ds.Enrichment[dataset.Key{Name: "San José", Country: "Costa Rica"}]
	if !ok {
		t.Fatal("expected San José, Costa Rica in enrichment table")
	}
	if record.Continent != "Central America" {
		t.Fatalf("San José continent = %q, want Central America", record.Continent)
	}
	if err := record.Scores.Validate(); err != nil {
		t.Fatalf("San José scores invalid: %v", err)
	}

	if _, ok := ds.Removals[dataset.Key{Name: "Łódź", Country: "Poland"}]; !ok {
		t.Fatal("expected Łódź, Poland in removal list")
	}
	if _, ok := ds.Existing["amsterdam"]; !ok {
		t.Fatal("expected amsterdam in existing city set")
	}

	overrides, ok := ds.Overrides["chiang-mai"]
	if !ok {
		t.Fatal("expected chiang-mai overrides")
	}
	if overrides["Digital Nomad"] != 0.95 {
		t.Fatalf("chiang-mai Digital Nomad override = %v, want 0.95", overrides["Digital Nomad"])
	}
}

func TestLoadDataDirOverridesEmbedded(t *testing.T) {
	dir := t.TempDir()
	custom := `[{"name": "Testville", "country": "Testland"}]`
	if err := os.WriteFile(filepath.Join(dir, dataset.RemovalFile), []byte(custom), 0o644); err != nil {
		t.Fatalf("write custom removal list: %v", err)
	}

	ds, err := dataset.Load(dir)
	if err != nil {
		t.Fatalf("load dataset: %v", err)
	}

	if len(ds.Removals) != 1 {
		t.Fatalf("expected the custom removal list to replace the embedded one, got %d entries", len(ds.Removals))
	}
	if _, ok := ds.Removals[dataset.Key{Name: "Testville", Country: "Testland"}]; !ok {
		t.Fatal("expected Testville, Testland removal entry")
	}
	// Files absent from the directory still come from the embedded defaults.
	if len(ds.Enrichment) == 0 {
		t.Fatal("expected embedded enrichment records")
	}
}

func TestLoadRejectsInvalidEnrichment(t *testing.T) {
	dir := t.TempDir()
	broken := `[{"name": "Testville", "country": "Testland", "scores": {"Housing": 5.0}}]`
	if err := os.WriteFile(filepath.Join(dir, dataset.EnrichmentFile), []byte(broken), 0o644); err != nil {
		t.Fatalf("write broken enrichment: %v", err)
	}

	if _, err := dataset.Load(dir); err == nil {
		t.Fatal("expected error for incomplete score vector")
	}
}
