package ingest_test

import (
	"os"
	"path/filepath"
	"testing"

	"cityforge/internal/catalog"
	"cityforge/internal/config"
	"cityforge/internal/ingest"
)

func writeSource(t *testing.T, dir, name, body string) config.Source {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}
	return config.Source{Label: name, Path: path, Format: config.FormatInternational, Continent: "Europe"}
}

func TestRunParsesUSFormat(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "USA.md", "New York, NY\nPortland, OR\n")
	src.Format = config.FormatUS
	src.Continent = "North America"

	result, err := ingest.New([]config.Source{src}).Run()
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(result.Candidates) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(result.Candidates))
	}
	got := result.Candidates[0]
	want := catalog.Candidate{
		Name:          "New York",
		StateOrRegion: "New York",
		Country:       "United States",
		Continent:     "North America",
		SourceFile:    "USA.md",
	}
	if got != want {
		t.Fatalf("candidate = %+v, want %+v", got, want)
	}
}

func TestRunDropsParentheticalAlias(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "Asia", "Astana (Nur-Sultan), Kazakhstan\n")
	src.Continent = "Asia"

	result, err := ingest.New([]config.Source{src}).Run()
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(result.Candidates) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(result.Candidates))
	}
	c := result.Candidates[0]
	if c.Name != "Astana" || c.Country != "Kazakhstan" || c.StateOrRegion != "" {
		t.Fatalf("unexpected candidate %+v", c)
	}
}

func TestRunInfersContinentForAutoSources(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "Americas+Australia.csv",
		"Montreal, Canada\nRosario, Argentina\nNuku'alofa, Tonga\n")
	src.Continent = config.ContinentAuto

	result, err := ingest.New([]config.Source{src}).Run()
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(result.Candidates) != 3 {
		t.Fatalf("expected 3 candidates, got %d", len(result.Candidates))
	}
	continents := []string{"North America", "South America", ingest.ContinentOther}
	for i, want := range continents {
		if got := result.Candidates[i].Continent; got != want {
			t.Errorf("candidate %d continent = %q, want %q", i, got, want)
		}
	}
}

func TestRunCountsJunkAndUnparsedSeparately(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "Europe.md",
		"Porto, Portugal\nLinz (Austria)/ similar ~90\nNoSeparatorHere\nGhent, Belgium\n")

	result, err := ingest.New([]config.Source{src}).Run()
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if result.Stats.Parsed != 2 {
		t.Errorf("Parsed = %d, want 2", result.Stats.Parsed)
	}
	if result.Stats.JunkFiltered != 1 {
		t.Errorf("JunkFiltered = %d, want 1", result.Stats.JunkFiltered)
	}
	if result.Stats.Unparsed != 1 {
		t.Errorf("Unparsed = %d, want 1", result.Stats.Unparsed)
	}
	if len(result.Junk) != 1 || result.Junk[0].Source != "Europe.md" {
		t.Errorf("unexpected junk record %+v", result.Junk)
	}
}

func TestRunToleratesMissingSource(t *testing.T) {
	dir := t.TempDir()
	present := writeSource(t, dir, "Europe.md", "Porto, Portugal\n")
	missing := config.Source{
		Label:     "Africa",
		Path:      filepath.Join(dir, "Africa"),
		Format:    config.FormatInternational,
		Continent: "Africa",
	}

	result, err := ingest.New([]config.Source{missing, present}).Run()
	if err != nil {
		t.Fatalf("Run should tolerate missing files: %v", err)
	}
	if len(result.Candidates) != 1 {
		t.Fatalf("expected 1 candidate from surviving source, got %d", len(result.Candidates))
	}
	if len(result.Stats.MissingSources) != 1 || result.Stats.MissingSources[0] != "Africa" {
		t.Fatalf("unexpected missing sources %v", result.Stats.MissingSources)
	}
}

func TestRunExpandsUnknownStateAsIs(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "USA.md", "Hagatna, GU\n")
	src.Format = config.FormatUS
	src.Continent = "North America"

	result, err := ingest.New([]config.Source{src}).Run()
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if result.Candidates[0].StateOrRegion != "GU" {
		t.Fatalf("unknown abbreviation should pass through, got %q", result.Candidates[0].StateOrRegion)
	}
}
