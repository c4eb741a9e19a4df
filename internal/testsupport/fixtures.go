package testsupport

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cityforge/internal/catalog"
)

// FullScoreVector returns a complete score vector with every category set to
// the same value.
func FullScoreVector(value float64) catalog.ScoreVector {
	sv := make(catalog.ScoreVector, len(catalog.Categories))
	for _, category := range catalog.Categories {
		sv[category] = value
	}
	return sv
}

// EnrichedCity returns a minimal valid city record for tests.
func EnrichedCity(id, name, country string) catalog.City {
	return catalog.City{
		ID:                id,
		Name:              name,
		FullName:          name + ", " + country,
		Country:           country,
		Continent:         "Other",
		Population:        100000,
		TeleportCityScore: 50.0,
		Summary:           "A test city.",
		Scores:            FullScoreVector(5.0),
	}
}

// WriteSourceFile writes a city list file with one entry per line and returns
// its path. The parent directory is created when missing.
func WriteSourceFile(t testing.TB, path string, lines ...string) string {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("create source dir: %v", err)
	}
	content := strings.Join(lines, "\n") + "\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write source file: %v", err)
	}
	return path
}
