package vibes_test

import (
	"testing"

	"cityforge/internal/catalog"
	"cityforge/internal/testsupport"
	"cityforge/internal/vibes"
)

var policy = vibes.Policy{StrengthFloor: 0.3, MinTags: 5, MaxTags: 10}

func newAssigner(t *testing.T, opts ...vibes.Option) *vibes.Assigner {
	t.Helper()
	return vibes.New(vibes.DefaultRules(), policy, opts...)
}

func enriched(id, summary string, population int64) catalog.City {
	city := testsupport.EnrichedCity(id, "Testville", "Testland")
	city.Summary = summary
	city.Population = population
	return city
}

func TestHistoricStrengthGrowsWithKeywordHits(t *testing.T) {
	assigner := newAssigner(t)

	rich := enriched("rich", "An ancient walled city of temples, recognized by UNESCO.", 500000)
	sparse := enriched("sparse", "An ancient city.", 500000)

	richTags := assigner.Assign(rich)
	sparseTags := assigner.Assign(sparse)

	if richTags["Historic"] <= sparseTags["Historic"] {
		t.Fatalf("Historic strength %v (three hits) not greater than %v (one hit)",
			richTags["Historic"], sparseTags["Historic"])
	}
}

func TestMembershipRules(t *testing.T) {
	assigner := newAssigner(t)

	fukuoka := testsupport.EnrichedCity("fukuoka", "Fukuoka", "Japan")
	tags := assigner.Assign(fukuoka)
	if tags["Startup Hub"] != 0.5 {
		t.Fatalf("Startup Hub = %v, want 0.5 for membership city", tags["Startup Hub"])
	}

	bruges := testsupport.EnrichedCity("bruges", "Bruges", "Belgium")
	tags = assigner.Assign(bruges)
	if tags["Walkable"] != 0.7 {
		t.Fatalf("Walkable = %v, want 0.7 for membership city", tags["Walkable"])
	}
}

func TestOverridesWinOverComputedValues(t *testing.T) {
	overrides := map[string]map[string]float64{
		"testville": {
			"Foodie":  0.95,
			"Made Up": 0.9,
		},
	}
	assigner := newAssigner(t, vibes.WithOverrides(overrides))

	city := enriched("testville", "A street food paradise with a famous market and great cuisine.", 500000)
	tags := assigner.Assign(city)

	if tags["Foodie"] != 0.95 {
		t.Fatalf("Foodie = %v, want override 0.95", tags["Foodie"])
	}
	if _, ok := tags["Made Up"]; ok {
		t.Fatal("override for unknown tag must be ignored")
	}
}

func TestOverrideBelowFloorIsClamped(t *testing.T) {
	overrides := map[string]map[string]float64{
		"testville": {"Foodie": 0.1},
	}
	assigner := newAssigner(t, vibes.WithOverrides(overrides))

	tags := assigner.Assign(enriched("testville", "", 500000))
	if tags["Foodie"] != 0.3 {
		t.Fatalf("Foodie = %v, want clamp to floor 0.3", tags["Foodie"])
	}
}

func TestTruncationKeepsStrongest(t *testing.T) {
	overrides := map[string]map[string]float64{
		"testville": {
			"Walkable": 0.95, "Nightlife": 0.9, "Foodie": 0.88, "Beach Life": 0.86,
			"Outdoorsy": 0.84, "Coffee Culture": 0.82, "Luxury": 0.8,
			"Arts & Music": 0.78, "Historic": 0.76, "Cosmopolitan": 0.74,
			"Bohemian": 0.45, "Fast-Paced": 0.4,
		},
	}
	assigner := newAssigner(t, vibes.WithOverrides(overrides))

	tags := assigner.Assign(enriched("testville", "", 500000))
	if len(tags) != 10 {
		t.Fatalf("tag count = %d, want 10 after truncation", len(tags))
	}
	if _, ok := tags["Bohemian"]; ok {
		t.Fatal("weakest tag Bohemian should have been truncated")
	}
	if _, ok := tags["Fast-Paced"]; ok {
		t.Fatal("weakest tag Fast-Paced should have been truncated")
	}
	if _, ok := tags["Walkable"]; !ok {
		t.Fatal("strongest tag Walkable should have survived truncation")
	}
}

func TestStrengthBounds(t *testing.T) {
	assigner := newAssigner(t)

	cities := []catalog.City{
		enriched("keyworded", "An ancient temple city with beaches, jungle hiking, street food, jazz festivals, yoga retreats, nightlife and coffee.", 25000),
		enriched("plain", "A mid-sized town.", 900000),
		testsupport.EnrichedCity("fukuoka", "Fukuoka", "Japan"),
	}

	result := assigner.Run(cities)
	if len(result.Rows) == 0 {
		t.Fatal("expected assignments")
	}
	for _, row := range result.Rows {
		if row.Strength < 0.3 || row.Strength > 1.0 {
			t.Fatalf("strength %v for %s/%s out of [0.3, 1.0]", row.Strength, row.CityID, row.TagName)
		}
	}
}

func TestRunCardinalityAndStats(t *testing.T) {
	assigner := newAssigner(t)

	chiangMai := testsupport.EnrichedCity("chiang-mai", "Chiang Mai", "Thailand")
	chiangMai.Summary = "Affordable digital nomad haven with ancient temples and night markets, surrounded by misty mountains and jungle."
	chiangMai.Population = 131091
	chiangMai.Scores = testsupport.FullScoreVector(7.0)

	result := assigner.Run([]catalog.City{chiangMai})

	if result.Stats.Cities != 1 {
		t.Fatalf("stats cities = %d, want 1", result.Stats.Cities)
	}
	if result.Stats.MinPerCity < 5 || result.Stats.MaxPerCity > 10 {
		t.Fatalf("per-city cardinality [%d, %d] outside [5, 10]",
			result.Stats.MinPerCity, result.Stats.MaxPerCity)
	}
	if result.Stats.Assignments != len(result.Rows) {
		t.Fatalf("assignments %d != rows %d", result.Stats.Assignments, len(result.Rows))
	}
	var byTagTotal int
	for _, count := range result.Stats.ByTag {
		byTagTotal += count
	}
	if byTagTotal != result.Stats.Assignments {
		t.Fatalf("by-tag total %d != assignments %d", byTagTotal, result.Stats.Assignments)
	}
}

func TestStatsMinCountsZeroTagCity(t *testing.T) {
	assigner := newAssigner(t)

	// Large population, no rule keywords, mid scores: no rule fires and no
	// top-up applies, so the city legitimately ends up with zero tags.
	barren := enriched("barren", "", 5000000)

	tagged := testsupport.EnrichedCity("chiang-mai", "Chiang Mai", "Thailand")
	tagged.Summary = "Affordable digital nomad haven with ancient temples and night markets."
	tagged.Population = 131091
	tagged.Scores = testsupport.FullScoreVector(7.0)

	result := assigner.Run([]catalog.City{barren, tagged})

	if result.Stats.MinPerCity != 0 {
		t.Fatalf("min per city = %d, want 0 for untagged city", result.Stats.MinPerCity)
	}
	if result.Stats.MaxPerCity == 0 {
		t.Fatal("max per city = 0, want tags on the second city")
	}
}

func TestRowsSortedByStrengthWithinCity(t *testing.T) {
	assigner := newAssigner(t)

	city := enriched("keyworded", "An ancient temple city with beaches, jungle hiking and street food.", 25000)
	result := assigner.Run([]catalog.City{city})

	for i := 1; i < len(result.Rows); i++ {
		prev, cur := result.Rows[i-1], result.Rows[i]
		if prev.CityID == cur.CityID && prev.Strength < cur.Strength {
			t.Fatalf("rows not sorted by descending strength: %v before %v", prev, cur)
		}
	}
}
