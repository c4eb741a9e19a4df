package vibes

import (
	"log/slog"
	"math"
	"sort"

	"github.com/google/uuid"

	"cityforge/internal/catalog"
	"cityforge/internal/logging"
)

// Keyword lists internal to individual rules; not part of the injected tables.
var (
	quietKeywords      = []string{"serene", "tranquil", "peaceful", "sleepy", "quiet", "relaxed", "retreat", "misty"}
	quietBoostKeywords = []string{"serene", "tranquil", "peaceful", "quiet", "retreat"}
	walkableKeywords   = []string{"walkable", "pedestrian", "stroll", "wander", "cobblestone", "old town", "car-free"}
	fastPacedKeywords  = []string{"bustling", "buzzing", "vibrant", "chaotic", "rapidly", "fast", "modern"}
	topUpKeywords      = []string{"old", "traditional", "culture", "heritage"}
)

// Assignment is one city-tag-strength row ready for persistence.
type Assignment struct {
	CityID   string    `json:"city_id"`
	TagID    uuid.UUID `json:"vibe_tag_id"`
	TagName  string    `json:"tag"`
	Strength float64   `json:"strength"`
}

// Stats summarizes one assignment pass.
type Stats struct {
	Cities      int            `json:"cities"`
	Assignments int            `json:"assignments"`
	MinPerCity  int            `json:"min_per_city"`
	MaxPerCity  int            `json:"max_per_city"`
	MeanPerCity float64        `json:"mean_per_city"`
	ByTag       map[string]int `json:"by_tag"`
}

// Result carries the flat assignment rows plus distribution stats.
type Result struct {
	Rows  []Assignment
	Stats Stats
}

// Policy bounds the per-city tag set.
type Policy struct {
	StrengthFloor float64
	MinTags       int
	MaxTags       int
}

// Assigner evaluates the tag rules for enriched cities.
type Assigner struct {
	rules     Rules
	policy    Policy
	overrides map[string]map[string]float64
	logger    *slog.Logger
}

// Option customizes an Assigner.
type Option func(*Assigner)

// WithLogger attaches a logger for per-city diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Assigner) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithOverrides installs the manual per-city override table, keyed by city id.
func WithOverrides(overrides map[string]map[string]float64) Option {
	return func(a *Assigner) {
		a.overrides = overrides
	}
}

// New builds an Assigner over the given rule tables and policy.
func New(rules Rules, policy Policy, opts ...Option) *Assigner {
	assigner := &Assigner{
		rules:  rules,
		policy: policy,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(assigner)
	}
	return assigner
}

// Assign computes the tag-strength map for a single city. The map holds
// between MinTags and MaxTags entries whenever the rules can produce that
// many.
func (a *Assigner) Assign(city catalog.City) map[string]float64 {
	r := a.rules
	summary := city.Summary
	pop := city.Population

	costOfLiving := city.Scores.Get("Cost of Living", 5)
	outdoors := city.Scores.Get("Outdoors", 5)
	leisure := city.Scores.Get("Leisure & Culture", 5)
	tolerance := city.Scores.Get("Tolerance", 5)
	safety := city.Scores.Get("Safety", 5)
	internet := city.Scores.Get("Internet Access", 5)
	envQuality := city.Scores.Get("Environmental Quality", 5)

	vibes := make(map[string]float64)

	if hasKeyword(summary, r.CoastalKeywords) {
		count := keywordCount(summary, r.CoastalKeywords)
		vibes["Beach Life"] = clamp(0.55+float64(count)*0.08, 0.5, 0.9)
	}

	if outdoors >= 6.5 || hasKeyword(summary, r.NatureKeywords) {
		base := 0.5 + (outdoors-5)*0.06
		if hasKeyword(summary, r.NatureKeywords) {
			base += 0.1
		}
		vibes["Outdoorsy"] = clamp(base, 0.5, 0.9)
	}

	if hasKeyword(summary, r.FoodKeywords) || leisure >= 7.5 {
		base := 0.5
		if hasKeyword(summary, r.FoodKeywords) {
			base += 0.15 + float64(keywordCount(summary, r.FoodKeywords))*0.05
		}
		if leisure >= 7.5 {
			base += 0.1
		}
		vibes["Foodie"] = clamp(base, 0.5, 0.9)
	}

	if hasKeyword(summary, r.HistoricKeywords) {
		count := keywordCount(summary, r.HistoricKeywords)
		vibes["Historic"] = clamp(0.5+float64(count)*0.08, 0.5, 0.9)
	}

	if _, ok := r.WalkableCities[city.ID]; ok {
		vibes["Walkable"] = clamp(0.7, 0.5, 0.85)
	} else if pop < 100000 && hasKeyword(summary, walkableKeywords) {
		vibes["Walkable"] = clamp(0.65, 0.5, 0.8)
	}

	if hasKeyword(summary, r.BohemianKeywords) {
		count := keywordCount(summary, r.BohemianKeywords)
		vibes["Bohemian"] = clamp(0.5+float64(count)*0.1, 0.5, 0.85)
	}

	if _, affordable := r.AffordableCountries[city.Country]; costOfLiving >= 7.5 || affordable {
		base := 0.4 + (costOfLiving-5)*0.08
		if _, ok := r.SEAsianCountries[city.Country]; ok {
			base += 0.1
		} else if _, ok := r.SouthAsianCountries[city.Country]; ok {
			base += 0.1
		}
		vibes["Affordable"] = clamp(base, 0.5, 0.9)
	}

	if _, ok := r.DigitalNomadCities[city.ID]; ok {
		base := 0.6
		if internet >= 6.5 {
			base += 0.1
		}
		if costOfLiving >= 7.5 {
			base += 0.1
		}
		vibes["Digital Nomad"] = clamp(base, 0.55, 0.85)
	}

	if hasKeyword(summary, r.NightlifeKeywords) {
		count := keywordCount(summary, r.NightlifeKeywords)
		vibes["Nightlife"] = clamp(0.5+float64(count)*0.1, 0.5, 0.85)
	}

	if pop < 80000 || hasKeyword(summary, quietKeywords) {
		base := 0.5
		if pop < 30000 {
			base += 0.15
		} else if pop < 80000 {
			base += 0.08
		}
		if hasKeyword(summary, quietBoostKeywords) {
			base += 0.1
		}
		vibes["Quiet & Peaceful"] = clamp(base, 0.5, 0.85)
	}

	if hasKeyword(summary, r.LuxuryKeywords) {
		count := keywordCount(summary, r.LuxuryKeywords)
		vibes["Luxury"] = clamp(0.55+float64(count)*0.1, 0.5, 0.85)
	}

	_, coffeeCity := r.CoffeeCultureCities[city.ID]
	if coffeeCity || hasKeyword(summary, r.CoffeeKeywords) {
		base := 0.55
		if hasKeyword(summary, r.CoffeeKeywords) {
			base += 0.1
		}
		if coffeeCity {
			base += 0.1
		}
		vibes["Coffee Culture"] = clamp(base, 0.5, 0.8)
	}

	if hasKeyword(summary, r.EcoKeywords) || envQuality >= 7.5 {
		base := 0.5
		if hasKeyword(summary, r.EcoKeywords) {
			base += 0.15
		}
		if envQuality >= 7.5 {
			base += 0.1
		}
		vibes["Eco-Conscious"] = clamp(base, 0.5, 0.85)
	}

	if hasKeyword(summary, r.ArtMusicKeywords) {
		count := keywordCount(summary, r.ArtMusicKeywords)
		vibes["Arts & Music"] = clamp(0.45+float64(count)*0.1, 0.5, 0.85)
	}

	if pop > 500000 && tolerance >= 6.5 && leisure >= 7 {
		vibes["Cosmopolitan"] = clamp(0.5+(tolerance-6)*0.05, 0.5, 0.8)
	}

	if _, ok := r.FamilyFriendlyCities[city.ID]; ok {
		base := 0.55
		if safety >= 7 {
			base += 0.1
		}
		vibes["Family Friendly"] = clamp(base, 0.4, 0.7)
	}

	if _, ok := r.LGBTQFriendlyCities[city.ID]; ok || tolerance >= 8 {
		base := 0.5
		if tolerance >= 8 {
			base += 0.1
		}
		vibes["LGBTQ+ Friendly"] = clamp(base, 0.4, 0.8)
	}

	if pop > 1000000 && hasKeyword(summary, fastPacedKeywords) {
		vibes["Fast-Paced"] = clamp(0.55, 0.5, 0.75)
	}

	if _, ok := r.StartupHubCities[city.ID]; ok {
		vibes["Startup Hub"] = clamp(0.5, 0.4, 0.6)
	}

	if _, ok := r.StudentCities[city.ID]; ok {
		vibes["Student Friendly"] = clamp(0.5, 0.4, 0.6)
	}

	// Manual overrides win over every computed value.
	for name, strength := range a.overrides[city.ID] {
		if _, ok := Lookup(name); !ok {
			a.logger.Warn("override references unknown tag",
				logging.String("city", city.ID), logging.String("tag", name))
			continue
		}
		vibes[name] = clamp(strength, a.policy.StrengthFloor, 1.0)
	}

	a.topUp(vibes, city)
	a.truncate(vibes)

	for name, strength := range vibes {
		vibes[name] = clamp(strength, a.policy.StrengthFloor, 1.0)
	}

	return vibes
}

// topUp adds fallback tags under looser thresholds until the minimum
// cardinality is met.
func (a *Assigner) topUp(vibes map[string]float64, city catalog.City) {
	if len(vibes) >= a.policy.MinTags {
		return
	}
	if _, ok := vibes["Historic"]; !ok && hasKeyword(city.Summary, topUpKeywords) {
		vibes["Historic"] = 0.5
	}
	if _, ok := vibes["Quiet & Peaceful"]; !ok && city.Population < 200000 {
		vibes["Quiet & Peaceful"] = 0.5
	}
	if _, ok := vibes["Affordable"]; !ok {
		if _, affordable := a.rules.AffordableCountries[city.Country]; affordable {
			vibes["Affordable"] = 0.55
		}
	}
	if _, ok := vibes["Outdoorsy"]; !ok && city.Scores.Get("Outdoors", 5) >= 5.5 {
		vibes["Outdoorsy"] = 0.5
	}
	if _, ok := vibes["Walkable"]; !ok && city.Population < 100000 {
		vibes["Walkable"] = 0.5
	}
}

// truncate keeps the strongest MaxTags entries, ties broken by name so the
// result is deterministic.
func (a *Assigner) truncate(vibes map[string]float64) {
	if len(vibes) <= a.policy.MaxTags {
		return
	}
	type entry struct {
		name     string
		strength float64
	}
	entries := make([]entry, 0, len(vibes))
	for name, strength := range vibes {
		entries = append(entries, entry{name, strength})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].strength != entries[j].strength {
			return entries[i].strength > entries[j].strength
		}
		return entries[i].name < entries[j].name
	})
	for _, dropped := range entries[a.policy.MaxTags:] {
		delete(vibes, dropped.name)
	}
}

// Run assigns tags to every city and flattens the output into sorted rows.
func (a *Assigner) Run(cities []catalog.City) Result {
	result := Result{
		Stats: Stats{Cities: len(cities), ByTag: make(map[string]int)},
	}

	var total int
	for i, city := range cities {
		vibes := a.Assign(city)
		if len(vibes) < a.policy.MinTags {
			a.logger.Warn("city below minimum tag count",
				logging.String("city", city.ID), logging.Int("tags", len(vibes)))
		}

		names := make([]string, 0, len(vibes))
		for name := range vibes {
			names = append(names, name)
		}
		sort.Slice(names, func(i, j int) bool {
			if vibes[names[i]] != vibes[names[j]] {
				return vibes[names[i]] > vibes[names[j]]
			}
			return names[i] < names[j]
		})

		for _, name := range names {
			tag, _ := Lookup(name)
			result.Rows = append(result.Rows, Assignment{
				CityID:   city.ID,
				TagID:    tag.ID,
				TagName:  name,
				Strength: vibes[name],
			})
			result.Stats.ByTag[name]++
		}

		count := len(vibes)
		total += count
		if i == 0 || count < result.Stats.MinPerCity {
			result.Stats.MinPerCity = count
		}
		if count > result.Stats.MaxPerCity {
			result.Stats.MaxPerCity = count
		}
	}

	result.Stats.Assignments = total
	if len(cities) > 0 {
		result.Stats.MeanPerCity = float64(total) / float64(len(cities))
	}
	return result
}

func clamp(value, lo, hi float64) float64 {
	value = math.Round(value*100) / 100
	return math.Max(lo, math.Min(hi, value))
}
