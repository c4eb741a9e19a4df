// Package vibes assigns descriptive tag-strength pairs to enriched cities
// using keyword, score-threshold, and membership rules with manual overrides.
package vibes

import "github.com/google/uuid"

// Tag groups.
const (
	GroupLifestyle   = "lifestyle"
	GroupCulture     = "culture"
	GroupPace        = "pace"
	GroupValues      = "values"
	GroupEnvironment = "environment"
)

// Tag is one taxonomy entry. IDs are stable external identifiers shared with
// the consuming database.
type Tag struct {
	Name  string
	Group string
	ID    uuid.UUID
}

// Taxonomy is the fixed tag set. Strengths always reference these names.
var Taxonomy = []Tag{
	{Name: "Walkable", Group: GroupLifestyle, ID: uuid.MustParse("a1000000-0000-0000-0000-000000000001")},
	{Name: "Nightlife", Group: GroupLifestyle, ID: uuid.MustParse("a1000000-0000-0000-0000-000000000002")},
	{Name: "Foodie", Group: GroupLifestyle, ID: uuid.MustParse("a1000000-0000-0000-0000-000000000003")},
	{Name: "Beach Life", Group: GroupLifestyle, ID: uuid.MustParse("a1000000-0000-0000-0000-000000000004")},
	{Name: "Outdoorsy", Group: GroupLifestyle, ID: uuid.MustParse("a1000000-0000-0000-0000-000000000005")},
	{Name: "Coffee Culture", Group: GroupLifestyle, ID: uuid.MustParse("a1000000-0000-0000-0000-000000000006")},
	{Name: "Luxury", Group: GroupLifestyle, ID: uuid.MustParse("a1000000-0000-0000-0000-000000000007")},
	{Name: "Arts & Music", Group: GroupCulture, ID: uuid.MustParse("a2000000-0000-0000-0000-000000000001")},
	{Name: "Historic", Group: GroupCulture, ID: uuid.MustParse("a2000000-0000-0000-0000-000000000002")},
	{Name: "Cosmopolitan", Group: GroupCulture, ID: uuid.MustParse("a2000000-0000-0000-0000-000000000003")},
	{Name: "Bohemian", Group: GroupCulture, ID: uuid.MustParse("a2000000-0000-0000-0000-000000000004")},
	{Name: "Fast-Paced", Group: GroupPace, ID: uuid.MustParse("a3000000-0000-0000-0000-000000000001")},
	{Name: "Quiet & Peaceful", Group: GroupPace, ID: uuid.MustParse("a3000000-0000-0000-0000-000000000002")},
	{Name: "LGBTQ+ Friendly", Group: GroupValues, ID: uuid.MustParse("a4000000-0000-0000-0000-000000000001")},
	{Name: "Family Friendly", Group: GroupValues, ID: uuid.MustParse("a4000000-0000-0000-0000-000000000002")},
	{Name: "Eco-Conscious", Group: GroupValues, ID: uuid.MustParse("a4000000-0000-0000-0000-000000000003")},
	{Name: "Startup Hub", Group: GroupEnvironment, ID: uuid.MustParse("a5000000-0000-0000-0000-000000000001")},
	{Name: "Digital Nomad", Group: GroupEnvironment, ID: uuid.MustParse("a5000000-0000-0000-0000-000000000002")},
	{Name: "Student Friendly", Group: GroupEnvironment, ID: uuid.MustParse("a5000000-0000-0000-0000-000000000003")},
	{Name: "Affordable", Group: GroupEnvironment, ID: uuid.MustParse("a5000000-0000-0000-0000-000000000004")},
}

var tagsByName = func() map[string]Tag {
	m := make(map[string]Tag, len(Taxonomy))
	for _, tag := range Taxonomy {
		m[tag.Name] = tag
	}
	return m
}()

// Lookup returns the taxonomy entry for a tag name.
func Lookup(name string) (Tag, bool) {
	tag, ok := tagsByName[name]
	return tag, ok
}
