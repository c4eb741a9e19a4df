package vibes

import "strings"

// Rules holds the lookup tables the assignment engine consults. Callers
// usually start from DefaultRules and substitute individual tables in tests.
type Rules struct {
	CoastalKeywords   []string
	HistoricKeywords  []string
	NatureKeywords    []string
	BohemianKeywords  []string
	FoodKeywords      []string
	ArtMusicKeywords  []string
	NightlifeKeywords []string
	LuxuryKeywords    []string
	EcoKeywords       []string
	CoffeeKeywords    []string

	WalkableCities       map[string]struct{}
	CoffeeCultureCities  map[string]struct{}
	FamilyFriendlyCities map[string]struct{}
	DigitalNomadCities   map[string]struct{}
	LGBTQFriendlyCities  map[string]struct{}
	StartupHubCities     map[string]struct{}
	StudentCities        map[string]struct{}

	SEAsianCountries    map[string]struct{}
	SouthAsianCountries map[string]struct{}
	AffordableCountries map[string]struct{}
}

// DefaultRules returns the built-in keyword lists and membership sets.
func DefaultRules() Rules {
	seAsian := set("Thailand", "Vietnam", "Cambodia", "Laos", "Indonesia",
		"Philippines", "Myanmar", "Malaysia")
	southAsian := set("India", "Nepal", "Sri Lanka")

	affordable := make(map[string]struct{})
	for country := range seAsian {
		affordable[country] = struct{}{}
	}
	for country := range southAsian {
		affordable[country] = struct{}{}
	}
	for _, country := range []string{
		"Bolivia", "Guatemala", "Morocco", "Egypt", "Tanzania", "Zambia",
		"Mexico", "Colombia", "Peru", "Ecuador", "Georgia", "Uzbekistan",
		"China", "Jordan",
	} {
		affordable[country] = struct{}{}
	}

	return Rules{
		CoastalKeywords: []string{
			"beach", "coast", "island", "sea", "ocean", "lagoon", "reef",
			"shore", "bay", "harbor", "port", "surf", "snorkel", "diving",
			"overwater", "caribbean", "mediterranean", "coral", "waterfront",
			"seaside", "tropical", "palm",
		},
		HistoricKeywords: []string{
			"ancient", "medieval", "colonial", "heritage", "temple", "ruin",
			"unesco", "historic", "century", "old town", "palace", "fort",
			"dynasty", "kingdom", "castle", "church", "mosque", "monastery",
			"pagoda", "stupa", "tomb", "cathedral",
		},
		NatureKeywords: []string{
			"mountain", "hiking", "trek", "gorge", "canyon", "waterfall",
			"jungle", "forest", "volcano", "glacier", "alpine", "lake",
			"river", "nature", "wildlife", "national park", "cave", "karst",
			"fjord", "valley",
		},
		BohemianKeywords: []string{
			"bohemian", "artsy", "backpacker", "yoga", "spiritual", "laid-back",
			"hippy", "alternative", "creative", "indie", "surf", "vibe",
		},
		FoodKeywords: []string{
			"food", "cuisine", "culinary", "gastronom", "restaurant", "market",
			"street food", "foodie", "ramen", "tapas", "spice", "wine",
			"chocolate", "tasting", "chef",
		},
		ArtMusicKeywords: []string{
			"art", "museum", "gallery", "music", "jazz", "dance", "theater",
			"festival", "cultural", "craft", "design", "performance", "opera",
			"salsa", "reggae", "samba",
		},
		NightlifeKeywords: []string{
			"nightlife", "party", "club", "bar", "pub", "beach club", "vibrant",
			"buzzing", "nightclub",
		},
		LuxuryKeywords: []string{
			"luxury", "upscale", "glamorous", "palatial", "exclusive", "boutique",
			"overwater", "five-star", "premium", "posh",
		},
		EcoKeywords: []string{
			"eco", "sustainable", "conservation", "wildlife", "organic",
			"pristine", "mangrove", "protected", "sanctuary",
		},
		CoffeeKeywords: []string{"coffee", "cafe", "tea", "bakeries"},

		WalkableCities: set(
			"bruges", "dubrovnik", "kotor", "hallstatt", "cinque-terre", "amalfi",
			"positano", "santorini", "mykonos", "hvar", "cesky-krumlov", "valletta",
			"sintra", "colmar", "san-sebastian", "lucerne", "lake-bled", "mostar",
			"hoi-an", "luang-prabang", "cusco", "antigua-guatemala", "cartagena",
			"san-miguel-de-allende", "san-juan", "nara", "kamakura", "kanazawa",
			"fez", "marrakech", "chefchaouen", "galle", "jaipur", "udaipur",
			"varanasi", "pondicherry", "kochi", "samarkand", "bukhara",
			"willemstad", "bridgetown", "oaxaca", "faro", "rhodes", "corfu",
			"antalya", "macau", "tainan", "jiufen",
		),
		CoffeeCultureCities: set(
			"chiang-mai", "ubud", "hanoi", "dalat", "oaxaca", "san-miguel-de-allende",
			"bruges", "colmar", "lucerne", "luang-prabang", "hoi-an",
			"cameron-highlands", "ipoh", "galle", "pondicherry", "kanazawa",
			"cusco", "cartagena", "cesky-krumlov", "bandung", "ella",
			"antigua-guatemala", "fukuoka", "sapporo",
		),
		FamilyFriendlyCities: set(
			"queenstown", "rotorua", "nadi", "rarotonga", "lucerne", "interlaken",
			"bruges", "crete", "rhodes", "corfu", "nassau", "punta-cana",
			"san-juan", "antalya", "langkawi", "sapporo", "hakone", "nara",
			"kanazawa", "jeju", "hualien", "lake-bled", "faro", "rovaniemi",
			"bridgetown", "montego-bay", "lake-como",
		),
		DigitalNomadCities: set(
			"chiang-mai", "ubud", "da-nang", "hoi-an", "penang", "playa-del-carmen",
			"tulum", "oaxaca", "goa", "seminyak", "koh-samui", "phuket",
			"colombo", "cartagena", "batumi", "cebu", "hanoi", "dalat",
			"fukuoka", "caye-caulker", "pai", "koh-lanta", "san-juan",
			"san-miguel-de-allende",
		),
		LGBTQFriendlyCities: set(
			"mykonos", "san-sebastian", "san-juan", "willemstad", "bridgetown",
			"cartagena", "playa-del-carmen", "tulum", "queenstown", "dubrovnik",
			"hvar", "bruges", "colmar", "sintra", "faro", "valletta", "batumi",
			"oaxaca", "san-miguel-de-allende", "seminyak", "ubud",
		),
		StartupHubCities: set("fukuoka"),
		StudentCities: set(
			"cusco", "antigua-guatemala", "san-sebastian", "oaxaca", "faro",
		),

		SEAsianCountries:    seAsian,
		SouthAsianCountries: southAsian,
		AffordableCountries: affordable,
	}
}

func set(members ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(members))
	for _, member := range members {
		m[member] = struct{}{}
	}
	return m
}

func hasKeyword(text string, keywords []string) bool {
	lower := strings.ToLower(text)
	for _, keyword := range keywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

func keywordCount(text string, keywords []string) int {
	lower := strings.ToLower(text)
	count := 0
	for _, keyword := range keywords {
		if strings.Contains(lower, keyword) {
			count++
		}
	}
	return count
}
