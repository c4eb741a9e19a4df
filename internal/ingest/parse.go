package ingest

import (
	"regexp"
	"strings"

	"cityforge/internal/catalog"
)

var (
	trailingCommentPattern = regexp.MustCompile(`\s*//\s*$`)
	trailingPeriodPattern  = regexp.MustCompile(`\.\s*$`)
	oftenCountedPattern    = regexp.MustCompile(`\s*\(often counted.*\)\s*$`)
	regionalSuffixPattern  = regexp.MustCompile(`\s*\(regional\)\s*`)
	parentheticalPattern   = regexp.MustCompile(`\s*\(.*?\)\s*`)
)

// CleanLine strips trailing comment markers, trailing periods, and known
// parenthetical annotation suffixes.
func CleanLine(line string) string {
	line = strings.TrimSpace(line)
	line = trailingCommentPattern.ReplaceAllString(line, "")
	line = trailingPeriodPattern.ReplaceAllString(line, "")
	line = oftenCountedPattern.ReplaceAllString(line, "")
	line = regionalSuffixPattern.ReplaceAllString(line, " ")
	return strings.TrimSpace(line)
}

// parseUSLine parses "City, ST" with the state abbreviation expanded.
// Returns false when the line has no separator or no city name.
func parseUSLine(line string, states map[string]string) (catalog.Candidate, bool) {
	line = CleanLine(line)
	if line == "" || !strings.Contains(line, ",") {
		return catalog.Candidate{}, false
	}
	name, rest, _ := strings.Cut(line, ",")
	name = strings.TrimSpace(name)
	if name == "" {
		return catalog.Candidate{}, false
	}
	abbr := strings.ToUpper(strings.TrimSpace(rest))
	state := abbr
	if full, ok := states[abbr]; ok {
		state = full
	}
	return catalog.Candidate{
		Name:          name,
		StateOrRegion: state,
		Country:       "United States",
	}, true
}

// parseInternationalLine parses "City (alias), Country". The country is the
// text after the last comma; parenthetical aliases are dropped, not kept.
func parseInternationalLine(line string) (catalog.Candidate, bool) {
	line = CleanLine(line)
	if line == "" {
		return catalog.Candidate{}, false
	}
	idx := strings.LastIndex(line, ",")
	if idx < 0 {
		return catalog.Candidate{}, false
	}
	cityPart := strings.TrimSpace(line[:idx])
	country := strings.TrimSpace(line[idx+1:])
	name := strings.TrimSpace(parentheticalPattern.ReplaceAllString(cityPart, " "))
	name = strings.Join(strings.Fields(name), " ")
	if name == "" {
		return catalog.Candidate{}, false
	}
	return catalog.Candidate{
		Name:    name,
		Country: country,
	}, true
}
