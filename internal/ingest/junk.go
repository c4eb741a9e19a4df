package ingest

import (
	"regexp"
	"strings"
)

// junkWordPatterns match whole annotation words only. Word boundaries matter:
// "Frankfurt" must not trip the "rank" pattern.
var junkWordPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\btie\b`),
	regexp.MustCompile(`\bregion\b`),
	regexp.MustCompile(`\bmetro\b`),
	regexp.MustCompile(`\bgrouping\b`),
	regexp.MustCompile(`\bambiguous\b`),
	regexp.MustCompile(`\brank\b`),
	regexp.MustCompile(`\bsimilar\b`),
}

// IsJunk reports whether a normalized line is an editorial annotation rather
// than a city entry.
func IsJunk(line string) bool {
	low := strings.ToLower(line)
	for _, pattern := range junkWordPatterns {
		if pattern.MatchString(low) {
			return true
		}
	}
	// Compound or ambiguous entries: "A / B".
	if strings.Contains(line, " / ") {
		return true
	}
	// A slash next to a parenthetical, e.g. "Linz (Austria)/ similar ~90".
	if strings.Contains(line, "/") && strings.Contains(line, "(") {
		return true
	}
	// En-dash survives punctuation normalization precisely so annotations
	// stay detectable here.
	if strings.Contains(line, "–") {
		return true
	}
	return false
}
