package catalog

import (
	"fmt"
	"math"
)

// Categories is the fixed score taxonomy. Every enriched city carries exactly
// these 17 entries, each in [0, 10].
var Categories = []string{
	"Housing",
	"Cost of Living",
	"Startups",
	"Venture Capital",
	"Travel Connectivity",
	"Commute",
	"Business Freedom",
	"Safety",
	"Healthcare",
	"Education",
	"Environmental Quality",
	"Economy",
	"Taxation",
	"Internet Access",
	"Leisure & Culture",
	"Tolerance",
	"Outdoors",
}

// ScoreVector maps score categories to 0-10 ratings.
type ScoreVector map[string]float64

// Validate enforces completeness (all 17 categories, nothing extra) and the
// 0-10 value range.
func (sv ScoreVector) Validate() error {
	if len(sv) != len(Categories) {
		return fmt.Errorf("score vector has %d categories, want %d", len(sv), len(Categories))
	}
	for _, category := range Categories {
		value, ok := sv[category]
		if !ok {
			return fmt.Errorf("score vector missing category %q", category)
		}
		if value < 0 || value > 10 {
			return fmt.Errorf("score %q out of range: %v", category, value)
		}
	}
	return nil
}

// Get returns the score for a category, or the fallback when absent.
func (sv ScoreVector) Get(category string, fallback float64) float64 {
	if value, ok := sv[category]; ok {
		return value
	}
	return fallback
}

// ScoreBounds is the clamp band applied to composite scores. The source
// scripts disagreed on the ceiling (75 vs 99); the band is configuration now
// and applied uniformly.
type ScoreBounds struct {
	Floor   float64
	Ceiling float64
}

// Composite derives the single 0-100-scale city score: the score vector mean
// scaled by ten, clamped to the bounds, rounded to one decimal.
func (sv ScoreVector) Composite(bounds ScoreBounds) float64 {
	if len(sv) == 0 {
		return bounds.Floor
	}
	var sum float64
	for _, value := range sv {
		sum += value
	}
	score := sum / float64(len(sv)) * 10
	score = math.Max(bounds.Floor, math.Min(bounds.Ceiling, score))
	return math.Round(score*10) / 10
}
