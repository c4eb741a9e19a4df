package ingest_test

import (
	"testing"

	"cityforge/internal/ingest"
	"cityforge/internal/textutil"
)

func TestIsJunkWordBoundaries(t *testing.T) {
	cases := []struct {
		line string
		junk bool
	}{
		// "rank" inside "Frankfurt" must not match.
		{"Frankfurt, Germany", false},
		{"rank 12 overall", true},
		{"three-way tie", true},
		{"Tieling, China", false},
		{"Ruhr region grouping", true},
		{"Linz (Austria)/ similar ~90", true},
		{"Gdansk / Sopot / Gdynia", true},
		{"Rotterdam – often grouped with The Hague", true},
		{"metro area only", true},
		{"Metropolis, Illinois", false},
		{"ambiguous entry", true},
		{"Astana (Nur-Sultan), Kazakhstan", false},
	}
	for _, tc := range cases {
		if got := ingest.IsJunk(tc.line); got != tc.junk {
			t.Errorf("IsJunk(%q) = %v, want %v", tc.line, got, tc.junk)
		}
	}
}

func TestIsJunkDetectsNormalizedEmDash(t *testing.T) {
	line := textutil.NormalizePunctuation("Istanbul — often counted as both")
	if !ingest.IsJunk(line) {
		t.Fatalf("em-dash annotation should remain detectable after normalization: %q", line)
	}
}

func TestCleanLine(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Modesto, CA.", "Modesto, CA"},
		{"Lagos, Nigeria //", "Lagos, Nigeria"},
		{"Istanbul, Turkey (often counted as both Europe and Asia)", "Istanbul, Turkey"},
		{"Leeds (regional) , United Kingdom", "Leeds , United Kingdom"},
		{"  Quito, Ecuador  ", "Quito, Ecuador"},
	}
	for _, tc := range cases {
		if got := ingest.CleanLine(tc.in); got != tc.want {
			t.Errorf("CleanLine(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
