package textutil

import "strings"

// punctuationReplacer maps Unicode punctuation variants found in the source
// lists to canonical ASCII. Em-dashes become en-dashes instead of hyphens so
// they stay detectable as editorial-annotation markers downstream.
var punctuationReplacer = strings.NewReplacer(
	"‑", "-", // non-breaking hyphen
	"‐", "-", // hyphen
	"—", "–", // em-dash -> en-dash
	"‘", "'",
	"’", "'",
	"“", `"`,
	"”", `"`,
)

// NormalizePunctuation canonicalizes directional quotes and hyphen/dash
// variants in a raw source line.
func NormalizePunctuation(line string) string {
	return punctuationReplacer.Replace(line)
}
