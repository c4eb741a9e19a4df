package textutil

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// slugStripper decomposes characters and drops combining marks so accented
// letters reduce to their ASCII base ("São" -> "Sao").
var slugStripper = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

var nonSlugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify converts a display name into a lowercase ASCII hyphen-separated
// identifier. The operation is idempotent: slugging a slug returns the same
// slug.
func Slugify(name string) string {
	stripped, _, err := transform.String(slugStripper, name)
	if err != nil {
		stripped = name
	}
	var b strings.Builder
	b.Grow(len(stripped))
	for _, r := range stripped {
		if r < 128 {
			b.WriteRune(r)
		}
	}
	s := strings.ToLower(strings.TrimSpace(b.String()))
	s = nonSlugPattern.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
