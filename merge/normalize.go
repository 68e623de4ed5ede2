package merge

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Key canonicalizes an administrative-unit name for joining: lower-case,
// diacritics stripped, and every separator (whitespace, hyphens,
// underscores, apostrophes) removed. "Nouakchott-Nord", "nouakchott nord"
// and "NOUAKCHOTTNORD" all map to "nouakchottnord"; "M'Bagne" and
// "Mbagne" agree too. Idempotent.
func Key(s string) string {
	folded, _, err := transform.String(stripAccents, strings.ToLower(s))
	if err != nil {
		folded = strings.ToLower(s)
	}

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		if unicode.IsSpace(r) || r == '-' || r == '_' || r == '\'' || r == '’' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
