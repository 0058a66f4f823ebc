package geocode

import (
	"strings"

	"golang.org/x/text/width"
)

// NormalizeAddress canonicalizes an address before cache lookup or external
// query: full-width characters folded to narrow, the 臺/台 variant unified,
// whitespace collapsed. Two spellings of the same address must hit the same
// cache entry.
func NormalizeAddress(s string) string {
	s = width.Narrow.String(s)
	s = strings.ReplaceAll(s, "臺", "台")
	return strings.Join(strings.Fields(s), " ")
}
