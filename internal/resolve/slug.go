package resolve

import (
	"crypto/sha1"
	"encoding/hex"
	"regexp"
	"strings"
)

const maxSlugRunes = 70

var nonSlugRun = regexp.MustCompile(`[^\w\p{Han}]+`)

// Slugify turns display text into a URL directory name, keeping word
// characters and CJK ideographs and folding everything else to hyphens.
func Slugify(s string) string {
	s = strings.TrimSpace(s)
	s = nonSlugRun.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	s = strings.ToLower(s)

	runes := []rune(s)
	if len(runes) > maxSlugRunes {
		s = strings.Trim(string(runes[:maxSlugRunes]), "-")
	}
	if s == "" {
		return "item"
	}
	return s
}

// ContentID derives a stable short identifier from the fields that identify
// a property. Unlike row position, it survives rows being inserted, removed
// or reordered in the sheet, so detail-page URLs stay put as unrelated
// listings come and go.
func ContentID(name, address, area string) string {
	sum := sha1.Sum([]byte(name + "|" + address + "|" + area))
	return hex.EncodeToString(sum[:])[:10]
}
