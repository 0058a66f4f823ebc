package resolve

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/width"
)

var digitRun = regexp.MustCompile(`[0-9]+`)

// ExtractNumber pulls the first integer out of a free-text numeric field,
// tolerating thousands separators, full-width digits and unit suffixes
// ("1,200萬" → 1200). It returns nil — never zero — when no digit run is
// present, so missing data is not mistaken for a real value of zero.
func ExtractNumber(s string) *int {
	s = width.Narrow.String(s)
	s = strings.NewReplacer(",", "", "，", "").Replace(s)

	match := digitRun.FindString(s)
	if match == "" {
		return nil
	}
	n, err := strconv.Atoi(match)
	if err != nil {
		return nil
	}
	return &n
}
