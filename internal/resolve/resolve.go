// Package resolve extracts canonical listings from loosely-structured
// spreadsheet rows. Column headers are not contractually stable upstream, so
// every logical field is resolved through an ordered list of candidate
// header fragments.
package resolve

import (
	"strings"

	"golang.org/x/text/width"

	"github.com/jonathan/listing-site-builder/internal/rows"
)

// Resolve returns the first non-empty value for a logical field, trying two
// passes over the candidate fragments: (a) exact match against a normalized
// row key, (b) substring match of a fragment inside any row key. Within a
// pass, candidate order wins; across keys, row order wins. When several
// columns match the same fragment the first in row order is taken — stable
// for a given row, but not something callers may rely on beyond
// repeatability.
func Resolve(row rows.Row, candidates []string, fallback string) string {
	normKeys := make([]string, len(row.Labels))
	for i, label := range row.Labels {
		normKeys[i] = normalizeKey(label)
	}

	// Pass 1: exact key match.
	for _, cand := range candidates {
		nc := normalizeKey(cand)
		for i, key := range normKeys {
			if key == nc && row.Values[row.Labels[i]] != "" {
				return row.Values[row.Labels[i]]
			}
		}
	}

	// Pass 2: fragment containment.
	for _, cand := range candidates {
		nc := normalizeKey(cand)
		if nc == "" {
			continue
		}
		for i, key := range normKeys {
			if strings.Contains(key, nc) && row.Values[row.Labels[i]] != "" {
				return row.Values[row.Labels[i]]
			}
		}
	}

	return fallback
}

// normalizeKey canonicalizes a column header for matching: full-width forms
// folded to their narrow equivalents, whitespace removed, ASCII lowered.
func normalizeKey(s string) string {
	s = width.Narrow.String(s)
	s = strings.Join(strings.Fields(s), "")
	return strings.ToLower(s)
}
