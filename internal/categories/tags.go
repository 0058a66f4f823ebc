// Package categories derives tag sets and price buckets from canonical
// listings. Everything here is pure: no I/O, identical output for identical
// input.
package categories

import "strings"

// tagDelimiters are the characters a free-text tag field is split on,
// including the full-width forms spreadsheet users actually type.
const tagDelimiters = ",;|/\n，、；｜／"

// SplitTags splits a free-text tag field into individual tags. Pieces are
// trimmed, empties dropped and duplicates removed; the first appearance of a
// tag fixes both its position and its display form.
func SplitTags(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	pieces := strings.FieldsFunc(raw, func(r rune) bool {
		return strings.ContainsRune(tagDelimiters, r)
	})

	seen := make(map[string]struct{}, len(pieces))
	var out []string
	for _, piece := range pieces {
		tag := collapseWhitespace(piece)
		if tag == "" {
			continue
		}
		key := GroupKey(tag)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, tag)
	}
	return out
}

// GroupKey returns the key under which a tag is grouped into a category page.
// Case and incidental whitespace differences collapse to one key; this is the
// only defense against near-duplicate free-text tags landing in separate
// category pages, and it is not exhaustive (punctuation variants still split).
func GroupKey(tag string) string {
	return strings.ToLower(collapseWhitespace(tag))
}

// collapseWhitespace trims a string and folds internal whitespace runs
// (including full-width spaces) to single spaces.
func collapseWhitespace(s string) string {
	s = strings.ReplaceAll(s, "　", " ")
	return strings.Join(strings.Fields(s), " ")
}
