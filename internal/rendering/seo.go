package rendering

import (
	"strings"

	"github.com/jonathan/listing-site-builder/internal/types"
)

const maxDescriptionRunes = 155

// SEOTitle builds the detail-page <title>: area and name first, then the
// strongest differentiators that fit on one line.
func SEOTitle(l *types.Listing) string {
	parts := []string{}
	if l.Area != "" {
		parts = append(parts, l.Area)
	}
	parts = append(parts, l.Name)
	if l.Layout != "" {
		parts = append(parts, l.Layout)
	}
	if l.PriceBucket != "" {
		parts = append(parts, l.PriceBucket)
	}
	return strings.Join(parts, "｜")
}

// SEODescription builds the meta description, clipped to a search-snippet
// friendly length.
func SEODescription(l *types.Listing) string {
	var parts []string
	if l.Area != "" {
		parts = append(parts, l.Area)
	}
	parts = append(parts, l.Name)
	if l.Layout != "" {
		parts = append(parts, l.Layout)
	}
	if l.Size != "" {
		parts = append(parts, l.Size+"坪")
	}
	if l.Parking != "" {
		parts = append(parts, l.Parking)
	}
	if l.PriceText != "" {
		parts = append(parts, "價格 "+l.PriceText)
	}

	desc := strings.Join(parts, "，") + "。"
	if l.Description != "" {
		desc += l.Description
	}
	return clipRunes(desc, maxDescriptionRunes)
}

func clipRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}
