package rendering

import (
	"encoding/json"
	"html/template"

	"github.com/jonathan/listing-site-builder/internal/types"
)

// ListingJSONLD builds the schema.org RealEstateListing block embedded in
// every detail page head.
func ListingJSONLD(l *types.Listing, pageURL, description string, site SiteInfo) (template.JS, error) {
	doc := map[string]any{
		"@context":    "https://schema.org",
		"@type":       "RealEstateListing",
		"name":        l.Name,
		"description": description,
	}
	if pageURL != "" {
		doc["url"] = pageURL
	}
	if l.ImageURL != "" {
		doc["image"] = l.ImageURL
	}
	if l.Address != "" {
		doc["address"] = map[string]any{
			"@type":           "PostalAddress",
			"streetAddress":   l.Address,
			"addressLocality": l.Area,
			"addressCountry":  "TW",
		}
	}
	if l.PriceText != "" {
		offer := map[string]any{
			"@type":         "Offer",
			"priceCurrency": "TWD",
		}
		if l.PriceNumeric != nil {
			// Sheet prices are in units of 萬 (ten thousand TWD).
			offer["price"] = *l.PriceNumeric * 10000
		}
		doc["offers"] = offer
	}
	if site.ContactName != "" {
		agent := map[string]any{
			"@type": "RealEstateAgent",
			"name":  site.ContactName,
		}
		if site.ContactPhone != "" {
			agent["telephone"] = site.ContactPhone
		}
		doc["provider"] = agent
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return "", err
	}
	return template.JS(raw), nil
}

// markersJSON encodes the home-page map markers for the inline map script.
func markersJSON(markers []types.MapMarker) (template.JS, error) {
	if markers == nil {
		markers = []types.MapMarker{}
	}
	raw, err := json.Marshal(markers)
	if err != nil {
		return "", err
	}
	return template.JS(raw), nil
}
