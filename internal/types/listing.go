// Package types provides type definitions for structured data used throughout the site builder.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Listing is the canonical, normalized representation of one property.
// It is built once per run from a spreadsheet row and is immutable afterwards.
type Listing struct {
	ID           string   `json:"id"`   // short content hash of name+address+area; stable across row reordering
	Slug         string   `json:"slug"` // URL directory name for the detail page
	Name         string   `json:"name"`
	Area         string   `json:"area"`
	PropertyType string   `json:"property_type,omitempty"`
	PriceText    string   `json:"price_text,omitempty"`
	PriceNumeric *int     `json:"price_numeric,omitempty"` // in 萬 (10k TWD); nil when not stated
	Address      string   `json:"address,omitempty"`
	Layout       string   `json:"layout,omitempty"` // e.g. 3房2廳2衛
	Size         string   `json:"size,omitempty"`   // in 坪, kept as text
	Parking      string   `json:"parking,omitempty"`
	Description  string   `json:"description,omitempty"`
	ImageURL     string   `json:"image_url,omitempty"`
	ExternalLink string   `json:"external_link,omitempty"`
	IsActive     bool     `json:"is_active"`
	IsFeatured   bool     `json:"is_featured,omitempty"`
	StateTags    []string `json:"state_tags,omitempty"`
	FeatureTags  []string `json:"feature_tags,omitempty"`
	Keywords     []string `json:"keywords,omitempty"` // keyword entry pages this listing feeds
	PriceBucket  string   `json:"price_bucket"`       // always set once derivation has run
}

// Point is a resolved latitude/longitude pair for a listing address.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}
