package types

import "strings"

// PageKind identifies which template a page is rendered with.
type PageKind string

// Page kinds emitted by the graph builder.
const (
	PageHome    PageKind = "home"
	PageListing PageKind = "listing"
	PageArea    PageKind = "area"
	PageTag     PageKind = "tag"
	PagePrice   PageKind = "price"
	PageKeyword PageKind = "keyword"
)

// Page describes one page to be emitted, decoupled from its rendered form.
// The full page set of a build is the single source of truth for both
// rendering and sitemap generation.
type Page struct {
	Path    string   // output path relative to the site root, e.g. "area/xitun/index.html"
	Kind    PageKind
	Payload any
}

// URLPath returns the canonical URL path for the page ("" for the home page,
// "area/xitun/" for directory-style pages).
func (p Page) URLPath() string {
	if p.Path == "index.html" {
		return ""
	}
	return strings.TrimSuffix(p.Path, "index.html")
}

// Card is one entry in a list page (home, category, keyword).
type Card struct {
	Href  string
	Title string
	Meta  string
}

// MapMarker is the home-page map payload for one listing with resolved
// coordinates. Listings without a geocoded point get no marker at all.
type MapMarker struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Area  string  `json:"area"`
	Href  string  `json:"href"`
	Price string  `json:"price,omitempty"`
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
}

// HashtagLink is a tag chip on a detail page linking to a keyword entry page.
type HashtagLink struct {
	Label string
	Href  string
}

// HomePayload is the payload for the home page.
type HomePayload struct {
	Title    string
	Subtitle string
	Cards    []Card
	Markers  []MapMarker
}

// ListingPayload is the payload for a per-listing detail page.
type ListingPayload struct {
	Listing  *Listing
	Point    *Point // nil when the address did not geocode
	Hashtags []HashtagLink
	BackHref string
}

// CategoryPayload is the payload for area, tag, price and keyword index pages.
type CategoryPayload struct {
	Kind     PageKind
	Name     string
	Slug     string
	Intro    string
	Cards    []Card
	BackHref string
}

// CategoryGroup is a named bucket of listings sharing an area, feature tag or
// price bucket, ordered newest-first. Computed fresh each build.
type CategoryGroup struct {
	Kind     PageKind
	Name     string
	Slug     string
	Listings []*Listing
}
