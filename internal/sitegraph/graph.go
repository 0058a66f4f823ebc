// Package sitegraph turns the resolved listing set into the complete page
// set for one build. The returned pages are the single source of truth:
// every path in the output directory after a build corresponds to exactly
// one page produced here.
package sitegraph

import (
	"fmt"
	"strings"

	"github.com/jonathan/listing-site-builder/internal/types"
)

// Options controls page-set construction.
type Options struct {
	SiteTitle         string
	SiteSubtitle      string
	MaxKeywords       int // keyword entry pages one listing may feed
	MaxPerKeywordPage int // listings shown on one keyword page
	MaxHashtags       int // tag chips on one detail page
}

// DefaultOptions mirrors the caps used in production.
func DefaultOptions() Options {
	return Options{
		SiteTitle:         "物件整理",
		MaxKeywords:       5,
		MaxPerKeywordPage: 20,
		MaxHashtags:       10,
	}
}

// Build produces the full page set for the given active listings and their
// resolved coordinates (keyed by listing ID; absent means no marker).
// Listings are assumed to be in ingestion order, oldest first; every list
// page presents them newest-first.
func Build(listings []*types.Listing, points map[string]*types.Point, opts Options) []types.Page {
	applyDefaults(&opts)
	uniquifySlugs(listings)

	newestFirst := reversed(listings)
	keywords := collectKeywords(newestFirst, opts)

	pages := make([]types.Page, 0, len(listings)+8)
	pages = append(pages, homePage(newestFirst, points, opts))

	for _, l := range listings {
		pages = append(pages, listingPage(l, points[l.ID], keywords, opts))
	}

	for _, group := range buildGroups(newestFirst) {
		pages = append(pages, categoryPage(group))
	}

	for _, kw := range keywords {
		pages = append(pages, keywordPage(kw, opts))
	}

	return pages
}

func applyDefaults(opts *Options) {
	def := DefaultOptions()
	if opts.SiteTitle == "" {
		opts.SiteTitle = def.SiteTitle
	}
	if opts.MaxKeywords <= 0 {
		opts.MaxKeywords = def.MaxKeywords
	}
	if opts.MaxPerKeywordPage <= 0 {
		opts.MaxPerKeywordPage = def.MaxPerKeywordPage
	}
	if opts.MaxHashtags <= 0 {
		opts.MaxHashtags = def.MaxHashtags
	}
}

// uniquifySlugs suffixes the content ID onto any slug that would collide
// with an earlier listing's, so two similarly named listings cannot write
// over each other's detail page.
func uniquifySlugs(listings []*types.Listing) {
	seen := make(map[string]struct{}, len(listings))
	for _, l := range listings {
		if _, taken := seen[l.Slug]; taken {
			l.Slug = l.Slug + "-" + l.ID
		}
		seen[l.Slug] = struct{}{}
	}
}

func reversed(listings []*types.Listing) []*types.Listing {
	out := make([]*types.Listing, len(listings))
	for i, l := range listings {
		out[len(listings)-1-i] = l
	}
	return out
}

func homePage(newestFirst []*types.Listing, points map[string]*types.Point, opts Options) types.Page {
	payload := &types.HomePayload{
		Title:    opts.SiteTitle,
		Subtitle: opts.SiteSubtitle,
	}

	// Featured listings lead, each block newest-first.
	for _, featured := range []bool{true, false} {
		for _, l := range newestFirst {
			if l.IsFeatured != featured {
				continue
			}
			payload.Cards = append(payload.Cards, types.Card{
				Href:  "./" + l.Slug + "/",
				Title: cardTitle(l),
				Meta:  cardMeta(l),
			})
		}
	}

	// Markers only for listings that actually geocoded; an unresolved
	// address omits the marker rather than pinning 0,0.
	for _, l := range newestFirst {
		point := points[l.ID]
		if point == nil {
			continue
		}
		payload.Markers = append(payload.Markers, types.MapMarker{
			ID:    l.ID,
			Name:  l.Name,
			Area:  l.Area,
			Href:  l.Slug + "/",
			Price: l.PriceText,
			Lat:   point.Lat,
			Lng:   point.Lng,
		})
	}

	return types.Page{Path: "index.html", Kind: types.PageHome, Payload: payload}
}

func listingPage(l *types.Listing, point *types.Point, keywords []*keywordGroup, opts Options) types.Page {
	payload := &types.ListingPayload{
		Listing:  l,
		Point:    point,
		Hashtags: hashtagsFor(l, keywords, opts),
		BackHref: "../index.html",
	}
	return types.Page{Path: l.Slug + "/index.html", Kind: types.PageListing, Payload: payload}
}

// cardTitle is the one-line heading used on every list page.
func cardTitle(l *types.Listing) string {
	parts := []string{l.Area, l.Name}
	if l.Layout != "" {
		parts = append(parts, l.Layout)
	}
	return strings.Join(parts, "｜")
}

// cardMeta is the secondary line: layout, size, parking, price.
func cardMeta(l *types.Listing) string {
	var parts []string
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
		parts = append(parts, priceLabel(l))
	}
	return strings.Join(parts, " ")
}

func priceLabel(l *types.Listing) string {
	if l.PriceNumeric != nil {
		return fmt.Sprintf("%d萬", *l.PriceNumeric)
	}
	return l.PriceText
}
