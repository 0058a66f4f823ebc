package rendering

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/listing-site-builder/internal/types"
)

func testSite() SiteInfo {
	return SiteInfo{
		Title:        "物件整理",
		BaseURL:      "https://example.com",
		ContactName:  "王小明",
		ContactPhone: "0912345678",
	}
}

func render(t *testing.T, page types.Page) *goquery.Document {
	t.Helper()
	r, err := NewHTMLRenderer(testSite())
	require.NoError(t, err)

	out, err := r.Render(page)
	require.NoError(t, err)

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(out))
	require.NoError(t, err)
	return doc
}

func sampleListing() *types.Listing {
	price := 1280
	return &types.Listing{
		ID:           "ab12cd34ef",
		Slug:         "惠宇觀市政",
		Name:         "惠宇觀市政",
		Area:         "台中市西屯區",
		Address:      "台中市西屯區市政路100號",
		Layout:       "3房2廳",
		Size:         "42.5",
		Parking:      "平面車位",
		PriceText:    "1,280萬",
		PriceNumeric: &price,
		PriceBucket:  "1200-1600萬",
		Description:  "近市政府站，高樓層視野戶。",
		ImageURL:     "https://img.example.com/a.jpg",
		IsActive:     true,
	}
}

func TestRenderHomePage(t *testing.T) {
	page := types.Page{
		Path: "index.html",
		Kind: types.PageHome,
		Payload: &types.HomePayload{
			Title:    "物件整理",
			Subtitle: "台中市精選物件",
			Cards: []types.Card{
				{Href: "./惠宇觀市政/", Title: "台中市西屯區｜惠宇觀市政", Meta: "3房2廳 1280萬"},
			},
			Markers: []types.MapMarker{
				{ID: "ab12cd34ef", Name: "惠宇觀市政", Area: "台中市西屯區", Href: "惠宇觀市政/", Lat: 24.16, Lng: 120.64},
			},
		},
	}

	doc := render(t, page)

	assert.Equal(t, "物件整理", doc.Find("h1").Text())
	assert.Equal(t, 1, doc.Find("#map").Length())

	link := doc.Find(".card a").First()
	href, _ := link.Attr("href")
	assert.Equal(t, "./惠宇觀市政/", href)

	// Marker data reaches the map script.
	script := doc.Find("script").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return strings.Contains(s.Text(), "var markers")
	})
	require.Equal(t, 1, script.Length())
	assert.Contains(t, script.Text(), "24.16")

	canonical, _ := doc.Find(`link[rel="canonical"]`).Attr("href")
	assert.Equal(t, "https://example.com/", canonical)
}

func TestRenderHomePage_NoMarkersNoMap(t *testing.T) {
	page := types.Page{
		Path:    "index.html",
		Kind:    types.PageHome,
		Payload: &types.HomePayload{Title: "物件整理"},
	}

	doc := render(t, page)
	assert.Equal(t, 0, doc.Find("#map").Length())
}

func TestRenderListingPage(t *testing.T) {
	l := sampleListing()
	page := types.Page{
		Path: l.Slug + "/index.html",
		Kind: types.PageListing,
		Payload: &types.ListingPayload{
			Listing:  l,
			Point:    &types.Point{Lat: 24.16, Lng: 120.64},
			Hashtags: []types.HashtagLink{{Label: "#惠宇觀市政", Href: "../k/惠宇觀市政/"}},
			BackHref: "../index.html",
		},
	}

	doc := render(t, page)

	assert.Equal(t, l.Name, doc.Find("h1").Text())
	assert.Contains(t, doc.Find("title").Text(), "台中市西屯區")
	assert.Contains(t, doc.Find("dl.detail").Text(), "3房2廳")

	back, _ := doc.Find("a.back").Attr("href")
	assert.Equal(t, "../index.html", back)

	chip := doc.Find(".hashtags a").First()
	assert.Equal(t, "#惠宇觀市政", chip.Text())
	chipHref, _ := chip.Attr("href")
	assert.Equal(t, "../k/惠宇觀市政/", chipHref)
}

func TestRenderListingPage_JSONLD(t *testing.T) {
	page := types.Page{
		Path:    "惠宇觀市政/index.html",
		Kind:    types.PageListing,
		Payload: &types.ListingPayload{Listing: sampleListing(), BackHref: "../index.html"},
	}

	doc := render(t, page)

	raw := doc.Find(`script[type="application/ld+json"]`).Text()
	require.NotEmpty(t, raw)

	var ld map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &ld))
	assert.Equal(t, "RealEstateListing", ld["@type"])
	assert.Equal(t, "惠宇觀市政", ld["name"])
	assert.Equal(t, "https://example.com/惠宇觀市政/", ld["url"])

	offer := ld["offers"].(map[string]any)
	assert.Equal(t, float64(12800000), offer["price"]) // 萬 converted to TWD

	agent := ld["provider"].(map[string]any)
	assert.Equal(t, "王小明", agent["name"])
}

func TestRenderCategoryPage(t *testing.T) {
	page := types.Page{
		Path: "k/國美特區/index.html",
		Kind: types.PageKeyword,
		Payload: &types.CategoryPayload{
			Kind:     types.PageKeyword,
			Name:     "國美特區",
			Slug:     "國美特區",
			Intro:    "你正在搜尋「國美特區」相關資訊。",
			BackHref: "../../index.html",
			Cards:    []types.Card{{Href: "../../惠宇觀市政/", Title: "台中市西區｜惠宇觀市政", Meta: "3房2廳"}},
		},
	}

	doc := render(t, page)

	assert.Equal(t, "國美特區", doc.Find("h1").Text())
	assert.Contains(t, doc.Find("p.intro").Text(), "國美特區")
	assert.Contains(t, doc.Find("title").Text(), "國美特區")

	href, _ := doc.Find(".card a").First().Attr("href")
	assert.Equal(t, "../../惠宇觀市政/", href)
}

func TestRenderUnknownPayloadFails(t *testing.T) {
	r, err := NewHTMLRenderer(testSite())
	require.NoError(t, err)

	_, err = r.Render(types.Page{Path: "x/index.html", Kind: "bogus", Payload: 42})
	require.Error(t, err)

	var renderErr *RenderError
	assert.ErrorAs(t, err, &renderErr)
}

func TestRenderWithoutBaseURL_NoCanonical(t *testing.T) {
	r, err := NewHTMLRenderer(SiteInfo{Title: "物件整理"})
	require.NoError(t, err)

	out, err := r.Render(types.Page{
		Path:    "index.html",
		Kind:    types.PageHome,
		Payload: &types.HomePayload{Title: "物件整理"},
	})
	require.NoError(t, err)

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 0, doc.Find(`link[rel="canonical"]`).Length())
}
