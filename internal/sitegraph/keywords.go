package sitegraph

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jonathan/listing-site-builder/internal/categories"
	"github.com/jonathan/listing-site-builder/internal/resolve"
	"github.com/jonathan/listing-site-builder/internal/types"
)

// roadFragment pulls the road/street segment out of an address, the piece
// people actually search for.
var roadFragment = regexp.MustCompile(`[^\s，,]{1,12}(路|街|大道|巷)`)

// keywordGroup is one keyword entry page and the listings it points at,
// newest-first.
type keywordGroup struct {
	Keyword  string
	Slug     string
	AreaHint string // area of the first listing seen, used in the intro text
	Listings []*types.Listing
}

// keywordsFor returns the search keywords one listing feeds: the sheet's
// explicit keywords first, then derived ones (name, area, road), capped so a
// single listing cannot flood the keyword namespace.
func keywordsFor(l *types.Listing, limit int) []string {
	road := extractRoad(l.Address)

	candidates := make([]string, 0, len(l.Keywords)+8)
	candidates = append(candidates, l.Keywords...)
	if l.Name != "" && l.Name != "住宅物件" {
		candidates = append(candidates, l.Name, l.Name+" 房價", l.Name+" 行情")
	}
	if l.Area != "" {
		candidates = append(candidates, l.Area, l.Area+" 買房")
	}
	if road != "" {
		candidates = append(candidates, road, road+" 房價")
	}
	if l.Layout != "" && l.Area != "" {
		candidates = append(candidates, l.Area+" "+l.Layout)
	}

	seen := make(map[string]struct{}, len(candidates))
	var out []string
	for _, c := range candidates {
		c = strings.Join(strings.Fields(c), " ")
		if c == "" {
			continue
		}
		key := categories.GroupKey(c)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, c)
		if len(out) == limit {
			break
		}
	}
	return out
}

// collectKeywords builds the keyword groups across all listings,
// newest-first input preserved as member order.
func collectKeywords(newestFirst []*types.Listing, opts Options) []*keywordGroup {
	var groups []*keywordGroup
	index := make(map[string]*keywordGroup)

	for _, l := range newestFirst {
		for _, kw := range keywordsFor(l, opts.MaxKeywords) {
			key := categories.GroupKey(kw)
			group, ok := index[key]
			if !ok {
				group = &keywordGroup{
					Keyword:  kw,
					Slug:     resolve.Slugify(kw),
					AreaHint: l.Area,
				}
				index[key] = group
				groups = append(groups, group)
			}
			group.Listings = append(group.Listings, l)
		}
	}
	return groups
}

// keywordPage renders one keyword entry page. Each carries a generated
// intro paragraph so the page is more than a bare link list.
func keywordPage(kw *keywordGroup, opts Options) types.Page {
	shown := kw.Listings
	if len(shown) > opts.MaxPerKeywordPage {
		shown = shown[:opts.MaxPerKeywordPage]
	}

	payload := &types.CategoryPayload{
		Kind:     types.PageKeyword,
		Name:     kw.Keyword,
		Slug:     kw.Slug,
		Intro:    keywordIntro(kw.Keyword, kw.AreaHint, len(kw.Listings)),
		BackHref: "../../index.html",
	}
	for _, l := range shown {
		payload.Cards = append(payload.Cards, types.Card{
			Href:  "../../" + l.Slug + "/",
			Title: cardTitle(l),
			Meta:  cardMeta(l),
		})
	}

	return types.Page{
		Path:    "k/" + kw.Slug + "/index.html",
		Kind:    types.PageKeyword,
		Payload: payload,
	}
}

// keywordIntro generates the short entry paragraph for a keyword page.
func keywordIntro(keyword, areaHint string, count int) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("你正在搜尋「%s」相關資訊，通常代表你已經在比價或鎖定特定社區、路段。", keyword))
	if areaHint != "" {
		sb.WriteString(fmt.Sprintf("這裡先以「%s」作為範圍整理，方便快速對照條件與價位帶。", areaHint))
	}
	if count > 0 {
		sb.WriteString(fmt.Sprintf("目前整理到 %d 筆相關條件頁，可以先看格局、車位、坪數與大致價格。", count))
	}
	sb.WriteString("想確認細節或補充條件，歡迎直接用頁面下方的方式聯絡。")
	return sb.String()
}

// hashtagsFor builds the tag chips shown on a detail page, each linking to
// the matching keyword entry page.
func hashtagsFor(l *types.Listing, keywords []*keywordGroup, opts Options) []types.HashtagLink {
	index := make(map[string]*keywordGroup, len(keywords))
	for _, kw := range keywords {
		index[categories.GroupKey(kw.Keyword)] = kw
	}

	candidates := make([]string, 0, 8)
	if l.Name != "" {
		candidates = append(candidates, l.Name)
	}
	if l.Area != "" {
		candidates = append(candidates, l.Area)
	}
	if road := extractRoad(l.Address); road != "" {
		candidates = append(candidates, road)
	}
	candidates = append(candidates, l.Keywords...)

	seen := make(map[string]struct{}, len(candidates))
	var out []types.HashtagLink
	for _, c := range candidates {
		key := categories.GroupKey(c)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		kw, ok := index[key]
		if !ok {
			continue // only link chips that have a live keyword page
		}
		out = append(out, types.HashtagLink{
			Label: "#" + kw.Keyword,
			Href:  "../k/" + kw.Slug + "/",
		})
		if len(out) == opts.MaxHashtags {
			break
		}
	}
	return out
}

func extractRoad(address string) string {
	return roadFragment.FindString(address)
}
