package resolve

import (
	"strings"

	"github.com/jonathan/listing-site-builder/internal/categories"
	"github.com/jonathan/listing-site-builder/internal/rows"
	"github.com/jonathan/listing-site-builder/internal/types"
)

// Candidate header fragments per logical field, in preference order. The
// upstream sheet has been through several column renames; fragments cover
// the variants seen so far.
var (
	nameCandidates     = []string{"案名", "名稱", "物件名稱", "社區"}
	areaCandidates     = []string{"區域", "地區", "行政區"}
	typeCandidates     = []string{"類型", "型態", "物件類型"}
	priceCandidates    = []string{"價格", "總價", "售價"}
	bucketCandidates   = []string{"價格帶", "價格區間"}
	addressCandidates  = []string{"地址", "住址", "位置"}
	layoutCandidates   = []string{"格局", "房型"}
	sizeCandidates     = []string{"坪數", "面積"}
	parkingCandidates  = []string{"車位", "停車位"}
	descCandidates     = []string{"描述", "說明", "簡介"}
	imageCandidates    = []string{"圖片", "照片"}
	linkCandidates     = []string{"連結", "網址"}
	statusCandidates   = []string{"狀態", "上架", "刊登"}
	featuredCandidates = []string{"精選", "推薦", "主打"}
	stateTagCandidates = []string{"狀態標籤", "進度"}
	featureCandidates  = []string{"特色", "標籤", "賣點"}
	keywordCandidates  = []string{"關鍵字", "搜尋詞"}
)

// Fallbacks for the fields every page needs.
const (
	fallbackName = "住宅物件"
	fallbackArea = "台中市"
)

// inactiveValues mark a listing as taken off the site. Anything else,
// including an absent status column, means active.
var inactiveValues = map[string]struct{}{
	"off": {}, "下架": {}, "0": {}, "false": {}, "n": {}, "否": {},
}

// featuredValues mark a listing as featured on the home page.
var featuredValues = map[string]struct{}{
	"on": {}, "1": {}, "true": {}, "y": {}, "是": {}, "精選": {},
}

// FromRow resolves one spreadsheet row into a canonical listing. Missing or
// unparseable fields fall back to defaults; a row never aborts the build.
func FromRow(row rows.Row) *types.Listing {
	name := Resolve(row, nameCandidates, fallbackName)
	area := Resolve(row, areaCandidates, fallbackArea)
	address := Resolve(row, addressCandidates, "")
	priceText := Resolve(row, priceCandidates, "")
	layout := Resolve(row, layoutCandidates, "")

	priceNumeric := ExtractNumber(priceText)
	derived := categories.Derive(
		Resolve(row, stateTagCandidates, ""),
		Resolve(row, featureCandidates, ""),
		Resolve(row, bucketCandidates, ""),
		priceNumeric,
	)

	listing := &types.Listing{
		ID:           ContentID(name, address, area),
		Slug:         Slugify(name),
		Name:         name,
		Area:         area,
		PropertyType: Resolve(row, typeCandidates, ""),
		PriceText:    priceText,
		PriceNumeric: priceNumeric,
		Address:      address,
		Layout:       layout,
		Size:         Resolve(row, sizeCandidates, ""),
		Parking:      Resolve(row, parkingCandidates, ""),
		Description:  Resolve(row, descCandidates, ""),
		ImageURL:     urlOrEmpty(Resolve(row, imageCandidates, "")),
		ExternalLink: urlOrEmpty(Resolve(row, linkCandidates, "")),
		IsActive:     isActive(Resolve(row, statusCandidates, "")),
		IsFeatured:   isFeatured(Resolve(row, featuredCandidates, "")),
		StateTags:    derived.StateTags,
		FeatureTags:  derived.FeatureTags,
		Keywords:     categories.SplitTags(Resolve(row, keywordCandidates, "")),
		PriceBucket:  derived.PriceBucket,
	}
	return listing
}

// FromRows resolves every row and drops inactive listings, which must not
// appear in any downstream structure.
func FromRows(all []rows.Row) []*types.Listing {
	active := make([]*types.Listing, 0, len(all))
	for _, row := range all {
		listing := FromRow(row)
		if !listing.IsActive {
			continue
		}
		active = append(active, listing)
	}
	return active
}

func isActive(status string) bool {
	_, off := inactiveValues[strings.ToLower(strings.TrimSpace(status))]
	return !off
}

func isFeatured(flag string) bool {
	_, on := featuredValues[strings.ToLower(strings.TrimSpace(flag))]
	return on
}

func urlOrEmpty(s string) string {
	if strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") {
		return s
	}
	return ""
}
