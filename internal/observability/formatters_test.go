package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/listing-site-builder/internal/types"
)

func TestPrintSourceSummary(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	listings := []*types.Listing{
		{Name: "惠宇觀市政", Area: "台中市西屯區", PriceBucket: "1200-1600萬"},
		{Name: "宏台美術館", Area: "台中市西區", PriceBucket: "1600-2000萬"},
	}

	p.PrintSourceSummary(3, listings)
	output := buf.String()

	assert.Contains(t, output, "SHEET SUMMARY")
	assert.Contains(t, output, "Rows fetched:     3")
	assert.Contains(t, output, "Active listings:  2")
	assert.Contains(t, output, "Excluded:         1")
	assert.Contains(t, output, "惠宇觀市政")
}

func TestPrintSourceSummary_ManyListingsTruncated(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	var listings []*types.Listing
	for i := 0; i < 8; i++ {
		listings = append(listings, &types.Listing{Name: "宅", Area: "台中市", PriceBucket: "價格未定"})
	}

	p.PrintSourceSummary(8, listings)

	assert.Contains(t, buf.String(), "... and 3 more")
}

func TestPrintGeocodeSummary(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintGeocodeSummary(12, 3, []string{"台中市西區五權三街100號"})
	output := buf.String()

	assert.Contains(t, output, "GEOCODING")
	assert.Contains(t, output, "Cache hits:       12")
	assert.Contains(t, output, "External calls:   3")
	assert.Contains(t, output, "Unresolved:       1")
	assert.Contains(t, output, "五權三街")
}

func TestPrintPageSummary(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	pages := []types.Page{
		{Path: "index.html", Kind: types.PageHome},
		{Path: "a/index.html", Kind: types.PageListing},
		{Path: "b/index.html", Kind: types.PageListing},
		{Path: "area/x/index.html", Kind: types.PageArea},
	}

	p.PrintPageSummary(pages)
	output := buf.String()

	assert.Contains(t, output, "PAGE SET")
	assert.Contains(t, output, "Total pages: 4")
	assert.Contains(t, output, "listing")
}

func TestPrintPublishSummary(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintPublishSummary("/tmp/site", 17)
	output := buf.String()

	assert.Contains(t, output, "PUBLISHED 17 FILES")
	assert.Contains(t, output, "/tmp/site")
}

func TestPrintBox_LongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintGeocodeSummary(0, 0, []string{strings.Repeat("台中市西屯區市政北七路惠來路口", 4)})
	output := buf.String()

	// Should contain box characters and keep rows inside the frame.
	assert.True(t, strings.Contains(output, "┌"))
	assert.True(t, strings.Contains(output, "└"))
	assert.True(t, strings.Contains(output, "│"))
}
