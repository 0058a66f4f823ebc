package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/listing-site-builder/internal/rows"
)

func row(pairs ...string) rows.Row {
	header := make([]string, 0, len(pairs)/2)
	values := make([]string, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		header = append(header, pairs[i])
		values = append(values, pairs[i+1])
	}
	return rows.NewRow(header, values)
}

func TestResolve_ExactBeforeFragment(t *testing.T) {
	r := row("售價備註", "面議", "價格", "1200萬")

	// "價格" matches exactly even though "售價" appears as a fragment earlier
	// in row order.
	got := Resolve(r, []string{"價格", "總價", "售價"}, "")
	assert.Equal(t, "1200萬", got)
}

func TestResolve_FragmentFallback(t *testing.T) {
	r := row("物件總價(萬)", "980")

	got := Resolve(r, []string{"價格", "總價", "售價"}, "")
	assert.Equal(t, "980", got)
}

func TestResolve_FirstMatchInRowOrder(t *testing.T) {
	// Two columns contain the same fragment; the first in row order wins.
	r := row("總價A", "100", "總價B", "200")
	assert.Equal(t, "100", Resolve(r, []string{"總價"}, ""))
}

func TestResolve_SkipsEmptyValues(t *testing.T) {
	r := row("價格", "", "總價", "850萬")
	assert.Equal(t, "850萬", Resolve(r, []string{"價格", "總價"}, ""))
}

func TestResolve_Fallback(t *testing.T) {
	r := row("別的欄位", "x")
	assert.Equal(t, "預設", Resolve(r, []string{"價格"}, "預設"))
}

func TestResolve_FullWidthAndSpacedHeaders(t *testing.T) {
	r := row(" 價格（萬） ", "1380")
	assert.Equal(t, "1380", Resolve(r, []string{"價格"}, ""))
}

func TestExtractNumber(t *testing.T) {
	tests := []struct {
		raw  string
		want *int
	}{
		{"1,200萬", intPtr(1200)},
		{"２４８０萬", intPtr(2480)},
		{"約 980 萬", intPtr(980)},
		{"面議", nil},
		{"", nil},
	}
	for _, tt := range tests {
		got := ExtractNumber(tt.raw)
		if tt.want == nil {
			assert.Nil(t, got, "ExtractNumber(%q)", tt.raw)
		} else {
			require.NotNil(t, got, "ExtractNumber(%q)", tt.raw)
			assert.Equal(t, *tt.want, *got, "ExtractNumber(%q)", tt.raw)
		}
	}
}

func intPtr(n int) *int { return &n }

func TestSlugify(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"台中市西區-宏台美術館", "台中市西區-宏台美術館"},
		{"A宅 (新案)", "a宅-新案"},
		{"  ", "item"},
		{"!!!", "item"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.raw), "Slugify(%q)", tt.raw)
	}
}

func TestContentID_StableAcrossReordering(t *testing.T) {
	a := ContentID("宏台美術館", "台中市西區五權三街", "台中市西區")
	b := ContentID("宏台美術館", "台中市西區五權三街", "台中市西區")
	c := ContentID("別的案子", "台中市北區", "台中市北區")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 10)
}

func TestFromRow_SpecExample(t *testing.T) {
	r := row("案名", "A宅", "狀態", "ON", "價格", "1,200萬", "區域", "台中市西區")

	l := FromRow(r)
	require.NotNil(t, l.PriceNumeric)
	assert.Equal(t, 1200, *l.PriceNumeric)
	assert.Equal(t, "1200-1600萬", l.PriceBucket)
	assert.True(t, l.IsActive)
}

func TestFromRow_Defaults(t *testing.T) {
	l := FromRow(row("未知欄位", "x"))

	assert.Equal(t, "住宅物件", l.Name)
	assert.Equal(t, "台中市", l.Area)
	assert.Nil(t, l.PriceNumeric)
	assert.Equal(t, "價格未定", l.PriceBucket) // total-ness: bucket never empty
	assert.True(t, l.IsActive)
	assert.NotEmpty(t, l.ID)
	assert.NotEmpty(t, l.Slug)
}

func TestFromRow_SlugFromName(t *testing.T) {
	l := FromRow(row("案名", "宏台美術館", "區域", "台中市西區"))
	assert.Equal(t, "宏台美術館", l.Slug)
}

func TestFromRow_NonURLLinksDropped(t *testing.T) {
	l := FromRow(row("案名", "A宅", "連結", "看留言", "圖片", "https://img.example/a.jpg"))
	assert.Equal(t, "", l.ExternalLink)
	assert.Equal(t, "https://img.example/a.jpg", l.ImageURL)
}

func TestFromRows_ExcludesInactive(t *testing.T) {
	active := FromRows([]rows.Row{
		row("案名", "A宅", "狀態", "ON"),
		row("案名", "B宅", "狀態", "OFF"),
		row("案名", "C宅", "狀態", "下架"),
	})

	require.Len(t, active, 1)
	assert.Equal(t, "A宅", active[0].Name)
}
