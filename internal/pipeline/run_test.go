package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/listing-site-builder/internal/geocode"
	"github.com/jonathan/listing-site-builder/internal/rendering"
	"github.com/jonathan/listing-site-builder/internal/rows"
	"github.com/jonathan/listing-site-builder/internal/types"
)

type fakeLookup struct {
	points map[string]*types.Point
	calls  int
}

func (f *fakeLookup) Geocode(_ context.Context, address string) (*types.Point, error) {
	f.calls++
	if point, ok := f.points[address]; ok {
		return point, nil
	}
	return nil, geocode.ErrNotFound
}

const buildCSV = "案名,區域,地址,價格,格局,狀態,特色\n" +
	"惠宇觀市政,台中市西屯區,台中市西屯區市政路100號,\"1,280萬\",3房2廳,ON,近捷運\n" +
	"宏台美術館,台中市西區,台中市西區五權西三街50號,2480萬,4房2廳,ON,學區\n" +
	"下架宅,台中市北區,,999萬,,OFF,\n"

func writeCSV(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rows.csv")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func buildOptions(t *testing.T, csvBody string, lookup geocode.Lookup, store geocode.Store) RunOptions {
	t.Helper()
	return RunOptions{
		Source:    rows.NewCSVFileSource(writeCSV(t, csvBody)),
		OutputDir: filepath.Join(t.TempDir(), "site"),
		Info: rendering.SiteInfo{
			Title:   "物件整理",
			BaseURL: "https://example.com",
		},
		Lookup: lookup,
		Store:  store,
		Now:    func() time.Time { return time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC) },
	}
}

func TestRunBuild_EndToEnd(t *testing.T) {
	lookup := &fakeLookup{points: map[string]*types.Point{
		"台中市西屯區市政路100號": {Lat: 24.16, Lng: 120.64},
	}}
	opts := buildOptions(t, buildCSV, lookup, geocode.NewMemoryStore())

	result, err := RunBuild(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, 3, result.RowCount)
	assert.Equal(t, 2, result.Listings) // OFF row excluded
	assert.Equal(t, 1, result.Geocoded)
	assert.NotEqual(t, "", result.RunID.String())

	assert.FileExists(t, filepath.Join(opts.OutputDir, "index.html"))
	assert.FileExists(t, filepath.Join(opts.OutputDir, "惠宇觀市政", "index.html"))
	assert.FileExists(t, filepath.Join(opts.OutputDir, "area", "台中市西屯區", "index.html"))
	assert.FileExists(t, filepath.Join(opts.OutputDir, "price", "1200-1600萬", "index.html"))
	assert.FileExists(t, filepath.Join(opts.OutputDir, "sitemap.xml"))
	assert.FileExists(t, filepath.Join(opts.OutputDir, "robots.txt"))

	// The inactive row never reaches the output or the sitemap.
	assert.NoDirExists(t, filepath.Join(opts.OutputDir, "下架宅"))
	sitemap, err := os.ReadFile(filepath.Join(opts.OutputDir, "sitemap.xml"))
	require.NoError(t, err)
	assert.NotContains(t, string(sitemap), "下架宅")
	assert.Contains(t, string(sitemap), "<lastmod>2026-08-28</lastmod>")
}

func TestRunBuild_WarmCacheIssuesNoLookups(t *testing.T) {
	lookup := &fakeLookup{points: map[string]*types.Point{
		"台中市西屯區市政路100號": {Lat: 24.16, Lng: 120.64},
	}}
	store := geocode.NewMemoryStore()

	first, err := RunBuild(context.Background(), buildOptions(t, buildCSV, lookup, store))
	require.NoError(t, err)
	callsAfterFirst := lookup.calls
	require.Positive(t, callsAfterFirst)

	second, err := RunBuild(context.Background(), buildOptions(t, buildCSV, lookup, store))
	require.NoError(t, err)

	// Failed addresses are cached negatives too, so the second build makes
	// zero external calls and produces the same page count.
	assert.Equal(t, callsAfterFirst, lookup.calls)
	assert.Equal(t, first.PageCount, second.PageCount)
	assert.Equal(t, first.Geocoded, second.Geocoded)
}

func TestRunBuild_RemovedListingDisappears(t *testing.T) {
	lookup := &fakeLookup{points: map[string]*types.Point{}}
	store := geocode.NewMemoryStore()

	opts := buildOptions(t, buildCSV, lookup, store)
	_, err := RunBuild(context.Background(), opts)
	require.NoError(t, err)
	assert.DirExists(t, filepath.Join(opts.OutputDir, "宏台美術館"))

	// Rebuild into the same output dir with only the first listing.
	shrunk := "案名,區域,地址,價格,格局,狀態,特色\n" +
		"惠宇觀市政,台中市西屯區,台中市西屯區市政路100號,\"1,280萬\",3房2廳,ON,近捷運\n"
	next := buildOptions(t, shrunk, lookup, store)
	next.OutputDir = opts.OutputDir
	_, err = RunBuild(context.Background(), next)
	require.NoError(t, err)

	assert.NoDirExists(t, filepath.Join(opts.OutputDir, "宏台美術館"))
	assert.NoDirExists(t, filepath.Join(opts.OutputDir, "tag", "學區"))
	assert.DirExists(t, filepath.Join(opts.OutputDir, "惠宇觀市政"))
}

func TestRunBuild_SourceFailureLeavesSiteUntouched(t *testing.T) {
	lookup := &fakeLookup{points: map[string]*types.Point{}}
	store := geocode.NewMemoryStore()

	opts := buildOptions(t, buildCSV, lookup, store)
	_, err := RunBuild(context.Background(), opts)
	require.NoError(t, err)

	broken := opts
	broken.Source = rows.NewCSVFileSource(filepath.Join(t.TempDir(), "missing.csv"))
	_, err = RunBuild(context.Background(), broken)
	require.Error(t, err)

	// The previous site is still fully in place.
	assert.FileExists(t, filepath.Join(opts.OutputDir, "index.html"))
	assert.DirExists(t, filepath.Join(opts.OutputDir, "惠宇觀市政"))
}

func TestRunBuild_ProgressEvents(t *testing.T) {
	lookup := &fakeLookup{points: map[string]*types.Point{}}
	opts := buildOptions(t, buildCSV, lookup, geocode.NewMemoryStore())

	var steps []string
	opts.OnProgress = func(event ProgressEvent) {
		steps = append(steps, event.Step)
		assert.NotEmpty(t, event.RunID)
	}

	_, err := RunBuild(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, []string{StepFetchRows, StepResolve, StepGeocode, StepSitegraph, StepRender, StepPublish}, steps)
}
