// Package pipeline provides the high-level orchestration for one site build.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/listing-site-builder/internal/geocode"
	"github.com/jonathan/listing-site-builder/internal/observability"
	"github.com/jonathan/listing-site-builder/internal/publish"
	"github.com/jonathan/listing-site-builder/internal/rendering"
	"github.com/jonathan/listing-site-builder/internal/resolve"
	"github.com/jonathan/listing-site-builder/internal/rows"
	"github.com/jonathan/listing-site-builder/internal/sitegraph"
	"github.com/jonathan/listing-site-builder/internal/types"
)

// ProgressEvent represents a progress update during a build
type ProgressEvent struct {
	Step    string `json:"step"`
	Message string `json:"message"`
	RunID   string `json:"run_id,omitempty"`
	Count   int    `json:"count,omitempty"`
}

// ProgressCallback is called when build progress occurs
type ProgressCallback func(event ProgressEvent)

// Build step names reported through progress events.
const (
	StepFetchRows = "fetch_rows"
	StepResolve   = "resolve_listings"
	StepGeocode   = "geocode"
	StepSitegraph = "build_pages"
	StepRender    = "render"
	StepPublish   = "publish"
)

// RunOptions holds configuration for running one build
type RunOptions struct {
	Source    rows.Source // Required: where listing rows come from
	OutputDir string
	CachePath string

	Site sitegraph.Options
	Info rendering.SiteInfo

	GeocoderEndpoint string
	GeocoderEmail    string
	GeocodeDelay     time.Duration
	GeocodeRetries   int

	// Lookup and Store override the Nominatim client and file cache,
	// used by tests to run a build without network or disk.
	Lookup geocode.Lookup
	Store  geocode.Store

	Verbose    bool
	OnProgress ProgressCallback

	// Now stamps sitemap lastmod; defaults to time.Now.
	Now func() time.Time
}

// Result summarizes a completed build.
type Result struct {
	RunID     uuid.UUID
	RowCount  int
	Listings  int
	Geocoded  int
	PageCount int
	Documents int
}

// emitProgress calls the progress callback if configured
func emitProgress(opts *RunOptions, runID uuid.UUID, step, message string, count int) {
	if opts.OnProgress != nil {
		opts.OnProgress(ProgressEvent{
			Step:    step,
			Message: message,
			RunID:   runID.String(),
			Count:   count,
		})
	}
}

// RunBuild orchestrates the full build: fetch rows, resolve listings,
// geocode, build the page set, render, and reconcile the output directory.
// Everything is rendered in memory before anything on disk is touched, so a
// failure at any step leaves the previously published site intact.
func RunBuild(ctx context.Context, opts RunOptions) (*Result, error) {
	printer := observability.NewPrinter(os.Stdout)
	runID := uuid.New()
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	fmt.Printf("Build %s\n", runID)

	// Step 1: Fetch rows. A source failure is fatal before any deletion.
	fmt.Printf("Step 1/6: Fetching listing rows...\n")
	rowSet, err := opts.Source.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching rows failed: %w", err)
	}
	emitProgress(&opts, runID, StepFetchRows, fmt.Sprintf("Fetched %d rows", len(rowSet)), len(rowSet))

	// Step 2: Resolve rows into listings; inactive rows drop out here.
	fmt.Printf("Step 2/6: Resolving listings...\n")
	listings := resolve.FromRows(rowSet)
	if opts.Verbose {
		printer.PrintSourceSummary(len(rowSet), listings)
	}
	emitProgress(&opts, runID, StepResolve, fmt.Sprintf("Resolved %d active listings", len(listings)), len(listings))

	// Step 3: Geocode addresses through the cache.
	fmt.Printf("Step 3/6: Geocoding addresses...\n")
	points, unresolved, resolver, err := geocodeListings(ctx, &opts, listings)
	if err != nil {
		return nil, err
	}
	if opts.Verbose {
		printer.PrintGeocodeSummary(resolver.CacheHits(), resolver.ExternalCalls(), unresolved)
	}
	emitProgress(&opts, runID, StepGeocode, fmt.Sprintf("Resolved %d of %d addresses", len(points), len(listings)), len(points))

	// Step 4: Build the page set.
	fmt.Printf("Step 4/6: Building page set...\n")
	pages := sitegraph.Build(listings, points, opts.Site)
	if opts.Verbose {
		printer.PrintPageSummary(pages)
	}
	emitProgress(&opts, runID, StepSitegraph, fmt.Sprintf("Built %d pages", len(pages)), len(pages))

	// Step 5: Render every page in memory.
	fmt.Printf("Step 5/6: Rendering pages...\n")
	docs, err := renderAll(pages, opts.Info, now())
	if err != nil {
		return nil, err
	}
	emitProgress(&opts, runID, StepRender, fmt.Sprintf("Rendered %d documents", len(docs)), len(docs))

	// Step 6: Reconcile the output directory.
	fmt.Printf("Step 6/6: Publishing to %s...\n", opts.OutputDir)
	if err := publish.New(opts.OutputDir).Publish(docs); err != nil {
		return nil, fmt.Errorf("publishing failed: %w", err)
	}
	emitProgress(&opts, runID, StepPublish, fmt.Sprintf("Published %d documents", len(docs)), len(docs))

	if opts.Verbose {
		printer.PrintPublishSummary(opts.OutputDir, len(docs))
	} else {
		fmt.Printf("Done! Site written to %s\n", opts.OutputDir)
	}

	return &Result{
		RunID:     runID,
		RowCount:  len(rowSet),
		Listings:  len(listings),
		Geocoded:  len(points),
		PageCount: len(pages),
		Documents: len(docs),
	}, nil
}

// geocodeListings resolves coordinates for every listing with an address.
// Cache problems degrade to an empty cache; a listing that cannot be
// resolved loses its marker and nothing else.
func geocodeListings(ctx context.Context, opts *RunOptions, listings []*types.Listing) (map[string]*types.Point, []string, *geocode.Resolver, error) {
	store := opts.Store
	if store == nil {
		store = geocode.NewFileStore(opts.CachePath)
	}
	if err := store.Load(); err != nil {
		fmt.Printf("Warning: failed to load geocode cache: %v\n", err)
	}

	lookup := opts.Lookup
	if lookup == nil {
		lookup = geocode.NewClient(opts.GeocoderEndpoint, opts.GeocoderEmail)
	}

	resolverOpts := geocode.DefaultResolverOptions()
	if opts.GeocodeDelay > 0 {
		resolverOpts.Delay = opts.GeocodeDelay
	}
	if opts.GeocodeRetries > 0 {
		resolverOpts.MaxRetries = opts.GeocodeRetries
	}
	resolverOpts.Verbose = opts.Verbose
	resolver := geocode.NewResolver(lookup, store, resolverOpts)

	points := make(map[string]*types.Point)
	var unresolved []string
	for _, l := range listings {
		if l.Address == "" {
			continue
		}
		if ctx.Err() != nil {
			return nil, nil, nil, ctx.Err()
		}
		if point := resolver.Resolve(ctx, l.Address); point != nil {
			points[l.ID] = point
		} else {
			unresolved = append(unresolved, l.Address)
		}
	}

	if err := store.Save(); err != nil {
		fmt.Printf("Warning: failed to save geocode cache: %v\n", err)
	}
	return points, unresolved, resolver, nil
}

// renderAll renders the page set plus sitemap.xml and robots.txt.
func renderAll(pages []types.Page, info rendering.SiteInfo, buildTime time.Time) ([]publish.Document, error) {
	renderer, err := rendering.NewHTMLRenderer(info)
	if err != nil {
		return nil, fmt.Errorf("initializing renderer failed: %w", err)
	}

	docs := make([]publish.Document, 0, len(pages)+2)
	for _, page := range pages {
		body, err := renderer.Render(page)
		if err != nil {
			return nil, fmt.Errorf("rendering %s failed: %w", page.Path, err)
		}
		docs = append(docs, publish.Document{Path: page.Path, Body: body})
	}

	sitemap, err := publish.Sitemap(pages, info.BaseURL, buildTime)
	if err != nil {
		return nil, fmt.Errorf("building sitemap failed: %w", err)
	}
	docs = append(docs, publish.Document{Path: "sitemap.xml", Body: sitemap})
	docs = append(docs, publish.Document{Path: "robots.txt", Body: publish.Robots(info.BaseURL)})
	return docs, nil
}
