package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/listing-site-builder/internal/config"
	"github.com/jonathan/listing-site-builder/internal/pipeline"
	"github.com/jonathan/listing-site-builder/internal/rendering"
	"github.com/jonathan/listing-site-builder/internal/rows"
	"github.com/jonathan/listing-site-builder/internal/sitegraph"
)

var buildCommand = &cobra.Command{
	Use:   "build",
	Short: "Build the full site from the configured row source",
	Long: `Fetches the listing rows, resolves fields and categories, geocodes addresses
through the local cache, and rewrites the output directory so it exactly
mirrors the current spreadsheet.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runBuildCmd,
}

var (
	buildConfigPath   string
	buildCSVPath      string
	buildCSVURL       string
	buildSheetID      string
	buildSheetRange   string
	buildSheetsAPIKey string
	buildOutputDir    string
	buildCachePath    string
	buildBaseURL      string
	buildSiteTitle    string
	buildVerbose      bool
)

func init() {
	// Config file flag (processed first)
	buildCommand.Flags().StringVar(&buildConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	buildCommand.Flags().StringVar(&buildCSVPath, "csv", "", "Path to a local CSV export (mutually exclusive with --csv-url and --sheet-id)")
	buildCommand.Flags().StringVar(&buildCSVURL, "csv-url", "", "Published-CSV URL (mutually exclusive with --csv and --sheet-id)")
	buildCommand.Flags().StringVar(&buildSheetID, "sheet-id", "", "Google Sheets spreadsheet ID (mutually exclusive with --csv and --csv-url)")
	buildCommand.Flags().StringVar(&buildSheetRange, "sheet-range", "", "A1 range to read from the sheet")
	buildCommand.Flags().StringVarP(&buildOutputDir, "output", "o", "", "Site root to reconcile")
	buildCommand.Flags().StringVar(&buildCachePath, "cache", "", "Geocode cache file")
	buildCommand.Flags().StringVar(&buildBaseURL, "base-url", "", "Public site URL, enables canonical/sitemap URLs")
	buildCommand.Flags().StringVar(&buildSiteTitle, "title", "", "Site title shown on the home page")
	buildCommand.Flags().BoolVarP(&buildVerbose, "verbose", "v", false, "Print detailed build information")

	// API key can be passed as a flag, or read from env var SHEETS_API_KEY
	buildCommand.Flags().StringVar(&buildSheetsAPIKey, "sheets-api-key", "", "Google Sheets API Key (optional, defaults to SHEETS_API_KEY env var)")

	rootCmd.AddCommand(buildCommand)
}

func runBuildCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	// Step 1: Load config file if provided
	var cfg config.Config
	if buildConfigPath != "" {
		loadedCfg, err := config.LoadConfig(buildConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loadedCfg
		if buildVerbose {
			_, _ = fmt.Fprintf(os.Stdout, "Loaded config from: %s\n", buildConfigPath)
		}
	}

	// Step 2: Apply CLI overrides (command-line args take priority)
	// Only override if the flag was explicitly set
	if cmd.Flags().Changed("csv") {
		cfg.CSVPath = buildCSVPath
	}
	if cmd.Flags().Changed("csv-url") {
		cfg.CSVURL = buildCSVURL
	}
	if cmd.Flags().Changed("sheet-id") {
		cfg.SheetID = buildSheetID
	}
	if cmd.Flags().Changed("sheet-range") {
		cfg.SheetRange = buildSheetRange
	}
	if cmd.Flags().Changed("sheets-api-key") {
		cfg.SheetsAPIKey = buildSheetsAPIKey
	}
	if cmd.Flags().Changed("output") {
		cfg.OutputDir = buildOutputDir
	}
	if cmd.Flags().Changed("cache") {
		cfg.CachePath = buildCachePath
	}
	if cmd.Flags().Changed("base-url") {
		cfg.BaseURL = buildBaseURL
	}
	if cmd.Flags().Changed("title") {
		cfg.SiteTitle = buildSiteTitle
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = buildVerbose
	}

	// Step 3: Apply defaults for unset values, then validate
	cfg = cfg.MergeWithDefaults(config.Defaults())
	if err := cfg.Validate(); err != nil {
		return err
	}

	// Step 4: API key handling for the Sheets source
	if cfg.SheetID != "" && cfg.SheetsAPIKey == "" {
		cfg.SheetsAPIKey = os.Getenv("SHEETS_API_KEY")
	}

	opts, err := makeRunOptions(cfg)
	if err != nil {
		return err
	}

	_, err = pipeline.RunBuild(ctx, opts)
	return err
}

// makeRunOptions turns the merged config into pipeline options, picking the
// row source from whichever of csv/csv-url/sheet-id is set.
func makeRunOptions(cfg config.Config) (pipeline.RunOptions, error) {
	var source rows.Source
	switch {
	case cfg.CSVPath != "":
		source = rows.NewCSVFileSource(cfg.CSVPath)
	case cfg.CSVURL != "":
		source = rows.NewCSVURLSource(cfg.CSVURL)
	case cfg.SheetID != "":
		if cfg.SheetsAPIKey == "" {
			return pipeline.RunOptions{}, fmt.Errorf("SHEETS_API_KEY environment variable or --sheets-api-key flag is required with --sheet-id")
		}
		source = rows.NewSheetsSource(cfg.SheetID, cfg.SheetRange, cfg.SheetsAPIKey)
	default:
		return pipeline.RunOptions{}, fmt.Errorf("a row source is required: provide --csv, --csv-url or --sheet-id (via flag or config)")
	}

	return pipeline.RunOptions{
		Source:    source,
		OutputDir: cfg.OutputDir,
		CachePath: cfg.CachePath,
		Site: sitegraph.Options{
			SiteTitle:         cfg.SiteTitle,
			SiteSubtitle:      cfg.SiteSubtitle,
			MaxKeywords:       cfg.MaxKeywords,
			MaxPerKeywordPage: cfg.MaxPerKeywordPage,
			MaxHashtags:       cfg.MaxHashtags,
		},
		Info: rendering.SiteInfo{
			Title:        cfg.SiteTitle,
			BaseURL:      cfg.BaseURL,
			ContactName:  cfg.ContactName,
			ContactPhone: cfg.ContactPhone,
			ContactLine:  cfg.ContactLine,
		},
		GeocoderEndpoint: cfg.GeocoderEndpoint,
		GeocoderEmail:    cfg.GeocoderEmail,
		GeocodeDelay:     time.Duration(cfg.GeocodeDelayMS) * time.Millisecond,
		GeocodeRetries:   cfg.GeocodeRetries,
		Verbose:          cfg.Verbose,
	}, nil
}
