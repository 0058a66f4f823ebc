// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Row source (at most one of csv_path, csv_url, sheet_id)
	CSVPath      string `json:"csv_path,omitempty"`                         // Path to a local CSV export
	CSVURL       string `json:"csv_url,omitempty" validate:"omitempty,url"` // Published-CSV URL
	SheetID      string `json:"sheet_id,omitempty"`                         // Google Sheets spreadsheet ID
	SheetRange   string `json:"sheet_range,omitempty"`                      // A1 range to read, e.g. "工作表1!A1:Z"
	SheetsAPIKey string `json:"sheets_api_key,omitempty"`                   // Google Sheets API key

	// Site identity
	BaseURL      string `json:"base_url,omitempty" validate:"omitempty,url"` // Public site URL, enables canonical/sitemap URLs
	SiteTitle    string `json:"site_title,omitempty"`
	SiteSubtitle string `json:"site_subtitle,omitempty"`
	ContactName  string `json:"contact_name,omitempty"`
	ContactPhone string `json:"contact_phone,omitempty"`
	ContactLine  string `json:"contact_line,omitempty"` // LINE ID shown in the contact block

	// Output
	OutputDir string `json:"output_dir,omitempty"` // Site root the build reconciles
	CachePath string `json:"cache_path,omitempty"` // Geocode cache file

	// Geocoder
	GeocoderEndpoint string `json:"geocoder_endpoint,omitempty" validate:"omitempty,url"`
	GeocoderEmail    string `json:"geocoder_email,omitempty" validate:"omitempty,email"`
	GeocodeDelayMS   int    `json:"geocode_delay_ms,omitempty" validate:"min=0"` // Pause between external lookups
	GeocodeRetries   int    `json:"geocode_retries,omitempty" validate:"min=0"`  // Retries after a transient failure

	// Page caps
	MaxKeywords       int `json:"max_keywords,omitempty" validate:"min=0"`
	MaxPerKeywordPage int `json:"max_per_keyword_page,omitempty" validate:"min=0"`
	MaxHashtags       int `json:"max_hashtags,omitempty" validate:"min=0"`

	// Behavior
	Verbose bool `json:"verbose,omitempty"` // Print detailed build information
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	sources := 0
	if c.CSVPath != "" {
		sources++
	}
	if c.CSVURL != "" {
		sources++
	}
	if c.SheetID != "" {
		sources++
	}
	if sources > 1 {
		return fmt.Errorf("config error: 'csv_path', 'csv_url' and 'sheet_id' are mutually exclusive")
	}

	if c.CSVPath != "" {
		if _, err := os.Stat(c.CSVPath); os.IsNotExist(err) {
			return fmt.Errorf("config error: csv file not found: %s", c.CSVPath)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.CSVPath == "" {
		result.CSVPath = defaults.CSVPath
	}
	if result.CSVURL == "" {
		result.CSVURL = defaults.CSVURL
	}
	if result.SheetID == "" {
		result.SheetID = defaults.SheetID
	}
	if result.SheetRange == "" {
		result.SheetRange = defaults.SheetRange
	}
	if result.SheetsAPIKey == "" {
		result.SheetsAPIKey = defaults.SheetsAPIKey
	}
	if result.BaseURL == "" {
		result.BaseURL = defaults.BaseURL
	}
	if result.SiteTitle == "" {
		result.SiteTitle = defaults.SiteTitle
	}
	if result.SiteSubtitle == "" {
		result.SiteSubtitle = defaults.SiteSubtitle
	}
	if result.ContactName == "" {
		result.ContactName = defaults.ContactName
	}
	if result.ContactPhone == "" {
		result.ContactPhone = defaults.ContactPhone
	}
	if result.ContactLine == "" {
		result.ContactLine = defaults.ContactLine
	}
	if result.OutputDir == "" {
		result.OutputDir = defaults.OutputDir
	}
	if result.CachePath == "" {
		result.CachePath = defaults.CachePath
	}
	if result.GeocoderEndpoint == "" {
		result.GeocoderEndpoint = defaults.GeocoderEndpoint
	}
	if result.GeocoderEmail == "" {
		result.GeocoderEmail = defaults.GeocoderEmail
	}

	// Int fields: use default if zero
	if result.GeocodeDelayMS == 0 {
		result.GeocodeDelayMS = defaults.GeocodeDelayMS
	}
	if result.GeocodeRetries == 0 {
		result.GeocodeRetries = defaults.GeocodeRetries
	}
	if result.MaxKeywords == 0 {
		result.MaxKeywords = defaults.MaxKeywords
	}
	if result.MaxPerKeywordPage == 0 {
		result.MaxPerKeywordPage = defaults.MaxPerKeywordPage
	}
	if result.MaxHashtags == 0 {
		result.MaxHashtags = defaults.MaxHashtags
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// Defaults returns the built-in configuration defaults.
func Defaults() Config {
	return Config{
		SheetRange:     "A1:Z",
		SiteTitle:      "物件整理",
		OutputDir:      "site",
		CachePath:      "geocode-cache.json",
		GeocodeDelayMS: 1000,
		GeocodeRetries: 2,
	}
}
