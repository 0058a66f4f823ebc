package rows

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// SheetsSource reads rows from a Google Sheet via the Sheets API.
// The first row of the range is treated as the header.
type SheetsSource struct {
	SpreadsheetID string
	ReadRange     string // e.g. "listings!A1:Z"
	APIKey        string
}

// NewSheetsSource returns a source backed by the Google Sheets API.
func NewSheetsSource(spreadsheetID, readRange, apiKey string) *SheetsSource {
	if readRange == "" {
		readRange = "A1:Z"
	}
	return &SheetsSource{
		SpreadsheetID: spreadsheetID,
		ReadRange:     readRange,
		APIKey:        apiKey,
	}
}

// Fetch reads the configured range. The sheet must be readable with an API
// key (link-visible); per-user OAuth is deliberately not supported here.
func (s *SheetsSource) Fetch(ctx context.Context) ([]Row, error) {
	svc, err := sheets.NewService(ctx, option.WithAPIKey(s.APIKey))
	if err != nil {
		return nil, &SourceError{Source: s.SpreadsheetID, Cause: fmt.Errorf("create sheets client: %w", err)}
	}

	resp, err := svc.Spreadsheets.Values.Get(s.SpreadsheetID, s.ReadRange).Context(ctx).Do()
	if err != nil {
		return nil, &SourceError{Source: s.SpreadsheetID, Cause: fmt.Errorf("read range %s: %w", s.ReadRange, err)}
	}
	if len(resp.Values) == 0 {
		return nil, &SourceError{Source: s.SpreadsheetID, Cause: fmt.Errorf("range %s is empty", s.ReadRange)}
	}

	header := toStrings(resp.Values[0])
	var out []Row
	for _, record := range resp.Values[1:] {
		row := NewRow(header, toStrings(record))
		if row.Empty() {
			continue
		}
		out = append(out, row)
	}
	return out, nil
}

func toStrings(cells []any) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = fmt.Sprint(c)
	}
	return out
}
