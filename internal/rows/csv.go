package rows

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jonathan/listing-site-builder/internal/fetch"
)

// CSVSource reads rows from a CSV export, either a local file or a published
// spreadsheet URL. The first record is the header row.
type CSVSource struct {
	Path string // local file path; takes precedence when set
	URL  string // published-CSV URL, fetched over HTTP
}

// NewCSVFileSource returns a source backed by a local CSV file.
func NewCSVFileSource(path string) *CSVSource {
	return &CSVSource{Path: path}
}

// NewCSVURLSource returns a source backed by a published-CSV URL.
func NewCSVURLSource(url string) *CSVSource {
	return &CSVSource{URL: url}
}

// Fetch reads and decodes all rows. Any failure is a SourceError; the caller
// treats it as fatal for the build.
func (s *CSVSource) Fetch(ctx context.Context) ([]Row, error) {
	data, origin, err := s.read(ctx)
	if err != nil {
		return nil, &SourceError{Source: origin, Cause: err}
	}

	parsed, err := parseCSV(data)
	if err != nil {
		return nil, &SourceError{Source: origin, Cause: err}
	}
	return parsed, nil
}

func (s *CSVSource) read(ctx context.Context) ([]byte, string, error) {
	if s.Path != "" {
		data, err := os.ReadFile(s.Path)
		if err != nil {
			return nil, s.Path, fmt.Errorf("read csv file: %w", err)
		}
		return data, s.Path, nil
	}
	if s.URL != "" {
		result, err := fetch.URL(ctx, s.URL, nil)
		if err != nil {
			return nil, s.URL, fmt.Errorf("fetch csv export: %w", err)
		}
		return result.Body, s.URL, nil
	}
	return nil, "(unset)", fmt.Errorf("csv source has neither path nor url")
}

// parseCSV decodes CSV bytes into rows keyed by the header record.
// A UTF-8 BOM on the first header cell is stripped; spreadsheet exports
// commonly carry one.
func parseCSV(data []byte) ([]Row, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1 // ragged rows are tolerated; missing cells become ""

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("csv export is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\uFEFF")
	}

	var out []Row
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv record: %w", err)
		}
		row := NewRow(header, record)
		if row.Empty() {
			continue
		}
		out = append(out, row)
	}
	return out, nil
}
