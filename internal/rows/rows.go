// Package rows provides the tabular row source for the build pipeline.
// A row is an ordered column-label → text mapping; the pipeline only relies
// on label lookup and on row order being stable within one invocation.
package rows

import (
	"context"
	"fmt"
	"strings"
)

// Row is one unprocessed record from the tabular source.
// Labels preserves the spreadsheet column order, which matters because field
// resolution takes the first matching column in row order.
type Row struct {
	Labels []string
	Values map[string]string
}

// NewRow builds a Row from parallel header and value slices. Extra values
// beyond the header are dropped; missing trailing values become "".
func NewRow(header []string, values []string) Row {
	row := Row{
		Labels: make([]string, 0, len(header)),
		Values: make(map[string]string, len(header)),
	}
	for i, label := range header {
		label = strings.TrimSpace(label)
		if label == "" {
			continue
		}
		value := ""
		if i < len(values) {
			value = strings.TrimSpace(values[i])
		}
		row.Labels = append(row.Labels, label)
		row.Values[label] = value
	}
	return row
}

// Get returns the value for a column label, or "" when absent.
func (r Row) Get(label string) string {
	return r.Values[label]
}

// Empty reports whether every cell in the row is blank.
func (r Row) Empty() bool {
	for _, label := range r.Labels {
		if r.Values[label] != "" {
			return false
		}
	}
	return true
}

// Source supplies the ordered sequence of rows for one build.
// A fetch failure is fatal for the whole build: the previous published site
// must be preserved rather than replaced with a partial one.
type Source interface {
	Fetch(ctx context.Context) ([]Row, error)
}

// SourceError represents a failure to obtain the row source at all.
type SourceError struct {
	Source string
	Cause  error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("row source %s: %v", e.Source, e.Cause)
}

func (e *SourceError) Unwrap() error {
	return e.Cause
}
