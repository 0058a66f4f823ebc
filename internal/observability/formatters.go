// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jonathan/listing-site-builder/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintSourceSummary outputs what the sheet produced: totals plus the first
// few active listings for a quick sanity check.
func (p *Printer) PrintSourceSummary(total int, listings []*types.Listing) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Rows fetched:     %d\n", total))
	sb.WriteString(fmt.Sprintf("Active listings:  %d\n", len(listings)))
	sb.WriteString(fmt.Sprintf("Excluded:         %d\n", total-len(listings)))

	if len(listings) > 0 {
		sb.WriteString("\n")
		count := min(len(listings), maxItemsToShow)
		for i := 0; i < count; i++ {
			l := listings[i]
			sb.WriteString(fmt.Sprintf("  • %s (%s, %s)\n", l.Name, l.Area, l.PriceBucket))
		}
		if len(listings) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(listings)-maxItemsToShow))
		}
	}

	p.printBox("SHEET SUMMARY", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintGeocodeSummary outputs cache effectiveness and the addresses that
// stayed unresolved this build.
func (p *Printer) PrintGeocodeSummary(cacheHits, externalCalls int, unresolved []string) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Cache hits:       %d\n", cacheHits))
	sb.WriteString(fmt.Sprintf("External calls:   %d\n", externalCalls))
	sb.WriteString(fmt.Sprintf("Unresolved:       %d\n", len(unresolved)))

	if len(unresolved) > 0 {
		sb.WriteString("\n")
		count := min(len(unresolved), maxItemsToShow)
		for i := 0; i < count; i++ {
			addr := unresolved[i]
			if len(addr) > 45 {
				addr = addr[:42] + "..."
			}
			sb.WriteString(fmt.Sprintf("  ⚠ %s\n", addr))
		}
		if len(unresolved) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(unresolved)-maxItemsToShow))
		}
	}

	p.printBox("GEOCODING", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintPageSummary outputs how many pages of each kind the build produced.
func (p *Printer) PrintPageSummary(pages []types.Page) {
	counts := make(map[types.PageKind]int)
	for _, page := range pages {
		counts[page.Kind]++
	}

	kinds := make([]string, 0, len(counts))
	for kind := range counts {
		kinds = append(kinds, string(kind))
	}
	sort.Strings(kinds)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total pages: %d\n\n", len(pages)))
	for _, kind := range kinds {
		sb.WriteString(fmt.Sprintf("  %-10s %d\n", kind, counts[types.PageKind(kind)]))
	}

	p.printBox("PAGE SET", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintPublishSummary outputs where the site landed.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintPublishSummary(outputDir string, documents int) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, fmt.Sprintf("✅ PUBLISHED %d FILES", documents))
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, outputDir)
	fmt.Fprintf(p.out, "└%s┘\n", border)
}
