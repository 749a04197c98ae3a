package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/jlogtenberg/leakscan/internal/model"
)

// SimpleWriter outputs a human-readable text summary.
// This format is designed for terminal display after a run: per-site leak
// counts with their leaking domains, without dumping the leaked values
// themselves to the terminal.
type SimpleWriter struct {
	baseWriter

	// verbose adds the per-domain leak-method breakdown.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose enables the per-domain leak-method breakdown.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the summary in human-readable format.
func (w *SimpleWriter) Write(results []model.SiteResult) (int, error) {
	var sb strings.Builder

	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                        LEAK DETECTION SUMMARY\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	if len(results) == 0 {
		sb.WriteString("No leaks detected.\n\n")
		return w.output.Write([]byte(sb.String()))
	}

	totalLeaks := 0
	for _, site := range results {
		totalLeaks += site.TotalLeaks()
	}
	sb.WriteString(fmt.Sprintf("Sites with leaks: %d\n", len(results)))
	sb.WriteString(fmt.Sprintf("Total leaks:      %d\n\n", totalLeaks))

	for _, site := range results {
		sb.WriteString(strings.Repeat("-", 70))
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s (%d leaks, %d domains)\n", site.Website, site.TotalLeaks(), len(site.Leaks)))

		for _, domainGroup := range site.Leaks {
			sb.WriteString(fmt.Sprintf("  %-40s %d\n", domainGroup.Domain, len(domainGroup.DataLeaked)))

			if w.verbose {
				for _, mc := range methodCounts(domainGroup.DataLeaked) {
					sb.WriteString(fmt.Sprintf("    via %-12s %d\n", mc.method, mc.count))
				}
			}
		}
		sb.WriteString("\n")
	}

	return w.output.Write([]byte(sb.String()))
}

// methodCount is one leak-method tally.
type methodCount struct {
	method string
	count  int
}

// methodCounts tallies leak records per leak method, preserving the order
// methods were first seen in.
func methodCounts(records []model.LeakRecord) []methodCount {
	index := make(map[string]int)
	var counts []methodCount
	for _, r := range records {
		if i, ok := index[r.LeakMethod]; ok {
			counts[i].count++
			continue
		}
		index[r.LeakMethod] = len(counts)
		counts = append(counts, methodCount{method: r.LeakMethod, count: 1})
	}
	return counts
}
