package report

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"

	"github.com/jlogtenberg/leakscan/internal/model"
)

// MarkdownWriter outputs the scan summary in Markdown format.
// This format is designed for documentation and sharing audit results;
// unlike the console summary it includes the transform chains, since a
// written report is the place to show how a value was obfuscated.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the results in Markdown format.
func (w *MarkdownWriter) Write(results []model.SiteResult) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, results)

	for _, site := range results {
		w.writeSite(md, site)
	}

	md.HorizontalRule()
	md.PlainText("Generated by leakscan.")

	return len(md.String()), md.Build()
}

// writeHeader writes the report title and the overall summary table.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, results []model.SiteResult) {
	md.H1("PII Leak Report")
	md.PlainText("")

	totalLeaks := 0
	domains := make(map[string]bool)
	for _, site := range results {
		totalLeaks += site.TotalLeaks()
		for _, d := range site.Leaks {
			domains[d.Domain] = true
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Sites with leaks", strconv.Itoa(len(results))},
			{"Distinct leaking domains", strconv.Itoa(len(domains))},
			{"Total leaks", strconv.Itoa(totalLeaks)},
		},
	})
	md.PlainText("")

	if totalLeaks > 0 {
		md.Warningf("Personal data supplied during the consent workflow was observed in third-party traffic.")
		md.PlainText("")
	}
}

// writeSite writes one site's per-domain leak tables.
func (w *MarkdownWriter) writeSite(md *markdown.Markdown, site model.SiteResult) {
	md.H2(site.Website)
	md.PlainText("")

	for _, domainGroup := range site.Leaks {
		md.H3(domainGroup.Domain)
		md.PlainText("")

		rows := make([][]string, 0, len(domainGroup.DataLeaked))
		for _, leak := range domainGroup.DataLeaked {
			chain := leak.EncodingOrHash
			if chain == "" {
				chain = "(plain)"
			}
			rows = append(rows, []string{
				"`" + leak.LeakedValue + "`",
				chain,
				leak.LeakMethod,
				leak.Timestamp,
			})
		}

		md.Table(markdown.TableSet{
			Header: []string{"Leaked Value", "Encoding/Hash Chain", "Method", "Timestamp"},
			Rows:   rows,
		})
		md.PlainText("")
	}
}
