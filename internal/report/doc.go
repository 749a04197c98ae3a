// Package report shapes scan results into their output formats: the JSON
// results file consumed by downstream analysis, a human-readable console
// summary, and an optional Markdown report for sharing.
package report
