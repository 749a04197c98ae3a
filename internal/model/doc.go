// Package model defines the core data structures used throughout leakscan.
//
// This package contains the following main types:
//   - UserData: PII submitted during the consent/profile crawl workflow
//   - LeakRecord: a single detected leak with its transform chain
//   - SiteResult: the persisted per-site output structure
//
// Design decision: We separate models into their own package to avoid
// circular dependencies. Multiple packages (search, pipeline, report,
// database) need these types, so centralizing them prevents import cycles.
//
// The models are designed to be serializable to JSON for the results file
// and database storage; the JSON field names match the recorded output
// format consumed by downstream analysis.
package model
