// Package config holds the runtime configuration for leakscan and the
// loaders for its input files.
//
// Three inputs are loaded here:
//   - the site→country mapping (semicolon-delimited CSV, header skipped)
//   - the user-data file (JSON with "general" and per-country "profile"
//     records)
//   - the optional .leakscan YAML file with per-site overrides
//
// The Config struct is populated from CLI flags and passed through the
// application via dependency injection; no package fixes input or output
// locations through global state.
package config
