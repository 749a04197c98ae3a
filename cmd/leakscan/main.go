// Package main provides the entry point for the leakscan CLI.
//
// leakscan scans recorded HAR captures from automated consent-workflow
// crawls and reports whether submitted personal data appears, in plain or
// transformed form, in outbound traffic to third-party domains.
//
// Usage:
//
//	leakscan scan <data-dir> --user-data user_data.json --output leak_results.json
//
// See --help for all available options.
package main

// main is the entry point for leakscan.
func main() {
	Execute()
}
