// Package log provides secure logging functionality with automatic
// sanitization of PII, built on top of the standard slog package.
//
// leakscan handles real user data: the search strings it looks for are the
// email addresses, phone numbers, addresses and card data that were
// submitted during the crawl. A scanner that finds PII leaks must not
// re-leak that PII through its own log output, so the SecureHandler masks
// attribute values whose keys identify profile fields, detected leak
// values, or credential material.
//
// Even in verbose mode, sensitive values are masked to prevent accidental
// exposure in logs that may be shared or stored.
//
// # Usage
//
//	logger := log.NewSecureLogger(os.Stderr, true) // verbose=true
//
//	logger.Info("leak found",
//	    "leaked_value", "ann.lee@example.org", // masked to "***"
//	    "domain", "tracker.example",
//	)
//
//	slog.SetDefault(logger)
package log
