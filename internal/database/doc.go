// Package database provides SQLite-based storage for leak-scan runs.
//
// Persisting runs enables longitudinal auditing: the same site list is
// typically scanned under multiple consent conditions (accept vs reject)
// and re-scanned over time, and the compare command diffs two stored runs
// to show which third-party domains started or stopped receiving PII.
//
// The store uses modernc.org/sqlite, a pure-Go driver, so the binary
// stays CGO-free.
package database
