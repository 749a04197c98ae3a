package config

import "errors"

// Configuration validation errors.
// Package-level sentinel errors so callers can use errors.Is() while the
// messages stay human-readable.
var (
	// ErrNoDataDir is returned when no capture base directory is specified.
	ErrNoDataDir = errors.New("no data directory specified: provide the folder holding per-site captures")

	// ErrNoUserDataFile is returned when the user-data JSON path is missing.
	ErrNoUserDataFile = errors.New("no user-data file specified")

	// ErrNoResultsFile is returned when the results output path is missing.
	ErrNoResultsFile = errors.New("no results file specified")

	// ErrInvalidLayers is returned when a detection layer depth is not positive.
	// Zero layers would disable transform detection entirely.
	ErrInvalidLayers = errors.New("invalid detection layers: must be positive")

	// ErrInvalidBatchSize is returned when the batch size is not positive.
	ErrInvalidBatchSize = errors.New("invalid batch size: must be positive")
)
