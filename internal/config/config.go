package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// Default configuration values. These mirror the crawl tooling that
// produces the captures: each site directory is expected to hold one
// traffic.har recorded during the consent workflow.
const (
	// DefaultHARFileName is the capture file name expected inside each
	// site directory under the data directory.
	DefaultHARFileName = "traffic.har"

	// DefaultCountry is the fallback country used when a site is absent
	// from the site-language mapping. The crawls were run from the
	// Netherlands, so Dutch profile data is the safe default.
	DefaultCountry = "dutch"

	// DefaultDetectionLayers is the maximum number of transform
	// compositions the detector tries, applied identically to encodings
	// and hashes. Three layers covers every chain observed in practice
	// (e.g. base64 over md5, urlencode over base64 over sha1).
	DefaultDetectionLayers = 3

	// DefaultBatchSize of 1 keeps processing strictly sequential.
	// Sites are independent, so larger values are safe; throughput is
	// bounded by HAR parsing and per-field detector work.
	DefaultBatchSize = 1

	// AppName is the application name used for XDG directory paths.
	AppName = "leakscan"
)

// Config holds all configuration options for leakscan.
// This struct is populated from CLI flags and passed through the
// application via dependency injection rather than global state.
type Config struct {
	// DataDir is the base folder holding one directory per scanned site.
	// A site directory without a readable capture file is skipped.
	DataDir string

	// UserDataFile is the path to the JSON file with the general user
	// data and the per-country profiles.
	UserDataFile string

	// SiteLanguageFile is the path to the semicolon-delimited CSV mapping
	// site identifiers to country names.
	SiteLanguageFile string

	// ResultsFile is the path the JSON leak results are written to.
	// The file is only written when at least one site produced leaks.
	ResultsFile string

	// HARFileName is the capture file name inside each site directory.
	HARFileName string

	// DefaultCountry is used for sites absent from the site-language
	// mapping.
	DefaultCountry string

	// EncodingLayers is the maximum encoding composition depth for the
	// detector.
	EncodingLayers int

	// HashLayers is the maximum hash composition depth for the detector.
	HashLayers int

	// BatchSize is the number of sites processed concurrently.
	// 1 means strictly sequential processing in directory order.
	BatchSize int

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// ConfigFilePath is the path to the .leakscan YAML file.
	// If empty, the tool searches the current directory and then the
	// user's home directory.
	ConfigFilePath string

	// SiteConfigs holds per-site overrides loaded from the config file.
	SiteConfigs *File

	// MarkdownReport enables a Markdown summary report in addition to the
	// JSON results file.
	MarkdownReport bool

	// ReportFile is the output path for the summary report. When empty,
	// the summary goes to stdout.
	ReportFile string

	// DBDir is the directory for the SQLite scan-history database.
	// When set, each run's results are saved for later comparison.
	DBDir string

	// SaveToDB indicates whether to persist run results to the database.
	// Automatically true when DBDir is configured.
	SaveToDB bool

	// RunLabel is an optional label stored with a persisted run,
	// e.g. "accept" or "reject" for the two consent conditions.
	RunLabel string
}

// NewConfig creates a new Config with default values.
// Users override specific values after creation (typically from flags).
func NewConfig() *Config {
	return &Config{
		HARFileName:    DefaultHARFileName,
		DefaultCountry: DefaultCountry,
		EncodingLayers: DefaultDetectionLayers,
		HashLayers:     DefaultDetectionLayers,
		BatchSize:      DefaultBatchSize,
	}
}

// XDGDataDir returns the XDG data directory for leakscan.
// On Linux: ~/.local/share/leakscan
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for leakscan.
// On Linux: ~/.config/leakscan
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It is called once after CLI parsing, before any scanning begins, and
// returns the first error found.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return ErrNoDataDir
	}

	if c.UserDataFile == "" {
		return ErrNoUserDataFile
	}

	if c.ResultsFile == "" {
		return ErrNoResultsFile
	}

	if c.EncodingLayers <= 0 || c.HashLayers <= 0 {
		return ErrInvalidLayers
	}

	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}

	return nil
}
