package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jlogtenberg/leakscan/internal/config"
	"github.com/jlogtenberg/leakscan/internal/database"
	"github.com/jlogtenberg/leakscan/internal/detector"
	"github.com/jlogtenberg/leakscan/internal/log"
	"github.com/jlogtenberg/leakscan/internal/model"
	"github.com/jlogtenberg/leakscan/internal/pipeline"
	"github.com/jlogtenberg/leakscan/internal/profile"
	"github.com/jlogtenberg/leakscan/internal/report"
)

// NewScanCmd creates the scan command.
func NewScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan <data-dir>",
		Short: "Scan recorded captures for PII leaks to third parties",
		Long: `Scan walks the data directory, expecting one subdirectory per crawled
site with a recorded capture file inside (traffic.har by default).

For every site it resolves the country profile, builds the search-string
collection (with mutations such as the site-tagged email, the combined
full name and address, and the spaceless card number), and checks every
request URL, Referer header, POST body, Location header, Set-Cookie
header, and attached cookie for those strings - plain or transformed by
layered encodings and hashes.

Leaks are grouped per third-party domain (eTLD+1) per site. The JSON
results file is only written when at least one site leaked.

Examples:
  # Scan the accept-condition captures
  leakscan scan crawls/accept \
    --user-data user_data.json \
    --site-language websites_language.csv \
    --output crawls/accept/leak_results.json

  # Scan eight sites at a time and keep the run for later comparison
  leakscan scan crawls/accept -u user_data.json -o results.json \
    --batch 8 --save --label accept

  # Markdown report next to the JSON results
  leakscan scan crawls/accept -u user_data.json -o results.json \
    --markdown --report-file report.md`,
		Args: cobra.ExactArgs(1),
		RunE: runScanCmd,
	}

	// Input flags
	cmd.Flags().StringP("user-data", "u", "",
		"Path to the user-data JSON file (general data and country profiles)")
	cmd.Flags().StringP("site-language", "s", "",
		"Path to the semicolon-delimited site;country CSV file")
	cmd.Flags().String("har-name", config.DefaultHARFileName,
		"Capture file name expected inside each site directory")
	cmd.Flags().String("country", config.DefaultCountry,
		"Fallback country for sites absent from the site-language mapping")

	// Detection flags
	cmd.Flags().Int("layers", config.DefaultDetectionLayers,
		"Maximum encoding/hash composition depth the detector tries")

	// Output flags
	cmd.Flags().StringP("output", "o", "leak_results.json",
		"Path for the JSON results file (written only when leaks were found)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Also write a Markdown summary report")
	cmd.Flags().StringP("report-file", "r", "",
		"Path for the Markdown report (default: stdout)")

	// Batch flag
	cmd.Flags().IntP("batch", "b", config.DefaultBatchSize,
		"Number of sites scanned concurrently (1 = sequential)")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .leakscan in current or home directory)")

	// History flags
	cmd.Flags().Bool("save", false,
		"Save the run to the scan-history database")
	cmd.Flags().String("db", "",
		"Database directory (default: XDG data directory)")
	cmd.Flags().String("label", "",
		"Label stored with a saved run, e.g. the consent condition")

	return cmd
}

// runScanCmd executes the scan command.
func runScanCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// Set up structured logging with PII sanitization
	logger := log.NewSecureLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runScan(ctx, cfg, logger)
}

// buildConfig creates a Config from cobra command flags.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.DataDir = args[0]

	var err error

	cfg.UserDataFile, err = cmd.Flags().GetString("user-data")
	if err != nil {
		return nil, err
	}

	cfg.SiteLanguageFile, err = cmd.Flags().GetString("site-language")
	if err != nil {
		return nil, err
	}

	cfg.ResultsFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	cfg.HARFileName, err = cmd.Flags().GetString("har-name")
	if err != nil {
		return nil, err
	}

	cfg.DefaultCountry, err = cmd.Flags().GetString("country")
	if err != nil {
		return nil, err
	}

	layers, err := cmd.Flags().GetInt("layers")
	if err != nil {
		return nil, err
	}
	cfg.EncodingLayers = layers
	cfg.HashLayers = layers

	cfg.BatchSize, err = cmd.Flags().GetInt("batch")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.ReportFile, err = cmd.Flags().GetString("report-file")
	if err != nil {
		return nil, err
	}

	cfg.SaveToDB, err = cmd.Flags().GetBool("save")
	if err != nil {
		return nil, err
	}

	cfg.DBDir, err = cmd.Flags().GetString("db")
	if err != nil {
		return nil, err
	}
	if cfg.DBDir != "" {
		cfg.SaveToDB = true
	}
	if cfg.SaveToDB && cfg.DBDir == "" {
		cfg.DBDir = config.XDGDataDir()
	}

	cfg.RunLabel, err = cmd.Flags().GetString("label")
	if err != nil {
		return nil, err
	}

	cfg.Verbose = getVerboseFlag(cmd)

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// Load per-site overrides from the config file.
	// An explicitly specified file must exist; otherwise an absent file
	// just means no overrides.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		cfg.SiteConfigs, err = config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	} else if explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	} else {
		cfg.SiteConfigs = &config.File{
			Sites: make(map[string]config.SiteConfig),
		}
	}

	return cfg, nil
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// runScan performs the full leak-detection run.
func runScan(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	logger.Info("starting leak detection",
		"dataDir", cfg.DataDir,
		"batchSize", cfg.BatchSize,
		"layers", cfg.EncodingLayers,
		"saveToDB", cfg.SaveToDB,
	)

	// Load the site-language mapping; without one every site falls back
	// to the default country.
	siteCountry := map[string]string{}
	if cfg.SiteLanguageFile != "" {
		var err error
		siteCountry, err = config.LoadSiteCountryMap(cfg.SiteLanguageFile)
		if err != nil {
			return err
		}
	}

	userData, err := config.LoadUserData(cfg.UserDataFile)
	if err != nil {
		return err
	}

	resolver := profile.NewResolver(siteCountry, userData.Profiles, cfg.DefaultCountry)

	detectorConfig := detector.Config{
		Encodings:      detector.LikelyEncodings,
		Hashes:         detector.LikelyHashes,
		EncodingLayers: cfg.EncodingLayers,
		HashLayers:     cfg.HashLayers,
	}

	scans, err := collectSiteScans(cfg, logger)
	if err != nil {
		return err
	}
	if len(scans) == 0 {
		logger.Warn("no scannable sites found", "dataDir", cfg.DataDir)
		fmt.Println("No sites with captures found; nothing to scan.")
		return nil
	}

	pipelineFactory := func() *pipeline.Pipeline {
		p := pipeline.New(pipeline.WithLogger(logger))
		p.AddSteps(
			pipeline.NewProfileStep(resolver, pipeline.WithProfileLogger(logger)),
			pipeline.NewSearchStringStep(userData.General, detectorConfig, pipeline.WithSearchStringLogger(logger)),
			pipeline.NewDetectStep(pipeline.WithDetectLogger(logger)),
		)
		return p
	}

	startTime := time.Now()

	if cfg.BatchSize > 1 {
		bp := pipeline.NewBatchProcessor(pipelineFactory,
			pipeline.WithConcurrency(cfg.BatchSize),
			pipeline.WithBatchLogger(logger),
		)
		if err := bp.Process(ctx, scans); err != nil {
			return err
		}
	} else {
		for _, scan := range scans {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			fmt.Printf("Checking %s for leaks\n", scan.Site)
			if err := pipelineFactory().Execute(ctx, scan); err != nil {
				return err
			}
		}
	}

	// Collect results in directory order.
	results := make([]model.SiteResult, 0, len(scans))
	for _, scan := range scans {
		if scan.Result != nil {
			results = append(results, *scan.Result)
		}
	}

	fmt.Printf("Scan completed in %s\n", time.Since(startTime).Round(time.Millisecond))

	return outputResults(ctx, cfg, logger, len(scans), results)
}

// collectSiteScans enumerates the data directory and builds the scan state
// for every site with a readable capture. Non-directories and sites
// without a capture file are skipped; the skip is logged so a missing
// capture is not mistaken for a clean site.
func collectSiteScans(cfg *config.Config, logger *slog.Logger) ([]*pipeline.SiteScan, error) {
	entries, err := os.ReadDir(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read data directory: %w", err)
	}

	scans := make([]*pipeline.SiteScan, 0, len(entries))
	for _, entry := range entries {
		site := entry.Name()

		if !entry.IsDir() {
			logger.Debug("skipping non-directory entry", "entry", site)
			continue
		}

		siteConfig := cfg.SiteConfigs.GetSiteConfig(site)
		if siteConfig.Skip {
			logger.Info("site excluded by configuration", "site", site)
			continue
		}

		harName := cfg.HARFileName
		if siteConfig.HARFile != "" {
			harName = siteConfig.HARFile
		}

		harPath := filepath.Join(cfg.DataDir, site, harName)
		if info, err := os.Stat(harPath); err != nil || info.IsDir() {
			logger.Warn("no capture file, skipping site",
				"site", site,
				"capture", harPath,
			)
			continue
		}

		scan := pipeline.NewSiteScan(site, harPath)
		scan.CountryOverride = strings.ToLower(siteConfig.Country)
		scans = append(scans, scan)
	}

	return scans, nil
}

// outputResults writes the results file, the console summary, the optional
// Markdown report, and the optional database record.
func outputResults(ctx context.Context, cfg *config.Config, logger *slog.Logger, sitesScanned int, results []model.SiteResult) error {
	written, err := report.WriteResultsFile(cfg.ResultsFile, results)
	if err != nil {
		return err
	}
	if written {
		fmt.Printf("Leak detection complete! Results saved to %s.\n", cfg.ResultsFile)
	} else {
		fmt.Println("Leak detection complete! No leaks found; no results file written.")
	}

	if _, err := report.NewSimpleWriter(os.Stdout, report.WithVerbose(cfg.Verbose)).Write(results); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}

	if cfg.MarkdownReport {
		if err := writeMarkdownReport(cfg, results); err != nil {
			return err
		}
	}

	if cfg.SaveToDB {
		db, err := database.Open(cfg.DBDir, database.DefaultOptions())
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close() //nolint:errcheck // Best-effort close on exit

		runID, err := db.SaveRun(ctx, cfg.RunLabel, sitesScanned, results)
		if err != nil {
			return fmt.Errorf("failed to save run: %w", err)
		}
		logger.Info("run saved", "runID", runID, "label", cfg.RunLabel)
		fmt.Printf("Run saved to history as #%d.\n", runID)
	}

	return nil
}

// writeMarkdownReport writes the Markdown summary to the configured report
// file, or stdout when none is set.
func writeMarkdownReport(cfg *config.Config, results []model.SiteResult) error {
	out := os.Stdout
	if cfg.ReportFile != "" {
		if dir := filepath.Dir(cfg.ReportFile); dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create report directory: %w", err)
			}
		}
		f, err := os.Create(cfg.ReportFile) //nolint:gosec // User-provided report path is intentional
		if err != nil {
			return fmt.Errorf("failed to create report file: %w", err)
		}
		defer f.Close() //nolint:errcheck // Flushed by Write below
		out = f
	}

	if _, err := report.NewMarkdownWriter(out).Write(results); err != nil {
		return fmt.Errorf("failed to write markdown report: %w", err)
	}
	return nil
}
