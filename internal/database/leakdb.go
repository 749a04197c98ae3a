package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/jlogtenberg/leakscan/internal/model"
)

// LeakDB provides SQLite-based storage for scan runs and their results.
// One database file holds every run, so cross-run queries need no
// attach/merge step.
type LeakDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures LeakDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent
	// performance.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a LeakDB at the specified directory.
// If CreateIfNotExists is true, the directory and database file are
// created; otherwise a missing database is an error.
func Open(dbDir string, opts Options) (*LeakDB, error) {
	dbPath := filepath.Join(dbDir, "leakscan.db")

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc.org/sqlite connection string: mode=rw prevents creating new
	// files, mode=rwc allows creation.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	ldb := &LeakDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := ldb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return ldb, nil
}

// Close closes the database connection.
func (ldb *LeakDB) Close() error {
	return ldb.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (ldb *LeakDB) createTables() error {
	schema := `
	-- Runs are whole scan invocations (one site list, one consent condition)
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		label TEXT NOT NULL DEFAULT '',
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
		sites_scanned INTEGER NOT NULL DEFAULT 0,
		results_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_label ON runs(label);
	CREATE INDEX IF NOT EXISTS idx_runs_timestamp ON runs(timestamp);

	-- Leaks are denormalized per-record rows for cross-run queries
	CREATE TABLE IF NOT EXISTS leaks (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id INTEGER NOT NULL REFERENCES runs(id),
		website TEXT NOT NULL,
		domain TEXT NOT NULL,
		leaked_value TEXT NOT NULL,
		encoding_or_hash TEXT NOT NULL,
		leak_method TEXT NOT NULL,
		timestamp TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_leaks_run ON leaks(run_id);
	CREATE INDEX IF NOT EXISTS idx_leaks_website ON leaks(website);
	CREATE INDEX IF NOT EXISTS idx_leaks_domain ON leaks(domain);
	`

	_, err := ldb.db.ExecContext(context.Background(), schema)
	return err
}

// RunMetadata describes one stored run without its result payload.
type RunMetadata struct {
	ID           int64
	Label        string
	Timestamp    time.Time
	SitesScanned int
	LeakCount    int
}

// SaveRun stores a completed run with its results and returns the run ID.
// sitesScanned counts every site processed, including the leak-free ones
// that contribute no result rows.
func (ldb *LeakDB) SaveRun(ctx context.Context, label string, sitesScanned int, results []model.SiteResult) (int64, error) {
	resultsJSON, err := json.Marshal(results)
	if err != nil {
		return 0, fmt.Errorf("failed to serialize results: %w", err)
	}

	tx, err := ldb.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // Rollback after commit is a no-op

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (label, sites_scanned, results_json) VALUES (?, ?, ?)`,
		label, sitesScanned, string(resultsJSON),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run ID: %w", err)
	}

	for _, site := range results {
		for _, domainGroup := range site.Leaks {
			for _, leak := range domainGroup.DataLeaked {
				if _, err := tx.ExecContext(ctx,
					`INSERT INTO leaks (run_id, website, domain, leaked_value, encoding_or_hash, leak_method, timestamp)
					 VALUES (?, ?, ?, ?, ?, ?, ?)`,
					runID, site.Website, domainGroup.Domain,
					leak.LeakedValue, leak.EncodingOrHash, leak.LeakMethod, leak.Timestamp,
				); err != nil {
					return 0, fmt.Errorf("failed to insert leak: %w", err)
				}
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit run: %w", err)
	}

	return runID, nil
}

// ListRuns returns metadata for all stored runs, newest first.
func (ldb *LeakDB) ListRuns(ctx context.Context) ([]RunMetadata, error) {
	rows, err := ldb.db.QueryContext(ctx, `
		SELECT r.id, r.label, r.timestamp, r.sites_scanned,
		       (SELECT COUNT(*) FROM leaks l WHERE l.run_id = r.id)
		FROM runs r
		ORDER BY r.timestamp DESC, r.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close() //nolint:errcheck // Read-only rows

	var runs []RunMetadata
	for rows.Next() {
		var meta RunMetadata
		var timestamp string
		if err := rows.Scan(&meta.ID, &meta.Label, &timestamp, &meta.SitesScanned, &meta.LeakCount); err != nil {
			return nil, fmt.Errorf("failed to scan run row: %w", err)
		}
		meta.Timestamp = parseTimestamp(timestamp)
		runs = append(runs, meta)
	}

	return runs, rows.Err()
}

// timestampFormats contains the timestamp formats that SQLite may return.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	"2006-01-02 15:04:05",     // SQLite default datetime format
	"2006-01-02T15:04:05Z",    // ISO 8601 with Z suffix
	"2006-01-02T15:04:05",     // ISO 8601 without timezone
	time.RFC3339,              // Full RFC3339 format
	time.RFC3339Nano,          // RFC3339 with nanoseconds
	"2006-01-02 15:04:05.999", // SQLite with milliseconds
}

// parseTimestamp parses a stored timestamp, trying each format SQLite is
// known to emit. Returns zero time when none matches.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// GetRunResults returns the stored site results of one run.
func (ldb *LeakDB) GetRunResults(ctx context.Context, runID int64) ([]model.SiteResult, error) {
	var resultsJSON string
	err := ldb.db.QueryRowContext(ctx,
		`SELECT results_json FROM runs WHERE id = ?`, runID,
	).Scan(&resultsJSON)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run %d not found", runID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query run: %w", err)
	}

	var results []model.SiteResult
	if err := json.Unmarshal([]byte(resultsJSON), &results); err != nil {
		return nil, fmt.Errorf("failed to parse stored results: %w", err)
	}

	return results, nil
}

// GetRunDomains returns the leaking domains of one run, keyed by website.
// Domains per site are returned in stored order without duplicates.
func (ldb *LeakDB) GetRunDomains(ctx context.Context, runID int64) (map[string][]string, error) {
	rows, err := ldb.db.QueryContext(ctx,
		`SELECT website, domain FROM leaks WHERE run_id = ? GROUP BY website, domain ORDER BY MIN(id)`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query leak domains: %w", err)
	}
	defer rows.Close() //nolint:errcheck // Read-only rows

	domains := make(map[string][]string)
	for rows.Next() {
		var website, domain string
		if err := rows.Scan(&website, &domain); err != nil {
			return nil, fmt.Errorf("failed to scan leak row: %w", err)
		}
		domains[website] = append(domains[website], domain)
	}

	return domains, rows.Err()
}
