package main

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jlogtenberg/leakscan/internal/config"
	"github.com/jlogtenberg/leakscan/internal/database"
)

// NewCompareCmd creates the compare command.
// This command diffs two saved scan runs from the history database.
func NewCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [base-run-id] [target-run-id]",
		Short: "Compare two saved scan runs",
		Long: `Compare shows how the leak picture changed between two saved runs:
which third-party domains started receiving PII per site, and which
stopped. Runs are saved with 'leakscan scan --save'.

With no arguments the two most recent runs are compared (older as base).

Examples:
  # List saved runs
  leakscan compare --list

  # Compare the two most recent runs
  leakscan compare

  # Compare the accept and reject conditions by run ID
  leakscan compare 3 4`,
		Args: cobra.MaximumNArgs(2),
		RunE: runCompareCmd,
	}

	cmd.Flags().BoolP("list", "l", false,
		"List saved runs instead of comparing")
	cmd.Flags().String("db", "",
		"Database directory (default: XDG data directory)")

	return cmd
}

// runCompareCmd executes the compare command.
func runCompareCmd(cmd *cobra.Command, args []string) error {
	dbDir, err := cmd.Flags().GetString("db")
	if err != nil {
		return err
	}
	if dbDir == "" {
		dbDir = config.XDGDataDir()
	}

	db, err := database.Open(dbDir, database.Options{CreateIfNotExists: false, EnableWAL: true})
	if err != nil {
		return fmt.Errorf("failed to open database (run 'leakscan scan --save' first): %w", err)
	}
	defer db.Close() //nolint:errcheck // Read-mostly session

	ctx := context.Background()

	list, err := cmd.Flags().GetBool("list")
	if err != nil {
		return err
	}
	if list {
		return listRuns(ctx, db)
	}

	baseID, targetID, err := resolveRunIDs(ctx, db, args)
	if err != nil {
		return err
	}

	return compareRuns(ctx, db, baseID, targetID)
}

// listRuns prints the saved runs, newest first.
func listRuns(ctx context.Context, db *database.LeakDB) error {
	runs, err := db.ListRuns(ctx)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if len(runs) == 0 {
		fmt.Println("No saved runs found.")
		fmt.Println("\nUse 'leakscan scan --save' to save a run.")
		return nil
	}

	fmt.Printf("Saved runs (%d):\n\n", len(runs))
	fmt.Printf("  %-6s  %-20s  %-12s  %-6s  %s\n", "ID", "Date", "Label", "Sites", "Leaks")
	fmt.Println("  " + strings.Repeat("-", 60))
	for _, run := range runs {
		label := run.Label
		if label == "" {
			label = "-"
		}
		fmt.Printf("  %-6d  %-20s  %-12s  %-6d  %d\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			label,
			run.SitesScanned,
			run.LeakCount,
		)
	}

	return nil
}

// resolveRunIDs determines the base and target run from the arguments,
// defaulting to the two most recent runs (older as base).
func resolveRunIDs(ctx context.Context, db *database.LeakDB, args []string) (baseID, targetID int64, err error) {
	if len(args) == 2 {
		if _, err := fmt.Sscanf(args[0], "%d", &baseID); err != nil {
			return 0, 0, fmt.Errorf("invalid base run ID %q", args[0])
		}
		if _, err := fmt.Sscanf(args[1], "%d", &targetID); err != nil {
			return 0, 0, fmt.Errorf("invalid target run ID %q", args[1])
		}
		return baseID, targetID, nil
	}
	if len(args) == 1 {
		return 0, 0, fmt.Errorf("provide two run IDs or none")
	}

	runs, err := db.ListRuns(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to list runs: %w", err)
	}
	if len(runs) < 2 {
		return 0, 0, fmt.Errorf("need at least two saved runs to compare, have %d", len(runs))
	}

	// ListRuns is newest first.
	return runs[1].ID, runs[0].ID, nil
}

// compareRuns prints the per-site domain differences between two runs.
func compareRuns(ctx context.Context, db *database.LeakDB, baseID, targetID int64) error {
	baseDomains, err := db.GetRunDomains(ctx, baseID)
	if err != nil {
		return fmt.Errorf("failed to load base run %d: %w", baseID, err)
	}
	targetDomains, err := db.GetRunDomains(ctx, targetID)
	if err != nil {
		return fmt.Errorf("failed to load target run %d: %w", targetID, err)
	}

	fmt.Printf("Comparing run #%d (base) with run #%d (target)\n\n", baseID, targetID)

	sites := unionKeys(baseDomains, targetDomains)
	changes := 0
	for _, site := range sites {
		added := difference(targetDomains[site], baseDomains[site])
		removed := difference(baseDomains[site], targetDomains[site])
		if len(added) == 0 && len(removed) == 0 {
			continue
		}
		changes++

		fmt.Printf("%s\n", site)
		for _, d := range added {
			fmt.Printf("  + %s\n", d)
		}
		for _, d := range removed {
			fmt.Printf("  - %s\n", d)
		}
		fmt.Println()
	}

	if changes == 0 {
		fmt.Println("No changes: the same domains received PII in both runs.")
	} else {
		fmt.Printf("%d site(s) changed. '+' domains started receiving PII, '-' domains stopped.\n", changes)
	}

	return nil
}

// unionKeys returns the sorted union of both maps' keys.
func unionKeys(a, b map[string][]string) []string {
	seen := make(map[string]bool)
	var keys []string
	for k := range a {
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	for k := range b {
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// difference returns the elements of a that are not in b, preserving
// a's order.
func difference(a, b []string) []string {
	inB := make(map[string]bool, len(b))
	for _, v := range b {
		inB[v] = true
	}
	var diff []string
	for _, v := range a {
		if !inB[v] {
			diff = append(diff, v)
		}
	}
	return diff
}
