package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for leakscan.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "leakscan",
		Short: "PII leak detection for recorded web-traffic captures",
		Long: `leakscan audits recorded HAR captures produced during automated site
crawls. It determines whether personal data supplied during a consent or
profile workflow subsequently appears - plain or transformed by layered
encodings and hashes - in requests, response headers, or cookies sent to
third-party domains.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewScanCmd())
	cmd.AddCommand(NewCompareCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
