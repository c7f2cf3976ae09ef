// Package main provides the sg CLI entry point.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "sg",
	Short: "Subscription gap analysis for cited journals",
	Long: `sg reconciles citation records with institutional subscription
holdings to find the journals researchers cite or publish in that the
institution does not subscribe to.

It loads documents from a JSONL export, journal metadata from the serials
registry, and holdings from a CSV export, then runs a two-stage matching
pipeline (title against the registry, title/ISSN/eISSN against holdings)
and reports the gaps. All commands output JSON by default for easy
integration with other tools.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.Version = Version
}
