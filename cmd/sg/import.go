package main

import (
	"fmt"
	"os"

	"github.com/matsen/serialgap/internal/config"
	"github.com/matsen/serialgap/internal/importer"
	"github.com/matsen/serialgap/internal/serial"
	"github.com/spf13/cobra"
)

var importDryRun bool

func init() {
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Parse the export without writing to the database")
	rootCmd.AddCommand(importCmd)
}

var importCmd = &cobra.Command{
	Use:   "import <holdings.csv>",
	Short: "Import subscription holdings from a CSV export",
	Long: `Import subscription holdings from a CSV export.

The export must carry a header row; title, ISSN, and eISSN columns are
located by sanitized header name, all other columns are ignored. Exact
duplicate rows are dropped during import.

Examples:
  sg import holdings.csv
  sg import holdings.csv --dry-run`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

// ImportSummary is the import command's output.
type ImportSummary struct {
	Imported   int  `json:"imported"`
	Duplicates int  `json:"duplicates"`
	Skipped    int  `json:"skipped"`
	Distinct   int  `json:"distinct"`
	DryRun     bool `json:"dry_run,omitempty"`
}

func runImport(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()

	f, err := os.Open(args[0])
	if err != nil {
		exitWithError(ExitError, "opening holdings export: %v", err)
	}
	defer f.Close()

	result, err := importer.ParseHoldings(f)
	if err != nil {
		exitWithError(ExitDataError, "importing holdings: %v", err)
	}

	summary := ImportSummary{
		Imported:   result.Imported,
		Duplicates: result.Duplicates,
		Skipped:    result.Skipped,
		Distinct:   serial.DistinctSubscriptions(result.Subscriptions),
		DryRun:     importDryRun,
	}

	if !importDryRun {
		db := mustOpenDatabase(repoRoot)
		defer db.Close()
		if _, err := db.ReplaceSubscriptions(result.Subscriptions); err != nil {
			exitWithError(ExitError, "storing holdings: %v", err)
		}

		// Remember the export path for later runs
		if cfg, err := config.Load(repoRoot); err == nil {
			cfg.HoldingsPath = args[0]
			_ = cfg.Save(repoRoot)
		}
	}

	if humanOutput {
		fmt.Printf("Imported %d holdings (%d exact duplicates dropped, %d rows skipped)\n",
			summary.Imported, summary.Duplicates, summary.Skipped)
		fmt.Printf("%d distinct (title, issn, eissn) tuples\n", summary.Distinct)
		if importDryRun {
			fmt.Println("Dry run: nothing written")
		}
		return nil
	}
	return outputJSON(summary)
}
