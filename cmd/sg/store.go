package main

import (
	"fmt"

	"github.com/matsen/serialgap/internal/config"
	"github.com/matsen/serialgap/internal/storage"
	"github.com/spf13/cobra"
)

func init() {
	storeCmd.AddCommand(storeInfoCmd)
	rootCmd.AddCommand(storeCmd)
}

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Inspect the analysis database",
}

var storeInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show database path and row counts",
	Args:  cobra.NoArgs,
	RunE:  runStoreInfo,
}

// StoreInfo describes the analysis database.
type StoreInfo struct {
	DBPath                string `json:"db_path"`
	Serials               int    `json:"serials"`
	Subscriptions         int    `json:"subscriptions"`
	DistinctSubscriptions int    `json:"distinct_subscriptions"`
	CitationMatches       int    `json:"citation_matches"`
	PublicationMatches    int    `json:"publication_matches"`
}

func runStoreInfo(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	db := mustOpenDatabase(repoRoot)
	defer db.Close()

	info := StoreInfo{DBPath: config.DBPath(repoRoot)}

	var err error
	if info.Serials, err = db.CountSerials(); err != nil {
		exitWithError(ExitError, "counting serials: %v", err)
	}
	if info.Subscriptions, err = db.CountSubscriptions(); err != nil {
		exitWithError(ExitError, "counting subscriptions: %v", err)
	}
	if info.Subscriptions > 0 {
		if info.DistinctSubscriptions, err = db.CountDistinctSubscriptions(); err != nil {
			exitWithError(ExitError, "counting distinct subscriptions: %v", err)
		}
	}
	if info.CitationMatches, err = db.CountMatches(storage.CitationMatchesTable); err != nil {
		exitWithError(ExitError, "counting citation matches: %v", err)
	}
	if info.PublicationMatches, err = db.CountMatches(storage.PublicationMatchesTable); err != nil {
		exitWithError(ExitError, "counting publication matches: %v", err)
	}

	if humanOutput {
		fmt.Printf("Database: %s\n", info.DBPath)
		fmt.Printf("  serials:             %d\n", info.Serials)
		fmt.Printf("  subscriptions:       %d (%d distinct)\n", info.Subscriptions, info.DistinctSubscriptions)
		fmt.Printf("  citation matches:    %d\n", info.CitationMatches)
		fmt.Printf("  publication matches: %d\n", info.PublicationMatches)
		return nil
	}
	return outputJSON(info)
}
