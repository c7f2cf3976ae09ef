package main

import (
	"context"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/matsen/serialgap/internal/config"
	"github.com/matsen/serialgap/internal/registry"
	"github.com/spf13/cobra"
)

var fetchMaxPages int

func init() {
	fetchCmd.Flags().IntVar(&fetchMaxPages, "max-pages", 0, "Maximum registry pages to fetch (0 = all)")
	rootCmd.AddCommand(fetchCmd)
}

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch journal metadata from the serials registry",
	Long: `Fetch journal metadata from the serials registry into the local
database, replacing any previous snapshot.

The API key is read from SERIALGAP_REGISTRY_KEY (a .env file in the working
directory is loaded first) or from the global config file.

Examples:
  sg fetch
  sg fetch --max-pages 5`,
	Args: cobra.NoArgs,
	RunE: runFetch,
}

// FetchResult is the fetch command's output.
type FetchResult struct {
	Serials int `json:"serials"`
}

func runFetch(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()

	// Load .env if present so the API key can live there
	_ = godotenv.Load()

	var opts []registry.ClientOption
	if global, err := config.LoadGlobalConfig(); err == nil {
		if global.RegistryAPIKey != "" {
			opts = append(opts, registry.WithAPIKey(global.RegistryAPIKey))
		}
		if global.RegistryBaseURL != "" {
			opts = append(opts, registry.WithBaseURL(global.RegistryBaseURL))
		}
	}

	client := registry.NewClient(opts...)
	serials, err := client.FetchSerials(context.Background(), fetchMaxPages)
	if err != nil {
		exitWithError(ExitError, "fetching serials: %v", err)
	}

	db := mustOpenDatabase(repoRoot)
	defer db.Close()

	count, err := db.ReplaceSerials(serials)
	if err != nil {
		exitWithError(ExitError, "storing serials: %v", err)
	}

	if humanOutput {
		fmt.Printf("Fetched %d journals from the registry\n", count)
		return nil
	}
	return outputJSON(FetchResult{Serials: count})
}
