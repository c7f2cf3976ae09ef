package main

import (
	"fmt"
	"os"

	"github.com/matsen/serialgap/internal/config"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a serialgap repository in the current directory",
	Long: `Initialize a serialgap repository in the current directory.

Creates the .serialgap/ directory with an empty configuration and a cache
directory for the analysis database.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

// InitResult reports what init created.
type InitResult struct {
	Root        string `json:"root"`
	Initialized bool   `json:"initialized"`
}

func runInit(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		exitWithError(ExitError, "getting current directory: %v", err)
	}

	if config.IsRepository(cwd) {
		exitWithError(ExitConfigError, "already a serialgap repository: %s", cwd)
	}

	if err := config.Init(cwd); err != nil {
		exitWithError(ExitError, "initializing repository: %v", err)
	}

	if humanOutput {
		fmt.Printf("Initialized serialgap repository in %s\n", config.SerialgapPath(cwd))
		return nil
	}
	return outputJSON(InitResult{Root: cwd, Initialized: true})
}
