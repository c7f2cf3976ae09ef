package main

import (
	"fmt"

	"github.com/matsen/serialgap/internal/match"
	"github.com/matsen/serialgap/internal/report"
	"github.com/matsen/serialgap/internal/storage"
	"github.com/matsen/serialgap/internal/tally"
	"github.com/spf13/cobra"
)

var (
	reportTopN   int
	reportVenues bool
)

func init() {
	reportCmd.PersistentFlags().BoolVar(&reportVenues, "venues", false, "Report on publication venues instead of cited sources")
	reportTopCmd.Flags().IntVar(&reportTopN, "n", 20, "Number of rows to show")
	reportCmd.AddCommand(reportTopCmd)
	reportCmd.AddCommand(reportGapsCmd)
	rootCmd.AddCommand(reportCmd)
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Report on the latest match run",
}

var reportTopCmd = &cobra.Command{
	Use:   "top",
	Short: "Show the most-cited matched journals",
	Long: `Show the most-cited matched journals from the latest match run.

Rows are ordered by count descending with a title tie-break, so repeated
runs over the same data produce identical output.

Examples:
  sg report top
  sg report top --n 50
  sg report top --venues`,
	Args: cobra.NoArgs,
	RunE: runReportTop,
}

var reportGapsCmd = &cobra.Command{
	Use:   "gaps",
	Short: "Show cited journals with no matching subscription",
	Long: `Show journals that are cited (or published in, with --venues) but
matched no subscription holding by title, ISSN, or eISSN.

Examples:
  sg report gaps
  sg report gaps --venues`,
	Args: cobra.NoArgs,
	RunE: runReportGaps,
}

// reportTable returns the match table selected by --venues.
func reportTable() string {
	if reportVenues {
		return storage.PublicationMatchesTable
	}
	return storage.CitationMatchesTable
}

func loadMatches() []match.Result {
	repoRoot := mustFindRepository()
	db := mustOpenDatabase(repoRoot)
	defer db.Close()

	results, err := db.GetMatches(reportTable())
	if err != nil {
		exitWithError(ExitError, "loading matches: %v", err)
	}
	if len(results) == 0 {
		exitWithError(ExitConfigError, "no match results; run 'sg match' first")
	}
	return results
}

func runReportTop(cmd *cobra.Command, args []string) error {
	results := loadMatches()

	// Collapse fan-out back to one tally row per normalized title
	seen := make(map[string]bool)
	var tallies []tally.Tally
	for _, r := range results {
		if seen[r.Key] {
			continue
		}
		seen[r.Key] = true
		tallies = append(tallies, tally.Tally{Key: r.Key, RawTitle: r.RawTitle, Count: r.Count})
	}

	top := report.TopN(tallies, reportTopN)

	if humanOutput {
		for i, t := range top {
			fmt.Printf("%3d. %-60s %6d\n", i+1, truncateString(t.RawTitle, 60), t.Count)
		}
		return nil
	}
	return outputJSON(top)
}

func runReportGaps(cmd *cobra.Command, args []string) error {
	results := loadMatches()
	gaps := report.Gaps(results)

	if humanOutput {
		if len(gaps) == 0 {
			fmt.Println("No subscription gaps found")
			return nil
		}
		for _, g := range gaps {
			issn := g.ISSN
			if issn == "" {
				issn = "-"
			}
			fmt.Printf("%-60s %-10s %6d\n", truncateString(g.Title, 60), issn, g.Count)
		}
		return nil
	}
	return outputJSON(gaps)
}
