package main

import (
	"fmt"

	"github.com/matsen/serialgap/internal/config"
	"github.com/matsen/serialgap/internal/document"
	"github.com/matsen/serialgap/internal/match"
	"github.com/matsen/serialgap/internal/storage"
	"github.com/matsen/serialgap/internal/tally"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(matchCmd)
}

var matchCmd = &cobra.Command{
	Use:   "match <documents.jsonl>",
	Short: "Run the matching pipeline over a document export",
	Long: `Run the full matching pipeline over a document export.

Reads journal documents from the JSONL export, tallies cited source titles
and publication venues, joins the tallies against the serials registry
snapshot (inner, on normalized title) and the imported holdings
(left-outer, on title or ISSN or eISSN), and persists both result tables,
replacing previous runs.

Requires a prior 'sg fetch' (serials) and 'sg import' (holdings).

Examples:
  sg match documents.jsonl`,
	Args: cobra.ExactArgs(1),
	RunE: runMatch,
}

// MatchSummary is the match command's output.
type MatchSummary struct {
	Documents        int `json:"documents"`
	JournalDocuments int `json:"journal_documents"`

	CitationTallies    int `json:"citation_tallies"`
	CitationMatches    int `json:"citation_matches"`
	CitationGaps       int `json:"citation_gaps"`
	PublicationTallies int `json:"publication_tallies"`
	PublicationMatches int `json:"publication_matches"`
	PublicationGaps    int `json:"publication_gaps"`
}

func runMatch(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	db := mustOpenDatabase(repoRoot)
	defer db.Close()

	docs, err := document.ReadAll(args[0])
	if err != nil {
		exitWithError(ExitDataError, "reading documents: %v", err)
	}

	serials, err := db.GetAllSerials()
	if err != nil {
		exitWithError(ExitError, "loading serials: %v", err)
	}
	if len(serials) == 0 {
		exitWithError(ExitConfigError, "no serials in database; run 'sg fetch' first")
	}

	subs, err := db.GetAllSubscriptions()
	if err != nil {
		exitWithError(ExitError, "loading holdings: %v", err)
	}
	if len(subs) == 0 {
		exitWithError(ExitConfigError, "no holdings in database; run 'sg import' first")
	}

	summary := MatchSummary{Documents: len(docs)}
	for _, d := range docs {
		if d.IsJournal() {
			summary.JournalDocuments++
		}
	}

	citations := tally.Citations(docs)
	citationResults := match.Holdings(match.Serials(citations, serials), subs)
	summary.CitationTallies = len(citations)
	summary.CitationMatches = len(citationResults)
	summary.CitationGaps = countGaps(citationResults)

	publications := tally.Publications(docs)
	publicationResults := match.Holdings(match.Serials(publications, serials), subs)
	summary.PublicationTallies = len(publications)
	summary.PublicationMatches = len(publicationResults)
	summary.PublicationGaps = countGaps(publicationResults)

	if _, err := db.SaveMatches(storage.CitationMatchesTable, citationResults); err != nil {
		exitWithError(ExitError, "saving citation matches: %v", err)
	}
	if _, err := db.SaveMatches(storage.PublicationMatchesTable, publicationResults); err != nil {
		exitWithError(ExitError, "saving publication matches: %v", err)
	}

	// Remember the export path for later runs
	if cfg, err := config.Load(repoRoot); err == nil {
		cfg.DocumentsPath = args[0]
		_ = cfg.Save(repoRoot)
	}

	if humanOutput {
		fmt.Printf("Matched %d journal documents (of %d total)\n", summary.JournalDocuments, summary.Documents)
		fmt.Printf("  citations:    %d tallies, %d matched rows, %d unsubscribed\n",
			summary.CitationTallies, summary.CitationMatches, summary.CitationGaps)
		fmt.Printf("  publications: %d tallies, %d matched rows, %d unsubscribed\n",
			summary.PublicationTallies, summary.PublicationMatches, summary.PublicationGaps)
		return nil
	}
	return outputJSON(summary)
}

func countGaps(results []match.Result) int {
	n := 0
	for _, r := range results {
		if !r.Subscribed() {
			n++
		}
	}
	return n
}
