// Package report shapes matched results into the tables the analysis emits.
package report

import (
	"sort"

	"github.com/matsen/serialgap/internal/match"
	"github.com/matsen/serialgap/internal/serial"
	"github.com/matsen/serialgap/internal/tally"
)

// Gap is one row of the cited-but-not-subscribed report.
type Gap struct {
	SerialID   int64             `json:"serial_id"`
	Title      string            `json:"title"`
	ISSN       string            `json:"issn,omitempty"`
	EISSN      string            `json:"eissn,omitempty"`
	OpenAccess serial.OpenAccess `json:"open_access"`
	Count      int               `json:"count"`
}

// TopN returns the n highest-count tallies. Ties break by normalized title
// ascending; the input is already sorted that way, so this is a prefix.
func TopN(tallies []tally.Tally, n int) []tally.Tally {
	sorted := make([]tally.Tally, len(tallies))
	copy(sorted, tallies)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Count != sorted[j].Count {
			return sorted[i].Count > sorted[j].Count
		}
		return sorted[i].Key < sorted[j].Key
	})
	if n >= 0 && n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}

// Gaps filters match results down to unsubscribed rows and projects them to
// the gap report shape, count descending with title-ascending tie-break.
func Gaps(results []match.Result) []Gap {
	var gaps []Gap
	for _, r := range results {
		if r.Subscribed() {
			continue
		}
		gaps = append(gaps, Gap{
			SerialID:   r.SerialID,
			Title:      r.Title,
			ISSN:       r.ISSN,
			EISSN:      r.EISSN,
			OpenAccess: r.OpenAccess,
			Count:      r.Count,
		})
	}
	sort.Slice(gaps, func(i, j int) bool {
		if gaps[i].Count != gaps[j].Count {
			return gaps[i].Count > gaps[j].Count
		}
		return gaps[i].Title < gaps[j].Title
	})
	return gaps
}
