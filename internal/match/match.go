// Package match joins citation tallies against the serials registry and
// subscription holdings.
package match

import (
	"github.com/matsen/serialgap/internal/normalize"
	"github.com/matsen/serialgap/internal/serial"
	"github.com/matsen/serialgap/internal/tally"
)

// Match provenance values recorded in Result.MatchedBy.
const (
	MatchedByTitle = "title"
	MatchedByISSN  = "issn"
	MatchedByEISSN = "eissn"
)

// Result is one row of the matched output: a tally joined to a serial,
// optionally joined to a subscription. A nil Subscription means the journal
// is cited (or published in) but not subscribed to — the signal this system
// exists to surface.
type Result struct {
	// Serial side
	SerialID   int64             `json:"serial_id"`
	Title      string            `json:"title"` // Serial title as registered
	ISSN       string            `json:"issn,omitempty"`
	EISSN      string            `json:"eissn,omitempty"`
	OpenAccess serial.OpenAccess `json:"open_access"`

	// Tally side
	Key      string `json:"key"` // Normalized title the join fired on
	RawTitle string `json:"raw_title"`
	Count    int    `json:"count"`

	// Subscription side; nil when no holding matched.
	Subscription *serial.Subscription `json:"subscription,omitempty"`
	MatchedBy    string               `json:"matched_by,omitempty"` // title, issn, eissn
}

// Subscribed reports whether the subscription side of the row is populated.
func (r Result) Subscribed() bool {
	return r.Subscription != nil
}

// Serials inner-joins tallies against the registry on normalized title.
// Tallies with no registered serial are dropped; a tally whose normalized
// title matches several serials fans out into one row per serial.
func Serials(tallies []tally.Tally, serials []serial.Serial) []Result {
	// Build lookup from normalized serial title to all serials sharing it.
	// Ambiguous titles are preserved, not collapsed.
	byTitle := make(map[string][]serial.Serial)
	for _, s := range serials {
		key := normalize.Title(s.Title)
		if normalize.Missing(key) {
			continue
		}
		byTitle[key] = append(byTitle[key], s)
	}

	var results []Result
	for _, tl := range tallies {
		for _, s := range byTitle[tl.Key] {
			results = append(results, Result{
				SerialID:   s.ID,
				Title:      s.Title,
				ISSN:       s.ISSN,
				EISSN:      s.EISSN,
				OpenAccess: s.OpenAccess,
				Key:        tl.Key,
				RawTitle:   tl.RawTitle,
				Count:      tl.Count,
			})
		}
	}
	return results
}

// Holdings left-outer-joins serial-matched results against subscription
// rows. A row matches a subscription when the normalized titles are equal,
// or when a present serial identifier equals either identifier on the
// subscription side. Missing identifiers never participate: an empty ISSN
// on either side cannot satisfy an identifier branch, so only the title
// branch can fire for identifier-less rows.
//
// Matching rows fan out (duplicate holdings multiply output rows);
// unmatched rows are retained with a nil subscription.
func Holdings(results []Result, subs []serial.Subscription) []Result {
	var out []Result
	for _, r := range results {
		matched := false
		for i := range subs {
			by, ok := matchSubscription(r, subs[i])
			if !ok {
				continue
			}
			matched = true
			row := r
			row.Subscription = &subs[i]
			row.MatchedBy = by
			out = append(out, row)
		}
		if !matched {
			out = append(out, r)
		}
	}
	return out
}

// matchSubscription applies the 3-way OR join condition and reports which
// branch fired. Title equality is checked first, so provenance prefers the
// title branch when several branches would match.
func matchSubscription(r Result, sub serial.Subscription) (string, bool) {
	if !normalize.Missing(r.Key) && r.Key == normalize.Title(sub.Title) {
		return MatchedByTitle, true
	}
	if r.ISSN != "" && (r.ISSN == sub.ISSN || r.ISSN == sub.EISSN) {
		return MatchedByISSN, true
	}
	if r.EISSN != "" && (r.EISSN == sub.ISSN || r.EISSN == sub.EISSN) {
		return MatchedByEISSN, true
	}
	return "", false
}
