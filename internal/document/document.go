// Package document defines the core domain types for bibliographic documents.
package document

// TypeJournal is the document type tag that participates in journal-level
// analysis. All other types (Conference Proceeding, Monograph, ...) are
// excluded from both reference and venue tallies.
const TypeJournal = "Journal"

// Document represents a bibliographic record exported from the document store.
type Document struct {
	ID string `json:"id"` // Store identifier

	// Type is the aggregation type tag: Journal, Conference Proceeding, etc.
	Type string `json:"type"`

	// Publication venue
	Venue   string `json:"venue"`              // Venue title as recorded
	VenueID string `json:"venue_id,omitempty"` // Venue identifier, if known

	// References cited by this document, in citation order.
	References []Reference `json:"references,omitempty"`
}

// Reference is a single entry in a document's reference list. Either field
// may be empty: reference metadata is frequently incomplete, and the
// downstream filter rules absorb missing values rather than reject them.
type Reference struct {
	SourceTitle string `json:"source_title,omitempty"` // Journal/serial the cited work appeared in
	Title       string `json:"title,omitempty"`        // Title of the cited work itself
}

// IsJournal reports whether the document participates in journal analysis.
func (d Document) IsJournal() bool {
	return d.Type == TypeJournal
}

// PairTitles combines parallel source-title and work-title lists into
// reference pairs. Exports sometimes carry the two lists with mismatched
// lengths; pairing truncates to the shorter list, so trailing entries on the
// longer side are dropped rather than paired with a missing partner.
func PairTitles(sources, titles []string) []Reference {
	n := len(sources)
	if len(titles) < n {
		n = len(titles)
	}
	refs := make([]Reference, 0, n)
	for i := 0; i < n; i++ {
		refs = append(refs, Reference{SourceTitle: sources[i], Title: titles[i]})
	}
	return refs
}
