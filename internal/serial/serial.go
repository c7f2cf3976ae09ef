// Package serial defines journal registry and subscription holding types.
package serial

// OpenAccess is the tri-state open-access flag from the serials registry.
type OpenAccess string

const (
	OpenAccessYes     OpenAccess = "true"
	OpenAccessNo      OpenAccess = "false"
	OpenAccessUnknown OpenAccess = "unknown"
)

// ParseOpenAccess maps a registry flag value to the tri-state type.
// Anything other than an explicit true/false is unknown.
func ParseOpenAccess(s string) OpenAccess {
	switch s {
	case "true":
		return OpenAccessYes
	case "false":
		return OpenAccessNo
	default:
		return OpenAccessUnknown
	}
}

// Serial is a journal registry entry. IDs are unique; titles are not — two
// serials may share a lower-cased title, and this system does not collapse
// them.
type Serial struct {
	ID         int64      `json:"id"`
	Title      string     `json:"title"`
	ISSN       string     `json:"issn,omitempty"`
	EISSN      string     `json:"eissn,omitempty"`
	OpenAccess OpenAccess `json:"open_access"`
}

// Subscription is one row of the institutional holdings export. Empty
// identifier fields mean the export did not carry them.
type Subscription struct {
	Title string `json:"title"`
	ISSN  string `json:"issn,omitempty"`
	EISSN string `json:"eissn,omitempty"`
}

// key is the identity tuple used for exact-duplicate detection.
func (s Subscription) key() [3]string {
	return [3]string{s.Title, s.ISSN, s.EISSN}
}

// DedupeSubscriptions drops rows whose (title, issn, eissn) tuple has
// already been seen, preserving first-seen order. Holdings exports repeat
// rows for year-range splits and overlapping packages; only exact repeats
// are dropped, near-duplicates with differing identifiers stay.
func DedupeSubscriptions(subs []Subscription) []Subscription {
	seen := make(map[[3]string]bool)
	out := make([]Subscription, 0, len(subs))
	for _, s := range subs {
		k := s.key()
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, s)
	}
	return out
}

// DistinctSubscriptions counts distinct (title, issn, eissn) tuples without
// modifying the input.
func DistinctSubscriptions(subs []Subscription) int {
	seen := make(map[[3]string]bool)
	for _, s := range subs {
		seen[s.key()] = true
	}
	return len(seen)
}
