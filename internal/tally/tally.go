// Package tally counts citations and publications per normalized journal title.
package tally

import (
	"sort"

	"github.com/matsen/serialgap/internal/document"
	"github.com/matsen/serialgap/internal/normalize"
)

// Tally is a grouped count keyed by normalized title. RawTitle is the
// first-seen raw spelling, carried for display only — grouping always uses
// the normalized key so casing variants collapse into one row.
type Tally struct {
	Key      string `json:"key"` // Normalized title (grouping key)
	RawTitle string `json:"raw_title"`
	Count    int    `json:"count"`
}

// KeepPair reports whether a reference pair survives the extraction filter.
//
// A pair is dropped when:
//   - both fields are missing, or
//   - the normalized source title equals the normalized work title
//     (the reference is a book or misfiled monograph, not a distinct
//     journal source), or
//   - the source title is missing (the source is the only field retained
//     downstream).
//
// All three rules apply together.
func KeepPair(ref document.Reference) bool {
	src := normalize.Title(ref.SourceTitle)
	work := normalize.Title(ref.Title)

	if normalize.Missing(src) && normalize.Missing(work) {
		return false
	}
	if !normalize.Missing(src) && !normalize.Missing(work) && src == work {
		return false
	}
	if normalize.Missing(src) {
		return false
	}
	return true
}

// Citations tallies cited source titles across all journal documents.
// Non-journal documents are excluded entirely; pairs are filtered per
// KeepPair before counting.
func Citations(docs []document.Document) []Tally {
	acc := newAccumulator()
	for _, doc := range docs {
		if !doc.IsJournal() {
			continue
		}
		for _, ref := range doc.References {
			if !KeepPair(ref) {
				continue
			}
			acc.add(ref.SourceTitle)
		}
	}
	return acc.sorted()
}

// Publications tallies publication-venue titles across all journal
// documents, one count per document.
func Publications(docs []document.Document) []Tally {
	acc := newAccumulator()
	for _, doc := range docs {
		if !doc.IsJournal() {
			continue
		}
		key := normalize.Title(doc.Venue)
		if normalize.Missing(key) {
			continue
		}
		acc.add(doc.Venue)
	}
	return acc.sorted()
}

// accumulator groups counts by normalized title while remembering the
// first-seen raw spelling.
type accumulator struct {
	counts map[string]int
	raw    map[string]string
}

func newAccumulator() *accumulator {
	return &accumulator{
		counts: make(map[string]int),
		raw:    make(map[string]string),
	}
}

func (a *accumulator) add(rawTitle string) {
	key := normalize.Title(rawTitle)
	if _, ok := a.raw[key]; !ok {
		a.raw[key] = rawTitle
	}
	a.counts[key]++
}

// sorted returns tallies ordered by count descending, key ascending.
func (a *accumulator) sorted() []Tally {
	out := make([]Tally, 0, len(a.counts))
	for key, count := range a.counts {
		out = append(out, Tally{Key: key, RawTitle: a.raw[key], Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Key < out[j].Key
	})
	return out
}
