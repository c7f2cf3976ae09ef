package tally

import (
	"testing"

	"github.com/matsen/serialgap/internal/document"
)

func TestKeepPair(t *testing.T) {
	tests := []struct {
		name string
		ref  document.Reference
		want bool
	}{
		{
			name: "distinct source and work kept",
			ref:  document.Reference{SourceTitle: "Nature", Title: "A result"},
			want: true,
		},
		{
			name: "both missing dropped",
			ref:  document.Reference{},
			want: false,
		},
		{
			name: "identical titles dropped",
			ref:  document.Reference{SourceTitle: "Health", Title: "Health"},
			want: false,
		},
		{
			name: "identical after normalization dropped",
			ref:  document.Reference{SourceTitle: "HEALTH", Title: "Health"},
			want: false,
		},
		{
			name: "missing source dropped",
			ref:  document.Reference{Title: "Orphan work title"},
			want: false,
		},
		{
			name: "missing work title kept",
			ref:  document.Reference{SourceTitle: "Nature"},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KeepPair(tt.ref); got != tt.want {
				t.Errorf("KeepPair(%+v) = %v, want %v", tt.ref, got, tt.want)
			}
		})
	}
}

// All three drop rules must apply together. A pipeline that only applies the
// first rule (both-missing) would keep the self-referencing pair below and
// produce a "health" tally row.
func TestCitations_DropsSelfCitedPair(t *testing.T) {
	docs := []document.Document{
		{
			Type: "Journal",
			References: []document.Reference{
				{SourceTitle: "Health", Title: "Health"},
				{SourceTitle: "Nature", Title: "Some article"},
			},
		},
	}

	got := Citations(docs)
	if len(got) != 1 {
		t.Fatalf("expected 1 tally row, got %d: %+v", len(got), got)
	}
	if got[0].Key != "nature" {
		t.Errorf("expected key \"nature\", got %q", got[0].Key)
	}
	for _, tl := range got {
		if tl.Key == "health" {
			t.Error("self-cited pair leaked into tallies")
		}
	}
}

func TestCitations_GroupsByNormalizedKey(t *testing.T) {
	docs := []document.Document{
		{
			Type: "Journal",
			References: []document.Reference{
				{SourceTitle: "Astrophysical Journal", Title: "Paper one"},
			},
		},
		{
			Type: "Journal",
			References: []document.Reference{
				{SourceTitle: "ASTROPHYSICAL JOURNAL", Title: "Paper two"},
			},
		},
	}

	got := Citations(docs)
	if len(got) != 1 {
		t.Fatalf("casing variants should collapse to one row, got %d", len(got))
	}
	if got[0].Count != 2 {
		t.Errorf("count = %d, want 2", got[0].Count)
	}
	if got[0].Key != "astrophysical journal" {
		t.Errorf("key = %q, want \"astrophysical journal\"", got[0].Key)
	}
	// Raw title is the first spelling seen in document order
	if got[0].RawTitle != "Astrophysical Journal" {
		t.Errorf("raw title = %q, want first-seen spelling", got[0].RawTitle)
	}
}

func TestCitations_ExcludesNonJournalDocuments(t *testing.T) {
	docs := []document.Document{
		{
			Type: "Conference Proceeding",
			References: []document.Reference{
				{SourceTitle: "Nature", Title: "Ignored"},
			},
		},
	}
	if got := Citations(docs); len(got) != 0 {
		t.Errorf("non-journal references must be excluded, got %+v", got)
	}
}

func TestCitations_SortOrder(t *testing.T) {
	docs := []document.Document{
		{
			Type: "Journal",
			References: []document.Reference{
				{SourceTitle: "Zoology", Title: "a"},
				{SourceTitle: "Botany", Title: "b"},
				{SourceTitle: "Botany", Title: "c"},
				{SourceTitle: "Astronomy", Title: "d"},
			},
		},
	}

	got := Citations(docs)
	if len(got) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(got))
	}
	// Count desc, then key asc
	wantKeys := []string{"botany", "astronomy", "zoology"}
	for i, key := range wantKeys {
		if got[i].Key != key {
			t.Errorf("row %d: key = %q, want %q", i, got[i].Key, key)
		}
	}
}

func TestPublications(t *testing.T) {
	docs := []document.Document{
		{Type: "Journal", Venue: "Nature"},
		{Type: "Journal", Venue: "NATURE"},
		{Type: "Journal", Venue: "Cell"},
		{Type: "Journal", Venue: ""},       // missing venue skipped
		{Type: "Monograph", Venue: "Cell"}, // non-journal skipped
	}

	got := Publications(docs)
	if len(got) != 2 {
		t.Fatalf("expected 2 rows, got %d: %+v", len(got), got)
	}
	if got[0].Key != "nature" || got[0].Count != 2 {
		t.Errorf("unexpected first row: %+v", got[0])
	}
	if got[1].Key != "cell" || got[1].Count != 1 {
		t.Errorf("unexpected second row: %+v", got[1])
	}
}

func TestCitations_CountsAtLeastOne(t *testing.T) {
	docs := []document.Document{
		{
			Type: "Journal",
			References: []document.Reference{
				{SourceTitle: "Nature", Title: "x"},
			},
		},
	}
	for _, tl := range Citations(docs) {
		if tl.Count < 1 {
			t.Errorf("tally %q has count %d, want >= 1", tl.Key, tl.Count)
		}
	}
}
