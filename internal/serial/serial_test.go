package serial

import "testing"

func TestParseOpenAccess(t *testing.T) {
	tests := []struct {
		input string
		want  OpenAccess
	}{
		{"true", OpenAccessYes},
		{"false", OpenAccessNo},
		{"", OpenAccessUnknown},
		{"TRUE", OpenAccessUnknown},
		{"yes", OpenAccessUnknown},
	}
	for _, tt := range tests {
		if got := ParseOpenAccess(tt.input); got != tt.want {
			t.Errorf("ParseOpenAccess(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestDedupeSubscriptions(t *testing.T) {
	subs := []Subscription{
		{Title: "Nature", ISSN: "0028-0836", EISSN: "1476-4687"},
		{Title: "Nature", ISSN: "0028-0836", EISSN: "1476-4687"}, // exact repeat
		{Title: "Nature", ISSN: "0028-0836"},                     // differs in eissn, kept
		{Title: "Cell", ISSN: "0092-8674"},
		{Title: "Cell", ISSN: "0092-8674"}, // exact repeat
	}

	got := DedupeSubscriptions(subs)
	if len(got) != 3 {
		t.Fatalf("expected 3 rows after dedupe, got %d", len(got))
	}
	// First-seen order preserved
	if got[0].Title != "Nature" || got[0].EISSN != "1476-4687" {
		t.Errorf("unexpected first row: %+v", got[0])
	}
	if got[1].Title != "Nature" || got[1].EISSN != "" {
		t.Errorf("near-duplicate with differing eissn should survive: %+v", got[1])
	}
	if got[2].Title != "Cell" {
		t.Errorf("unexpected third row: %+v", got[2])
	}
}

func TestDedupeSubscriptions_UniqueRowsSurvive(t *testing.T) {
	subs := []Subscription{
		{Title: "Annals of Applied Probability", ISSN: "1050-5164", EISSN: "2168-8737"},
		{Title: "Biometrika", ISSN: "0006-3444"},
		{Title: "Health"},
	}
	got := DedupeSubscriptions(subs)
	if len(got) != len(subs) {
		t.Fatalf("dedupe removed a unique row: got %d, want %d", len(got), len(subs))
	}
}

func TestDistinctSubscriptions(t *testing.T) {
	subs := []Subscription{
		{Title: "Nature", ISSN: "0028-0836"},
		{Title: "Nature", ISSN: "0028-0836"},
		{Title: "Cell"},
	}
	if got := DistinctSubscriptions(subs); got != 2 {
		t.Errorf("DistinctSubscriptions = %d, want 2", got)
	}
	if len(subs) != 3 {
		t.Errorf("DistinctSubscriptions must not mutate input, len now %d", len(subs))
	}
}
