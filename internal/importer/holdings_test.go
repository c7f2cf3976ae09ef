package importer

import (
	"strings"
	"testing"
)

func TestParseHoldings(t *testing.T) {
	csvData := `Title,Print ISSN,E-ISSN,Publisher
Annals of Applied Probability,1050-5164,2168-8737,IMS
Nature,0028-0836,1476-4687,Springer
Nature,0028-0836,1476-4687,Springer
Cell,0092-8674,,Elsevier
`
	result, err := ParseHoldings(strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("ParseHoldings failed: %v", err)
	}

	if result.Imported != 3 {
		t.Errorf("Imported = %d, want 3", result.Imported)
	}
	if result.Duplicates != 1 {
		t.Errorf("Duplicates = %d, want 1", result.Duplicates)
	}
	if len(result.Subscriptions) != 3 {
		t.Fatalf("expected 3 subscriptions, got %d", len(result.Subscriptions))
	}

	first := result.Subscriptions[0]
	if first.Title != "Annals of Applied Probability" || first.ISSN != "1050-5164" || first.EISSN != "2168-8737" {
		t.Errorf("unexpected first subscription: %+v", first)
	}
	// Publisher column ignored, empty eISSN stays empty
	if result.Subscriptions[2].EISSN != "" {
		t.Errorf("empty eISSN should stay empty: %+v", result.Subscriptions[2])
	}
}

func TestParseHoldings_HeaderVariants(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{name: "spaces", header: "Journal Title,Print ISSN,Online ISSN"},
		{name: "hyphens", header: "title,issn,e-issn"},
		{name: "underscores", header: "title,print_issn,e_issn"},
		{name: "mixed case extra spaces", header: "  TITLE ,  ISSN , EISSN "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			csvData := tt.header + "\nNature,0028-0836,1476-4687\n"
			result, err := ParseHoldings(strings.NewReader(csvData))
			if err != nil {
				t.Fatalf("ParseHoldings failed: %v", err)
			}
			if len(result.Subscriptions) != 1 {
				t.Fatalf("expected 1 subscription, got %d", len(result.Subscriptions))
			}
			s := result.Subscriptions[0]
			if s.Title != "Nature" || s.ISSN != "0028-0836" || s.EISSN != "1476-4687" {
				t.Errorf("columns mismapped: %+v", s)
			}
		})
	}
}

func TestParseHoldings_ShortRows(t *testing.T) {
	csvData := "title,issn,eissn\nNature,0028-0836\nCell\n"
	result, err := ParseHoldings(strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("ParseHoldings failed: %v", err)
	}
	if len(result.Subscriptions) != 2 {
		t.Fatalf("short rows should still import, got %d", len(result.Subscriptions))
	}
	if result.Subscriptions[0].EISSN != "" || result.Subscriptions[1].ISSN != "" {
		t.Errorf("missing trailing fields should be empty: %+v", result.Subscriptions)
	}
}

func TestParseHoldings_SkipsEmptyRows(t *testing.T) {
	csvData := "title,issn,eissn\n,,\nNature,,\n"
	result, err := ParseHoldings(strings.NewReader(csvData))
	if err != nil {
		t.Fatal(err)
	}
	if result.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", result.Skipped)
	}
	if result.Imported != 1 {
		t.Errorf("Imported = %d, want 1", result.Imported)
	}
}

func TestParseHoldings_NoTitleColumn(t *testing.T) {
	if _, err := ParseHoldings(strings.NewReader("publisher,year\nSpringer,2020\n")); err == nil {
		t.Fatal("expected error for export without title column")
	}
}

func TestParseHoldings_Empty(t *testing.T) {
	if _, err := ParseHoldings(strings.NewReader("")); err == nil {
		t.Fatal("expected error for empty export")
	}
}

func TestSanitizeHeader(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Print ISSN", "print_issn"},
		{"e-issn", "e_issn"},
		{"  Journal   Title ", "journal_title"},
		{"E-ISSN", "e_issn"},
	}
	for _, tt := range tests {
		if got := sanitizeHeader(tt.input); got != tt.want {
			t.Errorf("sanitizeHeader(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
