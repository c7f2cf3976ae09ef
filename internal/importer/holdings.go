// Package importer parses subscription holdings exports.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/matsen/serialgap/internal/serial"
)

// HoldingsResult reports what a holdings import produced.
type HoldingsResult struct {
	Subscriptions []serial.Subscription `json:"-"`
	Imported      int                   `json:"imported"`
	Duplicates    int                   `json:"duplicates"` // exact-duplicate rows dropped
	Skipped       int                   `json:"skipped"`    // rows with no usable fields
}

// ParseHoldings reads a holdings CSV export. The first row is the header;
// column names are sanitized (trimmed, lower-cased, spaces and hyphens
// collapsed to underscores) before mapping, so "Print ISSN", "print-issn"
// and "print_issn" all land on the same column. Only title, issn, and eissn
// columns are consumed; everything else in the export is ignored.
//
// Exact-duplicate rows — same (title, issn, eissn) tuple — are dropped here
// and only here; no other table is deduplicated.
func ParseHoldings(r io.Reader) (*HoldingsResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // Allow variable number of fields
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing holdings CSV: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("holdings export is empty")
	}

	colMap := buildColumnMap(rows[0])
	if _, ok := colMap["title"]; !ok {
		return nil, fmt.Errorf("holdings export has no title column")
	}

	result := &HoldingsResult{}
	var all []serial.Subscription
	for _, row := range rows[1:] {
		sub := rowToSubscription(row, colMap)
		if sub.Title == "" && sub.ISSN == "" && sub.EISSN == "" {
			result.Skipped++
			continue
		}
		all = append(all, sub)
	}

	result.Subscriptions = serial.DedupeSubscriptions(all)
	result.Imported = len(result.Subscriptions)
	result.Duplicates = len(all) - len(result.Subscriptions)
	return result, nil
}

// columnAliases maps sanitized header names to the fields we consume.
var columnAliases = map[string]string{
	"title":         "title",
	"journal_title": "title",
	"issn":          "issn",
	"print_issn":    "issn",
	"eissn":         "eissn",
	"e_issn":        "eissn",
	"online_issn":   "eissn",
}

// buildColumnMap maps column index to canonical field name.
func buildColumnMap(header []string) map[string]int {
	colMap := make(map[string]int)
	for i, col := range header {
		name := sanitizeHeader(col)
		field, ok := columnAliases[name]
		if !ok {
			continue
		}
		if _, taken := colMap[field]; taken {
			continue // first matching column wins
		}
		colMap[field] = i
	}
	return colMap
}

// sanitizeHeader normalizes an export column name: trim, lower-case, and
// collapse spaces and hyphens to single underscores.
func sanitizeHeader(col string) string {
	col = strings.ToLower(strings.TrimSpace(col))
	col = strings.ReplaceAll(col, "-", " ")
	col = strings.Join(strings.Fields(col), "_")
	return col
}

func rowToSubscription(row []string, colMap map[string]int) serial.Subscription {
	field := func(name string) string {
		idx, ok := colMap[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}
	return serial.Subscription{
		Title: field("title"),
		ISSN:  field("issn"),
		EISSN: field("eissn"),
	}
}
