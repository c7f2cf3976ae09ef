package storage

import (
	"database/sql"
	"fmt"

	"github.com/matsen/serialgap/internal/match"
	"github.com/matsen/serialgap/internal/serial"
)

// Match result tables, one per pipeline variant. Saving overwrites the
// whole table; re-running on identical inputs is idempotent.
const (
	CitationMatchesTable    = "citation_matches"
	PublicationMatchesTable = "publication_matches"
)

func validMatchTable(table string) error {
	if table != CitationMatchesTable && table != PublicationMatchesTable {
		return fmt.Errorf("unknown match table %q", table)
	}
	return nil
}

// createMatchesSchema creates a match result table and its indexes.
func (d *DB) createMatchesSchema(table string) error {
	if err := validMatchTable(table); err != nil {
		return err
	}
	schema := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %[1]s (
			serial_id INTEGER NOT NULL,
			title TEXT NOT NULL,
			issn TEXT,
			eissn TEXT,
			open_access TEXT NOT NULL,
			key TEXT NOT NULL,
			raw_title TEXT NOT NULL,
			count INTEGER NOT NULL,
			sub_title TEXT,
			sub_issn TEXT,
			sub_eissn TEXT,
			matched_by TEXT,
			subscribed INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_%[1]s_serial ON %[1]s(serial_id);
		CREATE INDEX IF NOT EXISTS idx_%[1]s_subscribed ON %[1]s(subscribed);
	`, table)
	_, err := d.db.Exec(schema)
	return err
}

// SaveMatches overwrites a match table with the given results.
func (d *DB) SaveMatches(table string, results []match.Result) (int, error) {
	if err := d.createMatchesSchema(table); err != nil {
		return 0, fmt.Errorf("creating %s schema: %w", table, err)
	}

	if _, err := d.db.Exec("DELETE FROM " + table); err != nil {
		return 0, fmt.Errorf("clearing %s: %w", table, err)
	}

	stmt, err := d.db.Prepare(fmt.Sprintf(`
		INSERT INTO %s (serial_id, title, issn, eissn, open_access,
			key, raw_title, count,
			sub_title, sub_issn, sub_eissn, matched_by, subscribed)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, table))
	if err != nil {
		return 0, fmt.Errorf("preparing %s insert: %w", table, err)
	}
	defer stmt.Close()

	for _, r := range results {
		var subTitle, subISSN, subEISSN, matchedBy sql.NullString
		subscribed := 0
		if r.Subscription != nil {
			subscribed = 1
			subTitle = sql.NullString{String: r.Subscription.Title, Valid: true}
			subISSN = sql.NullString{String: r.Subscription.ISSN, Valid: true}
			subEISSN = sql.NullString{String: r.Subscription.EISSN, Valid: true}
			matchedBy = sql.NullString{String: r.MatchedBy, Valid: true}
		}
		_, err = stmt.Exec(r.SerialID, r.Title, r.ISSN, r.EISSN, string(r.OpenAccess),
			r.Key, r.RawTitle, r.Count,
			subTitle, subISSN, subEISSN, matchedBy, subscribed)
		if err != nil {
			return 0, fmt.Errorf("inserting match for serial %d: %w", r.SerialID, err)
		}
	}

	return len(results), nil
}

// GetMatches returns all rows of a match table, count descending then key
// ascending.
func (d *DB) GetMatches(table string) ([]match.Result, error) {
	if err := d.createMatchesSchema(table); err != nil {
		return nil, fmt.Errorf("creating %s schema: %w", table, err)
	}

	rows, err := d.db.Query(fmt.Sprintf(`
		SELECT serial_id, title, issn, eissn, open_access,
			key, raw_title, count,
			sub_title, sub_issn, sub_eissn, matched_by, subscribed
		FROM %s
		ORDER BY count DESC, key ASC
	`, table))
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", table, err)
	}
	defer rows.Close()

	return scanMatches(rows)
}

// CountMatches returns the number of rows in a match table.
func (d *DB) CountMatches(table string) (int, error) {
	if err := validMatchTable(table); err != nil {
		return 0, err
	}
	return d.tableCount(table)
}

func scanMatches(rows *sql.Rows) ([]match.Result, error) {
	var results []match.Result
	for rows.Next() {
		var r match.Result
		var issn, eissn, subTitle, subISSN, subEISSN, matchedBy sql.NullString
		var oa string
		var subscribed int
		err := rows.Scan(&r.SerialID, &r.Title, &issn, &eissn, &oa,
			&r.Key, &r.RawTitle, &r.Count,
			&subTitle, &subISSN, &subEISSN, &matchedBy, &subscribed)
		if err != nil {
			return nil, fmt.Errorf("scanning match: %w", err)
		}
		r.ISSN = issn.String
		r.EISSN = eissn.String
		r.OpenAccess = serial.ParseOpenAccess(oa)
		if subscribed == 1 {
			r.Subscription = &serial.Subscription{
				Title: subTitle.String,
				ISSN:  subISSN.String,
				EISSN: subEISSN.String,
			}
			r.MatchedBy = matchedBy.String
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating matches: %w", err)
	}
	return results, nil
}
