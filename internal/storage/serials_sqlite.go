package storage

import (
	"database/sql"
	"fmt"

	"github.com/matsen/serialgap/internal/normalize"
	"github.com/matsen/serialgap/internal/serial"
)

// createSerialsSchema creates the serials table and indexes.
func (d *DB) createSerialsSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS serials (
			id INTEGER PRIMARY KEY,
			title TEXT NOT NULL,
			norm_title TEXT NOT NULL,
			issn TEXT,
			eissn TEXT,
			open_access TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_serials_norm_title ON serials(norm_title);
		CREATE INDEX IF NOT EXISTS idx_serials_issn ON serials(issn);
	`
	_, err := d.db.Exec(schema)
	return err
}

// ReplaceSerials clears the serials table and loads the given registry
// snapshot. Returns the number of rows written.
func (d *DB) ReplaceSerials(serials []serial.Serial) (int, error) {
	if err := d.createSerialsSchema(); err != nil {
		return 0, fmt.Errorf("creating serials schema: %w", err)
	}

	if _, err := d.db.Exec("DELETE FROM serials"); err != nil {
		return 0, fmt.Errorf("clearing serials table: %w", err)
	}

	stmt, err := d.db.Prepare(`
		INSERT INTO serials (id, title, norm_title, issn, eissn, open_access)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing serials insert: %w", err)
	}
	defer stmt.Close()

	for _, s := range serials {
		_, err = stmt.Exec(s.ID, s.Title, normalize.Title(s.Title), s.ISSN, s.EISSN, string(s.OpenAccess))
		if err != nil {
			return 0, fmt.Errorf("inserting serial %d: %w", s.ID, err)
		}
	}

	return len(serials), nil
}

// GetAllSerials returns all serials ordered by id.
func (d *DB) GetAllSerials() ([]serial.Serial, error) {
	if err := d.createSerialsSchema(); err != nil {
		return nil, fmt.Errorf("creating serials schema: %w", err)
	}

	rows, err := d.db.Query(`
		SELECT id, title, issn, eissn, open_access
		FROM serials
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying serials: %w", err)
	}
	defer rows.Close()

	return scanSerials(rows)
}

// CountSerials returns the number of registered serials.
func (d *DB) CountSerials() (int, error) {
	return d.tableCount("serials")
}

func scanSerials(rows *sql.Rows) ([]serial.Serial, error) {
	var serials []serial.Serial
	for rows.Next() {
		var s serial.Serial
		var issn, eissn sql.NullString
		var oa string
		if err := rows.Scan(&s.ID, &s.Title, &issn, &eissn, &oa); err != nil {
			return nil, fmt.Errorf("scanning serial: %w", err)
		}
		s.ISSN = issn.String
		s.EISSN = eissn.String
		s.OpenAccess = serial.ParseOpenAccess(oa)
		serials = append(serials, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating serials: %w", err)
	}
	return serials, nil
}
