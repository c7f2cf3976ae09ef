// Package storage persists serials, holdings, and match results in SQLite.
package storage

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection.
type DB struct {
	db *sql.DB
}

// OpenDB opens or creates a SQLite database at the given path.
func OpenDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

// tableCount returns the row count of a table, or 0 if the table does not
// exist yet.
func (d *DB) tableCount(table string) (int, error) {
	var count int
	err := d.db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&count)
	if err != nil {
		if exists, checkErr := d.tableExists(table); checkErr == nil && !exists {
			return 0, nil
		}
		return 0, fmt.Errorf("counting %s: %w", table, err)
	}
	return count, nil
}

func (d *DB) tableExists(table string) (bool, error) {
	var name string
	err := d.db.QueryRow(
		"SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table,
	).Scan(&name)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
