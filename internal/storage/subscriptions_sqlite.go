package storage

import (
	"database/sql"
	"fmt"

	"github.com/matsen/serialgap/internal/serial"
)

// createSubscriptionsSchema creates the subscriptions table.
func (d *DB) createSubscriptionsSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS subscriptions (
			title TEXT NOT NULL,
			issn TEXT,
			eissn TEXT
		);

		CREATE INDEX IF NOT EXISTS idx_subscriptions_title ON subscriptions(title);
	`
	_, err := d.db.Exec(schema)
	return err
}

// ReplaceSubscriptions clears the subscriptions table and loads the given
// holdings rows. Rows are stored as imported; exact-duplicate dropping
// happens at import time, not here.
func (d *DB) ReplaceSubscriptions(subs []serial.Subscription) (int, error) {
	if err := d.createSubscriptionsSchema(); err != nil {
		return 0, fmt.Errorf("creating subscriptions schema: %w", err)
	}

	if _, err := d.db.Exec("DELETE FROM subscriptions"); err != nil {
		return 0, fmt.Errorf("clearing subscriptions table: %w", err)
	}

	stmt, err := d.db.Prepare(`
		INSERT INTO subscriptions (title, issn, eissn)
		VALUES (?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing subscriptions insert: %w", err)
	}
	defer stmt.Close()

	for _, s := range subs {
		if _, err := stmt.Exec(s.Title, s.ISSN, s.EISSN); err != nil {
			return 0, fmt.Errorf("inserting subscription %q: %w", s.Title, err)
		}
	}

	return len(subs), nil
}

// GetAllSubscriptions returns all holdings rows in insertion order.
func (d *DB) GetAllSubscriptions() ([]serial.Subscription, error) {
	if err := d.createSubscriptionsSchema(); err != nil {
		return nil, fmt.Errorf("creating subscriptions schema: %w", err)
	}

	rows, err := d.db.Query(`
		SELECT title, issn, eissn
		FROM subscriptions
		ORDER BY rowid
	`)
	if err != nil {
		return nil, fmt.Errorf("querying subscriptions: %w", err)
	}
	defer rows.Close()

	var subs []serial.Subscription
	for rows.Next() {
		var s serial.Subscription
		var issn, eissn sql.NullString
		if err := rows.Scan(&s.Title, &issn, &eissn); err != nil {
			return nil, fmt.Errorf("scanning subscription: %w", err)
		}
		s.ISSN = issn.String
		s.EISSN = eissn.String
		subs = append(subs, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating subscriptions: %w", err)
	}
	return subs, nil
}

// CountSubscriptions returns the number of stored holdings rows.
func (d *DB) CountSubscriptions() (int, error) {
	return d.tableCount("subscriptions")
}

// CountDistinctSubscriptions counts distinct (title, issn, eissn) tuples.
func (d *DB) CountDistinctSubscriptions() (int, error) {
	if err := d.createSubscriptionsSchema(); err != nil {
		return 0, fmt.Errorf("creating subscriptions schema: %w", err)
	}
	var count int
	err := d.db.QueryRow(`
		SELECT COUNT(*) FROM (
			SELECT DISTINCT title, issn, eissn FROM subscriptions
		)
	`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting distinct subscriptions: %w", err)
	}
	return count, nil
}
