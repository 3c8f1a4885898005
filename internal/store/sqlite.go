// Package store keeps named label sets in a SQLite catalog. Only label
// descriptors are stored; which labels are checked is never persisted.
package store

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/glebarez/sqlite"

	"github.com/young1lin/label-layout/labels"
)

// DefaultSet is the set name used when none is given
const DefaultSet = "default"

// DB wraps the SQLite database connection
type DB struct {
	*sql.DB
}

// SetInfo summarises one stored label set
type SetInfo struct {
	Name      string
	Count     int
	UpdatedAt time.Time
}

// Open opens the SQLite database and creates tables if needed
func Open(dbPath string) (*DB, error) {
	sqlDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := sqlDB.Exec("PRAGMA journal_mode=WAL"); err != nil {
		sqlDB.Close()
		return nil, err
	}

	db := &DB{DB: sqlDB}

	if err := db.createTables(); err != nil {
		sqlDB.Close()
		return nil, err
	}

	return db, nil
}

// createTables creates the necessary database tables
func (db *DB) createTables() error {
	query := `
	CREATE TABLE IF NOT EXISTS labels (
		set_name TEXT NOT NULL,
		id TEXT NOT NULL,
		name TEXT NOT NULL,
		position INTEGER NOT NULL,
		updated_at INTEGER NOT NULL,
		PRIMARY KEY (set_name, id)
	);

	CREATE INDEX IF NOT EXISTS idx_labels_position ON labels(set_name, position);
	`

	_, err := db.Exec(query)
	return err
}

// ReplaceSet stores labels as the whole content of set, in order. Entries
// sharing an id collapse into the first one, keeping the last name.
func (db *DB) ReplaceSet(set string, list []labels.Label) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM labels WHERE set_name = ?", set); err != nil {
		return fmt.Errorf("failed to clear set %q: %w", set, err)
	}

	query := `
	INSERT INTO labels (set_name, id, name, position, updated_at)
	VALUES (?, ?, ?, ?, ?)
	ON CONFLICT(set_name, id) DO UPDATE SET
		name = excluded.name,
		updated_at = excluded.updated_at
	`
	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().Unix()
	for i, l := range list {
		if _, err := stmt.Exec(set, l.ID, l.Name, i, now); err != nil {
			return fmt.Errorf("failed to insert label %q: %w", l.ID, err)
		}
	}

	return tx.Commit()
}

// LoadSet returns the labels of set in stored order. An unknown set is empty.
func (db *DB) LoadSet(set string) ([]labels.Label, error) {
	rows, err := db.Query("SELECT id, name FROM labels WHERE set_name = ? ORDER BY position", set)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []labels.Label{}
	for rows.Next() {
		var l labels.Label
		if err := rows.Scan(&l.ID, &l.Name); err != nil {
			return nil, err
		}
		out = append(out, l)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return out, nil
}

// ListSets returns every stored set, most recently updated first
func (db *DB) ListSets() ([]SetInfo, error) {
	query := `
	SELECT set_name, COUNT(*), MAX(updated_at)
	FROM labels
	GROUP BY set_name
	ORDER BY MAX(updated_at) DESC, set_name
	`

	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sets []SetInfo
	for rows.Next() {
		var s SetInfo
		var ts int64
		if err := rows.Scan(&s.Name, &s.Count, &ts); err != nil {
			return nil, err
		}
		s.UpdatedAt = time.Unix(ts, 0)
		sets = append(sets, s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sets, nil
}

// DeleteSet removes a set
func (db *DB) DeleteSet(set string) error {
	_, err := db.Exec("DELETE FROM labels WHERE set_name = ?", set)
	return err
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.DB.Close()
}
