// Package store exports aggregated pass results to a SQLite database so
// other tools can query them without re-parsing the log.
package store

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/halwyn/wowlog-parser/internal/classify"
	"github.com/halwyn/wowlog-parser/internal/stats"
)

const ddl = `
CREATE TABLE IF NOT EXISTS healing (
	actor     TEXT NOT NULL,
	spell_id  INTEGER NOT NULL,
	spell     TEXT NOT NULL,
	target    TEXT NOT NULL,
	count     INTEGER NOT NULL,
	total     INTEGER NOT NULL,
	effective INTEGER NOT NULL,
	crits     INTEGER NOT NULL,
	ticks     INTEGER NOT NULL,
	PRIMARY KEY (actor, spell_id, spell, target)
);
CREATE TABLE IF NOT EXISTS dispels (
	actor   TEXT NOT NULL,
	removed TEXT NOT NULL,
	count   INTEGER NOT NULL,
	stolen  INTEGER NOT NULL,
	PRIMARY KEY (actor, removed)
);
CREATE TABLE IF NOT EXISTS units (
	name  TEXT PRIMARY KEY,
	guid  INTEGER NOT NULL,
	flags INTEGER NOT NULL,
	seen  INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS classes (
	name      TEXT PRIMARY KEY,
	class     TEXT NOT NULL,
	pets      TEXT NOT NULL,
	from_hint INTEGER NOT NULL
);
`

// Store wraps the export database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and ensures the
// schema exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open: %w", err)
	}
	if _, err := db.Exec(ddl); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// WriteHealing bulk-inserts the healing records inside one transaction,
// replacing rows from an earlier export of the same pass.
func (s *Store) WriteHealing(h *stats.Healing) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("store: begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT OR REPLACE INTO healing
		(actor, spell_id, spell, target, count, total, effective, crits, ticks)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("store: prepare: %w", err)
	}
	defer stmt.Close()

	for _, rec := range h.Records() {
		if _, err := stmt.Exec(rec.Actor, rec.Spell.ID, rec.Spell.Name, rec.Target,
			rec.Count, rec.Total, rec.Effective, rec.Crit.Count, rec.Tick.Count); err != nil {
			return fmt.Errorf("store: healing row: %w", err)
		}
	}
	return tx.Commit()
}

// WriteDispels bulk-inserts the dispel tally.
func (s *Store) WriteDispels(d *stats.Dispels) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("store: begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT OR REPLACE INTO dispels (actor, removed, count, stolen) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("store: prepare: %w", err)
	}
	defer stmt.Close()

	for _, row := range d.Rows() {
		if _, err := stmt.Exec(row.Actor, row.Removed, row.Count, row.Stolen); err != nil {
			return fmt.Errorf("store: dispel row: %w", err)
		}
	}
	return tx.Commit()
}

// WriteUnits bulk-inserts the unit index.
func (s *Store) WriteUnits(ix *stats.Index) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("store: begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT OR REPLACE INTO units (name, guid, flags, seen) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("store: prepare: %w", err)
	}
	defer stmt.Close()

	for _, u := range ix.Units() {
		if _, err := stmt.Exec(u.Name, int64(u.ID), int64(u.Flags), u.Seen); err != nil {
			return fmt.Errorf("store: unit row: %w", err)
		}
	}
	return tx.Commit()
}

// WriteClasses bulk-inserts the classifier's assignments. Pets are stored
// space-separated.
func (s *Store) WriteClasses(assignments map[string]classify.Assignment) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("store: begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT OR REPLACE INTO classes (name, class, pets, from_hint) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("store: prepare: %w", err)
	}
	defer stmt.Close()

	for _, a := range assignments {
		pets := ""
		for i, p := range a.Pets {
			if i > 0 {
				pets += " "
			}
			pets += p
		}
		fromHint := 0
		if a.FromHint {
			fromHint = 1
		}
		if _, err := stmt.Exec(a.Name, a.Class, pets, fromHint); err != nil {
			return fmt.Errorf("store: class row: %w", err)
		}
	}
	return tx.Commit()
}
