// Package sqlite provides SQLite-based persistent storage for Moodlet.
// Uses WAL mode for concurrent reads and crash-safe writes.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver (no CGO required)
)

// DB wraps a SQLite connection with WAL mode and migrations.
type DB struct {
	db *sql.DB
}

// Open creates or opens the SQLite database at dir/state.db.
// Enables WAL mode, foreign keys, and 5-second busy timeout.
func Open(dir string) (*DB, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dbPath := filepath.Join(dir, "state.db")
	dsn := dbPath + "?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	// Connection pool settings for SQLite
	db.SetMaxOpenConns(1) // SQLite is single-writer
	db.SetMaxIdleConns(1)

	d := &DB{db: db}
	if err := d.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return d, nil
}

// Close cleanly shuts down the database.
func (d *DB) Close() error {
	return d.db.Close()
}

// Ping checks database connectivity.
func (d *DB) Ping() error {
	return d.db.Ping()
}

// migrate runs idempotent schema migrations.
func (d *DB) migrate() error {
	migrations := []string{
		// Single-row profile aggregate
		`CREATE TABLE IF NOT EXISTS profile (
			id                  TEXT PRIMARY KEY,
			total_points        INTEGER NOT NULL DEFAULT 0,
			current_streak      INTEGER NOT NULL DEFAULT 0,
			longest_streak      INTEGER NOT NULL DEFAULT 0,
			last_log_date       INTEGER,
			streak_grace_used   BOOLEAN NOT NULL DEFAULT 0,
			last_milestone_paid INTEGER NOT NULL DEFAULT 0,
			is_premium          BOOLEAN NOT NULL DEFAULT 0
		)`,

		// Append-only mood entry log
		`CREATE TABLE IF NOT EXISTS entries (
			id            TEXT PRIMARY KEY,
			timestamp     INTEGER NOT NULL,
			mood          INTEGER NOT NULL,
			note          TEXT NOT NULL DEFAULT '',
			activity_tags TEXT NOT NULL DEFAULT '',
			people_tags   TEXT NOT NULL DEFAULT '',
			earned_points INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS idx_entries_ts ON entries(timestamp)`,

		// Earned badges; earned_at never overwritten once set
		`CREATE TABLE IF NOT EXISTS badges (
			id        TEXT PRIMARY KEY,
			earned_at INTEGER NOT NULL
		)`,

		// Monotonic unlock sets (kind: accessory, background, species)
		`CREATE TABLE IF NOT EXISTS unlocks (
			item_id     TEXT NOT NULL,
			kind        TEXT NOT NULL,
			unlocked_at INTEGER NOT NULL,
			PRIMARY KEY (item_id, kind)
		)`,

		// Weeks whose review was completed, keyed by Sunday date
		`CREATE TABLE IF NOT EXISTS reviewed_weeks (
			week_start TEXT PRIMARY KEY
		)`,

		// Single companion plus its equipped background
		`CREATE TABLE IF NOT EXISTS companion (
			id            TEXT PRIMARY KEY,
			name          TEXT NOT NULL,
			species       TEXT NOT NULL,
			created_at    INTEGER NOT NULL,
			background_id TEXT NOT NULL DEFAULT ''
		)`,

		// One accessory per category
		`CREATE TABLE IF NOT EXISTS equipped (
			category TEXT PRIMARY KEY,
			item_id  TEXT NOT NULL
		)`,

		// Shop catalog
		`CREATE TABLE IF NOT EXISTS accessories (
			id                 TEXT PRIMARY KEY,
			name               TEXT NOT NULL,
			category           TEXT NOT NULL,
			price              INTEGER NOT NULL,
			premium_only       BOOLEAN NOT NULL DEFAULT 0,
			required_milestone INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS backgrounds (
			id                 TEXT PRIMARY KEY,
			name               TEXT NOT NULL,
			price              INTEGER NOT NULL,
			premium_only       BOOLEAN NOT NULL DEFAULT 0,
			required_milestone INTEGER NOT NULL DEFAULT 0
		)`,

		// Reminder delivery log (policy: daily cap, quiet hours)
		`CREATE TABLE IF NOT EXISTS reminders (
			id      INTEGER PRIMARY KEY AUTOINCREMENT,
			message TEXT NOT NULL,
			sent_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_reminders_sent ON reminders(sent_at)`,
	}

	for _, m := range migrations {
		if _, err := d.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}
	return nil
}

// EraseAll drops every row of user data. The schema stays in place.
func (d *DB) EraseAll() error {
	tables := []string{
		"profile", "entries", "badges", "unlocks", "reviewed_weeks",
		"companion", "equipped", "reminders",
	}
	tx, err := d.db.Begin()
	if err != nil {
		return err
	}
	for _, t := range tables {
		if _, err := tx.Exec(`DELETE FROM ` + t); err != nil {
			tx.Rollback()
			return fmt.Errorf("erase %s: %w", t, err)
		}
	}
	return tx.Commit()
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}
