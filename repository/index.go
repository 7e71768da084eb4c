package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "modernc.org/sqlite"

	"main/config"
)

// OpenDatabase opens the SQLite database with WAL mode enabled and makes
// sure the schema exists.
func OpenDatabase(cfg config.DatabaseConfig) (*sql.DB, error) {
	dsn := fmt.Sprintf("%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(%d)",
		cfg.Path, cfg.BusyTimeout)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := SetupSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// SetupSchema creates the notes and analysis_logs tables and their indexes.
// notes_analyzed and generated_resources hold JSON text; analysis log rows
// are append-only and never updated.
func SetupSchema(db *sql.DB) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	statements := []string{
		`CREATE TABLE IF NOT EXISTS notes (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id      TEXT NOT NULL,
			title        TEXT NOT NULL,
			content      TEXT NOT NULL,
			last_updated TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS user_notes_date
			ON notes (user_id, last_updated DESC)`,
		`CREATE TABLE IF NOT EXISTS analysis_logs (
			id                  INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id             TEXT NOT NULL,
			analysis_type       TEXT NOT NULL,
			notes_analyzed      TEXT NOT NULL,
			generated_resources TEXT NOT NULL,
			created_at          TEXT NOT NULL,
			trigger_type        TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS user_logs_date
			ON analysis_logs (user_id, created_at DESC)`,
	}

	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}

	log.Println("Successfully created schema")
	return nil
}
