package db

import (
	"database/sql"
	"fmt"
)

// Base schema - uses Snowflake IDs (no AUTOINCREMENT)
const baseSchema = `
CREATE TABLE IF NOT EXISTS users (
  id INTEGER PRIMARY KEY,
  username TEXT NOT NULL UNIQUE,
  email TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS journals (
  id INTEGER PRIMARY KEY,
  user_id INTEGER NOT NULL,
  title TEXT NOT NULL DEFAULT 'Daily Journal',
  content TEXT NOT NULL,
  sentiment TEXT NOT NULL DEFAULT 'Neutral',
  sentiment_score REAL NOT NULL DEFAULT 0.5,
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL,
  FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_journals_user_id ON journals(user_id);
`

func Migrate(db *sql.DB) error {
	if _, err := db.Exec(baseSchema); err != nil {
		return fmt.Errorf("migrate base schema: %w", err)
	}

	if err := runMigrations(db); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	return nil
}

func runMigrations(db *sql.DB) error {
	// Migration 1: Add ai_feedback column to journals if not exists
	var count int
	err := db.QueryRow(`
		SELECT COUNT(*) FROM pragma_table_info('journals') WHERE name = 'ai_feedback'
	`).Scan(&count)
	if err != nil {
		return fmt.Errorf("check ai_feedback column: %w", err)
	}

	if count == 0 {
		if _, err := db.Exec(`ALTER TABLE journals ADD COLUMN ai_feedback TEXT NOT NULL DEFAULT 'Thank you for sharing.'`); err != nil {
			return fmt.Errorf("add ai_feedback column: %w", err)
		}
	}

	// Migration 2: Composite index for the 7-day summary window query
	if _, err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_journals_user_created ON journals(user_id, created_at)`); err != nil {
		return fmt.Errorf("create idx_journals_user_created: %w", err)
	}

	return nil
}
