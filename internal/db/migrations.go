package db

import (
	"database/sql"
	"fmt"
)

// migrations is an ordered list of SQL migration statements.
// Each entry is applied once in order. New migrations are appended at the end.
var migrations = []string{
	// Migration 0: initial schema
	`CREATE TABLE IF NOT EXISTS reviews (
		id               INTEGER PRIMARY KEY AUTOINCREMENT,
		college_id       TEXT NOT NULL,
		user             TEXT NOT NULL,
		text             TEXT NOT NULL,
		food             INTEGER,
		social           INTEGER,
		clubs            INTEGER,
		study            INTEGER,
		opportunities    INTEGER,
		tags             TEXT NOT NULL DEFAULT '[]',
		rated_categories TEXT NOT NULL DEFAULT '[]',
		created_at       DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,

	`CREATE TABLE IF NOT EXISTS review_embeddings (
		review_id  INTEGER PRIMARY KEY REFERENCES reviews(id) ON DELETE CASCADE,
		model      TEXT NOT NULL,
		dim        INTEGER NOT NULL,
		vector     BLOB NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,

	`CREATE INDEX IF NOT EXISTS idx_reviews_college ON reviews(college_id)`,
	`CREATE INDEX IF NOT EXISTS idx_reviews_created ON reviews(created_at DESC)`,
}

// applyMigrations runs any migrations that have not yet been applied.
func applyMigrations(conn *sql.DB) error {
	// Ensure the migration tracking table exists first.
	if _, err := conn.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (
		version    INTEGER PRIMARY KEY,
		applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	for i, stmt := range migrations {
		var count int
		row := conn.QueryRow(`SELECT COUNT(*) FROM schema_migrations WHERE version = ?`, i)
		if err := row.Scan(&count); err != nil {
			return fmt.Errorf("check migration %d: %w", i, err)
		}
		if count > 0 {
			continue
		}

		if _, err := conn.Exec(stmt); err != nil {
			return fmt.Errorf("apply migration %d: %w", i, err)
		}

		if _, err := conn.Exec(`INSERT INTO schema_migrations (version) VALUES (?)`, i); err != nil {
			return fmt.Errorf("record migration %d: %w", i, err)
		}
	}

	return nil
}

// applyVectorTables creates the sqlite-vec virtual table used for semantic
// review search. Called separately so a missing vec extension only disables
// vector search, not the whole store.
func applyVectorTables(conn *sql.DB, dimension int) error {
	stmt := fmt.Sprintf(`CREATE VIRTUAL TABLE IF NOT EXISTS vec_reviews USING vec0(
		id TEXT PRIMARY KEY,
		embedding float[%d]
	)`, dimension)
	if _, err := conn.Exec(stmt); err != nil {
		return fmt.Errorf("create vec_reviews: %w", err)
	}
	return nil
}
