package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver
)

// New creates a new SQLite connection pool.
// Writers wait on a busy timeout instead of failing when another write holds the lock.
func New(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn(path))
	if err != nil {
		return nil, err
	}
	if isMemory(path) {
		// Every pooled connection to an in-memory database opens its own empty
		// database, so the schema is only visible through a single connection.
		db.SetMaxOpenConns(1)
	}
	if err = db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func isMemory(path string) bool {
	return path == ":memory:" || strings.HasPrefix(path, "file::memory:") || strings.Contains(path, "mode=memory")
}

func dsn(path string) string {
	pragmas := []string{"_pragma=busy_timeout(5000)"}
	if !isMemory(path) {
		pragmas = append(pragmas, "_pragma=journal_mode(WAL)")
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + strings.Join(pragmas, "&")
}

// Migrate runs the SQL statements to set up the database schema.
// Reference lists are kept as JSON text and resolved by the repositories.
func Migrate(ctx context.Context, db *sql.DB) error {
	const sqlStmt = `
	CREATE TABLE IF NOT EXISTS users (
		id TEXT NOT NULL PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT,
		deleted_at TEXT
	);

	CREATE TABLE IF NOT EXISTS categories (
		id TEXT NOT NULL PRIMARY KEY,
		type TEXT NOT NULL,
		label TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT,
		deleted_at TEXT
	);

	CREATE TABLE IF NOT EXISTS themes (
		id TEXT NOT NULL PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT NOT NULL,
		cover_image TEXT NOT NULL,
		categories_ids_json TEXT NOT NULL DEFAULT '[]',
		created_at TEXT NOT NULL,
		updated_at TEXT,
		deleted_at TEXT
	);

	CREATE TABLE IF NOT EXISTS contents (
		id TEXT NOT NULL PRIMARY KEY,
		title TEXT NOT NULL,
		themes_ids_json TEXT NOT NULL DEFAULT '[]',
		values_json TEXT NOT NULL DEFAULT '[]',
		user_id TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT,
		deleted_at TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_users_deleted_at ON users(deleted_at);
	CREATE INDEX IF NOT EXISTS idx_categories_deleted_at ON categories(deleted_at);
	CREATE INDEX IF NOT EXISTS idx_themes_deleted_at ON themes(deleted_at);
	CREATE INDEX IF NOT EXISTS idx_contents_deleted_at ON contents(deleted_at);
	`
	if _, err := db.ExecContext(ctx, sqlStmt); err != nil {
		return fmt.Errorf("apply sqlite schema: %w", err)
	}
	return nil
}
