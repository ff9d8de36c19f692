// Package sqlite provides SQLite-based storage for permitsearch registry tables.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// DB represents a SQLite database connection.
type DB struct {
	db   *sql.DB
	path string
}

// NewDB creates a new DB instance with the given path.
// Use ":memory:" for an in-memory database.
func NewDB(path string) *DB {
	return &DB{path: path}
}

// Open opens the database connection and creates the schema if needed.
func (db *DB) Open() error {
	conn, err := sql.Open("sqlite3", db.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit to one connection.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if _, err := conn.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		conn.Close()
		return fmt.Errorf("failed to set busy timeout: %w", err)
	}

	// WAL mode is not supported for in-memory databases.
	if db.path != ":memory:" {
		if _, err := conn.Exec("PRAGMA journal_mode = WAL"); err != nil {
			conn.Close()
			return fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if _, err := conn.Exec("PRAGMA foreign_keys = ON"); err != nil {
		conn.Close()
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	db.db = conn

	if err := db.createSchema(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	if db.db != nil {
		return db.db.Close()
	}
	return nil
}

// QueryRowContext executes a query that returns a single row.
func (db *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return db.db.QueryRowContext(ctx, query, args...)
}

// QueryContext executes a query that returns rows.
func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.db.QueryContext(ctx, query, args...)
}

// BeginTx starts a transaction.
func (db *DB) BeginTx(ctx context.Context) (*sql.Tx, error) {
	return db.db.BeginTx(ctx, nil)
}

// createSchema creates the database tables if they don't exist.
// A county row belongs to a state; zipcode rows reference their county so
// the stored tables cannot break the zipcode-to-county invariant.
func (db *DB) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS counties (
			state TEXT NOT NULL,
			name TEXT NOT NULL,
			url TEXT NOT NULL,
			note TEXT NOT NULL DEFAULT '',
			difficulty TEXT NOT NULL DEFAULT '',
			offline_only INTEGER NOT NULL DEFAULT 0,
			tax_bill_url TEXT NOT NULL DEFAULT '',
			PRIMARY KEY (state, name)
		);

		CREATE TABLE IF NOT EXISTS zipcodes (
			state TEXT NOT NULL,
			zipcode TEXT NOT NULL,
			county TEXT NOT NULL,
			PRIMARY KEY (state, zipcode),
			FOREIGN KEY (state, county) REFERENCES counties(state, name) ON DELETE CASCADE
		);

		CREATE INDEX IF NOT EXISTS idx_zipcodes_county ON zipcodes(state, county);
	`

	_, err := db.db.Exec(schema)
	return err
}
