// internal/common/database/sqlite.go
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteClient wraps the SQL database connection for the session store.
type SQLiteClient struct {
	DB *sql.DB
}

// NewSQLite opens the session-store database at the given filesystem path.
// The agent runtime creates the file on first use, so a missing file is not
// an error here; opening it creates it.
func NewSQLite(path string) (*SQLiteClient, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}

	// The driver serializes access per connection; one is enough for checks.
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(5 * time.Minute)

	return &SQLiteClient{DB: db}, nil
}

// NewSQLiteFromDB wraps an existing *sql.DB (used by tests with sqlmock).
func NewSQLiteFromDB(db *sql.DB) *SQLiteClient {
	return &SQLiteClient{DB: db}
}

// Ping tests the database connection.
func (c *SQLiteClient) Ping(ctx context.Context) error {
	return c.DB.PingContext(ctx)
}

// Close closes the database connection.
func (c *SQLiteClient) Close() error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}

// Query executes a query that returns rows.
func (c *SQLiteClient) Query(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return c.DB.QueryContext(ctx, query, args...)
}

// QueryRow executes a query that returns at most one row.
func (c *SQLiteClient) QueryRow(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return c.DB.QueryRowContext(ctx, query, args...)
}

// Exec executes a query that doesn't return rows.
func (c *SQLiteClient) Exec(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return c.DB.ExecContext(ctx, query, args...)
}

// GetDB returns the underlying *sql.DB for compatibility.
func (c *SQLiteClient) GetDB() *sql.DB {
	return c.DB
}
