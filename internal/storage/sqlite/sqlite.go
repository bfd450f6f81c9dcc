// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	moderncsqlite "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/mmynk/packs/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	if dbPath != MemoryPath {
		// Create parent directory if it doesn't exist
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// Foreign keys are a per-connection setting, so they go in the DSN.
	dsn := dbPath + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// A single connection serialises writers and keeps :memory: databases alive.
	db.SetMaxOpenConns(1)

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Ping verifies the database connection is alive.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// constraintError maps SQLite constraint violations to storage sentinels.
// It returns nil when err is not a constraint violation.
func constraintError(err error) error {
	var sqliteErr *moderncsqlite.Error
	if !errors.As(err, &sqliteErr) {
		return nil
	}
	switch sqliteErr.Code() {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return storage.ErrConflict
	case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
		return storage.ErrPackNotFound
	}
	if sqliteErr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT {
		msg := sqliteErr.Error()
		switch {
		case strings.Contains(msg, "UNIQUE"):
			return storage.ErrConflict
		case strings.Contains(msg, "FOREIGN KEY"):
			return storage.ErrPackNotFound
		}
	}
	return nil
}

// wrapWrite wraps a failed write, surfacing constraint sentinels.
func wrapWrite(op string, err error) error {
	if sentinel := constraintError(err); sentinel != nil {
		return fmt.Errorf("failed to %s: %w", op, sentinel)
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}
