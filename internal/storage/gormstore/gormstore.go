// Package gormstore implements storage.Store on top of GORM, so the service
// can run against PostgreSQL (or SQLite through the GORM dialector).
package gormstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mmynk/packs/internal/storage"
)

var _ storage.Store = (*Store)(nil)

// Store implements storage.Store using GORM.
type Store struct {
	db *gorm.DB
}

// OpenPostgres connects to PostgreSQL using a libpq-style DSN or URL.
func OpenPostgres(dsn string) (*Store, error) {
	return Open(postgres.Open(dsn))
}

// OpenSQLite opens a SQLite database file through the GORM dialector.
func OpenSQLite(path string) (*Store, error) {
	return Open(gormsqlite.Open(path + "?_foreign_keys=on"))
}

// Open opens a database with the given dialector and migrates the schema.
func Open(dialector gorm.Dialector) (*Store, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger: logger.New(slogWriter{}, logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.AutoMigrate(&userRow{}, &packRow{}, &itemRow{}); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

// Ping verifies the database connection is alive.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close closes the underlying connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// translate maps GORM errors to storage sentinels.
func translate(op string, err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("failed to %s: %w", op, storage.ErrNotFound)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("failed to %s: %w", op, storage.ErrConflict)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("failed to %s: %w", op, storage.ErrPackNotFound)
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}

// syncSequence moves a PostgreSQL serial past IDs inserted explicitly by upserts.
func (s *Store) syncSequence(ctx context.Context, table string) error {
	if s.db.Dialector.Name() != "postgres" {
		return nil
	}
	return s.db.WithContext(ctx).Exec(
		fmt.Sprintf("SELECT setval(pg_get_serial_sequence('%[1]s', 'id'), (SELECT MAX(id) FROM %[1]s))", table),
	).Error
}

// slogWriter routes GORM's logger output through slog.
type slogWriter struct{}

func (slogWriter) Printf(format string, args ...any) {
	slog.Warn(fmt.Sprintf(format, args...), "component", "gorm")
}
