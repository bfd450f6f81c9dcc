package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mmynk/packs/internal/auth"
	"github.com/mmynk/packs/internal/config"
	"github.com/mmynk/packs/internal/storage"
	"github.com/mmynk/packs/internal/storage/gormstore"
	"github.com/mmynk/packs/internal/storage/sqlite"
	"github.com/mmynk/packs/pkg/logging"
)

// loadConfig reads configuration and installs the default logger.
func loadConfig(opts *RootOptions) (config.Config, error) {
	cfg, err := config.Load(opts.EnvFile)
	if err != nil {
		return config.Config{}, WrapExitError(ExitCommandError, "invalid configuration", err)
	}
	logging.Setup(cfg.LogLevel, cfg.LogFormat)
	return cfg, nil
}

// openStore picks the backend from DATABASE_URL. Both create their schema on open.
func openStore(cfg config.Config) (storage.Store, error) {
	db, err := config.ParseDatabaseURL(cfg.DatabaseURL)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "invalid DATABASE_URL", err)
	}

	var store storage.Store
	switch db.Driver {
	case config.DriverSQLite:
		store, err = sqlite.New(db.Path)
	case config.DriverPostgres:
		store, err = gormstore.OpenPostgres(db.DSN)
	default:
		err = fmt.Errorf("unsupported driver %q", db.Driver)
	}
	if err != nil {
		return nil, WrapExitError(ExitFailure, "failed to open database", err)
	}

	slog.Info("Storage initialized", "driver", db.Driver)
	return store, nil
}

// openBlocklist returns the Redis blocklist when REDIS_URL is set and the
// in-memory one otherwise. close releases the backend.
func openBlocklist(ctx context.Context, cfg config.Config) (auth.Blocklist, func() error, error) {
	if cfg.RedisURL == "" {
		slog.Info("Token blocklist in memory; revocations are lost on restart")
		return auth.NewMemoryBlocklist(), func() error { return nil }, nil
	}

	blocklist, err := auth.NewRedisBlocklist(ctx, cfg.RedisURL)
	if err != nil {
		return nil, nil, WrapExitError(ExitFailure, "failed to open token blocklist", err)
	}
	slog.Info("Token blocklist in redis")
	return blocklist, blocklist.Close, nil
}
