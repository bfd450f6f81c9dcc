// Package config loads service configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// DevelopmentSecret signs tokens when JWT_SECRET_KEY is unset.
// Suitable for local runs only.
const DevelopmentSecret = "11230339056375194157731879721706907672"

// Config is the full service configuration.
type Config struct {
	DatabaseURL     string        `env:"DATABASE_URL"      envDefault:"sqlite:///data.db"`
	JWTSecret       string        `env:"JWT_SECRET_KEY"`
	AccessTokenTTL  time.Duration `env:"ACCESS_TOKEN_TTL"  envDefault:"15m"`
	RefreshTokenTTL time.Duration `env:"REFRESH_TOKEN_TTL" envDefault:"720h"`
	HTTPAddr        string        `env:"HTTP_ADDR"         envDefault:":8080"`
	CORSOrigins     []string      `env:"CORS_ORIGINS"      envDefault:"*" envSeparator:","`
	RedisURL        string        `env:"REDIS_URL"`
	LogLevel        string        `env:"LOG_LEVEL"         envDefault:"info"`
	LogFormat       string        `env:"LOG_FORMAT"        envDefault:"text"`
	OTelEndpoint    string        `env:"OTEL_ENDPOINT"`
	Seed            bool          `env:"SEED"              envDefault:"true"`
}

// Load reads an optional .env file and then parses the environment.
// Variables already set in the environment win over the file.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", file, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = DevelopmentSecret
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values that env parsing cannot.
func (c Config) Validate() error {
	if strings.TrimSpace(c.JWTSecret) == "" {
		return errors.New("JWT_SECRET_KEY must not be empty")
	}
	if c.AccessTokenTTL <= 0 {
		return errors.New("ACCESS_TOKEN_TTL must be positive")
	}
	if c.RefreshTokenTTL <= 0 {
		return errors.New("REFRESH_TOKEN_TTL must be positive")
	}
	if _, err := ParseDatabaseURL(c.DatabaseURL); err != nil {
		return err
	}
	return nil
}

// UsesDevelopmentSecret reports whether tokens are signed with the built-in key.
func (c Config) UsesDevelopmentSecret() bool {
	return c.JWTSecret == DevelopmentSecret
}

// Driver identifies a storage backend.
type Driver string

const (
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
)

// Database is a parsed DATABASE_URL.
type Database struct {
	Driver Driver
	// Path is the SQLite file path (or ":memory:").
	Path string
	// DSN is the PostgreSQL connection string, passed through unchanged.
	DSN string
}

// ParseDatabaseURL accepts sqlite:///relative.db, sqlite:////absolute.db,
// sqlite://:memory: and postgres:// or postgresql:// URLs.
func ParseDatabaseURL(raw string) (Database, error) {
	switch {
	case strings.HasPrefix(raw, "sqlite://"):
		rest := strings.TrimPrefix(raw, "sqlite://")
		if rest == ":memory:" || rest == "/:memory:" {
			return Database{Driver: DriverSQLite, Path: ":memory:"}, nil
		}
		// sqlite:///data.db names a relative path; a fourth slash makes it absolute.
		path := strings.TrimPrefix(rest, "/")
		if path == "" {
			return Database{}, fmt.Errorf("DATABASE_URL %q has no database path", raw)
		}
		return Database{Driver: DriverSQLite, Path: path}, nil
	case strings.HasPrefix(raw, "postgres://"), strings.HasPrefix(raw, "postgresql://"):
		if _, err := url.Parse(raw); err != nil {
			return Database{}, fmt.Errorf("DATABASE_URL: %w", err)
		}
		return Database{Driver: DriverPostgres, DSN: raw}, nil
	}
	return Database{}, fmt.Errorf("DATABASE_URL %q: unsupported scheme", raw)
}
