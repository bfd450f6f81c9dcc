package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/packs/internal/auth"
	"github.com/mmynk/packs/internal/httpapi"
	"github.com/mmynk/packs/internal/middleware"
	"github.com/mmynk/packs/internal/seed"
	"github.com/mmynk/packs/internal/telemetry"
)

const (
	serviceName     = "packs"
	shutdownTimeout = 10 * time.Second
)

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Long: `Run the packs HTTP server.

Configuration comes from the environment (DATABASE_URL, JWT_SECRET_KEY,
HTTP_ADDR, REDIS_URL, ...) and the optional --env-file. The server stops
gracefully on SIGINT or SIGTERM.

Example:
  packs serve
  DATABASE_URL=postgres://localhost/packs packs serve`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, rootOpts)
		},
	}
}

func runServe(ctx context.Context, opts *RootOptions) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	if cfg.UsesDevelopmentSecret() {
		slog.Warn("JWT_SECRET_KEY is not set; signing tokens with the development key")
	}

	shutdownTracing, err := telemetry.Setup(ctx, serviceName, cfg.OTelEndpoint)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to set up tracing", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			slog.Error("Error flushing traces", "error", err)
		}
	}()

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			slog.Error("Error closing database", "error", err)
		}
	}()

	if cfg.Seed {
		f, err := seed.Default()
		if err != nil {
			return WrapExitError(ExitFailure, "failed to load seed data", err)
		}
		if _, err := seed.Seed(ctx, store, f); err != nil {
			return WrapExitError(ExitFailure, "failed to seed database", err)
		}
	}

	blocklist, closeBlocklist, err := openBlocklist(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeBlocklist()

	api, err := httpapi.New(httpapi.Config{
		Store:         store,
		Authenticator: auth.NewPasswordAuthenticator(store),
		JWT:           auth.NewJWTManager(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL),
		Blocklist:     blocklist,
		Metrics:       middleware.NewMetrics(),
		CORSOrigins:   cfg.CORSOrigins,
	})
	if err != nil {
		return WrapExitError(ExitFailure, "failed to build http server", err)
	}

	// h2c serves HTTP/2 without TLS alongside HTTP/1.1.
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           h2c.NewHandler(api, &http2.Server{}),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server starting", "address", cfg.HTTPAddr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return WrapExitError(ExitFailure, "server failed", err)
		}
		return nil
	case <-ctx.Done():
		slog.Info("Shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return WrapExitError(ExitFailure, "graceful shutdown failed", fmt.Errorf("after %s: %w", shutdownTimeout, err))
	}
	slog.Info("Server stopped")
	return nil
}
