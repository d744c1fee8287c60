package app

import (
	"context"
	"fmt"
	stdhttp "net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/chatrelay/chatrelay-server/internal/config"
	"github.com/chatrelay/chatrelay-server/internal/core"
	"github.com/chatrelay/chatrelay-server/internal/store"
	"github.com/chatrelay/chatrelay-server/internal/store/jsonl"
	"github.com/chatrelay/chatrelay-server/internal/store/sqlite"
	transporthttp "github.com/chatrelay/chatrelay-server/internal/transport/http"
)

// App wires together core and transport layers.
type App struct {
	server          *stdhttp.Server
	shutdownTimeout time.Duration
	eventLog        store.EventLog
	log             *zerolog.Logger
}

// New constructs the application with provided configuration.
func New(cfg *config.Config, logger *zerolog.Logger) (*App, error) {
	eventLog, err := newEventLog(cfg)
	if err != nil {
		return nil, fmt.Errorf("init event log: %w", err)
	}

	logger.Info().Str("backend", cfg.StoreBackend).Msg("event log initialized")

	registry := core.NewRegistry()
	hub := core.NewHub(eventLog, registry, logger)
	server := transporthttp.NewServer(hub, registry, eventLog, *cfg, logger)

	return &App{
		server:          server,
		shutdownTimeout: cfg.ShutdownTimeout,
		eventLog:        eventLog,
		log:             logger,
	}, nil
}

func newEventLog(cfg *config.Config) (store.EventLog, error) {
	switch cfg.StoreBackend {
	case config.StoreBackendSQLite:
		return sqlite.New(cfg.DatabasePath)
	case config.StoreBackendJSONL, "":
		return jsonl.New(cfg.ChatLogPath)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}

// Run starts the HTTP server and blocks until context cancellation or fatal error.
func (a *App) Run(ctx context.Context) error {
	serverErr := make(chan error, 1)

	go func() {
		if err := a.server.ListenAndServe(); err != nil && err != stdhttp.ErrServerClosed {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()

	select {
	case err := <-serverErr:
		a.cleanup()
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
		defer cancel()

		a.log.Info().Msg("shutting down http server")
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			a.cleanup()
			return err
		}

		a.cleanup()
		return <-serverErr
	}
}

// cleanup closes the event log and other resources.
func (a *App) cleanup() {
	if a.eventLog != nil {
		if err := a.eventLog.Close(); err != nil {
			a.log.Warn().Err(err).Msg("failed to close event log")
		} else {
			a.log.Info().Msg("event log closed")
		}
	}
}
