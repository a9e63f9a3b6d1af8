// Package internal provides the main application initialization and runtime logic.
package internal

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

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/starford/techhub/internal/api"
	"github.com/starford/techhub/internal/catalog"
	"github.com/starford/techhub/internal/editor"
	"github.com/starford/techhub/internal/index"
	"github.com/starford/techhub/internal/mcpserver"
	"github.com/starford/techhub/internal/metrics"
	"github.com/starford/techhub/internal/sse"
)

// Run starts the HTTP server with the given options.
func Run(ctx context.Context, opts ...Option) error {
	app := newApplication(opts)
	if app.config == nil {
		return fmt.Errorf("config is required")
	}
	cfg := app.config

	// Initialize structured JSON logger.
	logger := slog.New(slog.NewJSONHandler(app.logOut, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("fixtures_dir", cfg.Fixtures.Dir),
		slog.Bool("fixtures_watch", cfg.Fixtures.Watch),
		slog.String("index_dsn", cfg.Index.DSN),
		slog.String("log_level", cfg.App.LogLevel.String()))

	provider, err := openProvider(cfg.Fixtures)
	if err != nil {
		return err
	}
	store, db, err := openCatalog(provider, cfg.Index.DSN, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	broker := sse.NewBroker(cfg.Events.FacetsThrottle)
	defer broker.Close()

	m := metrics.New()

	ed := editor.New(store, broker, logger, editor.Config{
		AutosaveDelay: cfg.Editor.AutosaveDelay,
		UploadDelay:   cfg.Editor.UploadDelay,
	})
	defer ed.Close()

	httpServer := &http.Server{
		Addr:              cfg.App.HTTP.Address(),
		Handler:           newRootRouter(store, ed, db, m, broker),
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("Server starting...", slog.String("http_address", cfg.App.HTTP.Address()))

	g, gCtx := errgroup.WithContext(ctx)

	// Reload the catalog when fixture files change.
	if cfg.Fixtures.Watch && !cfg.Fixtures.Embedded() {
		rl := &reloader{provider: provider, store: store, index: db, broker: broker, metrics: m, logger: logger}
		g.Go(func() error {
			return index.Watch(gCtx, cfg.Fixtures.Dir, logger, rl.reload)
		})
	}

	// Start HTTP server.
	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	// Handle shutdown signals.
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		logger.Info("Shutting down server...")

		// SSE streams end when the broker closes; close it first so Shutdown
		// does not wait on them.
		broker.Close()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}

		return errShutdown
	})

	if err := g.Wait(); err != nil && !errors.Is(err, errShutdown) {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}

// errShutdown stops the watcher once the server has shut down.
var errShutdown = errors.New("shutdown")

func newRootRouter(store *catalog.Store, ed api.Editor, search api.Searcher, m *metrics.Metrics, broker *sse.Broker) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Health check endpoints.
	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/health/ready", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Mount("/api", api.NewRouter(api.Deps{
		Store:   store,
		Editor:  ed,
		Search:  search,
		Metrics: m,
		Events:  broker,
	}))

	return r
}

// RunMCP serves the catalog to an MCP client over stdin/stdout. Logs go to
// stderr since stdout carries the protocol.
func RunMCP(_ context.Context, opts ...Option) error {
	app := newApplication(append([]Option{WithLogOutput(os.Stderr)}, opts...))
	if app.config == nil {
		return fmt.Errorf("config is required")
	}
	cfg := app.config

	logger := slog.New(slog.NewJSONHandler(app.logOut, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	provider, err := openProvider(cfg.Fixtures)
	if err != nil {
		return err
	}
	store, db, err := openCatalog(provider, cfg.Index.DSN, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	logger.Info("MCP server starting", slog.String("version", app.version))
	return mcpserver.New(store, db, app.version).ServeStdio()
}
