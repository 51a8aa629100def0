// Package server wires configuration, storage, handlers and middleware into
// a running HTTP server with graceful shutdown.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/cors"

	"stockroom/internal/config"
	"stockroom/internal/server/auth"
	"stockroom/internal/server/handlers"
	"stockroom/internal/server/middleware"
	"stockroom/internal/server/storage"
	"stockroom/internal/server/storage/bolt"
	"stockroom/internal/server/storage/sqlite"
)

const shutdownTimeout = 10 * time.Second

// App is the assembled inventory server
type App struct {
	config     *config.Config
	logger     *slog.Logger
	store      storage.Store
	httpServer *http.Server
}

// NewApp builds the application from configuration.
// A storage open or migration failure here is fatal: the caller is expected
// to terminate the process.
func NewApp(ctx context.Context, cfg *config.Config, version string) (*App, error) {
	logger := newLogger(cfg)

	store, err := openStore(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("storage init error: %w", err)
	}

	tokens := auth.NewService([]byte(cfg.JWTSecret), cfg.TokenTTL)

	router := NewRouter(logger, tokens, store, cfg, version)

	app := &App{
		config: cfg,
		logger: logger,
		store:  store,
		httpServer: &http.Server{
			Addr:              cfg.Addr,
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}

	return app, nil
}

// newLogger builds the process logger from config
func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}

// openStore opens the configured storage driver
func openStore(ctx context.Context, cfg *config.Config) (storage.Store, error) {
	switch cfg.StorageDriver {
	case config.DriverSQLite:
		return sqlite.New(ctx, cfg.SQLitePath)
	case config.DriverBolt:
		return bolt.New(ctx, cfg.BoltPath)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}

// NewRouter assembles the route table and middleware chain
func NewRouter(logger *slog.Logger, tokens *auth.Service, store storage.Store, cfg *config.Config, version string) http.Handler {
	authHandler := handlers.NewAuthHandler(logger, store, tokens, cfg.BcryptCost)
	inventoryHandler := handlers.NewInventoryHandler(logger, store)
	healthHandler := handlers.NewHealthHandler(logger, version)

	mux := http.NewServeMux()

	// Public routes
	mux.HandleFunc("GET /api/health", healthHandler.Health)
	mux.HandleFunc("POST /api/signup", authHandler.Signup)
	mux.HandleFunc("POST /api/login", authHandler.Login)
	mux.HandleFunc("POST /api/verify-token", authHandler.VerifyToken)

	// Protected inventory routes
	protected := middleware.Auth(logger, tokens)
	mux.Handle("GET /api/inventory", protected(http.HandlerFunc(inventoryHandler.List)))
	mux.Handle("POST /api/inventory/add", protected(http.HandlerFunc(inventoryHandler.Add)))
	mux.Handle("GET /api/inventory/{id}", protected(http.HandlerFunc(inventoryHandler.Get)))
	mux.Handle("PUT /api/inventory/{id}", protected(http.HandlerFunc(inventoryHandler.Update)))
	mux.Handle("DELETE /api/inventory/{id}", protected(http.HandlerFunc(inventoryHandler.Delete)))

	corsHandler := cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.CORSOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: cfg.CORSOrigin != "*",
	})

	var handler http.Handler = mux
	handler = corsHandler(handler)
	handler = middleware.LoggingWithSkip(logger, []string{"/api/health"})(handler)
	handler = middleware.Recovery(logger)(handler)

	return handler
}

// Run starts the HTTP server and blocks until the context is canceled or a
// SIGINT/SIGTERM arrives, then shuts down gracefully and closes storage.
func (app *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)

	go func() {
		app.logger.Info("server listening",
			"addr", app.config.Addr,
			"storage_driver", app.config.StorageDriver)

		if err := app.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		app.store.Close()
		return fmt.Errorf("http server error: %w", err)
	case <-ctx.Done():
	}

	app.logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := app.httpServer.Shutdown(shutdownCtx); err != nil {
		app.logger.Error("shutdown error", "error", err)
	}

	if err := app.store.Close(); err != nil {
		return fmt.Errorf("failed to close storage: %w", err)
	}

	app.logger.Info("server stopped")
	return nil
}
