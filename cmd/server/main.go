/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the attendance analyzer server.
  Handles configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load configuration (.env, environment, then flags)
  2. Configure the structured logger
  3. Initialize SQLite run log
  4. Start the retention scheduler
  5. Configure HTTP router
  6. Start server with graceful shutdown

COMMAND-LINE FLAGS (override the environment):
  -port       HTTP server port (PORT, default: 8080)
  -db         SQLite database path (DB_PATH, default: analyzer.db)
              Use ":memory:" for in-memory database
  -log-level  debug, info, warn or error (LOG_LEVEL, default: info)

ENVIRONMENT:
  ALLOWED_ORIGINS     Comma-separated CORS origins
  MAX_UPLOAD_MB       Upload size limit
  RUN_RETENTION       How long run metadata is kept (0 disables pruning)
  RETENTION_INTERVAL  How often pruning runs

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Stop the retention scheduler
  4. Close database connection

SEE ALSO:
  - config/config.go: Environment configuration
  - api/server.go: Router configuration
  - store/sqlite/sqlite.go: Run log
*/
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/httplog/v3"
	"github.com/warp/attendance-analyzer/api"
	"github.com/warp/attendance-analyzer/config"
	"github.com/warp/attendance-analyzer/store/sqlite"
)

func main() {
	os.Exit(run())
}

// run starts the server and blocks until shutdown. It returns the process
// exit code so deferred cleanup runs before the process exits.
func run() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		return 1
	}

	// Flags
	flag.IntVar(&cfg.Port, "port", cfg.Port, "HTTP server port")
	flag.StringVar(&cfg.DBPath, "db", cfg.DBPath, "SQLite database path")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	flag.Parse()

	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.SlogLevel(),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "attendance-analyzer"),
	)
	slog.SetDefault(logger)

	// Initialize store
	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		logger.Error("failed to initialize database", slog.String("path", cfg.DBPath), slog.Any("error", err))
		return 1
	}
	defer store.Close()

	handler := api.NewHandler(store, logger, cfg.MaxUploadBytes)

	retention := api.NewRetentionScheduler(store, cfg.RunRetention, cfg.RetentionInterval, logger)
	retention.Start()
	defer retention.Stop()

	router := api.NewRouter(handler, cfg.AllowedOrigins)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server starting", slog.Int("port", cfg.Port), slog.String("db", cfg.DBPath))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Wait for interrupt signal or listener failure
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-serverErr:
		logger.Error("server failed", slog.Any("error", err))
		return 1
	}

	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", slog.Any("error", err))
		return 1
	}

	logger.Info("server stopped")
	return 0
}
