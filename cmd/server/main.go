// Package main implements the entry point for the Memoria server, the
// spaced-repetition review service: it assembles daily review queues
// from subject flashcards and records learners' review outcomes.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/DesdeChaves/valcoin-memoria/internal/config"
	"github.com/DesdeChaves/valcoin-memoria/internal/domain/srs"
	"github.com/DesdeChaves/valcoin-memoria/internal/platform/logger"
	"github.com/DesdeChaves/valcoin-memoria/internal/platform/postgres"
	"github.com/DesdeChaves/valcoin-memoria/internal/service/review"
	"github.com/DesdeChaves/valcoin-memoria/internal/store"
	"github.com/DesdeChaves/valcoin-memoria/migrations"
)

func main() {
	app, err := initializeApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	defer app.cleanup()

	if err := app.startHTTPServer(context.Background()); err != nil {
		app.logger.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
}

// application holds the assembled dependencies of the running server.
type application struct {
	config        *config.Config
	logger        *slog.Logger
	db            *sql.DB
	reviewService review.Service
}

// initializeApp loads configuration and wires the application components:
// logging, database, migrations, stores and services.
func initializeApp() (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	db, err := setupDatabase(cfg, appLogger)
	if err != nil {
		return nil, err
	}

	if err := runMigrations(db, appLogger); err != nil {
		return nil, err
	}

	srsService, err := schedulerFromConfig(cfg.Scheduler)
	if err != nil {
		return nil, fmt.Errorf("failed to build scheduler: %w", err)
	}

	flashcardStore := postgres.NewFlashcardStore(db, appLogger)
	memoryStateStore := postgres.NewMemoryStateStore(db, appLogger)
	reviewLogStore := postgres.NewReviewLogStore(db, appLogger)
	txRunner := store.NewSQLTxRunner(db)

	reviewService := review.NewService(
		flashcardStore,
		memoryStateStore,
		reviewLogStore,
		txRunner,
		srsService,
		appLogger,
	)

	return &application{
		config:        cfg,
		logger:        appLogger,
		db:            db,
		reviewService: reviewService,
	}, nil
}

// setupDatabase establishes a connection to the database and configures
// the connection pool.
func setupDatabase(cfg *config.Config, appLogger *slog.Logger) (*sql.DB, error) {
	db, err := sql.Open("pgx", cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	appLogger.Info("Database connection established")
	return db, nil
}

// runMigrations applies any pending embedded migrations.
func runMigrations(db *sql.DB, appLogger *slog.Logger) error {
	goose.SetBaseFS(migrations.FS)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}
	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	version, err := goose.GetDBVersion(db)
	if err != nil {
		return fmt.Errorf("failed to read migration version: %w", err)
	}
	appLogger.Info("Database migrations applied", "version", version)
	return nil
}

// schedulerFromConfig builds the memory scheduler, overriding built-in
// defaults with any configured values.
func schedulerFromConfig(cfg config.SchedulerConfig) (srs.Service, error) {
	pc := srs.ParametersConfig{
		RequestRetention: cfg.RequestRetention,
		MaximumInterval:  cfg.MaximumInterval,
		Decay:            cfg.Decay,
		Weights:          cfg.Weights,
	}

	params, err := srs.NewParameters(pc)
	if err != nil {
		return nil, err
	}
	return srs.NewService(params), nil
}

// startHTTPServer starts the HTTP server with graceful shutdown support.
func (app *application) startHTTPServer(ctx context.Context) error {
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", app.config.Server.Port),
		Handler:           app.setupRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverCtx, cancelServer := context.WithCancel(ctx)
	defer cancelServer()

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		app.logger.Info("Starting server", "port", app.config.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			app.logger.Error("Server failed", "error", err)
			cancelServer()
		}
	}()

	select {
	case <-shutdownCh:
		app.logger.Info("Shutting down server...")
	case <-serverCtx.Done():
		app.logger.Info("Server context canceled, shutting down...")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		app.logger.Error("Server shutdown failed", "error", err)
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	app.logger.Info("Server shutdown completed")
	return nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Failed to close database connection", "error", err)
		}
	}
}
