package app

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

	httpapi "github.com/aussiebroadwan/tasks/internal/tasks/http"
	"github.com/aussiebroadwan/tasks/internal/tasks/service"
	"github.com/aussiebroadwan/tasks/internal/tasks/store"
	"github.com/aussiebroadwan/tasks/internal/tasks/store/drivers/mongo"
	"github.com/aussiebroadwan/tasks/internal/tasks/store/drivers/sqlite"
	"github.com/aussiebroadwan/tasks/pkg/cryptox"
	"github.com/aussiebroadwan/tasks/pkg/slogx"
)

const (
	BuildVersion = "v0.1.0"
)

// Application encapsulates the tasks service with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db store.Store

	// Services
	tokenService      *service.TokenService
	credentialService *service.CredentialService
	taskService       *service.TaskService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg:    cfg,
		logger: NewLogger(cfg),
	}

	// Initialize the store first, nothing works without it
	db, err := OpenStore(context.Background(), cfg, app.logger)
	if err != nil {
		return nil, err
	}
	app.db = db

	if err := app.initServices(); err != nil {
		_ = app.db.Close()
		return nil, err
	}
	app.initHTTP()

	return app, nil
}

// NewLogger builds the process logger from the config.
func NewLogger(cfg Config) *slog.Logger {
	return slogx.New(slogx.Config{
		Service: "tasks-service",
		Version: BuildVersion,
		Env:     cfg.Env,
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
	})
}

// Handler exposes the router, mostly for tests.
func (app *Application) Handler() http.Handler { return app.router }

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.logger.Info("tasks service starting",
		"port", app.cfg.Port,
		"version", BuildVersion,
		"store", app.cfg.StoreDriver,
	)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a shutdown signal or server error
	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			_ = app.db.Close()
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		// Perform graceful shutdown
		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down tasks service...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	// Shutdown the HTTP server
	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	// Close database connection
	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("tasks service stopped")
	return nil
}

// OpenStore connects the configured store driver and applies migrations.
func OpenStore(ctx context.Context, cfg Config, logger *slog.Logger) (store.Store, error) {
	var (
		db  store.Store
		err error
	)

	switch cfg.StoreDriver {
	case DriverMongo:
		db, err = mongo.NewStore(ctx, cfg.MongoURI, cfg.MongoDatabase)
	case DriverSQLite:
		dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", cfg.DatabaseFile)
		db, err = sqlite.NewStore(dsn)
	default:
		err = fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply database migrations: %w", err)
	}

	logger.Info("database migrations applied successfully", "store", cfg.StoreDriver)
	return db, nil
}

// initServices initializes all business logic services
func (app *Application) initServices() error {
	secret, err := app.loadSecret()
	if err != nil {
		return err
	}

	app.tokenService, err = service.NewTokenService(secret)
	if err != nil {
		return fmt.Errorf("failed to initialize token service: %w", err)
	}

	hasher, err := cryptox.NewPasswordHasher(app.cfg.BcryptCost)
	if err != nil {
		return fmt.Errorf("failed to initialize password hasher: %w", err)
	}

	app.credentialService = &service.CredentialService{Store: app.db, Hasher: hasher}
	app.taskService = &service.TaskService{Store: app.db}
	return nil
}

// loadSecret prefers JWT_SECRET and falls back to the secret file, creating
// it on first start.
func (app *Application) loadSecret() ([]byte, error) {
	if app.cfg.JWTSecret != "" {
		secret := []byte(app.cfg.JWTSecret)
		if err := cryptox.ValidateSecret(secret); err != nil {
			return nil, fmt.Errorf("invalid JWT_SECRET: %w", err)
		}
		return secret, nil
	}

	secret, err := cryptox.LoadOrGenerateSecret(app.cfg.JWTSecretFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load signing secret: %w", err)
	}
	app.logger.Info("signing secret loaded from file", "path", app.cfg.JWTSecretFile)
	return secret, nil
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	cors := httpapi.DefaultCORS
	cors.AllowedOrigins = app.cfg.CORSOrigins

	router := httpapi.NewRouter(
		BuildVersion,
		app.db,
		app.logger,
		cors,
	)

	// Wire services to router
	router.TokenService = app.tokenService
	router.CredentialService = app.credentialService
	router.TaskService = app.taskService
	router.ApplyRoutes()

	app.router = router

	// Initialize HTTP server
	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
