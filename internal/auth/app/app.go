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

	httpapi "github.com/aussiebroadwan/tollgate/internal/auth/http"
	"github.com/aussiebroadwan/tollgate/internal/auth/metrics"
	"github.com/aussiebroadwan/tollgate/internal/auth/service"
	"github.com/aussiebroadwan/tollgate/internal/auth/store"
	"github.com/aussiebroadwan/tollgate/internal/auth/store/drivers/sqlite"
	"github.com/aussiebroadwan/tollgate/pkg/cryptox"
	"github.com/aussiebroadwan/tollgate/pkg/httpx"
	"github.com/aussiebroadwan/tollgate/pkg/jwtx"
	"github.com/aussiebroadwan/tollgate/pkg/mailx"
	"github.com/aussiebroadwan/tollgate/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"

	devSeedPassword = "password"
)

// Application encapsulates the auth service application with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db        store.Store
	issuer    *jwtx.Issuer
	mailer    mailx.Sender
	metrics   *metrics.Metrics
	transport httpx.TokenTransport

	// Services
	sessionService      *service.SessionService
	twoFactorService    *service.TwoFactorService
	userService         *service.UserService
	postService         *service.PostService
	housekeepingService *service.HousekeepingService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "auth-service",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	transport, err := httpx.ParseTransport(cfg.Transport)
	if err != nil {
		return nil, err
	}
	app.transport = transport

	// Missing token secrets are fatal before anything touches disk
	issuer, err := InitIssuer(app.cfg, app.logger)
	if err != nil {
		return nil, err
	}
	app.issuer = issuer

	// Set pepper path for password hashing
	cryptox.SetPepperPath(app.cfg.PepperFile)
	if err := cryptox.LoadPepper(); err != nil {
		return nil, fmt.Errorf("failed to load pepper: %w", err)
	}

	mailer, err := InitMailer(app.cfg, app.logger)
	if err != nil {
		return nil, err
	}
	app.mailer = mailer

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	app.metrics = metrics.New()
	app.initServices()

	if app.cfg.SeedDemo {
		if err := app.seedDemo(context.Background()); err != nil {
			_ = app.db.Close()
			return nil, err
		}
	}

	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	// Start housekeeping service
	app.housekeepingService.Start()

	app.logger.Info("auth service starting",
		"port", app.cfg.Port,
		"version", BuildVersion,
		"transport", app.transport,
		"two_factor", app.cfg.TwoFactorEnabled,
		"refresh_rotation", app.cfg.RotateRefresh,
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
		app.housekeepingService.Stop()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
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
	app.logger.Info("shutting down auth service...")

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

	// Stop the housekeeping service
	app.housekeepingService.Stop()

	// Close database connection
	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("auth service stopped")
	return nil
}

// initDatabase initializes the database and applies migrations
func (app *Application) initDatabase() error {
	db, err := sqlite.NewStore(sqlite.FileDSN(app.cfg.DatabaseFile))
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	app.sessionService = &service.SessionService{
		Store:            app.db,
		Issuer:           app.issuer,
		Mailer:           app.mailer,
		AppURL:           app.cfg.AppURL,
		TwoFactorEnabled: app.cfg.TwoFactorEnabled,
		RotateRefresh:    app.cfg.RotateRefresh,
	}
	app.twoFactorService = &service.TwoFactorService{
		Store:  app.db,
		Issuer: app.issuer,
	}
	app.userService = &service.UserService{Store: app.db}
	app.postService = &service.PostService{Store: app.db}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
}

// seedDemo fills an empty database with the demo accounts and posts. Outside
// dev the password is generated unless AUTH_SEED_PASSWORD is set.
func (app *Application) seedDemo(ctx context.Context) error {
	password := app.cfg.SeedPassword
	generated := false
	if password == "" {
		if app.cfg.Env == "dev" {
			password = devSeedPassword
		} else {
			p, err := cryptox.GeneratePassword()
			if err != nil {
				return fmt.Errorf("failed to generate seed password: %w", err)
			}
			password, generated = p, true
		}
	}

	seeded, err := (&service.SeedService{Store: app.db, Password: password}).Seed(ctx)
	if err != nil {
		return err
	}
	if !seeded {
		app.logger.Info("demo seed skipped, database already has users")
		return nil
	}

	attrs := []any{"users", []string{service.SeedUserEmail, service.SeedAdminEmail}}
	if generated {
		attrs = append(attrs, "password", password)
	}
	app.logger.Info("demo data seeded", attrs...)
	return nil
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.issuer,
		app.transport,
		BuildVersion,
		app.db,
		app.logger,
		app.metrics,
	)

	// Wire services to router
	router.SessionService = app.sessionService
	router.TwoFactorService = app.twoFactorService
	router.UserService = app.userService
	router.PostService = app.postService
	router.ApplyRoutes()

	app.router = router

	// Initialize HTTP server
	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
