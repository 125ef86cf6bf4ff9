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

	"github.com/aussiebroadwan/directory/internal/directory/backend"
	"github.com/aussiebroadwan/directory/internal/directory/engine"
	httpapi "github.com/aussiebroadwan/directory/internal/directory/http"
	"github.com/aussiebroadwan/directory/internal/directory/service"
	"github.com/aussiebroadwan/directory/internal/directory/session"
	"github.com/aussiebroadwan/directory/internal/directory/store"
	"github.com/aussiebroadwan/directory/internal/directory/store/drivers/sqlite"
	"github.com/aussiebroadwan/directory/pkg/slogx"
)

// BuildVersion is overridden at build time via -ldflags.
var BuildVersion = "v0.1.0"

// Application encapsulates the directory service with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies. db is nil unless the relational backend is selected.
	db        store.Store
	directory backend.Directory
	engine    engine.Provider
	sessions  session.Store

	// Services
	adminService        *service.AdminService
	housekeepingService *service.HousekeepingService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// NewLogger builds the process logger from cfg.
func NewLogger(cfg Config) *slog.Logger {
	return slogx.New(slogx.Config{
		Service: "directory",
		Version: BuildVersion,
		Env:     cfg.Env,
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
	})
}

// New creates a new Application instance with all dependencies initialized.
func New(ctx context.Context, cfg Config) (*Application, error) {
	app := &Application{
		cfg:    cfg,
		logger: NewLogger(cfg),
	}

	if cfg.Relational() {
		if err := app.initDatabase(ctx); err != nil {
			return nil, err
		}
	}

	if err := app.initDirectory(); err != nil {
		app.closeDatabase()
		return nil, err
	}

	if err := app.initSessions(ctx); err != nil {
		app.closeDatabase()
		return nil, err
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("directory service starting",
		"port", app.cfg.Port,
		"version", BuildVersion,
		"backend", app.cfg.Directory.Kind,
		"admin_console", app.adminService != nil,
		"interaction", app.engine != nil,
	)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.housekeepingService.Stop()
			app.closeDatabase()
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down directory service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	if rs, ok := app.sessions.(*session.RedisStore); ok {
		if err := rs.Close(); err != nil {
			app.logger.Error("error closing session store", "error", err)
		}
	}

	if err := app.closeDatabase(); err != nil {
		return err
	}

	app.logger.Info("directory service stopped")
	return nil
}

// Handler exposes the configured router, mainly for tests.
func (app *Application) Handler() http.Handler {
	return app.router
}

// OpenStore opens the relational store and applies migrations. It is shared
// by serve, seed and migrate.
func OpenStore(databaseFile string) (*sqlite.Store, error) {
	host := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", databaseFile)
	if databaseFile == ":memory:" {
		host = databaseFile
	}

	db, err := sqlite.NewStore(host)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply database migrations: %w", err)
	}
	return db, nil
}

// SeedOptions translates the seed section of cfg for SeedService.Run.
func (c Config) SeedOptions() service.SeedOptions {
	return service.SeedOptions{
		DomainName:       c.Seed.DomainName,
		BootstrapAccount: c.Seed.BootstrapAccount,
		UsersFile:        c.Seed.File,
	}
}

// initDatabase opens the store, applies migrations and seeds defaults.
func (app *Application) initDatabase(ctx context.Context) error {
	db, err := OpenStore(app.cfg.DatabaseFile)
	if err != nil {
		return err
	}
	app.db = db
	app.logger.Info("database migrations applied successfully")

	seeder := &service.SeedService{Store: db}
	report, err := seeder.Run(slogx.WithContext(ctx, app.logger), app.cfg.SeedOptions())
	if err != nil {
		_ = db.Close()
		app.db = nil
		return fmt.Errorf("failed to seed database: %w", err)
	}
	app.logger.Info("database seeded",
		"created", report.Created,
		"skipped", report.Skipped,
		"failed", report.Failed,
	)
	return nil
}

func (app *Application) initDirectory() error {
	dir, err := backend.New(app.cfg.Directory, backend.Options{
		Store:  app.db,
		Logger: app.logger,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize directory: %w", err)
	}
	app.directory = dir

	if app.cfg.Engine.URL != "" {
		app.engine = engine.NewClient(app.cfg.Engine.URL, app.cfg.Engine.Token)
	} else {
		app.logger.Warn("ENGINE_URL not set, interaction routes disabled")
	}
	return nil
}

// initSessions sets up the admin session store. Only the relational backend
// has a console to sign in to.
func (app *Application) initSessions(ctx context.Context) error {
	if app.db == nil {
		return nil
	}

	switch app.cfg.Admin.SessionStore {
	case SessionStoreRedis:
		rs, err := session.NewRedisStore(ctx, app.cfg.Admin.Redis, app.cfg.Admin.SessionIdle)
		if err != nil {
			return fmt.Errorf("failed to initialize session store: %w", err)
		}
		app.sessions = rs
	default:
		app.sessions = session.NewMemoryStore(app.cfg.Admin.SessionIdle)
	}

	app.logger.Info("admin session store ready", "kind", app.cfg.Admin.SessionStore)
	return nil
}

// initServices initializes all business logic services.
func (app *Application) initServices() {
	if app.db != nil {
		app.adminService = &service.AdminService{
			Store: app.db,
			Audit: &service.AuditService{Store: app.db},
		}
	}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.sessions,
		app.logger,
		app.cfg.HousekeepingInterval,
		app.cfg.AuditRetention,
	)
}

// initHTTP initializes the HTTP router and server.
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(BuildVersion, app.db, app.logger)

	router.Directory = app.directory
	router.Engine = app.engine
	router.Sessions = app.sessions
	router.Admin = app.adminService
	router.LoginMinDuration = app.cfg.LoginMinDuration
	router.APIToken = app.cfg.API.Token
	router.CORSOrigins = app.cfg.API.CORSOrigins
	router.SecureCookies = app.cfg.Admin.SecureCookies()
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}

func (app *Application) closeDatabase() error {
	if app.db == nil {
		return nil
	}
	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}
	app.db = nil
	return nil
}
