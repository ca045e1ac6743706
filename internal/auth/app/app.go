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

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/dabotcentral/central/internal/auth/domain"
	httpapi "github.com/dabotcentral/central/internal/auth/http"
	"github.com/dabotcentral/central/internal/auth/metrics"
	"github.com/dabotcentral/central/internal/auth/service"
	"github.com/dabotcentral/central/internal/auth/store"
	"github.com/dabotcentral/central/pkg/httpx"
	"github.com/dabotcentral/central/pkg/mailx"
	"github.com/dabotcentral/central/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the central service with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db        store.Store
	mailer    mailx.Sender
	templates *mailx.Templates
	registry  *prometheus.Registry
	metrics   *metrics.Metrics

	// Services
	otpService     *service.OTPService
	sessionService *service.SessionService
	apiKeyService  *service.APIKeyService
	todoService    *service.TodoService
	userService    *service.UserService
	adminService   *service.AdminService
	authenticator  *service.Authenticator

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "dabotcentral",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	ctx := slogx.WithContext(context.Background(), app.logger)

	db, err := openStore(ctx, cfg, app.logger)
	if err != nil {
		return nil, err
	}
	app.db = db

	if err := app.initMail(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	app.initMetrics()
	app.initServices()

	// Admin promotion is idempotent so it runs on every start.
	if err := app.adminService.PromoteAdmins(ctx, cfg.AdminEmails); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to promote admins: %w", err)
	}
	if len(cfg.AdminEmails) > 0 {
		app.logger.Info("admin accounts ensured", slog.Int("count", len(cfg.AdminEmails)))
	}

	app.initHTTP()

	return app, nil
}

// Handler exposes the routed handler, mainly for in-process tests.
func (app *Application) Handler() http.Handler { return app.router }

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.logger.Info("central service starting", "port", app.cfg.Port, "version", BuildVersion)

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
	app.logger.Info("shutting down central service...")

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

	// Pending last-used updates still need the database.
	app.apiKeyService.Wait()

	// Close database connection
	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("central service stopped")
	return nil
}

// initMail selects the delivery provider and loads the email templates
func (app *Application) initMail(ctx context.Context) error {
	mailer, err := newMailer(ctx, app.cfg, app.logger)
	if err != nil {
		return fmt.Errorf("failed to initialize mail provider: %w", err)
	}
	app.mailer = mailer

	templates, err := service.LoadTemplates()
	if err != nil {
		return fmt.Errorf("failed to load email templates: %w", err)
	}
	app.templates = templates

	app.logger.Info("mail provider ready", slog.String("provider", app.cfg.MailProvider))
	return nil
}

// initMetrics builds a private registry so tests can create many applications
func (app *Application) initMetrics() {
	app.registry = prometheus.NewRegistry()
	app.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	app.metrics = metrics.NewMetrics(app.registry)
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	app.otpService = &service.OTPService{
		Store:     app.db,
		Mailer:    app.mailer,
		Templates: app.templates,
		From:      app.cfg.MailFrom,
		TTL:       app.cfg.OTPTTL,
	}
	app.sessionService = &service.SessionService{
		Store: app.db,
		TTL:   app.cfg.SessionTTL,
	}
	app.apiKeyService = &service.APIKeyService{Store: app.db}
	app.todoService = &service.TodoService{Store: app.db}
	app.userService = &service.UserService{Store: app.db}
	app.adminService = &service.AdminService{Store: app.db}
	app.authenticator = &service.Authenticator{
		Sessions: app.sessionService,
		APIKeys:  app.apiKeyService,
	}
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	cors := httpx.DefaultCORSConfig()
	cors.AllowedOrigins = app.cfg.CORSAllowedOrigins

	router := httpapi.NewRouter(httpapi.RouterConfig{
		BasePath:     app.cfg.BasePath,
		BuildVersion: BuildVersion,
		CORS:         cors,
		Store:        app.db,
		Logger:       app.logger,
		Metrics:      app.metrics,
		Gatherer:     app.registry,
	})

	// Wire services to router
	router.Authenticator = app.authenticator
	router.OTPService = app.otpService
	router.SessionService = app.sessionService
	router.APIKeyService = app.apiKeyService
	router.TodoService = app.todoService
	router.UserService = app.userService
	if app.cfg.TodoWriteRequiresAdmin {
		router.TodoWriteRole = domain.RoleAdmin
	}
	router.ApplyRoutes()

	app.router = router

	// Initialize HTTP server
	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
