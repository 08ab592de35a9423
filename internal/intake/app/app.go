package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	httpapi "github.com/aussiebroadwan/intake/internal/intake/http"
	"github.com/aussiebroadwan/intake/internal/intake/metrics"
	"github.com/aussiebroadwan/intake/internal/intake/notify"
	"github.com/aussiebroadwan/intake/internal/intake/service"
	"github.com/aussiebroadwan/intake/internal/intake/store"
	"github.com/aussiebroadwan/intake/internal/intake/store/drivers/postgres"
	"github.com/aussiebroadwan/intake/internal/intake/store/drivers/sqlite"
	"github.com/aussiebroadwan/intake/pkg/cryptox"
	"github.com/aussiebroadwan/intake/pkg/jwtx"
	"github.com/aussiebroadwan/intake/pkg/slogx"
	"golang.org/x/sync/errgroup"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"
)

// Application encapsulates the intake service with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db      store.Store
	signer  *jwtx.Signer
	keys    *jwtx.KeySet
	metrics *metrics.Metrics

	notifier   *notify.Notifier
	dispatcher *notify.Dispatcher

	authService         *service.AuthService
	intakeService       *service.IntakeService
	housekeepingService *service.HousekeepingService

	server *http.Server
	router *httpapi.Router
}

// New creates an Application with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "intake-service",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
		metrics: metrics.New(),
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	signer, keys, err := InitSessionKeys(cfg, app.logger)
	if err != nil {
		_ = app.db.Close()
		return nil, fmt.Errorf("failed to initialize session keys: %w", err)
	}
	app.signer, app.keys = signer, keys

	if err := app.initServices(); err != nil {
		_ = app.db.Close()
		return nil, err
	}
	app.initHTTP()

	return app, nil
}

// Handler exposes the HTTP handler, for tests.
func (app *Application) Handler() http.Handler { return app.router }

// Run serves until ctx is cancelled or SIGINT/SIGTERM arrives, then shuts
// down gracefully.
func (app *Application) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	app.logger.Info("intake service starting",
		"port", app.cfg.Port,
		"version", BuildVersion,
		"store", app.cfg.StoreDriver,
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return app.housekeepingService.Run(gctx)
	})

	g.Go(func() error {
		if err := app.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		app.logger.Info("shutdown requested", "cause", context.Cause(gctx))
		return app.Shutdown()
	})

	return g.Wait()
}

// Shutdown stops accepting requests, waits for in-flight welcome emails
// and closes the store, all within the grace period.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down intake service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.dispatcher.Wait(ctx); err != nil {
		app.logger.Warn("welcome emails still in flight at shutdown", "error", err)
	}
	app.intakeService.Close()

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("intake service stopped")
	return nil
}

// initDatabase opens the configured store and applies migrations.
func (app *Application) initDatabase() error {
	var (
		db  store.Store
		err error
	)
	switch app.cfg.StoreDriver {
	case DriverPostgres:
		db, err = postgres.NewStore(app.cfg.DatabaseURL)
	default:
		db, err = sqlite.NewStore(app.cfg.DatabaseFile)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully", "driver", app.cfg.StoreDriver)
	return nil
}

func (app *Application) newSender() (notify.Sender, error) {
	if app.cfg.ResendAPIKey == "" {
		app.logger.Warn("RESEND_API_KEY not set; emails will be logged, not sent")
		return notify.LogSender{}, nil
	}

	var opts []notify.ResendOption
	if app.cfg.ResendBaseURL != "" {
		u, err := url.Parse(app.cfg.ResendBaseURL)
		if err != nil {
			return nil, fmt.Errorf("parse resend base url: %w", err)
		}
		opts = append(opts, notify.WithBaseURL(u))
	}
	return notify.NewResendSender(app.cfg.ResendAPIKey, opts...), nil
}

// initServices initializes all business logic services.
func (app *Application) initServices() error {
	pepper, err := cryptox.LoadOrCreatePepper(app.cfg.PepperFile)
	if err != nil {
		return fmt.Errorf("failed to load pepper: %w", err)
	}

	sender, err := app.newSender()
	if err != nil {
		return err
	}
	app.notifier = notify.NewNotifier(sender, app.cfg.EmailFrom)
	app.dispatcher = notify.NewDispatcher(app.notifier,
		notify.WithResultHook(app.metrics.ObserveNotification),
	)

	app.authService = &service.AuthService{
		Store:           app.db,
		Hasher:          cryptox.NewHasher(pepper),
		Signer:          app.signer,
		Verifier:        jwtx.NewVerifier(app.keys, app.cfg.Issuer),
		Mailer:          app.notifier,
		Issuer:          app.cfg.Issuer,
		BaseURL:         app.cfg.BaseURL,
		SessionTTL:      app.cfg.SessionTTL,
		ConfirmationTTL: app.cfg.ConfirmationTTL,
		OnSignup:        app.metrics.IncrementSignups,
	}

	app.intakeService = &service.IntakeService{
		Store:      app.db,
		Dispatcher: app.dispatcher,
		IdleTTL:    app.cfg.WorkflowIdleTTL,
		WorkflowOptions: []service.WorkflowOption{
			service.WithBannerDuration(app.cfg.BannerDuration),
			service.WithOutcomeHook(func(o service.Outcome) {
				app.metrics.ObserveSubmission(string(o))
			}),
		},
		OnWorkflowCount: app.metrics.SetWorkflows,
	}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.intakeService,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
	app.housekeepingService.Auth = app.authService
	return nil
}

// initHTTP initializes the HTTP router and server.
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(app.keys, BuildVersion, app.db, app.logger)

	router.AuthService = app.authService
	router.IntakeService = app.intakeService
	router.Notifier = app.notifier
	router.Metrics = app.metrics
	router.SecureCookies = app.cfg.SecureCookies
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              net.JoinHostPort("", strconv.Itoa(app.cfg.Port)),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
