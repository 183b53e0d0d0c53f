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

	httpapi "github.com/aussiebroadwan/mutual/internal/match/http"
	"github.com/aussiebroadwan/mutual/internal/match/observability"
	"github.com/aussiebroadwan/mutual/internal/match/service"
	"github.com/aussiebroadwan/mutual/internal/match/store"
	"github.com/aussiebroadwan/mutual/pkg/cryptox"
	"github.com/aussiebroadwan/mutual/pkg/jwtx"
	"github.com/aussiebroadwan/mutual/pkg/slogx"
)

// BuildVersion is overridden at build time with -ldflags "-X ...BuildVersion=...".
var BuildVersion = "v0.1.0"

// Application wires the matching service together.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db         store.Store
	keyManager *jwtx.KeyManager
	metrics    *observability.Metrics

	tokenService    *service.TokenService
	userService     *service.UserService
	interestService *service.InterestService
	matchService    *service.MatchService

	server *http.Server
	router *httpapi.Router
}

// New creates an Application with every dependency initialised. The store
// handle is owned by the Application and released by Shutdown.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "mutual",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
		metrics: observability.New(),
	}

	cryptox.SetPepperPath(cfg.PepperFile)
	if err := cryptox.LoadPepper(); err != nil {
		return nil, fmt.Errorf("failed to load pepper: %w", err)
	}

	keyManager, err := InitKeys(cfg, app.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT keys: %w", err)
	}
	app.keyManager = keyManager

	if err := app.initStore(); err != nil {
		return nil, err
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Handler returns the HTTP handler serving the API.
func (app *Application) Handler() http.Handler { return app.router }

// Run serves HTTP until ctx is cancelled, a shutdown signal arrives or the
// server fails, then shuts down gracefully.
func (app *Application) Run(ctx context.Context) error {
	app.logger.Info("mutual starting",
		"port", app.cfg.Port,
		"version", BuildVersion,
		"store", app.cfg.StoreDriver,
	)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			_ = app.db.Close()
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)
	case <-ctx.Done():
		app.logger.Info("context cancelled, shutting down")
	}

	if err := app.Shutdown(); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests and closes the store.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down mutual...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing store", "error", err)
		return err
	}

	app.logger.Info("mutual stopped")
	return nil
}

func (app *Application) initStore() error {
	db, err := OpenStore(context.Background(), app.cfg)
	if err != nil {
		return err
	}
	app.db = db

	app.logger.Info("store ready", "driver", app.cfg.StoreDriver)
	return nil
}

func (app *Application) initServices() {
	app.tokenService = &service.TokenService{
		KeyManager: app.keyManager,
		Issuer:     app.cfg.Issuer,
		AccessTTL:  app.cfg.TokenTTL,
	}

	app.userService = &service.UserService{Store: app.db, Tokens: app.tokenService}
	app.interestService = &service.InterestService{Store: app.db}
	app.matchService = &service.MatchService{Store: app.db}
}

func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.keyManager.KeySet,
		app.keyManager.Verifier,
		BuildVersion,
		app.db,
		app.metrics,
		app.logger,
	)

	router.UserService = app.userService
	router.InterestService = app.interestService
	router.MatchService = app.matchService
	router.AllowedOrigins = app.cfg.CORSOrigins
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
