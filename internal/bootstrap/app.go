// Package bootstrap assembles the API server from configuration.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/devfolio/portfolio-api/config"
	"github.com/devfolio/portfolio-api/internal/api/http/middleware"
	"github.com/devfolio/portfolio-api/internal/api/http/routes"
	authservice "github.com/devfolio/portfolio-api/internal/auth/service"
	"github.com/devfolio/portfolio-api/internal/logging"
	"github.com/devfolio/portfolio-api/internal/projects/backup"
	"github.com/devfolio/portfolio-api/internal/projects/service"
	"github.com/devfolio/portfolio-api/internal/storage"
)

const ServiceName = "portfolio-api"

// App owns the store connection, the HTTP server and the optional backup scheduler.
type App struct {
	cfg        *config.Config
	log        *logging.Logger
	closeStore func() error
	scheduler  *backup.Scheduler
	server     *http.Server
}

// New opens the configured store and builds the router. Call Close when done.
func New(ctx context.Context, cfg *config.Config, log *logging.Logger) (*App, error) {
	if log == nil {
		log = logging.NewNop()
	}

	store, closeStore, err := storage.OpenProjectStore(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open project store: %w", err)
	}
	log.Info(ctx, "project store ready", zap.String("backend", cfg.Store.Backend))

	projects := service.NewProjectService(store, service.WithStrictValidation(cfg.Store.StrictValidation))
	tokens := authservice.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, nil)

	var limiter *middleware.RateLimiter
	if cfg.Server.RateLimitRPS > 0 {
		limiter = middleware.NewRateLimiter(cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst)
	}

	router := routes.NewRouter(routes.Deps{
		ServiceName:        ServiceName,
		Version:            cfg.App.Version,
		Logger:             log,
		Projects:           projects,
		Authenticator:      authservice.NewStaticAuthenticator(cfg.Auth.AdminEmail, cfg.Auth.AdminPassword, tokens),
		Verifier:           tokens,
		ProtectWrites:      cfg.Auth.ProtectWrites,
		CORSAllowedOrigins: cfg.Server.CORSAllowedOrigins,
		RateLimiter:        limiter,
	})

	app := &App{
		cfg:        cfg,
		log:        log,
		closeStore: closeStore,
		server: &http.Server{
			Addr:              ":" + cfg.Server.Port,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
	if cfg.Backup.Schedule != "" {
		app.scheduler = backup.NewScheduler(store, cfg.Backup.Dir, cfg.Backup.Keep, log)
	}
	return app, nil
}

// Handler exposes the router, mainly for tests.
func (a *App) Handler() http.Handler {
	return a.server.Handler
}

// Run serves until ctx is cancelled, then shuts down within SHUTDOWN_TIMEOUT.
func (a *App) Run(ctx context.Context) error {
	if a.scheduler != nil {
		if err := a.scheduler.Start(a.cfg.Backup.Schedule); err != nil {
			return err
		}
		defer a.scheduler.Stop()
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.Info(ctx, "listening", zap.String("addr", a.server.Addr), zap.String("env", a.cfg.App.Environment))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok && err != nil {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.log.Info(context.Background(), "shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// Close releases the store connection.
func (a *App) Close() error {
	return a.closeStore()
}
