// Package app assembles the gateway from configuration and runs it.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/talentbridge/portal-gateway/internal/api"
	"github.com/talentbridge/portal-gateway/internal/api/middleware"
	"github.com/talentbridge/portal-gateway/internal/core/ports"
	"github.com/talentbridge/portal-gateway/internal/core/service"
	"github.com/talentbridge/portal-gateway/internal/infrastructure/backend"
	"github.com/talentbridge/portal-gateway/internal/infrastructure/db/memory"
	"github.com/talentbridge/portal-gateway/internal/infrastructure/db/redis"
	"github.com/talentbridge/portal-gateway/internal/infrastructure/queue"
	"github.com/talentbridge/portal-gateway/internal/infrastructure/socket"
	"github.com/talentbridge/portal-gateway/internal/pkg/config"
	"github.com/talentbridge/portal-gateway/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// App is a wired gateway ready to Run.
type App struct {
	cfg *config.Config
	log zerolog.Logger

	echo     *echo.Echo
	registry *socket.Registry
	queue    *queue.Dispatcher
	limiter  *middleware.RateLimiter
	redis    *goredis.Client
}

// New connects to session storage and wires every component. Nothing is
// served until Run.
func New(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*App, error) {
	a := &App{cfg: cfg, log: log}

	storage, err := a.sessionStorage(ctx)
	if err != nil {
		return nil, err
	}

	client, err := backend.NewClient(backend.Config{
		BaseURL:          cfg.Backend.URL,
		Timeout:          cfg.Backend.Timeout,
		HealthPath:       cfg.Backend.HealthPath,
		MaxResponseBytes: cfg.Backend.MaxResponseBytes,
	})
	if err != nil {
		return nil, err
	}

	dialer, err := socket.NewWebsocketDialer(cfg.Socket.URL, cfg.Socket.HandshakeTimeout)
	if err != nil {
		return nil, err
	}

	// Delivery path: socket → queue → dispatcher → log, then toast.
	notifications := service.NewNotificationLog(cfg.Notifications.LogCapacity)
	toasts := service.NewToastFeed(cfg.Notifications.ToastTTL)
	dispatcher := service.NewNotificationDispatcher(logger.Component(log, "notifications"), notifications, toasts)
	a.queue = queue.NewDispatcher(cfg.Notifications.DispatchWorkers, dispatcher, logger.Component(log, "queue"))

	a.registry = socket.NewRegistry(dialer, a.queue.Handle, socket.Backoff{
		Initial:    cfg.Socket.BackoffInitial,
		Max:        cfg.Socket.BackoffMax,
		MaxRetries: cfg.Socket.MaxRetries,
	}, logger.Component(log, "socket"))

	a.limiter = middleware.NewRateLimiter(middleware.RateLimiterConfig{
		PerMinute: cfg.RateLimit.LoginPerMinute,
		Burst:     cfg.RateLimit.LoginBurst,
	}, logger.Component(log, "ratelimit"))

	a.echo = api.NewRouter(api.Deps{
		Log: logger.Component(log, "http"),
		Session: middleware.SessionConfig{
			CookieName: cfg.Session.CookieName,
			TTL:        cfg.Session.TTL,
			Secure:     cfg.Session.SecureCookie,
			Storage:    storage,
			// The dispatcher goes first: on login delivery opens before the
			// socket does, on logout it closes before state is dropped.
			Observer: service.TokenObservers{dispatcher, a.registry, notifications, toasts},
			Log:      logger.Component(log, "session"),
		},
		Backend:       client,
		Auth:          service.NewAuthService(client),
		Notifications: notifications,
		Toasts:        toasts,
		LoginLimiter:  a.limiter,
	})

	return a, nil
}

func (a *App) sessionStorage(ctx context.Context) (ports.SessionStorage, error) {
	switch a.cfg.Session.Store {
	case "memory":
		a.log.Warn().Msg("using in-memory session storage; sessions are lost on restart")
		return memory.NewSessionStorage(a.cfg.Session.TTL), nil
	case "redis":
		rdb, err := redis.Connect(ctx, redis.Config{
			Addr:     a.cfg.Redis.Addr,
			Password: a.cfg.Redis.Password,
			DB:       a.cfg.Redis.DB,
		})
		if err != nil {
			return nil, fmt.Errorf("session storage: %w", err)
		}
		a.redis = rdb
		return redis.NewSessionStorage(rdb, a.cfg.Session.TTL), nil
	}
	return nil, fmt.Errorf("session storage: unknown store %q", a.cfg.Session.Store)
}

// Handler exposes the HTTP handler, mainly for tests.
func (a *App) Handler() http.Handler { return a.echo }

// Run serves until ctx is done, then shuts down in order: HTTP server,
// upstream sockets, delivery queue.
func (a *App) Run(ctx context.Context) error {
	queueCtx, stopQueue := context.WithCancel(context.Background())
	defer stopQueue()
	a.queue.Start(queueCtx)

	addr := ":" + a.cfg.Port
	errCh := make(chan error, 1)
	go func() {
		a.log.Info().Str("addr", addr).Str("env", a.cfg.Env).Msg("portal gateway listening")
		if err := a.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	var runErr error
	select {
	case <-ctx.Done():
		a.log.Info().Msg("shutdown requested")
	case err := <-errCh:
		runErr = fmt.Errorf("http server: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.echo.Shutdown(shutdownCtx); err != nil {
		a.log.Error().Err(err).Msg("http shutdown")
	}

	a.registry.CloseAll()
	stopQueue()
	a.limiter.Stop()
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.log.Warn().Err(err).Msg("redis close")
		}
	}

	a.log.Info().Msg("portal gateway stopped")
	return runErr
}
