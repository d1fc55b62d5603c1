package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/talentbridge/portal-gateway/docs"
	"github.com/talentbridge/portal-gateway/internal/api/handler"
	"github.com/talentbridge/portal-gateway/internal/api/middleware"
	"github.com/talentbridge/portal-gateway/internal/core/ports"
	"github.com/talentbridge/portal-gateway/internal/core/service"
)

// Deps is everything the router needs from the application.
type Deps struct {
	Log           zerolog.Logger
	Session       middleware.SessionConfig
	Backend       ports.Backend
	Auth          ports.AuthService
	Notifications *service.NotificationLog
	Toasts        *service.ToastFeed
	LoginLimiter  *middleware.RateLimiter
	// Metrics overrides the default Prometheus registry for HTTP metrics.
	Metrics *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if d.Metrics != nil {
		registerer, gatherer = d.Metrics, d.Metrics
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "portal",
		Subsystem:  "http",
		Registerer: registerer,
	}))

	// --- Operational endpoints (no session) ---
	healthHandler := handler.NewHealthHandler(d.Session.Storage, d.Backend)
	e.GET("/health", healthHandler.Liveness)        // liveness  – is the process alive?
	e.GET("/health/ready", healthHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	session := middleware.Session(d.Session)

	// --- Backend proxy ---
	proxyHandler := handler.NewProxyHandler(d.Backend, d.Log)
	proxyHandler.Register(e.Group("/api", session))

	// --- Session ---
	sessionHandler := handler.NewSessionHandler(d.Auth, d.Log)
	sg := e.Group("/session", session)
	sg.GET("", sessionHandler.Get)
	login := []echo.MiddlewareFunc{}
	if d.LoginLimiter != nil {
		login = append(login, d.LoginLimiter.Middleware())
	}
	sg.POST("/login", sessionHandler.Login, login...)
	sg.POST("/logout", sessionHandler.Logout)

	// --- Notifications ---
	notificationHandler := handler.NewNotificationHandler(d.Notifications, d.Toasts, d.Log)
	ng := e.Group("/notifications", session, middleware.RequireSession())
	ng.GET("", notificationHandler.List)
	ng.POST("/read-all", notificationHandler.MarkAllRead)
	ng.POST("/:id/read", notificationHandler.MarkRead)
	ng.GET("/toasts", notificationHandler.Toasts)
	ng.GET("/stream", notificationHandler.Stream)

	// --- Role-gated layout shells ---
	shellHandler := handler.NewShellHandler(d.Notifications)
	for _, s := range handler.Sections {
		g := e.Group("/"+s.Name, session, middleware.RouteGuard(s.Name, s.Allowed, ""))
		g.GET("", shellHandler.Render(s))
		g.GET("/*", shellHandler.Render(s))
	}

	return e
}

// requestLogger writes one zerolog line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
