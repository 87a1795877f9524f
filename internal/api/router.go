package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/classifieds/ads-api/docs"
	"github.com/classifieds/ads-api/internal/api/handler"
	"github.com/classifieds/ads-api/internal/api/middleware"
	"github.com/classifieds/ads-api/internal/core/domain"
	"github.com/classifieds/ads-api/internal/core/ports"
)

// Deps carries everything the router needs to build its handlers.
type Deps struct {
	Advertisements ports.AdvertisementService
	Users          ports.UserService
	Auth           ports.AuthService

	// TokenHeader is the request header carrying the token.
	TokenHeader string
	// Health lists the dependencies checked by the readiness probe.
	Health map[string]handler.Pinger
	Logger zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// HTTP metrics live in a per-router registry; /metrics serves it together
	// with the default registry holding the domain metrics.
	registry := prometheus.NewRegistry()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "http",
		Registerer: registry,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))

	// --- Dependencies ---
	adHandler := handler.NewAdvertisementHandler(deps.Advertisements)
	userHandler := handler.NewUserHandler(deps.Users, deps.Auth)
	healthHandler := handler.NewHealthHandler(deps.Health)
	requireToken := middleware.Auth(deps.Auth, deps.TokenHeader)

	// --- Advertisement routes ---
	v1 := e.Group("/api/v1")
	v1.GET("/advertisements", adHandler.List)
	v1.GET("/advertisement", adHandler.Search)
	v1.GET("/advertisement/:id", adHandler.Get)
	v1.POST("/advertisement", adHandler.Create, requireToken)
	v1.PATCH("/advertisement/:id", adHandler.Update, requireToken)
	v1.DELETE("/advertisement/:id", adHandler.Delete, requireToken)

	// --- User and auth routes ---
	v1.POST("/user", userHandler.Register)
	v1.POST("/login", userHandler.Login)
	v1.POST("/logout", userHandler.Logout, requireToken)
	v1.GET("/user/:id", userHandler.Get)
	v1.GET("/users", userHandler.List, requireToken, middleware.RBAC(domain.RoleAdmin))
	v1.PATCH("/user/:id", userHandler.Update, requireToken)
	v1.DELETE("/user/:id", userHandler.Delete, requireToken)

	// --- Health probes (no auth required) ---
	e.GET("/health", healthHandler.Liveness)        // liveness  – is the process alive?
	e.GET("/health/ready", healthHandler.Readiness) // readiness – are dependencies up?

	// --- Operations ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: prometheus.Gatherers{registry, prometheus.DefaultGatherer},
	}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// requestLogger writes one zerolog entry per request.
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
			evt := log.Info()
			switch {
			case v.Status >= 500:
				evt = log.Error().Err(v.Error)
			case v.Error != nil:
				evt = log.Warn().Err(v.Error)
			}
			evt.
				Str("request_id", v.RequestID).
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	})
}
