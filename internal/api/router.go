package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	_ "github.com/rzdmap/rzdmap-api/docs"
	"github.com/rzdmap/rzdmap-api/internal/api/handler"
	"github.com/rzdmap/rzdmap-api/internal/api/middleware"
	"github.com/rzdmap/rzdmap-api/internal/core/domain"
	"github.com/rzdmap/rzdmap-api/internal/core/ports"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Auth     ports.AuthService
	MapLines ports.MapLineService
	Tokens   ports.TokenVerifier
	Health   []handler.Pinger
	Logger   zerolog.Logger

	// RateLimitRPS throttles the identity endpoints per client IP; zero disables it.
	RateLimitRPS      float64
	// MetricsRegisterer enables HTTP metrics and GET /metrics when set.
	MetricsRegisterer prometheus.Registerer
	MetricsGatherer   prometheus.Gatherer
	EnableSwagger     bool
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(deps.Logger))

	if deps.MetricsRegisterer != nil {
		e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
			Namespace:  "rzdmap",
			Subsystem:  "http",
			Registerer: deps.MetricsRegisterer,
			Skipper: func(c echo.Context) bool {
				return c.Path() == "/metrics"
			},
		}))
		gatherer := deps.MetricsGatherer
		if gatherer == nil {
			gatherer = prometheus.DefaultGatherer
		}
		e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	}

	// --- Identity routes (public) ---
	identity := handler.NewIdentityHandler(deps.Auth, deps.Logger)

	var identityMW []echo.MiddlewareFunc
	if deps.RateLimitRPS > 0 {
		identityMW = append(identityMW, echomiddleware.RateLimiter(
			echomiddleware.NewRateLimiterMemoryStore(rate.Limit(deps.RateLimitRPS)),
		))
	}
	for _, prefix := range []string{"/identity", "/api/v1/identity"} {
		g := e.Group(prefix, identityMW...)
		g.POST("/login", identity.Login)
		g.POST("/register", identity.Register)
		g.POST("/confirmemail", identity.ConfirmEmail)
	}

	// --- Map lines (bearer token; writes need Admin) ---
	if deps.MapLines != nil {
		maplines := handler.NewMapLineHandler(deps.MapLines)
		requireAdmin := middleware.RBAC(domain.RoleAdmin)

		g := e.Group("/api/v1/maplines", middleware.Auth(deps.Tokens))
		g.GET("", maplines.List)
		g.GET("/:id", maplines.Get)
		g.POST("", maplines.Create, requireAdmin)
		g.DELETE("/:id", maplines.Delete, requireAdmin)
	}

	// --- Health probes (no auth required) ---
	health := handler.NewHealthHandler(deps.Health...)
	e.GET("/health", health.Liveness)        // liveness  – is the process alive?
	e.GET("/health/ready", health.Readiness) // readiness – are dependencies up?

	if deps.EnableSwagger {
		e.GET("/swagger/*", echoSwagger.WrapHandler)
	}

	return e
}
