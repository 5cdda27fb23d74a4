package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/property-management/property-api/docs"
	"github.com/property-management/property-api/internal/api/handler"
	"github.com/property-management/property-api/internal/api/middleware"
	"github.com/property-management/property-api/internal/core/ports"
)

// ServiceName is reported by GET /.
const ServiceName = "property-management"

// Deps are the collaborators the router wires into handlers.
type Deps struct {
	Users      ports.UserService
	Properties ports.PropertyService
	// Checks feed GET /health/ready, keyed by dependency name.
	Checks map[string]handler.CheckFunc
	Logger zerolog.Logger
	// Registry receives the HTTP metrics. Nil means the default registry.
	Registry *prometheus.Registry
	// RateLimitRPS enables per-client rate limiting when positive.
	RateLimitRPS   float64
	RateLimitBurst int
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Logger))
	e.Use(prometheusMiddleware(d.Registry))
	if d.RateLimitRPS > 0 {
		e.Use(middleware.RateLimit(d.RateLimitRPS, d.RateLimitBurst))
	}

	// --- Service endpoints ---
	healthHandler := handler.NewHealthHandler(ServiceName)
	healthDepsHandler := handler.NewHealthDependenciesHandler(d.Checks)

	e.GET("/", healthHandler.Index)
	e.GET("/health", healthHandler.Liveness)            // liveness
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness
	e.GET("/metrics", metricsHandler(d.Registry))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	identity := middleware.RequireIdentity()

	// --- Users ---
	users := handler.NewUserHandler(d.Users)
	ug := e.Group("/users")
	ug.POST("", users.Create)
	ug.GET("", users.List)
	ug.GET("/:id", users.Get)
	ug.PATCH("/:id", users.Update, identity)

	// --- Properties ---
	props := handler.NewPropertyHandler(d.Properties)
	pg := e.Group("/properties")
	pg.POST("", props.Create, identity)
	pg.GET("", props.List)
	pg.GET("/:id", props.Get)
	pg.PATCH("/:id", props.Update, identity)
	pg.PUT("/:id", props.Update, identity)
	pg.DELETE("/:id", props.Delete, identity)

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			event := log.Info()
			if v.Status >= http.StatusInternalServerError {
				event = log.Error()
			}
			event.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}

func prometheusMiddleware(reg *prometheus.Registry) echo.MiddlewareFunc {
	cfg := echoprometheus.MiddlewareConfig{
		Namespace: "property_api",
		Subsystem: "http",
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}
	if reg != nil {
		cfg.Registerer = reg
	}
	return echoprometheus.NewMiddlewareWithConfig(cfg)
}

func metricsHandler(reg *prometheus.Registry) echo.HandlerFunc {
	if reg == nil {
		return echoprometheus.NewHandler()
	}
	return echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: reg})
}
