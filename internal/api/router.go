package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/vertex-clinic/booking-api/internal/api/cookie"
	"github.com/vertex-clinic/booking-api/internal/api/handler"
	"github.com/vertex-clinic/booking-api/internal/api/middleware"
	"github.com/vertex-clinic/booking-api/internal/core/ports"

	_ "github.com/vertex-clinic/booking-api/docs"
)

// Dependencies are the constructed services and settings the router wires
// into handlers. Nothing here is created by the router itself.
type Dependencies struct {
	Appointments ports.AppointmentService
	Auth         ports.AuthService
	Cookies      *cookie.Codec
	HealthChecks map[string]handler.DependencyCheck
	CORSOrigins  []string
	Logger       zerolog.Logger

	// Metrics registry for HTTP request metrics and the /metrics endpoint.
	// Defaults to the Prometheus default registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	registerer, gatherer := deps.Registerer, deps.Gatherer
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(deps.Logger))
	e.Use(echomiddleware.SecureWithConfig(echomiddleware.SecureConfig{
		XSSProtection:      "0",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "SAMEORIGIN",
		ReferrerPolicy:     "no-referrer",
	}))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     deps.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAccept},
		AllowCredentials: true,
	}))
	e.Use(echomiddleware.BodyLimit("64K"))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "clinic",
		Registerer: registerer,
	}))

	// --- Dependencies ---
	appointmentHandler := handler.NewAppointmentHandler(deps.Appointments)
	authHandler := handler.NewAuthHandler(deps.Auth, deps.Cookies)
	requireAdmin := middleware.RequireAdmin(deps.Auth, deps.Cookies)

	// --- Public routes ---
	e.POST("/api/appointments", appointmentHandler.Create)
	e.POST("/admin/login", authHandler.Login)

	// --- Admin routes ---
	e.GET("/api/appointments", appointmentHandler.List, requireAdmin)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.HealthChecks, deps.Logger)

	e.GET("/health", healthHandler.Liveness)            // liveness
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness

	// --- Ops ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
