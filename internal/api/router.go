package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"

	"github.com/beka-birhanu/distributed-systems/internal/api/handler"
	"github.com/beka-birhanu/distributed-systems/internal/api/middleware"
	"github.com/beka-birhanu/distributed-systems/internal/core/ports"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// Signup and login are public; user lookup sits behind the auth middleware.
func NewRouter(accounts ports.AccountService, tokens ports.TokenIssuer, readiness map[string]handler.Pinger, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("identity"))

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(accounts)
	authMiddleware := middleware.Auth(tokens, log)

	// --- API routes ---
	v1 := e.Group("/api/v1")

	v1.POST("/auth/signup", authHandler.Signup)
	v1.POST("/auth/login", authHandler.Login)

	protected := v1.Group("", authMiddleware)
	protected.GET("/user/:id", authHandler.GetUserByID)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(readiness)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
