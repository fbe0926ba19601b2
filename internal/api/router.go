package api

import (
	"strings"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/telemedicina/booking-api/docs"
	"github.com/telemedicina/booking-api/internal/api/handler"
	"github.com/telemedicina/booking-api/internal/api/middleware"
	"github.com/telemedicina/booking-api/internal/core/ports"
	"github.com/telemedicina/booking-api/internal/pkg/navigation"
)

// Dependencies holds everything the router wires into handlers.
type Dependencies struct {
	Workspaces ports.WorkspaceProvider
	Admin      ports.UserAdminService
	Catalog    ports.CatalogService
	// Pingers are checked by the readiness probe, keyed by dependency name.
	Pingers   map[string]ports.Pinger
	JWTSecret string
	TokenTTL  time.Duration
	// Registerer receives the HTTP request metrics and Gatherer serves them
	// on /metrics. Both default to the global Prometheus registry; a
	// Registerer that is also a Gatherer serves itself.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
	Log        zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)
	registerer, gatherer := metricsRegistry(deps)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "telemed",
		Subsystem:  "http",
		Registerer: registerer,
		Skipper:    skipInfra,
	}))

	// --- Dependencies ---
	nav := navigation.ContextNavigator{}
	client := []echo.MiddlewareFunc{
		middleware.Navigation(),
		middleware.ClientSession(deps.JWTSecret, deps.TokenTTL, deps.Workspaces),
	}
	withGuard := func(g echo.MiddlewareFunc) []echo.MiddlewareFunc {
		return append(append([]echo.MiddlewareFunc{}, client...), g)
	}

	authHandler := handler.NewAuthHandler(nav)
	cartHandler := handler.NewCartHandler(nav)
	profileHandler := handler.NewProfileHandler()
	adminHandler := handler.NewAdminHandler(deps.Admin)
	catalogHandler := handler.NewCatalogHandler(deps.Catalog)
	noticeHandler := handler.NewNoticeHandler()

	// --- Auth routes ---
	auth := e.Group("/auth", client...)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout)
	auth.POST("/register", authHandler.Register)
	auth.GET("/sesion", authHandler.Session)
	auth.GET("/email-disponible", authHandler.EmailAvailable)
	auth.POST("/recuperar", authHandler.RecoverPassword)

	// --- Public client routes ---
	e.GET("/especialidades/:id/doctores", catalogHandler.Doctors)
	e.POST("/agendar", cartHandler.Book, client...)
	e.GET("/aviso", noticeHandler.Current, client...)

	// --- Signed-in routes ---
	user := e.Group("/user", withGuard(middleware.RequireSession(nav))...)
	user.GET("/carrito", cartHandler.List)
	user.DELETE("/carrito", cartHandler.Remove)
	user.POST("/carrito/confirmar", cartHandler.Confirm)
	user.GET("/carrito/stream", cartHandler.Stream)
	user.GET("/perfil", profileHandler.Get)
	user.PUT("/perfil", profileHandler.Update)
	user.GET("/perfil/stream", profileHandler.Stream)

	// --- Admin routes ---
	admin := e.Group("/admin", withGuard(middleware.RequireAdmin(nav))...)
	admin.GET("/usuarios", adminHandler.List)
	admin.POST("/usuarios", adminHandler.Create)
	admin.GET("/usuarios/stream", adminHandler.Stream)
	admin.PUT("/usuarios/:email", adminHandler.Update)
	admin.DELETE("/usuarios/:email", adminHandler.Delete)

	// --- Health probes and tooling (no client session) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Pingers)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

func metricsRegistry(deps Dependencies) (prometheus.Registerer, prometheus.Gatherer) {
	registerer, gatherer := deps.Registerer, deps.Gatherer
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	if gatherer == nil {
		if g, ok := registerer.(prometheus.Gatherer); ok {
			gatherer = g
		} else {
			gatherer = prometheus.DefaultGatherer
		}
	}
	return registerer, gatherer
}

func skipInfra(c echo.Context) bool {
	p := c.Path()
	return p == "/metrics" || strings.HasPrefix(p, "/health") || strings.HasPrefix(p, "/swagger")
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		Skipper:      skipInfra,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
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
