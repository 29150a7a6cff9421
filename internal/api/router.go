package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/crmdesk/crm-system/internal/api/handler"
	"github.com/crmdesk/crm-system/internal/api/middleware"
	"github.com/crmdesk/crm-system/internal/core/ports"
	"github.com/crmdesk/crm-system/internal/infrastructure/http/handlers"
)

// Services are the use cases exposed over HTTP.
type Services struct {
	Auth     ports.AuthService
	Clients  ports.ClientService
	Taxonomy ports.TaxonomyService
	Reports  ports.ReportService
}

// Options tune the router. Zero values are usable.
type Options struct {
	Logger      zerolog.Logger
	CORSOrigins []string
	// Readiness checks for GET /health/ready, keyed by dependency name.
	Readiness map[string]handlers.Check
	// Registerer and Gatherer default to the global Prometheus registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
// Business routes live under /api; probes, metrics and docs at the root.
func NewRouter(svcs Services, opts Options) *echo.Echo {
	if opts.Registerer == nil {
		opts.Registerer = prometheus.DefaultRegisterer
	}
	if opts.Gatherer == nil {
		opts.Gatherer = prometheus.DefaultGatherer
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(opts.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(opts.Logger))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     opts.CORSOrigins,
		AllowCredentials: true,
	}))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "crm",
		Subsystem:  "http",
		Registerer: opts.Registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))

	// --- Probes, metrics, docs (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(opts.Readiness)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: opts.Gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(svcs.Auth)
	clientHandler := handler.NewClientHandler(svcs.Clients)
	taxonomyHandler := handler.NewTaxonomyHandler(svcs.Taxonomy)
	reportHandler := handler.NewReportHandler(svcs.Reports)
	authMiddleware := middleware.Auth(svcs.Auth)

	api := e.Group("/api")
	api.GET("", root)
	api.GET("/", root)

	// --- Auth routes ---
	api.POST("/register", authHandler.Register)
	api.POST("/login", authHandler.Login)
	api.GET("/me", authHandler.Me, authMiddleware)
	api.POST("/logout", authHandler.Logout, authMiddleware)

	// --- Everything below requires a bearer token ---
	secured := api.Group("", authMiddleware)

	secured.GET("/clients", clientHandler.List)
	secured.POST("/clients", clientHandler.Create)
	secured.GET("/clients/statistics", clientHandler.Statistics)
	secured.GET("/clients/summary", clientHandler.Summary)
	secured.GET("/clients/:id", clientHandler.Get)
	secured.PUT("/clients/:id", clientHandler.Update)
	secured.DELETE("/clients/:id", clientHandler.Delete)
	secured.PATCH("/clients/:id/comment", clientHandler.UpdateComment)
	secured.PATCH("/clients/:id/action-status", clientHandler.UpdateActionStatus)

	secured.GET("/client-status-types", taxonomyHandler.ListClientStatusTypes)
	secured.POST("/client-status-types", taxonomyHandler.CreateClientStatusType)
	secured.GET("/client-status-types/:id", taxonomyHandler.GetClientStatusType)
	secured.PUT("/client-status-types/:id", taxonomyHandler.UpdateClientStatusType)
	secured.DELETE("/client-status-types/:id", taxonomyHandler.DeleteClientStatusType)

	secured.GET("/action-status-types", taxonomyHandler.ListActionStatusTypes)
	secured.POST("/action-status-types", taxonomyHandler.CreateActionStatusType)
	secured.GET("/action-status-types/:id", taxonomyHandler.GetActionStatusType)
	secured.PUT("/action-status-types/:id", taxonomyHandler.UpdateActionStatusType)
	secured.DELETE("/action-status-types/:id", taxonomyHandler.DeleteActionStatusType)

	secured.GET("/daily-reports", reportHandler.List)
	secured.POST("/daily-reports", reportHandler.Create)
	secured.GET("/daily-reports/:id", reportHandler.Get)
	secured.PUT("/daily-reports/:id", reportHandler.Update)
	secured.DELETE("/daily-reports/:id", reportHandler.Delete)

	return e
}

// root handles GET /api/.
//
// @Summary      API banner
// @Tags         meta
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       / [get]
func root(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"message": "CRM API Ready"})
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
			case v.Status >= http.StatusInternalServerError:
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
