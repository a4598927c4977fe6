package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/visitlink/visitation-api/docs"
	"github.com/visitlink/visitation-api/internal/api/handler"
	"github.com/visitlink/visitation-api/internal/api/middleware"
	"github.com/visitlink/visitation-api/internal/core/domain"
	"github.com/visitlink/visitation-api/internal/core/ports"
	"github.com/visitlink/visitation-api/internal/infrastructure/http/handlers"
)

// Dependencies is everything the router wires into handlers and middleware.
type Dependencies struct {
	Auth          ports.AuthService
	Calls         ports.CallService
	Registration  ports.RegistrationService
	Users         ports.UserService
	Facilities    ports.FacilityService
	Contacts      ports.ContactService
	UserLookup    middleware.UserLookup
	Readiness     *handlers.HealthDependenciesHandler
	JWTSecret     string
	Logger        zerolog.Logger
	Registerer    prometheus.Registerer
	Gatherer      prometheus.Gatherer
	EnableSwagger bool
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	if deps.Registerer == nil {
		deps.Registerer = prometheus.DefaultRegisterer
	}
	if deps.Gatherer == nil {
		deps.Gatherer = prometheus.DefaultGatherer
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "visitation_http",
		Registerer: deps.Registerer,
	}))

	// --- Operational routes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	e.GET("/health", healthHandler.Liveness)
	if deps.Readiness != nil {
		e.GET("/health/ready", deps.Readiness.Readiness)
	}
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: deps.Gatherer}))
	if deps.EnableSwagger {
		e.GET("/swagger/*", echoSwagger.WrapHandler)
	}

	api := e.Group("/api")

	// --- Public routes ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/token", authHandler.Login)

	registrationHandler := handler.NewRegistrationHandler(deps.Registration)
	reg := api.Group("/registration")
	reg.POST("/start", registrationHandler.Start)
	reg.POST("/verify-email", registrationHandler.VerifyEmail)
	reg.POST("/personal-info", registrationHandler.PersonalInfo)
	reg.POST("/verify-identity", registrationHandler.VerifyIdentity)
	reg.POST("/relationships", registrationHandler.Relationships)

	// --- Authenticated routes ---
	authenticated := []echo.MiddlewareFunc{
		middleware.Auth(deps.JWTSecret),
		middleware.CurrentUser(deps.UserLookup),
	}
	staffOnly := middleware.RBAC(domain.RoleStaff)

	callHandler := handler.NewCallHandler(deps.Calls)
	calls := api.Group("/calls", authenticated...)
	calls.POST("/create", callHandler.Create)
	calls.POST("/:id/join", callHandler.Join)
	calls.GET("/token", callHandler.Token)
	calls.GET("/scheduled", callHandler.Scheduled)

	userHandler := handler.NewUserHandler(deps.Users)
	users := api.Group("/users", authenticated...)
	users.GET("/me", userHandler.Me)
	users.GET("", userHandler.List, staffOnly)
	users.PUT("/:id/status", userHandler.SetStatus, staffOnly)

	facilityHandler := handler.NewFacilityHandler(deps.Facilities)
	facilities := api.Group("/facilities", authenticated...)
	facilities.POST("", facilityHandler.Create, staffOnly)
	facilities.GET("/:id/settings", facilityHandler.GetSettings)
	facilities.PUT("/:id/settings", facilityHandler.UpdateSettings, staffOnly)

	contactHandler := handler.NewContactHandler(deps.Contacts)
	contacts := api.Group("/contacts", authenticated...)
	contacts.POST("/request", contactHandler.Request)
	contacts.PUT("/:id/approve", contactHandler.Approve)
	contacts.GET("/pending", contactHandler.Pending)

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
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			switch {
			case v.Status >= 500:
				ev = log.Error().Err(v.Error)
			case v.Error != nil:
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
