package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/ledgerly/expense-tracker/docs"
	"github.com/ledgerly/expense-tracker/internal/api/handler"
	"github.com/ledgerly/expense-tracker/internal/api/middleware"
	"github.com/ledgerly/expense-tracker/internal/core/domain"
	"github.com/ledgerly/expense-tracker/internal/core/ports"
)

// Dependencies are the collaborators the router wires into handlers and
// middleware. Denylist, Limiter and Registry are optional.
type Dependencies struct {
	Log zerolog.Logger

	Auth       ports.AuthService
	Categories ports.CategoryService
	Expenses   ports.ExpenseService
	Admin      ports.AdminService
	Audit      ports.AuditService

	Tokens   middleware.AccessVerifier
	Users    middleware.UserFinder
	Denylist ports.TokenDenylist
	Limiter  ports.RateLimiter

	Cookie       handler.CookieConfig
	AllowOrigins []string
	Checks       map[string]handler.DependencyCheck

	// Registry receives the HTTP metrics; nil uses the default registry.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Log))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     d.AllowOrigins,
		AllowCredentials: true,
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	promCfg := echoprometheus.MiddlewareConfig{Subsystem: "expense"}
	handlerCfg := echoprometheus.HandlerConfig{}
	if d.Registry != nil {
		promCfg.Registerer = d.Registry
		handlerCfg.Gatherer = d.Registry
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(promCfg))

	// --- Ops routes (no auth required) ---
	health := handler.NewHealthHandler()
	ready := handler.NewHealthDependenciesHandler(d.Checks)
	e.GET("/health", health.Liveness)      // liveness
	e.GET("/health/ready", ready.Readiness) // readiness
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(handlerCfg))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	authMW := middleware.Auth(d.Tokens, d.Users, d.Denylist, d.Log)
	adminMW := middleware.RBAC(domain.RoleAdmin)

	api := e.Group("/api")

	// --- Session routes ---
	authHandler := handler.NewAuthHandler(d.Auth, d.Cookie)
	// Logout stays outside the limiter: it must always clear the cookie.
	var limited []echo.MiddlewareFunc
	if d.Limiter != nil {
		limited = append(limited, middleware.RateLimit(d.Limiter, d.Log))
	}
	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register, limited...)
	auth.POST("/login", authHandler.Login, limited...)
	auth.POST("/refresh-token", authHandler.Refresh, limited...)
	auth.POST("/logout", authHandler.Logout)

	// --- User routes ---
	categories := handler.NewCategoryHandler(d.Categories)
	expenses := handler.NewExpenseHandler(d.Expenses)

	api.GET("/categories", categories.ListActive, authMW)
	api.POST("/categories", categories.Create, authMW)

	api.GET("/expenses", expenses.ListMine, authMW)
	api.POST("/expenses", expenses.Create, authMW)
	api.PUT("/expenses/:id", expenses.Update, authMW)
	api.DELETE("/expenses/:id", expenses.Delete, authMW)

	// --- Admin routes ---
	adminHandler := handler.NewAdminHandler(d.Admin, d.Audit)
	admin := api.Group("/admin", authMW, adminMW)

	admin.GET("/users", adminHandler.ListUsers)
	admin.PUT("/users/:id/soft-delete", adminHandler.SoftDeleteUser)
	admin.GET("/audit-logs", adminHandler.AuditLogs)
	admin.GET("/analytics", adminHandler.Analytics)

	admin.GET("/categories", categories.ListAll)
	admin.POST("/categories", categories.AdminCreate)
	admin.PUT("/categories/:id", categories.Update)
	admin.DELETE("/categories/:id", categories.Delete)

	admin.GET("/expenses", expenses.ListAll)
	admin.GET("/expenses/export", expenses.Export)
	admin.DELETE("/expenses/:id", expenses.DeleteAny)

	return e
}

// requestLogger logs one structured line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Status >= http.StatusInternalServerError {
				evt = log.Error()
			}
			evt.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Str("remote_ip", v.RemoteIP).
				Msg("request")
			return nil
		},
	})
}
