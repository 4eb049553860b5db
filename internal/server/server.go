package server

import (
	"net/http"

	"gofinances/internal/config"
	"gofinances/internal/handlers"
	"gofinances/internal/middleware"
	"gofinances/internal/services"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const maxBodySize = "64K"

// Dependencies are the collaborators the HTTP layer is built from
type Dependencies struct {
	Ledger      services.LedgerServiceInterface
	Categories  services.CategoryServiceInterface
	Tokens      services.TokenServiceInterface
	Seeds       services.SeedGeneratorInterface
	RateLimiter *middleware.IPRateLimiter
	Gatherer    prometheus.Gatherer
}

// New builds the echo instance with the middleware chain and every route.
// Development routes are only registered when cfg runs in the development environment.
func New(cfg *config.Config, deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = middleware.CustomHTTPErrorHandler
	e.Validator = handlers.NewValidator()

	e.Use(middleware.RequestID())
	e.Use(middleware.PanicRecovery())
	e.Use(middleware.SecurityHeaders())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:  cfg.Server.CORSAllowOrigins,
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{echo.HeaderAuthorization, echo.HeaderContentType, middleware.TraceIDHeader},
		ExposeHeaders: []string{middleware.TraceIDHeader},
	}))
	e.Use(echomw.BodyLimit(maxBodySize))

	rateLimiter := deps.RateLimiter
	if rateLimiter == nil {
		rateLimiter = middleware.NewIPRateLimiter(cfg.Security.RateLimitPerSecond, cfg.Security.RateLimitBurst)
	}
	gatherer := deps.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	healthHandler := handlers.NewHealthCheckHandler(deps.Ledger)
	userHandler := handlers.NewUserHandler()
	categoryHandler := handlers.NewCategoryHandler(deps.Categories)
	transactionHandler := handlers.NewTransactionHandler(deps.Ledger, deps.Categories)
	dashboardHandler := handlers.NewDashboardHandler(deps.Ledger, deps.Categories)

	e.GET("/health", healthHandler.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	v1 := e.Group("/api/v1", rateLimiter.Middleware(), middleware.RequireAuth(deps.Tokens))
	v1.GET("/me", userHandler.Me)
	v1.GET("/categories", categoryHandler.ListCategories)
	v1.GET("/transactions", transactionHandler.ListTransactions)
	v1.POST("/transactions", transactionHandler.CreateTransaction)
	v1.GET("/highlights", dashboardHandler.GetHighlights)
	v1.GET("/dashboard", dashboardHandler.GetDashboard)

	if cfg.IsDevelopment() {
		devHandler := handlers.NewDevHandler(deps.Ledger, deps.Categories, deps.Seeds, deps.Tokens)
		v1.POST("/dev/seed", devHandler.SeedTransactions)
		e.POST("/dev/token", devHandler.IssueToken, rateLimiter.Middleware())
	}

	return e
}
