package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/mannager/pos-system/internal/api/handler"
	"github.com/mannager/pos-system/internal/api/middleware"
	"github.com/mannager/pos-system/internal/core/domain"
	"github.com/mannager/pos-system/internal/core/service"
	"github.com/mannager/pos-system/internal/store"
)

// RouterConfig carries everything the HTTP layer needs that is not a
// service dependency.
type RouterConfig struct {
	JWTSecret   string
	SabbathLock bool
	Snapshot    handler.Pinger
	Logger      zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(st *store.Store, cfg RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(cfg.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("pos"))

	// --- Dependencies ---
	authService := service.NewAuthService(st, cfg.JWTSecret, 24*time.Hour, cfg.Logger)
	ledgerService := service.NewLedgerService(st, cfg.Logger)
	userService := service.NewUserService(st, cfg.Logger)
	notificationService := service.NewNotificationService(st, cfg.Logger)
	analyticsService := service.NewAnalyticsService(st, cfg.Logger)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	clientHandler := handler.NewClientHandler(ledgerService)
	productHandler := handler.NewProductHandler(ledgerService)
	transactionHandler := handler.NewTransactionHandler(ledgerService)
	notificationHandler := handler.NewNotificationHandler(notificationService)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsService)

	authMiddleware := middleware.Auth(cfg.JWTSecret)
	sabbath := middleware.Sabbath(cfg.SabbathLock, time.Now)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Auth ---
	e.POST("/api/login", authHandler.Login, sabbath)

	api := e.Group("/api", authMiddleware)

	// --- Dashboard & analytics ---
	api.GET("/dashboard", analyticsHandler.Dashboard)
	api.GET("/analytics/sales-overview", analyticsHandler.SalesOverview)
	api.GET("/analytics/financial-reports", analyticsHandler.FinancialReport)
	api.GET("/analytics/export-report", analyticsHandler.ExportReport)

	// --- Users ---
	api.GET("/users", userHandler.List)
	api.POST("/users", userHandler.Create, sabbath)
	api.PUT("/users/:id", userHandler.Update, sabbath)
	api.DELETE("/users/:id", userHandler.Delete, sabbath)
	api.PUT("/users/:id/password", userHandler.ChangePassword, sabbath)
	api.PUT("/admin/users/:id/reset-password", userHandler.ResetPassword, sabbath, adminOnly)

	// --- Current user ---
	api.GET("/user/profile", userHandler.Profile)
	api.PUT("/user/profile", userHandler.UpdateProfile, sabbath)
	api.PUT("/user/language", userHandler.SetLanguage)

	// --- Clients ---
	api.GET("/clients", clientHandler.List)
	api.POST("/clients", clientHandler.Create, sabbath)
	api.PUT("/clients/:id", clientHandler.Update, sabbath)
	api.DELETE("/clients/:id", clientHandler.Delete, sabbath)
	api.GET("/clients/search/:query", clientHandler.Search)
	api.GET("/clients/:id/loans", clientHandler.Loans)
	api.GET("/clients/:id/purchases", clientHandler.Purchases)

	// --- Products ---
	api.GET("/products", productHandler.List)
	api.POST("/products", productHandler.Create, sabbath)
	api.PUT("/products/:id", productHandler.Update, sabbath)
	api.DELETE("/products/:id", productHandler.Delete, sabbath)
	api.PUT("/products/:id/stock", productHandler.SetStock, sabbath)
	api.GET("/products/low-stock", productHandler.LowStock)

	// --- Ledger ---
	api.POST("/transactions", transactionHandler.RecordSale, sabbath)
	api.POST("/loans/pay", transactionHandler.PayLoan, sabbath)

	// --- Notifications ---
	api.DELETE("/notifications", notificationHandler.ClearAll)
	api.DELETE("/notifications/:id", notificationHandler.Delete)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(cfg.Snapshot)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
