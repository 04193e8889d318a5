// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"time"

	"storefront/config"
	deliverymiddleware "storefront/internal/delivery/middleware"

	"storefront/internal/delivery/http/middleware"
	"storefront/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/fx"
	"golang.org/x/time/rate"
)

type RouterParams struct {
	fx.In

	Config              *config.Config
	AuthHandler         *handler.AuthHandler
	UserHandler         *handler.UserHandler
	AdminHandler        *handler.AdminHandler
	ProductHandler      *handler.ProductHandler
	OrderHandler        *handler.OrderHandler
	AuthMiddleware      *middleware.AuthMiddleware
	RequestIDMiddleware *deliverymiddleware.RequestIDMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	cfg            *config.Config
	authHandler    *handler.AuthHandler
	userHandler    *handler.UserHandler
	adminHandler   *handler.AdminHandler
	productHandler *handler.ProductHandler
	orderHandler   *handler.OrderHandler
	authMiddleware *middleware.AuthMiddleware
	requestID      *deliverymiddleware.RequestIDMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		cfg:            params.Config,
		authHandler:    params.AuthHandler,
		userHandler:    params.UserHandler,
		adminHandler:   params.AdminHandler,
		productHandler: params.ProductHandler,
		orderHandler:   params.OrderHandler,
		authMiddleware: params.AuthMiddleware,
		requestID:      params.RequestIDMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.Use(r.requestID.Process)

	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	api := e.Group("/api")

	// Session lifecycle routes. Credential-presenting endpoints get a
	// per-client rate limit when configured.
	authGroup := api.Group("/auth")
	if limiter := r.loginRateLimiter(); limiter != nil {
		authGroup.Use(limiter)
	}
	{
		authGroup.POST("/login", r.authHandler.UserLogin)
		authGroup.POST("/refresh", r.authHandler.UserRefresh)
		authGroup.DELETE("/logout", r.authHandler.Logout)
		authGroup.POST("/admin", r.authHandler.AdminLogin)
		authGroup.GET("/admin", r.authHandler.AdminRefresh)
	}

	// User account routes. Registration is open; everything else requires
	// a valid access token.
	userGroup := api.Group("/users")
	{
		userGroup.POST("/register", r.userHandler.Register)
		userGroup.POST("/admin", r.userHandler.RegisterAdmin)
		userGroup.GET("/user", r.userHandler.GetProfile, r.authMiddleware.Authenticate)
		userGroup.POST("/email", r.userHandler.ChangeEmail, r.authMiddleware.Authenticate)
		userGroup.POST("/update", r.userHandler.ChangeName, r.authMiddleware.Authenticate)
	}

	// Admin account routes. The admin gate re-resolves the account on
	// every request.
	adminGroup := api.Group("/admin")
	adminGroup.Use(r.authMiddleware.Authenticate)
	adminGroup.Use(r.authMiddleware.RequireAdmin)
	{
		adminGroup.GET("/account", r.adminHandler.GetAccount)
		adminGroup.POST("/username", r.adminHandler.ChangeUsername)
		adminGroup.POST("/password", r.adminHandler.ChangePassword)
	}

	// Catalogue routes. Browsing is public; mutation and the inventory
	// ledger are admin only.
	productGroup := api.Group("/products")
	{
		productGroup.GET("", r.productHandler.List)
		productGroup.POST("/product", r.productHandler.Create, r.authMiddleware.Authenticate, r.authMiddleware.RequireAdmin)
		productGroup.PUT("/product", r.productHandler.Update, r.authMiddleware.Authenticate, r.authMiddleware.RequireAdmin)
		productGroup.DELETE("/product", r.productHandler.Delete, r.authMiddleware.Authenticate, r.authMiddleware.RequireAdmin)
		productGroup.POST("/product/stock", r.productHandler.AddStock, r.authMiddleware.Authenticate, r.authMiddleware.RequireAdmin)
		productGroup.GET("/stocks", r.productHandler.StockHistory, r.authMiddleware.Authenticate, r.authMiddleware.RequireAdmin)
	}

	// Order routes. Any authenticated principal can place and list its own
	// orders; listing everything and moving statuses is admin only.
	orderGroup := api.Group("/orders")
	orderGroup.Use(r.authMiddleware.Authenticate)
	{
		orderGroup.GET("", r.orderHandler.ListAll, r.authMiddleware.RequireAdmin)
		orderGroup.GET("/my", r.orderHandler.ListMine)
		orderGroup.POST("/order", r.orderHandler.Create)
		orderGroup.POST("/order/order_status", r.orderHandler.UpdateStatus, r.authMiddleware.RequireAdmin)
	}
}

// loginRateLimiter builds the echo rate limiter middleware from config.
// Returns nil when rate limiting is disabled.
func (r *router) loginRateLimiter() echo.MiddlewareFunc {
	if r.cfg.RateLimit == nil || !r.cfg.RateLimit.Enabled {
		return nil
	}

	return echoMiddleware.RateLimiterWithConfig(echoMiddleware.RateLimiterConfig{
		Store: echoMiddleware.NewRateLimiterMemoryStoreWithConfig(echoMiddleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(r.cfg.RateLimit.Rate),
			Burst:     r.cfg.RateLimit.Burst,
			ExpiresIn: 3 * time.Minute,
		}),
	})
}
