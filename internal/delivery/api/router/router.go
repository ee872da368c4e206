// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"marketplace/config"
	"marketplace/internal/delivery/api/middleware"
	"marketplace/internal/delivery/api/router/handler"
	"marketplace/internal/domain/entity"
	"marketplace/internal/infra/metrics"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	UserHandler    *handler.UserHandler
	AdvertHandler  *handler.AdvertHandler
	AuthMiddleware *middleware.AuthMiddleware
	Metrics        *metrics.Collector
	Config         *config.Config
}

// router holds all the handlers that need to be registered.
type router struct {
	userHandler    *handler.UserHandler
	advertHandler  *handler.AdvertHandler
	authMiddleware *middleware.AuthMiddleware
	metrics        *metrics.Collector
	config         *config.Config
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		userHandler:    params.UserHandler,
		advertHandler:  params.AdvertHandler,
		authMiddleware: params.AuthMiddleware,
		metrics:        params.Metrics,
		config:         params.Config,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// User routes
	usersGroup := e.Group("/users")
	{
		usersGroup.POST("/register", r.userHandler.Register)
		usersGroup.POST("/login", r.userHandler.Login)
	}

	// Vendor-only routes authenticate first, then check the stored role
	vendorOnly := []echo.MiddlewareFunc{
		r.authMiddleware.Authenticate,
		r.authMiddleware.RequireRole(entity.RoleVendor),
	}

	advertsGroup := e.Group("/adverts")
	{
		advertsGroup.GET("", r.advertHandler.List)
		advertsGroup.POST("", r.advertHandler.Create, vendorOnly...)
		advertsGroup.GET("/user/me", r.advertHandler.ListMine, vendorOnly...)
		advertsGroup.GET("/:id", r.advertHandler.Get)
		advertsGroup.GET("/:id/similar", r.advertHandler.Similar)
		advertsGroup.PUT("/:id", r.advertHandler.Replace, vendorOnly...)
		advertsGroup.DELETE("/:id", r.advertHandler.Delete, vendorOnly...)
	}
}

// RegisterMetricsRoute exposes the Prometheus endpoint when it is enabled.
func (r *router) RegisterMetricsRoute(e *echo.Echo) {
	if r.config.Metrics == nil || !r.config.Metrics.Enabled || r.metrics == nil {
		return
	}

	e.GET(r.config.Metrics.Path, echo.WrapHandler(r.metrics.Handler()))
}
