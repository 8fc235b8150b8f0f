// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"upkiip/internal/delivery/http/middleware"
	"upkiip/internal/delivery/http/router/handler"
	"upkiip/internal/domain/entity"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler        *handler.AuthHandler
	UserHandler        *handler.UserHandler
	PlaceholderHandler *handler.PlaceholderHandler
	AuthMiddleware     *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler        *handler.AuthHandler
	userHandler        *handler.UserHandler
	placeholderHandler *handler.PlaceholderHandler
	authMiddleware     *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:        params.AuthHandler,
		userHandler:        params.UserHandler,
		placeholderHandler: params.PlaceholderHandler,
		authMiddleware:     params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/health", handler.HealthCheck)
	e.GET("/metrics", echoprometheus.NewHandler())

	api := e.Group("/api")

	// Public auth routes
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", r.authHandler.Register)
		authGroup.POST("/login", r.authHandler.Login)
		authGroup.POST("/forgot-password", r.authHandler.ForgotPassword)
		authGroup.PUT("/reset-password/:token", r.authHandler.ResetPassword)
	}

	// Auth routes that require a session
	authGroup.GET("/me", r.authHandler.Me, r.authMiddleware.Authenticate)
	authGroup.PUT("/update-password", r.authHandler.UpdatePassword, r.authMiddleware.Authenticate)

	// User routes that require authentication
	userGroup := api.Group("/users")
	userGroup.Use(r.authMiddleware.Authenticate)
	{
		userGroup.GET("/profile", r.userHandler.GetProfile)
		userGroup.PUT("/profile", r.userHandler.UpdateProfile)
		userGroup.GET("/notifications", r.userHandler.ListNotifications)
		userGroup.PUT("/notifications/:id/read", r.userHandler.MarkNotificationRead)
	}

	// Admin routes: authentication plus the admin role
	adminGroup := api.Group("/admin")
	adminGroup.Use(r.authMiddleware.Authenticate)
	adminGroup.Use(r.authMiddleware.RequireRoles(entity.RoleAdmin))
	{
		adminGroup.GET("/dashboard", r.placeholderHandler.Placeholder("admin dashboard"))
		adminGroup.GET("/users", r.placeholderHandler.Placeholder("admin user management"))
		adminGroup.GET("/analytics", r.placeholderHandler.Placeholder("admin analytics"))
	}

	// Insurance routes: authentication plus the insurance role
	insuranceGroup := api.Group("/insurance")
	insuranceGroup.Use(r.authMiddleware.Authenticate)
	insuranceGroup.Use(r.authMiddleware.RequireRoles(entity.RoleInsurance))
	{
		insuranceGroup.GET("/claims", r.placeholderHandler.Placeholder("insurance claims"))
		insuranceGroup.GET("/analytics", r.placeholderHandler.Placeholder("insurance analytics"))
	}
}
