// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"storybook/internal/delivery/http/middleware"
	"storybook/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	UserHandler          *handler.UserHandler
	StoryHandler         *handler.StoryHandler
	CustomizationHandler *handler.CustomizationHandler
	OrderHandler         *handler.OrderHandler
	AuthMiddleware       *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	userHandler          *handler.UserHandler
	storyHandler         *handler.StoryHandler
	customizationHandler *handler.CustomizationHandler
	orderHandler         *handler.OrderHandler
	authMiddleware       *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		userHandler:          params.UserHandler,
		storyHandler:         params.StoryHandler,
		customizationHandler: params.CustomizationHandler,
		orderHandler:         params.OrderHandler,
		authMiddleware:       params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Account routes. Registration and login are open, everything else
	// requires a bearer token.
	userGroup := e.Group("/users")
	{
		userGroup.POST("/register", r.userHandler.Register)
		userGroup.POST("/login", r.userHandler.Login)

		authed := userGroup.Group("", r.authMiddleware.Authenticate)
		authed.GET("/profile", r.userHandler.GetProfile)
		authed.PUT("/profile", r.userHandler.UpdateProfile)
		authed.GET("/saved-books", r.userHandler.ListSavedBooks)
		authed.POST("/saved-books/:bookId", r.userHandler.SaveBook)
		authed.DELETE("/saved-books/:bookId", r.userHandler.RemoveSavedBook)
	}

	// Catalog routes. Browsing is public; curation requires a bearer token.
	storyGroup := e.Group("/stories")
	{
		storyGroup.GET("", r.storyHandler.ListStories)
		storyGroup.GET("/filter", r.storyHandler.FilterStories)
		storyGroup.GET("/:id", r.storyHandler.GetStory)
		storyGroup.GET("/:id/elements", r.storyHandler.ListElements)

		storyGroup.POST("", r.storyHandler.CreateStory, r.authMiddleware.Authenticate)
		storyGroup.PUT("/:id", r.storyHandler.UpdateStory, r.authMiddleware.Authenticate)
		storyGroup.DELETE("/:id", r.storyHandler.DeleteStory, r.authMiddleware.Authenticate)
	}

	// Customization routes. Reads by id stay public so share links resolve.
	customizationGroup := e.Group("/customizations")
	{
		customizationGroup.GET("/options/:type", r.storyHandler.ListOptions)
		customizationGroup.GET("/:id", r.customizationHandler.GetCustomization)

		authed := customizationGroup.Group("", r.authMiddleware.Authenticate)
		authed.POST("", r.customizationHandler.CreateCustomization)
		authed.GET("/user/all", r.customizationHandler.ListMine)
		authed.PUT("/:id", r.customizationHandler.UpdateCustomization)
		authed.DELETE("/:id", r.customizationHandler.DeleteCustomization)
		authed.POST("/:id/generate-book", r.customizationHandler.GenerateBook)
		authed.GET("/:id/book/qrcode", r.customizationHandler.GetBookQRCode)
	}

	// Rendered books resolve publicly; the QR share payload points here.
	e.GET("/books/:id", r.customizationHandler.GetBook)

	// Order routes, all owner-scoped.
	orderGroup := e.Group("/orders", r.authMiddleware.Authenticate)
	{
		orderGroup.POST("", r.orderHandler.CreateOrder)
		orderGroup.GET("", r.orderHandler.ListOrders)
		orderGroup.GET("/:id", r.orderHandler.GetOrder)
		orderGroup.GET("/:id/items", r.orderHandler.ListOrderItems)
		orderGroup.PUT("/:id/status", r.orderHandler.UpdateOrderStatus)
		orderGroup.POST("/:id/payment", r.orderHandler.PayOrder)
	}
}
