// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"campuseats/internal/delivery/http/middleware"
	"campuseats/internal/delivery/http/router/handler"
	"campuseats/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler    *handler.AuthHandler
	ProfileHandler *handler.ProfileHandler
	CatalogHandler *handler.CatalogHandler
	OrderHandler   *handler.OrderHandler
	VendorHandler  *handler.VendorHandler
	CourierHandler *handler.CourierHandler
	AdminHandler   *handler.AdminHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler    *handler.AuthHandler
	profileHandler *handler.ProfileHandler
	catalogHandler *handler.CatalogHandler
	orderHandler   *handler.OrderHandler
	vendorHandler  *handler.VendorHandler
	courierHandler *handler.CourierHandler
	adminHandler   *handler.AdminHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:    params.AuthHandler,
		profileHandler: params.ProfileHandler,
		catalogHandler: params.CatalogHandler,
		orderHandler:   params.OrderHandler,
		vendorHandler:  params.VendorHandler,
		courierHandler: params.CourierHandler,
		adminHandler:   params.AdminHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.authHandler.Register)
		authGroup.POST("/login", r.authHandler.Login)
		authGroup.POST("/refresh", r.authHandler.RefreshToken)
		authGroup.POST("/logout", r.authHandler.Logout)
		authGroup.POST("/change-password", r.authHandler.ChangePassword, r.authMiddleware.Authenticate)
	}

	// Public storefront catalog
	catalogGroup := e.Group("/catalog")
	{
		catalogGroup.GET("/vendors", r.catalogHandler.ListVendors)
		catalogGroup.GET("/items", r.catalogHandler.ListItems)
		catalogGroup.GET("/vendors/:vendorId/menu", r.catalogHandler.GetVendorMenu)
		catalogGroup.GET("/vendors/:vendorId/reviews", r.catalogHandler.ListVendorReviews)
	}

	// Signed-in profile routes, any role
	profileGroup := e.Group("/profile")
	profileGroup.Use(r.authMiddleware.Authenticate)
	{
		profileGroup.GET("", r.profileHandler.GetProfile)
		profileGroup.PUT("", r.profileHandler.UpdateProfile)
		profileGroup.PUT("/store", r.profileHandler.UpdateVendorProfile,
			r.authMiddleware.RequireRole(entity.RoleVendor))
	}

	// Client routes
	clientGroup := e.Group("/client")
	clientGroup.Use(r.authMiddleware.Authenticate)
	clientGroup.Use(r.authMiddleware.RequireRole(entity.RoleClient))
	{
		clientGroup.POST("/orders", r.orderHandler.PlaceOrder)
		clientGroup.GET("/orders", r.orderHandler.ListMyOrders)
		clientGroup.GET("/orders/:orderId", r.orderHandler.GetOrder)
		clientGroup.POST("/reviews", r.orderHandler.CreateReview)
	}

	// Vendor routes
	vendorGroup := e.Group("/vendor")
	vendorGroup.Use(r.authMiddleware.Authenticate)
	vendorGroup.Use(r.authMiddleware.RequireRole(entity.RoleVendor))
	{
		vendorGroup.GET("/menu", r.vendorHandler.ListMenu)
		vendorGroup.POST("/menu", r.vendorHandler.CreateMenuItem)
		vendorGroup.PUT("/menu/:itemId", r.vendorHandler.UpdateMenuItem)
		vendorGroup.DELETE("/menu/:itemId", r.vendorHandler.DeleteMenuItem)
		vendorGroup.POST("/images", r.vendorHandler.UploadImage)
		vendorGroup.GET("/orders", r.vendorHandler.ListOrders)
		vendorGroup.POST("/orders/:orderId/status", r.vendorHandler.AdvanceOrder)
		vendorGroup.POST("/orders/:orderId/cancel", r.vendorHandler.CancelOrder)
		vendorGroup.GET("/reviews", r.vendorHandler.ListReviews)
		vendorGroup.POST("/reviews/:reviewId/response", r.vendorHandler.RespondToReview)
	}

	// Delivery routes
	deliveryGroup := e.Group("/delivery")
	deliveryGroup.Use(r.authMiddleware.Authenticate)
	deliveryGroup.Use(r.authMiddleware.RequireRole(entity.RoleDelivery))
	{
		deliveryGroup.GET("/orders/ready", r.courierHandler.ListReadyOrders)
		deliveryGroup.POST("/orders/:orderId/claim", r.courierHandler.ClaimOrder)
		deliveryGroup.POST("/orders/:orderId/complete", r.courierHandler.CompleteOrder)
		deliveryGroup.GET("/orders", r.courierHandler.ListMyDeliveries)
		deliveryGroup.PUT("/availability", r.courierHandler.SetAvailability)
		deliveryGroup.POST("/location", r.courierHandler.ShareLocation)
	}

	// Administrative routes; sub-admins enter too, per-operation rules are
	// enforced in the use case layer.
	adminGroup := e.Group("/admin")
	adminGroup.Use(r.authMiddleware.Authenticate)
	adminGroup.Use(r.authMiddleware.RequireAdministrative())
	{
		adminGroup.POST("/accounts", r.adminHandler.CreateAccount)
		adminGroup.GET("/accounts", r.adminHandler.ListAccounts)
		adminGroup.GET("/accounts/:accountId", r.adminHandler.GetAccount)
		adminGroup.PUT("/accounts/:accountId", r.adminHandler.UpdateAccount)
		adminGroup.POST("/accounts/:accountId/approve", r.adminHandler.ApproveAccount)
		adminGroup.POST("/accounts/:accountId/reject", r.adminHandler.RejectAccount)
		adminGroup.PUT("/accounts/:accountId/active", r.adminHandler.SetAccountActive)
		adminGroup.DELETE("/accounts/:accountId", r.adminHandler.DeleteAccount)
		adminGroup.POST("/accounts/:accountId/images/review", r.adminHandler.ReviewVendorImages)
		adminGroup.GET("/vendors/:vendorId/reviews", r.adminHandler.ListVendorReviews)
		adminGroup.POST("/reviews/:reviewId/moderate", r.adminHandler.ModerateReview)
	}

	// Client order detail is also reachable for vendors/admins through the
	// shared order view.
	orderGroup := e.Group("/orders")
	orderGroup.Use(r.authMiddleware.Authenticate)
	{
		orderGroup.GET("/:orderId", r.orderHandler.GetOrder)
	}
}
