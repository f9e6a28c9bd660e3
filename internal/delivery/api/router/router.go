// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"marketplace/internal/delivery/api/middleware"
	"marketplace/internal/delivery/api/router/handler"
	"marketplace/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	ProductHandler *handler.ProductHandler
	CartHandler    *handler.CartHandler
	OrderHandler   *handler.OrderHandler
	VendorHandler  *handler.VendorHandler
	ReportHandler  *handler.ReportHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// Router holds all the handlers that need to be registered.
type Router struct {
	productHandler *handler.ProductHandler
	cartHandler    *handler.CartHandler
	orderHandler   *handler.OrderHandler
	vendorHandler  *handler.VendorHandler
	reportHandler  *handler.ReportHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *Router {
	return &Router{
		productHandler: params.ProductHandler,
		cartHandler:    params.CartHandler,
		orderHandler:   params.OrderHandler,
		vendorHandler:  params.VendorHandler,
		reportHandler:  params.ReportHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *Router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	apiV1 := e.Group("/api/v1")

	// Public catalog
	productsGroup := apiV1.Group("/products")
	{
		productsGroup.GET("", r.productHandler.ListProducts)
		productsGroup.GET("/:id", r.productHandler.GetProduct)
	}

	authenticated := apiV1.Group("")
	authenticated.Use(r.authMiddleware.Authenticate)

	// Any signed-in user may apply to become a vendor
	authenticated.POST("/vendors/register", r.vendorHandler.Register)

	cartGroup := authenticated.Group("/cart")
	cartGroup.Use(r.authMiddleware.RequireRole(entity.RoleCustomer))
	{
		cartGroup.POST("", r.cartHandler.AddItem)
		cartGroup.GET("", r.cartHandler.GetCart)
		cartGroup.PUT("/:productId", r.cartHandler.UpdateItem)
		cartGroup.DELETE("/:productId", r.cartHandler.RemoveItem)
	}

	// Ownership of a single order is checked by the use case so admins can read it too
	ordersGroup := authenticated.Group("/orders")
	{
		customerOnly := r.authMiddleware.RequireRole(entity.RoleCustomer)
		ordersGroup.POST("", r.orderHandler.PlaceOrder, customerOnly)
		ordersGroup.GET("", r.orderHandler.ListMyOrders, customerOnly)
		ordersGroup.GET("/:id", r.orderHandler.GetOrder)
		ordersGroup.GET("/:id/receipt", r.orderHandler.GetReceipt)
		ordersGroup.POST("/:id/cancel", r.orderHandler.CancelOrder, customerOnly)
	}

	vendorGroup := authenticated.Group("/vendor")
	vendorGroup.Use(r.authMiddleware.RequireRole(entity.RoleVendor))
	{
		vendorGroup.GET("/profile", r.vendorHandler.GetProfile)
		vendorGroup.PUT("/profile", r.vendorHandler.UpdateProfile)
		vendorGroup.GET("/dashboard", r.reportHandler.VendorDashboard)
		vendorGroup.GET("/products", r.productHandler.ListVendorProducts)
		vendorGroup.POST("/products", r.productHandler.CreateProduct)
		vendorGroup.GET("/products/low-stock", r.productHandler.ListLowStockProducts)
		vendorGroup.PUT("/products/:id", r.productHandler.UpdateProduct)
		vendorGroup.PATCH("/products/:id/stock", r.productHandler.AdjustStock)
		vendorGroup.GET("/orders", r.orderHandler.ListVendorOrders)
		vendorGroup.POST("/withdrawals", r.vendorHandler.RequestWithdrawal)
	}

	adminGroup := authenticated.Group("/admin")
	adminGroup.Use(r.authMiddleware.RequireRole(entity.RoleAdmin))
	{
		adminGroup.GET("/dashboard", r.reportHandler.AdminDashboard)
		adminGroup.GET("/actions", r.reportHandler.ListActions)

		adminGroup.GET("/vendors", r.vendorHandler.ListVendors)
		adminGroup.POST("/vendors/:id/approve", r.vendorHandler.Approve)
		adminGroup.POST("/vendors/:id/reject", r.vendorHandler.Reject)
		adminGroup.POST("/vendors/:id/suspend", r.vendorHandler.Suspend)
		adminGroup.PUT("/vendors/:id/commission", r.vendorHandler.SetCommission)

		adminGroup.GET("/products", r.productHandler.ListAllProducts)
		adminGroup.POST("/products/:id/deactivate", r.productHandler.DeactivateProduct)
		adminGroup.PATCH("/products/:id/stock", r.productHandler.AdjustStock)

		adminGroup.GET("/orders", r.orderHandler.ListAllOrders)
		adminGroup.PUT("/orders/:id/status", r.orderHandler.UpdateOrderStatus)
	}
}
