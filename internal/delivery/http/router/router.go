// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"nearbasket/internal/delivery/http/middleware"
	"nearbasket/internal/delivery/http/router/handler"
	"nearbasket/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	UserHandler    *handler.UserHandler
	ShopHandler    *handler.ShopHandler
	ProductHandler *handler.ProductHandler
	OrderHandler   *handler.OrderHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	user     *handler.UserHandler
	shop     *handler.ShopHandler
	product  *handler.ProductHandler
	order    *handler.OrderHandler
	authMidl *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		user:     params.UserHandler,
		shop:     params.ShopHandler,
		product:  params.ProductHandler,
		order:    params.OrderHandler,
		authMidl: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application. The three
// pre-auth routes (register, send-otp, verify-otp) are the only ones outside
// the authenticated groups.
func (r *router) RegisterRoutes(e *echo.Echo) {
	customer := r.authMidl.RequireRole(entity.RoleCustomer.String())
	shopkeeper := r.authMidl.RequireRole(entity.RoleShopkeeper.String())

	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	users := e.Group("/users")
	{
		users.POST("/register/", r.user.Register)
		users.POST("/send-otp/", r.user.SendOtp)
		users.POST("/verify-otp/", r.user.VerifyOtp)

		me := users.Group("", r.authMidl.Authenticate)
		me.GET("/me/", r.user.Me)
		me.PUT("/me/update/", r.user.UpdateMe)
	}

	shops := e.Group("/shops", r.authMidl.Authenticate)
	{
		shops.GET("/details/:shopCode/", r.shop.Details)

		shops.GET("/my-shop/", r.shop.MyShop, shopkeeper)
		shops.PUT("/my-shop/update/", r.shop.UpdateMyShop, shopkeeper)
		shops.POST("/add-customer/", r.shop.AddCustomer, shopkeeper)
		shops.GET("/customers/", r.shop.Customers, shopkeeper)
		shops.DELETE("/customers/:userId/remove/", r.shop.RemoveCustomer, shopkeeper)

		shops.POST("/join/:shopCode/", r.shop.Join, customer)
		shops.GET("/my-joined-shops/", r.shop.JoinedShops, customer)
	}

	products := e.Group("/products", r.authMidl.Authenticate)
	{
		products.GET("/shops/:shopId/products/", r.product.List)
		products.POST("/shops/:shopId/products/", r.product.Create)
		products.GET("/shops/:shopId/products/:productId/", r.product.Get)
		products.PUT("/shops/:shopId/products/:productId/", r.product.Update)
		products.DELETE("/shops/:shopId/products/:productId/", r.product.Delete)
	}

	orders := e.Group("/orders", r.authMidl.Authenticate)
	{
		orders.POST("/shops/:shopId/orders/", r.order.Place, customer)
		orders.GET("/my-orders/", r.order.MyOrders, customer)
		orders.GET("/shops/:shopId/orders/list/", r.order.ShopOrders, shopkeeper)
		orders.GET("/:orderId/", r.order.Details)
		orders.PUT("/:orderId/status/", r.order.UpdateStatus, shopkeeper)
	}
}
