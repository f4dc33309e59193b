package routes

import (
	"github.com/gin-gonic/gin"

	orderControllers "github.com/TMDT-Web/TMDT-Web-Project-sub000/controllers/order"
	paymentControllers "github.com/TMDT-Web/TMDT-Web-Project-sub000/controllers/payment"
	"github.com/TMDT-Web/TMDT-Web-Project-sub000/middleware"
)

// SetupOrderRoutes registers the user-facing order endpoints.
func SetupOrderRoutes(api *gin.RouterGroup, deps Deps) {
	orders := api.Group("/orders")
	orders.Use(middleware.ValidateToken(deps.Config.JWTSecret))
	{
		orders.POST("", orderControllers.PlaceOrderHandler(deps.DB, deps.Gateways, deps.Config))
		orders.GET("", orderControllers.GetMyOrdersHandler(deps.DB))
		orders.GET("/:orderID", orderControllers.GetOrderHandler(deps.DB))
		orders.POST("/:orderID/cancel", orderControllers.CancelOrderHandler(deps.DB))
	}
}

// SetupPaymentRoutes registers the gateway callbacks. These are public:
// MoMo and VNPay authenticate with signatures, not bearer tokens.
func SetupPaymentRoutes(api *gin.RouterGroup, deps Deps) {
	payments := api.Group("/payments")
	{
		payments.POST("/momo/ipn", paymentControllers.MoMoIPNHandler(deps.DB, deps.Gateways, deps.Config))
		payments.GET("/vnpay/return", paymentControllers.VNPayReturnHandler(deps.DB, deps.Gateways, deps.Config))
		payments.GET("/vnpay/ipn", paymentControllers.VNPayIPNHandler(deps.DB, deps.Gateways, deps.Config))
	}
}
