package routes

import (
	"github.com/gin-gonic/gin"

	authControllers "github.com/TMDT-Web/TMDT-Web-Project-sub000/controllers/auth"
	cartControllers "github.com/TMDT-Web/TMDT-Web-Project-sub000/controllers/cart"
	notificationControllers "github.com/TMDT-Web/TMDT-Web-Project-sub000/controllers/notification"
	productControllers "github.com/TMDT-Web/TMDT-Web-Project-sub000/controllers/product"
	rewardControllers "github.com/TMDT-Web/TMDT-Web-Project-sub000/controllers/reward"
	userControllers "github.com/TMDT-Web/TMDT-Web-Project-sub000/controllers/user"
	"github.com/TMDT-Web/TMDT-Web-Project-sub000/middleware"
)

// SetupAuthRoutes registers the public auth endpoints.
func SetupAuthRoutes(api *gin.RouterGroup, deps Deps) {
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", authControllers.Register(deps.DB, deps.Config))
		authGroup.POST("/login", authControllers.Login(deps.DB, deps.Config))
		authGroup.POST("/google", authControllers.GoogleLogin(deps.DB, deps.Config, deps.Google))
	}
}

// SetupUserRoutes registers the catalog plus everything behind a user JWT.
func SetupUserRoutes(api *gin.RouterGroup, deps Deps) {
	// Public catalog browsing
	api.GET("/products", productControllers.GetProducts(deps.DB))
	api.GET("/products/:id", productControllers.GetProductByID(deps.DB, deps.Redis))
	api.GET("/categories", productControllers.GetAllCategories(deps.DB))

	protected := api.Group("")
	protected.Use(middleware.ValidateToken(deps.Config.JWTSecret))
	{
		protected.GET("/users/me", userControllers.GetProfile(deps.DB))
		protected.PUT("/users/me", userControllers.UpdateProfile(deps.DB))

		cartGroup := protected.Group("/cart")
		{
			cartGroup.GET("", cartControllers.GetUserCart(deps.DB))
			cartGroup.POST("", cartControllers.UpdateCartItem(deps.DB))
			cartGroup.DELETE("/:product_id", cartControllers.DeleteCartItem(deps.DB))
			cartGroup.DELETE("", cartControllers.ClearUserCart(deps.DB))
		}

		rewardGroup := protected.Group("/rewards")
		{
			rewardGroup.GET("", rewardControllers.GetSummary(deps.DB))
			rewardGroup.GET("/history", rewardControllers.GetHistory(deps.DB))
			rewardGroup.GET("/vouchers", rewardControllers.GetVouchers(deps.DB))
			rewardGroup.POST("/vouchers", rewardControllers.RedeemVoucher(deps.DB, deps.Config))
		}

		notificationGroup := protected.Group("/notifications")
		{
			notificationGroup.GET("", notificationControllers.List(deps.DB))
			notificationGroup.PUT("/:id/read", notificationControllers.MarkRead(deps.DB))
		}
	}
}
