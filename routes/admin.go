package routes

import (
	"github.com/gin-gonic/gin"

	adminControllers "github.com/TMDT-Web/TMDT-Web-Project-sub000/controllers/admin"
	orderControllers "github.com/TMDT-Web/TMDT-Web-Project-sub000/controllers/order"
	userControllers "github.com/TMDT-Web/TMDT-Web-Project-sub000/controllers/user"
	"github.com/TMDT-Web/TMDT-Web-Project-sub000/middleware"
	"github.com/TMDT-Web/TMDT-Web-Project-sub000/models"
)

// SetupAdminRoutes registers the back-office endpoints. Staff can manage
// the catalog and orders; user and staff management is admin-only.
func SetupAdminRoutes(api *gin.RouterGroup, deps Deps) {
	admin := api.Group("/admin")
	admin.Use(middleware.ValidateToken(deps.Config.JWTSecret))
	admin.Use(middleware.RequireRole(string(models.RoleStaff), string(models.RoleAdmin)))
	{
		productAdmin := admin.Group("/products")
		{
			productAdmin.POST("", adminControllers.CreateProduct(deps.DB))
			productAdmin.PUT("/:id", adminControllers.UpdateProduct(deps.DB, deps.Redis))
			productAdmin.DELETE("/:id", adminControllers.DeleteProduct(deps.DB, deps.Redis))
			productAdmin.GET("/export-excel", adminControllers.ExportProductsToExcel(deps.DB))
		}

		categoryAdmin := admin.Group("/categories")
		{
			categoryAdmin.POST("", adminControllers.CreateCategory(deps.DB))
			categoryAdmin.PUT("/:id", adminControllers.UpdateCategory(deps.DB))
			categoryAdmin.DELETE("/:id", adminControllers.DeleteCategory(deps.DB))
		}

		voucherAdmin := admin.Group("/vouchers")
		{
			voucherAdmin.POST("", adminControllers.CreateVoucher(deps.DB))
			voucherAdmin.GET("", adminControllers.ListVouchers(deps.DB))
			voucherAdmin.DELETE("/:id", adminControllers.DeleteVoucher(deps.DB))
		}

		orderAdmin := admin.Group("/orders")
		{
			orderAdmin.GET("", orderControllers.GetAllOrdersHandler(deps.DB))
			orderAdmin.PUT("/:orderID/status", orderControllers.UpdateOrderStatusHandler(deps.DB))
		}
	}

	superOnly := admin.Group("")
	superOnly.Use(middleware.RequireRole(string(models.RoleAdmin)))
	{
		superOnly.GET("/users", userControllers.GetAllUsers(deps.DB))
		staffMgmt := superOnly.Group("/staff")
		{
			staffMgmt.GET("/pending", adminControllers.ListPendingStaff(deps.DB))
			staffMgmt.POST("/promote", adminControllers.PromoteStaff(deps.DB))
			staffMgmt.POST("/approve", adminControllers.ApproveStaff(deps.DB))
			staffMgmt.POST("/reject", adminControllers.RejectStaff(deps.DB))
		}
	}
}
