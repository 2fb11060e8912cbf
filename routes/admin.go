package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	adminController "github.com/KeylaPalacios/divine-beauty/controllers/admin"
	orderControllers "github.com/KeylaPalacios/divine-beauty/controllers/order"
	"github.com/KeylaPalacios/divine-beauty/middleware"
)

// SetupAdminRoutes registers all "/admin/*" endpoints. Requires the
// session user's admin flag.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.RequireAdmin(db))
	{
		adminGroup.GET("/dashboard", adminController.Dashboard(db))

		// ─────────── Product Management ───────────
		productAdmin := adminGroup.Group("/products")
		{
			productAdmin.GET("", adminController.ListProducts(db))
			productAdmin.POST("", adminController.CreateProduct(db))
			productAdmin.PUT("/:category/:id", adminController.UpdateProduct(db))
			productAdmin.DELETE("/:category/:id", adminController.DeleteProduct(db))
		}

		// ─────────── User Management ───────────
		userAdmin := adminGroup.Group("/users")
		{
			userAdmin.GET("", adminController.ListUsers(db))
			userAdmin.GET("/:id", adminController.GetUserDetail(db))
			userAdmin.POST("", adminController.CreateUser(db))
			userAdmin.PUT("/:id", adminController.UpdateUser(db))
			userAdmin.DELETE("/:id", adminController.DeleteUser(db))
		}

		// ─────────── Orders ───────────
		orderAdmin := adminGroup.Group("/orders")
		{
			orderAdmin.GET("", orderControllers.GetAllOrdersHandler(db))
			orderAdmin.GET("/export", adminController.ExportOrdersToExcel(db))
			orderAdmin.GET("/ws", orderControllers.OrderFeedHandler)
		}
	}
}
