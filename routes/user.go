package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	cartControllers "github.com/KeylaPalacios/divine-beauty/controllers/cart"
	checkoutControllers "github.com/KeylaPalacios/divine-beauty/controllers/checkout"
	orderControllers "github.com/KeylaPalacios/divine-beauty/controllers/order"
	userControllers "github.com/KeylaPalacios/divine-beauty/controllers/user"
	"github.com/KeylaPalacios/divine-beauty/middleware"
)

// SetupUserRoutes registers all "/user/*" endpoints. Every cart and
// checkout entry point sits behind the login guard.
func SetupUserRoutes(r *gin.Engine, db *gorm.DB) {
	userGroup := r.Group("/user")
	userGroup.Use(middleware.RequireAuth(db))
	{
		// ──────────────── Profile & Orders ────────────────
		userGroup.GET("/", userControllers.GetProfile(db))
		userGroup.GET("/orders", orderControllers.GetUserOrdersHandler(db))

		// ──────────────── Shopping Cart ────────────────
		cartGroup := userGroup.Group("/cart")
		{
			cartGroup.GET("/", cartControllers.GetCartHandler(db))
			cartGroup.POST("/", cartControllers.AddItemHandler(db))
			cartGroup.POST("/update", cartControllers.UpdateCartHandler(db))
			cartGroup.DELETE("/:key", cartControllers.RemoveItemHandler(db))
			cartGroup.DELETE("/", cartControllers.ClearCartHandler(db))
		}

		// ──────────────── Checkout ────────────────
		userGroup.GET("/checkout", checkoutControllers.PreviewHandler(db))
		userGroup.POST("/checkout", checkoutControllers.CheckoutHandler(db))
	}
}
