package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes is the single entry-point that wires up the public catalog,
// auth, user, and admin route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB) {
	// Public storefront pages (no middleware)
	SetupCatalogRoutes(r, db)

	// Register / login / logout
	SetupAuthRoutes(r, db)

	// Cart, checkout, profile, order history (login required)
	SetupUserRoutes(r, db)

	// Back office (admin flag required)
	SetupAdminRoutes(r, db)
}
