package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/KeylaPalacios/divine-beauty/catalog"
)

// SetupCatalogRoutes registers the public product-browsing endpoints.
func SetupCatalogRoutes(r *gin.Engine, db *gorm.DB) {
	r.GET("/", catalog.Home(db))
	r.GET("/new", catalog.NewArrivals(db))
	r.GET("/products", catalog.ListProducts(db))
	r.GET("/products/:category/:id", catalog.GetProduct(db))
}
