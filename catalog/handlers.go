package catalog

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GET /products?category=...
func ListProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := c.DefaultQuery("category", FilterAll)
		views, err := Collect(db, filter)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"category": filter, "products": views})
	}
}

// GET /products/:category/:id
func GetProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}
		view, err := Fetch(db, c.Param("category"), uint(id))
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found", "redirect": "/products"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve product"})
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

// GET / returns the newest product per category for the storefront carousel.
func Home(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		featured, err := Featured(db)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch featured products"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"featured": featured})
	}
}

// GET /new returns the twelve newest products across all categories.
func NewArrivals(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		views, err := Latest(db, 12)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"products": views})
	}
}
