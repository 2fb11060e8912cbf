package adminController

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/KeylaPalacios/divine-beauty/models"
)

// GET /admin/dashboard returns entity counts per category plus total
// revenue (the sum of order subtotals).
func Dashboard(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		productCounts := gin.H{}
		for _, cat := range models.CategoryOrder {
			var n int64
			if err := db.Model(&models.Product{}).Where("category = ?", cat).Count(&n).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count products"})
				return
			}
			productCounts[string(cat)] = n
		}

		var userCount, orderCount int64
		if err := db.Model(&models.User{}).Count(&userCount).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count users"})
			return
		}
		if err := db.Model(&models.Order{}).Count(&orderCount).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count orders"})
			return
		}

		var revenue decimal.Decimal
		err := db.Model(&models.Order{}).
			Select("COALESCE(SUM(subtotal), 0)").
			Scan(&revenue).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sum revenue"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"products": productCounts,
			"users":    userCount,
			"orders":   orderCount,
			"revenue":  revenue,
		})
	}
}
