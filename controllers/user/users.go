package userControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/KeylaPalacios/divine-beauty/middleware"
	"github.com/KeylaPalacios/divine-beauty/models"
)

// GET /user/ returns the profile plus order history, newest order first.
func GetProfile(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		current := middleware.CurrentUser(c)
		var user models.User
		if err := db.
			Preload("Orders", func(db *gorm.DB) *gorm.DB {
				return db.Order("created_at DESC")
			}).
			First(&user, "id = ?", current.ID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusOK, user)
	}
}
