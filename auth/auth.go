package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/KeylaPalacios/divine-beauty/models"
	"github.com/KeylaPalacios/divine-beauty/session"
)

type RegisterInput struct {
	FirstName       string `json:"first_name" binding:"required"`
	LastName        string `json:"last_name"`
	BirthDate       string `json:"birth_date"`
	Email           string `json:"email" binding:"required,email"`
	Address         string `json:"address"`
	Password        string `json:"password" binding:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// POST /auth/register
func Register(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input RegisterInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if input.Password != input.ConfirmPassword {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Passwords do not match", "field": "confirm_password"})
			return
		}

		var birthDate time.Time
		if input.BirthDate != "" {
			parsed, err := time.Parse("2006-01-02", input.BirthDate)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid birth date", "field": "birth_date"})
				return
			}
			birthDate = parsed
		}

		var existing models.User
		if err := db.Where("email = ?", input.Email).First(&existing).Error; err == nil {
			c.JSON(http.StatusConflict, gin.H{"error": "Email is already registered"})
			return
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check email"})
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}

		// Self-registration never grants the admin flag.
		user := models.User{
			FirstName:    input.FirstName,
			LastName:     input.LastName,
			BirthDate:    birthDate,
			Email:        input.Email,
			PasswordHash: string(hash),
			Address:      input.Address,
			IsAdmin:      false,
		}
		if err := db.Create(&user).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
			return
		}

		token, err := openSession(db, user.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open session"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"token": token, "user": user, "redirect": "/"})
	}
}

// POST /auth/login
func Login(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input LoginInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		// One generic message for unknown email and wrong password.
		var user models.User
		if err := db.Where("email = ?", input.Email).First(&user).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}

		token, err := openSession(db, user.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open session"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"token": token, "user": user, "redirect": "/"})
	}
}

// POST /auth/logout drops the caller's session. The middleware has
// already resolved it, so there is nothing left to validate here.
func Logout(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessVal, exists := c.Get("session")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "redirect": "/login"})
			return
		}
		sess := sessVal.(*models.Session)
		if err := session.Invalidate(db, sess.Token); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to close session"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Session closed", "redirect": "/"})
	}
}

func openSession(db *gorm.DB, userID uint) (string, error) {
	sess, err := session.Create(db, userID)
	if err != nil {
		return "", err
	}
	return IssueToken(sess.Token)
}
