package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/KeylaPalacios/divine-beauty/auth"
	"github.com/KeylaPalacios/divine-beauty/models"
	"github.com/KeylaPalacios/divine-beauty/session"
)

// RequireAuth resolves the request's session and user before the wrapped
// handler runs. A missing or invalid token, a missing session row, or a
// session whose user no longer exists all short-circuit to the login
// redirect; the stale session row is cleaned up on the way out. Guards
// never mutate domain data beyond that cleanup.
func RequireAuth(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := c.GetHeader("Authorization")
		tokenString = strings.TrimPrefix(tokenString, "Bearer ")
		if tokenString == "" {
			abortToLogin(c, "You must log in to continue")
			return
		}

		sessionToken, err := auth.ParseToken(tokenString)
		if err != nil {
			abortToLogin(c, "Invalid or expired token")
			return
		}

		sess, err := session.Load(db, sessionToken)
		if err != nil {
			if errors.Is(err, session.ErrNotFound) {
				abortToLogin(c, "You must log in to continue")
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load session"})
			c.Abort()
			return
		}

		var user models.User
		if err := db.First(&user, "id = ?", sess.UserID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// User deleted out from under a live session.
				_ = session.Invalidate(db, sess.Token)
				abortToLogin(c, "You must log in to continue")
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load user"})
			c.Abort()
			return
		}

		c.Set("session", sess)
		c.Set("user", user)
		// No c.Next() here: RequireAdmin re-invokes this handler, and
		// advancing the chain from inside that nested call would run the
		// wrapped handler before the admin check.
	}
}

// RequireAdmin applies RequireAuth and then checks the admin flag.
// Non-admins are sent back to the home view with an authorization error.
func RequireAdmin(db *gorm.DB) gin.HandlerFunc {
	authn := RequireAuth(db)
	return func(c *gin.Context) {
		authn(c)
		if c.IsAborted() {
			return
		}
		if !CurrentUser(c).IsAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to enter the panel", "redirect": "/"})
			c.Abort()
		}
	}
}

// CurrentUser returns the user resolved by RequireAuth.
func CurrentUser(c *gin.Context) models.User {
	user, _ := c.MustGet("user").(models.User)
	return user
}

// CurrentSession returns the session resolved by RequireAuth.
func CurrentSession(c *gin.Context) *models.Session {
	sess, _ := c.MustGet("session").(*models.Session)
	return sess
}

func abortToLogin(c *gin.Context, msg string) {
	c.JSON(http.StatusUnauthorized, gin.H{"error": msg, "redirect": "/login"})
	c.Abort()
}
