package middleware

import (
	"net/http"

	"jokehub/internal/db"
	"jokehub/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const CheckUserKey = "user"
const UnreadCountKey = "unread_count"

// LoadUser retrieves the session user and sets it on the context. Runs
// on every request; missing or stale sessions just leave the key unset.
func LoadUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID := session.Get("user_id")

		if userID != nil {
			var user models.User
			result := db.DB.First(&user, userID)
			if result.Error == nil {
				c.Set(CheckUserKey, &user)

				var count int64
				db.DB.Model(&models.Notification{}).Where("user_id = ? AND is_read = ?", user.ID, false).Count(&count)
				c.Set(UnreadCountKey, count)
			}
		}
		c.Next()
	}
}

// AuthRequired rejects requests without a signed-in user.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get(CheckUserKey); !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		c.Next()
	}
}

// AdminRequired rejects requests whose user lacks the admin capability.
// Runs after AuthRequired.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		u, exists := c.Get(CheckUserKey)
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		if !u.(*models.User).IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin privileges required"})
			return
		}
		c.Next()
	}
}
