package handlers

import (
	"errors"
	"net/http"

	"jokehub/internal/middleware"
	"jokehub/internal/models"
	"jokehub/internal/services"

	"github.com/gin-gonic/gin"
)

// currentUser returns the session user, or nil when anonymous.
func currentUser(c *gin.Context) *models.User {
	if user, exists := c.Get(middleware.CheckUserKey); exists {
		return user.(*models.User)
	}
	return nil
}

// respondError maps service errors onto HTTP statuses. Database errors
// are not translated; the caller just sees a generic 500 and retries.
func respondError(c *gin.Context, err error) {
	var ve *services.ValidationError
	if errors.As(err, &ve) {
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Message, "field": ve.Field})
		return
	}
	var nfe *services.NotFoundError
	if errors.As(err, &nfe) {
		c.JSON(http.StatusNotFound, gin.H{"error": nfe.Error()})
		return
	}
	if errors.Is(err, services.ErrNotAuthorized) {
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong, please try again"})
}
