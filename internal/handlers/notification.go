package handlers

import (
	"net/http"

	"jokehub/internal/db"
	"jokehub/internal/middleware"
	"jokehub/internal/models"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct{}

func NewNotificationHandler() *NotificationHandler {
	return &NotificationHandler{}
}

func (h *NotificationHandler) List(c *gin.Context) {
	user := currentUser(c)

	var notifications []models.Notification
	db.DB.Preload("Actor").
		Where("user_id = ?", user.ID).
		Order("created_at DESC").
		Limit(50).
		Find(&notifications)

	unread := int64(0)
	if count, ok := c.Get(middleware.UnreadCountKey); ok {
		unread = count.(int64)
	}

	c.JSON(http.StatusOK, gin.H{
		"notifications": notifications,
		"unread_count":  unread,
	})
}

func (h *NotificationHandler) Read(c *gin.Context) {
	user := currentUser(c)
	id := c.Param("id")

	var notification models.Notification
	if err := db.DB.Where("id = ? AND user_id = ?", id, user.ID).First(&notification).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "notification not found"})
		return
	}

	notification.IsRead = true
	db.DB.Save(&notification)

	c.Status(http.StatusNoContent)
}

func (h *NotificationHandler) ReadAll(c *gin.Context) {
	user := currentUser(c)

	db.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", user.ID, false).
		Update("is_read", true)

	c.Status(http.StatusNoContent)
}

func (h *NotificationHandler) Delete(c *gin.Context) {
	user := currentUser(c)
	id := c.Param("id")

	var notification models.Notification
	if err := db.DB.Where("id = ? AND user_id = ?", id, user.ID).First(&notification).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "notification not found"})
		return
	}

	db.DB.Delete(&notification)

	c.Status(http.StatusNoContent)
}
