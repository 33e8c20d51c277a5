package handlers

import (
	"net/http"

	"jokehub/internal/db"
	"jokehub/internal/models"
	"jokehub/internal/services"
	"jokehub/internal/utils"

	"github.com/gin-gonic/gin"
)

type UserHandler struct{}

func NewUserHandler() *UserHandler {
	return &UserHandler{}
}

// Profile is the public view of a user: the profile plus their approved
// jokes. The author themself (and admins) can pass a status filter via
// the shared listing endpoint instead.
func (h *UserHandler) Profile(c *gin.Context) {
	id := utils.StringToUint(c.Param("id"))

	var user models.User
	if err := db.DB.First(&user, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	jokes, total, err := services.ListJokes(services.JokeFilters{AuthorID: &user.ID}, 1, defaultPageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":        user,
		"jokes":       jokes,
		"total_jokes": total,
	})
}

type updateProfileRequest struct {
	FullName  *string `json:"full_name"`
	AvatarURL *string `json:"avatar_url"`
	Bio       *string `json:"bio"`
}

// UpdateProfile edits the current user's own profile fields. Username,
// email and the admin flag are not editable here.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	user := currentUser(c)

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if req.FullName != nil {
		updates["full_name"] = *req.FullName
	}
	if req.AvatarURL != nil {
		updates["avatar_url"] = *req.AvatarURL
	}
	if req.Bio != nil {
		updates["bio"] = *req.Bio
	}

	if len(updates) > 0 {
		if err := db.DB.Model(user).Updates(updates).Error; err != nil {
			respondError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}
