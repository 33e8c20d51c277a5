package handlers

import (
	"net/http"

	"jokehub/internal/db"
	"jokehub/internal/models"
	"jokehub/internal/services"
	"jokehub/internal/utils"

	"github.com/gin-gonic/gin"
)

// RelationHandler covers the like/save presence toggles.
type RelationHandler struct{}

func NewRelationHandler() *RelationHandler {
	return &RelationHandler{}
}

// ToggleLike flips the current user's like on a joke.
func (h *RelationHandler) ToggleLike(c *gin.Context) {
	user := currentUser(c)
	jokeID := utils.StringToUint(c.Param("id"))

	liked, err := services.ToggleLike(jokeID, user.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	var count int64
	db.DB.Model(&models.Like{}).Where("joke_id = ?", jokeID).Count(&count)

	c.JSON(http.StatusOK, gin.H{"liked": liked, "like_count": count})
}

// ToggleSave flips the current user's saved-for-later mark on a joke.
func (h *RelationHandler) ToggleSave(c *gin.Context) {
	user := currentUser(c)
	jokeID := utils.StringToUint(c.Param("id"))

	saved, err := services.ToggleSave(jokeID, user.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	var count int64
	db.DB.Model(&models.SavedJoke{}).Where("joke_id = ?", jokeID).Count(&count)

	c.JSON(http.StatusOK, gin.H{"saved": saved, "save_count": count})
}

// ListSaved returns the current user's saved jokes, newest save first.
func (h *RelationHandler) ListSaved(c *gin.Context) {
	user := currentUser(c)

	var saved []models.SavedJoke
	err := db.DB.Preload("Joke").Preload("Joke.Category").Preload("Joke.Author").
		Where("user_id = ?", user.ID).
		Order("created_at DESC").
		Limit(100).
		Find(&saved).Error
	if err != nil {
		respondError(c, err)
		return
	}

	jokes := make([]models.Joke, 0, len(saved))
	for _, entry := range saved {
		jokes = append(jokes, entry.Joke)
	}

	c.JSON(http.StatusOK, gin.H{"jokes": jokes})
}
