package handlers

import (
	"net/http"
	"time"

	"jokehub/internal/db"
	"jokehub/internal/models"
	"jokehub/internal/services"
	"jokehub/internal/utils"

	"github.com/gin-gonic/gin"
)

// AdminHandler backs the moderation dashboard. All routes are behind
// AdminRequired; the services re-check the capability anyway.
type AdminHandler struct{}

func NewAdminHandler() *AdminHandler {
	return &AdminHandler{}
}

func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := services.GetStats()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

// Approve publishes a pending (or previously rejected) joke.
func (h *AdminHandler) Approve(c *gin.Context) {
	reviewer := currentUser(c)
	jokeID := utils.StringToUint(c.Param("id"))

	joke, err := services.ApproveJoke(jokeID, reviewer)
	if err != nil {
		respondError(c, err)
		return
	}

	invalidateListCache(joke.CategoryID)
	c.JSON(http.StatusOK, gin.H{"joke": joke})
}

type rejectRequest struct {
	Reason string `json:"reason"`
}

// Reject hides a joke from the public listing and records why.
func (h *AdminHandler) Reject(c *gin.Context) {
	reviewer := currentUser(c)
	jokeID := utils.StringToUint(c.Param("id"))

	var req rejectRequest
	// Body is optional; an empty reason falls back to the default.
	c.ShouldBindJSON(&req)

	joke, err := services.RejectJoke(jokeID, reviewer, req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}

	invalidateListCache(joke.CategoryID)
	c.JSON(http.StatusOK, gin.H{"joke": joke})
}

type editJokeRequest struct {
	Title      *string `json:"title"`
	Content    *string `json:"content"`
	CategoryID *uint   `json:"category_id"`
}

// Edit corrects a joke's content without resetting its moderation state.
func (h *AdminHandler) Edit(c *gin.Context) {
	reviewer := currentUser(c)
	jokeID := utils.StringToUint(c.Param("id"))

	var req editJokeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// An edit may move the joke between categories; both lists change.
	var before models.Joke
	previousCategoryID := (*uint)(nil)
	if err := db.DB.First(&before, jokeID).Error; err == nil {
		previousCategoryID = before.CategoryID
	}

	joke, err := services.EditJoke(jokeID, reviewer, services.JokeUpdate{
		Title:      req.Title,
		Content:    req.Content,
		CategoryID: req.CategoryID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	invalidateListCache(previousCategoryID)
	invalidateListCache(joke.CategoryID)
	c.JSON(http.StatusOK, gin.H{"joke": joke})
}

func (h *AdminHandler) Delete(c *gin.Context) {
	reviewer := currentUser(c)
	jokeID := utils.StringToUint(c.Param("id"))

	var joke models.Joke
	categoryID := (*uint)(nil)
	if err := db.DB.First(&joke, jokeID).Error; err == nil {
		categoryID = joke.CategoryID
	}

	if err := services.DeleteJoke(jokeID, reviewer); err != nil {
		respondError(c, err)
		return
	}

	invalidateListCache(categoryID)
	c.Status(http.StatusNoContent)
}

// ListReports shows open reports for review, oldest first so nothing
// sits in the queue forever.
func (h *AdminHandler) ListReports(c *gin.Context) {
	var reports []models.Report
	err := db.DB.Preload("User").Preload("Joke").
		Where("status = ?", models.ReportStatusPending).
		Order("created_at ASC").
		Find(&reports).Error
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reports": reports})
}

// ResolveReport closes a report without further action; the reviewer
// deletes or rejects the joke separately if warranted.
func (h *AdminHandler) ResolveReport(c *gin.Context) {
	reviewer := currentUser(c)
	id := utils.StringToUint(c.Param("id"))

	var report models.Report
	if err := db.DB.First(&report, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "report not found"})
		return
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":      models.ReportStatusResolved,
		"reviewed_by": reviewer.ID,
		"reviewed_at": now,
	}
	if err := db.DB.Model(&report).Updates(updates).Error; err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"report": report})
}
