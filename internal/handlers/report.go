package handlers

import (
	"net/http"

	"jokehub/internal/db"
	"jokehub/internal/models"
	"jokehub/internal/utils"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct{}

func NewReportHandler() *ReportHandler {
	return &ReportHandler{}
}

type createReportRequest struct {
	Reason      string `json:"reason" binding:"required,max=200"`
	Description string `json:"description"`
}

// Create files a report against a joke for admin review.
func (h *ReportHandler) Create(c *gin.Context) {
	user := currentUser(c)
	jokeID := utils.StringToUint(c.Param("id"))

	var joke models.Joke
	if err := db.DB.First(&joke, jokeID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "joke not found"})
		return
	}

	var req createReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report := models.Report{
		JokeID:      joke.ID,
		UserID:      user.ID,
		Reason:      req.Reason,
		Description: req.Description,
		Status:      models.ReportStatusPending,
	}
	if err := db.DB.Create(&report).Error; err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"report": report})
}
