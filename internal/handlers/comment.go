package handlers

import (
	"net/http"

	"jokehub/internal/services"
	"jokehub/internal/utils"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct{}

func NewCommentHandler() *CommentHandler {
	return &CommentHandler{}
}

// List returns a joke's comment thread: top-level newest first, each
// with its replies oldest first.
func (h *CommentHandler) List(c *gin.Context) {
	jokeID := utils.StringToUint(c.Param("id"))

	comments, err := services.ListComments(jokeID)
	if err != nil {
		respondError(c, err)
		return
	}

	for i := range comments {
		comments[i].ContentHTML = utils.RenderMarkdown(comments[i].Content)
		for j := range comments[i].Replies {
			comments[i].Replies[j].ContentHTML = utils.RenderMarkdown(comments[i].Replies[j].Content)
		}
	}

	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

type createCommentRequest struct {
	Content  string `json:"content" binding:"required"`
	ParentID *uint  `json:"parent_id"`
}

func (h *CommentHandler) Create(c *gin.Context) {
	user := currentUser(c)
	jokeID := utils.StringToUint(c.Param("id"))

	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := services.CreateComment(jokeID, user.ID, req.Content, req.ParentID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"comment": comment})
}

type updateCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

func (h *CommentHandler) Update(c *gin.Context) {
	user := currentUser(c)
	commentID := utils.StringToUint(c.Param("id"))

	var req updateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := services.UpdateComment(commentID, user.ID, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"comment": comment})
}

func (h *CommentHandler) Delete(c *gin.Context) {
	user := currentUser(c)
	commentID := utils.StringToUint(c.Param("id"))

	if err := services.DeleteComment(commentID, user); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
