package handlers

import (
	"fmt"
	"log"
	"math"
	"net/http"
	"strconv"
	"time"

	"jokehub/internal/models"
	"jokehub/internal/services"
	"jokehub/internal/utils"

	"github.com/gin-gonic/gin"
)

type JokeHandler struct{}

func NewJokeHandler() *JokeHandler {
	return &JokeHandler{}
}

const defaultPageSize = 20

// renderContent fills the sanitized HTML body for detail responses.
func renderContent(joke *models.Joke) {
	joke.ContentHTML = utils.RenderMarkdown(joke.Content)
}

// parseListQuery builds the service filter from query parameters. The
// status filter is only honored for admins, or for authors asking for
// their own submissions; everyone else gets the approved-only default.
func parseListQuery(c *gin.Context) (services.JokeFilters, int, int) {
	var f services.JokeFilters

	if v := c.Query("category_id"); v != "" {
		id := utils.StringToUint(v)
		f.CategoryID = &id
	}
	if v := c.Query("author_id"); v != "" {
		id := utils.StringToUint(v)
		f.AuthorID = &id
	}
	if v := c.Query("featured"); v != "" {
		featured := v == "true" || v == "1"
		f.IsFeatured = &featured
	}
	f.Search = c.Query("q")

	if status := c.Query("status"); status != "" {
		user := currentUser(c)
		isOwnList := user != nil && f.AuthorID != nil && *f.AuthorID == user.ID
		if user != nil && (user.IsAdmin || isOwnList) {
			f.Status = status
		}
	}

	page := 1
	if p := c.Query("page"); p != "" {
		if pageNum, err := strconv.Atoi(p); err == nil && pageNum > 0 {
			page = pageNum
		}
	}
	limit := defaultPageSize
	if l := c.Query("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil {
			limit = n
		}
	}

	return f, page, limit
}

// cacheableList reports whether a listing request is the shared public
// view (no search, no status override, no author/featured filter) and
// may therefore be served from the process cache.
func cacheableList(f services.JokeFilters, limit int) bool {
	return f.Status == "" && f.AuthorID == nil && f.IsFeatured == nil &&
		f.Search == "" && limit == defaultPageSize
}

func listCacheKey(f services.JokeFilters, page int) string {
	categoryID := uint(0)
	if f.CategoryID != nil {
		categoryID = *f.CategoryID
	}
	return fmt.Sprintf("jokes:list:cat:%d:page:%d", categoryID, page)
}

// List is the public joke listing: filtered, paginated, newest first.
func (h *JokeHandler) List(c *gin.Context) {
	f, page, limit := parseListQuery(c)

	cacheable := cacheableList(f, limit)
	cacheKey := listCacheKey(f, page)
	if cacheable {
		if cached := utils.GetCache().Get(cacheKey); cached != nil {
			c.JSON(http.StatusOK, cached)
			return
		}
	}

	jokes, total, err := services.ListJokes(f, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	body := gin.H{
		"jokes":       jokes,
		"total":       total,
		"page":        page,
		"limit":       limit,
		"total_pages": int(math.Ceil(float64(total) / float64(limit))),
	}

	if cacheable {
		utils.GetCache().Set(cacheKey, body, 1*time.Minute)
	}
	c.JSON(http.StatusOK, body)
}

// Detail returns a single joke, counts the visit, and records reading
// history for signed-in viewers.
func (h *JokeHandler) Detail(c *gin.Context) {
	id := utils.StringToUint(c.Param("id"))
	viewer := currentUser(c)

	joke, err := services.GetJoke(id, viewer)
	if err != nil {
		respondError(c, err)
		return
	}

	if viewer != nil {
		// Reading history is a convenience; don't fail the fetch over it.
		if err := services.TrackReading(joke.ID, viewer.ID); err != nil {
			log.Printf("Failed to track reading for joke %d: %v", joke.ID, err)
		}
	}

	renderContent(joke)
	c.JSON(http.StatusOK, gin.H{"joke": joke})
}

type submitJokeRequest struct {
	Title      string `json:"title" binding:"required"`
	Content    string `json:"content" binding:"required"`
	CategoryID uint   `json:"category_id" binding:"required"`
}

// Submit creates a pending joke for review.
func (h *JokeHandler) Submit(c *gin.Context) {
	user := currentUser(c)

	var req submitJokeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	joke, err := services.SubmitJoke(req.Title, req.Content, req.CategoryID, user.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"joke": joke})
}

// invalidateListCache drops the shared first pages for a category, used
// after any mutation that changes what the public list shows.
func invalidateListCache(categoryID *uint) {
	cache := utils.GetCache()
	ids := []uint{0}
	if categoryID != nil {
		ids = append(ids, *categoryID)
	}
	for _, id := range ids {
		for page := 1; page <= 3; page++ {
			cache.Delete(fmt.Sprintf("jokes:list:cat:%d:page:%d", id, page))
		}
	}
}
