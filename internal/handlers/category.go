package handlers

import (
	"net/http"
	"time"

	"jokehub/internal/db"
	"jokehub/internal/models"
	"jokehub/internal/utils"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct{}

func NewCategoryHandler() *CategoryHandler {
	return &CategoryHandler{}
}

const categoriesCacheKey = "categories:active"

// List returns the active categories in display order. This is on every
// page of the client, so it sits in the cache for a few minutes.
func (h *CategoryHandler) List(c *gin.Context) {
	if cached := utils.GetCache().Get(categoriesCacheKey); cached != nil {
		c.JSON(http.StatusOK, cached)
		return
	}

	var categories []models.Category
	err := db.DB.Where("is_active = ?", true).
		Order("display_order ASC, id ASC").
		Find(&categories).Error
	if err != nil {
		respondError(c, err)
		return
	}

	body := gin.H{"categories": categories}
	utils.GetCache().Set(categoriesCacheKey, body, 5*time.Minute)
	c.JSON(http.StatusOK, body)
}

// BySlug resolves one category from its URL slug.
func (h *CategoryHandler) BySlug(c *gin.Context) {
	slug := c.Param("slug")

	var category models.Category
	if err := db.DB.Where("slug = ?", slug).First(&category).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"category": category})
}

type categoryRequest struct {
	Name         string `json:"name" binding:"required"`
	Slug         string `json:"slug" binding:"required"`
	Description  string `json:"description"`
	Icon         string `json:"icon"`
	DisplayOrder int    `json:"display_order"`
	IsActive     *bool  `json:"is_active"`
}

// Create adds a category (admin only; routed behind AdminRequired).
func (h *CategoryHandler) Create(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category := models.Category{
		Name:         req.Name,
		Slug:         req.Slug,
		Description:  req.Description,
		Icon:         req.Icon,
		DisplayOrder: req.DisplayOrder,
		IsActive:     true,
	}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}

	if err := db.DB.Create(&category).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "slug already in use"})
		return
	}

	utils.GetCache().Delete(categoriesCacheKey)
	c.JSON(http.StatusCreated, gin.H{"category": category})
}

// Update edits a category (admin only).
func (h *CategoryHandler) Update(c *gin.Context) {
	id := utils.StringToUint(c.Param("id"))

	var category models.Category
	if err := db.DB.First(&category, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
		return
	}

	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{
		"name":          req.Name,
		"slug":          req.Slug,
		"description":   req.Description,
		"icon":          req.Icon,
		"display_order": req.DisplayOrder,
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if err := db.DB.Model(&category).Updates(updates).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "slug already in use"})
		return
	}

	utils.GetCache().Delete(categoriesCacheKey)
	c.JSON(http.StatusOK, gin.H{"category": category})
}
