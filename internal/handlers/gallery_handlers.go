package handlers

import (
	"net/http"
	"strings"

	"github.com/01moynul/travelsite/internal/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type GalleryInput struct {
	Title       string `json:"title" binding:"required,max=191"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl" binding:"required"`
	Category    string `json:"category" binding:"max=120"`
	MediaType   string `json:"mediaType" binding:"omitempty,oneof=image video"`
	IsActive    *bool  `json:"isActive"`
	SortOrder   *int   `json:"sortOrder"`
}

func (in GalleryInput) apply(g *models.Gallery, isNew bool) {
	g.Title = strings.TrimSpace(in.Title)
	g.Description = in.Description
	g.ImageURL = in.ImageURL
	g.Category = in.Category
	g.MediaType = in.MediaType
	if g.MediaType == "" {
		g.MediaType = models.MediaTypeImage
	}
	if isNew {
		g.IsActive = boolOr(in.IsActive, true)
	} else {
		g.IsActive = boolOr(in.IsActive, g.IsActive)
	}
	g.SortOrder = intOr(in.SortOrder, g.SortOrder)
}

// GetGallery handles GET /api/gallery
// Filters: category, type (image|video).
func (h *Handlers) GetGallery(c *gin.Context) {
	query := h.DB.WithContext(c.Request.Context())
	if !(queryFlag(c, "all") && h.hasSession(c)) {
		query = query.Where("is_active = ?", true)
	}
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if t := c.Query("type"); t != "" {
		query = query.Where("media_type = ?", t)
	}

	items := []models.Gallery{}
	if err := query.Order("sort_order ASC").Order("created_at DESC").Find(&items).Error; err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// GetGalleryItem handles GET /api/gallery/:id
func (h *Handlers) GetGalleryItem(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var item models.Gallery
	if err := h.DB.WithContext(c.Request.Context()).First(&item, id).Error; err != nil {
		h.respondError(c, err)
		return
	}
	if !item.IsActive && !h.hasSession(c) {
		h.respondError(c, gorm.ErrRecordNotFound)
		return
	}
	c.JSON(http.StatusOK, item)
}

// CreateGalleryItem handles POST /api/gallery
func (h *Handlers) CreateGalleryItem(c *gin.Context) {
	var input GalleryInput
	if !h.bindJSON(c, &input) {
		return
	}

	var item models.Gallery
	input.apply(&item, true)
	if err := h.DB.WithContext(c.Request.Context()).Create(&item).Error; err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// UpdateGalleryItem handles PUT /api/gallery/:id
func (h *Handlers) UpdateGalleryItem(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var input GalleryInput
	if !h.bindJSON(c, &input) {
		return
	}

	db := h.DB.WithContext(c.Request.Context())
	var item models.Gallery
	if err := db.First(&item, id).Error; err != nil {
		h.respondError(c, err)
		return
	}
	input.apply(&item, false)
	if err := db.Save(&item).Error; err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// DeleteGalleryItem handles DELETE /api/gallery/:id
func (h *Handlers) DeleteGalleryItem(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	res := h.DB.WithContext(c.Request.Context()).Delete(&models.Gallery{}, id)
	if res.Error != nil {
		h.respondError(c, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		h.respondError(c, gorm.ErrRecordNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Gallery item deleted"})
}
