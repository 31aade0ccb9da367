package handlers

import (
	"net/http"
	"strings"

	"github.com/01moynul/travelsite/internal/cache"
	"github.com/01moynul/travelsite/internal/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type SocialMediaInput struct {
	Platform  string `json:"platform" binding:"required,max=64"`
	URL       string `json:"url" binding:"required,url"`
	Icon      string `json:"icon" binding:"max=64"`
	IsActive  *bool  `json:"isActive"`
	SortOrder *int   `json:"sortOrder"`
}

func (in SocialMediaInput) apply(s *models.SocialMedia, isNew bool) {
	s.Platform = strings.TrimSpace(in.Platform)
	s.URL = in.URL
	s.Icon = in.Icon
	if isNew {
		s.IsActive = boolOr(in.IsActive, true)
	} else {
		s.IsActive = boolOr(in.IsActive, s.IsActive)
	}
	s.SortOrder = intOr(in.SortOrder, s.SortOrder)
}

// GetSocialMedia handles GET /api/social-media
// The public list is cached; all=true with a session bypasses the cache.
func (h *Handlers) GetSocialMedia(c *gin.Context) {
	ctx := c.Request.Context()
	showAll := queryFlag(c, "all") && h.hasSession(c)

	links := []models.SocialMedia{}
	if !showAll && h.Cache.Load(ctx, cache.KeySocialMedia, &links) {
		c.JSON(http.StatusOK, links)
		return
	}

	query := h.DB.WithContext(ctx)
	if !showAll {
		query = query.Where("is_active = ?", true)
	}
	if err := query.Order("sort_order ASC").Order("id ASC").Find(&links).Error; err != nil {
		h.respondError(c, err)
		return
	}
	if !showAll {
		h.Cache.Store(ctx, cache.KeySocialMedia, links)
	}
	c.JSON(http.StatusOK, links)
}

// GetSocialMediaItem handles GET /api/social-media/:id
func (h *Handlers) GetSocialMediaItem(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var link models.SocialMedia
	if err := h.DB.WithContext(c.Request.Context()).First(&link, id).Error; err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, link)
}

// CreateSocialMedia handles POST /api/social-media
func (h *Handlers) CreateSocialMedia(c *gin.Context) {
	var input SocialMediaInput
	if !h.bindJSON(c, &input) {
		return
	}

	var link models.SocialMedia
	input.apply(&link, true)
	if err := h.DB.WithContext(c.Request.Context()).Create(&link).Error; err != nil {
		h.respondError(c, err)
		return
	}
	h.Cache.Invalidate(c.Request.Context(), cache.KeySocialMedia)
	c.JSON(http.StatusCreated, link)
}

// UpdateSocialMedia handles PUT /api/social-media/:id
func (h *Handlers) UpdateSocialMedia(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var input SocialMediaInput
	if !h.bindJSON(c, &input) {
		return
	}

	db := h.DB.WithContext(c.Request.Context())
	var link models.SocialMedia
	if err := db.First(&link, id).Error; err != nil {
		h.respondError(c, err)
		return
	}
	input.apply(&link, false)
	if err := db.Save(&link).Error; err != nil {
		h.respondError(c, err)
		return
	}
	h.Cache.Invalidate(c.Request.Context(), cache.KeySocialMedia)
	c.JSON(http.StatusOK, link)
}

// DeleteSocialMedia handles DELETE /api/social-media/:id
func (h *Handlers) DeleteSocialMedia(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	res := h.DB.WithContext(c.Request.Context()).Delete(&models.SocialMedia{}, id)
	if res.Error != nil {
		h.respondError(c, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		h.respondError(c, gorm.ErrRecordNotFound)
		return
	}
	h.Cache.Invalidate(c.Request.Context(), cache.KeySocialMedia)
	c.JSON(http.StatusOK, gin.H{"message": "Social media link deleted"})
}
