package handlers

import (
	"net/http"

	"github.com/01moynul/travelsite/internal/models"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// GetMedia handles GET /api/media
// Optional filter: type (image|video). Newest first.
func (h *Handlers) GetMedia(c *gin.Context) {
	query := h.DB.WithContext(c.Request.Context())
	if t := c.Query("type"); t != "" {
		query = query.Where("media_type = ?", t)
	}

	media := []models.Media{}
	if err := query.Order("created_at DESC").Order("id DESC").Find(&media).Error; err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, media)
}

// UploadMedia handles POST /api/media/upload
// It stores an image or video and records it in the media library.
func (h *Handlers) UploadMedia(c *gin.Context) {
	// 1. Get the file
	limit := h.Uploads.MaxVideoBytes
	if h.Uploads.MaxImageBytes > limit {
		limit = h.Uploads.MaxImageBytes
	}
	file, ok := formFile(c, limit)
	if !ok {
		return
	}

	// 2. Validate and write it
	saved, err := h.Uploads.Save(file, true)
	if err != nil {
		h.respondError(c, err)
		return
	}

	// 3. Record it; drop the file again if the row cannot be written
	media := models.Media{
		Filename:     saved.Filename,
		OriginalName: saved.OriginalName,
		MimeType:     saved.MimeType,
		Size:         saved.Size,
		URL:          saved.URL,
		Alt:          c.PostForm("alt"),
		MediaType:    saved.MediaType,
	}
	if err := h.DB.WithContext(c.Request.Context()).Create(&media).Error; err != nil {
		if rmErr := h.Uploads.Remove(saved.Filename); rmErr != nil {
			h.Log.Warn("failed to remove orphaned upload", zap.String("filename", saved.Filename), zap.Error(rmErr))
		}
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, media)
}

type MediaInput struct {
	Alt string `json:"alt"`
}

// UpdateMedia handles PUT /api/media/:id
// Only the alt text is editable.
func (h *Handlers) UpdateMedia(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var input MediaInput
	if !h.bindJSON(c, &input) {
		return
	}

	db := h.DB.WithContext(c.Request.Context())
	var media models.Media
	if err := db.First(&media, id).Error; err != nil {
		h.respondError(c, err)
		return
	}
	if err := db.Model(&media).Update("alt", input.Alt).Error; err != nil {
		h.respondError(c, err)
		return
	}
	media.Alt = input.Alt
	c.JSON(http.StatusOK, media)
}

// DeleteMedia handles DELETE /api/media/:id
// The row goes first; a file that cannot be removed is only logged.
func (h *Handlers) DeleteMedia(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	db := h.DB.WithContext(c.Request.Context())
	var media models.Media
	if err := db.First(&media, id).Error; err != nil {
		h.respondError(c, err)
		return
	}
	res := db.Delete(&media)
	if res.Error != nil {
		h.respondError(c, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		h.respondError(c, gorm.ErrRecordNotFound)
		return
	}

	if err := h.Uploads.Remove(media.Filename); err != nil {
		h.Log.Warn("failed to remove media file", zap.String("filename", media.Filename), zap.Error(err))
	}
	c.JSON(http.StatusOK, gin.H{"message": "Media deleted"})
}
