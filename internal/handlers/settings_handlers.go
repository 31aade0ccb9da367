package handlers

import (
	"errors"
	"net/http"

	"github.com/01moynul/travelsite/internal/cache"
	"github.com/01moynul/travelsite/internal/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SettingsInput replaces every editable settings field.
type SettingsInput struct {
	SiteName        string `json:"siteName" binding:"required,max=191"`
	SiteDescription string `json:"siteDescription"`
	Logo            string `json:"logo"`
	Favicon         string `json:"favicon"`
	ContactEmail    string `json:"contactEmail" binding:"omitempty,email"`
	ContactPhone    string `json:"contactPhone"`
	WhatsappNumber  string `json:"whatsappNumber"`
	Address         string `json:"address"`
	MapEmbedURL     string `json:"mapEmbedUrl"`
	FooterText      string `json:"footerText"`
	MetaKeywords    string `json:"metaKeywords"`
	MaintenanceMode *bool  `json:"maintenanceMode"`
}

func (h *Handlers) loadSettings(c *gin.Context) (models.Settings, error) {
	var settings models.Settings
	err := h.DB.WithContext(c.Request.Context()).First(&settings, 1).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.DefaultSettings(), nil
	}
	return settings, err
}

// GetSettings handles GET /api/settings
func (h *Handlers) GetSettings(c *gin.Context) {
	ctx := c.Request.Context()

	var settings models.Settings
	if h.Cache.Load(ctx, cache.KeySettings, &settings) {
		c.JSON(http.StatusOK, settings)
		return
	}

	settings, err := h.loadSettings(c)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.Cache.Store(ctx, cache.KeySettings, settings)
	c.JSON(http.StatusOK, settings)
}

// UpdateSettings handles PUT /api/settings
// The row is created on first save.
func (h *Handlers) UpdateSettings(c *gin.Context) {
	var input SettingsInput
	if !h.bindJSON(c, &input) {
		return
	}

	settings, err := h.loadSettings(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	settings.ID = 1
	settings.SiteName = input.SiteName
	settings.SiteDescription = input.SiteDescription
	settings.Logo = input.Logo
	settings.Favicon = input.Favicon
	settings.ContactEmail = input.ContactEmail
	settings.ContactPhone = input.ContactPhone
	settings.WhatsappNumber = input.WhatsappNumber
	settings.Address = input.Address
	settings.MapEmbedURL = input.MapEmbedURL
	settings.FooterText = input.FooterText
	settings.MetaKeywords = input.MetaKeywords
	settings.MaintenanceMode = boolOr(input.MaintenanceMode, settings.MaintenanceMode)

	if err := h.DB.WithContext(c.Request.Context()).Save(&settings).Error; err != nil {
		h.respondError(c, err)
		return
	}
	h.Cache.Invalidate(c.Request.Context(), cache.KeySettings)
	c.JSON(http.StatusOK, settings)
}
