package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/01moynul/travelsite/internal/cache"
	"github.com/01moynul/travelsite/internal/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type PartnerInput struct {
	Name      string `json:"name" binding:"required,max=191"`
	Logo      string `json:"logo" binding:"required"`
	Website   string `json:"website" binding:"omitempty,url"`
	IsActive  *bool  `json:"isActive"`
	SortOrder *int   `json:"sortOrder"`
}

func (in PartnerInput) apply(p *models.Partner, isNew bool) {
	p.Name = strings.TrimSpace(in.Name)
	p.Logo = in.Logo
	p.Website = in.Website
	if isNew {
		p.IsActive = boolOr(in.IsActive, true)
	} else {
		p.IsActive = boolOr(in.IsActive, p.IsActive)
	}
	p.SortOrder = intOr(in.SortOrder, p.SortOrder)
}

func defaultPartnerSection() models.PartnerSection {
	return models.PartnerSection{ID: 1, Title: "Our Partners", IsActive: true}
}

// partnerSection returns the stored section or the defaults.
func (h *Handlers) partnerSection(c *gin.Context) (models.PartnerSection, error) {
	var section models.PartnerSection
	err := h.DB.WithContext(c.Request.Context()).First(&section, 1).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return defaultPartnerSection(), nil
	}
	return section, err
}

// GetPartners handles GET /api/partners
func (h *Handlers) GetPartners(c *gin.Context) {
	query := h.DB.WithContext(c.Request.Context())
	if !(queryFlag(c, "all") && h.hasSession(c)) {
		query = query.Where("is_active = ?", true)
	}

	partners := []models.Partner{}
	if err := query.Order("sort_order ASC").Order("id ASC").Find(&partners).Error; err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, partners)
}

// GetPartner handles GET /api/partners/:id
func (h *Handlers) GetPartner(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var partner models.Partner
	if err := h.DB.WithContext(c.Request.Context()).First(&partner, id).Error; err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, partner)
}

// GetPartnerShowcase handles GET /api/partners/showcase
// It returns the section heading and active partners for the carousel.
func (h *Handlers) GetPartnerShowcase(c *gin.Context) {
	ctx := c.Request.Context()

	type showcase struct {
		Section  models.PartnerSection `json:"section"`
		Partners []models.Partner      `json:"partners"`
	}
	var out showcase
	if h.Cache.Load(ctx, cache.KeyPartnerShowcase, &out) {
		c.JSON(http.StatusOK, out)
		return
	}

	section, err := h.partnerSection(c)
	if err != nil {
		h.respondError(c, err)
		return
	}
	out.Section = section
	out.Partners = []models.Partner{}
	if section.IsActive {
		err := h.DB.WithContext(ctx).
			Where("is_active = ?", true).
			Order("sort_order ASC").Order("id ASC").
			Find(&out.Partners).Error
		if err != nil {
			h.respondError(c, err)
			return
		}
	}

	h.Cache.Store(ctx, cache.KeyPartnerShowcase, out)
	c.JSON(http.StatusOK, out)
}

// CreatePartner handles POST /api/partners
func (h *Handlers) CreatePartner(c *gin.Context) {
	var input PartnerInput
	if !h.bindJSON(c, &input) {
		return
	}

	var partner models.Partner
	input.apply(&partner, true)
	if err := h.DB.WithContext(c.Request.Context()).Create(&partner).Error; err != nil {
		h.respondError(c, err)
		return
	}
	h.Cache.Invalidate(c.Request.Context(), cache.KeyPartnerShowcase)
	c.JSON(http.StatusCreated, partner)
}

// UpdatePartner handles PUT /api/partners/:id
func (h *Handlers) UpdatePartner(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var input PartnerInput
	if !h.bindJSON(c, &input) {
		return
	}

	db := h.DB.WithContext(c.Request.Context())
	var partner models.Partner
	if err := db.First(&partner, id).Error; err != nil {
		h.respondError(c, err)
		return
	}
	input.apply(&partner, false)
	if err := db.Save(&partner).Error; err != nil {
		h.respondError(c, err)
		return
	}
	h.Cache.Invalidate(c.Request.Context(), cache.KeyPartnerShowcase)
	c.JSON(http.StatusOK, partner)
}

// DeletePartner handles DELETE /api/partners/:id
func (h *Handlers) DeletePartner(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	res := h.DB.WithContext(c.Request.Context()).Delete(&models.Partner{}, id)
	if res.Error != nil {
		h.respondError(c, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		h.respondError(c, gorm.ErrRecordNotFound)
		return
	}
	h.Cache.Invalidate(c.Request.Context(), cache.KeyPartnerShowcase)
	c.JSON(http.StatusOK, gin.H{"message": "Partner deleted"})
}

// --- Section singleton ---

type PartnerSectionInput struct {
	Title    string `json:"title" binding:"max=191"`
	Subtitle string `json:"subtitle"`
	IsActive *bool  `json:"isActive"`
}

// GetPartnerSection handles GET /api/partners/section
func (h *Handlers) GetPartnerSection(c *gin.Context) {
	section, err := h.partnerSection(c)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, section)
}

// UpdatePartnerSection handles PUT /api/partners/section
// The row is created on first save.
func (h *Handlers) UpdatePartnerSection(c *gin.Context) {
	var input PartnerSectionInput
	if !h.bindJSON(c, &input) {
		return
	}

	section, err := h.partnerSection(c)
	if err != nil {
		h.respondError(c, err)
		return
	}
	section.ID = 1
	section.Title = input.Title
	section.Subtitle = input.Subtitle
	section.IsActive = boolOr(input.IsActive, section.IsActive)

	if err := h.DB.WithContext(c.Request.Context()).Save(&section).Error; err != nil {
		h.respondError(c, err)
		return
	}
	h.Cache.Invalidate(c.Request.Context(), cache.KeyPartnerShowcase)
	c.JSON(http.StatusOK, section)
}
