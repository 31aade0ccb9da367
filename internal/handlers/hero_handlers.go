package handlers

import (
	"net/http"
	"strings"

	"github.com/01moynul/travelsite/internal/cache"
	"github.com/01moynul/travelsite/internal/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// --- Inputs ---

type HeroButtonInput struct {
	Text      string `json:"text" binding:"required,max=120"`
	Link      string `json:"link"`
	Variant   string `json:"variant" binding:"omitempty,oneof=primary secondary outline"`
	SortOrder int    `json:"sortOrder"`
}

func (in HeroButtonInput) model(heroID uint) models.HeroButton {
	b := models.HeroButton{HeroSectionID: heroID}
	in.apply(&b)
	return b
}

func (in HeroButtonInput) apply(b *models.HeroButton) {
	b.Text = strings.TrimSpace(in.Text)
	b.Link = in.Link
	b.Variant = in.Variant
	if b.Variant == "" {
		b.Variant = "primary"
	}
	b.SortOrder = in.SortOrder
}

type HeroStatInput struct {
	Label     string `json:"label" binding:"required,max=120"`
	Value     string `json:"value" binding:"required,max=64"`
	Icon      string `json:"icon" binding:"max=64"`
	SortOrder int    `json:"sortOrder"`
}

func (in HeroStatInput) model(heroID uint) models.HeroStat {
	s := models.HeroStat{HeroSectionID: heroID}
	in.apply(&s)
	return s
}

func (in HeroStatInput) apply(s *models.HeroStat) {
	s.Label = strings.TrimSpace(in.Label)
	s.Value = in.Value
	s.Icon = in.Icon
	s.SortOrder = in.SortOrder
}

// HeroInput is the body of POST and PUT /api/hero. On update the nested
// buttons and stats replace the stored ones.
type HeroInput struct {
	Title           string            `json:"title" binding:"required,max=191"`
	Subtitle        string            `json:"subtitle"`
	Description     string            `json:"description"`
	BackgroundImage string            `json:"backgroundImage"`
	BackgroundVideo string            `json:"backgroundVideo"`
	IsActive        *bool             `json:"isActive"`
	Buttons         []HeroButtonInput `json:"buttons" binding:"dive"`
	Stats           []HeroStatInput   `json:"stats" binding:"dive"`
}

func (in HeroInput) apply(hero *models.HeroSection, isNew bool) {
	hero.Title = strings.TrimSpace(in.Title)
	hero.Subtitle = in.Subtitle
	hero.Description = in.Description
	hero.BackgroundImage = in.BackgroundImage
	hero.BackgroundVideo = in.BackgroundVideo
	if isNew {
		hero.IsActive = boolOr(in.IsActive, false)
	} else {
		hero.IsActive = boolOr(in.IsActive, hero.IsActive)
	}
}

// loadHero fetches a hero with its buttons and stats in display order.
func loadHero(db *gorm.DB, hero *models.HeroSection, conds ...interface{}) error {
	return db.
		Preload("Buttons", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order ASC").Order("id ASC") }).
		Preload("Stats", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order ASC").Order("id ASC") }).
		First(hero, conds...).Error
}

// deactivateOtherHeroes keeps at most one hero active.
func deactivateOtherHeroes(tx *gorm.DB, activeID uint) error {
	return tx.Model(&models.HeroSection{}).
		Where("id <> ? AND is_active = ?", activeID, true).
		Update("is_active", false).Error
}

// replaceHeroChildren swaps the nested buttons and stats of a hero.
func replaceHeroChildren(tx *gorm.DB, heroID uint, in HeroInput) error {
	if err := tx.Where("hero_section_id = ?", heroID).Delete(&models.HeroButton{}).Error; err != nil {
		return err
	}
	if err := tx.Where("hero_section_id = ?", heroID).Delete(&models.HeroStat{}).Error; err != nil {
		return err
	}
	return createHeroChildren(tx, heroID, in)
}

func createHeroChildren(tx *gorm.DB, heroID uint, in HeroInput) error {
	if len(in.Buttons) > 0 {
		buttons := make([]models.HeroButton, 0, len(in.Buttons))
		for _, b := range in.Buttons {
			buttons = append(buttons, b.model(heroID))
		}
		if err := tx.Create(&buttons).Error; err != nil {
			return err
		}
	}
	if len(in.Stats) > 0 {
		stats := make([]models.HeroStat, 0, len(in.Stats))
		for _, s := range in.Stats {
			stats = append(stats, s.model(heroID))
		}
		if err := tx.Create(&stats).Error; err != nil {
			return err
		}
	}
	return nil
}

// --- Public ---

// GetActiveHero handles GET /api/hero
func (h *Handlers) GetActiveHero(c *gin.Context) {
	ctx := c.Request.Context()

	var hero models.HeroSection
	if h.Cache.Load(ctx, cache.KeyHero, &hero) {
		c.JSON(http.StatusOK, hero)
		return
	}

	if err := loadHero(h.DB.WithContext(ctx).Where("is_active = ?", true).Order("updated_at DESC"), &hero); err != nil {
		h.respondError(c, err)
		return
	}
	h.Cache.Store(ctx, cache.KeyHero, hero)
	c.JSON(http.StatusOK, hero)
}

// --- Admin ---

// GetHeroes handles GET /api/hero/all
func (h *Handlers) GetHeroes(c *gin.Context) {
	heroes := []models.HeroSection{}
	err := h.DB.WithContext(c.Request.Context()).
		Preload("Buttons", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order ASC").Order("id ASC") }).
		Preload("Stats", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order ASC").Order("id ASC") }).
		Order("created_at DESC").
		Find(&heroes).Error
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, heroes)
}

// GetHero handles GET /api/hero/:id
func (h *Handlers) GetHero(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var hero models.HeroSection
	if err := loadHero(h.DB.WithContext(c.Request.Context()), &hero, id); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, hero)
}

// CreateHero handles POST /api/hero
func (h *Handlers) CreateHero(c *gin.Context) {
	var input HeroInput
	if !h.bindJSON(c, &input) {
		return
	}

	var hero models.HeroSection
	input.apply(&hero, true)

	db := h.DB.WithContext(c.Request.Context())
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(&hero).Error; err != nil {
			return err
		}
		if err := createHeroChildren(tx, hero.ID, input); err != nil {
			return err
		}
		if hero.IsActive {
			return deactivateOtherHeroes(tx, hero.ID)
		}
		return nil
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.Cache.Invalidate(c.Request.Context(), cache.KeyHero)
	if err := loadHero(db, &hero, hero.ID); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, hero)
}

// UpdateHero handles PUT /api/hero/:id
func (h *Handlers) UpdateHero(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var input HeroInput
	if !h.bindJSON(c, &input) {
		return
	}

	db := h.DB.WithContext(c.Request.Context())
	var hero models.HeroSection
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&hero, id).Error; err != nil {
			return err
		}
		input.apply(&hero, false)
		if err := tx.Omit(clause.Associations).Save(&hero).Error; err != nil {
			return err
		}
		if err := replaceHeroChildren(tx, hero.ID, input); err != nil {
			return err
		}
		if hero.IsActive {
			return deactivateOtherHeroes(tx, hero.ID)
		}
		return nil
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.Cache.Invalidate(c.Request.Context(), cache.KeyHero)
	hero = models.HeroSection{}
	if err := loadHero(db, &hero, id); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, hero)
}

// DeleteHero handles DELETE /api/hero/:id
func (h *Handlers) DeleteHero(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	// SQLite does not enforce the cascade unless foreign keys are on, so
	// children are removed explicitly.
	err := h.DB.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.HeroSection{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		if err := tx.Where("hero_section_id = ?", id).Delete(&models.HeroButton{}).Error; err != nil {
			return err
		}
		return tx.Where("hero_section_id = ?", id).Delete(&models.HeroStat{}).Error
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.Cache.Invalidate(c.Request.Context(), cache.KeyHero)
	c.JSON(http.StatusOK, gin.H{"message": "Hero section deleted"})
}

// --- Nested buttons & stats ---

// heroExists answers 404 when the parent hero is missing.
func (h *Handlers) heroExists(c *gin.Context, id uint) bool {
	var count int64
	if err := h.DB.WithContext(c.Request.Context()).Model(&models.HeroSection{}).Where("id = ?", id).Count(&count).Error; err != nil {
		h.respondError(c, err)
		return false
	}
	if count == 0 {
		h.respondError(c, gorm.ErrRecordNotFound)
		return false
	}
	return true
}

// AddHeroButton handles POST /api/hero/:id/buttons
func (h *Handlers) AddHeroButton(c *gin.Context) {
	heroID, ok := parseID(c, "id")
	if !ok {
		return
	}
	var input HeroButtonInput
	if !h.bindJSON(c, &input) {
		return
	}
	if !h.heroExists(c, heroID) {
		return
	}

	button := input.model(heroID)
	if err := h.DB.WithContext(c.Request.Context()).Create(&button).Error; err != nil {
		h.respondError(c, err)
		return
	}
	h.Cache.Invalidate(c.Request.Context(), cache.KeyHero)
	c.JSON(http.StatusCreated, button)
}

// UpdateHeroButton handles PUT /api/hero/buttons/:buttonId
func (h *Handlers) UpdateHeroButton(c *gin.Context) {
	id, ok := parseID(c, "buttonId")
	if !ok {
		return
	}
	var input HeroButtonInput
	if !h.bindJSON(c, &input) {
		return
	}

	db := h.DB.WithContext(c.Request.Context())
	var button models.HeroButton
	if err := db.First(&button, id).Error; err != nil {
		h.respondError(c, err)
		return
	}
	input.apply(&button)
	if err := db.Save(&button).Error; err != nil {
		h.respondError(c, err)
		return
	}
	h.Cache.Invalidate(c.Request.Context(), cache.KeyHero)
	c.JSON(http.StatusOK, button)
}

// DeleteHeroButton handles DELETE /api/hero/buttons/:buttonId
func (h *Handlers) DeleteHeroButton(c *gin.Context) {
	id, ok := parseID(c, "buttonId")
	if !ok {
		return
	}
	h.deleteHeroChild(c, &models.HeroButton{}, id, "Button deleted")
}

// AddHeroStat handles POST /api/hero/:id/stats
func (h *Handlers) AddHeroStat(c *gin.Context) {
	heroID, ok := parseID(c, "id")
	if !ok {
		return
	}
	var input HeroStatInput
	if !h.bindJSON(c, &input) {
		return
	}
	if !h.heroExists(c, heroID) {
		return
	}

	stat := input.model(heroID)
	if err := h.DB.WithContext(c.Request.Context()).Create(&stat).Error; err != nil {
		h.respondError(c, err)
		return
	}
	h.Cache.Invalidate(c.Request.Context(), cache.KeyHero)
	c.JSON(http.StatusCreated, stat)
}

// UpdateHeroStat handles PUT /api/hero/stats/:statId
func (h *Handlers) UpdateHeroStat(c *gin.Context) {
	id, ok := parseID(c, "statId")
	if !ok {
		return
	}
	var input HeroStatInput
	if !h.bindJSON(c, &input) {
		return
	}

	db := h.DB.WithContext(c.Request.Context())
	var stat models.HeroStat
	if err := db.First(&stat, id).Error; err != nil {
		h.respondError(c, err)
		return
	}
	input.apply(&stat)
	if err := db.Save(&stat).Error; err != nil {
		h.respondError(c, err)
		return
	}
	h.Cache.Invalidate(c.Request.Context(), cache.KeyHero)
	c.JSON(http.StatusOK, stat)
}

// DeleteHeroStat handles DELETE /api/hero/stats/:statId
func (h *Handlers) DeleteHeroStat(c *gin.Context) {
	id, ok := parseID(c, "statId")
	if !ok {
		return
	}
	h.deleteHeroChild(c, &models.HeroStat{}, id, "Stat deleted")
}

func (h *Handlers) deleteHeroChild(c *gin.Context, model interface{}, id uint, msg string) {
	res := h.DB.WithContext(c.Request.Context()).Delete(model, id)
	if res.Error != nil {
		h.respondError(c, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		h.respondError(c, gorm.ErrRecordNotFound)
		return
	}
	h.Cache.Invalidate(c.Request.Context(), cache.KeyHero)
	c.JSON(http.StatusOK, gin.H{"message": msg})
}
