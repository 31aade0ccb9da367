package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/01moynul/travelsite/internal/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ProductTypeInput struct {
	Name        string `json:"name" binding:"required,max=120"`
	Slug        string `json:"slug" binding:"max=191"`
	Description string `json:"description"`
	IsActive    *bool  `json:"isActive"`
	SortOrder   *int   `json:"sortOrder"`
}

func (in ProductTypeInput) apply(t *models.ProductType, isNew bool) {
	t.Name = strings.TrimSpace(in.Name)
	t.Slug = makeSlug(in.Slug, in.Name)
	t.Description = in.Description
	if isNew {
		t.IsActive = boolOr(in.IsActive, true)
	} else {
		t.IsActive = boolOr(in.IsActive, t.IsActive)
	}
	t.SortOrder = intOr(in.SortOrder, t.SortOrder)
}

// GetProductTypes handles GET /api/product-types
func (h *Handlers) GetProductTypes(c *gin.Context) {
	query := h.DB.WithContext(c.Request.Context())
	if !(queryFlag(c, "all") && h.hasSession(c)) {
		query = query.Where("is_active = ?", true)
	}

	types := []models.ProductType{}
	if err := query.Order("sort_order ASC").Order("name ASC").Find(&types).Error; err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, types)
}

// GetProductType handles GET /api/product-types/:id
func (h *Handlers) GetProductType(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var t models.ProductType
	if err := h.DB.WithContext(c.Request.Context()).First(&t, id).Error; err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// CreateProductType handles POST /api/product-types
func (h *Handlers) CreateProductType(c *gin.Context) {
	var input ProductTypeInput
	if !h.bindJSON(c, &input) {
		return
	}

	var t models.ProductType
	input.apply(&t, true)
	if err := h.DB.WithContext(c.Request.Context()).Create(&t).Error; err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

// UpdateProductType handles PUT /api/product-types/:id
// A slug change is carried over to the products that use the type.
func (h *Handlers) UpdateProductType(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var input ProductTypeInput
	if !h.bindJSON(c, &input) {
		return
	}

	var t models.ProductType
	err := h.DB.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&t, id).Error; err != nil {
			return err
		}
		oldSlug := t.Slug
		input.apply(&t, false)
		if err := tx.Save(&t).Error; err != nil {
			return err
		}
		if t.Slug != oldSlug {
			return tx.Model(&models.Product{}).Where("type = ?", oldSlug).Update("type", t.Slug).Error
		}
		return nil
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// DeleteProductType handles DELETE /api/product-types/:id
func (h *Handlers) DeleteProductType(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	db := h.DB.WithContext(c.Request.Context())
	var t models.ProductType
	if err := db.First(&t, id).Error; err != nil {
		h.respondError(c, err)
		return
	}

	// Refuse while products still point at the slug
	var used int64
	if err := db.Model(&models.Product{}).Where("type = ?", t.Slug).Count(&used).Error; err != nil {
		h.respondError(c, err)
		return
	}
	if used > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": fmt.Sprintf("Product type is used by %d product(s)", used)})
		return
	}

	if err := db.Delete(&t).Error; err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product type deleted"})
}
