package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/01moynul/travelsite/internal/apperror"
	"github.com/01moynul/travelsite/internal/export"
	"github.com/01moynul/travelsite/internal/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// --- Inputs ---

// ProductInput is the body of POST and PUT /api/products.
// Omitted flags keep their current value on update and default to
// active / not featured on create.
type ProductInput struct {
	Name          string     `json:"name" binding:"required,max=191"`
	Slug          string     `json:"slug" binding:"max=191"`
	Description   string     `json:"description"`
	Price         float64    `json:"price" binding:"gte=0"`
	OriginalPrice *float64   `json:"originalPrice" binding:"omitempty,gte=0"`
	Image         string     `json:"image"`
	Images        []string   `json:"images"`
	Type          string     `json:"type" binding:"required"`
	Duration      string     `json:"duration" binding:"max=64"`
	DepartureDate *time.Time `json:"departureDate"`
	Quota         int        `json:"quota" binding:"gte=0"`
	Hotel         string     `json:"hotel"`
	Airline       string     `json:"airline"`
	Facilities    []string   `json:"facilities"`
	IsActive      *bool      `json:"isActive"`
	IsFeatured    *bool      `json:"isFeatured"`
}

func (in ProductInput) apply(p *models.Product, isNew bool) {
	p.Name = strings.TrimSpace(in.Name)
	p.Slug = makeSlug(in.Slug, in.Name)
	p.Description = in.Description
	p.Price = in.Price
	p.OriginalPrice = in.OriginalPrice
	p.Image = in.Image
	p.Images = stringsOrEmpty(in.Images)
	p.Type = in.Type
	p.Duration = in.Duration
	p.DepartureDate = in.DepartureDate
	p.Quota = in.Quota
	p.Hotel = in.Hotel
	p.Airline = in.Airline
	p.Facilities = stringsOrEmpty(in.Facilities)
	if isNew {
		p.IsActive = boolOr(in.IsActive, true)
		p.IsFeatured = boolOr(in.IsFeatured, false)
		return
	}
	p.IsActive = boolOr(in.IsActive, p.IsActive)
	p.IsFeatured = boolOr(in.IsFeatured, p.IsFeatured)
}

// checkProductType rejects a type that is not an existing ProductType slug.
func (h *Handlers) checkProductType(c *gin.Context, typeSlug string) error {
	var count int64
	err := h.DB.WithContext(c.Request.Context()).
		Model(&models.ProductType{}).
		Where("slug = ?", typeSlug).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count == 0 {
		return apperror.New(apperror.Validation, fmt.Sprintf("Unknown product type %q", typeSlug))
	}
	return nil
}

// --- Public ---

// GetProducts handles GET /api/products
// Filters: type, featured, q. Paging: limit, skip. all=true shows inactive
// products to a signed-in admin.
func (h *Handlers) GetProducts(c *gin.Context) {
	limit, skip := page(c, 20, 100)

	// 1. Build the filter
	query := h.DB.WithContext(c.Request.Context()).Model(&models.Product{})
	if !(queryFlag(c, "all") && h.hasSession(c)) {
		query = query.Where("is_active = ?", true)
	}
	if t := c.Query("type"); t != "" {
		query = query.Where("type = ?", t)
	}
	if queryFlag(c, "featured") {
		query = query.Where("is_featured = ?", true)
	}
	if q := strings.TrimSpace(c.Query("q")); q != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(q)+"%")
	}
	query = query.Session(&gorm.Session{})

	// 2. Count and fetch the page
	var total int64
	if err := query.Count(&total).Error; err != nil {
		h.respondError(c, err)
		return
	}

	products := []models.Product{}
	if err := query.Order("created_at DESC").Order("id DESC").Limit(limit).Offset(skip).Find(&products).Error; err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"total":    total,
		"skip":     skip,
		"limit":    limit,
	})
}

// GetProduct handles GET /api/products/:id
func (h *Handlers) GetProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var product models.Product
	if err := h.DB.WithContext(c.Request.Context()).First(&product, id).Error; err != nil {
		h.respondError(c, err)
		return
	}
	if !product.IsActive && !h.hasSession(c) {
		h.respondError(c, gorm.ErrRecordNotFound)
		return
	}
	c.JSON(http.StatusOK, product)
}

// GetProductBySlug handles GET /api/products/slug/:slug
func (h *Handlers) GetProductBySlug(c *gin.Context) {
	var product models.Product
	err := h.DB.WithContext(c.Request.Context()).
		Where("slug = ? AND is_active = ?", c.Param("slug"), true).
		First(&product).Error
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// --- Admin ---

// CreateProduct handles POST /api/products
func (h *Handlers) CreateProduct(c *gin.Context) {
	var input ProductInput
	if !h.bindJSON(c, &input) {
		return
	}
	if err := h.checkProductType(c, input.Type); err != nil {
		h.respondError(c, err)
		return
	}

	var product models.Product
	input.apply(&product, true)
	if err := h.DB.WithContext(c.Request.Context()).Create(&product).Error; err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

// UpdateProduct handles PUT /api/products/:id
func (h *Handlers) UpdateProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var input ProductInput
	if !h.bindJSON(c, &input) {
		return
	}

	db := h.DB.WithContext(c.Request.Context())
	var product models.Product
	if err := db.First(&product, id).Error; err != nil {
		h.respondError(c, err)
		return
	}
	if input.Type != product.Type {
		if err := h.checkProductType(c, input.Type); err != nil {
			h.respondError(c, err)
			return
		}
	}

	input.apply(&product, false)
	if err := db.Save(&product).Error; err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// DeleteProduct handles DELETE /api/products/:id
func (h *Handlers) DeleteProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	res := h.DB.WithContext(c.Request.Context()).Delete(&models.Product{}, id)
	if res.Error != nil {
		h.respondError(c, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		h.respondError(c, gorm.ErrRecordNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}

// ExportProducts handles GET /api/products/export
func (h *Handlers) ExportProducts(c *gin.Context) {
	var products []models.Product
	if err := h.DB.WithContext(c.Request.Context()).Order("type ASC").Order("name ASC").Find(&products).Error; err != nil {
		h.respondError(c, err)
		return
	}

	rows := make([][]interface{}, 0, len(products))
	for _, p := range products {
		departure := ""
		if p.DepartureDate != nil {
			departure = p.DepartureDate.Format(models.VisitorDateLayout)
		}
		rows = append(rows, []interface{}{
			p.Name, p.Slug, p.Type, p.Price, p.Duration, departure, p.Quota,
			export.YesNo(p.IsActive), export.YesNo(p.IsFeatured),
		})
	}

	data, err := export.XLSX(export.Table{
		Sheet:   "Products",
		Headers: []string{"Name", "Slug", "Type", "Price", "Duration", "Departure", "Quota", "Active", "Featured"},
		Widths:  []float64{36, 30, 18, 16, 14, 14, 10, 10, 10},
		Rows:    rows,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=products.xlsx")
	c.Data(http.StatusOK, export.ContentType, data)
}
