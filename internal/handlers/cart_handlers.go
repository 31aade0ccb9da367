package handlers

import (
	"net/http"

	"github.com/01moynul/travelsite/internal/cart"
	"github.com/01moynul/travelsite/internal/models"
	"github.com/gin-gonic/gin"
)

//
// --- Cart Quote (Public) ---
//

// QuoteCartInput is the cart the browser keeps in local storage.
type QuoteCartInput struct {
	Items []cart.Item `json:"items" binding:"max=100"`
}

// QuoteCart handles POST /api/cart/quote
// It re-prices the browser's cart against active products.
func (h *Handlers) QuoteCart(c *gin.Context) {
	var input QuoteCartInput
	if !h.bindJSON(c, &input) {
		return
	}

	// 1. Normalise: merge duplicates, drop empty lines
	basket := cart.FromItems(input.Items)
	ids := basket.ProductIDs()

	// 2. Load the active products in one query
	catalog := make(map[uint]cart.Product, len(ids))
	if len(ids) > 0 {
		var products []models.Product
		err := h.DB.WithContext(c.Request.Context()).
			Select("id", "name", "slug", "image", "price").
			Where("id IN ? AND is_active = ?", ids, true).
			Find(&products).Error
		if err != nil {
			h.respondError(c, err)
			return
		}
		for _, p := range products {
			catalog[p.ID] = cart.Product{ID: p.ID, Name: p.Name, Slug: p.Slug, Image: p.Image, Price: p.Price}
		}
	}

	// 3. Price it
	c.JSON(http.StatusOK, basket.Totals(catalog))
}
