package handlers

import (
	"net/http"

	"github.com/01moynul/travelsite/internal/ai"
	"github.com/01moynul/travelsite/internal/apperror"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DescribeInput defines the structure of the JSON request body.
type DescribeInput struct {
	Kind  string `json:"kind" binding:"required,oneof=product blog"`
	Title string `json:"title" binding:"required,max=191"`
	Notes string `json:"notes" binding:"max=2000"`
}

// Describe handles POST /api/ai/describe
// It drafts a product description or blog excerpt for the admin forms.
func (h *Handlers) Describe(c *gin.Context) {
	// 1. The assistant is optional
	if h.AI == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "AI assistant is not configured"})
		return
	}

	// 2. Parse Input
	var input DescribeInput
	if !h.bindJSON(c, &input) {
		return
	}

	// 3. Ask the model
	text, tokens, err := h.AI.Describe(c.Request.Context(), ai.Request{
		Kind:  input.Kind,
		Title: input.Title,
		Notes: input.Notes,
	})
	if err != nil {
		h.respondError(c, apperror.Wrap(apperror.Unknown, "AI service unavailable", err))
		return
	}
	h.Log.Info("ai draft generated", zap.String("kind", input.Kind), zap.Int("tokens", tokens))

	// 4. Return the draft
	c.JSON(http.StatusOK, gin.H{"text": text})
}
