package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/01moynul/travelsite/internal/ai"
	"github.com/01moynul/travelsite/internal/apperror"
	"github.com/01moynul/travelsite/internal/auth"
	"github.com/01moynul/travelsite/internal/cache"
	"github.com/01moynul/travelsite/internal/live"
	"github.com/01moynul/travelsite/internal/middleware"
	"github.com/01moynul/travelsite/internal/upload"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/gosimple/slug"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Handlers struct holds all dependencies for our handlers.
type Handlers struct {
	DB       *gorm.DB
	Log      *zap.Logger
	Sessions *auth.Manager
	Cache    *cache.JSON
	Uploads  *upload.Store
	Hub      *live.Hub
	AI       ai.Describer // nil when no API key is configured

	// SecureCookies marks the session cookie Secure (HTTPS deployments).
	SecureCookies bool
	// Now overrides the clock for the visitor counter; nil means time.Now.
	Now func() time.Time
}

// respondError maps err to its kind and writes {"error": msg}.
func (h *Handlers) respondError(c *gin.Context, err error) {
	appErr := apperror.From(err)
	status := apperror.Status(appErr.Kind)
	if status >= http.StatusInternalServerError {
		h.Log.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.String("kind", string(appErr.Kind)),
			zap.Error(err),
		)
	}
	c.AbortWithStatusJSON(status, gin.H{"error": appErr.Message})
}

// bindJSON binds and validates the body. It answers 400 and returns false on failure.
func (h *Handlers) bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			h.respondError(c, err)
			return false
		}
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return false
	}
	return true
}

// parseID reads a positive numeric path parameter. It answers 400 otherwise.
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
		return 0, false
	}
	return uint(id), true
}

// page reads limit/skip query parameters.
func page(c *gin.Context, defaultLimit, maxLimit int) (limit, skip int) {
	limit = defaultLimit
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 {
		limit = v
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if v, err := strconv.Atoi(c.Query("skip")); err == nil && v > 0 {
		skip = v
	}
	return limit, skip
}

// queryFlag reports whether a query parameter is set to a true value.
func queryFlag(c *gin.Context, key string) bool {
	v, err := strconv.ParseBool(c.Query(key))
	return err == nil && v
}

// hasSession reports whether the request carries a valid admin session.
func (h *Handlers) hasSession(c *gin.Context) bool {
	if _, ok := middleware.CurrentUser(c); ok {
		return true
	}
	return middleware.Authenticate(c, h.DB, h.Sessions) != nil
}

// makeSlug prefers the explicit slug and falls back to the display name.
func makeSlug(explicit, name string) string {
	if s := strings.TrimSpace(explicit); s != "" {
		return slug.Make(s)
	}
	return slug.Make(name)
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

func intOr(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}

func stringsOrEmpty(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}
