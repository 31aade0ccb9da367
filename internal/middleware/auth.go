package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/01moynul/travelsite/internal/auth"
	"github.com/01moynul/travelsite/internal/models"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	// ContextUserID is the gin context key holding the authenticated user ID.
	ContextUserID = "userID"
	// ContextUser holds the loaded *models.User.
	ContextUser = "user"
)

// TokenFromRequest returns the bearer token or, failing that, the session cookie.
func TokenFromRequest(c *gin.Context) (string, bool) {
	if header := c.GetHeader("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") && parts[1] != "" {
			return strings.TrimSpace(parts[1]), true
		}
		return "", false
	}
	if cookie, err := c.Cookie(auth.CookieName); err == nil && cookie != "" {
		return cookie, true
	}
	return "", false
}

// Authenticate resolves the session to a user without aborting.
// It returns nil when the request carries no valid session.
func Authenticate(c *gin.Context, db *gorm.DB, sessions *auth.Manager) *models.User {
	token, ok := TokenFromRequest(c)
	if !ok {
		return nil
	}
	userID, err := sessions.ValidateToken(token)
	if err != nil {
		return nil
	}

	var user models.User
	if err := db.WithContext(c.Request.Context()).First(&user, userID).Error; err != nil {
		return nil
	}
	return &user
}

// RequireSession guards admin routes. Requests without a valid session for an
// existing user are rejected with 401.
func RequireSession(db *gorm.DB, sessions *auth.Manager, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := TokenFromRequest(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		userID, err := sessions.ValidateToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired session"})
			return
		}

		var user models.User
		if err := db.WithContext(c.Request.Context()).First(&user, userID).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				log.Error("session user lookup failed", zap.Uint("user_id", userID), zap.Error(err))
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired session"})
			return
		}

		c.Set(ContextUserID, user.ID)
		c.Set(ContextUser, &user)
		c.Next()
	}
}

// CurrentUser returns the user stored by RequireSession.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(ContextUser)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok
}
