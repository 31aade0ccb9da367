package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/01moynul/travelsite/internal/apperror"
	"github.com/01moynul/travelsite/internal/auth"
	"github.com/01moynul/travelsite/internal/middleware"
	"github.com/01moynul/travelsite/internal/models"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// --- Admin Login ---

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login handles POST /api/auth/login
func (h *Handlers) Login(c *gin.Context) {
	// 1. Bind & validate
	var input LoginInput
	if !h.bindJSON(c, &input) {
		return
	}

	// 2. Find the user. Unknown email and wrong password answer the same way.
	var user models.User
	err := h.DB.WithContext(c.Request.Context()).
		Where("email = ?", strings.ToLower(strings.TrimSpace(input.Email))).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}
		h.respondError(c, err)
		return
	}

	// 3. Check the password
	password := models.Password{Hash: user.PasswordHash}
	match, err := password.Matches(input.Password)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if !match {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	// 4. Issue the session
	token, err := h.Sessions.GenerateToken(user.ID)
	if err != nil {
		h.respondError(c, apperror.Wrap(apperror.Unknown, "Failed to create session", err))
		return
	}

	now := time.Now()
	if err := h.DB.WithContext(c.Request.Context()).Model(&user).Update("last_login_at", now).Error; err != nil {
		h.Log.Warn("failed to stamp last login", zap.Uint("user_id", user.ID), zap.Error(err))
	}
	user.LastLoginAt = &now

	h.setSessionCookie(c, token, int(h.Sessions.TTL().Seconds()))
	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

// Logout handles POST /api/auth/logout
func (h *Handlers) Logout(c *gin.Context) {
	h.setSessionCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// GetSession handles GET /api/auth/session
func (h *Handlers) GetSession(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

type ChangePasswordInput struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
}

// ChangePassword handles PUT /api/auth/password
func (h *Handlers) ChangePassword(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var input ChangePasswordInput
	if !h.bindJSON(c, &input) {
		return
	}

	current := models.Password{Hash: user.PasswordHash}
	match, err := current.Matches(input.CurrentPassword)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if !match {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Current password is incorrect"})
		return
	}

	var next models.Password
	if err := next.Set(input.NewPassword); err != nil {
		h.respondError(c, apperror.Wrap(apperror.Unknown, "Failed to hash password", err))
		return
	}
	if err := h.DB.WithContext(c.Request.Context()).Model(user).Update("password_hash", next.Hash).Error; err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password updated"})
}

func (h *Handlers) setSessionCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.CookieName, value, maxAge, "/", "", h.SecureCookies, true)
}

// SeedAdmin creates the admin account when no user with that email exists.
// It reports whether a user was created.
func SeedAdmin(ctx context.Context, db *gorm.DB, name, email, password string) (bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return false, nil
	}
	if name == "" {
		name = "Administrator"
	}

	var count int64
	if err := db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	var p models.Password
	if err := p.Set(password); err != nil {
		return false, err
	}
	user := models.User{Name: name, Email: email, PasswordHash: p.Hash, Role: "admin"}
	if err := db.WithContext(ctx).Create(&user).Error; err != nil {
		return false, err
	}
	return true, nil
}
