package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/01moynul/travelsite/internal/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type BlogInput struct {
	Title       string   `json:"title" binding:"required,max=191"`
	Slug        string   `json:"slug" binding:"max=191"`
	Excerpt     string   `json:"excerpt"`
	Content     string   `json:"content"`
	Image       string   `json:"image"`
	Author      string   `json:"author" binding:"max=120"`
	Category    string   `json:"category" binding:"max=120"`
	Tags        []string `json:"tags"`
	IsPublished *bool    `json:"isPublished"`
}

func (in BlogInput) apply(b *models.Blog, now time.Time) {
	b.Title = strings.TrimSpace(in.Title)
	b.Slug = makeSlug(in.Slug, in.Title)
	b.Excerpt = in.Excerpt
	b.Content = in.Content
	b.Image = in.Image
	b.Author = in.Author
	b.Category = in.Category
	b.Tags = stringsOrEmpty(in.Tags)
	setPublished(b, boolOr(in.IsPublished, b.IsPublished), now)
}

// setPublished toggles visibility. PublishedAt is stamped the first time only.
func setPublished(b *models.Blog, published bool, now time.Time) {
	b.IsPublished = published
	if published && b.PublishedAt == nil {
		b.PublishedAt = &now
	}
}

// --- Public ---

// GetBlogs handles GET /api/blog
// Public callers see published posts, newest first. all=true with a session
// lists drafts too.
func (h *Handlers) GetBlogs(c *gin.Context) {
	limit, skip := page(c, 10, 100)

	query := h.DB.WithContext(c.Request.Context()).Model(&models.Blog{})
	showAll := queryFlag(c, "all") && h.hasSession(c)
	if !showAll {
		query = query.Where("is_published = ?", true)
	}
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if q := strings.TrimSpace(c.Query("q")); q != "" {
		query = query.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(q)+"%")
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		h.respondError(c, err)
		return
	}

	order := "published_at DESC"
	if showAll {
		order = "created_at DESC"
	}
	blogs := []models.Blog{}
	if err := query.Order(order).Order("id DESC").Limit(limit).Offset(skip).Find(&blogs).Error; err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"blogs": blogs,
		"total": total,
		"skip":  skip,
		"limit": limit,
	})
}

// GetBlog handles GET /api/blog/:id
func (h *Handlers) GetBlog(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var blog models.Blog
	if err := h.DB.WithContext(c.Request.Context()).First(&blog, id).Error; err != nil {
		h.respondError(c, err)
		return
	}
	if !blog.IsPublished && !h.hasSession(c) {
		h.respondError(c, gorm.ErrRecordNotFound)
		return
	}
	c.JSON(http.StatusOK, blog)
}

// GetBlogBySlug handles GET /api/blog/slug/:slug and counts the view.
func (h *Handlers) GetBlogBySlug(c *gin.Context) {
	db := h.DB.WithContext(c.Request.Context())

	var blog models.Blog
	if err := db.Where("slug = ? AND is_published = ?", c.Param("slug"), true).First(&blog).Error; err != nil {
		h.respondError(c, err)
		return
	}

	// Single UPDATE so concurrent readers never lose a view
	if err := db.Model(&blog).UpdateColumn("views", gorm.Expr("views + ?", 1)).Error; err != nil {
		h.respondError(c, err)
		return
	}
	blog.Views++

	c.JSON(http.StatusOK, blog)
}

// --- Admin ---

// CreateBlog handles POST /api/blog
func (h *Handlers) CreateBlog(c *gin.Context) {
	var input BlogInput
	if !h.bindJSON(c, &input) {
		return
	}

	var blog models.Blog
	input.apply(&blog, time.Now())
	if err := h.DB.WithContext(c.Request.Context()).Create(&blog).Error; err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, blog)
}

// UpdateBlog handles PUT /api/blog/:id
func (h *Handlers) UpdateBlog(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var input BlogInput
	if !h.bindJSON(c, &input) {
		return
	}

	db := h.DB.WithContext(c.Request.Context())
	var blog models.Blog
	if err := db.First(&blog, id).Error; err != nil {
		h.respondError(c, err)
		return
	}

	input.apply(&blog, time.Now())
	if err := db.Save(&blog).Error; err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, blog)
}

// DeleteBlog handles DELETE /api/blog/:id
func (h *Handlers) DeleteBlog(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	res := h.DB.WithContext(c.Request.Context()).Delete(&models.Blog{}, id)
	if res.Error != nil {
		h.respondError(c, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		h.respondError(c, gorm.ErrRecordNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Blog post deleted"})
}

// PublishBlog handles PATCH /api/blog/:id/publish
func (h *Handlers) PublishBlog(c *gin.Context) {
	h.setBlogPublished(c, true)
}

// UnpublishBlog handles PATCH /api/blog/:id/unpublish
func (h *Handlers) UnpublishBlog(c *gin.Context) {
	h.setBlogPublished(c, false)
}

func (h *Handlers) setBlogPublished(c *gin.Context, published bool) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	db := h.DB.WithContext(c.Request.Context())
	var blog models.Blog
	if err := db.First(&blog, id).Error; err != nil {
		h.respondError(c, err)
		return
	}

	setPublished(&blog, published, time.Now())
	err := db.Model(&blog).Select("is_published", "published_at").Updates(&blog).Error
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, blog)
}
