package handlers

import (
	"net/http"

	"github.com/01moynul/travelsite/internal/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

//
// --- Admin Dashboard Stats ---
//

type DashboardStats struct {
	Products         int64 `json:"products"`
	ActiveProducts   int64 `json:"activeProducts"`
	BlogPosts        int64 `json:"blogPosts"`
	PublishedPosts   int64 `json:"publishedPosts"`
	GalleryItems     int64 `json:"galleryItems"`
	Partners         int64 `json:"partners"`
	MediaFiles       int64 `json:"mediaFiles"`
	VisitorsToday    int64 `json:"visitorsToday"`
	VisitorsLastWeek int64 `json:"visitorsLastWeek"`
}

// GetDashboardStats returns KPI data for the admin dashboard
// GET /api/dashboard/stats
func (h *Handlers) GetDashboardStats(c *gin.Context) {
	db := h.DB.WithContext(c.Request.Context())
	stats := DashboardStats{}

	counts := []struct {
		dst   *int64
		model interface{}
		where string
	}{
		{&stats.Products, &models.Product{}, ""},
		{&stats.ActiveProducts, &models.Product{}, "is_active = ?"},
		{&stats.BlogPosts, &models.Blog{}, ""},
		{&stats.PublishedPosts, &models.Blog{}, "is_published = ?"},
		{&stats.GalleryItems, &models.Gallery{}, ""},
		{&stats.Partners, &models.Partner{}, ""},
		{&stats.MediaFiles, &models.Media{}, ""},
	}

	// 1. Content counts
	for _, cnt := range counts {
		q := db.Model(cnt.model)
		if cnt.where != "" {
			q = q.Where(cnt.where, true)
		}
		if err := q.Count(cnt.dst).Error; err != nil {
			h.respondError(c, err)
			return
		}
	}

	// 2. Visitors
	now := h.clock()
	today := now.Format(models.VisitorDateLayout)
	weekStart := now.AddDate(0, 0, -6).Format(models.VisitorDateLayout)

	if err := sumVisits(db.Where("date = ?", today), &stats.VisitorsToday); err != nil {
		h.respondError(c, err)
		return
	}
	if err := sumVisits(db.Where("date >= ? AND date <= ?", weekStart, today), &stats.VisitorsLastWeek); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

func sumVisits(q *gorm.DB, dst *int64) error {
	return q.Model(&models.VisitorStat{}).Select("COALESCE(SUM(visit_count), 0)").Scan(dst).Error
}
