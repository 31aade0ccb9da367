package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/01moynul/travelsite/internal/export"
	"github.com/01moynul/travelsite/internal/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	defaultStatDays = 30
	maxStatDays     = 365
)

// VisitCount is the payload of the track endpoint and the live feed.
type VisitCount struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

func (h *Handlers) clock() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

// TrackVisitor handles POST /api/visitors/track
// One upsert per call: the first visit of a day inserts the row, later visits
// bump the counter in place.
func (h *Handlers) TrackVisitor(c *gin.Context) {
	now := h.clock()
	today := now.Format(models.VisitorDateLayout)
	db := h.DB.WithContext(c.Request.Context())

	// 1. Insert or increment
	stat := models.VisitorStat{Date: today, Count: 1}
	err := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"visit_count": gorm.Expr("visit_count + ?", 1),
			"updated_at":  now,
		}),
	}).Create(&stat).Error
	if err != nil {
		h.respondError(c, err)
		return
	}

	// 2. Read back the current total for today
	var current models.VisitorStat
	if err := db.Where("date = ?", today).First(&current).Error; err != nil {
		h.respondError(c, err)
		return
	}

	out := VisitCount{Date: current.Date, Count: current.Count}
	if h.Hub != nil {
		h.Hub.Broadcast(out)
	}
	c.JSON(http.StatusOK, out)
}

// statDays reads ?days=N, clamped to [1, maxStatDays].
func statDays(c *gin.Context) int {
	days, err := strconv.Atoi(c.Query("days"))
	if err != nil || days <= 0 {
		return defaultStatDays
	}
	if days > maxStatDays {
		return maxStatDays
	}
	return days
}

// visitorWindow returns one entry per day ending today, zero-filled.
func (h *Handlers) visitorWindow(c *gin.Context, days int) ([]VisitCount, error) {
	today := h.clock()
	from := today.AddDate(0, 0, -(days - 1)).Format(models.VisitorDateLayout)

	var rows []models.VisitorStat
	err := h.DB.WithContext(c.Request.Context()).
		Where("date >= ? AND date <= ?", from, today.Format(models.VisitorDateLayout)).
		Order("date ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	byDate := make(map[string]int64, len(rows))
	for _, r := range rows {
		byDate[r.Date] = r.Count
	}

	window := make([]VisitCount, 0, days)
	for i := days - 1; i >= 0; i-- {
		d := today.AddDate(0, 0, -i).Format(models.VisitorDateLayout)
		window = append(window, VisitCount{Date: d, Count: byDate[d]})
	}
	return window, nil
}

// GetVisitorStats handles GET /api/visitors/stats?days=N
func (h *Handlers) GetVisitorStats(c *gin.Context) {
	days := statDays(c)
	window, err := h.visitorWindow(c, days)
	if err != nil {
		h.respondError(c, err)
		return
	}

	var total int64
	err = h.DB.WithContext(c.Request.Context()).
		Model(&models.VisitorStat{}).
		Select("COALESCE(SUM(visit_count), 0)").
		Scan(&total).Error
	if err != nil {
		h.respondError(c, err)
		return
	}

	var windowTotal int64
	for _, d := range window {
		windowTotal += d.Count
	}

	c.JSON(http.StatusOK, gin.H{
		"days":        days,
		"daily":       window,
		"today":       window[len(window)-1].Count,
		"windowTotal": windowTotal,
		"total":       total,
	})
}

// ExportVisitors handles GET /api/visitors/export?days=N
func (h *Handlers) ExportVisitors(c *gin.Context) {
	window, err := h.visitorWindow(c, statDays(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	rows := make([][]interface{}, 0, len(window))
	for _, d := range window {
		rows = append(rows, []interface{}{d.Date, d.Count})
	}
	data, err := export.XLSX(export.Table{
		Sheet:   "Visitors",
		Headers: []string{"Date", "Visitors"},
		Widths:  []float64{14, 12},
		Rows:    rows,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=visitors.xlsx")
	c.Data(http.StatusOK, export.ContentType, data)
}

// VisitorLive handles GET /api/visitors/live (websocket).
func (h *Handlers) VisitorLive(c *gin.Context) {
	h.Hub.ServeWS(c.Writer, c.Request)
}
