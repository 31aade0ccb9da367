package models

import "time"

// VisitorDateLayout is the format of VisitorStat.Date.
const VisitorDateLayout = "2006-01-02"

// VisitorStat holds one counter per calendar day.
type VisitorStat struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Date      string    `gorm:"size:10;uniqueIndex;not null" json:"date"`
	Count     int64     `gorm:"column:visit_count;not null;default:0" json:"count"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
