package models

import "time"

const (
	MediaTypeImage = "image"
	MediaTypeVideo = "video"
)

// Gallery is one photo or video shown on the public gallery page.
type Gallery struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:191;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	ImageURL    string    `gorm:"not null" json:"imageUrl"`
	Category    string    `gorm:"size:120;index" json:"category"`
	MediaType   string    `gorm:"size:16;default:image" json:"mediaType"`
	IsActive    bool      `gorm:"not null" json:"isActive"`
	SortOrder   int       `gorm:"default:0" json:"sortOrder"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (Gallery) TableName() string { return "galleries" }
