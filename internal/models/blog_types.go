package models

import "time"

// Blog defines the struct for the 'blogs' table.
type Blog struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"size:191;not null" json:"title"`
	Slug        string     `gorm:"size:191;uniqueIndex;not null" json:"slug"`
	Excerpt     string     `gorm:"type:text" json:"excerpt"`
	Content     string     `gorm:"type:text" json:"content"`
	Image       string     `json:"image"`
	Author      string     `gorm:"size:120" json:"author"`
	Category    string     `gorm:"size:120;index" json:"category"`
	Tags        []string   `gorm:"type:text;serializer:json" json:"tags"`
	IsPublished bool       `gorm:"not null;index" json:"isPublished"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
	Views       int        `gorm:"default:0" json:"views"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}
