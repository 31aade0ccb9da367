package models

import "time"

// SocialMedia is a footer/header social link.
type SocialMedia struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Platform  string    `gorm:"size:64;not null" json:"platform"`
	URL       string    `gorm:"not null" json:"url"`
	Icon      string    `gorm:"size:64" json:"icon"`
	IsActive  bool      `gorm:"not null" json:"isActive"`
	SortOrder int       `gorm:"default:0" json:"sortOrder"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (SocialMedia) TableName() string { return "social_media" }
