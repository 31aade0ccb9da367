package models

import "time"

// Partner is a logo in the partner carousel.
type Partner struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:191;not null" json:"name"`
	Logo      string    `gorm:"not null" json:"logo"`
	Website   string    `json:"website"`
	IsActive  bool      `gorm:"not null" json:"isActive"`
	SortOrder int       `gorm:"default:0" json:"sortOrder"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PartnerSection is a single-row table holding the carousel heading.
type PartnerSection struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `json:"title"`
	Subtitle  string    `json:"subtitle"`
	IsActive  bool      `gorm:"not null" json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
