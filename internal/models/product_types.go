package models

import "time"

// ProductType is a catalog grouping (e.g. "umroh-reguler", "haji-plus").
// Products reference it by slug.
type ProductType struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:120;not null" json:"name"`
	Slug        string    `gorm:"size:191;uniqueIndex;not null" json:"slug"`
	Description string    `gorm:"type:text" json:"description"`
	IsActive    bool      `gorm:"not null" json:"isActive"`
	SortOrder   int       `gorm:"default:0" json:"sortOrder"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Product is a tour package for the 'products' table.
type Product struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	Name          string     `gorm:"size:191;not null" json:"name"`
	Slug          string     `gorm:"size:191;uniqueIndex;not null" json:"slug"`
	Description   string     `gorm:"type:text" json:"description"`
	Price         float64    `gorm:"not null;default:0" json:"price"`
	OriginalPrice *float64   `json:"originalPrice,omitempty"`
	Image         string     `json:"image"`
	Images        []string   `gorm:"type:text;serializer:json" json:"images"`
	Type          string     `gorm:"size:191;index" json:"type"`
	Duration      string     `gorm:"size:64" json:"duration"`
	DepartureDate *time.Time `json:"departureDate,omitempty"`
	Quota         int        `gorm:"default:0" json:"quota"`
	Hotel         string     `json:"hotel"`
	Airline       string     `json:"airline"`
	Facilities    []string   `gorm:"type:text;serializer:json" json:"facilities"`
	IsActive      bool       `gorm:"not null" json:"isActive"`
	IsFeatured    bool       `gorm:"not null" json:"isFeatured"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}
