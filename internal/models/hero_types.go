package models

import "time"

// HeroSection is the banner block at the top of the home page.
// Only one section is active at a time.
type HeroSection struct {
	ID              uint         `gorm:"primaryKey" json:"id"`
	Title           string       `gorm:"size:191;not null" json:"title"`
	Subtitle        string       `json:"subtitle"`
	Description     string       `gorm:"type:text" json:"description"`
	BackgroundImage string       `json:"backgroundImage"`
	BackgroundVideo string       `json:"backgroundVideo"`
	IsActive        bool         `gorm:"not null" json:"isActive"`
	Buttons         []HeroButton `gorm:"foreignKey:HeroSectionID;constraint:OnDelete:CASCADE" json:"buttons"`
	Stats           []HeroStat   `gorm:"foreignKey:HeroSectionID;constraint:OnDelete:CASCADE" json:"stats"`
	CreatedAt       time.Time    `json:"createdAt"`
	UpdatedAt       time.Time    `json:"updatedAt"`
}

// HeroButton belongs to a HeroSection.
type HeroButton struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	HeroSectionID uint      `gorm:"index;not null" json:"heroSectionId"`
	Text          string    `gorm:"size:120;not null" json:"text"`
	Link          string    `json:"link"`
	Variant       string    `gorm:"size:32;default:primary" json:"variant"`
	SortOrder     int       `gorm:"default:0" json:"sortOrder"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// HeroStat is a figure shown under the hero ("10K+ Jamaah").
type HeroStat struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	HeroSectionID uint      `gorm:"index;not null" json:"heroSectionId"`
	Label         string    `gorm:"size:120;not null" json:"label"`
	Value         string    `gorm:"size:64;not null" json:"value"`
	Icon          string    `gorm:"size:64" json:"icon"`
	SortOrder     int       `gorm:"default:0" json:"sortOrder"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
