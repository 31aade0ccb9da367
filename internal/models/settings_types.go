package models

import "time"

// Settings is a single-row table (ID 1) with site-wide content.
type Settings struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	SiteName        string    `json:"siteName"`
	SiteDescription string    `gorm:"type:text" json:"siteDescription"`
	Logo            string    `json:"logo"`
	Favicon         string    `json:"favicon"`
	ContactEmail    string    `json:"contactEmail"`
	ContactPhone    string    `json:"contactPhone"`
	WhatsappNumber  string    `json:"whatsappNumber"`
	Address         string    `gorm:"type:text" json:"address"`
	MapEmbedURL     string    `gorm:"type:text" json:"mapEmbedUrl"`
	FooterText      string    `gorm:"type:text" json:"footerText"`
	MetaKeywords    string    `gorm:"type:text" json:"metaKeywords"`
	MaintenanceMode bool      `gorm:"not null" json:"maintenanceMode"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// DefaultSettings is returned while the settings row does not exist yet.
func DefaultSettings() Settings {
	return Settings{
		ID:              1,
		SiteName:        "Travel Haji & Umroh",
		SiteDescription: "Haji and Umroh tour packages",
	}
}
