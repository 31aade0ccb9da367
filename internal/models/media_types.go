package models

import "time"

// Media records a file written to the upload directory.
type Media struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Filename     string    `gorm:"size:191;uniqueIndex;not null" json:"filename"`
	OriginalName string    `json:"originalName"`
	MimeType     string    `gorm:"size:64" json:"mimeType"`
	Size         int64     `json:"size"`
	URL          string    `gorm:"not null" json:"url"`
	Alt          string    `json:"alt"`
	MediaType    string    `gorm:"size:16;index" json:"mediaType"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (Media) TableName() string { return "media" }
