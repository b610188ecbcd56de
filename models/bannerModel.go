package models

import "time"

type Banner struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Title        string    `gorm:"size:200" json:"title"`
	Subtitle     string    `gorm:"size:500" json:"subtitle"`
	ImageURL     string    `gorm:"size:500;not null" json:"imageUrl"`
	LinkURL      string    `gorm:"size:500" json:"linkUrl"`
	DisplayOrder int       `gorm:"not null;index" json:"displayOrder"`
	IsActive     bool      `gorm:"not null" json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// BannerInput binds from JSON and from multipart forms carrying an image.
type BannerInput struct {
	Title        string `json:"title" form:"title" binding:"max=200"`
	Subtitle     string `json:"subtitle" form:"subtitle" binding:"max=500"`
	ImageURL     string `json:"imageUrl" form:"imageUrl" binding:"max=500"`
	LinkURL      string `json:"linkUrl" form:"linkUrl" binding:"max=500"`
	DisplayOrder int    `json:"displayOrder" form:"displayOrder"`
	IsActive     *bool  `json:"isActive" form:"isActive"`
}

func (in BannerInput) Apply(b *Banner) {
	b.Title = in.Title
	b.Subtitle = in.Subtitle
	if in.ImageURL != "" {
		b.ImageURL = in.ImageURL
	}
	b.LinkURL = in.LinkURL
	b.DisplayOrder = in.DisplayOrder
	if in.IsActive != nil {
		b.IsActive = *in.IsActive
	}
}
