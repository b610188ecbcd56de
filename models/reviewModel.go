package models

import "time"

type Review struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	ProductID    uint      `gorm:"not null;uniqueIndex:idx_review_product_user" json:"productId"`
	UserID       uint      `gorm:"not null;uniqueIndex:idx_review_product_user" json:"userId"`
	ReviewerName string    `gorm:"size:100" json:"reviewerName"`
	Rating       int       `gorm:"not null" json:"rating"`
	Comment      string    `gorm:"size:1000" json:"comment"`
	CreatedAt    time.Time `json:"createdAt"`
}

type ReviewData struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"max=1000"`
}

type RatingSummary struct {
	AverageRating float64 `json:"averageRating"`
	ReviewCount   int64   `json:"reviewCount"`
}
