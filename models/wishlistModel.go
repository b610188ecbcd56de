package models

import "time"

type WishlistItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_wishlist_user_product" json:"userId"`
	ProductID uint      `gorm:"not null;uniqueIndex:idx_wishlist_user_product" json:"productId"`
	AddedAt   time.Time `gorm:"autoCreateTime" json:"addedAt"`
}

func (WishlistItem) TableName() string {
	return "wishlist"
}
