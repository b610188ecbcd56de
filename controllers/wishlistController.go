package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hsz/sarees-api/initializers"
	"github.com/hsz/sarees-api/models"
	"gorm.io/gorm/clause"
)

func GetWishlist(ctx *gin.Context) {
	var products []models.Product
	if err := initializers.DB.
		Joins("JOIN wishlist ON wishlist.product_id = products.id").
		Where("wishlist.user_id = ?", currentUser(ctx).UserID).
		Order("wishlist.added_at desc, wishlist.id desc").
		Find(&products).Error; err != nil {
		sendDBError(ctx, err, "failed to fetch wishlist")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, nonNil(products))
}

// AddToWishlist is idempotent per (user, product).
func AddToWishlist(ctx *gin.Context) {
	productID, ok := parseID(ctx, "productId")
	if !ok {
		return
	}

	var product models.Product
	if err := activeProducts().First(&product, productID).Error; err != nil {
		sendDBError(ctx, err, "failed to fetch product")
		return
	}

	item := models.WishlistItem{UserID: currentUser(ctx).UserID, ProductID: product.ID}
	if err := initializers.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&item).Error; err != nil {
		sendDBError(ctx, err, "failed to add to wishlist")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Product added to wishlist"})
}

func RemoveFromWishlist(ctx *gin.Context) {
	productID, ok := parseID(ctx, "productId")
	if !ok {
		return
	}

	if err := initializers.DB.
		Where("user_id = ? AND product_id = ?", currentUser(ctx).UserID, productID).
		Delete(&models.WishlistItem{}).Error; err != nil {
		sendDBError(ctx, err, "failed to remove from wishlist")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Product removed from wishlist"})
}

func GetWishlistCount(ctx *gin.Context) {
	var count int64
	if err := initializers.DB.Model(&models.WishlistItem{}).Where("user_id = ?", currentUser(ctx).UserID).Count(&count).Error; err != nil {
		sendDBError(ctx, err, "failed to count wishlist")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, count)
}
