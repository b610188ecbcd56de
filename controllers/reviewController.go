package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hsz/sarees-api/initializers"
	"github.com/hsz/sarees-api/models"
	"gorm.io/gorm/clause"
)

func GetProductReviews(ctx *gin.Context) {
	productID, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	var reviews []models.Review
	if err := initializers.DB.Where("product_id = ?", productID).Order("created_at desc").Find(&reviews).Error; err != nil {
		sendDBError(ctx, err, "failed to fetch reviews")
		return
	}

	summary, err := ratingSummary(initializers.DB, productID)
	if err != nil {
		sendDBError(ctx, err, "failed to summarise ratings")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"reviews":       nonNil(reviews),
		"averageRating": summary.AverageRating,
		"reviewCount":   summary.ReviewCount,
	})
}

// CreateReview records the caller's single review of an active product.
func CreateReview(ctx *gin.Context) {
	productID, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	var reviewData models.ReviewData
	if err := ctx.ShouldBindJSON(&reviewData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Rating must be between 1 and 5")
		return
	}

	var product models.Product
	if err := activeProducts().First(&product, productID).Error; err != nil {
		sendDBError(ctx, err, "failed to fetch product")
		return
	}

	claims := currentUser(ctx)
	review := models.Review{
		ProductID:    productID,
		UserID:       claims.UserID,
		ReviewerName: claims.Name,
		Rating:       reviewData.Rating,
		Comment:      reviewData.Comment,
	}
	// one review per product and user is enforced by idx_review_product_user
	result := initializers.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&review)
	if result.Error != nil {
		sendDBError(ctx, result.Error, "failed to create review")
		return
	}
	if result.RowsAffected == 0 {
		sendErrorResponse(ctx, http.StatusBadRequest, "You have already reviewed this product")
		return
	}

	sendJSONResponse(ctx, http.StatusCreated, review)
}

func DeleteReview(ctx *gin.Context) {
	productID, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	reviewID, ok := parseID(ctx, "reviewId")
	if !ok {
		return
	}

	var review models.Review
	if err := initializers.DB.Where("id = ? AND product_id = ?", reviewID, productID).First(&review).Error; err != nil {
		sendDBError(ctx, err, "failed to fetch review")
		return
	}

	claims := currentUser(ctx)
	if review.UserID != claims.UserID && !claims.IsAdmin() {
		sendErrorResponse(ctx, http.StatusForbidden, msgUnauthorized)
		return
	}

	if err := initializers.DB.Delete(&review).Error; err != nil {
		sendDBError(ctx, err, "failed to delete review")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Review deleted successfully"})
}
