package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hsz/sarees-api/initializers"
	"github.com/hsz/sarees-api/models"
	"gorm.io/gorm"
)

// ValidateCoupon previews the discount a code gives on orderAmount without
// consuming it.
func ValidateCoupon(ctx *gin.Context) {
	var check models.CouponCheck
	if err := ctx.ShouldBindJSON(&check); err != nil || check.OrderAmount.IsNegative() {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	var coupon models.Coupon
	err := initializers.DB.Where("code = ?", strings.TrimSpace(check.Code)).First(&coupon).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		sendDBError(ctx, err, "failed to fetch coupon")
		return
	}

	now := time.Now()
	switch {
	case err != nil, !coupon.IsValid(now):
		sendJSONResponse(ctx, http.StatusOK, gin.H{"valid": false, "message": "Invalid or expired coupon"})
	case !coupon.MeetsMinimum(check.OrderAmount):
		sendJSONResponse(ctx, http.StatusOK, gin.H{
			"valid":   false,
			"message": "Minimum order amount is " + coupon.MinOrderAmount.Decimal.StringFixed(2),
		})
	default:
		discount := coupon.CalculateDiscount(check.OrderAmount, now)
		sendJSONResponse(ctx, http.StatusOK, gin.H{
			"valid":       true,
			"code":        coupon.Code,
			"discount":    discount,
			"finalAmount": check.OrderAmount.Sub(discount),
		})
	}
}

func GetCoupons(ctx *gin.Context) {
	var coupons []models.Coupon
	if err := initializers.DB.Order("created_at desc, id desc").Find(&coupons).Error; err != nil {
		sendDBError(ctx, err, "failed to fetch coupons")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, nonNil(coupons))
}

func GetCoupon(ctx *gin.Context) {
	couponID, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	var coupon models.Coupon
	if err := initializers.DB.First(&coupon, couponID).Error; err != nil {
		sendDBError(ctx, err, "failed to fetch coupon")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, coupon)
}

func codeTaken(code string, exceptID uint) (bool, error) {
	var count int64
	err := initializers.DB.Model(&models.Coupon{}).Where("code = ? AND id <> ?", code, exceptID).Count(&count).Error
	return count > 0, err
}

// saveCoupon applies the request body to coupon and persists it.
func saveCoupon(ctx *gin.Context, coupon *models.Coupon, status int) {
	var input models.CouponInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}
	if err := input.Apply(coupon, time.Now()); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, err.Error())
		return
	}

	taken, err := codeTaken(coupon.Code, coupon.ID)
	if err != nil {
		sendDBError(ctx, err, "failed to check coupon code")
		return
	}
	if taken {
		sendErrorResponse(ctx, http.StatusBadRequest, "Coupon code already exists")
		return
	}

	if err := initializers.DB.Save(coupon).Error; err != nil {
		sendDBError(ctx, err, "failed to save coupon")
		return
	}
	sendJSONResponse(ctx, status, coupon)
}

func CreateCoupon(ctx *gin.Context) {
	coupon := models.Coupon{IsActive: true}
	saveCoupon(ctx, &coupon, http.StatusCreated)
}

func UpdateCoupon(ctx *gin.Context) {
	couponID, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	var coupon models.Coupon
	if err := initializers.DB.First(&coupon, couponID).Error; err != nil {
		sendDBError(ctx, err, "failed to fetch coupon")
		return
	}
	saveCoupon(ctx, &coupon, http.StatusOK)
}

func DeleteCoupon(ctx *gin.Context) {
	couponID, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	result := initializers.DB.Delete(&models.Coupon{}, couponID)
	if result.Error != nil {
		sendDBError(ctx, result.Error, "failed to delete coupon")
		return
	}
	if result.RowsAffected == 0 {
		sendNotFound(ctx)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Coupon deleted successfully"})
}

func ToggleCouponActive(ctx *gin.Context) {
	couponID, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	var coupon models.Coupon
	if err := initializers.DB.First(&coupon, couponID).Error; err != nil {
		sendDBError(ctx, err, "failed to fetch coupon")
		return
	}
	coupon.IsActive = !coupon.IsActive
	if err := initializers.DB.Model(&coupon).Update("is_active", coupon.IsActive).Error; err != nil {
		sendDBError(ctx, err, "failed to toggle coupon")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, coupon)
}
