package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/hsz/sarees-api/initializers"
	"github.com/hsz/sarees-api/models"
)

func GetActiveBanners(ctx *gin.Context) {
	var banners []models.Banner
	if err := initializers.DB.Where("is_active = ?", true).Order("display_order asc, id asc").Find(&banners).Error; err != nil {
		sendDBError(ctx, err, "failed to fetch banners")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, nonNil(banners))
}

func GetAllBanners(ctx *gin.Context) {
	var banners []models.Banner
	if err := initializers.DB.Order("display_order asc, created_at desc, id desc").Find(&banners).Error; err != nil {
		sendDBError(ctx, err, "failed to fetch banners")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, nonNil(banners))
}

func GetBanner(ctx *gin.Context) {
	bannerID, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	var banner models.Banner
	if err := initializers.DB.First(&banner, bannerID).Error; err != nil {
		sendDBError(ctx, err, "failed to fetch banner")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, banner)
}

// bindBanner reads a banner from JSON, or from a multipart form whose
// "image" file is uploaded to the image store.
func bindBanner(ctx *gin.Context) (models.BannerInput, bool) {
	var input models.BannerInput

	if !strings.HasPrefix(ctx.ContentType(), "multipart/") {
		if err := ctx.ShouldBindJSON(&input); err != nil {
			sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
			return input, false
		}
		return input, true
	}

	if err := ctx.ShouldBind(&input); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return input, false
	}

	file, err := ctx.FormFile("image")
	if err != nil {
		// no file part; keep whatever imageUrl the form carried
		return input, true
	}
	if Images == nil {
		sendErrorResponse(ctx, http.StatusServiceUnavailable, msgUploadsDisabled)
		return input, false
	}

	f, err := file.Open()
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Unable to read uploaded image")
		return input, false
	}
	defer f.Close()

	location, err := Images.Upload(ctx.Request.Context(), "banners", file.Filename, file.Header.Get("Content-Type"), f)
	if err != nil {
		initializers.Logger.Error("error uploading banner image", "file", file.Filename, "error", err)
		sendErrorResponse(ctx, http.StatusBadGateway, "Failed to upload image")
		return input, false
	}
	input.ImageURL = location
	return input, true
}

func CreateBanner(ctx *gin.Context) {
	input, ok := bindBanner(ctx)
	if !ok {
		return
	}

	banner := models.Banner{IsActive: true}
	input.Apply(&banner)
	if banner.ImageURL == "" {
		sendErrorResponse(ctx, http.StatusBadRequest, "Banner image is required")
		return
	}

	if err := initializers.DB.Create(&banner).Error; err != nil {
		sendDBError(ctx, err, "failed to create banner")
		return
	}
	sendJSONResponse(ctx, http.StatusCreated, banner)
}

func UpdateBanner(ctx *gin.Context) {
	bannerID, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	var banner models.Banner
	if err := initializers.DB.First(&banner, bannerID).Error; err != nil {
		sendDBError(ctx, err, "failed to fetch banner")
		return
	}

	input, ok := bindBanner(ctx)
	if !ok {
		return
	}
	input.Apply(&banner)

	if err := initializers.DB.Save(&banner).Error; err != nil {
		sendDBError(ctx, err, "failed to update banner")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, banner)
}

func DeleteBanner(ctx *gin.Context) {
	bannerID, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	result := initializers.DB.Delete(&models.Banner{}, bannerID)
	if result.Error != nil {
		sendDBError(ctx, result.Error, "failed to delete banner")
		return
	}
	if result.RowsAffected == 0 {
		sendNotFound(ctx)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Banner deleted successfully"})
}
