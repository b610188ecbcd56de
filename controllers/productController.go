package controllers

import (
	"math"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/hsz/sarees-api/initializers"
	"github.com/hsz/sarees-api/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const defaultPageSize = 12

var productSortColumns = map[string]string{
	"id":        "id",
	"name":      "name",
	"price":     "price",
	"stock":     "stock",
	"createdAt": "created_at",
}

type productDetail struct {
	models.Product
	models.RatingSummary
}

func activeProducts() *gorm.DB {
	return initializers.DB.Model(&models.Product{}).Where("is_active = ?", true)
}

func productOrder(ctx *gin.Context) string {
	column, ok := productSortColumns[ctx.DefaultQuery("sortBy", "id")]
	if !ok {
		column = "id"
	}
	if strings.EqualFold(ctx.DefaultQuery("sortDir", "desc"), "asc") {
		return column + " asc"
	}
	return column + " desc"
}

// findProductPage counts and loads one page of query. order may be empty.
func findProductPage(ctx *gin.Context, query *gorm.DB, order string) {
	pageIndex, size := pageParams(ctx, defaultPageSize)

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		sendDBError(ctx, err, "failed to count products")
		return
	}

	var products []models.Product
	if order != "" {
		query = query.Order(order)
	}
	if err := query.Limit(size).Offset(pageIndex * size).Find(&products).Error; err != nil {
		sendDBError(ctx, err, "failed to fetch products")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, newPage(products, total, pageIndex, size))
}

func parseDecimalQuery(ctx *gin.Context, key string) (decimal.NullDecimal, bool) {
	raw := strings.TrimSpace(ctx.Query(key))
	if raw == "" {
		return decimal.NullDecimal{}, true
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "invalid "+key)
		return decimal.NullDecimal{}, false
	}
	return decimal.NewNullDecimal(value), true
}

// GetProducts lists active products with optional category, price range,
// color and fabric filters.
func GetProducts(ctx *gin.Context) {
	minPrice, ok := parseDecimalQuery(ctx, "minPrice")
	if !ok {
		return
	}
	maxPrice, ok := parseDecimalQuery(ctx, "maxPrice")
	if !ok {
		return
	}

	query := activeProducts()
	if category := ctx.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if minPrice.Valid {
		query = query.Where("price >= ?", minPrice.Decimal)
	}
	if maxPrice.Valid {
		query = query.Where("price <= ?", maxPrice.Decimal)
	}
	if color := ctx.Query("color"); color != "" {
		query = query.Where("color = ?", color)
	}
	if fabric := ctx.Query("fabric"); fabric != "" {
		query = query.Where("fabric = ?", fabric)
	}

	findProductPage(ctx, query, productOrder(ctx))
}

func GetProduct(ctx *gin.Context) {
	productID, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	var product models.Product
	if err := activeProducts().First(&product, productID).Error; err != nil {
		sendDBError(ctx, err, "failed to fetch product")
		return
	}

	summary, err := ratingSummary(initializers.DB, product.ID)
	if err != nil {
		sendDBError(ctx, err, "failed to summarise ratings")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, productDetail{Product: product, RatingSummary: summary})
}

func GetFeaturedProducts(ctx *gin.Context) {
	var products []models.Product
	if err := activeProducts().Where("is_featured = ?", true).Order("id desc").Find(&products).Error; err != nil {
		sendDBError(ctx, err, "failed to fetch featured products")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, nonNil(products))
}

// SearchProducts matches keyword case-insensitively against name,
// description and category.
func SearchProducts(ctx *gin.Context) {
	keyword := strings.ToLower(strings.TrimSpace(ctx.Query("keyword")))
	if keyword == "" {
		sendErrorResponse(ctx, http.StatusBadRequest, "keyword is required")
		return
	}

	pattern := "%" + keyword + "%"
	query := activeProducts().Where(
		"LOWER(name) LIKE ? OR LOWER(description) LIKE ? OR LOWER(category) LIKE ?",
		pattern, pattern, pattern,
	)
	findProductPage(ctx, query, "id desc")
}

func GetProductsByCategory(ctx *gin.Context) {
	findProductPage(ctx, activeProducts().Where("category = ?", ctx.Param("category")), "id desc")
}

func distinctProductValues(query *gorm.DB, column string) ([]string, error) {
	values := []string{}
	err := query.Where(column+" IS NOT NULL AND "+column+" <> ''").
		Distinct().
		Order(column).
		Pluck(column, &values).Error
	return values, err
}

func sendDistinct(ctx *gin.Context, query *gorm.DB, column string) {
	values, err := distinctProductValues(query, column)
	if err != nil {
		sendDBError(ctx, err, "failed to list "+column+" values")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, values)
}

func GetCategories(ctx *gin.Context) {
	sendDistinct(ctx, activeProducts(), "category")
}

func GetColors(ctx *gin.Context) {
	sendDistinct(ctx, activeProducts(), "color")
}

func GetFabrics(ctx *gin.Context) {
	sendDistinct(ctx, activeProducts(), "fabric")
}

func ratingSummary(db *gorm.DB, productID uint) (models.RatingSummary, error) {
	var row struct {
		AverageRating float64
		ReviewCount   int64
	}
	err := db.Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0) AS average_rating, COUNT(*) AS review_count").
		Where("product_id = ?", productID).
		Scan(&row).Error
	if err != nil {
		return models.RatingSummary{}, err
	}
	return models.RatingSummary{
		AverageRating: math.Round(row.AverageRating*10) / 10,
		ReviewCount:   row.ReviewCount,
	}, nil
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
