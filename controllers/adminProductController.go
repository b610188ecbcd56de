package controllers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hsz/sarees-api/initializers"
	"github.com/hsz/sarees-api/models"
	"github.com/shopspring/decimal"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"
)

const lowStockThreshold = 10

var productSheetHeaders = []string{
	"ID", "Name", "Category", "Description", "Price", "Stock",
	"Color", "Fabric", "Size", "Featured", "Active", "Images", "CreatedAt", "UpdatedAt",
}

func AdminGetProducts(ctx *gin.Context) {
	var products []models.Product
	if err := initializers.DB.Order("id desc").Find(&products).Error; err != nil {
		sendDBError(ctx, err, "failed to fetch products")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, nonNil(products))
}

func findProduct(ctx *gin.Context) (models.Product, bool) {
	productID, ok := parseID(ctx, "id")
	if !ok {
		return models.Product{}, false
	}

	var product models.Product
	if err := initializers.DB.First(&product, productID).Error; err != nil {
		sendDBError(ctx, err, "failed to fetch product")
		return product, false
	}
	return product, true
}

func AdminGetProduct(ctx *gin.Context) {
	product, ok := findProduct(ctx)
	if !ok {
		return
	}
	sendJSONResponse(ctx, http.StatusOK, product)
}

func bindProduct(ctx *gin.Context, product *models.Product) bool {
	var input models.ProductInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return false
	}
	if err := input.Apply(product); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

func CreateProduct(ctx *gin.Context) {
	product := models.Product{IsActive: true}
	if !bindProduct(ctx, &product) {
		return
	}

	if err := initializers.DB.Create(&product).Error; err != nil {
		sendDBError(ctx, err, "failed to create product")
		return
	}
	sendJSONResponse(ctx, http.StatusCreated, product)
}

func UpdateProduct(ctx *gin.Context) {
	product, ok := findProduct(ctx)
	if !ok {
		return
	}
	if !bindProduct(ctx, &product) {
		return
	}

	if err := initializers.DB.Save(&product).Error; err != nil {
		sendDBError(ctx, err, "failed to update product")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, product)
}

// DeleteProduct removes the product with its cart, wishlist and review rows.
// Order items keep their snapshot.
func DeleteProduct(ctx *gin.Context) {
	product, ok := findProduct(ctx)
	if !ok {
		return
	}

	err := initializers.DB.Transaction(func(tx *gorm.DB) error {
		for _, dependent := range []any{&models.CartItem{}, &models.WishlistItem{}, &models.Review{}} {
			if err := tx.Where("product_id = ?", product.ID).Delete(dependent).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&product).Error
	})
	if err != nil {
		sendDBError(ctx, err, "failed to delete product")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

func toggleProductFlag(ctx *gin.Context, column string, flip func(p *models.Product) bool) {
	product, ok := findProduct(ctx)
	if !ok {
		return
	}
	value := flip(&product)
	if err := initializers.DB.Model(&product).Update(column, value).Error; err != nil {
		sendDBError(ctx, err, "failed to update "+column)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, product)
}

func ToggleProductFeatured(ctx *gin.Context) {
	toggleProductFlag(ctx, "is_featured", func(p *models.Product) bool {
		p.IsFeatured = !p.IsFeatured
		return p.IsFeatured
	})
}

func ToggleProductActive(ctx *gin.Context) {
	toggleProductFlag(ctx, "is_active", func(p *models.Product) bool {
		p.IsActive = !p.IsActive
		return p.IsActive
	})
}

func UpdateProductStock(ctx *gin.Context) {
	var body struct {
		Stock *int `json:"stock" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil || *body.Stock < 0 {
		sendErrorResponse(ctx, http.StatusBadRequest, models.ErrNegativeStock.Error())
		return
	}

	product, ok := findProduct(ctx)
	if !ok {
		return
	}
	product.Stock = *body.Stock
	if err := initializers.DB.Model(&product).Update("stock", product.Stock).Error; err != nil {
		sendDBError(ctx, err, "failed to update stock")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, product)
}

func AdminGetCategories(ctx *gin.Context) {
	sendDistinct(ctx, initializers.DB.Model(&models.Product{}), "category")
}

func AdminGetColors(ctx *gin.Context) {
	sendDistinct(ctx, initializers.DB.Model(&models.Product{}), "color")
}

func AdminGetFabrics(ctx *gin.Context) {
	sendDistinct(ctx, initializers.DB.Model(&models.Product{}), "fabric")
}

func AdminGetFeaturedProducts(ctx *gin.Context) {
	var products []models.Product
	if err := initializers.DB.Where("is_featured = ?", true).Order("id desc").Find(&products).Error; err != nil {
		sendDBError(ctx, err, "failed to fetch featured products")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, nonNil(products))
}

// GetLowStockProducts lists active products with stock below ?threshold.
func GetLowStockProducts(ctx *gin.Context) {
	threshold, ok := queryInt(ctx, "threshold", strconv.Itoa(lowStockThreshold))
	if !ok {
		return
	}

	var products []models.Product
	if err := activeProducts().Where("stock < ?", threshold).Order("stock asc, id asc").Find(&products).Error; err != nil {
		sendDBError(ctx, err, "failed to fetch low stock products")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, nonNil(products))
}

func GetProductStats(ctx *gin.Context) {
	counts := map[string]*gorm.DB{
		"totalProducts":    initializers.DB.Model(&models.Product{}),
		"activeProducts":   initializers.DB.Model(&models.Product{}).Where("is_active = ?", true),
		"featuredProducts": initializers.DB.Model(&models.Product{}).Where("is_featured = ?", true),
		"lowStockProducts": initializers.DB.Model(&models.Product{}).Where("stock < ?", lowStockThreshold),
	}

	stats := gin.H{}
	for key, query := range counts {
		var count int64
		if err := query.Count(&count).Error; err != nil {
			sendDBError(ctx, err, "failed to compute product stats")
			return
		}
		stats[key] = count
	}
	sendJSONResponse(ctx, http.StatusOK, stats)
}

// UploadProductImages stores every "images" file of a multipart form and
// appends the resulting URLs to the product's image list.
func UploadProductImages(ctx *gin.Context) {
	if Images == nil {
		sendErrorResponse(ctx, http.StatusServiceUnavailable, msgUploadsDisabled)
		return
	}

	form, err := ctx.MultipartForm()
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid form data")
		return
	}
	files := form.File["images"]
	if len(files) == 0 {
		sendErrorResponse(ctx, http.StatusBadRequest, "No files uploaded")
		return
	}

	product, ok := findProduct(ctx)
	if !ok {
		return
	}

	var uploadedUrls []string
	var failedUploads []string
	for _, file := range files {
		f, openErr := file.Open()
		if openErr != nil {
			initializers.Logger.Error("error opening file", "file", file.Filename, "error", openErr)
			failedUploads = append(failedUploads, file.Filename)
			continue
		}

		location, uploadErr := Images.Upload(ctx.Request.Context(), "products/"+strconv.FormatUint(uint64(product.ID), 10), file.Filename, file.Header.Get("Content-Type"), f)
		f.Close()
		if uploadErr != nil {
			initializers.Logger.Error("error uploading file", "file", file.Filename, "error", uploadErr)
			failedUploads = append(failedUploads, file.Filename)
			continue
		}
		uploadedUrls = append(uploadedUrls, location)
	}

	if len(uploadedUrls) > 0 {
		product.ImagePaths = append(product.ImagePaths, uploadedUrls...)
		if err := initializers.DB.Model(&product).Update("image_paths", product.ImagePaths).Error; err != nil {
			sendDBError(ctx, err, "failed to save image paths")
			return
		}
	}

	response := gin.H{
		"message": "Files processed",
		"urls":    nonNil(uploadedUrls),
		"product": product,
	}
	if len(failedUploads) > 0 {
		response["failed"] = failedUploads
	}
	sendJSONResponse(ctx, http.StatusOK, response)
}

// ExportProducts streams the whole catalog as an xlsx workbook.
func ExportProducts(ctx *gin.Context) {
	var products []models.Product
	if err := initializers.DB.Order("id asc").Find(&products).Error; err != nil {
		sendDBError(ctx, err, "failed to fetch products")
		return
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Products")
	if err != nil {
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to create Excel sheet")
		return
	}

	headerRow := sheet.AddRow()
	for _, h := range productSheetHeaders {
		headerRow.AddCell().SetValue(h)
	}

	for _, p := range products {
		images, err := json.Marshal([]string(p.ImagePaths))
		if err != nil {
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to write Excel file")
			return
		}

		row := sheet.AddRow()
		row.AddCell().SetValue(p.ID)
		row.AddCell().SetValue(p.Name)
		row.AddCell().SetValue(p.Category)
		row.AddCell().SetValue(p.Description)
		row.AddCell().SetValue(p.Price.StringFixed(2))
		row.AddCell().SetValue(p.Stock)
		row.AddCell().SetValue(p.Color)
		row.AddCell().SetValue(p.Fabric)
		row.AddCell().SetValue(p.Size)
		row.AddCell().SetValue(strconv.FormatBool(p.IsFeatured))
		row.AddCell().SetValue(strconv.FormatBool(p.IsActive))
		row.AddCell().SetValue(string(images))
		row.AddCell().SetValue(p.CreatedAt.Format(time.DateTime))
		row.AddCell().SetValue(p.UpdatedAt.Format(time.DateTime))
	}

	var buf bytes.Buffer
	if err := file.Write(&buf); err != nil {
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to write Excel file")
		return
	}

	ctx.Header("Content-Disposition", "attachment; filename=products.xlsx")
	ctx.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// ImportProducts reads a workbook laid out like the export. Rows whose ID
// matches an existing product update it; the rest are created.
func ImportProducts(ctx *gin.Context) {
	header, err := ctx.FormFile("file")
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Excel file is required")
		return
	}
	f, err := header.Open()
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to open Excel file")
		return
	}
	defer f.Close()

	workbook, err := xlsx.OpenReaderAt(f, header.Size)
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse Excel file")
		return
	}
	if len(workbook.Sheets) == 0 || workbook.Sheets[0].MaxRow < 2 {
		sendErrorResponse(ctx, http.StatusBadRequest, "Excel file is empty or missing header row")
		return
	}

	created, updated, skipped := 0, 0, 0
	err = initializers.DB.Transaction(func(tx *gorm.DB) error {
		for _, row := range workbook.Sheets[0].Rows[1:] {
			product, id, ok := productFromRow(row)
			if !ok {
				skipped++
				continue
			}

			if id > 0 {
				var existing models.Product
				err := tx.First(&existing, id).Error
				if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
					return err
				}
				if err == nil {
					product.ID = existing.ID
					product.CreatedAt = existing.CreatedAt
					if len(product.ImagePaths) == 0 {
						product.ImagePaths = existing.ImagePaths
					}
					if err := tx.Save(&product).Error; err != nil {
						return err
					}
					updated++
					continue
				}
			}
			if err := tx.Create(&product).Error; err != nil {
				return err
			}
			created++
		}
		return nil
	})
	if err != nil {
		sendDBError(ctx, err, "failed to import products")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"message": "Products imported",
		"created": created,
		"updated": updated,
		"skipped": skipped,
	})
}

func productFromRow(row *xlsx.Row) (models.Product, uint, bool) {
	if row == nil || len(row.Cells) < 6 {
		return models.Product{}, 0, false
	}
	get := func(index int) string {
		if index < len(row.Cells) {
			return strings.TrimSpace(row.Cells[index].String())
		}
		return ""
	}

	price, err := decimal.NewFromString(get(4))
	if err != nil {
		return models.Product{}, 0, false
	}
	stock, err := strconv.Atoi(get(5))
	if err != nil {
		return models.Product{}, 0, false
	}

	product := models.Product{
		Name:        get(1),
		Category:    get(2),
		Description: get(3),
		Price:       price,
		Stock:       stock,
		Color:       get(6),
		Fabric:      get(7),
		Size:        get(8),
		IsFeatured:  parseBoolCell(get(9), false),
		IsActive:    parseBoolCell(get(10), true),
		ImagePaths:  models.ParseImagePathsCell(get(11)),
	}
	if product.Name == "" || product.Category == "" || product.Validate() != nil {
		return models.Product{}, 0, false
	}

	id, _ := strconv.ParseUint(get(0), 10, 64)
	return product, uint(id), true
}

func parseBoolCell(value string, fallback bool) bool {
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}
