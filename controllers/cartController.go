package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hsz/sarees-api/initializers"
	"github.com/hsz/sarees-api/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var errNotOwner = errors.New("cart row belongs to another user")

// lockProduct reads a product with a row lock held until tx ends.
func lockProduct(tx *gorm.DB, productID uint) (models.Product, error) {
	var product models.Product
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&product, productID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return product, models.ErrProductNotFound
	}
	return product, err
}

// sendCartError answers the business-rule failures of the cart with 400.
func sendCartError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrProductNotFound), errors.Is(err, models.ErrProductUnavailable):
		sendErrorResponse(ctx, http.StatusBadRequest, msgProductNotFound)
	case errors.Is(err, models.ErrInsufficientStock):
		sendErrorResponse(ctx, http.StatusBadRequest, msgInsufficientStock)
	case errors.Is(err, models.ErrInvalidQuantity):
		sendErrorResponse(ctx, http.StatusBadRequest, "Quantity must be at least 1")
	case errors.Is(err, errNotOwner):
		sendErrorResponse(ctx, http.StatusForbidden, msgUnauthorized)
	default:
		sendDBError(ctx, err, "cart update failed")
	}
}

func queryInt(ctx *gin.Context, key, fallback string) (int, bool) {
	value, err := strconv.Atoi(ctx.DefaultQuery(key, fallback))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "invalid "+key)
		return 0, false
	}
	return value, true
}

func GetCart(ctx *gin.Context) {
	var items []models.CartItem
	if err := initializers.DB.Preload("Product").
		Where("user_id = ?", currentUser(ctx).UserID).
		Order("added_at desc, id desc").
		Find(&items).Error; err != nil {
		sendDBError(ctx, err, "failed to fetch cart")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, nonNil(items))
}

// AddToCart adds quantity of a product to the caller's cart. Adding to an
// existing row is all or nothing against current stock.
func AddToCart(ctx *gin.Context) {
	productID, err := strconv.ParseUint(ctx.Query("productId"), 10, 64)
	if err != nil || productID == 0 {
		sendErrorResponse(ctx, http.StatusBadRequest, "invalid productId")
		return
	}
	quantity, ok := queryInt(ctx, "quantity", "1")
	if !ok {
		return
	}
	userID := currentUser(ctx).UserID

	err = initializers.DB.Transaction(func(tx *gorm.DB) error {
		product, err := lockProduct(tx, uint(productID))
		if err != nil {
			return err
		}

		var item models.CartItem
		err = tx.Where("user_id = ? AND product_id = ?", userID, product.ID).First(&item).Error
		found := err == nil
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		newQuantity, err := models.ReconcileCartQuantity(product, item.Quantity, quantity)
		if err != nil {
			return err
		}

		if found {
			return tx.Model(&item).Update("quantity", newQuantity).Error
		}
		item = models.CartItem{UserID: userID, ProductID: product.ID, Quantity: newQuantity}
		return tx.Omit(clause.Associations).Create(&item).Error
	})
	if err != nil {
		sendCartError(ctx, err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Product added to cart successfully"})
}

// ownedCartItem loads a cart row and checks that it belongs to userID.
func ownedCartItem(tx *gorm.DB, cartID, userID uint) (models.CartItem, error) {
	var item models.CartItem
	if err := tx.First(&item, cartID).Error; err != nil {
		return item, err
	}
	if item.UserID != userID {
		return item, errNotOwner
	}
	return item, nil
}

func UpdateCartItem(ctx *gin.Context) {
	cartID, ok := parseID(ctx, "cartId")
	if !ok {
		return
	}
	if _, present := ctx.GetQuery("quantity"); !present {
		sendErrorResponse(ctx, http.StatusBadRequest, "quantity is required")
		return
	}
	quantity, ok := queryInt(ctx, "quantity", "")
	if !ok {
		return
	}
	userID := currentUser(ctx).UserID

	err := initializers.DB.Transaction(func(tx *gorm.DB) error {
		item, err := ownedCartItem(tx, cartID, userID)
		if err != nil {
			return err
		}

		product, err := lockProduct(tx, item.ProductID)
		if err != nil {
			return err
		}
		if err := models.CheckCartQuantity(product, quantity); err != nil {
			return err
		}
		return tx.Model(&item).Update("quantity", quantity).Error
	})
	if err != nil {
		sendCartError(ctx, err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Cart updated successfully"})
}

func RemoveFromCart(ctx *gin.Context) {
	cartID, ok := parseID(ctx, "cartId")
	if !ok {
		return
	}

	item, err := ownedCartItem(initializers.DB, cartID, currentUser(ctx).UserID)
	if err != nil {
		sendCartError(ctx, err)
		return
	}
	if err := initializers.DB.Delete(&item).Error; err != nil {
		sendDBError(ctx, err, "failed to remove cart item")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Product removed from cart"})
}

func ClearCart(ctx *gin.Context) {
	if err := initializers.DB.Where("user_id = ?", currentUser(ctx).UserID).Delete(&models.CartItem{}).Error; err != nil {
		sendDBError(ctx, err, "failed to clear cart")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Cart cleared successfully"})
}

// GetCartCount returns the number of rows, not the number of units.
func GetCartCount(ctx *gin.Context) {
	var count int64
	if err := initializers.DB.Model(&models.CartItem{}).Where("user_id = ?", currentUser(ctx).UserID).Count(&count).Error; err != nil {
		sendDBError(ctx, err, "failed to count cart items")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, count)
}

func GetCartTotal(ctx *gin.Context) {
	var items []models.CartItem
	if err := initializers.DB.Preload("Product").Where("user_id = ?", currentUser(ctx).UserID).Find(&items).Error; err != nil {
		sendDBError(ctx, err, "failed to fetch cart")
		return
	}

	total := decimal.Zero
	units := 0
	for _, item := range items {
		total = total.Add(item.Subtotal())
		units += item.Quantity
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"total": total, "itemCount": units})
}
