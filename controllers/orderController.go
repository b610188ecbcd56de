package controllers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hsz/sarees-api/initializers"
	"github.com/hsz/sarees-api/models"
	"github.com/hsz/sarees-api/telemetry"
	"github.com/hsz/sarees-api/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const paymentCurrency = "INR"

// placeOrder turns the user's cart into an order. Products and the coupon are
// row-locked so concurrent checkouts cannot oversell stock or coupon usage.
func placeOrder(tx *gorm.DB, userID uint, data models.CheckoutData, now time.Time) (models.Order, error) {
	// products are locked in product_id order across all checkouts
	var items []models.CartItem
	if err := tx.Where("user_id = ?", userID).Order("product_id").Find(&items).Error; err != nil {
		return models.Order{}, err
	}
	if len(items) == 0 {
		return models.Order{}, models.ErrEmptyCart
	}

	order := models.Order{
		UserID:          userID,
		Status:          models.OrderStatusPending,
		PaymentStatus:   models.PaymentStatusPending,
		ShippingAddress: strings.TrimSpace(data.ShippingAddress),
		PhoneNumber:     strings.TrimSpace(data.PhoneNumber),
		OrderDate:       now,
	}

	subtotal := decimal.Zero
	for _, item := range items {
		product, err := lockProduct(tx, item.ProductID)
		if err != nil {
			return models.Order{}, err
		}
		if !product.IsActive {
			return models.Order{}, fmt.Errorf("%w: %s", models.ErrProductUnavailable, product.Name)
		}
		if product.Stock < item.Quantity {
			return models.Order{}, fmt.Errorf("%w for %s", models.ErrInsufficientStock, product.Name)
		}

		line := models.OrderItem{
			ProductID:    product.ID,
			ProductName:  product.Name,
			ProductImage: product.ImagePaths.Primary(),
			Quantity:     item.Quantity,
			Price:        product.Price,
		}
		order.OrderItems = append(order.OrderItems, line)
		subtotal = subtotal.Add(line.Subtotal())

		if err := tx.Model(&models.Product{}).
			Where("id = ?", product.ID).
			Update("stock", gorm.Expr("stock - ?", item.Quantity)).Error; err != nil {
			return models.Order{}, err
		}
	}
	order.Subtotal = subtotal
	order.DiscountAmount = decimal.Zero

	if code := strings.TrimSpace(data.CouponCode); code != "" {
		var coupon models.Coupon
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("code = ?", code).First(&coupon).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Order{}, models.ErrInvalidCoupon
		}
		if err != nil {
			return models.Order{}, err
		}
		if !coupon.IsValid(now) {
			return models.Order{}, models.ErrInvalidCoupon
		}
		if !coupon.MeetsMinimum(subtotal) {
			return models.Order{}, models.ErrCouponMinimumNotMet
		}

		order.DiscountAmount = coupon.CalculateDiscount(subtotal, now)
		order.CouponCode = coupon.Code
		if err := tx.Model(&coupon).Update("used_count", gorm.Expr("used_count + ?", 1)).Error; err != nil {
			return models.Order{}, err
		}
	}

	order.TotalPrice = subtotal.Sub(order.DiscountAmount)
	if !order.TotalPrice.IsPositive() {
		return models.Order{}, models.ErrInvalidOrderTotal
	}

	if err := tx.Create(&order).Error; err != nil {
		return models.Order{}, err
	}
	if err := tx.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error; err != nil {
		return models.Order{}, err
	}
	return order, nil
}

func sendCheckoutError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrEmptyCart):
		sendErrorResponse(ctx, http.StatusBadRequest, "Cart is empty")
	case errors.Is(err, models.ErrProductNotFound):
		sendErrorResponse(ctx, http.StatusBadRequest, msgProductNotFound)
	case errors.Is(err, models.ErrProductUnavailable),
		errors.Is(err, models.ErrInsufficientStock),
		errors.Is(err, models.ErrInvalidCoupon),
		errors.Is(err, models.ErrCouponMinimumNotMet),
		errors.Is(err, models.ErrInvalidOrderTotal):
		sendErrorResponse(ctx, http.StatusBadRequest, err.Error())
	default:
		sendDBError(ctx, err, "checkout failed")
	}
}

// Checkout places an order from the caller's cart.
func Checkout(ctx *gin.Context) {
	var checkoutData models.CheckoutData
	if err := ctx.ShouldBindJSON(&checkoutData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Shipping address and phone number are required")
		return
	}
	claims := currentUser(ctx)

	var order models.Order
	err := initializers.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		order, err = placeOrder(tx, claims.UserID, checkoutData, time.Now())
		return err
	})
	if err != nil {
		sendCheckoutError(ctx, err)
		return
	}

	initializers.Logger.Info("order placed", "order_id", order.ID, "user_id", order.UserID, "total", order.TotalPrice.String())
	telemetry.RecordOrderPlaced(ctx.Request.Context(), order.TotalPrice.InexactFloat64(), order.CouponCode != "")
	if Events != nil {
		if err := Events.OrderCreated(ctx.Request.Context(), order); err != nil {
			initializers.Logger.Error("failed to publish order event", "order_id", order.ID, "error", err)
		}
	}
	if Mail.Configured() {
		go sendOrderConfirmation(Mail, claims.Email, claims.Name, order)
	}

	sendJSONResponse(ctx, http.StatusCreated, order)
}

func sendOrderConfirmation(cfg utils.MailConfig, email, name string, order models.Order) {
	data := utils.OrderConfirmationData{
		Name:            name,
		OrderID:         order.ID,
		Subtotal:        order.Subtotal.StringFixed(2),
		Total:           order.TotalPrice.StringFixed(2),
		ShippingAddress: order.ShippingAddress,
		OrdersURL:       strings.TrimRight(initializers.Config.FrontendURL, "/") + "/orders",
	}
	if order.DiscountAmount.IsPositive() {
		data.Discount = order.DiscountAmount.StringFixed(2)
	}
	for _, item := range order.OrderItems {
		data.Items = append(data.Items, utils.OrderLineData{
			Name:     item.ProductName,
			Quantity: item.Quantity,
			Price:    item.Price.StringFixed(2),
			Subtotal: item.Subtotal().StringFixed(2),
		})
	}

	templatePath := filepath.Join("templates", "order_confirmation.html")
	subject := fmt.Sprintf("Order #%d confirmed", order.ID)
	if err := utils.SendEmail(cfg, email, subject, data, templatePath); err != nil {
		initializers.Logger.Error("error sending order confirmation", "order_id", order.ID, "error", err)
		return
	}
	initializers.Logger.Info("order confirmation sent", "order_id", order.ID)
}

func GetMyOrders(ctx *gin.Context) {
	var orders []models.Order
	if err := initializers.DB.Preload("OrderItems").
		Where("user_id = ?", currentUser(ctx).UserID).
		Order("order_date desc, id desc").
		Find(&orders).Error; err != nil {
		sendDBError(ctx, err, "failed to fetch orders")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, nonNil(orders))
}

func findOwnOrder(ctx *gin.Context) (models.Order, bool) {
	orderID, ok := parseID(ctx, "id")
	if !ok {
		return models.Order{}, false
	}

	var order models.Order
	if err := initializers.DB.Preload("OrderItems").
		Where("id = ? AND user_id = ?", orderID, currentUser(ctx).UserID).
		First(&order).Error; err != nil {
		sendDBError(ctx, err, "failed to fetch order")
		return order, false
	}
	return order, true
}

func GetMyOrder(ctx *gin.Context) {
	order, ok := findOwnOrder(ctx)
	if !ok {
		return
	}
	sendJSONResponse(ctx, http.StatusOK, order)
}

// CreatePayment opens a Razorpay order for the caller's unpaid order.
func CreatePayment(ctx *gin.Context) {
	if Payments == nil {
		sendErrorResponse(ctx, http.StatusServiceUnavailable, msgPaymentsDisabled)
		return
	}
	order, ok := findOwnOrder(ctx)
	if !ok {
		return
	}
	if order.PaymentStatus == models.PaymentStatusSuccess {
		sendErrorResponse(ctx, http.StatusBadRequest, "Order is already paid")
		return
	}
	if order.Status == models.OrderStatusCancelled {
		sendErrorResponse(ctx, http.StatusBadRequest, "Order has been cancelled")
		return
	}

	amount := order.TotalPrice.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	gatewayOrder, err := Payments.CreateOrder(ctx.Request.Context(), amount, paymentCurrency, fmt.Sprintf("order-%d", order.ID))
	if err != nil {
		initializers.Logger.Error("payment gateway error", "order_id", order.ID, "error", err)
		sendErrorResponse(ctx, http.StatusBadGateway, "Failed to initiate payment")
		return
	}

	if err := updateOrder(order.ID, map[string]any{"razorpay_order_id": gatewayOrder.ID}); err != nil {
		sendDBError(ctx, err, "failed to save payment reference")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"orderId":         order.ID,
		"razorpayOrderId": gatewayOrder.ID,
		"amount":          amount,
		"currency":        paymentCurrency,
		"keyId":           Payments.KeyID(),
	})
}

type paymentVerification struct {
	RazorpayPaymentID string `json:"razorpayPaymentId" binding:"required"`
	RazorpaySignature string `json:"razorpaySignature" binding:"required"`
}

// VerifyPayment checks the checkout signature and records the outcome on the
// order's payment status. The fulfilment status is left to the admins.
func VerifyPayment(ctx *gin.Context) {
	if Payments == nil {
		sendErrorResponse(ctx, http.StatusServiceUnavailable, msgPaymentsDisabled)
		return
	}

	var verification paymentVerification
	if err := ctx.ShouldBindJSON(&verification); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	order, ok := findOwnOrder(ctx)
	if !ok {
		return
	}
	if order.RazorpayOrderID == "" {
		sendErrorResponse(ctx, http.StatusBadRequest, "Payment has not been initiated")
		return
	}

	previous := order.PaymentStatus
	verified := Payments.VerifySignature(order.RazorpayOrderID, verification.RazorpayPaymentID, verification.RazorpaySignature)
	updates := map[string]any{"payment_status": models.PaymentStatusFailed}
	order.PaymentStatus = models.PaymentStatusFailed
	if verified {
		updates = map[string]any{
			"payment_status": models.PaymentStatusSuccess,
			"payment_id":     verification.RazorpayPaymentID,
		}
		order.PaymentStatus = models.PaymentStatusSuccess
		order.PaymentID = verification.RazorpayPaymentID
	}
	if err := updateOrder(order.ID, updates); err != nil {
		sendDBError(ctx, err, "failed to record payment")
		return
	}

	publishStatusChange(ctx.Request.Context(), order, "paymentStatus", string(previous), string(order.PaymentStatus))

	if !verified {
		sendErrorResponse(ctx, http.StatusBadRequest, "Payment verification failed")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Payment verified successfully", "order": order})
}

// updateOrder writes columns by id only, leaving loaded order items alone.
func updateOrder(orderID uint, updates map[string]any) error {
	return initializers.DB.Model(&models.Order{}).Where("id = ?", orderID).Updates(updates).Error
}

func publishStatusChange(ctx context.Context, order models.Order, field, from, to string) {
	telemetry.RecordOrderStatusChange(ctx, field, to)
	if Events == nil {
		return
	}
	if err := Events.OrderStatusChanged(ctx, order, field, from, to); err != nil {
		initializers.Logger.Error("failed to publish status change", "order_id", order.ID, "field", field, "error", err)
	}
}
