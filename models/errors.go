package models

import "errors"

var (
	ErrProductNotFound     = errors.New("product not found")
	ErrProductUnavailable  = errors.New("product is not available")
	ErrInsufficientStock   = errors.New("insufficient stock")
	ErrInvalidQuantity     = errors.New("quantity must be at least 1")
	ErrInvalidPrice        = errors.New("price must be greater than zero")
	ErrNegativeStock       = errors.New("stock cannot be negative")
	ErrEmptyCart           = errors.New("cart is empty")
	ErrInvalidCoupon       = errors.New("invalid coupon code")
	ErrCouponMinimumNotMet = errors.New("order amount is below the coupon minimum")
	ErrInvalidDiscount     = errors.New("discount percent must be between 0 and 100")
	ErrNegativeCouponLimit = errors.New("coupon amounts cannot be negative")
	ErrInvalidCouponWindow = errors.New("coupon must end after it starts")
	ErrInvalidOrderTotal   = errors.New("order total must be greater than zero")
	ErrInvalidOrderStatus  = errors.New("invalid order status")
	ErrInvalidPaymentState = errors.New("invalid payment status")
	ErrInvalidRole         = errors.New("invalid role")
)
