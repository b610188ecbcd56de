package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartItem is one (user, product) row of a shopping cart.
type CartItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_cart_user_product" json:"userId"`
	ProductID uint      `gorm:"not null;uniqueIndex:idx_cart_user_product" json:"productId"`
	Product   Product   `gorm:"constraint:OnDelete:CASCADE" json:"product"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	AddedAt   time.Time `gorm:"autoCreateTime" json:"addedAt"`
}

func (CartItem) TableName() string {
	return "cart"
}

func (c CartItem) Subtotal() decimal.Decimal {
	return c.Product.Price.Mul(decimal.NewFromInt(int64(c.Quantity)))
}

// ReconcileCartQuantity returns the quantity a cart row holds after adding
// quantity to existing. The addition is all or nothing: if the product cannot
// cover the new total the row keeps its current quantity.
func ReconcileCartQuantity(product Product, existing, quantity int) (int, error) {
	if quantity < 1 {
		return existing, ErrInvalidQuantity
	}
	if !product.IsActive {
		return existing, ErrProductUnavailable
	}
	if product.Stock < quantity {
		return existing, ErrInsufficientStock
	}

	total := existing + quantity
	if product.Stock < total {
		return existing, ErrInsufficientStock
	}
	return total, nil
}

// CheckCartQuantity validates a quantity that replaces a row's current value.
func CheckCartQuantity(product Product, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	if !product.IsActive {
		return ErrProductUnavailable
	}
	if product.Stock < quantity {
		return ErrInsufficientStock
	}
	return nil
}
