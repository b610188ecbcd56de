package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Coupon struct {
	ID                uint                `gorm:"primaryKey" json:"id"`
	Code              string              `gorm:"size:50;not null;uniqueIndex" json:"code"`
	DiscountPercent   decimal.Decimal     `gorm:"type:decimal(5,2);not null" json:"discountPercent"`
	MinOrderAmount    decimal.NullDecimal `gorm:"type:decimal(10,2)" json:"minOrderAmount"`
	MaxDiscountAmount decimal.NullDecimal `gorm:"type:decimal(10,2)" json:"maxDiscountAmount"`
	ValidFrom         time.Time           `gorm:"not null" json:"validFrom"`
	ValidTill         *time.Time          `json:"validTill"`
	UsageLimit        *int                `json:"usageLimit"`
	UsedCount         int                 `gorm:"not null" json:"usedCount"`
	IsActive          bool                `gorm:"not null" json:"isActive"`
	Description       string              `gorm:"size:500" json:"description"`
	CreatedAt         time.Time           `json:"createdAt"`
	UpdatedAt         time.Time           `json:"updatedAt"`
}

// IsValid reports whether the coupon can be redeemed at now: it must be
// active, inside [ValidFrom, ValidTill) and below its usage limit.
func (c Coupon) IsValid(now time.Time) bool {
	if !c.IsActive {
		return false
	}
	if now.Before(c.ValidFrom) {
		return false
	}
	if c.ValidTill != nil && !now.Before(*c.ValidTill) {
		return false
	}
	if c.UsageLimit != nil && c.UsedCount >= *c.UsageLimit {
		return false
	}
	return true
}

// MeetsMinimum reports whether orderAmount reaches the coupon's minimum.
func (c Coupon) MeetsMinimum(orderAmount decimal.Decimal) bool {
	return !c.MinOrderAmount.Valid || !orderAmount.LessThan(c.MinOrderAmount.Decimal)
}

// CalculateDiscount returns the percentage discount on orderAmount, capped at
// MaxDiscountAmount, or zero when the coupon does not apply.
func (c Coupon) CalculateDiscount(orderAmount decimal.Decimal, now time.Time) decimal.Decimal {
	if !c.IsValid(now) || !c.MeetsMinimum(orderAmount) {
		return decimal.Zero
	}

	discount := orderAmount.Mul(c.DiscountPercent).Div(hundred).Round(2)
	if c.MaxDiscountAmount.Valid && discount.GreaterThan(c.MaxDiscountAmount.Decimal) {
		discount = c.MaxDiscountAmount.Decimal
	}
	return discount
}

func (c Coupon) Validate() error {
	if c.DiscountPercent.IsNegative() || c.DiscountPercent.GreaterThan(hundred) {
		return ErrInvalidDiscount
	}
	if (c.MinOrderAmount.Valid && c.MinOrderAmount.Decimal.IsNegative()) ||
		(c.MaxDiscountAmount.Valid && c.MaxDiscountAmount.Decimal.IsNegative()) {
		return ErrNegativeCouponLimit
	}
	if c.ValidTill != nil && !c.ValidTill.After(c.ValidFrom) {
		return ErrInvalidCouponWindow
	}
	return nil
}

type CouponInput struct {
	Code              string              `json:"code" binding:"required,max=50"`
	DiscountPercent   decimal.Decimal     `json:"discountPercent"`
	MinOrderAmount    decimal.NullDecimal `json:"minOrderAmount"`
	MaxDiscountAmount decimal.NullDecimal `json:"maxDiscountAmount"`
	ValidFrom         *time.Time          `json:"validFrom"`
	ValidTill         *time.Time          `json:"validTill"`
	UsageLimit        *int                `json:"usageLimit" binding:"omitempty,min=0"`
	IsActive          *bool               `json:"isActive"`
	Description       string              `json:"description" binding:"max=500"`
}

// Apply copies the input onto c. A missing ValidFrom means "from now".
func (in CouponInput) Apply(c *Coupon, now time.Time) error {
	c.Code = strings.TrimSpace(in.Code)
	c.DiscountPercent = in.DiscountPercent
	c.MinOrderAmount = in.MinOrderAmount
	c.MaxDiscountAmount = in.MaxDiscountAmount
	if in.ValidFrom != nil {
		c.ValidFrom = *in.ValidFrom
	} else if c.ValidFrom.IsZero() {
		c.ValidFrom = now
	}
	c.ValidTill = in.ValidTill
	c.UsageLimit = in.UsageLimit
	if in.IsActive != nil {
		c.IsActive = *in.IsActive
	}
	c.Description = in.Description
	return c.Validate()
}

type CouponCheck struct {
	Code        string          `json:"code" binding:"required"`
	OrderAmount decimal.Decimal `json:"orderAmount"`
}
