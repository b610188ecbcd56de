package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusConfirmed  OrderStatus = "CONFIRMED"
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusShipped    OrderStatus = "SHIPPED"
	OrderStatusDelivered  OrderStatus = "DELIVERED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

var OrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

func (s OrderStatus) IsValid() bool {
	for _, status := range OrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// ParseOrderStatus accepts only the exact enumeration member names.
func ParseOrderStatus(value string) (OrderStatus, error) {
	status := OrderStatus(value)
	if !status.IsValid() {
		return "", ErrInvalidOrderStatus
	}
	return status, nil
}

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "PENDING"
	PaymentStatusSuccess  PaymentStatus = "SUCCESS"
	PaymentStatusFailed   PaymentStatus = "FAILED"
	PaymentStatusRefunded PaymentStatus = "REFUNDED"
)

var PaymentStatuses = []PaymentStatus{
	PaymentStatusPending,
	PaymentStatusSuccess,
	PaymentStatusFailed,
	PaymentStatusRefunded,
}

func (s PaymentStatus) IsValid() bool {
	for _, status := range PaymentStatuses {
		if s == status {
			return true
		}
	}
	return false
}

func ParsePaymentStatus(value string) (PaymentStatus, error) {
	status := PaymentStatus(value)
	if !status.IsValid() {
		return "", ErrInvalidPaymentState
	}
	return status, nil
}

type Order struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	UserID          uint            `gorm:"not null;index" json:"userId"`
	Subtotal        decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"subtotal"`
	DiscountAmount  decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"discountAmount"`
	TotalPrice      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"totalPrice"`
	CouponCode      string          `gorm:"size:50" json:"couponCode,omitempty"`
	Status          OrderStatus     `gorm:"size:20;not null;index" json:"status"`
	PaymentStatus   PaymentStatus   `gorm:"size:20;not null;index" json:"paymentStatus"`
	PaymentID       string          `gorm:"size:100" json:"paymentId,omitempty"`
	RazorpayOrderID string          `gorm:"size:100;index" json:"razorpayOrderId,omitempty"`
	ShippingAddress string          `gorm:"size:500" json:"shippingAddress"`
	PhoneNumber     string          `gorm:"size:15" json:"phoneNumber"`
	OrderDate       time.Time       `gorm:"not null;index" json:"orderDate"`
	UpdatedAt       time.Time       `json:"updatedAt"`
	OrderItems      []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"orderItems"`
}

// OrderItem snapshots the product at the time the order was placed.
type OrderItem struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	OrderID      uint            `gorm:"not null;index" json:"orderId"`
	ProductID    uint            `gorm:"not null;index" json:"productId"`
	ProductName  string          `gorm:"size:200" json:"productName"`
	ProductImage string          `gorm:"size:500" json:"productImage"`
	Quantity     int             `gorm:"not null" json:"quantity"`
	Price        decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
}

func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

type CheckoutData struct {
	ShippingAddress string `json:"shippingAddress" binding:"required,max=500"`
	PhoneNumber     string `json:"phoneNumber" binding:"required,max=15"`
	CouponCode      string `json:"couponCode" binding:"max=50"`
}
