package controllers

import (
	"context"

	"github.com/hsz/sarees-api/models"
	"github.com/hsz/sarees-api/utils"
)

type OrderEventPublisher interface {
	OrderCreated(ctx context.Context, order models.Order) error
	OrderStatusChanged(ctx context.Context, order models.Order, field, from, to string) error
}

type PaymentGateway interface {
	CreateOrder(ctx context.Context, amount int64, currency, receipt string) (utils.RazorpayOrder, error)
	VerifySignature(orderID, paymentID, signature string) bool
	KeyID() string
}

// Optional integrations, wired in main. A nil value disables the feature.
var (
	Events   OrderEventPublisher
	Images   utils.ImageStore
	Payments PaymentGateway
	Mail     utils.MailConfig
)
