package messaging

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/hsz/sarees-api/models"
	"github.com/shopspring/decimal"
)

const StatusChangedTopic = "order.status_changed"

type OrderLine struct {
	ProductID uint            `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

type OrderCreatedEvent struct {
	OrderID        uint            `json:"order_id"`
	UserID         uint            `json:"user_id"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	TotalPrice     decimal.Decimal `json:"total_price"`
	CouponCode     string          `json:"coupon_code,omitempty"`
	Items          []OrderLine     `json:"items"`
	Timestamp      time.Time       `json:"timestamp"`
}

// OrderStatusChangedEvent covers both the fulfilment status and the payment
// status; Field says which one moved.
type OrderStatusChangedEvent struct {
	OrderID   uint      `json:"order_id"`
	UserID    uint      `json:"user_id"`
	Field     string    `json:"field"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	Timestamp time.Time `json:"timestamp"`
}

// OrderEvents publishes order lifecycle events keyed by order id, so all
// events of one order land on the same partition.
type OrderEvents struct {
	created       *Producer
	statusChanged *Producer
}

func NewOrderEvents(brokers []string, createdTopic string) *OrderEvents {
	return &OrderEvents{
		created:       NewProducer(brokers, createdTopic),
		statusChanged: NewProducer(brokers, StatusChangedTopic),
	}
}

func NewOrderEventsWithProducers(created, statusChanged *Producer) *OrderEvents {
	return &OrderEvents{created: created, statusChanged: statusChanged}
}

func (e *OrderEvents) OrderCreated(ctx context.Context, order models.Order) error {
	event := OrderCreatedEvent{
		OrderID:        order.ID,
		UserID:         order.UserID,
		Subtotal:       order.Subtotal,
		DiscountAmount: order.DiscountAmount,
		TotalPrice:     order.TotalPrice,
		CouponCode:     order.CouponCode,
		Items:          make([]OrderLine, 0, len(order.OrderItems)),
		Timestamp:      time.Now().UTC(),
	}
	for _, item := range order.OrderItems {
		event.Items = append(event.Items, OrderLine{
			ProductID: item.ProductID,
			Name:      item.ProductName,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}
	return e.created.Publish(ctx, orderKey(order.ID), event)
}

func (e *OrderEvents) OrderStatusChanged(ctx context.Context, order models.Order, field, from, to string) error {
	return e.statusChanged.Publish(ctx, orderKey(order.ID), OrderStatusChangedEvent{
		OrderID:   order.ID,
		UserID:    order.UserID,
		Field:     field,
		From:      from,
		To:        to,
		Timestamp: time.Now().UTC(),
	})
}

func (e *OrderEvents) Close() error {
	return errors.Join(e.created.Close(), e.statusChanged.Close())
}

func orderKey(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
