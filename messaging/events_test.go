package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/hsz/sarees-api/models"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

type recordingWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *recordingWriter) Close() error {
	w.closed = true
	return nil
}

func TestOrderEvents_OrderCreated(t *testing.T) {
	otel.SetTracerProvider(sdktrace.NewTracerProvider())
	otel.SetTextMapPropagator(propagation.TraceContext{})

	created := &recordingWriter{}
	events := NewOrderEventsWithProducers(
		NewProducerWithWriter(created, "order.created"),
		NewProducerWithWriter(&recordingWriter{}, StatusChangedTopic),
	)

	ctx, span := otel.Tracer("test").Start(context.Background(), "checkout")
	defer span.End()

	order := models.Order{
		ID:         42,
		UserID:     7,
		Subtotal:   decimal.NewFromInt(2000),
		TotalPrice: decimal.NewFromInt(1900),
		CouponCode: "SILK5",
		OrderItems: []models.OrderItem{{ProductID: 3, ProductName: "Banarasi", Quantity: 2, Price: decimal.NewFromInt(1000)}},
	}
	if err := events.OrderCreated(ctx, order); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(created.messages) != 1 {
		t.Fatalf("expected 1 message, got %d", len(created.messages))
	}
	msg := created.messages[0]
	if string(msg.Key) != "42" {
		t.Errorf("expected key 42, got %q", msg.Key)
	}

	var decoded OrderCreatedEvent
	if err := json.Unmarshal(msg.Value, &decoded); err != nil {
		t.Fatalf("failed to decode event: %v", err)
	}
	if decoded.OrderID != 42 || decoded.UserID != 7 || len(decoded.Items) != 1 {
		t.Errorf("unexpected event: %+v", decoded)
	}
	if !decoded.TotalPrice.Equal(decimal.NewFromInt(1900)) {
		t.Errorf("expected total 1900, got %s", decoded.TotalPrice)
	}

	if NewMessageCarrier(&msg).Get("traceparent") == "" {
		t.Error("expected traceparent header to be injected")
	}
}

func TestOrderEvents_OrderStatusChanged(t *testing.T) {
	changed := &recordingWriter{}
	events := NewOrderEventsWithProducers(NewProducerWithWriter(&recordingWriter{}, "order.created"), NewProducerWithWriter(changed, StatusChangedTopic))

	if err := events.OrderStatusChanged(context.Background(), models.Order{ID: 5, UserID: 1}, "status", "PENDING", "SHIPPED"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded OrderStatusChangedEvent
	if err := json.Unmarshal(changed.messages[0].Value, &decoded); err != nil {
		t.Fatalf("failed to decode event: %v", err)
	}
	if decoded.From != "PENDING" || decoded.To != "SHIPPED" || decoded.Field != "status" {
		t.Errorf("unexpected event: %+v", decoded)
	}
}

func TestProducer_PublishError(t *testing.T) {
	writeErr := errors.New("broker unavailable")
	producer := NewProducerWithWriter(&recordingWriter{err: writeErr}, "order.created")

	if err := producer.Publish(context.Background(), "1", map[string]string{"a": "b"}); !errors.Is(err, writeErr) {
		t.Errorf("expected broker error, got %v", err)
	}
}

func TestMessageCarrier(t *testing.T) {
	msg := kafka.Message{}
	carrier := NewMessageCarrier(&msg)

	carrier.Set("traceparent", "one")
	carrier.Set("traceparent", "two")
	carrier.Set("baggage", "k=v")

	if got := carrier.Get("traceparent"); got != "two" {
		t.Errorf("expected overwritten value, got %q", got)
	}
	if keys := carrier.Keys(); len(keys) != 2 {
		t.Errorf("expected 2 keys, got %v", keys)
	}
	if got := carrier.Get("missing"); got != "" {
		t.Errorf("expected empty value, got %q", got)
	}
}
