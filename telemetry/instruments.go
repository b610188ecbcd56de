package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/hsz/sarees-api"

// RecordOrderPlaced counts a placed order and adds its total to the revenue
// histogram. Instruments are resolved on each call so a MeterProvider
// installed after start-up is honoured.
func RecordOrderPlaced(ctx context.Context, total float64, withCoupon bool) {
	meter := otel.Meter(meterName)
	attrs := metric.WithAttributes(attribute.Bool("order.coupon_applied", withCoupon))

	if counter, err := meter.Int64Counter("orders.placed",
		metric.WithDescription("Orders placed through checkout")); err == nil {
		counter.Add(ctx, 1, attrs)
	}
	if hist, err := meter.Float64Histogram("orders.value",
		metric.WithDescription("Order totals at checkout"),
		metric.WithUnit("INR")); err == nil {
		hist.Record(ctx, total, attrs)
	}
}

// RecordOrderStatusChange counts admin transitions by target status.
func RecordOrderStatusChange(ctx context.Context, kind, status string) {
	counter, err := otel.Meter(meterName).Int64Counter("orders.status_changes",
		metric.WithDescription("Admin order and payment status updates"))
	if err != nil {
		return
	}
	counter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("status.kind", kind),
		attribute.String("status.value", status),
	))
}
