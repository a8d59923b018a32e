package mq

import (
	"context"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var (
	instrumentsOnce   sync.Once
	mqMessagesTotal   metric.Int64Counter
	mqPublishDuration metric.Float64Histogram
)

func initInstruments() {
	instrumentsOnce.Do(func() {
		meter := otel.Meter("vendorhub.rabbitmq")
		mqMessagesTotal, _ = meter.Int64Counter("mq.messages.total",
			metric.WithDescription("Total number of RabbitMQ messages"),
			metric.WithUnit("{message}"),
		)
		mqPublishDuration, _ = meter.Float64Histogram("mq.publish.duration",
			metric.WithDescription("RabbitMQ publish duration"),
			metric.WithUnit("s"),
		)
	})
}

func recordPublish(ctx context.Context, exchange, routingKey string, err error, d time.Duration) {
	initInstruments()
	status := "success"
	if err != nil {
		status = "error"
	}
	attrs := metric.WithAttributes(
		attribute.String("messaging.operation", "publish"),
		attribute.String("messaging.rabbitmq.exchange", exchange),
		attribute.String("messaging.rabbitmq.routing_key", routingKey),
		attribute.String("messaging.status", status),
	)
	mqMessagesTotal.Add(ctx, 1, attrs)
	mqPublishDuration.Record(ctx, d.Seconds(), attrs)
}

func recordConsume(ctx context.Context, queue, status string) {
	initInstruments()
	mqMessagesTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("messaging.operation", "consume"),
		attribute.String("messaging.rabbitmq.queue", queue),
		attribute.String("messaging.status", status),
	))
}

// HeaderCarrier 让 amqp.Table 实现 propagation.TextMapCarrier
type HeaderCarrier amqp.Table

func (h HeaderCarrier) Get(key string) string {
	if v, ok := h[key].(string); ok {
		return v
	}
	return ""
}

func (h HeaderCarrier) Set(key, value string) {
	h[key] = value
}

func (h HeaderCarrier) Keys() []string {
	keys := make([]string, 0, len(h))
	for k := range h {
		keys = append(keys, k)
	}
	return keys
}
