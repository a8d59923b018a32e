package mq

import (
	"context"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"VendorHub/pkg/logger"
)

// MessageHandler 返回 error 时消息重新入队
type MessageHandler func(ctx context.Context, messageID string, body []byte) error

type ConsumeOptions struct {
	Queue         string
	ConsumerTag   string
	PrefetchCount int
	Handler       MessageHandler
}

// Consume 阻塞消费直到 ctx 取消或 channel 关闭
func Consume(ctx context.Context, opts ConsumeOptions) error {
	if conn == nil {
		return fmt.Errorf("RabbitMQ connection is nil")
	}

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open channel: %w", err)
	}
	defer ch.Close()

	if opts.PrefetchCount > 0 {
		if err := ch.Qos(opts.PrefetchCount, 0, false); err != nil {
			return fmt.Errorf("failed to set QoS: %w", err)
		}
	}

	msgs, err := ch.Consume(
		opts.Queue,
		opts.ConsumerTag,
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	logger.Logger.Info("Started consuming messages",
		zap.String("queue", opts.Queue),
		zap.String("consumer_tag", opts.ConsumerTag),
		zap.Int("prefetch_count", opts.PrefetchCount),
	)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-msgs:
			if !ok {
				return fmt.Errorf("consumer channel closed: %s", opts.Queue)
			}
			handleDelivery(ctx, opts, msg)
		}
	}
}

func handleDelivery(ctx context.Context, opts ConsumeOptions, msg amqp.Delivery) {
	msgCtx := otel.GetTextMapPropagator().Extract(ctx, HeaderCarrier(msg.Headers))
	msgCtx, span := otel.Tracer("vendorhub.rabbitmq").Start(msgCtx, "rabbitmq.process "+opts.Queue,
		trace.WithSpanKind(trace.SpanKindConsumer),
		trace.WithAttributes(
			semconv.MessagingSystem("rabbitmq"),
			semconv.MessagingMessageID(msg.MessageId),
		),
	)
	defer span.End()

	if err := opts.Handler(msgCtx, msg.MessageId, msg.Body); err != nil {
		span.SetStatus(codes.Error, err.Error())
		recordConsume(msgCtx, opts.Queue, "error")
		logger.Logger.Error("Failed to process message",
			zap.String("queue", opts.Queue),
			zap.String("message_id", msg.MessageId),
			zap.Error(err),
		)
		_ = msg.Nack(false, !msg.Redelivered) // 只重试一次
		return
	}

	recordConsume(msgCtx, opts.Queue, "success")
	_ = msg.Ack(false)
}
