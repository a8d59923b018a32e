package queue

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"VendorHub/internal/model"
	"VendorHub/pkg/logger"
	"VendorHub/storage/mq"
)

// Publisher 业务层依赖的发布接口
type Publisher interface {
	PublishVerificationStatus(ctx context.Context, msg model.VerificationStatusMessage) error
}

// MQPublisher 通过 RabbitMQ 发布
type MQPublisher struct{}

// PublishVerificationStatus 发布审核状态变更，MessageID 为空时补齐
func (MQPublisher) PublishVerificationStatus(ctx context.Context, msg model.VerificationStatusMessage) error {
	if msg.MessageID == "" {
		msg.MessageID = fmt.Sprintf("verification_%s_%s", msg.PublicID, uuid.NewString())
	}
	if msg.OccurredAt == "" {
		msg.OccurredAt = time.Now().UTC().Format(time.RFC3339)
	}

	err := mq.PublishMessage(ctx, EventsExchange, VerificationStatusRoutingKey, msg.MessageID, msg)
	if err != nil {
		logger.Logger.Error("Failed to publish verification status message",
			zap.String("public_id", msg.PublicID),
			zap.String("status", string(msg.Status)),
			zap.Error(err),
		)
		return err
	}

	logger.Logger.Info("Published verification status message",
		zap.String("message_id", msg.MessageID),
		zap.String("public_id", msg.PublicID),
		zap.String("status", string(msg.Status)),
	)
	return nil
}
