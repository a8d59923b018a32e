package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"VendorHub/internal/cache"
	"VendorHub/internal/model"
	"VendorHub/pkg/logger"
	"VendorHub/storage/mq"
)

const processedTTL = 48 * time.Hour

// VerificationNotifier 处理审核状态事件，worker 中由短信服务实现
type VerificationNotifier interface {
	NotifyVerificationStatus(ctx context.Context, msg model.VerificationStatusMessage) error
}

// HandleVerificationStatus 解码并幂等处理一条审核状态消息。
// 重复消息直接确认；处理失败撤销标记并返回 error 让消息重投。
func HandleVerificationStatus(ctx context.Context, notifier VerificationNotifier, deliveryID string, body []byte) error {
	var msg model.VerificationStatusMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		// 无法解码的消息重投也没用，记录后丢弃
		logger.Logger.Error("Dropping malformed verification status message",
			zap.String("delivery_id", deliveryID),
			zap.Error(err),
		)
		return nil
	}
	if msg.MessageID == "" {
		msg.MessageID = deliveryID
	}

	first, err := cache.MarkProcessed(ctx, msg.MessageID, processedTTL)
	if err != nil {
		logger.Logger.Warn("Failed to check message processed status",
			zap.String("message_id", msg.MessageID),
			zap.Error(err),
		)
	} else if !first {
		logger.Logger.Info("Message already processed, skipping",
			zap.String("message_id", msg.MessageID),
		)
		return nil
	}

	if err := notifier.NotifyVerificationStatus(ctx, msg); err != nil {
		if unmarkErr := cache.UnmarkProcessed(ctx, msg.MessageID); unmarkErr != nil {
			logger.Logger.Warn("Failed to unmark message",
				zap.String("message_id", msg.MessageID),
				zap.Error(unmarkErr),
			)
		}
		return fmt.Errorf("notify verification status: %w", err)
	}

	logger.Logger.Info("Processed verification status message",
		zap.String("message_id", msg.MessageID),
		zap.String("public_id", msg.PublicID),
		zap.String("status", string(msg.Status)),
	)
	return nil
}

// StartVerificationStatusConsumer 阻塞消费直到 ctx 取消
func StartVerificationStatusConsumer(ctx context.Context, notifier VerificationNotifier) error {
	return mq.Consume(ctx, mq.ConsumeOptions{
		Queue:         VerificationStatusQueue,
		ConsumerTag:   "verification_status_consumer",
		PrefetchCount: 10,
		Handler: func(ctx context.Context, messageID string, body []byte) error {
			return HandleVerificationStatus(ctx, notifier, messageID, body)
		},
	})
}
