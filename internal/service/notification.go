package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"VendorHub/config"
	"VendorHub/internal/model"
	"VendorHub/pkg/logger"
	"VendorHub/pkg/metrics"
	"VendorHub/pkg/sms"
)

var (
	notificationService *NotificationService
	notificationOnce    sync.Once
)

// Notification 需要先调用 sms.Init()
func Notification() *NotificationService {
	notificationOnce.Do(func() {
		notificationService = NewNotificationService(sms.GetClient(), config.Cfg.SMSSignName, config.Cfg.SMSTemplateCode)
	})
	return notificationService
}

// NotificationService 审核结果短信通知，由 worker 消费队列消息时调用
type NotificationService struct {
	client       sms.Client
	signName     string
	templateCode string
}

func NewNotificationService(client sms.Client, signName, templateCode string) *NotificationService {
	return &NotificationService{
		client:       client,
		signName:     signName,
		templateCode: templateCode,
	}
}

// NotifyVerificationStatus 实现 queue.VerificationNotifier
func (s *NotificationService) NotifyVerificationStatus(ctx context.Context, msg model.VerificationStatusMessage) error {
	message := model.NewVerificationStatusSMS(msg)
	if message.GetPhone() == "" {
		logger.Logger.Warn("Vendor has no mobile number, skipping SMS",
			zap.String("public_id", msg.PublicID),
		)
		return nil
	}

	params, err := message.GetTemplateParams()
	if err != nil {
		return err
	}

	start := time.Now()
	resp, err := s.client.SendSingle(ctx, message.GetPhone(), s.signName, s.templateCode, params)
	elapsed := time.Since(start).Seconds()

	provider := config.Cfg.SMSProvider
	if resp != nil && resp.Provider != "" {
		provider = resp.Provider
	}

	if err == nil && resp != nil && resp.Code != "OK" {
		err = fmt.Errorf("sms provider returned %s: %s", resp.Code, resp.Message)
	}
	metrics.RecordSMS(ctx, message.GetMessageType(), provider, err == nil, elapsed)
	if err != nil {
		logger.Logger.Error("Failed to send verification status SMS",
			zap.String("public_id", msg.PublicID),
			zap.String("status", string(msg.Status)),
			zap.Error(err),
		)
		return fmt.Errorf("send verification status sms: %w", err)
	}

	logger.Logger.Info("Verification status SMS sent",
		zap.String("public_id", msg.PublicID),
		zap.String("status", string(msg.Status)),
		zap.String("sms_id", resp.MessageID),
	)
	return nil
}
