package sms

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"VendorHub/config"
	"VendorHub/pkg/logger"
)

// Client SMS 客户端接口
type Client interface {
	// SendSingle 发送单条短信，templateParam 为 JSON 字符串
	SendSingle(ctx context.Context, phone, signName, templateCode, templateParam string) (*SendResponse, error)
}

// SendResponse 短信发送响应
type SendResponse struct {
	MessageID string // BizId
	Code      string // "OK" 或服务商错误码
	Message   string
	RequestID string
	Provider  string
	Template  string
}

var (
	smsClient Client
	smsOnce   sync.Once
	smsErr    error
)

// Init 按配置初始化 SMS 客户端
func Init() error {
	smsOnce.Do(func() {
		provider := strings.ToLower(config.Cfg.SMSProvider)

		switch provider {
		case "aliyun":
			smsClient, smsErr = NewAliyunClient()
		case "mock", "":
			smsClient = NewMockClient()
		default:
			smsErr = fmt.Errorf("unsupported SMS provider: %s", config.Cfg.SMSProvider)
		}

		if smsErr != nil {
			logger.Logger.Error("Failed to initialize SMS client", zap.Error(smsErr))
			return
		}

		logger.Logger.Info("SMS client initialized successfully", zap.String("provider", provider))
	})

	return smsErr
}

// SetClient 替换全局客户端，测试使用
func SetClient(c Client) {
	smsClient = c
}

func GetClient() Client {
	if smsClient == nil {
		panic("SMS client not initialized, call sms.Init() first")
	}
	return smsClient
}
