package onboarding

import "go.uber.org/zap"

// Notifier 瞬时通知，对应页面上的 toast
type Notifier interface {
	Success(message string)
	Error(message string)
}

// LogNotifier 把通知写入日志
type LogNotifier struct {
	Logger *zap.Logger
}

func (n LogNotifier) Success(message string) {
	n.Logger.Info(message)
}

func (n LogNotifier) Error(message string) {
	n.Logger.Warn(message)
}
