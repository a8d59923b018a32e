package storage

import (
	"context"
	"time"

	"go.uber.org/zap"

	"VendorHub/pkg/logger"
	"VendorHub/storage/database"
	"VendorHub/storage/mq"
	"VendorHub/storage/redis"
)

const closeTimeout = 15 * time.Second

type closer struct {
	name  string
	close func(ctx context.Context) error
}

// 先停止消息收发，再断开缓存，最后关闭数据库
var closers = []closer{
	{name: "rabbitmq", close: mq.Close},
	{name: "redis", close: redis.Close},
	{name: "postgres", close: database.Close},
}

// Close 按顺序关闭外部连接，单个失败不影响后续
func Close() {
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()

	failed := 0
	for _, c := range closers {
		if err := c.close(ctx); err != nil {
			failed++
			logger.Logger.Error("Failed to close storage connection",
				zap.String("storage", c.name),
				zap.Error(err),
			)
			continue
		}
		logger.Logger.Debug("Storage connection closed", zap.String("storage", c.name))
	}

	logger.Logger.Info("Storage connections closed", zap.Int("failed", failed))
}
