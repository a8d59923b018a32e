package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"VendorHub/config"
	"VendorHub/internal/queue"
	"VendorHub/internal/service"
	"VendorHub/pkg/logger"
	"VendorHub/pkg/sms"
	"VendorHub/storage/mq"
	"VendorHub/storage/redis"
)

func main() {
	logger.Init()
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		logger.Logger.Info("Received shutdown signal",
			zap.String("signal", sig.String()),
		)
		cancel()
	}()

	// worker 只依赖 Redis（幂等标记）和 RabbitMQ，不连数据库
	if err := redis.Init(); err != nil {
		logger.Logger.Fatal("Failed to initialize Redis", zap.Error(err))
	}
	defer func() {
		if err := redis.Close(context.Background()); err != nil {
			logger.Logger.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	if err := mq.Init(); err != nil {
		logger.Logger.Fatal("Failed to initialize RabbitMQ", zap.Error(err))
	}
	defer func() {
		if err := mq.Close(context.Background()); err != nil {
			logger.Logger.Error("Failed to close message queue", zap.Error(err))
		}
	}()

	if err := queue.DeclareAll(); err != nil {
		logger.Logger.Fatal("Failed to declare queues", zap.Error(err))
	}

	if err := sms.Init(); err != nil {
		logger.Logger.Fatal("Failed to initialize SMS service", zap.Error(err))
	}

	logger.Logger.Info("Worker service starting",
		zap.String("service", config.Cfg.ServiceName+"-worker"),
		zap.String("environment", config.Cfg.Environment),
		zap.String("sms_provider", config.Cfg.SMSProvider),
	)

	err := queue.StartVerificationStatusConsumer(ctx, service.Notification())
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Logger.Error("Verification status consumer stopped", zap.Error(err))
	}

	logger.Logger.Info("Worker service shutting down gracefully")
}
