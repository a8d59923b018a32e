package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cloudwego/hertz/pkg/app/server"
	hertzconfig "github.com/cloudwego/hertz/pkg/common/config"
	"go.uber.org/zap"

	"VendorHub/config"
	"VendorHub/internal/handler"
	"VendorHub/internal/middleware"
	"VendorHub/internal/queue"
	"VendorHub/internal/router"
	"VendorHub/pkg/logger"
	"VendorHub/pkg/otel"
	"VendorHub/pkg/snowflake"
	"VendorHub/pkg/token"
	"VendorHub/storage"
)

func main() {
	logger.Init()
	defer logger.Sync()

	if err := config.Cfg.Validate(); err != nil {
		logger.Logger.Fatal("Invalid configuration", zap.Error(err))
	}

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

	if config.Cfg.TracingEnabled {
		shutdown, err := otel.InitOpenTelemetry(ctx, otel.Config{
			ServiceName:  config.Cfg.ServiceName,
			Environment:  config.Cfg.Environment,
			OTLPEndpoint: config.Cfg.OTLPEndpoint,
			SampleRatio:  config.Cfg.TracingSampleRatio,
		})
		if err != nil {
			logger.Logger.Fatal("Failed to initialize OpenTelemetry", zap.Error(err))
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdown(shutdownCtx); err != nil {
				logger.Logger.Error("Failed to shutdown OpenTelemetry", zap.Error(err))
			}
		}()
	}

	// 初始化存储层，退出时关闭外部连接
	if err := storage.Init(); err != nil {
		logger.Logger.Fatal("Failed to initialize storage", zap.Error(err))
	}
	defer storage.Close()

	if err := queue.DeclareAll(); err != nil {
		logger.Logger.Fatal("Failed to declare queues", zap.Error(err))
	}

	if err := snowflake.Init(config.Cfg.SnowflakeMachineID, config.Cfg.SnowflakeDataCenter); err != nil {
		logger.Logger.Fatal("Failed to initialize snowflake", zap.Error(err))
	}

	// token 在中间件前初始化，middleware 依赖 token
	if err := token.Init(); err != nil {
		logger.Logger.Fatal("Failed to initialize token package", zap.Error(err))
	}

	if err := middleware.Init(); err != nil {
		logger.Logger.Fatal("Failed to initialize middlewares", zap.Error(err))
	}

	addr := net.JoinHostPort(config.Cfg.ServerHost, config.Cfg.ServerPort)
	serverOpts := []hertzconfig.Option{server.WithHostPorts(addr)}

	tracerOpt, tracerMiddleware := middleware.NewServerTracerConfig()
	if config.Cfg.TracingEnabled {
		serverOpts = append(serverOpts, tracerOpt)
	}

	h := server.Default(serverOpts...)
	if config.Cfg.TracingEnabled {
		h.Use(tracerMiddleware)
	}

	router.Register(h, handler.Default())

	logger.Logger.Info("Server starting",
		zap.String("service", config.Cfg.ServiceName),
		zap.String("addr", addr),
		zap.String("environment", config.Cfg.Environment),
		zap.Bool("tracing", config.Cfg.TracingEnabled),
		zap.Bool("auto_approve", config.Cfg.VerificationAutoApprove),
	)

	go func() {
		<-ctx.Done()
		logger.Logger.Info("Initiating graceful shutdown...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := h.Shutdown(shutdownCtx); err != nil {
			logger.Logger.Error("Failed to shutdown HTTP server", zap.Error(err))
		}
	}()

	h.Spin()

	logger.Logger.Info("Server shutting down gracefully")
}
