package middleware

import (
	"context"
	"fmt"
	"runtime/debug"
	"strings"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"VendorHub/config"
	pkgerrors "VendorHub/pkg/errors"
	"VendorHub/pkg/logger"
	"VendorHub/pkg/response"
)

// RecoverConfig recover 中间件配置
type RecoverConfig struct {
	// 是否记录堆栈
	EnableStackTrace bool
	// 非生产环境在响应中返回 panic 详情
	ExposeDetails bool
	// 是否在 span 中记录异常
	RecordInSpan bool
	// 严重错误回调，可用于告警
	OnSevereError func(ctx context.Context, c *app.RequestContext, err interface{}, stack []byte)
}

// NewRecoverConfig 按运行环境生成默认配置
func NewRecoverConfig() RecoverConfig {
	return RecoverConfig{
		EnableStackTrace: true,
		ExposeDetails:    !config.Cfg.IsProduction(),
		RecordInSpan:     true,
	}
}

func RecoverMiddleware() app.HandlerFunc {
	return RecoverMiddlewareWithConfig(NewRecoverConfig())
}

func RecoverMiddlewareWithConfig(cfg RecoverConfig) app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		defer func() {
			if err := recover(); err != nil {
				handlePanic(ctx, c, err, cfg)
			}
		}()

		c.Next(ctx)
	}
}

func handlePanic(ctx context.Context, c *app.RequestContext, err interface{}, cfg RecoverConfig) {
	var stack []byte
	if cfg.EnableStackTrace {
		stack = debug.Stack()
	}

	// 请求体可能含密码和证件号，不记录
	fields := []zap.Field{
		zap.String("panic", fmt.Sprintf("%v", err)),
		zap.String("path", string(c.Path())),
		zap.String("method", string(c.Method())),
		zap.String("client_ip", c.ClientIP()),
		zap.String("request_id", string(c.GetHeader("X-Request-Id"))),
	}
	if vendorID, ok := GetVendorID(ctx, c); ok {
		fields = append(fields, zap.String("vendor_id", vendorID))
	}
	if len(stack) > 0 {
		fields = append(fields, zap.ByteString("stack", stack))
	}
	logger.Logger.Error("[PANIC RECOVERED]", fields...)

	if cfg.RecordInSpan {
		span := trace.SpanFromContext(ctx)
		span.RecordError(fmt.Errorf("panic: %v", err))
		span.SetStatus(codes.Error, "panic recovered")
	}

	if cfg.OnSevereError != nil && isSeverePanic(err) {
		cfg.OnSevereError(ctx, c, err, stack)
	}

	c.Abort()
	if !cfg.ExposeDetails {
		response.Error(ctx, c, pkgerrors.Internal)
		return
	}
	details := map[string]interface{}{
		"panic":     fmt.Sprintf("%v", err),
		"timestamp": time.Now().Format(time.RFC3339),
	}
	response.ErrorWithDetails(ctx, c, pkgerrors.Internal, details)
}

// isSeverePanic 运行时级别的错误
func isSeverePanic(err interface{}) bool {
	msg := fmt.Sprintf("%v", err)
	for _, pattern := range []string{
		"runtime: out of memory",
		"concurrent map writes",
		"concurrent map read and map write",
		"runtime error: makeslice:",
		"index out of range",
		"slice bounds out of range",
	} {
		if strings.Contains(msg, pattern) {
			return true
		}
	}
	return false
}
