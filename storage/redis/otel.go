package redis

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
)

var (
	instrumentsOnce      sync.Once
	redisCommandsTotal   metric.Int64Counter
	redisCommandDuration metric.Float64Histogram
)

func initInstruments() {
	instrumentsOnce.Do(func() {
		meter := otel.Meter("vendorhub.redis")
		redisCommandsTotal, _ = meter.Int64Counter("redis.commands.total",
			metric.WithDescription("Total number of Redis commands"),
			metric.WithUnit("{command}"),
		)
		redisCommandDuration, _ = meter.Float64Histogram("redis.command.duration",
			metric.WithDescription("Redis command duration"),
			metric.WithUnit("s"),
			metric.WithExplicitBucketBoundaries(0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5),
		)
	})
}

// TracingHook Redis 追踪 Hook
type TracingHook struct {
	tracer trace.Tracer
	attrs  []attribute.KeyValue
}

// NewTracingHook 创建追踪 Hook
func NewTracingHook(serviceName string, db int) *TracingHook {
	initInstruments()
	return &TracingHook{
		tracer: otel.Tracer(serviceName + ".redis"),
		attrs: []attribute.KeyValue{
			semconv.DBSystemRedis,
			semconv.DBRedisDBIndex(db),
		},
	}
}

// DialHook 实现 redis.Hook 接口
func (th *TracingHook) DialHook(next redis.DialHook) redis.DialHook {
	return next
}

// ProcessHook 实现 redis.Hook 接口
func (th *TracingHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		ctx, span := th.tracer.Start(ctx, cmd.FullName(),
			trace.WithSpanKind(trace.SpanKindClient),
			trace.WithAttributes(th.attrs...),
		)
		defer span.End()

		// 只记录 key，不记录值
		if args := cmd.Args(); len(args) > 1 {
			if key, ok := args[1].(string); ok {
				span.SetAttributes(attribute.String("redis.key", sanitizeKey(key)))
			}
		}

		start := time.Now()
		err := next(ctx, cmd)

		status := "success"
		switch {
		case err == redis.Nil:
			status = "not_found"
		case err != nil:
			status = "error"
			span.SetStatus(codes.Error, err.Error())
			span.RecordError(err)
		}

		attrs := metric.WithAttributes(
			attribute.String("redis.command", cmd.Name()),
			attribute.String("redis.status", status),
		)
		redisCommandsTotal.Add(ctx, 1, attrs)
		redisCommandDuration.Record(ctx, time.Since(start).Seconds(), attrs)

		return err
	}
}

// ProcessPipelineHook 实现 redis.Hook 接口
func (th *TracingHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		ctx, span := th.tracer.Start(ctx, "redis.pipeline",
			trace.WithSpanKind(trace.SpanKindClient),
			trace.WithAttributes(th.attrs...),
		)
		defer span.End()

		span.SetAttributes(attribute.Int("redis.pipeline.count", len(cmds)))

		err := next(ctx, cmds)
		if err != nil && err != redis.Nil {
			span.SetStatus(codes.Error, err.Error())
		}

		redisCommandsTotal.Add(ctx, int64(len(cmds)), metric.WithAttributes(
			attribute.String("redis.command", "pipeline"),
		))
		return err
	}
}

// sanitizeKey token 类 key 只保留前缀
func sanitizeKey(key string) string {
	if strings.Contains(key, "token") || strings.Contains(key, "session") {
		if i := strings.Index(key, ":"); i > 0 {
			return key[:i] + ":***"
		}
		return "***"
	}
	if len(key) > 100 {
		return key[:100] + "..."
	}
	return key
}
