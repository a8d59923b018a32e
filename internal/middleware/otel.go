package middleware

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/config"
	hertztracing "github.com/hertz-contrib/obs-opentelemetry/tracing"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
)

// httpInstruments HTTP 服务端指标
type httpInstruments struct {
	requests metric.Int64Counter
	duration metric.Float64Histogram
	reqSize  metric.Int64Histogram
	respSize metric.Int64Histogram
	active   metric.Int64UpDownCounter
}

var (
	instruments     httpInstruments
	instrumentsOnce sync.Once
)

// initInstruments 从全局 MeterProvider 创建指标，otel 未初始化时为 no-op
func initInstruments() {
	instrumentsOnce.Do(func() {
		meter := otel.Meter("vendorhub/http")

		instruments.requests, _ = meter.Int64Counter("http.server.requests.total",
			metric.WithDescription("Total number of HTTP requests"),
			metric.WithUnit("{request}"),
		)
		instruments.duration, _ = meter.Float64Histogram("http.server.duration",
			metric.WithDescription("HTTP request duration"),
			metric.WithUnit("s"),
			metric.WithExplicitBucketBoundaries(0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0),
		)
		instruments.reqSize, _ = meter.Int64Histogram("http.server.request.size",
			metric.WithDescription("HTTP request size"),
			metric.WithUnit("By"),
		)
		instruments.respSize, _ = meter.Int64Histogram("http.server.response.size",
			metric.WithDescription("HTTP response size"),
			metric.WithUnit("By"),
		)
		instruments.active, _ = meter.Int64UpDownCounter("http.server.active_requests",
			metric.WithDescription("Number of active HTTP requests"),
			metric.WithUnit("{request}"),
		)
	})
}

// toValidUTF8 用户可控字符串清洗后再写入指标和 span
func toValidUTF8(val string) string {
	return strings.ToValidUTF8(val, "")
}

// MetricsMiddleware 记录请求数、耗时、大小；route 取注册路径避免高基数
func MetricsMiddleware() app.HandlerFunc {
	initInstruments()

	return func(ctx context.Context, c *app.RequestContext) {
		start := time.Now()
		instruments.active.Add(ctx, 1)
		defer instruments.active.Add(ctx, -1)

		c.Next(ctx)

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		statusCode := c.Response.StatusCode()
		attrs := metric.WithAttributes(
			semconv.HTTPMethod(toValidUTF8(string(c.Method()))),
			semconv.HTTPRoute(route),
			semconv.HTTPStatusCode(statusCode),
		)

		instruments.requests.Add(ctx, 1, attrs)
		instruments.duration.Record(ctx, time.Since(start).Seconds(), attrs)
		if size := int64(c.Request.Header.ContentLength()); size > 0 {
			instruments.reqSize.Record(ctx, size, attrs)
		}
		if size := int64(len(c.Response.Body())); size > 0 {
			instruments.respSize.Record(ctx, size, attrs)
		}
	}
}

// SpanAttributesMiddleware 在 hertz tracing 创建的 span 上补充商家 ID 和请求 ID，需放在鉴权之后
func SpanAttributesMiddleware() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		span := trace.SpanFromContext(ctx)
		if span.IsRecording() {
			if vendorID, ok := GetVendorID(ctx, c); ok {
				span.SetAttributes(attribute.String("enduser.id", vendorID))
			}
			if requestID := c.GetHeader("X-Request-Id"); len(requestID) > 0 {
				span.SetAttributes(attribute.String("http.request_id", toValidUTF8(string(requestID))))
			}
		}
		c.Next(ctx)
	}
}

// NewServerTracerConfig 返回 server 选项和追踪中间件，两者需一起注册
func NewServerTracerConfig(opts ...hertztracing.Option) (config.Option, app.HandlerFunc) {
	tracer, cfg := hertztracing.NewServerTracer(opts...)
	return tracer, hertztracing.ServerMiddleware(cfg)
}
