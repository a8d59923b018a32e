package metrics

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// OTelMetrics 业务指标集合
type OTelMetrics struct {
	RegistrationsTotal metric.Int64Counter
	LoginsTotal        metric.Int64Counter
	VerificationsTotal metric.Int64Counter

	SMSSentTotal    metric.Int64Counter
	SMSSendDuration metric.Float64Histogram
}

var (
	metrics     *OTelMetrics
	metricsOnce sync.Once
)

// GetMetrics 获取全局指标实例，首次调用时从全局 MeterProvider 创建
// 在 otel 初始化之前调用得到的是 no-op 指标
func GetMetrics() *OTelMetrics {
	metricsOnce.Do(func() {
		meter := otel.Meter("vendorhub")
		m := &OTelMetrics{}

		m.RegistrationsTotal, _ = meter.Int64Counter("vendor_registrations_total",
			metric.WithDescription("Vendor registration attempts"),
			metric.WithUnit("{registration}"),
		)
		m.LoginsTotal, _ = meter.Int64Counter("vendor_logins_total",
			metric.WithDescription("Vendor login attempts"),
			metric.WithUnit("{login}"),
		)
		m.VerificationsTotal, _ = meter.Int64Counter("vendor_verifications_total",
			metric.WithDescription("Verification submissions by resulting status"),
			metric.WithUnit("{verification}"),
		)
		m.SMSSentTotal, _ = meter.Int64Counter("sms_sent_total",
			metric.WithDescription("Total number of SMS sent"),
			metric.WithUnit("{sms}"),
		)
		m.SMSSendDuration, _ = meter.Float64Histogram("sms_send_duration_seconds",
			metric.WithDescription("Time spent sending SMS in seconds"),
			metric.WithUnit("s"),
		)

		metrics = m
	})
	return metrics
}

// RecordRegistration result: success, duplicate, invalid, error
func RecordRegistration(ctx context.Context, business, result string) {
	GetMetrics().RegistrationsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("business", business),
		attribute.String("result", result),
	))
}

// RecordLogin result: success, invalid, error
func RecordLogin(ctx context.Context, result string) {
	GetMetrics().LoginsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("result", result),
	))
}

// RecordVerification 记录审核提交后的状态
func RecordVerification(ctx context.Context, status string) {
	GetMetrics().VerificationsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("status", status),
	))
}

// RecordSMS 记录短信发送结果
func RecordSMS(ctx context.Context, template, provider string, ok bool, seconds float64) {
	status := "success"
	if !ok {
		status = "failed"
	}
	m := GetMetrics()
	m.SMSSentTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("template", template),
		attribute.String("provider", provider),
		attribute.String("status", status),
	))
	m.SMSSendDuration.Record(ctx, seconds, metric.WithAttributes(
		attribute.String("template", template),
		attribute.String("provider", provider),
	))
}
