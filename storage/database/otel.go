package database

import (
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
)

const (
	spanKey  = "otel:span"
	startKey = "otel:start_time"
)

var (
	instrumentsOnce sync.Once
	dbQueriesTotal  metric.Int64Counter
	dbQueryDuration metric.Float64Histogram
)

func initInstruments() {
	instrumentsOnce.Do(func() {
		meter := otel.Meter("vendorhub.gorm")
		dbQueriesTotal, _ = meter.Int64Counter("db.queries.total",
			metric.WithDescription("Total number of database queries"),
			metric.WithUnit("{query}"),
		)
		dbQueryDuration, _ = meter.Float64Histogram("db.query.duration",
			metric.WithDescription("Database query duration"),
			metric.WithUnit("s"),
			metric.WithExplicitBucketBoundaries(0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0),
		)
	})
}

// OTELPlugin GORM OpenTelemetry 插件，每条语句一个 client span
type OTELPlugin struct {
	tracer      trace.Tracer
	serviceName string
}

func NewOTELPlugin(serviceName string) *OTELPlugin {
	initInstruments()
	return &OTELPlugin{
		tracer:      otel.Tracer(serviceName + ".gorm"),
		serviceName: serviceName,
	}
}

// Name 实现 gorm.Plugin 接口
func (p *OTELPlugin) Name() string {
	return "otel_plugin"
}

// Initialize 注册回调
func (p *OTELPlugin) Initialize(db *gorm.DB) error {
	cb := db.Callback()

	if err := cb.Create().Before("gorm:create").Register("otel:before_create", p.before); err != nil {
		return err
	}
	if err := cb.Create().After("gorm:create").Register("otel:after_create", p.after("db.insert")); err != nil {
		return err
	}
	if err := cb.Query().Before("gorm:query").Register("otel:before_query", p.before); err != nil {
		return err
	}
	if err := cb.Query().After("gorm:query").Register("otel:after_query", p.after("db.select")); err != nil {
		return err
	}
	if err := cb.Update().Before("gorm:update").Register("otel:before_update", p.before); err != nil {
		return err
	}
	if err := cb.Update().After("gorm:update").Register("otel:after_update", p.after("db.update")); err != nil {
		return err
	}
	if err := cb.Delete().Before("gorm:delete").Register("otel:before_delete", p.before); err != nil {
		return err
	}
	if err := cb.Delete().After("gorm:delete").Register("otel:after_delete", p.after("db.delete")); err != nil {
		return err
	}
	if err := cb.Row().Before("gorm:row").Register("otel:before_row", p.before); err != nil {
		return err
	}
	return cb.Row().After("gorm:row").Register("otel:after_row", p.after("db.row"))
}

func (p *OTELPlugin) before(db *gorm.DB) {
	ctx, span := p.tracer.Start(db.Statement.Context, "gorm",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(semconv.DBSystemPostgreSQL),
	)
	db.InstanceSet(spanKey, span)
	db.InstanceSet(startKey, time.Now())
	db.Statement.Context = ctx
}

func (p *OTELPlugin) after(operation string) func(*gorm.DB) {
	return func(db *gorm.DB) {
		v, ok := db.InstanceGet(spanKey)
		if !ok {
			return
		}
		span, ok := v.(trace.Span)
		if !ok {
			return
		}
		defer span.End()

		span.SetName(operation)
		span.SetAttributes(
			attribute.String("db.table", db.Statement.Table),
			attribute.Int64("db.rows_affected", db.Statement.RowsAffected),
			semconv.DBStatement(truncate(db.Statement.SQL.String(), 500)),
		)

		status := "success"
		if db.Error != nil && db.Error != gorm.ErrRecordNotFound {
			status = "error"
			span.SetStatus(codes.Error, db.Error.Error())
			span.RecordError(db.Error)
		}

		if start, ok := db.InstanceGet(startKey); ok {
			if t, ok := start.(time.Time); ok {
				attrs := metric.WithAttributes(
					attribute.String("db.operation", operation),
					attribute.String("db.status", status),
				)
				dbQueriesTotal.Add(db.Statement.Context, 1, attrs)
				dbQueryDuration.Record(db.Statement.Context, time.Since(t).Seconds(), attrs)
			}
		}
	}
}

// truncate 语句只用占位符，参数不会进入 span
func truncate(sql string, max int) string {
	sql = strings.TrimSpace(sql)
	if len(sql) > max {
		return sql[:max] + "..."
	}
	return sql
}
