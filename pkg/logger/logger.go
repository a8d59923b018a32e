// Package logger 进程级 zap 日志。服务进程通过 hertz-contrib/logger/zap 同时接管 hlog，
// 命令行工具只写 stderr。
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	hertzzap "github.com/hertz-contrib/logger/zap"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"VendorHub/config"
)

var (
	// Logger 在 Init 之前是 no-op，库代码和测试可直接使用
	Logger = zap.NewNop()
	output io.Closer
)

// Options 服务进程日志配置
type Options struct {
	Level   string
	Format  string // json, text
	Output  string // stdout, stderr 或文件路径
	Service string
	Env     string
}

func FromConfig() Options {
	format := config.Cfg.LoggerFormat
	if config.Cfg.IsDevelopment() {
		format = "text"
	}
	return Options{
		Level:   config.Cfg.LoggerLevel,
		Format:  format,
		Output:  config.Cfg.LoggerOutputPath,
		Service: config.Cfg.ServiceName,
		Env:     config.Cfg.Environment,
	}
}

// Init 按 config.Cfg 初始化；日志文件打不开时退回 stdout
func Init() {
	opts := FromConfig()
	if err := Setup(opts); err != nil {
		failed := opts.Output
		opts.Output = "stdout"
		_ = Setup(opts)
		Logger.Warn("Log output unavailable, using stdout",
			zap.String("path", failed),
			zap.Error(err),
		)
	}
	Logger.Info("Logger initialized",
		zap.String("level", ParseLevel(opts.Level).CapitalString()),
		zap.String("format", opts.Format),
	)
}

// Setup 替换全局 Logger 和 hlog
func Setup(opts Options) error {
	ws, closer, err := openOutput(opts.Output)
	if err != nil {
		return err
	}

	level := zap.NewAtomicLevelAt(ParseLevel(opts.Level))
	hz := hertzzap.NewLogger(
		hertzzap.WithCoreEnc(newEncoder(opts.Format)),
		hertzzap.WithCoreWs(ws),
		hertzzap.WithCoreLevel(level),
		hertzzap.WithZapOptions(
			zap.AddCaller(),
			zap.AddStacktrace(zapcore.ErrorLevel),
			zap.Fields(
				zap.String("service", opts.Service),
				zap.String("env", opts.Env),
			),
		),
	)
	hlog.SetLogger(hz)
	hlog.SetLevel(hlogLevel(level.Level()))

	replace(hz.Logger(), closer)
	return nil
}

// InitCLI 命令行工具使用：只输出到 stderr，避免干扰交互输出
func InitCLI(level string) {
	replace(NewCLI(os.Stderr, level), nil)
}

// NewCLI 简短的控制台格式，不带调用位置
func NewCLI(w io.Writer, level string) *zap.Logger {
	enc := zap.NewDevelopmentEncoderConfig()
	enc.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
	enc.CallerKey = zapcore.OmitKey
	return zap.New(zapcore.NewCore(
		zapcore.NewConsoleEncoder(enc),
		zapcore.AddSync(w),
		ParseLevel(level),
	))
}

func Sync() {
	_ = Logger.Sync()
	if output != nil {
		_ = output.Close()
		output = nil
	}
}

func replace(l *zap.Logger, closer io.Closer) {
	_ = Logger.Sync()
	if output != nil {
		_ = output.Close()
	}
	Logger = l
	output = closer
}

func newEncoder(format string) zapcore.Encoder {
	enc := zap.NewProductionEncoderConfig()
	enc.EncodeTime = zapcore.ISO8601TimeEncoder
	enc.EncodeCaller = zapcore.ShortCallerEncoder

	if strings.EqualFold(format, "text") {
		enc.EncodeLevel = zapcore.CapitalColorLevelEncoder
		return zapcore.NewConsoleEncoder(enc)
	}
	enc.EncodeLevel = zapcore.CapitalLevelEncoder
	return zapcore.NewJSONEncoder(enc)
}

// openOutput 文件输出时返回需要在退出时关闭的句柄
func openOutput(path string) (zapcore.WriteSyncer, io.Closer, error) {
	switch strings.ToLower(strings.TrimSpace(path)) {
	case "", "stdout":
		return zapcore.AddSync(os.Stdout), nil, nil
	case "stderr":
		return zapcore.AddSync(os.Stderr), nil, nil
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("logger: open %s: %w", path, err)
	}
	return zapcore.AddSync(file), file, nil
}

// ParseLevel 大小写不敏感，无法识别时为 INFO
func ParseLevel(level string) zapcore.Level {
	l, err := zapcore.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return zapcore.InfoLevel
	}
	return l
}

func hlogLevel(level zapcore.Level) hlog.Level {
	switch {
	case level <= zapcore.DebugLevel:
		return hlog.LevelDebug
	case level == zapcore.InfoLevel:
		return hlog.LevelInfo
	case level == zapcore.WarnLevel:
		return hlog.LevelWarn
	case level == zapcore.ErrorLevel:
		return hlog.LevelError
	default:
		return hlog.LevelFatal
	}
}
