package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, ParseLevel(" WARN "))
	assert.Equal(t, zapcore.ErrorLevel, ParseLevel("Error"))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel(""))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("verbose"))
}

func TestHlogLevel(t *testing.T) {
	assert.Equal(t, hlog.LevelDebug, hlogLevel(zapcore.DebugLevel))
	assert.Equal(t, hlog.LevelWarn, hlogLevel(zapcore.WarnLevel))
	assert.Equal(t, hlog.LevelFatal, hlogLevel(zapcore.FatalLevel))
}

func TestNewCLIFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewCLI(&buf, "warn")

	l.Info("hidden")
	l.Warn("shown", zap.String("email", "asha@example.com"))

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "asha@example.com")
}

func TestSetupWritesJSONToFile(t *testing.T) {
	t.Cleanup(func() { replace(zap.NewNop(), nil) })
	path := filepath.Join(t.TempDir(), "vendorhub.log")

	require.NoError(t, Setup(Options{Level: "info", Format: "json", Output: path, Service: "vendorhub", Env: "test"}))
	Logger.Debug("dropped")
	Logger.Info("Vendor registered", zap.String("vendor_id", "42"))
	Sync()

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(raw)
	assert.Contains(t, out, `"msg":"Vendor registered"`)
	assert.Contains(t, out, `"service":"vendorhub"`)
	assert.Contains(t, out, `"vendor_id":"42"`)
	assert.NotContains(t, out, "dropped")
}

func TestSetupRejectsUnwritablePath(t *testing.T) {
	before := Logger
	err := Setup(Options{Output: filepath.Join(t.TempDir(), "missing", "vendorhub.log")})
	assert.Error(t, err)
	assert.Same(t, before, Logger)
}
