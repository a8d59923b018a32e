package otel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigDefaults(t *testing.T) {
	cfg := Config{ServiceName: "vendorhub"}.withDefaults()
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 1.0, cfg.SampleRatio)

	cfg = Config{Environment: "production"}.withDefaults()
	assert.Equal(t, 0.1, cfg.SampleRatio)

	cfg = Config{Environment: "production", SampleRatio: 0.25}.withDefaults()
	assert.Equal(t, 0.25, cfg.SampleRatio)

	cfg = Config{Environment: "production", SampleRatio: 3}.withDefaults()
	assert.Equal(t, 0.1, cfg.SampleRatio)
}

func TestTrimScheme(t *testing.T) {
	assert.Equal(t, "collector:4317", trimScheme("http://collector:4317"))
	assert.Equal(t, "collector:4317", trimScheme("https://collector:4317"))
	assert.Equal(t, "collector:4317", trimScheme("collector:4317"))
}
