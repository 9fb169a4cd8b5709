package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingAPIKey(t *testing.T) {
	_, err := Load(map[string]string{})
	require.ErrorIs(t, err, ErrMissingAPIKey)

	_, err = Load(map[string]string{"XAI_API_KEY": "   "})
	require.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(map[string]string{"XAI_API_KEY": "xai-test"})
	require.NoError(t, err)

	assert.Equal(t, "xai-test", cfg.XAIAPIKey)
	assert.Equal(t, "https://api.x.ai/v1", cfg.XAIBaseURL)
	assert.Equal(t, "grok-2-image", cfg.XAIModel)
	assert.Zero(t, cfg.XAITimeout)
	assert.Equal(t, TransportStdio, cfg.Transport)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "hashed", cfg.PIILevel)
	assert.False(t, cfg.OTELTracingEnabled)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	cfg, err := Load(map[string]string{
		"XAI_API_KEY":          "xai-test",
		"GROKART_XAI_BASE_URL": "http://localhost:9999/v1",
		"GROKART_XAI_TIMEOUT":  "45s",
		"GROKART_TRANSPORT":    "HTTP",
		"GROKART_HTTP_PORT":    "9000",
		"GROKART_PII_LEVEL":    "none",
		"OTEL_TRACING_ENABLED": "true",

		"OTEL_EXPORTER_OTLP_HEADERS": "x-api-key=secret,x-tenant=grokart",
		"OTEL_TRACES_SAMPLER_ARG":    "0.25",
	})
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9999/v1", cfg.XAIBaseURL)
	assert.Equal(t, 45*time.Second, cfg.XAITimeout)
	assert.Equal(t, TransportHTTP, cfg.Transport)
	assert.Equal(t, "9000", cfg.HTTPPort)
	assert.Equal(t, "none", cfg.PIILevel)
	assert.True(t, cfg.OTELTracingEnabled)
	assert.Equal(t, map[string]string{"x-api-key": "secret", "x-tenant": "grokart"}, cfg.OTLPHeaders)
	assert.InDelta(t, 0.25, cfg.OTELSamplingRate, 1e-9)
}

func TestLoad_GlobalLogFallback(t *testing.T) {
	cfg, err := Load(map[string]string{
		"XAI_API_KEY": "xai-test",
		"LOG_LEVEL":   "debug",
		"LOG_FORMAT":  "console",
	})
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)

	cfg, err = Load(map[string]string{
		"XAI_API_KEY":       "xai-test",
		"LOG_LEVEL":         "debug",
		"GROKART_LOG_LEVEL": "warn",
	})
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoad_YAMLLayer(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "grokart.yaml")
	content := `
xai_api_key: from-file
xai_model: grok-2-image-1212
xai_timeout: 30s
log_level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(map[string]string{"GROKART_CONFIG_FILE": path})
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.XAIAPIKey)
	assert.Equal(t, "grok-2-image-1212", cfg.XAIModel)
	assert.Equal(t, 30*time.Second, cfg.XAITimeout)
	assert.Equal(t, "debug", cfg.LogLevel)
	// untouched keys keep their struct defaults
	assert.Equal(t, "https://api.x.ai/v1", cfg.XAIBaseURL)

	cfg, err = Load(map[string]string{
		"GROKART_CONFIG_FILE": path,
		"XAI_API_KEY":         "from-env",
		"GROKART_XAI_MODEL":   "grok-2-image",
	})
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.XAIAPIKey)
	assert.Equal(t, "grok-2-image", cfg.XAIModel)
	assert.Equal(t, 30*time.Second, cfg.XAITimeout)
}

func TestLoad_YAMLErrors(t *testing.T) {
	_, err := Load(map[string]string{"GROKART_CONFIG_FILE": filepath.Join(t.TempDir(), "missing.yaml")})
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("xai_timeout: [not, a, duration"), 0o644))
	_, err = Load(map[string]string{"GROKART_CONFIG_FILE": path, "XAI_API_KEY": "xai-test"})
	require.Error(t, err)
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"unknown transport", func(c *Config) { c.Transport = "grpc" }},
		{"http without port", func(c *Config) { c.Transport = TransportHTTP; c.HTTPPort = "" }},
		{"negative timeout", func(c *Config) { c.XAITimeout = -time.Second }},
		{"empty model", func(c *Config) { c.XAIModel = " " }},
		{"empty base url", func(c *Config) { c.XAIBaseURL = "" }},
		{"bad pii level", func(c *Config) { c.PIILevel = "partial" }},
		{"sampling rate above one", func(c *Config) { c.OTELSamplingRate = 1.5 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.XAIAPIKey = "xai-test"
			tt.mutate(cfg)
			require.Error(t, cfg.Validate())
		})
	}
}
