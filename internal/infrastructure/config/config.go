package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/janhq/grokart/pkg/telemetry"
)

const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// ErrMissingAPIKey is returned when no xAI credential is configured.
var ErrMissingAPIKey = errors.New("XAI_API_KEY environment variable is required")

// Config holds all configuration for the grokart MCP server.
//
// Values are layered: struct defaults, then the optional YAML file named by
// GROKART_CONFIG_FILE, then environment variables. None of the env tags carry envDefault,
// so an unset variable never clobbers a value from the file.
type Config struct {
	// xAI upstream
	XAIAPIKey  string        `env:"XAI_API_KEY" yaml:"xai_api_key"`
	XAIBaseURL string        `env:"GROKART_XAI_BASE_URL" yaml:"xai_base_url"`
	XAIModel   string        `env:"GROKART_XAI_MODEL" yaml:"xai_model"`
	XAITimeout time.Duration `env:"GROKART_XAI_TIMEOUT" yaml:"xai_timeout"` // 0 disables the ceiling

	// Transport: stdio (default) or http (streamable MCP over gin)
	Transport string `env:"GROKART_TRANSPORT" yaml:"transport"`
	HTTPPort  string `env:"GROKART_HTTP_PORT" yaml:"http_port"`

	// Logging, always written to stderr
	LogLevel  string `env:"GROKART_LOG_LEVEL" yaml:"log_level"`
	LogFormat string `env:"GROKART_LOG_FORMAT" yaml:"log_format"` // json or console
	PIILevel  string `env:"GROKART_PII_LEVEL" yaml:"pii_level"`   // none, hashed or full
	PIISalt   string `env:"GROKART_PII_SALT" yaml:"pii_salt"`

	Environment string `env:"GROKART_ENVIRONMENT" yaml:"environment"`

	// OpenTelemetry export
	OTELTracingEnabled bool              `env:"OTEL_TRACING_ENABLED" yaml:"otel_tracing_enabled"`
	OTELMetricsEnabled bool              `env:"OTEL_METRICS_ENABLED" yaml:"otel_metrics_enabled"`
	OTLPEndpoint       string            `env:"OTEL_EXPORTER_OTLP_ENDPOINT" yaml:"otlp_endpoint"` // host:port
	OTLPInsecure       bool              `env:"OTEL_EXPORTER_OTLP_INSECURE" yaml:"otlp_insecure"`
	OTLPHeaders        map[string]string `env:"OTEL_EXPORTER_OTLP_HEADERS" envKeyValSeparator:"=" yaml:"otlp_headers"`
	OTELSamplingRate   float64           `env:"OTEL_TRACES_SAMPLER_ARG" yaml:"otel_sampling_rate"`
}

// Default returns the configuration used before any file or environment is applied.
func Default() *Config {
	return &Config{
		XAIBaseURL:   "https://api.x.ai/v1",
		XAIModel:     "grok-2-image",
		Transport:    TransportStdio,
		HTTPPort:     "8092",
		LogLevel:     "info",
		LogFormat:    "json",
		PIILevel:     string(telemetry.PIILevelHashed),
		Environment:  "development",
		OTLPEndpoint: "localhost:4318",
		OTLPInsecure: true,

		OTELSamplingRate: 1.0,
	}
}

// LoadConfig loads configuration from the process environment.
func LoadConfig() (*Config, error) {
	return Load(env.ToMap(os.Environ()))
}

// Load builds the configuration from the given environment map.
func Load(environ map[string]string) (*Config, error) {
	cfg := Default()

	if path := strings.TrimSpace(environ["GROKART_CONFIG_FILE"]); path != "" {
		if err := loadYAML(path, cfg); err != nil {
			return nil, err
		}
	}

	if err := env.ParseWithOptions(cfg, env.Options{Environment: environ}); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if strings.TrimSpace(environ["GROKART_LOG_LEVEL"]) == "" {
		if global := strings.TrimSpace(environ["LOG_LEVEL"]); global != "" {
			cfg.LogLevel = global
		}
	}
	if strings.TrimSpace(environ["GROKART_LOG_FORMAT"]) == "" {
		if global := strings.TrimSpace(environ["LOG_FORMAT"]); global != "" {
			cfg.LogFormat = global
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the loaded configuration.
func (c *Config) Validate() error {
	c.XAIAPIKey = strings.TrimSpace(c.XAIAPIKey)
	if c.XAIAPIKey == "" {
		return ErrMissingAPIKey
	}
	if strings.TrimSpace(c.XAIBaseURL) == "" {
		return fmt.Errorf("GROKART_XAI_BASE_URL must not be empty")
	}
	if strings.TrimSpace(c.XAIModel) == "" {
		return fmt.Errorf("GROKART_XAI_MODEL must not be empty")
	}
	if c.XAITimeout < 0 {
		return fmt.Errorf("GROKART_XAI_TIMEOUT must not be negative, got %s", c.XAITimeout)
	}

	c.Transport = strings.ToLower(strings.TrimSpace(c.Transport))
	switch c.Transport {
	case TransportStdio:
	case TransportHTTP:
		if strings.TrimSpace(c.HTTPPort) == "" {
			return fmt.Errorf("GROKART_HTTP_PORT is required when GROKART_TRANSPORT is http")
		}
	default:
		return fmt.Errorf("GROKART_TRANSPORT must be %q or %q, got %q", TransportStdio, TransportHTTP, c.Transport)
	}

	if c.OTELSamplingRate < 0 || c.OTELSamplingRate > 1 {
		return fmt.Errorf("OTEL_TRACES_SAMPLER_ARG must be between 0 and 1, got %v", c.OTELSamplingRate)
	}

	level, err := telemetry.ParsePIILevel(c.PIILevel)
	if err != nil {
		return fmt.Errorf("GROKART_PII_LEVEL: %w", err)
	}
	c.PIILevel = string(level)

	return nil
}

func loadYAML(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}
