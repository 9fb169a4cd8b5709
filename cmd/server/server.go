package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/janhq/grokart/internal/infrastructure/config"
	"github.com/janhq/grokart/internal/infrastructure/logger"
	"github.com/janhq/grokart/internal/interfaces/httpserver"
	"github.com/janhq/grokart/internal/interfaces/mcp"
	"github.com/janhq/grokart/pkg/observability"
)

const telemetryShutdownTimeout = 5 * time.Second

type Application struct {
	config     *config.Config
	mcpServer  *mcp.MCPServer
	httpServer *httpserver.HTTPServer
}

func init() {
	// stdout carries the stdio MCP stream, so nothing else may write there.
	logger.Init("info", "json")
	gin.SetMode(gin.ReleaseMode)
	gin.DefaultWriter = os.Stderr
	gin.DefaultErrorWriter = os.Stderr
}

// Start serves MCP on the configured transport until ctx is cancelled or, for stdio,
// the client closes stdin.
func (app *Application) Start(ctx context.Context) error {
	switch app.config.Transport {
	case config.TransportHTTP:
		return app.httpServer.Run(ctx)
	default:
		err := app.mcpServer.RunStdio(ctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}
}

// loadConfig reads .env files, the process environment and flag overrides.
func loadConfig(overrides map[string]string) (*config.Config, error) {
	loadEnvFiles()

	environ := env.ToMap(os.Environ())
	for key, value := range overrides {
		environ[key] = value
	}
	return config.Load(environ)
}

func serve(overrides map[string]string) error {
	cfg, err := loadConfig(overrides)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger.Init(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("transport", cfg.Transport).
		Str("model", cfg.XAIModel).
		Str("log_level", cfg.LogLevel).
		Str("pii_level", cfg.PIILevel).
		Msg("Starting grokart MCP server")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	otelCfg := observability.DefaultConfig(mcp.ServerName)
	otelCfg.ServiceVersion = mcp.ServerVersion
	otelCfg.Environment = cfg.Environment
	otelCfg.TracingEnabled = cfg.OTELTracingEnabled
	otelCfg.MetricsEnabled = cfg.OTELMetricsEnabled
	otelCfg.OTLPEndpoint = cfg.OTLPEndpoint
	otelCfg.Insecure = cfg.OTLPInsecure
	otelCfg.OTLPHeaders = cfg.OTLPHeaders
	otelCfg.SamplingRate = cfg.OTELSamplingRate

	telemetry, err := observability.Init(ctx, otelCfg)
	if err != nil {
		return fmt.Errorf("initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), telemetryShutdownTimeout)
		defer cancel()
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown telemetry")
		}
	}()

	application, err := CreateApplication(cfg)
	if err != nil {
		return fmt.Errorf("create application: %w", err)
	}

	if err := application.Start(ctx); err != nil {
		return err
	}

	log.Info().Msg("grokart exited cleanly")
	return nil
}

func loadEnvFiles() {
	for _, path := range []string{".env", "../.env"} {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err != nil {
				log.Warn().Err(err).Str("path", path).Msg("failed to load env file")
			}
		}
	}
}
