package infrastructure

import (
	"github.com/google/wire"

	"github.com/janhq/grokart/internal/domain/imagegen"
	"github.com/janhq/grokart/internal/infrastructure/config"
	"github.com/janhq/grokart/internal/infrastructure/xai"
	"github.com/janhq/grokart/pkg/telemetry"
)

// InfrastructureProvider provides all infrastructure dependencies
var InfrastructureProvider = wire.NewSet(
	// xAI image generation client
	ProvideXAIClient,

	// Prompt sanitizer for logs
	ProvideSanitizer,
)

// ProvideXAIClient provides the xAI client as the domain's image generator
func ProvideXAIClient(cfg *config.Config) imagegen.Generator {
	return xai.NewClient(xai.ClientConfig{
		BaseURL: cfg.XAIBaseURL,
		APIKey:  cfg.XAIAPIKey,
		Model:   cfg.XAIModel,
		Timeout: cfg.XAITimeout,
	})
}

// ProvideSanitizer provides the PII sanitizer applied to logged prompts
func ProvideSanitizer(cfg *config.Config) (*telemetry.Sanitizer, error) {
	level, err := telemetry.ParsePIILevel(cfg.PIILevel)
	if err != nil {
		return nil, err
	}
	return telemetry.NewSanitizer(level, cfg.PIISalt), nil
}
