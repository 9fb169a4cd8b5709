package observability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace/noop"
)

func TestInit_DisabledInstallsNothing(t *testing.T) {
	provider, err := Init(context.Background(), DefaultConfig("grokart"))
	require.NoError(t, err)

	assert.Nil(t, provider.TracerProvider)
	assert.Nil(t, provider.MeterProvider)
	assert.NoError(t, provider.Shutdown(context.Background()))
}

func TestInit_Tracing(t *testing.T) {
	t.Cleanup(func() { otel.SetTracerProvider(noop.NewTracerProvider()) })

	cfg := DefaultConfig("grokart")
	cfg.TracingEnabled = true
	cfg.OTLPHeaders = map[string]string{"x-api-key": "secret"}

	provider, err := Init(context.Background(), cfg)
	require.NoError(t, err)
	require.NotNil(t, provider.TracerProvider)
	assert.Nil(t, provider.MeterProvider)
	assert.Same(t, provider.TracerProvider, otel.GetTracerProvider())

	require.NoError(t, provider.Shutdown(context.Background()))
	// second call is a no-op
	require.NoError(t, provider.Shutdown(context.Background()))
}

func TestShutdown_NilProvider(t *testing.T) {
	var provider *Provider
	assert.NoError(t, provider.Shutdown(context.Background()))
}
