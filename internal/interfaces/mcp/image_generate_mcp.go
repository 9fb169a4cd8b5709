package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/jsonrpc"
	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"

	"github.com/janhq/grokart/internal/domain/imagegen"
	"github.com/janhq/grokart/internal/infrastructure/metrics"
	"github.com/janhq/grokart/pkg/telemetry"
)

const (
	ToolName        = "generate_image"
	toolDescription = "Generate images using Grok-2-image model based on a text prompt"
)

// JSON-RPC 2.0 error codes used for tool failures
const (
	CodeInvalidParams = -32602
	CodeInternalError = -32603
)

// ImageGenerateMCP serves the generate_image tool.
type ImageGenerateMCP struct {
	service      *imagegen.Service
	sanitizer    *telemetry.Sanitizer
	outputSchema map[string]any
}

// NewImageGenerateMCP creates the generate_image tool handler.
func NewImageGenerateMCP(service *imagegen.Service, sanitizer *telemetry.Sanitizer) (*ImageGenerateMCP, error) {
	outputSchema, err := generateImageOutputSchema()
	if err != nil {
		return nil, err
	}
	return &ImageGenerateMCP{
		service:      service,
		sanitizer:    sanitizer,
		outputSchema: outputSchema,
	}, nil
}

// RegisterTools registers the generate_image tool with the MCP server.
func (i *ImageGenerateMCP) RegisterTools(server *mcpsdk.Server) {
	server.AddTool(&mcpsdk.Tool{
		Name:         ToolName,
		Description:  toolDescription,
		InputSchema:  i.service.Validator().Schema(),
		OutputSchema: i.outputSchema,
	}, i.handle)

	log.Info().Str("tool", ToolName).Msg("Registered generate_image MCP tool")
}

func (i *ImageGenerateMCP) handle(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	startTime := time.Now()

	var raw json.RawMessage
	if req != nil && req.Params != nil {
		raw = req.Params.Arguments
	}

	validated, result, err := i.service.GenerateFromArguments(ctx, raw)
	if err != nil {
		return nil, i.toProtocolError(validated, err, startTime)
	}

	resp := NewGenerateImageResponse(result)
	text, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		metrics.RecordToolCall(ToolName, "error", time.Since(startTime).Seconds())
		return nil, &jsonrpc.Error{
			Code:    CodeInternalError,
			Message: fmt.Sprintf("Error generating image: failed to encode result: %v", err),
		}
	}

	metrics.RecordToolCall(ToolName, "success", time.Since(startTime).Seconds())
	log.Info().
		Str("tool", ToolName).
		Str("prompt", i.sanitizer.SanitizePrompt(validated.Prompt)).
		Int("n", validated.Count).
		Str("response_format", string(validated.Format)).
		Int("num_images", resp.NumImages).
		Int64("duration_ms", time.Since(startTime).Milliseconds()).
		Msg("generate_image completed")

	return &mcpsdk.CallToolResult{
		Content:           []mcpsdk.Content{&mcpsdk.TextContent{Text: string(text)}},
		StructuredContent: resp,
	}, nil
}

// toProtocolError maps domain failures onto JSON-RPC errors: bad arguments become invalid
// params, everything else an internal error.
func (i *ImageGenerateMCP) toProtocolError(req imagegen.GenerationRequest, err error, startTime time.Time) error {
	elapsed := time.Since(startTime).Seconds()

	if imagegen.IsInvalidArgument(err) {
		metrics.RecordToolCall(ToolName, "invalid_argument", elapsed)
		log.Warn().Str("tool", ToolName).Err(err).Msg("rejected generate_image arguments")
		return &jsonrpc.Error{Code: CodeInvalidParams, Message: err.Error()}
	}

	if upstream, ok := imagegen.AsUpstreamError(err); ok {
		metrics.RecordToolCall(ToolName, "upstream_error", elapsed)
		log.Error().
			Str("tool", ToolName).
			Str("prompt", i.sanitizer.SanitizePrompt(req.Prompt)).
			Int("status_code", upstream.StatusCode).
			Err(err).
			Msg("Error calling xAI API")
		return &jsonrpc.Error{Code: CodeInternalError, Message: upstream.Error()}
	}

	metrics.RecordToolCall(ToolName, "error", elapsed)
	log.Error().Str("tool", ToolName).Err(err).Msg("Error generating image")
	return &jsonrpc.Error{Code: CodeInternalError, Message: fmt.Sprintf("Error generating image: %v", err)}
}
