// Package xai implements imagegen.Generator against the xAI image generation API.
package xai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"github.com/tidwall/gjson"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/janhq/grokart/internal/domain/imagegen"
	"github.com/janhq/grokart/internal/infrastructure/metrics"
)

const (
	instrumentationName = "github.com/janhq/grokart/internal/infrastructure/xai"
	generationsPath     = "/images/generations"
)

// ClientConfig configures the xAI client.
type ClientConfig struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration // 0 means no timeout
}

type imagesRequest struct {
	Model          string `json:"model"`
	Prompt         string `json:"prompt"`
	N              int    `json:"n"`
	ResponseFormat string `json:"response_format"`
}

type imageData struct {
	URL           string `json:"url,omitempty"`
	B64JSON       string `json:"b64_json,omitempty"`
	RevisedPrompt string `json:"revised_prompt,omitempty"`
}

type imagesResponse struct {
	Data []imageData `json:"data"`
}

// Client issues image generation requests. It is safe for concurrent use.
type Client struct {
	model      string
	httpClient *resty.Client
	tracer     trace.Tracer
	duration   metric.Float64Histogram
}

var _ imagegen.Generator = (*Client)(nil)

// NewClient creates a client. Retries are disabled: every failure surfaces immediately.
func NewClient(cfg ClientConfig) *Client {
	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetAuthToken(cfg.APIKey).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "grokart/0.1.0").
		SetTimeout(cfg.Timeout).
		SetRetryCount(0)

	duration, err := otel.Meter(instrumentationName).Float64Histogram(
		"grokart.xai.request.duration",
		metric.WithUnit("s"),
		metric.WithDescription("xAI image generation round trip time"),
	)
	if err != nil {
		log.Warn().Err(err).Msg("failed to create xAI duration histogram")
	}

	return &Client{
		model:      cfg.Model,
		httpClient: httpClient,
		tracer:     otel.Tracer(instrumentationName),
		duration:   duration,
	}
}

// Generate sends exactly one POST /images/generations and normalizes the response.
func (c *Client) Generate(ctx context.Context, req imagegen.GenerationRequest) (*imagegen.GenerationResult, error) {
	ctx, span := c.tracer.Start(ctx, "xai.images.generate",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("xai.model", c.model),
			attribute.Int("xai.n", req.Count),
			attribute.String("xai.response_format", string(req.Format)),
		),
	)
	defer span.End()

	body := imagesRequest{
		Model:          c.model,
		Prompt:         req.Prompt,
		N:              req.Count,
		ResponseFormat: string(req.Format),
	}

	log.Debug().
		Str("model", c.model).
		Int("n", req.Count).
		Str("response_format", string(req.Format)).
		Msg("sending xAI image generation request")

	startTime := time.Now()
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(body).
		Post(generationsPath)
	elapsed := time.Since(startTime).Seconds()

	if err != nil {
		c.record(ctx, 0, elapsed)
		upstreamErr := &imagegen.UpstreamError{Message: err.Error(), Err: err}
		c.fail(span, upstreamErr)
		return nil, upstreamErr
	}

	statusCode := resp.StatusCode()
	c.record(ctx, statusCode, elapsed)
	span.SetAttributes(attribute.Int("http.response.status_code", statusCode))

	if statusCode < http.StatusOK || statusCode >= http.StatusMultipleChoices {
		upstreamErr := &imagegen.UpstreamError{
			StatusCode: statusCode,
			Message:    errorMessage(resp.Body(), statusCode),
		}
		c.fail(span, upstreamErr)
		return nil, upstreamErr
	}

	var apiResp imagesResponse
	if err := json.Unmarshal(resp.Body(), &apiResp); err != nil {
		upstreamErr := &imagegen.UpstreamError{
			StatusCode: statusCode,
			Message:    fmt.Sprintf("invalid response body: %v", err),
			Err:        err,
		}
		c.fail(span, upstreamErr)
		return nil, upstreamErr
	}
	if len(apiResp.Data) == 0 {
		upstreamErr := &imagegen.UpstreamError{StatusCode: statusCode, Message: "no images returned"}
		c.fail(span, upstreamErr)
		return nil, upstreamErr
	}

	result := normalize(req, apiResp)
	metrics.RecordImagesGenerated(string(req.Format), result.Count)
	span.SetAttributes(attribute.Int("xai.images", result.Count))

	log.Debug().
		Int("status_code", statusCode).
		Int("images", result.Count).
		Float64("duration_sec", elapsed).
		Msg("xAI image generation succeeded")

	return result, nil
}

func normalize(req imagegen.GenerationRequest, apiResp imagesResponse) *imagegen.GenerationResult {
	images := lo.Map(apiResp.Data, func(item imageData, index int) imagegen.GeneratedImage {
		payload := item.URL
		if req.Format == imagegen.FormatBase64 {
			payload = item.B64JSON
		}
		return imagegen.GeneratedImage{
			Index:   index,
			Format:  req.Format,
			Payload: payload,
		}
	})

	revised := req.Prompt
	if first := apiResp.Data[0].RevisedPrompt; first != "" {
		revised = first
	}

	return &imagegen.GenerationResult{
		Images:         images,
		RevisedPrompt:  revised,
		OriginalPrompt: req.Prompt,
		Count:          len(images),
	}
}

// errorMessage picks the most specific message out of an error body:
// error.message, then a string error field, then message, then the raw body.
func errorMessage(body []byte, statusCode int) string {
	if gjson.ValidBytes(body) {
		for _, path := range []string{"error.message", "error", "message"} {
			if v := gjson.GetBytes(body, path); v.Type == gjson.String && strings.TrimSpace(v.String()) != "" {
				return v.String()
			}
		}
	}
	if raw := strings.TrimSpace(string(body)); raw != "" {
		return raw
	}
	return http.StatusText(statusCode)
}

func (c *Client) record(ctx context.Context, statusCode int, elapsed float64) {
	metrics.RecordUpstreamRequest(c.model, statusCode, elapsed)
	if c.duration != nil {
		c.duration.Record(ctx, elapsed, metric.WithAttributes(
			attribute.String("xai.model", c.model),
			attribute.Int("http.response.status_code", statusCode),
		))
	}
}

func (c *Client) fail(span trace.Span, err *imagegen.UpstreamError) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Message)
	log.Error().
		Int("status_code", err.StatusCode).
		Str("model", c.model).
		Str("error_message", err.Message).
		Msg("xAI image generation failed")
}
