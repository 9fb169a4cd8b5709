// Package imagegen holds the image generation domain: typed requests, results, argument
// validation and the service that ties validation to an upstream generator.
package imagegen

import "context"

// ImageFormat is the encoding the caller wants images returned in.
type ImageFormat string

const (
	FormatURL    ImageFormat = "url"
	FormatBase64 ImageFormat = "b64_json"
)

const (
	DefaultCount  = 1
	MinCount      = 1
	MaxCount      = 10
	DefaultFormat = FormatURL
)

// Valid reports whether f is one of the supported formats.
func (f ImageFormat) Valid() bool {
	return f == FormatURL || f == FormatBase64
}

// GenerationRequest is a validated generate_image call.
type GenerationRequest struct {
	Prompt string
	Count  int
	Format ImageFormat
}

// GeneratedImage is one image returned by the upstream, in request order.
type GeneratedImage struct {
	Index   int
	Format  ImageFormat
	Payload string // URL or base64 blob depending on Format
}

// GenerationResult is the normalized outcome of a successful generation.
type GenerationResult struct {
	Images         []GeneratedImage
	RevisedPrompt  string
	OriginalPrompt string
	Count          int
}

// Generator performs the upstream call for an already validated request.
type Generator interface {
	Generate(ctx context.Context, req GenerationRequest) (*GenerationResult, error)
}
