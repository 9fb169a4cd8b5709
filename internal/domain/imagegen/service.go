package imagegen

import (
	"context"
	"encoding/json"
)

// Service validates generate_image arguments and hands approved requests to the upstream.
type Service struct {
	validator *Validator
	generator Generator
}

// NewService creates a new image generation service.
func NewService(validator *Validator, generator Generator) *Service {
	return &Service{
		validator: validator,
		generator: generator,
	}
}

// Validator exposes the argument validator, mainly for its schema.
func (s *Service) Validator() *Validator {
	return s.validator
}

// GenerateFromArguments validates raw tool arguments and performs the generation.
// It returns the validated request alongside the result so callers can log what was sent.
func (s *Service) GenerateFromArguments(ctx context.Context, raw json.RawMessage) (GenerationRequest, *GenerationResult, error) {
	req, err := s.validator.ValidateJSON(raw)
	if err != nil {
		return GenerationRequest{}, nil, err
	}
	result, err := s.Generate(ctx, req)
	return req, result, err
}

// Generate performs one upstream call for an already validated request.
func (s *Service) Generate(ctx context.Context, req GenerationRequest) (*GenerationResult, error) {
	if req.Count == 0 {
		req.Count = DefaultCount
	}
	if req.Format == "" {
		req.Format = DefaultFormat
	}
	return s.generator.Generate(ctx, req)
}
