package mcp

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
	"github.com/samber/lo"

	"github.com/janhq/grokart/internal/domain/imagegen"
)

// GeneratedImageResponse is one entry of generated_images. Exactly one of URL or B64JSON is
// set, matching ImageType.
type GeneratedImageResponse struct {
	Index     int    `json:"index" jsonschema:"minimum=0"`
	ImageType string `json:"image_type" jsonschema:"enum=url,enum=b64_json"`
	URL       string `json:"url,omitempty" jsonschema:"description=Image URL when image_type is url"`
	B64JSON   string `json:"b64_json,omitempty" jsonschema:"description=Base64 image data when image_type is b64_json"`
}

// GenerateImageResponse is the JSON payload returned by generate_image.
type GenerateImageResponse struct {
	GeneratedImages []GeneratedImageResponse `json:"generated_images"`
	RevisedPrompt   string                   `json:"revised_prompt"`
	OriginalPrompt  string                   `json:"original_prompt"`
	NumImages       int                      `json:"num_images"`
}

// NewGenerateImageResponse renders a domain result in the tool's wire shape.
func NewGenerateImageResponse(result *imagegen.GenerationResult) GenerateImageResponse {
	images := lo.Map(result.Images, func(img imagegen.GeneratedImage, _ int) GeneratedImageResponse {
		entry := GeneratedImageResponse{
			Index:     img.Index,
			ImageType: string(img.Format),
		}
		if img.Format == imagegen.FormatBase64 {
			entry.B64JSON = img.Payload
		} else {
			entry.URL = img.Payload
		}
		return entry
	})

	return GenerateImageResponse{
		GeneratedImages: images,
		RevisedPrompt:   result.RevisedPrompt,
		OriginalPrompt:  result.OriginalPrompt,
		NumImages:       result.Count,
	}
}

// generateImageOutputSchema reflects GenerateImageResponse into a plain JSON schema map.
func generateImageOutputSchema() (map[string]any, error) {
	reflector := &jsonschema.Reflector{
		DoNotReference: true,
		ExpandedStruct: true,
	}
	schema := reflector.Reflect(&GenerateImageResponse{})

	raw, err := json.Marshal(schema)
	if err != nil {
		return nil, fmt.Errorf("marshal output schema: %w", err)
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("unmarshal output schema: %w", err)
	}
	delete(out, "$schema")
	return out, nil
}
