package imagegen

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
)

const (
	ArgPrompt         = "prompt"
	ArgCount          = "n"
	ArgResponseFormat = "response_format"
)

const (
	msgPromptRequired = "A text prompt is required"
	msgCountRange     = "Number of images (n) must be an integer between 1 and 10"
	msgFormatInvalid  = "response_format must be either 'url' or 'b64_json'"
)

// Validator maps loosely typed tool arguments onto a GenerationRequest.
//
// The same JSON schema is advertised to MCP clients, so whatever a client learns from
// tools/list is exactly what is enforced here.
type Validator struct {
	schema     *jsonschema.Schema
	properties map[string]*jsonschema.Resolved
	messages   map[string]string
}

// NewValidator builds the generate_image argument schema and resolves each property.
func NewValidator() (*Validator, error) {
	minCount, maxCount := float64(MinCount), float64(MaxCount)
	minLen := 1

	props := map[string]*jsonschema.Schema{
		ArgPrompt: {
			Type:        "string",
			Description: "Text description of the image you want to generate",
			MinLength:   &minLen,
		},
		ArgCount: {
			Type:        "integer",
			Description: "Number of images to generate (1-10, default: 1)",
			Minimum:     &minCount,
			Maximum:     &maxCount,
			Default:     json.RawMessage(fmt.Sprint(DefaultCount)),
		},
		ArgResponseFormat: {
			Type:        "string",
			Description: "Format of the generated images ('url' or 'b64_json')",
			Enum:        []any{string(FormatURL), string(FormatBase64)},
			Default:     json.RawMessage(fmt.Sprintf("%q", DefaultFormat)),
		},
	}

	v := &Validator{
		schema: &jsonschema.Schema{
			Type:       "object",
			Properties: props,
			Required:   []string{ArgPrompt},
		},
		properties: make(map[string]*jsonschema.Resolved, len(props)),
		messages: map[string]string{
			ArgPrompt:         msgPromptRequired,
			ArgCount:          msgCountRange,
			ArgResponseFormat: msgFormatInvalid,
		},
	}

	for name, prop := range props {
		resolved, err := prop.Resolve(nil)
		if err != nil {
			return nil, fmt.Errorf("resolve schema for %s: %w", name, err)
		}
		v.properties[name] = resolved
	}

	return v, nil
}

// Schema returns the input schema advertised for the tool.
func (v *Validator) Schema() *jsonschema.Schema {
	return v.schema
}

// ValidateJSON decodes raw tool arguments and validates them.
func (v *Validator) ValidateJSON(raw json.RawMessage) (GenerationRequest, error) {
	args := map[string]any{}
	if len(raw) > 0 && string(raw) != "null" {
		if err := json.Unmarshal(raw, &args); err != nil {
			return GenerationRequest{}, &InvalidArgumentError{
				Field:   "arguments",
				Message: "arguments must be a JSON object",
			}
		}
	}
	return v.Validate(args)
}

// Validate checks args against the schema, applies defaults and returns the typed request.
// Unknown keys are ignored and an explicit null is treated like an omitted key.
func (v *Validator) Validate(args map[string]any) (GenerationRequest, error) {
	req := GenerationRequest{
		Count:  DefaultCount,
		Format: DefaultFormat,
	}

	prompt, ok := args[ArgPrompt]
	if !ok || prompt == nil {
		return GenerationRequest{}, v.invalid(ArgPrompt)
	}
	if err := v.check(ArgPrompt, prompt); err != nil {
		return GenerationRequest{}, err
	}
	req.Prompt = prompt.(string)
	if strings.TrimSpace(req.Prompt) == "" {
		return GenerationRequest{}, v.invalid(ArgPrompt)
	}

	if n, ok := args[ArgCount]; ok && n != nil {
		if err := v.check(ArgCount, n); err != nil {
			return GenerationRequest{}, err
		}
		count, ok := toInt(n)
		if !ok {
			return GenerationRequest{}, v.invalid(ArgCount)
		}
		req.Count = count
	}

	if f, ok := args[ArgResponseFormat]; ok && f != nil {
		if err := v.check(ArgResponseFormat, f); err != nil {
			return GenerationRequest{}, err
		}
		req.Format = ImageFormat(f.(string))
	}

	return req, nil
}

func (v *Validator) check(name string, value any) error {
	if err := v.properties[name].Validate(value); err != nil {
		invalid := v.invalid(name)
		invalid.Message = fmt.Sprintf("%s: %v", invalid.Message, err)
		return invalid
	}
	return nil
}

func (v *Validator) invalid(name string) *InvalidArgumentError {
	return &InvalidArgumentError{Field: name, Message: v.messages[name]}
}

// toInt narrows a schema-approved integer to int. JSON decoding yields float64.
func toInt(value any) (int, bool) {
	switch n := value.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		return int(n), true
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return int(i), true
	default:
		return 0, false
	}
}
