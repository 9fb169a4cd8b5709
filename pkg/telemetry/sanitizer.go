package telemetry

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
)

// PIILevel defines how much of a user-supplied prompt may reach logs and spans
type PIILevel string

const (
	// PIILevelNone redacts prompts entirely
	PIILevelNone PIILevel = "none"
	// PIILevelHashed keeps the prompt but hashes detected PII with the service salt
	PIILevelHashed PIILevel = "hashed"
	// PIILevelFull logs prompts verbatim
	PIILevelFull PIILevel = "full"
)

// ParsePIILevel converts a config string into a PIILevel.
func ParsePIILevel(raw string) (PIILevel, error) {
	level := PIILevel(strings.ToLower(strings.TrimSpace(raw)))
	switch level {
	case PIILevelNone, PIILevelHashed, PIILevelFull:
		return level, nil
	case "":
		return PIILevelHashed, nil
	default:
		return "", fmt.Errorf("unknown PII level %q (want none, hashed or full)", raw)
	}
}

// Sanitizer scrubs prompts before they are written to logs or trace attributes
type Sanitizer struct {
	level PIILevel
	salt  string

	emailPattern      *regexp.Regexp
	phonePattern      *regexp.Regexp
	ssnPattern        *regexp.Regexp
	creditCardPattern *regexp.Regexp
	ipv4Pattern       *regexp.Regexp
}

// NewSanitizer creates a sanitizer whose hashes are salted with the service name
func NewSanitizer(level PIILevel, salt string) *Sanitizer {
	return &Sanitizer{
		level:             level,
		salt:              salt,
		emailPattern:      regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`),
		phonePattern:      regexp.MustCompile(`\b\d{3}[-.\s]?\d{3}[-.\s]?\d{4}\b`),
		ssnPattern:        regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`),
		creditCardPattern: regexp.MustCompile(`\b\d{4}[- ]?\d{4}[- ]?\d{4}[- ]?\d{4}\b`),
		ipv4Pattern:       regexp.MustCompile(`\b(?:\d{1,3}\.){3}\d{1,3}\b`),
	}
}

// Level returns the configured level
func (s *Sanitizer) Level() PIILevel {
	return s.level
}

// SanitizePrompt returns the prompt as it may be logged under the configured level
func (s *Sanitizer) SanitizePrompt(prompt string) string {
	if s == nil {
		return "[REDACTED]"
	}
	switch s.level {
	case PIILevelNone:
		return "[REDACTED]"
	case PIILevelFull:
		return prompt
	default:
		return s.hashPII(prompt)
	}
}

func (s *Sanitizer) hashPII(input string) string {
	// SSNs and card numbers go first, the phone pattern would otherwise eat parts of them.
	result := s.ssnPattern.ReplaceAllString(input, "[SSN:REDACTED]")
	result = s.creditCardPattern.ReplaceAllString(result, "[CC:REDACTED]")

	result = s.emailPattern.ReplaceAllStringFunc(result, func(match string) string {
		return fmt.Sprintf("[EMAIL:%s]", s.hash(match))
	})
	result = s.phonePattern.ReplaceAllStringFunc(result, func(match string) string {
		return fmt.Sprintf("[PHONE:%s]", s.hash(match))
	})
	result = s.ipv4Pattern.ReplaceAllStringFunc(result, func(match string) string {
		return fmt.Sprintf("[IP:%s]", s.hash(match))
	})

	return result
}

// hash returns the first 8 hex chars of a salted SHA-256
func (s *Sanitizer) hash(data string) string {
	h := sha256.Sum256([]byte(data + s.salt))
	return hex.EncodeToString(h[:])[:8]
}
