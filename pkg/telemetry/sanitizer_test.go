package telemetry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePIILevel(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    PIILevel
		wantErr bool
	}{
		{"empty defaults to hashed", "", PIILevelHashed, false},
		{"none", "none", PIILevelNone, false},
		{"upper case full", "FULL", PIILevelFull, false},
		{"padded hashed", "  hashed ", PIILevelHashed, false},
		{"unknown", "partial", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePIILevel(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSanitizePrompt_None(t *testing.T) {
	s := NewSanitizer(PIILevelNone, "grokart")
	assert.Equal(t, "[REDACTED]", s.SanitizePrompt("a red fox drawn by john@example.com"))
}

func TestSanitizePrompt_Full(t *testing.T) {
	s := NewSanitizer(PIILevelFull, "grokart")
	input := "a red fox drawn by john@example.com"
	assert.Equal(t, input, s.SanitizePrompt(input))
}

func TestSanitizePrompt_Hashed(t *testing.T) {
	s := NewSanitizer(PIILevelHashed, "grokart")

	tests := []struct {
		name     string
		input    string
		absent   string
		marker   string
		survives string
	}{
		{"email", "poster for john.doe@example.com in blue", "john.doe@example.com", "[EMAIL:", "in blue"},
		{"phone", "billboard with 555-123-4567 on it", "555-123-4567", "[PHONE:", "billboard with"},
		{"ssn", "card showing 123-45-6789", "123-45-6789", "[SSN:REDACTED]", "card showing"},
		{"credit card", "receipt 4111 1111 1111 1111 on a table", "4111 1111 1111 1111", "[CC:REDACTED]", "on a table"},
		{"ipv4", "terminal printing 192.168.1.20", "192.168.1.20", "[IP:", "terminal printing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := s.SanitizePrompt(tt.input)
			assert.NotContains(t, result, tt.absent)
			assert.Contains(t, result, tt.marker)
			assert.Contains(t, result, tt.survives)
		})
	}
}

func TestSanitizePrompt_HashIsSalted(t *testing.T) {
	a := NewSanitizer(PIILevelHashed, "service-a")
	b := NewSanitizer(PIILevelHashed, "service-b")

	input := "mail john@example.com"
	assert.Equal(t, a.SanitizePrompt(input), a.SanitizePrompt(input))
	assert.NotEqual(t, a.SanitizePrompt(input), b.SanitizePrompt(input))
}

func TestSanitizePrompt_NilSanitizer(t *testing.T) {
	var s *Sanitizer
	assert.Equal(t, "[REDACTED]", s.SanitizePrompt("anything"))
}
