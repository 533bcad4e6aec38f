package telemetry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePIILevel(t *testing.T) {
	tests := []struct {
		raw  string
		want PIILevel
	}{
		{"none", PIILevelNone},
		{" FULL ", PIILevelFull},
		{"hashed", PIILevelHashed},
		{"", PIILevelHashed},
		{"bogus", PIILevelHashed},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, ParsePIILevel(tt.raw))
		})
	}
}

func TestSanitizeText_None(t *testing.T) {
	s := NewSanitizer(PIILevelNone, "roomcraft")
	assert.Equal(t, "[REDACTED]", s.SanitizeText("Scandinavian style, mail me at anna@example.com"))
	assert.Equal(t, "", s.SanitizeText(""))
}

func TestSanitizeText_Full(t *testing.T) {
	s := NewSanitizer(PIILevelFull, "roomcraft")
	input := "Scandinavian style, mail me at anna@example.com"
	assert.Equal(t, input, s.SanitizeText(input))
}

func TestSanitizeText_Hashed(t *testing.T) {
	s := NewSanitizer(PIILevelHashed, "roomcraft")

	tests := []struct {
		name    string
		input   string
		absent  string
		marker  string
		context string
	}{
		{"email", "Warm oak floors, contact anna.k@example.com please", "anna.k@example.com", "[EMAIL:", "Warm oak floors"},
		{"phone", "Call 555-123-4567 about the sofa", "555-123-4567", "[PHONE:", "about the sofa"},
		{"international phone", "Call +48 601 234 567 tomorrow", "601 234 567", "[PHONE:", "tomorrow"},
		{"card", "Pay with 4111 1111 1111 1111 now", "4111", "[CC:REDACTED]", "now"},
		{"ip", "Camera at 192.168.1.10 streams", "192.168.1.10", "[IP:", "streams"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := s.SanitizeText(tt.input)
			assert.NotContains(t, result, tt.absent)
			assert.Contains(t, result, tt.marker)
			assert.Contains(t, result, tt.context)
		})
	}
}

func TestSanitizeText_HashIsStablePerSalt(t *testing.T) {
	a := NewSanitizer(PIILevelHashed, "salt-a")
	b := NewSanitizer(PIILevelHashed, "salt-b")
	input := "anna@example.com"

	assert.Equal(t, a.SanitizeText(input), a.SanitizeText(input))
	assert.NotEqual(t, a.SanitizeText(input), b.SanitizeText(input))
}

func TestSanitizeText_LeavesPlainPromptsAlone(t *testing.T) {
	s := NewSanitizer(PIILevelHashed, "roomcraft")
	prompt := "Bright living room with plants and a reading corner"
	assert.Equal(t, prompt, s.SanitizeText(prompt))
}

func TestSanitizeUserID(t *testing.T) {
	userID := "9f2a1c3e-0000-4000-8000-000000000001"

	assert.Equal(t, "", NewSanitizer(PIILevelHashed, "x").SanitizeUserID(""))
	assert.Equal(t, "[REDACTED]", NewSanitizer(PIILevelNone, "x").SanitizeUserID(userID))
	assert.Equal(t, userID, NewSanitizer(PIILevelFull, "x").SanitizeUserID(userID))

	hashed := NewSanitizer(PIILevelHashed, "x").SanitizeUserID(userID)
	assert.Len(t, hashed, 8)
	assert.NotEqual(t, userID, hashed)
}

func TestSanitizeFields(t *testing.T) {
	s := NewSanitizer(PIILevelHashed, "roomcraft")
	fields := map[string]any{
		"prompt": "email anna@example.com",
		"count":  3,
		"nested": map[string]any{"note": "call 555-123-4567"},
		"list":   []any{"anna@example.com", 1.5},
	}

	out := s.SanitizeFields(fields)
	require.NotNil(t, out)
	assert.NotContains(t, out["prompt"], "anna@example.com")
	assert.Equal(t, 3, out["count"])
	assert.NotContains(t, out["nested"].(map[string]any)["note"], "555-123-4567")
	list := out["list"].([]any)
	assert.NotEqual(t, "anna@example.com", list[0])
	assert.Equal(t, 1.5, list[1])

	assert.Equal(t, "email anna@example.com", fields["prompt"], "input must not be mutated")
	assert.Nil(t, s.SanitizeFields(nil))
}
