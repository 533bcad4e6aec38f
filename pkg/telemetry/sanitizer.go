package telemetry

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strings"
)

// PIILevel defines how much user-authored text reaches logs and spans.
type PIILevel string

const (
	// PIILevelNone redacts all user content
	PIILevelNone PIILevel = "none"
	// PIILevelHashed replaces detected PII with salted hashes
	PIILevelHashed PIILevel = "hashed"
	// PIILevelFull performs no sanitization
	PIILevelFull PIILevel = "full"
)

// ParsePIILevel maps a config value to a level. Unknown values fall back to hashed.
func ParsePIILevel(raw string) PIILevel {
	switch PIILevel(strings.ToLower(strings.TrimSpace(raw))) {
	case PIILevelNone:
		return PIILevelNone
	case PIILevelFull:
		return PIILevelFull
	default:
		return PIILevelHashed
	}
}

type piiPattern struct {
	label  string
	re     *regexp.Regexp
	hashed bool
}

// Sanitizer scrubs prompts, photo descriptions and user ids before they are logged.
type Sanitizer struct {
	level    PIILevel
	salt     string
	patterns []piiPattern
}

// NewSanitizer creates a sanitizer. salt keeps hashes stable within one deployment.
func NewSanitizer(level PIILevel, salt string) *Sanitizer {
	return &Sanitizer{
		level: level,
		salt:  salt,
		patterns: []piiPattern{
			{label: "EMAIL", re: regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`), hashed: true},
			{label: "CC", re: regexp.MustCompile(`\b\d{4}[- ]?\d{4}[- ]?\d{4}[- ]?\d{4}\b`)},
			{label: "PHONE", re: regexp.MustCompile(`(?:\+\d{1,3}[-.\s]?)?\b\d{3}[-.\s]?\d{3}[-.\s]?\d{3,4}\b`), hashed: true},
			{label: "IP", re: regexp.MustCompile(`\b(?:\d{1,3}\.){3}\d{1,3}\b`), hashed: true},
		},
	}
}

// Level returns the configured level.
func (s *Sanitizer) Level() PIILevel {
	return s.level
}

// SanitizeText sanitizes free text written by a user.
func (s *Sanitizer) SanitizeText(input string) string {
	if input == "" {
		return ""
	}
	switch s.level {
	case PIILevelNone:
		return "[REDACTED]"
	case PIILevelFull:
		return input
	default:
		return s.scrub(input)
	}
}

// SanitizeUserID hashes or redacts a user id according to the level.
func (s *Sanitizer) SanitizeUserID(userID string) string {
	if userID == "" {
		return ""
	}
	switch s.level {
	case PIILevelNone:
		return "[REDACTED]"
	case PIILevelFull:
		return userID
	default:
		return s.hash(userID)
	}
}

// SanitizeFields sanitizes every string value in fields, recursing into maps and slices.
func (s *Sanitizer) SanitizeFields(fields map[string]any) map[string]any {
	if fields == nil {
		return nil
	}
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		out[k] = s.sanitizeValue(v)
	}
	return out
}

func (s *Sanitizer) sanitizeValue(v any) any {
	switch val := v.(type) {
	case string:
		return s.SanitizeText(val)
	case map[string]any:
		return s.SanitizeFields(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = s.sanitizeValue(item)
		}
		return out
	default:
		return v
	}
}

func (s *Sanitizer) scrub(input string) string {
	result := input
	for _, p := range s.patterns {
		label, hashed := p.label, p.hashed
		result = p.re.ReplaceAllStringFunc(result, func(match string) string {
			if !hashed {
				return "[" + label + ":REDACTED]"
			}
			return "[" + label + ":" + s.hash(match) + "]"
		})
	}
	return result
}

// hash returns the first 8 hex chars of a salted SHA-256.
func (s *Sanitizer) hash(data string) string {
	sum := sha256.Sum256([]byte(data + s.salt))
	return hex.EncodeToString(sum[:])[:8]
}
