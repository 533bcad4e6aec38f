package telemetry

import (
	"encoding/json"
	"strings"
)

// DefaultTruncateLength caps strings in logged upstream payloads.
const DefaultTruncateLength = 100

// DeepTruncate returns a copy of v with every string longer than max cut to max
// characters followed by "...". A string under a "content" key that parses as a
// JSON object or array, optionally inside a Markdown code fence, is expanded first so its fields are truncated one by one.
// v is expected to be a decoded JSON value; other types are returned as is.
func DeepTruncate(v any, max int) any {
	if max <= 0 {
		max = DefaultTruncateLength
	}
	return deepTruncate(v, max, "")
}

func deepTruncate(v any, max int, key string) any {
	switch val := v.(type) {
	case string:
		if key == "content" {
			if expanded, ok := parseJSONContent(val); ok {
				return deepTruncate(expanded, max, "")
			}
		}
		return truncateString(val, max)
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = deepTruncate(item, max, k)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = deepTruncate(item, max, "")
		}
		return out
	default:
		return v
	}
}

// TruncateJSON decodes raw and deep-truncates it. Undecodable input is
// truncated as a plain string.
func TruncateJSON(raw []byte, max int) any {
	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		if max <= 0 {
			max = DefaultTruncateLength
		}
		return truncateString(string(raw), max)
	}
	return DeepTruncate(decoded, max)
}

func parseJSONContent(s string) (any, bool) {
	trimmed := strings.TrimSpace(s)
	if strings.HasPrefix(trimmed, "```") {
		trimmed = strings.TrimPrefix(trimmed, "```json")
		trimmed = strings.TrimPrefix(trimmed, "```")
		trimmed = strings.TrimSpace(strings.TrimSuffix(trimmed, "```"))
	}
	if !strings.HasPrefix(trimmed, "{") && !strings.HasPrefix(trimmed, "[") {
		return nil, false
	}
	var decoded any
	if err := json.Unmarshal([]byte(trimmed), &decoded); err != nil {
		return nil, false
	}
	return decoded, true
}

func truncateString(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
