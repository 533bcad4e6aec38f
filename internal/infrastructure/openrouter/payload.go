package openrouter

import (
	"encoding/json"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// chatRequest is the OpenRouter chat completion body. go-openai's request type
// has no modalities field, so only its message and response format types are reused.
type chatRequest struct {
	Model          string                               `json:"model"`
	Messages       []openai.ChatCompletionMessage       `json:"messages"`
	Modalities     []string                             `json:"modalities,omitempty"`
	ResponseFormat *openai.ChatCompletionResponseFormat `json:"response_format,omitempty"`
	Stream         bool                                 `json:"stream"`
	Temperature    float32                              `json:"temperature"`
	TopP           float32                              `json:"top_p"`
	MaxTokens      int                                  `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	ID      string       `json:"id"`
	Model   string       `json:"model"`
	Choices []chatChoice `json:"choices"`
}

type chatChoice struct {
	Message      *chatMessage `json:"message"`
	FinishReason string       `json:"finish_reason"`
}

type chatMessage struct {
	Role    string          `json:"role"`
	Content json.RawMessage `json:"content"`
	Images  []messageImage  `json:"images"`
}

type messageImage struct {
	Type     string                     `json:"type"`
	ImageURL openai.ChatMessageImageURL `json:"image_url"`
}

// text flattens content that is either a string or an array of text parts.
func (m *chatMessage) text() string {
	raw := strings.TrimSpace(string(m.Content))
	if raw == "" || raw == "null" {
		return ""
	}

	var s string
	if err := json.Unmarshal(m.Content, &s); err == nil {
		return s
	}

	var parts []openai.ChatMessagePart
	if err := json.Unmarshal(m.Content, &parts); err == nil {
		texts := make([]string, 0, len(parts))
		for _, p := range parts {
			if p.Text != "" {
				texts = append(texts, p.Text)
			}
		}
		return strings.Join(texts, " ")
	}
	return ""
}

func (r *chatResponse) firstMessage() *chatMessage {
	if len(r.Choices) == 0 {
		return nil
	}
	return r.Choices[0].Message
}

// inspirationContent covers both the plain JSON answer and the schema shaped one.
// BulletPoints is a pointer so an absent key can be told apart from an empty list.
type inspirationContent struct {
	BulletPoints *[]string `json:"bulletPoints"`
	Porady       []string `json:"porady"`
	Images       []struct {
		URL      string `json:"url"`
		Position int    `json:"position"`
	} `json:"images"`
}

// adviceSchema is reflected into the strict json_schema response format.
type adviceSchema struct {
	Advice string `json:"advice" jsonschema:"description=Practical advice for arranging the room"`
}

type adviceContent struct {
	Advice *string `json:"advice"`
}

type upstreamError struct {
	Error *openai.APIError `json:"error"`
}

// stripCodeFence removes a surrounding Markdown code fence such as ```json ... ```.
func stripCodeFence(text string) string {
	cleaned := strings.TrimSpace(text)
	if !strings.HasPrefix(cleaned, "```") {
		return cleaned
	}
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(strings.TrimSpace(cleaned), "```")
	return strings.TrimSpace(cleaned)
}
