package openrouter

import (
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/roomcraft/roomcraft-server/internal/domain/inspiration"
)

func (c *Client) inspirationSystemPrompt() string {
	return fmt.Sprintf("You are an interior design assistant. From a photo of the user's room and their "+
		"inspiration photos you generate a single visualization of the redesigned room at %d×%d. "+
		"Also return a few practical tips as JSON in the form {\"bulletPoints\": [\"...\"]}.",
		c.cfg.ImageWidth, c.cfg.ImageHeight)
}

func (c *Client) adviceSystemPrompt() string {
	return "You are an interior design assistant. From a short description of a room you write " +
		"concise, practical advice for arranging it. Reply only with JSON matching the schema."
}

// inspirationUserText describes the attached images in the order they are sent.
func (c *Client) inspirationUserText(input inspiration.RoomInspirationInput) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Room type: %s.\n", input.RoomType)

	b.WriteString("Room photo")
	if d := trimmed(input.RoomPhoto.Description); d != "" {
		b.WriteString(": " + d)
	}
	b.WriteString("\n")

	for i, p := range input.InspirationPhotos {
		fmt.Fprintf(&b, "Inspiration %d", i+1)
		if d := trimmed(p.Description); d != "" {
			b.WriteString(": " + d)
		}
		b.WriteString("\n")
	}

	if prompt := strings.TrimSpace(input.Prompt); prompt != "" {
		fmt.Fprintf(&b, "Additional request: %s\n", prompt)
	}
	fmt.Fprintf(&b, "Image size: %d×%d.\n", c.cfg.ImageWidth, c.cfg.ImageHeight)
	b.WriteString("Generate one visualization of the room arranged after the inspirations.")
	return b.String()
}

func (c *Client) adviceUserText(input inspiration.SimpleAdviceInput) string {
	return fmt.Sprintf("Room type: %s.\nDescription: %s", input.RoomType, strings.TrimSpace(input.Description))
}

// inspirationUserMessage is a text part followed by the room photo and then
// each inspiration photo. imageURLs holds either data URLs or plain URLs.
func (c *Client) inspirationUserMessage(input inspiration.RoomInspirationInput, imageURLs []string) openai.ChatCompletionMessage {
	parts := make([]openai.ChatMessagePart, 0, len(imageURLs)+1)
	parts = append(parts, openai.ChatMessagePart{
		Type: openai.ChatMessagePartTypeText,
		Text: c.inspirationUserText(input),
	})
	for _, u := range imageURLs {
		parts = append(parts, openai.ChatMessagePart{
			Type:     openai.ChatMessagePartTypeImageURL,
			ImageURL: &openai.ChatMessageImageURL{URL: u},
		})
	}
	return openai.ChatCompletionMessage{
		Role:         openai.ChatMessageRoleUser,
		MultiContent: parts,
	}
}

func trimmed(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
