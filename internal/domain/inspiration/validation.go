package inspiration

import "strings"

// Limits bounds generation inputs before any network call.
type Limits struct {
	PromptMaxLength      int
	DescriptionMaxLength int
	MinInspirationPhotos int
}

// DefaultLimits returns the production limits.
func DefaultLimits() Limits {
	return Limits{
		PromptMaxLength:      200,
		DescriptionMaxLength: 500,
		MinInspirationPhotos: 2,
	}
}

// ValidateRoomInspirationInput checks preconditions of a full generation.
func (l Limits) ValidateRoomInspirationInput(input RoomInspirationInput) error {
	if input.RoomID == "" {
		return NewError(KindInvalidInput, "roomId is required.", nil)
	}
	if input.RoomPhoto.URL == "" {
		return NewError(KindInvalidInput, "roomPhoto.url is required.", nil)
	}
	if len(input.InspirationPhotos) < l.MinInspirationPhotos {
		return NewError(KindInvalidInput, "At least two inspiration photos are required.", nil)
	}
	for _, p := range input.InspirationPhotos {
		if p.URL == "" {
			return NewError(KindInvalidInput, "Each inspiration photo must include a url.", nil)
		}
	}
	if runeLen(input.Prompt) > l.PromptMaxLength {
		return NewError(KindInvalidInput, "Prompt exceeds maximum length.", nil)
	}
	if input.RoomPhoto.Description != nil && runeLen(*input.RoomPhoto.Description) > l.DescriptionMaxLength {
		return NewError(KindInvalidInput, "Room photo description exceeds maximum length.", nil)
	}
	for _, p := range input.InspirationPhotos {
		if p.Description != nil && runeLen(*p.Description) > l.DescriptionMaxLength {
			return NewError(KindInvalidInput, "Inspiration photo description exceeds maximum length.", nil)
		}
	}
	return nil
}

// ValidateSimpleAdviceInput checks preconditions of a simple advice request.
func (l Limits) ValidateSimpleAdviceInput(input SimpleAdviceInput) error {
	if input.RoomID == "" {
		return NewError(KindInvalidInput, "roomId is required.", nil)
	}
	if input.RoomType == "" {
		return NewError(KindInvalidInput, "roomType is required.", nil)
	}
	if strings.TrimSpace(input.Description) == "" {
		return NewError(KindInvalidInput, "description is required.", nil)
	}
	if runeLen(input.Description) > l.PromptMaxLength {
		return NewError(KindInvalidInput, "Description exceeds maximum length.", nil)
	}
	return nil
}

func runeLen(s string) int {
	return len([]rune(s))
}
