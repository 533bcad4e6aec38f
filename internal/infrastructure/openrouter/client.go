package openrouter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/invopop/jsonschema"
	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"
	"resty.dev/v3"

	"github.com/roomcraft/roomcraft-server/internal/domain/inspiration"
	"github.com/roomcraft/roomcraft-server/internal/infrastructure/metrics"
	"github.com/roomcraft/roomcraft-server/internal/utils/httpclients"
	"github.com/roomcraft/roomcraft-server/pkg/telemetry"
)

const maxErrorBodyLength = 1000

var _ inspiration.Generator = (*Client)(nil)

// Client calls the OpenRouter chat completions API.
type Client struct {
	cfg          Config
	http         *resty.Client
	images       *resty.Client
	sanitizer    *telemetry.Sanitizer
	log          zerolog.Logger
	adviceFormat *openai.ChatCompletionResponseFormat
	sleep        func(ctx context.Context, d time.Duration) error
}

// NewClient creates an OpenRouter client. sanitizer may be nil.
func NewClient(cfg Config, sanitizer *telemetry.Sanitizer, log zerolog.Logger) *Client {
	logger := log.With().Str("component", "openrouter").Logger()
	return &Client{
		cfg:          cfg.withDefaults(),
		http:         httpclients.NewClient("openrouter", logger),
		images:       httpclients.NewClient("image-fetch", logger),
		sanitizer:    sanitizer,
		log:          logger,
		adviceFormat: adviceResponseFormat(),
		sleep:        sleepContext,
	}
}

func adviceResponseFormat() *openai.ChatCompletionResponseFormat {
	reflector := jsonschema.Reflector{DoNotReference: true, ExpandedStruct: true}
	schema := reflector.Reflect(&adviceSchema{})
	schema.Version = ""
	return &openai.ChatCompletionResponseFormat{
		Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
		JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
			Name:   "RoomSimpleVisualization",
			Schema: schema,
			Strict: true,
		},
	}
}

// ===============================================
// Generator
// ===============================================

// GenerateRoomInspiration renders one redesign of the room from its photo and
// the inspiration photos, together with a list of tips.
func (c *Client) GenerateRoomInspiration(ctx context.Context, input inspiration.RoomInspirationInput) (*inspiration.Result, error) {
	if err := c.cfg.Limits.ValidateRoomInspirationInput(input); err != nil {
		return nil, err
	}
	if c.cfg.APIKey == "" {
		return nil, inspiration.NewError(inspiration.KindNotConfigured, "OpenRouter configuration is missing.", nil)
	}

	start := time.Now()
	result, err := c.generateRoomInspiration(ctx, input)
	c.record("inspiration", start, err)
	return result, err
}

func (c *Client) generateRoomInspiration(ctx context.Context, input inspiration.RoomInspirationInput) (*inspiration.Result, error) {
	urls := make([]string, 0, len(input.InspirationPhotos)+1)
	urls = append(urls, input.RoomPhoto.URL)
	for _, p := range input.InspirationPhotos {
		urls = append(urls, p.URL)
	}
	imageURLs, err := c.resolveImages(ctx, urls)
	if err != nil {
		return nil, err
	}

	req := chatRequest{
		Model: c.cfg.InspirationModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: c.inspirationSystemPrompt()},
			c.inspirationUserMessage(input, imageURLs),
		},
		Modalities:  []string{"image", "text"},
		Temperature: temperature,
		TopP:        topP,
		MaxTokens:   inspirationMaxTokens,
	}

	c.log.Info().
		Str("request_id", httpclients.RequestIDFromContext(ctx)).
		Str("room_id", input.RoomID).
		Str("model", req.Model).
		Str("prompt", c.sanitize(input.Prompt)).
		Int("images", len(imageURLs)).
		Bool("inline_images", c.cfg.InlineImages).
		Msg("requesting room inspiration")

	resp, err := c.complete(ctx, "inspiration", req)
	if err != nil {
		return nil, err
	}
	return c.parseInspiration(input.RoomID, resp)
}

// GenerateSimpleAdvice answers a text description with structured advice.
func (c *Client) GenerateSimpleAdvice(ctx context.Context, input inspiration.SimpleAdviceInput) (*inspiration.AdviceResult, error) {
	if err := c.cfg.Limits.ValidateSimpleAdviceInput(input); err != nil {
		return nil, err
	}
	if c.cfg.APIKey == "" || c.cfg.Model == "" {
		return nil, inspiration.NewError(inspiration.KindNotConfigured, "OpenRouter configuration is missing.", nil)
	}

	start := time.Now()
	result, err := c.generateSimpleAdvice(ctx, input)
	c.record("advice", start, err)
	return result, err
}

func (c *Client) generateSimpleAdvice(ctx context.Context, input inspiration.SimpleAdviceInput) (*inspiration.AdviceResult, error) {
	req := chatRequest{
		Model: c.cfg.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: c.adviceSystemPrompt()},
			{Role: openai.ChatMessageRoleUser, Content: c.adviceUserText(input)},
		},
		ResponseFormat: c.adviceFormat,
		Temperature:    temperature,
		TopP:           topP,
		MaxTokens:      adviceMaxTokens,
	}

	c.log.Info().
		Str("request_id", httpclients.RequestIDFromContext(ctx)).
		Str("room_id", input.RoomID).
		Str("model", req.Model).
		Str("description", c.sanitize(input.Description)).
		Msg("requesting simple advice")

	resp, err := c.complete(ctx, "advice", req)
	if err != nil {
		return nil, err
	}
	return c.parseAdvice(input.RoomID, resp)
}

// ===============================================
// Transport
// ===============================================

// complete posts req, retrying transient failures with linear backoff.
func (c *Client) complete(ctx context.Context, kind string, req chatRequest) (*chatResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, inspiration.NewError(inspiration.KindUnknown, "failed to encode OpenRouter request", err)
	}
	c.logPayload(ctx, "openrouter request", body)

	var lastErr error
	for attempt := 0; attempt <= c.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			metrics.RecordGenerationRetry(kind, retryLabel(lastErr))
			c.log.Warn().
				Err(lastErr).
				Str("request_id", httpclients.RequestIDFromContext(ctx)).
				Int("attempt", attempt+1).
				Msg("retrying OpenRouter request")
			if err := c.sleep(ctx, time.Duration(attempt)*c.cfg.RetryBackoff); err != nil {
				return nil, canceledError(ctx, err)
			}
		}

		resp, err := c.attempt(ctx, body)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		if ctx.Err() != nil || !retryable(err) {
			break
		}
	}
	return nil, lastErr
}

func (c *Client) attempt(ctx context.Context, body []byte) (*chatResponse, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	r := c.http.R().
		SetContext(attemptCtx).
		SetHeader("Content-Type", "application/json").
		SetHeader("Authorization", "Bearer "+c.cfg.APIKey).
		SetBody(body)
	if c.cfg.SiteURL != "" {
		r.SetHeader("HTTP-Referer", c.cfg.SiteURL)
	}
	if c.cfg.AppName != "" {
		r.SetHeader("X-Title", c.cfg.AppName)
	}

	resp, err := r.Post(c.cfg.BaseURL + "/chat/completions")
	if err != nil {
		if ctx.Err() == nil && (errors.Is(attemptCtx.Err(), context.DeadlineExceeded) || isTimeout(err)) {
			return nil, inspiration.NewError(inspiration.KindTimeout, "OpenRouter request timed out.", err)
		}
		if ctx.Err() != nil {
			return nil, canceledError(ctx, err)
		}
		return nil, inspiration.NewError(inspiration.KindUnknown, "OpenRouter request failed", err)
	}

	raw := resp.Bytes()
	if resp.StatusCode() >= http.StatusBadRequest {
		return nil, statusError(resp.StatusCode(), raw)
	}
	c.logPayload(ctx, "openrouter response", raw)

	var out chatResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, inspiration.NewError(inspiration.KindInvalidResponse, "OpenRouter returned malformed JSON", err)
	}
	return &out, nil
}

func statusError(status int, raw []byte) *inspiration.GenerationError {
	body := string(raw)
	if len(body) > maxErrorBodyLength {
		body = body[:maxErrorBodyLength]
	}

	message := fmt.Sprintf("OpenRouter error %d", status)
	var upstream upstreamError
	if err := json.Unmarshal(raw, &upstream); err == nil && upstream.Error != nil && upstream.Error.Message != "" {
		message += ": " + upstream.Error.Message
	}

	kind := inspiration.KindUnknown
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		kind = inspiration.KindAuthFailure
	case http.StatusTooManyRequests:
		kind = inspiration.KindRateLimited
	}
	return &inspiration.GenerationError{Kind: kind, Status: status, Body: body, Message: message}
}

func retryable(err error) bool {
	var genErr *inspiration.GenerationError
	if !errors.As(err, &genErr) {
		return false
	}
	if genErr.Kind == inspiration.KindTimeout {
		return true
	}
	switch genErr.Status {
	case http.StatusTooManyRequests, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return false
}

func retryLabel(err error) string {
	var genErr *inspiration.GenerationError
	if errors.As(err, &genErr) && genErr.Status != 0 {
		return fmt.Sprintf("%d", genErr.Status)
	}
	return inspiration.KindOf(err).String()
}

func canceledError(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return inspiration.NewError(inspiration.KindTimeout, "OpenRouter request timed out.", err)
	}
	return inspiration.NewError(inspiration.KindUnknown, "OpenRouter request canceled", err)
}

func isTimeout(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// ===============================================
// Response normalization
// ===============================================

func (c *Client) parseInspiration(roomID string, resp *chatResponse) (*inspiration.Result, error) {
	msg := resp.firstMessage()
	if msg == nil {
		return nil, inspiration.NewError(inspiration.KindInvalidResponse, "OpenRouter response missing message.", nil)
	}

	var content inspirationContent
	if text := stripCodeFence(msg.text()); text != "" {
		_ = json.Unmarshal([]byte(text), &content)
	}

	bulletPoints := content.Porady
	if content.BulletPoints != nil {
		bulletPoints = *content.BulletPoints
	}
	if bulletPoints == nil {
		bulletPoints = []string{}
	}

	// Image-capable models attach images to the message; schema-shaped answers
	// embed them in the JSON content instead.
	var urls []string
	for _, img := range msg.Images {
		if img.ImageURL.URL != "" {
			urls = append(urls, img.ImageURL.URL)
		}
	}
	if len(urls) == 0 {
		for _, img := range content.Images {
			if img.URL != "" {
				urls = append(urls, img.URL)
			}
		}
	}
	if len(urls) == 0 {
		return nil, inspiration.NewError(inspiration.KindInvalidResponse, "OpenRouter response missing images", nil)
	}
	if len(urls) > c.cfg.ImagesPerInspiration {
		urls = urls[:c.cfg.ImagesPerInspiration]
	}

	images := make([]inspiration.GeneratedImage, len(urls))
	for i, u := range urls {
		images[i] = inspiration.GeneratedImage{URL: u, Position: i + 1, StoragePath: u}
	}
	return &inspiration.Result{RoomID: roomID, BulletPoints: bulletPoints, Images: images}, nil
}

func (c *Client) parseAdvice(roomID string, resp *chatResponse) (*inspiration.AdviceResult, error) {
	msg := resp.firstMessage()
	if msg == nil {
		return nil, inspiration.NewError(inspiration.KindInvalidResponse, "OpenRouter response missing message.", nil)
	}

	text := msg.text()
	advice := strings.TrimSpace(text)
	var content adviceContent
	if err := json.Unmarshal([]byte(stripCodeFence(text)), &content); err == nil && content.Advice != nil {
		advice = *content.Advice
	}

	result := &inspiration.AdviceResult{RoomID: roomID, Advice: advice}
	for _, img := range msg.Images {
		if img.ImageURL.URL != "" {
			result.Image = &inspiration.GeneratedImage{URL: img.ImageURL.URL, Position: 1, StoragePath: img.ImageURL.URL}
			break
		}
	}
	if result.Advice == "" && result.Image == nil {
		return nil, inspiration.NewError(inspiration.KindInvalidResponse, "OpenRouter response missing advice", nil)
	}
	return result, nil
}

// ===============================================
// Logging
// ===============================================

func (c *Client) logPayload(ctx context.Context, msg string, raw []byte) {
	event := c.log.Debug()
	if !event.Enabled() {
		return
	}
	payload := telemetry.TruncateJSON(raw, telemetry.DefaultTruncateLength)
	if fields, ok := payload.(map[string]any); ok && c.sanitizer != nil {
		payload = c.sanitizer.SanitizeFields(fields)
	}
	event.
		Str("request_id", httpclients.RequestIDFromContext(ctx)).
		Interface("payload", payload).
		Msg(msg)
}

func (c *Client) record(kind string, start time.Time, err error) {
	outcome := "success"
	if err != nil {
		outcome = inspiration.KindOf(err).String()
	}
	metrics.RecordGeneration(kind, outcome, time.Since(start).Seconds())
}

func (c *Client) sanitize(text string) string {
	if c.sanitizer == nil {
		return text
	}
	return c.sanitizer.SanitizeText(text)
}
