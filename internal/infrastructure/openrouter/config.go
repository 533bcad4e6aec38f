package openrouter

import (
	"time"

	"github.com/roomcraft/roomcraft-server/internal/config"
	"github.com/roomcraft/roomcraft-server/internal/domain/inspiration"
)

const (
	defaultBaseURL          = "https://openrouter.ai/api/v1"
	defaultInspirationModel = "google/gemini-2.5-flash-image"

	inspirationMaxTokens = 4000
	adviceMaxTokens      = 2000
	temperature          = 0.6
	topP                 = 0.9
)

// Config configures the OpenRouter client.
type Config struct {
	APIKey            string
	BaseURL           string
	Model             string
	InspirationModel  string
	Timeout           time.Duration
	MaxRetries        int
	RetryBackoff      time.Duration
	InlineImages      bool
	ImageFetchTimeout time.Duration
	MaxImageBytes     int64
	SiteURL           string
	AppName           string

	ImagesPerInspiration int
	ImageWidth           int
	ImageHeight          int
	Limits               inspiration.Limits
}

// ConfigFromService maps the service configuration onto the client.
func ConfigFromService(cfg *config.Config) Config {
	return Config{
		APIKey:               cfg.OpenRouterAPIKey,
		BaseURL:              cfg.OpenRouterBaseURL,
		Model:                cfg.OpenRouterModel,
		InspirationModel:     cfg.OpenRouterInspirationModel,
		Timeout:              cfg.OpenRouterTimeout,
		MaxRetries:           cfg.OpenRouterMaxRetries,
		RetryBackoff:         cfg.OpenRouterRetryBackoff,
		InlineImages:         cfg.OpenRouterInlineImages,
		ImageFetchTimeout:    cfg.ImageFetchTimeout,
		MaxImageBytes:        cfg.MaxFileSizeBytes(),
		SiteURL:              cfg.OpenRouterSiteURL,
		AppName:              cfg.OpenRouterAppName,
		ImagesPerInspiration: cfg.ImagesPerInspiration,
		ImageWidth:           cfg.GeneratedImageWidth,
		ImageHeight:          cfg.GeneratedImageHeight,
		Limits: inspiration.Limits{
			PromptMaxLength:      cfg.InspirationPromptMaxLen,
			DescriptionMaxLength: cfg.PhotoDescriptionMaxLength,
			MinInspirationPhotos: cfg.MinInspirationPhotos,
		},
	}
}

func (c Config) withDefaults() Config {
	if c.BaseURL == "" {
		c.BaseURL = defaultBaseURL
	}
	if c.InspirationModel == "" {
		c.InspirationModel = defaultInspirationModel
	}
	if c.Timeout <= 0 {
		c.Timeout = 120 * time.Second
	}
	if c.MaxRetries < 0 {
		c.MaxRetries = 0
	}
	if c.ImageFetchTimeout <= 0 {
		c.ImageFetchTimeout = 15 * time.Second
	}
	if c.MaxImageBytes <= 0 {
		c.MaxImageBytes = 10 * 1024 * 1024
	}
	if c.ImagesPerInspiration <= 0 {
		c.ImagesPerInspiration = 2
	}
	if c.ImageWidth <= 0 || c.ImageHeight <= 0 {
		c.ImageWidth, c.ImageHeight = 1080, 720
	}
	if c.Limits == (inspiration.Limits{}) {
		c.Limits = inspiration.DefaultLimits()
	}
	return c
}
