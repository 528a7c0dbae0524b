// Package vision provides image validation and the Gemini-backed
// image-to-search-phrase collaborator.
package vision

import (
	"context"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"

	"pricefinder/search-api/internal/domain/search"
	"pricefinder/search-api/internal/infrastructure/config"
	"pricefinder/search-api/internal/infrastructure/metrics"
	"pricefinder/search-api/utils/platformerrors"
)

const describePrompt = "Identify the main product in this image. " +
	"Reply with a short shopping search phrase (product type, brand if visible, color), " +
	"5 words or fewer, no punctuation."

// Client turns product images into search phrases with Gemini.
type Client struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

var _ search.Vision = (*Client)(nil)

// NewClient creates the Gemini vision client. Without an API key the client
// still constructs; Describe then fails with a configuration error so image
// requests degrade instead of crashing the service.
func NewClient(cfg *config.Config) (*Client, error) {
	c := &Client{
		model:   cfg.GeminiModel,
		timeout: time.Duration(cfg.VisionTimeout) * time.Second,
	}
	if cfg.GeminiAPIKey == "" {
		log.Warn().Msg("no vision credential configured, image descriptions disabled")
		return c, nil
	}

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(cfg.GeminiAPIKey))
	if err != nil {
		return nil, platformerrors.NewError(
			platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeConfiguration,
			"failed to create vision client",
			err,
		)
	}
	c.client = client
	return c, nil
}

// Validate implements search.Vision.
func (c *Client) Validate(data []byte) error {
	return ValidateImage(data)
}

// Describe returns a single-line search phrase for the image. The call is
// bounded by the configured vision timeout.
func (c *Client) Describe(ctx context.Context, data []byte) (string, error) {
	if c.client == nil {
		return "", platformerrors.NewError(
			platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeConfiguration,
			"vision credential is not configured",
			nil,
		)
	}

	format := detectFormat(data)
	if format == "" {
		return "", platformerrors.NewError(
			platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeValidation,
			"image format is not recognized",
			nil,
		)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	model := c.client.GenerativeModel(c.model)
	start := time.Now()
	resp, err := model.GenerateContent(ctx, genai.Text(describePrompt), genai.ImageData(format, data))
	metrics.RecordExternalProviderLatency("gemini", time.Since(start).Seconds())
	if err != nil {
		return "", platformerrors.NewError(
			platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeExternal,
			"vision request failed",
			err,
		)
	}

	phrase := firstTextPart(resp)
	if phrase == "" {
		return "", platformerrors.NewError(
			platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeExternal,
			"vision response contained no text",
			nil,
		)
	}
	return phrase, nil
}

// firstTextPart extracts the first text part of the first candidate, collapsed
// to a single trimmed line.
func firstTextPart(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				line := strings.Join(strings.Fields(string(text)), " ")
				if line != "" {
					return line
				}
			}
		}
	}
	return ""
}
