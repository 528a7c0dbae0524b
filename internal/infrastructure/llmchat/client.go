// Package llmchat is a minimal OpenAI-compatible chat completions client used
// by the shopping assistant.
package llmchat

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"pricefinder/search-api/internal/infrastructure/config"
	"pricefinder/search-api/internal/infrastructure/metrics"
	"pricefinder/search-api/utils/platformerrors"
)

// Message is one turn of a chat conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Temperature float64   `json:"temperature,omitempty"`
}

type completionResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Client calls an OpenAI-compatible /chat/completions endpoint.
type Client struct {
	client *resty.Client
	model  string
}

// NewClient builds the chat client from config.
func NewClient(cfg *config.Config) *Client {
	client := resty.New().
		SetBaseURL(cfg.AssistantBaseURL).
		SetTimeout(time.Duration(cfg.AssistantTimeout) * time.Second).
		SetHeader("Content-Type", "application/json").
		SetRetryCount(0)
	if cfg.AssistantAPIKey != "" {
		client.SetAuthToken(cfg.AssistantAPIKey)
	}
	return &Client{client: client, model: cfg.AssistantModel}
}

// Configured reports whether a backend URL is set.
func (c *Client) Configured() bool {
	return c.client.BaseURL != ""
}

// Complete sends the message history and returns the assistant reply text.
func (c *Client) Complete(ctx context.Context, messages []Message) (string, error) {
	if !c.Configured() {
		return "", platformerrors.NewError(
			platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeConfiguration,
			"assistant backend is not configured",
			nil,
		)
	}

	var result completionResponse
	start := time.Now()
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(completionRequest{
			Model:       c.model,
			Messages:    messages,
			MaxTokens:   300,
			Temperature: 0.7,
		}).
		SetResult(&result).
		Post("/chat/completions")
	metrics.RecordExternalProviderLatency("assistant", time.Since(start).Seconds())

	if err != nil {
		return "", platformerrors.NewError(
			platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeExternal,
			"assistant request failed",
			err,
		)
	}
	if resp.StatusCode() != http.StatusOK {
		msg := fmt.Sprintf("assistant backend returned status %d", resp.StatusCode())
		if result.Error != nil && result.Error.Message != "" {
			msg = fmt.Sprintf("%s: %s", msg, result.Error.Message)
		}
		return "", platformerrors.NewError(
			platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeExternal,
			msg,
			nil,
		)
	}
	if len(result.Choices) == 0 {
		return "", platformerrors.NewError(
			platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeExternal,
			"assistant response contained no choices",
			nil,
		)
	}
	return result.Choices[0].Message.Content, nil
}
