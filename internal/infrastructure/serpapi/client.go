// Package serpapi implements the product-search aggregator gateway over the
// SerpAPI HTTP API.
package serpapi

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"

	"pricefinder/search-api/internal/domain/search"
	"pricefinder/search-api/internal/infrastructure/config"
	"pricefinder/search-api/internal/infrastructure/metrics"
	"pricefinder/search-api/utils/platformerrors"
)

const (
	resultCount = 5
	location    = "United States"
	countryCode = "us"
)

// Client issues single-shot shopping searches against SerpAPI. Transport
// failures and non-200 statuses are reported as errors and never retried.
type Client struct {
	client        *resty.Client
	apiKey        string
	engine        string
	courtesyDelay time.Duration
}

var _ search.Gateway = (*Client)(nil)

// NewClient builds the gateway from config. The connect timeout applies to
// dialing only; the read timeout bounds the whole request.
func NewClient(cfg *config.Config) *Client {
	dialer := &net.Dialer{Timeout: time.Duration(cfg.SerpAPIConnectTimeout) * time.Second}
	transport := &http.Transport{
		DialContext:         dialer.DialContext,
		TLSHandshakeTimeout: time.Duration(cfg.SerpAPIConnectTimeout) * time.Second,
	}

	client := resty.New().
		SetBaseURL(cfg.SerpAPIBaseURL).
		SetTransport(transport).
		SetTimeout(time.Duration(cfg.SerpAPIReadTimeout) * time.Second).
		SetRetryCount(0)

	return &Client{
		client:        client,
		apiKey:        cfg.SerpAPIKey,
		engine:        cfg.SerpAPIEngine,
		courtesyDelay: time.Duration(cfg.SerpAPICourtesyDelay) * time.Millisecond,
	}
}

// Configured reports whether a credential was resolved at startup.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// Fetch performs one aggregator request for the final query. A fixed courtesy
// delay runs before every call to stay under the provider's rate limits.
func (c *Client) Fetch(ctx context.Context, finalQuery string) (*search.AggregatorPayload, error) {
	if !c.Configured() {
		return nil, platformerrors.NewError(
			platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeConfiguration,
			"aggregator credential is not configured",
			nil,
		)
	}

	if c.courtesyDelay > 0 {
		select {
		case <-time.After(c.courtesyDelay):
		case <-ctx.Done():
			return nil, platformerrors.NewError(
				platformerrors.LayerInfrastructure,
				platformerrors.ErrorTypeExternal,
				"aggregator request canceled",
				ctx.Err(),
			)
		}
	}

	var payload search.AggregatorPayload
	start := time.Now()
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"engine":   c.engine,
			"q":        fmt.Sprintf("%q buy online", finalQuery),
			"api_key":  c.apiKey,
			"num":      strconv.Itoa(resultCount),
			"location": location,
			"gl":       countryCode,
		}).
		SetResult(&payload).
		Get("")
	metrics.RecordExternalProviderLatency("serpapi", time.Since(start).Seconds())

	if err != nil {
		return nil, platformerrors.NewError(
			platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeExternal,
			"aggregator request failed",
			err,
		)
	}
	if resp.StatusCode() != http.StatusOK {
		log.Warn().
			Int("status", resp.StatusCode()).
			Str("query", finalQuery).
			Msg("aggregator returned non-200 status")
		return nil, platformerrors.NewError(
			platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeExternal,
			fmt.Sprintf("aggregator returned status %d", resp.StatusCode()),
			nil,
		)
	}

	return &payload, nil
}
