package search

import (
	"context"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/rs/zerolog/log"

	"pricefinder/search-api/internal/infrastructure/metrics"
	"pricefinder/search-api/utils/platformerrors"
)

// Service orchestrates one request/response cycle:
// compose -> cache check -> gateway -> normalize -> rank -> cache store,
// rerouting every failure at or after the gateway step to the fallback
// generator. The only error it returns is the empty-request rejection.
type Service struct {
	composer   *Composer
	gateway    Gateway
	normalizer *Normalizer
	fallback   *FallbackGenerator
	cache      ResultCache
	engine     string
}

// NewService wires the search pipeline.
func NewService(
	composer *Composer,
	gateway Gateway,
	normalizer *Normalizer,
	fallback *FallbackGenerator,
	cache ResultCache,
	engine string,
) *Service {
	return &Service{
		composer:   composer,
		gateway:    gateway,
		normalizer: normalizer,
		fallback:   fallback,
		cache:      cache,
		engine:     engine,
	}
}

// CacheKey hashes the lowercased final query into a stable cache key.
func CacheKey(query string) uint64 {
	return xxhash.Sum64String(strings.ToLower(strings.TrimSpace(query)))
}

// SearchProducts resolves text and/or image input into 1..MaxOffers offers.
// It rejects only when both inputs are absent; every other failure degrades
// to synthetic offers.
func (s *Service) SearchProducts(ctx context.Context, text string, image []byte) ([]Offer, error) {
	text = strings.TrimSpace(text)
	if text == "" && len(image) == 0 {
		return nil, platformerrors.NewError(
			platformerrors.LayerDomain,
			platformerrors.ErrorTypeValidation,
			"a query or an image is required",
			nil,
		)
	}

	originalQuery := text
	if originalQuery == "" {
		originalQuery = ImageOnlyQuery
	}

	composed := s.composer.Compose(ctx, text, image)

	if !s.gateway.Configured() {
		log.Info().Str("query", composed.Query).Msg("no aggregator credential, serving fallback offers")
		metrics.RecordSearch(string(composed.Provenance), "fallback")
		return s.fallback.Generate(composed.Query, originalQuery), nil
	}

	key := CacheKey(composed.Query)
	if cached, ok := s.cache.Get(key); ok {
		metrics.RecordCacheLookup(true)
		metrics.RecordSearch(string(composed.Provenance), "cache")
		log.Debug().Str("query", composed.Query).Int("offers", len(cached)).Msg("cache hit")
		return cached, nil
	}
	metrics.RecordCacheLookup(false)

	offers := s.fetchLive(ctx, composed.Query)
	ranked := Rank(offers, composed.Provenance, originalQuery)

	if len(ranked) == 0 {
		log.Info().Str("query", composed.Query).Msg("no live offers, serving fallback offers")
		metrics.RecordSearch(string(composed.Provenance), "fallback")
		return s.fallback.Generate(composed.Query, originalQuery), nil
	}

	s.cache.Put(key, ranked)
	metrics.RecordSearch(string(composed.Provenance), "live")
	return ranked, nil
}

// fetchLive performs the single gateway attempt and normalizes the payload.
// Failures are absorbed here and reported as an empty offer list.
func (s *Service) fetchLive(ctx context.Context, query string) []Offer {
	payload, err := s.gateway.Fetch(ctx, query)
	if err != nil {
		log.Warn().Err(err).Str("query", query).Msg("aggregator fetch failed")
		return nil
	}
	return s.normalizer.Normalize(payload, s.engine)
}
