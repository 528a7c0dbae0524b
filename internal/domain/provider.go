package domain

import (
	"github.com/google/wire"

	"pricefinder/search-api/internal/domain/assistant"
	domainsearch "pricefinder/search-api/internal/domain/search"
	"pricefinder/search-api/internal/infrastructure/config"
	"pricefinder/search-api/internal/infrastructure/llmchat"
)

// DomainProvider provides all domain services
var DomainProvider = wire.NewSet(
	domainsearch.NewComposer,
	ProvideNormalizer,
	ProvideFallbackGenerator,
	ProvideSearchService,
	ProvideAssistantService,
)

// ProvideNormalizer builds the offer normalizer from the store policy
func ProvideNormalizer(policy *config.StorePolicy) *domainsearch.Normalizer {
	return domainsearch.NewNormalizer(policy.BlacklistedStores)
}

// ProvideFallbackGenerator builds the synthetic-offer generator from the
// configured retailer rotation
func ProvideFallbackGenerator(policy *config.StorePolicy) *domainsearch.FallbackGenerator {
	stores := make([]domainsearch.FallbackStore, 0, len(policy.FallbackStores))
	for _, s := range policy.FallbackStores {
		stores = append(stores, domainsearch.FallbackStore{
			Name:      s.Name,
			SearchURL: s.SearchURL,
		})
	}
	return domainsearch.NewFallbackGenerator(stores)
}

// ProvideSearchService wires the search orchestrator
func ProvideSearchService(
	composer *domainsearch.Composer,
	gateway domainsearch.Gateway,
	normalizer *domainsearch.Normalizer,
	fallback *domainsearch.FallbackGenerator,
	cache domainsearch.ResultCache,
	cfg *config.Config,
) *domainsearch.Service {
	return domainsearch.NewService(composer, gateway, normalizer, fallback, cache, cfg.SerpAPIEngine)
}

// ProvideAssistantService wires the shopping assistant
func ProvideAssistantService(client *llmchat.Client) *assistant.Service {
	return assistant.NewService(client)
}
