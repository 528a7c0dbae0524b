package infrastructure

import (
	"time"

	"github.com/google/wire"

	"pricefinder/search-api/internal/domain/search"
	"pricefinder/search-api/internal/infrastructure/cache"
	"pricefinder/search-api/internal/infrastructure/config"
	"pricefinder/search-api/internal/infrastructure/llmchat"
	"pricefinder/search-api/internal/infrastructure/serpapi"
	"pricefinder/search-api/internal/infrastructure/vision"
)

// InfrastructureProvider provides all infrastructure dependencies
var InfrastructureProvider = wire.NewSet(
	// Config and store policy
	ProvideConfig,
	ProvideStorePolicy,

	// Aggregator gateway
	ProvideGateway,

	// Vision collaborator
	ProvideVision,

	// Result cache
	ProvideResultCache,

	// Assistant chat backend
	llmchat.NewClient,
)

// ProvideConfig loads and provides the application configuration
func ProvideConfig() (*config.Config, error) {
	return config.LoadConfig()
}

// ProvideStorePolicy loads the store blacklist and fallback retailer rotation
func ProvideStorePolicy(cfg *config.Config) (*config.StorePolicy, error) {
	return config.LoadStorePolicy(cfg.StorePolicyPath)
}

// ProvideGateway provides the aggregator gateway
func ProvideGateway(cfg *config.Config) search.Gateway {
	return serpapi.NewClient(cfg)
}

// ProvideVision provides the image collaborator
func ProvideVision(cfg *config.Config) (search.Vision, error) {
	return vision.NewClient(cfg)
}

// ProvideResultCache provides the bounded TTL result cache
func ProvideResultCache(cfg *config.Config) search.ResultCache {
	return cache.New(time.Duration(cfg.CacheTTL)*time.Second, cfg.CacheCapacity)
}
