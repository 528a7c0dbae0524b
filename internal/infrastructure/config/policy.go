package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FallbackStore is one retailer in the synthetic-offer rotation.
type FallbackStore struct {
	Name string `yaml:"name"`
	// SearchURL is a printf template taking the URL-escaped query.
	SearchURL string `yaml:"search_url"`
}

// StorePolicy holds the marketplace blacklist and the fallback retailer
// rotation. Defaults match the production policy; a YAML file can override
// either list.
type StorePolicy struct {
	BlacklistedStores []string        `yaml:"blacklisted_stores"`
	FallbackStores    []FallbackStore `yaml:"fallback_stores"`
}

// DefaultStorePolicy returns the built-in store policy.
func DefaultStorePolicy() *StorePolicy {
	return &StorePolicy{
		BlacklistedStores: []string{
			"alibaba", "aliexpress", "temu", "wish", "banggood", "dhgate",
			"falabella", "ripley", "linio", "mercadolibre",
		},
		FallbackStores: []FallbackStore{
			{Name: "Amazon", SearchURL: "https://www.amazon.com/s?k=%s"},
			{Name: "Walmart", SearchURL: "https://www.walmart.com/search?q=%s"},
			{Name: "Target", SearchURL: "https://www.target.com/s?searchTerm=%s"},
		},
	}
}

// LoadStorePolicy reads the YAML policy file at path. Lists left empty in the
// file keep their built-in defaults. An empty path returns the defaults.
func LoadStorePolicy(path string) (*StorePolicy, error) {
	policy := DefaultStorePolicy()
	if path == "" {
		return policy, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read store policy at '%s': %w", path, err)
	}

	var override StorePolicy
	if err := yaml.Unmarshal(data, &override); err != nil {
		return nil, fmt.Errorf("failed to parse store policy YAML: %w", err)
	}

	if len(override.BlacklistedStores) > 0 {
		policy.BlacklistedStores = override.BlacklistedStores
	}
	if len(override.FallbackStores) > 0 {
		policy.FallbackStores = override.FallbackStores
	}
	return policy, nil
}
