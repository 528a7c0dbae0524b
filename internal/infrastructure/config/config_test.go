package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolveAggregatorKeyOrder(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{
			name: "primary name wins",
			env:  map[string]string{"SERPAPI_KEY": "primary", "SERPAPI": "last"},
			want: "primary",
		},
		{
			name: "falls through to later names",
			env:  map[string]string{"SERP_API_KEY": "third"},
			want: "third",
		},
		{
			name: "lowercase legacy name",
			env:  map[string]string{"serpapi_key": "legacy"},
			want: "legacy",
		},
		{
			name: "whitespace values are skipped",
			env:  map[string]string{"SERPAPI_KEY": "   ", "SERPAPI_API_KEY": "second"},
			want: "second",
		},
		{
			name: "nothing configured",
			env:  map[string]string{},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			getenv := func(name string) string { return tt.env[name] }
			if got := resolveAggregatorKey(getenv); got != tt.want {
				t.Errorf("resolveAggregatorKey = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDefaultStorePolicy(t *testing.T) {
	policy := DefaultStorePolicy()

	if len(policy.BlacklistedStores) != 10 {
		t.Errorf("expected 10 blacklisted stores, got %d", len(policy.BlacklistedStores))
	}
	if len(policy.FallbackStores) != 3 {
		t.Fatalf("expected 3 fallback stores, got %d", len(policy.FallbackStores))
	}
	wantNames := []string{"Amazon", "Walmart", "Target"}
	for i, s := range policy.FallbackStores {
		if s.Name != wantNames[i] {
			t.Errorf("fallback store %d = %q, want %q", i, s.Name, wantNames[i])
		}
		if s.SearchURL == "" {
			t.Errorf("fallback store %q has no search URL", s.Name)
		}
	}
}

func TestLoadStorePolicyWithoutPathUsesDefaults(t *testing.T) {
	policy, err := LoadStorePolicy("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(policy.BlacklistedStores) == 0 || len(policy.FallbackStores) == 0 {
		t.Error("default policy should not be empty")
	}
}

func TestLoadStorePolicyYAMLOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.yml")
	body := []byte(`
blacklisted_stores:
  - shadymart
fallback_stores:
  - name: BookShop
    search_url: https://bookshop.example/search?q=%s
`)
	if err := os.WriteFile(path, body, 0o600); err != nil {
		t.Fatalf("failed to write policy file: %v", err)
	}

	policy, err := LoadStorePolicy(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(policy.BlacklistedStores) != 1 || policy.BlacklistedStores[0] != "shadymart" {
		t.Errorf("blacklist not overridden: %v", policy.BlacklistedStores)
	}
	if len(policy.FallbackStores) != 1 || policy.FallbackStores[0].Name != "BookShop" {
		t.Errorf("fallback stores not overridden: %+v", policy.FallbackStores)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HTTPPort != "8094" {
		t.Errorf("default port = %q, want 8094", cfg.HTTPPort)
	}
	if cfg.SerpAPIEngine != "google_shopping" {
		t.Errorf("default engine = %q", cfg.SerpAPIEngine)
	}
	if cfg.CacheTTL != 180 || cfg.CacheCapacity != 10 {
		t.Errorf("cache defaults = %d/%d, want 180/10", cfg.CacheTTL, cfg.CacheCapacity)
	}
}
