package config

import (
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog/log"
)

// aggregatorKeyNames lists every environment variable name the legacy
// deployments used for the SerpAPI credential, in resolution order. The first
// non-empty value wins; resolution happens exactly once at startup.
var aggregatorKeyNames = []string{
	"SERPAPI_KEY",
	"SERPAPI_API_KEY",
	"SERP_API_KEY",
	"serpapi_key",
	"SERPAPI",
}

// Config holds all configuration for the search-api service
type Config struct {
	// HTTP Server - using SEARCH_API_ prefix to avoid collisions
	HTTPPort  string `env:"SEARCH_API_HTTP_PORT" envDefault:"8094"`
	LogLevel  string `env:"SEARCH_API_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"SEARCH_API_LOG_FORMAT" envDefault:"json"` // json or console

	// Aggregator (SerpAPI) configuration
	SerpAPIBaseURL        string `env:"SERPAPI_BASE_URL" envDefault:"https://serpapi.com/search"`
	SerpAPIEngine         string `env:"SERPAPI_ENGINE" envDefault:"google_shopping"`
	SerpAPIConnectTimeout int    `env:"SERPAPI_CONNECT_TIMEOUT" envDefault:"3"` // seconds
	SerpAPIReadTimeout    int    `env:"SERPAPI_READ_TIMEOUT" envDefault:"8"`    // seconds
	SerpAPICourtesyDelay  int    `env:"SERPAPI_COURTESY_DELAY_MS" envDefault:"300"`

	// Resolved once from the legacy names; never read again after startup.
	SerpAPIKey string `env:"-"`

	// Vision collaborator (Gemini)
	GeminiAPIKey  string `env:"GEMINI_API_KEY"`
	GeminiModel   string `env:"GEMINI_MODEL" envDefault:"gemini-1.5-flash-latest"`
	VisionTimeout int    `env:"VISION_TIMEOUT" envDefault:"10"` // seconds

	// Conversational assistant (OpenAI-compatible chat backend)
	AssistantBaseURL string `env:"ASSISTANT_BASE_URL"`
	AssistantAPIKey  string `env:"ASSISTANT_API_KEY"`
	AssistantModel   string `env:"ASSISTANT_MODEL" envDefault:"gpt-3.5-turbo"`
	AssistantTimeout int    `env:"ASSISTANT_TIMEOUT" envDefault:"15"` // seconds

	// Result cache
	CacheTTL      int `env:"SEARCH_CACHE_TTL" envDefault:"180"` // seconds
	CacheCapacity int `env:"SEARCH_CACHE_CAPACITY" envDefault:"10"`

	// Optional YAML override for the store blacklist and fallback retailers
	StorePolicyPath string `env:"STORE_POLICY_PATH"`
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	if strings.TrimSpace(os.Getenv("SEARCH_API_LOG_LEVEL")) == "" {
		if global := strings.TrimSpace(os.Getenv("LOG_LEVEL")); global != "" {
			cfg.LogLevel = global
		}
	}
	if strings.TrimSpace(os.Getenv("SEARCH_API_LOG_FORMAT")) == "" {
		if global := strings.TrimSpace(os.Getenv("LOG_FORMAT")); global != "" {
			cfg.LogFormat = global
		}
	}

	cfg.SerpAPIKey = resolveAggregatorKey(os.Getenv)
	if cfg.SerpAPIKey == "" {
		log.Warn().
			Strs("names_checked", aggregatorKeyNames).
			Msg("no aggregator credential configured, live search disabled")
	}

	return cfg, nil
}

// resolveAggregatorKey walks the legacy credential names in order and returns
// the first non-empty value.
func resolveAggregatorKey(getenv func(string) string) string {
	for _, name := range aggregatorKeyNames {
		if v := strings.TrimSpace(getenv(name)); v != "" {
			return v
		}
	}
	return ""
}
