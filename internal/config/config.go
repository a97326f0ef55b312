// Package config loads the process configuration from environment variables
// with the TXLENS_ prefix. Configuration is read once at startup and treated
// as read-only afterwards.
package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// envPrefix namespaces every environment variable consumed by the service.
const envPrefix = "txlens"

// Config is the full process configuration.
type Config struct {
	ListenAddress    string `envconfig:"LISTEN_ADDRESS" default:":8080"`
	LogLevel         string `envconfig:"LOG_LEVEL" default:"info"`
	TelemetryEnabled bool   `envconfig:"TELEMETRY_ENABLED" default:"false"`

	Verifier VerifierConfig
	Reasoner ReasonerConfig
	Cache    CacheConfig
}

// VerifierConfig configures the contract verification service lookup. An
// empty API key disables lookups entirely: the resolver then reports
// provenance "none" without attempting a network call.
type VerifierConfig struct {
	BaseURL         string `envconfig:"VERIFIER_BASE_URL" default:"https://api.etherscan.io/v2"`
	APIKey          string `envconfig:"VERIFIER_API_KEY"`
	GenericFallback bool   `envconfig:"VERIFIER_GENERIC_FALLBACK" default:"false"`
}

// ReasonerConfig configures the external reasoning service. The API key is
// mandatory for serving: startup fails fast when it is absent rather than
// degrading every assessment.
type ReasonerConfig struct {
	BaseURL string        `envconfig:"REASONER_BASE_URL" default:"https://api.openai.com/v1"`
	APIKey  string        `envconfig:"REASONER_API_KEY"`
	Model   string        `envconfig:"REASONER_MODEL" default:"gpt-4o-mini"`
	Timeout time.Duration `envconfig:"REASONER_TIMEOUT" default:"30s"`
}

// CacheConfig configures the optional Redis-backed interface cache. An empty
// address leaves caching disabled.
type CacheConfig struct {
	RedisAddress  string        `envconfig:"CACHE_REDIS_ADDRESS"`
	RedisUsername string        `envconfig:"CACHE_REDIS_USERNAME"`
	RedisPassword string        `envconfig:"CACHE_REDIS_PASSWORD"`
	RedisDB       int           `envconfig:"CACHE_REDIS_DB" default:"0"`
	TTL           time.Duration `envconfig:"CACHE_TTL" default:"1h"`
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
