package config

import (
	"fmt"

	pkgconfig "github.com/teddyboy999/ecommerce-with-stripe/pkg/config"
)

// Config holds all configuration for the storefront.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort int `env:"HTTP_PORT" envDefault:"8080"`

	// Catalog; empty means the built-in product set.
	CatalogPath string `env:"CATALOG_PATH" envDefault:""`

	// How long product responses may be cached, in seconds.
	CatalogCacheAge int `env:"CATALOG_CACHE_SECONDS" envDefault:"300"`

	// Redis
	RedisHost string `env:"REDIS_HOST" envDefault:"localhost"`
	RedisPort int    `env:"REDIS_PORT" envDefault:"6379"`
	RedisPass string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	// Cart TTL in hours (default: 7 days)
	CartTTL int `env:"CART_TTL_HOURS" envDefault:"168"`

	// Kafka
	KafkaBrokers []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`

	// Payment provider: "mock" or "hosted".
	PaymentProvider string `env:"PAYMENT_PROVIDER" envDefault:"mock"`
	PaymentEndpoint string `env:"PAYMENT_ENDPOINT" envDefault:""`

	// Tracing
	TracingEnabled  bool    `env:"TRACING_ENABLED" envDefault:"false"`
	OTLPEndpoint    string  `env:"OTLP_ENDPOINT" envDefault:"localhost:4318"`
	TraceSampleRate float64 `env:"TRACE_SAMPLE_RATE" envDefault:"1.0"`

	// Pprof endpoints are only reachable from these CIDRs.
	PprofCIDRs []string `env:"PPROF_ALLOWED_CIDRS" envDefault:"127.0.0.1/32,::1/128" envSeparator:","`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load storefront config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	if c.PaymentProvider != "mock" && c.PaymentProvider != "hosted" {
		return fmt.Errorf("invalid payment provider: %q", c.PaymentProvider)
	}
	if c.PaymentProvider == "hosted" && c.PaymentEndpoint == "" {
		return fmt.Errorf("PAYMENT_ENDPOINT is required for the hosted payment provider")
	}
	if c.CartTTL < 1 {
		return fmt.Errorf("invalid cart TTL: %d hours", c.CartTTL)
	}
	return nil
}
