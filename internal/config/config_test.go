package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Empty(t, cfg.CatalogPath)
	assert.Equal(t, "localhost", cfg.RedisHost)
	assert.Equal(t, 6379, cfg.RedisPort)
	assert.Equal(t, 168, cfg.CartTTL)
	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "mock", cfg.PaymentProvider)
	assert.False(t, cfg.TracingEnabled)
	assert.Equal(t, []string{"127.0.0.1/32", "::1/128"}, cfg.PprofCIDRs)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("CATALOG_PATH", "/etc/storefront/catalog.json")
	t.Setenv("REDIS_HOST", "redis.internal")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092,kafka-2:9092")
	t.Setenv("PAYMENT_PROVIDER", "hosted")
	t.Setenv("PAYMENT_ENDPOINT", "https://pay.example.com")
	t.Setenv("CART_TTL_HOURS", "24")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTPPort)
	assert.Equal(t, "/etc/storefront/catalog.json", cfg.CatalogPath)
	assert.Equal(t, "redis.internal", cfg.RedisHost)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "hosted", cfg.PaymentProvider)
	assert.Equal(t, 24, cfg.CartTTL)
}

func TestLoad_InvalidPort(t *testing.T) {
	t.Setenv("HTTP_PORT", "99999")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid HTTP port")
}

func TestLoad_InvalidProvider(t *testing.T) {
	t.Setenv("PAYMENT_PROVIDER", "stripe")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid payment provider")
}

func TestLoad_HostedRequiresEndpoint(t *testing.T) {
	t.Setenv("PAYMENT_PROVIDER", "hosted")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PAYMENT_ENDPOINT")
}
