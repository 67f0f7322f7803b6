package config_test

import (
	"slices"
	"testing"
	"time"

	cfg "github.com/Gunvolt24/storefront/config"
)

// TestLoadWithPrefix_Defaults — проверка наличия значений по умолчанию.
func TestLoadWithPrefix_Defaults(t *testing.T) {
	t.Parallel()

	c, err := cfg.LoadWithPrefix("STORE_TEST_DEFAULTS")
	if err != nil {
		t.Fatalf("LoadWithPrefix error: %v", err)
	}

	// HTTP
	if c.HTTP.Addr != ":8080" || c.HTTP.GinMode != "debug" {
		t.Fatalf("HTTP defaults wrong: %+v", c.HTTP)
	}
	if c.HTTP.HandlerTimeout != 3*time.Second || c.HTTP.GracefulTimeout != 5*time.Second {
		t.Fatalf("HTTP timeouts wrong: %+v", c.HTTP)
	}

	// Tracing
	if c.Tracing.Enabled || c.Tracing.ServiceName != "storefront" || c.Tracing.SampleRatio != 1 {
		t.Fatalf("Tracing defaults wrong: %+v", c.Tracing)
	}

	// Postgres
	if c.Postgres.DSN == "" || c.Postgres.MaxConns != 10 || !c.Postgres.AutoMigrate {
		t.Fatalf("Postgres defaults wrong: %+v", c.Postgres)
	}

	// Kafka
	if !slices.Equal(c.Kafka.Brokers, []string{"kafka:9092"}) || c.Kafka.Topic != "catalog-products" {
		t.Fatalf("Kafka defaults wrong: %+v", c.Kafka)
	}
	if c.Kafka.ProcessTimeout != 5*time.Second || c.Kafka.RetryInitial != time.Second || c.Kafka.RetryMax != 30*time.Second {
		t.Fatalf("Kafka timeouts wrong: %+v", c.Kafka)
	}

	// Cache: без TTL
	if c.Cache.Capacity != 1000 || c.Cache.TTL != 0 {
		t.Fatalf("Cache defaults wrong: %+v", c.Cache)
	}

	// Catalog
	if c.Catalog.PageSize != 12 || c.Catalog.LatestLimit != 8 || c.Catalog.OnSaleLimit != 8 || c.Catalog.RelatedLimit != 8 {
		t.Fatalf("Catalog defaults wrong: %+v", c.Catalog)
	}

	// Cart
	if c.Cart.Key != "storefront_cart_v1" || c.Cart.DBPath != "storefront.db" {
		t.Fatalf("Cart defaults wrong: %+v", c.Cart)
	}

	// Checkout
	if c.Checkout.ShippingBase != 12000 || c.Checkout.FreeShippingFrom != 150000 || c.Checkout.Locale != "es-CO" {
		t.Fatalf("Checkout defaults wrong: %+v", c.Checkout)
	}

	if c.Logger.IsProd || c.Logger.File != "" {
		t.Fatalf("Logger defaults wrong: %+v", c.Logger)
	}
}

func TestLoadWithPrefix_Overrides(t *testing.T) {
	const p = "STORE_TEST_OVR"

	t.Setenv(p+"_HTTP_ADDR", ":9999")
	t.Setenv(p+"_HTTP_HANDLER_TIMEOUT", "4500ms")
	t.Setenv(p+"_TRACING_OTEL_ENABLED", "true")
	t.Setenv(p+"_TRACING_OTEL_SAMPLE_RATIO", "0.25")
	t.Setenv(p+"_KAFKA_BROKERS", "k1:9092,k2:9093")
	t.Setenv(p+"_CACHE_CAPACITY", "0")
	t.Setenv(p+"_CACHE_TTL", "30m")
	t.Setenv(p+"_CATALOG_PAGE_SIZE", "24")
	t.Setenv(p+"_CART_DB_PATH", "/tmp/cart.db")
	t.Setenv(p+"_CART_KEY", "cart_v2")
	t.Setenv(p+"_CHECKOUT_PHONE", "570000000")
	t.Setenv(p+"_CHECKOUT_FREE_SHIPPING_FROM", "99000")
	t.Setenv(p+"_LOGGER_IS_PROD", "true")
	t.Setenv(p+"_LOGGER_FILE", "/tmp/storefront.log")

	c, err := cfg.LoadWithPrefix(p)
	if err != nil {
		t.Fatalf("LoadWithPrefix error: %v", err)
	}

	if c.HTTP.Addr != ":9999" || c.HTTP.HandlerTimeout != 4500*time.Millisecond {
		t.Fatalf("HTTP overrides wrong: %+v", c.HTTP)
	}
	if !c.Tracing.Enabled || c.Tracing.SampleRatio != 0.25 {
		t.Fatalf("Tracing overrides wrong: %+v", c.Tracing)
	}
	if !slices.Equal(c.Kafka.Brokers, []string{"k1:9092", "k2:9093"}) {
		t.Fatalf("Kafka.Brokers override wrong: %v", c.Kafka.Brokers)
	}
	if c.Cache.Capacity != 0 || c.Cache.TTL != 30*time.Minute {
		t.Fatalf("Cache overrides wrong: %+v", c.Cache)
	}
	if c.Catalog.PageSize != 24 {
		t.Fatalf("Catalog.PageSize override wrong: %d", c.Catalog.PageSize)
	}
	if c.Cart.DBPath != "/tmp/cart.db" || c.Cart.Key != "cart_v2" {
		t.Fatalf("Cart overrides wrong: %+v", c.Cart)
	}
	if c.Checkout.Phone != "570000000" || c.Checkout.FreeShippingFrom != 99000 {
		t.Fatalf("Checkout overrides wrong: %+v", c.Checkout)
	}
	if !c.Logger.IsProd || c.Logger.File != "/tmp/storefront.log" {
		t.Fatalf("Logger overrides wrong: %+v", c.Logger)
	}
}

// Невалидное значение — ошибка.
func TestLoadWithPrefix_InvalidValue_ReturnsError(t *testing.T) {
	const p = "STORE_TEST_BAD"
	t.Setenv(p+"_CATALOG_PAGE_SIZE", "twelve")

	if _, err := cfg.LoadWithPrefix(p); err == nil {
		t.Fatalf("expected error for invalid int, got nil")
	}
}
