package metrics_test

import (
	"testing"

	"github.com/Gunvolt24/storefront/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMustRegister_IsIdempotent(t *testing.T) {
	// Должно выполняться без паники даже при повторном вызове.
	metrics.MustRegister()
	metrics.MustRegister()
}

func TestKafkaCounters_Inc(t *testing.T) {
	metrics.MustRegister()

	const topic = "catalog-products"
	beforeConsumed := testutil.ToFloat64(metrics.KafkaMessagesConsumed.WithLabelValues(topic))
	beforeFailed := testutil.ToFloat64(metrics.KafkaMessagesFailed.WithLabelValues(topic))
	beforePublished := testutil.ToFloat64(metrics.KafkaMessagesPublished.WithLabelValues(topic))

	metrics.KafkaMessagesConsumed.WithLabelValues(topic).Inc()
	metrics.KafkaMessagesFailed.WithLabelValues(topic).Inc()
	metrics.KafkaMessagesPublished.WithLabelValues(topic).Add(3)

	if got := testutil.ToFloat64(metrics.KafkaMessagesConsumed.WithLabelValues(topic)); got != beforeConsumed+1 {
		t.Fatalf("KafkaMessagesConsumed: got=%v want=%v", got, beforeConsumed+1)
	}
	if got := testutil.ToFloat64(metrics.KafkaMessagesFailed.WithLabelValues(topic)); got != beforeFailed+1 {
		t.Fatalf("KafkaMessagesFailed: got=%v want=%v", got, beforeFailed+1)
	}
	if got := testutil.ToFloat64(metrics.KafkaMessagesPublished.WithLabelValues(topic)); got != beforePublished+3 {
		t.Fatalf("KafkaMessagesPublished: got=%v want=%v", got, beforePublished+3)
	}
}

func TestCacheOps_CountersByLabel(t *testing.T) {
	metrics.MustRegister()

	hitBefore := testutil.ToFloat64(metrics.CacheOps.WithLabelValues("hit"))
	missBefore := testutil.ToFloat64(metrics.CacheOps.WithLabelValues("miss"))

	metrics.CacheOps.WithLabelValues("hit").Inc()
	metrics.CacheOps.WithLabelValues("hit").Inc()

	if got := testutil.ToFloat64(metrics.CacheOps.WithLabelValues("hit")); got != hitBefore+2 {
		t.Fatalf("CacheOps(hit): got=%v want=%v", got, hitBefore+2)
	}
	if got := testutil.ToFloat64(metrics.CacheOps.WithLabelValues("miss")); got != missBefore {
		t.Fatalf("CacheOps(miss): got=%v want=%v", got, missBefore)
	}
}

func TestCatalogFetches_BySource(t *testing.T) {
	metrics.MustRegister()

	before := testutil.ToFloat64(metrics.CatalogFetches.WithLabelValues("remote"))
	metrics.CatalogFetches.WithLabelValues("remote").Inc()
	if got := testutil.ToFloat64(metrics.CatalogFetches.WithLabelValues("remote")); got != before+1 {
		t.Fatalf("CatalogFetches(remote): got=%v want=%v", got, before+1)
	}
	if n := testutil.CollectAndCount(metrics.CatalogFetchDuration); n != 1 {
		t.Fatalf("CatalogFetchDuration must expose one series, got %d", n)
	}
}
