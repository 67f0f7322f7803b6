//go:build integration

package kafka_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"

	cachemem "github.com/Gunvolt24/storefront/internal/cache/memory"
	"github.com/Gunvolt24/storefront/internal/domain"
	ikafka "github.com/Gunvolt24/storefront/internal/kafka"
	pgrepo "github.com/Gunvolt24/storefront/internal/repo/postgres"
	"github.com/Gunvolt24/storefront/internal/testutil"
	"github.com/Gunvolt24/storefront/internal/usecase"
	"github.com/Gunvolt24/storefront/pkg/logger"
	"github.com/Gunvolt24/storefront/pkg/validate"
)

var reUnsafe = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

func safe(t *testing.T) string { return reUnsafe.ReplaceAllString(t.Name(), "-") }

// stack — Postgres + redpanda + сервисы каталога поверх них.
type stack struct {
	ctx       context.Context
	repo      *pgrepo.ProductRepository
	catalog   *usecase.CatalogService
	publisher *usecase.ProductPublisher
	brokers   []string
	topic     string
}

func newStack(t *testing.T) *stack {
	t.Helper()

	ctxStart, cancelStart := context.WithTimeout(context.Background(), 2*time.Minute)
	t.Cleanup(cancelStart)

	db, err := testutil.StartCatalogDB(ctxStart)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(context.Background()) })

	broker, err := testutil.StartBroker(ctxStart)
	require.NoError(t, err)
	t.Cleanup(func() { _ = broker.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	t.Cleanup(cancel)

	logg, closer, err := logger.NewZapLogger(false)
	require.NoError(t, err)
	t.Cleanup(func() { _ = closer() })

	topic, group, err := broker.NewTopic(ctx, "catalog-"+safe(t))
	require.NoError(t, err)

	repo := pgrepo.NewProductRepository(db.Pool)
	catalog := usecase.NewCatalogService(repo, cachemem.NewResultCache(100, 0), logg, usecase.CatalogLimits{Latest: 8, OnSale: 8, Related: 8})
	ingest := usecase.NewProductIngestService(repo, catalog, validate.NewProductValidator(), logg)

	consumer := ikafka.NewConsumer(&ikafka.ConsumerConfig{
		Brokers:        broker.Brokers(),
		Topic:          topic,
		GroupID:        group,
		StartOffset:    "first",
		ProcessTimeout: 5 * time.Second,
		RetryInitial:   200 * time.Millisecond,
		RetryMax:       2 * time.Second,
	}, ingest, logg)
	t.Cleanup(func() { _ = consumer.Close() })

	runCtx, cancelRun := context.WithCancel(ctx)
	t.Cleanup(cancelRun)
	go func() { _ = consumer.Run(runCtx) }()

	producer, err := ikafka.NewProducer(&ikafka.ProducerConfig{Brokers: broker.Brokers(), Topic: topic})
	require.NoError(t, err)
	t.Cleanup(func() { _ = producer.Close() })

	// консьюмеру нужно время на вход в группу
	time.Sleep(1500 * time.Millisecond)

	return &stack{
		ctx:       ctx,
		repo:      repo,
		catalog:   catalog,
		publisher: usecase.NewProductPublisher(producer, validate.NewProductValidator(), logg),
		brokers:   broker.Brokers(),
		topic:     topic,
	}
}

func (s *stack) writeRaw(t *testing.T, payload []byte) {
	t.Helper()
	w := &kafka.Writer{Addr: kafka.TCP(s.brokers...), Topic: s.topic, RequiredAcks: kafka.RequireAll}
	defer w.Close()
	require.NoError(t, w.WriteMessages(s.ctx, kafka.Message{Value: payload}))
}

// waitProduct — ждём, пока наличие товара в БД совпадёт с want.
func (s *stack) waitProduct(t *testing.T, id string, want bool) {
	t.Helper()
	require.Eventually(t, func() bool {
		got, err := s.repo.GetByID(s.ctx, id)
		return err == nil && (got != nil) == want
	}, 20*time.Second, 200*time.Millisecond, "product %s present=%v", id, want)
}

// 1) Опубликованный upsert попадает в БД и сбрасывает закэшированную страницу категории
func TestKafka_Upsert_SavedAndCacheInvalidated_TC(t *testing.T) {
	s := newStack(t)

	facet := domain.NewFacetState(domain.CategorySkincare)
	key := domain.CacheKeyCatalogPage(facet, 1, 12)
	q := domain.Query{Filters: facet.Filters(), OrderBy: domain.NewestFirst, Limit: 12}

	before, err := s.catalog.Fetch(s.ctx, key, q)
	require.NoError(t, err)
	require.Equal(t, 0, before.Total)

	p := testutil.MakeProduct()
	require.NoError(t, s.publisher.Upsert(s.ctx, &p))
	s.waitProduct(t, p.ID, true)

	// без инвалидации здесь вернулась бы закэшированная пустая страница
	require.Eventually(t, func() bool {
		after, err := s.catalog.Fetch(s.ctx, key, q)
		return err == nil && after.Total == 1 && after.Items[0].ID == p.ID
	}, 5*time.Second, 100*time.Millisecond)
}

// 2) Мусор и невалидный товар пропускаются, следующий валидный сохраняется
func TestKafka_SkipInvalid_ThenSaveValid_TC(t *testing.T) {
	s := newStack(t)

	s.writeRaw(t, []byte("not-a-json"))
	s.writeRaw(t, []byte(`{"op":"upsert","product":{"id":"bad","name":"x","price":0}}`))

	p := testutil.MakeProduct()
	require.NoError(t, s.publisher.Upsert(s.ctx, &p))
	s.waitProduct(t, p.ID, true)

	got, err := s.repo.GetByID(s.ctx, "bad")
	require.NoError(t, err)
	require.Nil(t, got)
}

// 3) Delete удаляет товар
func TestKafka_Delete_TC(t *testing.T) {
	s := newStack(t)

	p := testutil.MakeProduct()
	require.NoError(t, s.publisher.Upsert(s.ctx, &p))
	s.waitProduct(t, p.ID, true)

	require.NoError(t, s.publisher.Delete(s.ctx, p.ID))
	s.waitProduct(t, p.ID, false)
}
