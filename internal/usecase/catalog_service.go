package usecase

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/Gunvolt24/storefront/internal/domain"
	"github.com/Gunvolt24/storefront/internal/ports"
	"github.com/Gunvolt24/storefront/pkg/metrics"
)

var (
	_ ports.CatalogReadService = (*CatalogService)(nil)
	_ ports.CatalogInvalidator = (*CatalogService)(nil)
)

// CatalogLimits — размеры витрин (новинки, скидки, похожие товары).
type CatalogLimits struct {
	Latest  int
	OnSale  int
	Related int
}

// CatalogService — read-through слой над удалённым каталогом:
// сначала кэш результатов, при промахе — источник с записью в кэш.
// Ошибки источника не кэшируются.
type CatalogService struct {
	source ports.CatalogSource
	cache  ports.ResultCache
	log    ports.Logger
	limits CatalogLimits
	tracer trace.Tracer
}

func NewCatalogService(
	source ports.CatalogSource,
	cache ports.ResultCache,
	log ports.Logger,
	limits CatalogLimits,
) *CatalogService {
	return &CatalogService{
		source: source,
		cache:  cache,
		log:    log,
		limits: limits,
		tracer: otel.Tracer("github.com/Gunvolt24/storefront/internal/usecase"),
	}
}

// Fetch — выборка по ключу кэша. Пустой key отключает кэширование.
func (s *CatalogService) Fetch(ctx context.Context, key string, q domain.Query) (domain.ResultPage, error) {
	if key != "" {
		if page, found := s.cache.Get(ctx, key); found {
			metrics.CatalogFetches.WithLabelValues("cache").Inc()
			return page, nil
		}
	}

	ctx, span := s.tracer.Start(ctx, "catalog.Select", trace.WithAttributes(
		attribute.String("catalog.cache_key", key),
		attribute.Int("catalog.offset", q.Offset),
		attribute.Int("catalog.limit", q.Limit),
	))
	defer span.End()

	start := time.Now()
	page, err := s.source.Select(ctx, q)
	metrics.CatalogFetchDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.CatalogFetches.WithLabelValues("error").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "select failed")
		s.log.Errorf(ctx, "catalog select failed key=%s err=%v", key, err)
		return domain.ResultPage{}, fmt.Errorf("catalog select: %w", err)
	}
	metrics.CatalogFetches.WithLabelValues("remote").Inc()
	span.SetAttributes(attribute.Int("catalog.total", page.Total))

	if key != "" {
		if setErr := s.cache.Set(ctx, key, page); setErr != nil {
			s.log.Warnf(ctx, "cache.Set failed key=%s err=%v", key, setErr)
		}
	}
	return page, nil
}

// Latest — новинки: последние n товаров всего каталога.
func (s *CatalogService) Latest(ctx context.Context, n int) ([]domain.Product, error) {
	if n <= 0 {
		n = s.limits.Latest
	}
	page, err := s.Fetch(ctx, domain.CacheKeyLatest(n), domain.Query{OrderBy: domain.NewestFirst, Limit: n})
	return page.Items, err
}

// OnSale — последние n товаров со скидкой.
func (s *CatalogService) OnSale(ctx context.Context, n int) ([]domain.Product, error) {
	if n <= 0 {
		n = s.limits.OnSale
	}
	q := domain.Query{
		Filters: []domain.Filter{{Field: domain.FieldOnSale, Value: true}},
		OrderBy: domain.NewestFirst,
		Limit:   n,
	}
	page, err := s.Fetch(ctx, domain.CacheKeyOnSale(n), q)
	return page.Items, err
}

// Home — витрина главной: новинки и скидки загружаются параллельно.
func (s *CatalogService) Home(ctx context.Context) (domain.HomeFeed, error) {
	var feed domain.HomeFeed
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		items, err := s.Latest(gctx, 0)
		feed.Latest = items
		return err
	})
	g.Go(func() error {
		items, err := s.OnSale(gctx, 0)
		feed.OnSale = items
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.HomeFeed{}, err
	}
	return feed, nil
}

// Product — карточка товара; (nil, nil), если товара нет.
func (s *CatalogService) Product(ctx context.Context, id string) (*domain.Product, error) {
	key := domain.CacheKeyProduct(id)
	if page, found := s.cache.Get(ctx, key); found && len(page.Items) == 1 {
		metrics.CatalogFetches.WithLabelValues("cache").Inc()
		return &page.Items[0], nil
	}

	ctx, span := s.tracer.Start(ctx, "catalog.GetByID", trace.WithAttributes(attribute.String("product.id", id)))
	defer span.End()

	product, err := s.source.GetByID(ctx, id)
	if err != nil {
		metrics.CatalogFetches.WithLabelValues("error").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "get by id failed")
		s.log.Errorf(ctx, "catalog get product failed id=%s err=%v", id, err)
		return nil, fmt.Errorf("catalog get product: %w", err)
	}
	metrics.CatalogFetches.WithLabelValues("remote").Inc()
	if product == nil {
		return nil, nil
	}
	if setErr := s.cache.Set(ctx, key, domain.ResultPage{Items: []domain.Product{*product}, Total: 1}); setErr != nil {
		s.log.Warnf(ctx, "cache.Set failed key=%s err=%v", key, setErr)
	}
	return product, nil
}

// Related — похожие товары: та же категория, без самого товара, новые первыми.
func (s *CatalogService) Related(ctx context.Context, product *domain.Product) ([]domain.Product, error) {
	if product == nil {
		return nil, nil
	}
	n := s.limits.Related
	q := domain.Query{
		Filters:   []domain.Filter{{Field: domain.FieldCategory, Value: string(product.Category)}},
		ExcludeID: product.ID,
		OrderBy:   domain.NewestFirst,
		Limit:     n,
	}
	page, err := s.Fetch(ctx, domain.CacheKeyRelated(product.Category, product.ID, n), q)
	return page.Items, err
}

// InvalidateProduct — сброс выборок, в которые мог попасть товар:
// страницы и похожие товары его категорий, именованные витрины и карточка.
func (s *CatalogService) InvalidateProduct(ctx context.Context, id string, categories ...domain.Category) {
	seen := make(map[domain.Category]struct{}, len(categories))
	removed := 0
	for _, c := range categories {
		if c == "" {
			continue
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		removed += s.cache.DeletePrefix(ctx, domain.CacheKeyCatalogPrefix(c))
		removed += s.cache.DeletePrefix(ctx, domain.CacheKeyRelatedPrefix(c))
	}
	removed += s.cache.DeletePrefix(ctx, domain.CacheKeyBucketPrefix())
	s.cache.Delete(ctx, domain.CacheKeyProduct(id))
	s.log.Infof(ctx, "cache invalidated product=%s categories=%v pages=%d", id, categories, removed)
}
