package main

import (
	"context"

	"github.com/Gunvolt24/storefront/config"
	cachemem "github.com/Gunvolt24/storefront/internal/cache/memory"
	"github.com/Gunvolt24/storefront/internal/ports"
	"github.com/Gunvolt24/storefront/internal/repo/postgres"
	"github.com/Gunvolt24/storefront/internal/usecase"
)

// openCatalog — каталог с кэшем результатов поверх Postgres; подменяется в тестах.
var openCatalog = func(ctx context.Context, cfg config.Config, log ports.Logger) (ports.CatalogReadService, func() error, error) {
	pool, err := postgres.NewPool(ctx, cfg.Postgres.DSN, cfg.Postgres.MaxConns)
	if err != nil {
		return nil, nil, err
	}
	svc := usecase.NewCatalogService(
		postgres.NewProductRepository(pool),
		cachemem.NewResultCache(cfg.Cache.Capacity, cfg.Cache.TTL),
		log,
		usecase.CatalogLimits{
			Latest:  cfg.Catalog.LatestLimit,
			OnSale:  cfg.Catalog.OnSaleLimit,
			Related: cfg.Catalog.RelatedLimit,
		},
	)
	return svc, func() error { pool.Close(); return nil }, nil
}

func (s *session) catalog() (ports.CatalogReadService, error) {
	svc, closeFn, err := openCatalog(s.ctx, s.cfg, s.log)
	if err != nil {
		return nil, err
	}
	s.onClose(closeFn)
	return svc, nil
}
