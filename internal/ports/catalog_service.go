package ports

import (
	"context"

	"github.com/Gunvolt24/storefront/internal/domain"
)

// QueryExecutor — выполнение выборки с учётом кэша результатов.
type QueryExecutor interface {
	Fetch(ctx context.Context, key string, q domain.Query) (domain.ResultPage, error)
}

// CatalogReadService — сервис чтения каталога для транспортного слоя.
type CatalogReadService interface {
	QueryExecutor
	Home(ctx context.Context) (domain.HomeFeed, error)
	Product(ctx context.Context, id string) (*domain.Product, error)
	Related(ctx context.Context, product *domain.Product) ([]domain.Product, error)
}

// CatalogInvalidator — сброс закэшированных выборок, затронутых изменением товара.
type CatalogInvalidator interface {
	InvalidateProduct(ctx context.Context, id string, categories ...domain.Category)
}
