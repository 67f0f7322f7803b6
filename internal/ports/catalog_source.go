package ports

import (
	"context"

	"github.com/Gunvolt24/storefront/internal/domain"
)

// CatalogSource — удалённая таблица товаров (только чтение).
// Select возвращает срез страницы и точное число строк под фильтрами запроса.
type CatalogSource interface {
	Select(ctx context.Context, q domain.Query) (domain.ResultPage, error)

	// GetByID — (nil, nil), если товара нет.
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

// ProductRepository — запись в каталог (используется только потоком изменений).
type ProductRepository interface {
	Save(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}
