package ports

import (
	"context"

	"github.com/Gunvolt24/storefront/internal/domain"
)

// ResultCache — кэш результатов выборок каталога по детерминированному ключу.
// Требования к реализации: потокобезопасность; возврат копий; без полузаписанных значений.
type ResultCache interface {
	// Get — (page, true) при попадании, (zero, false) при промахе.
	Get(ctx context.Context, key string) (domain.ResultPage, bool)

	// Set — сохранить/обновить результат.
	Set(ctx context.Context, key string, page domain.ResultPage) error

	// Delete — удалить конкретные ключи.
	Delete(ctx context.Context, keys ...string)

	// DeletePrefix — удалить все ключи с префиксом; возвращает число удалённых.
	DeletePrefix(ctx context.Context, prefix string) int

	// Clear — полная инвалидация.
	Clear(ctx context.Context)
}
