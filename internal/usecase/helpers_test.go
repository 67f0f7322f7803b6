package usecase_test

import (
	"context"
	"fmt"
	"time"

	"github.com/Gunvolt24/storefront/internal/domain"
)

type noopLogger struct{}

func (noopLogger) Infof(context.Context, string, ...any)  {}
func (noopLogger) Warnf(context.Context, string, ...any)  {}
func (noopLogger) Errorf(context.Context, string, ...any) {}

var baseTime = time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)

// products — n товаров категории; более поздние индексы новее.
func products(c domain.Category, n int) []domain.Product {
	out := make([]domain.Product, n)
	for i := range out {
		out[i] = domain.Product{
			ID:        fmt.Sprintf("%s-%02d", c, i),
			Name:      fmt.Sprintf("Producto %d", i),
			Price:     float64(10000 + i*1000),
			Category:  c,
			Group:     "Tratamiento",
			Subgroup:  "Serums",
			CreatedAt: baseTime.Add(time.Duration(i) * time.Hour),
		}
	}
	return out
}
