//go:build integration

package testutil

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/Gunvolt24/storefront/internal/domain"
)

func randHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func UniqSuffix() string { return randHex(6) }

// MakeProduct — валидный товар skincare/Tratamiento/Serums с уникальным id.
func MakeProduct(opts ...func(*domain.Product)) domain.Product {
	p := domain.Product{
		ID:          "prd-" + UniqSuffix(),
		Name:        "Sérum " + UniqSuffix(),
		Description: "Sérum de prueba",
		Price:       45000,
		Category:    domain.CategorySkincare,
		Group:       "Tratamiento",
		Subgroup:    "Serums",
		Image:       "https://cdn.example.com/p.jpg",
		IsNew:       true,
		CreatedAt:   time.Now().UTC().Truncate(time.Microsecond),
	}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// InCategory — товар другой категории/группы/подгруппы.
func InCategory(c domain.Category, group, subgroup string) func(*domain.Product) {
	return func(p *domain.Product) {
		p.Category, p.Group, p.Subgroup = c, group, subgroup
	}
}

// CreatedAt — фиксированное время создания (для проверок порядка).
func CreatedAt(t time.Time) func(*domain.Product) {
	return func(p *domain.Product) { p.CreatedAt = t.UTC().Truncate(time.Microsecond) }
}

// OnSale — товар со скидкой.
func OnSale(before float64) func(*domain.Product) {
	return func(p *domain.Product) {
		p.OnSale = true
		p.PriceBefore = &before
	}
}
