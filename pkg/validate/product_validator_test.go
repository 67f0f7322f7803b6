package validate_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Gunvolt24/storefront/internal/domain"
	"github.com/Gunvolt24/storefront/pkg/validate"
)

func validProduct() *domain.Product {
	return &domain.Product{
		ID:        "p-1",
		Name:      "Sérum de niacinamida",
		Price:     45000,
		Category:  domain.CategorySkincare,
		Group:     "Tratamiento",
		Subgroup:  "Serums",
		CreatedAt: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func ptr(v float64) *float64 { return &v }

func TestProductValidator_Validate(t *testing.T) {
	v := validate.NewProductValidator()
	ctx := context.Background()

	t.Run("valid product", func(t *testing.T) {
		if err := v.Validate(ctx, validProduct()); err != nil {
			t.Fatalf("expected valid product, got: %v", err)
		}
	})

	t.Run("valid sale", func(t *testing.T) {
		p := validProduct()
		p.OnSale = true
		p.PriceBefore = ptr(60000)
		if err := v.Validate(ctx, p); err != nil {
			t.Fatalf("expected valid sale, got: %v", err)
		}
	})

	cases := []struct {
		name   string
		mutate func(p *domain.Product) *domain.Product
		msg    string
	}{
		{"nil product", func(*domain.Product) *domain.Product { return nil }, "nil"},
		{"missing id", func(p *domain.Product) *domain.Product { p.ID = " "; return p }, "id"},
		{"missing name", func(p *domain.Product) *domain.Product { p.Name = ""; return p }, "name"},
		{"zero price", func(p *domain.Product) *domain.Product { p.Price = 0; return p }, "price"},
		{"unknown category", func(p *domain.Product) *domain.Product { p.Category = "perfumes"; return p }, "категория"},
		{"missing group", func(p *domain.Product) *domain.Product { p.Group = ""; return p }, "group"},
		{"foreign group", func(p *domain.Product) *domain.Product { p.Group = "Ojos"; return p }, "Ojos"},
		{"missing subgroup", func(p *domain.Product) *domain.Product { p.Subgroup = ""; return p }, "subgroup"},
		{"foreign subgroup", func(p *domain.Product) *domain.Product { p.Subgroup = "Bases"; return p }, "Bases"},
		{"sale without before", func(p *domain.Product) *domain.Product { p.OnSale = true; return p }, "price_before"},
		{"sale not cheaper", func(p *domain.Product) *domain.Product {
			p.OnSale = true
			p.PriceBefore = ptr(p.Price)
			return p
		}, "price_before"},
		{"negative before", func(p *domain.Product) *domain.Product { p.PriceBefore = ptr(-1); return p }, "price_before"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := v.Validate(ctx, tc.mutate(validProduct()))
			if err == nil {
				t.Fatalf("expected error")
			}
			if !errors.Is(err, validate.ErrInvalidProduct) {
				t.Fatalf("want ErrInvalidProduct, got %v", err)
			}
			if !strings.Contains(err.Error(), tc.msg) {
				t.Fatalf("error %q must mention %q", err, tc.msg)
			}
		})
	}
}

func TestDecodeStrict(t *testing.T) {
	var p domain.Product
	if err := validate.DecodeStrict([]byte(`{"id":"x","sku":"nope"}`), &p); !errors.Is(err, validate.ErrInvalidProduct) {
		t.Fatalf("unknown field must be rejected, got %v", err)
	}
	if err := validate.DecodeStrict([]byte(`{"id":"x"} {"id":"y"}`), &p); !errors.Is(err, validate.ErrInvalidProduct) {
		t.Fatalf("trailing data must be rejected, got %v", err)
	}
	if err := validate.DecodeStrict([]byte(`{"id":"x"}`), &p); err != nil || p.ID != "x" {
		t.Fatalf("plain object must decode, err=%v", err)
	}
}
