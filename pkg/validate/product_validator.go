package validate

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Gunvolt24/storefront/internal/domain"
	"github.com/Gunvolt24/storefront/internal/ports"
)

var _ ports.ProductValidator = (*ProductValidator)(nil)

// ErrInvalidProduct — базовая (sentinel) ошибка валидации товара.
var ErrInvalidProduct = errors.New("product validation failed")

// ProductValidator — правила карточки товара (те же, что в форме администратора).
type ProductValidator struct{}

func NewProductValidator() *ProductValidator { return &ProductValidator{} }

// Validate — возвращает ErrInvalidProduct с обёрнутой причиной при любой проблеме.
func (v *ProductValidator) Validate(_ context.Context, p *domain.Product) error {
	if p == nil {
		return fmt.Errorf("%w: товар не может быть nil", ErrInvalidProduct)
	}
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("%w: id обязателен", ErrInvalidProduct)
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: name обязателен", ErrInvalidProduct)
	}
	if !(p.Price > 0) {
		return fmt.Errorf("%w: price должен быть больше нуля", ErrInvalidProduct)
	}
	if err := v.validateTaxonomy(p); err != nil {
		return err
	}
	return v.validateSale(p)
}

// validateTaxonomy — категория, группа и подгруппа должны существовать в таблице.
func (v *ProductValidator) validateTaxonomy(p *domain.Product) error {
	def, ok := domain.LookupCategory(p.Category)
	if !ok {
		return fmt.Errorf("%w: неизвестная категория %q", ErrInvalidProduct, p.Category)
	}
	if p.Group == "" {
		return fmt.Errorf("%w: group обязателен", ErrInvalidProduct)
	}
	subs, ok := def.Subitems(p.Group)
	if !ok {
		return fmt.Errorf("%w: группа %q не входит в категорию %s", ErrInvalidProduct, p.Group, p.Category)
	}
	if p.Subgroup == "" {
		return fmt.Errorf("%w: subgroup обязателен", ErrInvalidProduct)
	}
	for _, s := range subs {
		if s == p.Subgroup {
			return nil
		}
	}
	return fmt.Errorf("%w: подгруппа %q не входит в группу %s", ErrInvalidProduct, p.Subgroup, p.Group)
}

func (v *ProductValidator) validateSale(p *domain.Product) error {
	if p.PriceBefore != nil && *p.PriceBefore <= 0 {
		return fmt.Errorf("%w: price_before должен быть больше нуля", ErrInvalidProduct)
	}
	if !p.OnSale {
		return nil
	}
	if p.PriceBefore == nil || *p.PriceBefore <= p.Price {
		return fmt.Errorf("%w: товар со скидкой требует price_before > price", ErrInvalidProduct)
	}
	return nil
}
