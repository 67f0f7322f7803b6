package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Gunvolt24/storefront/internal/domain"
	"github.com/Gunvolt24/storefront/internal/ports"
	"github.com/Gunvolt24/storefront/pkg/validate"
)

// ProductPublisher — отправка изменений каталога в топик.
// Ключ сообщения — id товара: события одного товара попадают в одну партицию по порядку.
type ProductPublisher struct {
	pub       ports.EventPublisher
	validator ports.ProductValidator
	log       ports.Logger
}

func NewProductPublisher(pub ports.EventPublisher, validator ports.ProductValidator, log ports.Logger) *ProductPublisher {
	return &ProductPublisher{pub: pub, validator: validator, log: log}
}

// Upsert — валидирует и публикует товар.
func (p *ProductPublisher) Upsert(ctx context.Context, product *domain.Product) error {
	if err := p.validator.Validate(ctx, product); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return p.publish(ctx, product.ID, ProductEvent{Op: OpUpsert, Product: product})
}

// Delete — публикует удаление товара.
func (p *ProductPublisher) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: delete requires id", validate.ErrInvalidProduct)
	}
	return p.publish(ctx, id, ProductEvent{Op: OpDelete, ID: id})
}

func (p *ProductPublisher) publish(ctx context.Context, key string, ev ProductEvent) error {
	raw, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if err := p.pub.Publish(ctx, key, raw); err != nil {
		p.log.Errorf(ctx, "publish failed id=%s op=%s err=%v", key, ev.Op, err)
		return fmt.Errorf("publish event: %w", err)
	}
	return nil
}
