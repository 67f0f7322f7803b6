package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/Gunvolt24/storefront/internal/domain"
	"github.com/Gunvolt24/storefront/internal/ports"
	"github.com/Gunvolt24/storefront/pkg/validate"
)

// Операции потока изменений каталога.
const (
	OpUpsert = "upsert"
	OpDelete = "delete"
)

// ProductEvent — сообщение топика изменений каталога.
type ProductEvent struct {
	Op      string          `json:"op"`
	Product *domain.Product `json:"product,omitempty"`
	ID      string          `json:"id,omitempty"`
}

// ProductIngestService — применение изменений каталога из Kafka:
// запись в хранилище и сброс затронутых выборок в кэше.
type ProductIngestService struct {
	repo        ports.ProductRepository
	invalidator ports.CatalogInvalidator
	validator   ports.ProductValidator
	log         ports.Logger
	now         func() time.Time
}

func NewProductIngestService(
	repo ports.ProductRepository,
	invalidator ports.CatalogInvalidator,
	validator ports.ProductValidator,
	log ports.Logger,
) *ProductIngestService {
	return &ProductIngestService{
		repo:        repo,
		invalidator: invalidator,
		validator:   validator,
		log:         log,
		now:         time.Now,
	}
}

// HandleMessage — обработка сырого события.
// Шаги:
//  1. строгий парсинг JSON (DisallowUnknownFields, без хвоста);
//  2. доменная валидация (validate.ErrInvalidProduct — сообщение пропускается навсегда);
//  3. upsert/delete в хранилище (ошибка — временная, сообщение будет повторено);
//  4. инвалидация кэша по старой и новой категории.
func (s *ProductIngestService) HandleMessage(ctx context.Context, raw []byte) error {
	var ev ProductEvent
	if err := validate.DecodeStrict(raw, &ev); err != nil {
		s.log.Warnf(ctx, "catalog event rejected err=%v", err)
		return err
	}

	switch ev.Op {
	case OpUpsert:
		return s.upsert(ctx, ev.Product)
	case OpDelete:
		return s.delete(ctx, ev.ID)
	default:
		s.log.Warnf(ctx, "catalog event rejected: unknown op %q", ev.Op)
		return fmt.Errorf("%w: unknown op %q", validate.ErrInvalidProduct, ev.Op)
	}
}

func (s *ProductIngestService) upsert(ctx context.Context, product *domain.Product) error {
	if err := s.validator.Validate(ctx, product); err != nil {
		s.log.Warnf(ctx, "validation failed err=%v", err)
		return fmt.Errorf("validation failed: %w", err)
	}
	if product.CreatedAt.IsZero() {
		product.CreatedAt = s.now().UTC()
	}

	previous, err := s.repo.GetByID(ctx, product.ID)
	if err != nil {
		s.log.Errorf(ctx, "repo.GetByID failed id=%s err=%v", product.ID, err)
		return fmt.Errorf("load previous product: %w", err)
	}
	if err := s.repo.Save(ctx, product); err != nil {
		s.log.Errorf(ctx, "repo.Save failed id=%s err=%v", product.ID, err)
		return fmt.Errorf("failed to save product: %w", err)
	}

	categories := []domain.Category{product.Category}
	if previous != nil {
		categories = append(categories, previous.Category)
	}
	s.invalidator.InvalidateProduct(ctx, product.ID, categories...)
	s.log.Infof(ctx, "product saved id=%s category=%s", product.ID, product.Category)
	return nil
}

func (s *ProductIngestService) delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: delete requires id", validate.ErrInvalidProduct)
	}
	previous, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.log.Errorf(ctx, "repo.GetByID failed id=%s err=%v", id, err)
		return fmt.Errorf("load product: %w", err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		s.log.Errorf(ctx, "repo.Delete failed id=%s err=%v", id, err)
		return fmt.Errorf("failed to delete product: %w", err)
	}

	var categories []domain.Category
	if previous != nil {
		categories = append(categories, previous.Category)
	}
	s.invalidator.InvalidateProduct(ctx, id, categories...)
	s.log.Infof(ctx, "product deleted id=%s", id)
	return nil
}
