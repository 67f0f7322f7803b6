package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Gunvolt24/storefront/internal/domain"
	"github.com/Gunvolt24/storefront/internal/ports"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	_ ports.CatalogSource     = (*ProductRepository)(nil)
	_ ports.ProductRepository = (*ProductRepository)(nil)
)

// ProductRepository — таблица products на Postgres (pgxpool).
type ProductRepository struct {
	pool *pgxpool.Pool
}

func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

// Select — страница и точное число строк под фильтром.
// Оба запроса уходят одним батчем в одной read-only транзакции, чтобы счётчик совпадал со срезом.
func (r *ProductRepository) Select(ctx context.Context, q domain.Query) (domain.ResultPage, error) {
	pageSQL, pageArgs, countSQL, countArgs, err := buildSelect(q)
	if err != nil {
		return domain.ResultPage{}, err
	}

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly, IsoLevel: pgx.RepeatableRead})
	if err != nil {
		return domain.ResultPage{}, fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	batch := &pgx.Batch{}
	batch.Queue(countSQL, countArgs...)
	batch.Queue(pageSQL, pageArgs...)
	results := tx.SendBatch(ctx, batch)

	var total int
	if err := results.QueryRow().Scan(&total); err != nil {
		_ = results.Close()
		return domain.ResultPage{}, fmt.Errorf("count products: %w", err)
	}

	rows, err := results.Query()
	if err != nil {
		_ = results.Close()
		return domain.ResultPage{}, fmt.Errorf("select products: %w", err)
	}
	items, err := pgx.CollectRows(rows, scanProduct)
	if err != nil {
		_ = results.Close()
		return domain.ResultPage{}, fmt.Errorf("scan products: %w", err)
	}
	if err := results.Close(); err != nil {
		return domain.ResultPage{}, fmt.Errorf("close batch: %w", err)
	}
	if items == nil {
		items = []domain.Product{}
	}
	return domain.ResultPage{Items: items, Total: total}, nil
}

// GetByID — (nil, nil), если товара нет.
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+selectColumns+` FROM products WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	p, err := pgx.CollectExactlyOneRow(rows, scanProduct)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// Save — идемпотентный upsert по id.
func (r *ProductRepository) Save(ctx context.Context, p *domain.Product) error {
	if p == nil || p.ID == "" {
		return errors.New("product is empty or id is required")
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO products (
			id, name, description, price, category, product_group, subgroup,
			image, is_new, on_sale, price_before, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			price = EXCLUDED.price,
			category = EXCLUDED.category,
			product_group = EXCLUDED.product_group,
			subgroup = EXCLUDED.subgroup,
			image = EXCLUDED.image,
			is_new = EXCLUDED.is_new,
			on_sale = EXCLUDED.on_sale,
			price_before = EXCLUDED.price_before,
			created_at = EXCLUDED.created_at
	`,
		p.ID, p.Name, p.Description, p.Price, string(p.Category), p.Group, p.Subgroup,
		p.Image, p.IsNew, p.OnSale, p.PriceBefore, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert product: %w", err)
	}
	return nil
}

// Delete — удаление по id; отсутствие строки ошибкой не считается.
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

func scanProduct(row pgx.CollectableRow) (domain.Product, error) {
	var (
		p        domain.Product
		category string
	)
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &category, &p.Group, &p.Subgroup,
		&p.Image, &p.IsNew, &p.OnSale, &p.PriceBefore, &p.CreatedAt,
	)
	p.Category = domain.Category(category)
	return p, err
}
