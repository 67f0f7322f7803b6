package postgres

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Gunvolt24/storefront/internal/domain"
)

// columns — белый список полей каталога; имена колонок не берутся из ввода.
var columns = map[domain.Field]string{
	domain.FieldID:        "id",
	domain.FieldCategory:  "category",
	domain.FieldGroup:     "product_group",
	domain.FieldSubgroup:  "subgroup",
	domain.FieldOnSale:    "on_sale",
	domain.FieldIsNew:     "is_new",
	domain.FieldCreatedAt: "created_at",
}

const selectColumns = `id, name, description, price::float8, category, product_group, subgroup,
	image, is_new, on_sale, price_before::float8, created_at`

func column(f domain.Field) (string, error) {
	c, ok := columns[f]
	if !ok {
		return "", fmt.Errorf("unsupported field %q", f)
	}
	return c, nil
}

// buildWhere — конъюнкция равенств из фильтров и исключения по id.
func buildWhere(q domain.Query) (string, []any, error) {
	var (
		conds []string
		args  []any
	)
	for _, f := range q.Filters {
		col, err := column(f.Field)
		if err != nil {
			return "", nil, err
		}
		args = append(args, f.Value)
		conds = append(conds, col+" = $"+strconv.Itoa(len(args)))
	}
	if q.ExcludeID != "" {
		args = append(args, q.ExcludeID)
		conds = append(conds, "id <> $"+strconv.Itoa(len(args)))
	}
	if len(conds) == 0 {
		return "", args, nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args, nil
}

// buildSelect — запрос страницы и запрос точного числа строк под тем же фильтром.
func buildSelect(q domain.Query) (page string, pageArgs []any, count string, countArgs []any, err error) {
	where, args, err := buildWhere(q)
	if err != nil {
		return "", nil, "", nil, err
	}
	count = "SELECT count(*) FROM products" + where

	order := "created_at DESC"
	if q.OrderBy.Field != "" {
		col, err := column(q.OrderBy.Field)
		if err != nil {
			return "", nil, "", nil, err
		}
		dir := "ASC"
		if q.OrderBy.Desc {
			dir = "DESC"
		}
		order = col + " " + dir
	}

	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(selectColumns)
	b.WriteString(" FROM products")
	b.WriteString(where)
	// id — стабильный порядок при одинаковом created_at
	b.WriteString(" ORDER BY " + order + ", id")

	pageArgs = append([]any(nil), args...)
	if q.Limit > 0 {
		pageArgs = append(pageArgs, q.Limit)
		b.WriteString(" LIMIT $" + strconv.Itoa(len(pageArgs)))
	}
	if q.Offset > 0 {
		pageArgs = append(pageArgs, q.Offset)
		b.WriteString(" OFFSET $" + strconv.Itoa(len(pageArgs)))
	}
	return b.String(), pageArgs, count, args, nil
}
