package postgres

import (
	"strings"
	"testing"

	"github.com/Gunvolt24/storefront/internal/domain"
	"github.com/google/go-cmp/cmp"
)

func TestBuildSelect_FacetPage(t *testing.T) {
	f := domain.FacetState{Category: domain.CategorySkincare, ActiveGroup: "Tratamiento", ActiveSubitem: "Serums"}
	q := domain.Query{Filters: f.Filters(), OrderBy: domain.NewestFirst, Offset: 24, Limit: 12}

	page, pageArgs, count, countArgs, err := buildSelect(q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantWhere := " WHERE category = $1 AND product_group = $2 AND subgroup = $3"
	if count != "SELECT count(*) FROM products"+wantWhere {
		t.Fatalf("unexpected count sql: %s", count)
	}
	if !strings.Contains(page, wantWhere+" ORDER BY created_at DESC, id LIMIT $4 OFFSET $5") {
		t.Fatalf("unexpected page sql: %s", page)
	}
	if diff := cmp.Diff([]any{"skincare", "Tratamiento", "Serums"}, countArgs); diff != "" {
		t.Fatalf("count args mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]any{"skincare", "Tratamiento", "Serums", 12, 24}, pageArgs); diff != "" {
		t.Fatalf("page args mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildSelect_RelatedAndBuckets(t *testing.T) {
	q := domain.Query{
		Filters:   []domain.Filter{{Field: domain.FieldCategory, Value: "capilar"}},
		ExcludeID: "p-1",
		OrderBy:   domain.NewestFirst,
		Limit:     8,
	}
	page, args, _, _, err := buildSelect(q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(page, "WHERE category = $1 AND id <> $2 ORDER BY created_at DESC, id LIMIT $3") {
		t.Fatalf("unexpected sql: %s", page)
	}
	if strings.Contains(page, "OFFSET") || len(args) != 3 {
		t.Fatalf("zero offset must be omitted: %s %v", page, args)
	}

	page, args, count, _, err := buildSelect(domain.Query{OrderBy: domain.NewestFirst})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(page, "WHERE") || strings.Contains(page, "LIMIT") || len(args) != 0 {
		t.Fatalf("unfiltered query must have no WHERE/LIMIT: %s", page)
	}
	if count != "SELECT count(*) FROM products" {
		t.Fatalf("unexpected count sql: %s", count)
	}
}

func TestBuildSelect_RejectsUnknownField(t *testing.T) {
	_, _, _, _, err := buildSelect(domain.Query{Filters: []domain.Filter{{Field: "name; DROP TABLE products", Value: 1}}})
	if err == nil {
		t.Fatalf("unknown field must be rejected")
	}
	_, _, _, _, err = buildSelect(domain.Query{OrderBy: domain.OrderBy{Field: "price"}})
	if err == nil {
		t.Fatalf("unknown order field must be rejected")
	}
}
