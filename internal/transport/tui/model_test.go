package tui

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Gunvolt24/storefront/internal/cache/memory"
	"github.com/Gunvolt24/storefront/internal/domain"
	"github.com/Gunvolt24/storefront/internal/usecase"
	"github.com/Gunvolt24/storefront/pkg/money"
)

type nopLogger struct{}

func (nopLogger) Infof(context.Context, string, ...any)  {}
func (nopLogger) Warnf(context.Context, string, ...any)  {}
func (nopLogger) Errorf(context.Context, string, ...any) {}

// memSource — каталог в памяти с фильтрами-равенствами и сортировкой по дате.
type memSource struct {
	mu    sync.Mutex
	rows  []domain.Product
	fail  error
	calls int
}

func (s *memSource) Select(_ context.Context, q domain.Query) (domain.ResultPage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.fail != nil {
		return domain.ResultPage{}, s.fail
	}
	var hit []domain.Product
	for _, p := range s.rows {
		if p.ID != q.ExcludeID && matches(p, q.Filters) {
			hit = append(hit, p)
		}
	}
	sort.SliceStable(hit, func(i, j int) bool { return hit[i].CreatedAt.After(hit[j].CreatedAt) })
	page := domain.ResultPage{Total: len(hit)}
	if q.Offset < len(hit) {
		end := min(q.Offset+q.Limit, len(hit))
		page.Items = append(page.Items, hit[q.Offset:end]...)
	}
	return page, nil
}

func (s *memSource) GetByID(_ context.Context, id string) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.rows {
		if s.rows[i].ID == id {
			p := s.rows[i]
			return &p, nil
		}
	}
	return nil, nil
}

func matches(p domain.Product, filters []domain.Filter) bool {
	for _, f := range filters {
		switch f.Field {
		case domain.FieldCategory:
			if string(p.Category) != f.Value {
				return false
			}
		case domain.FieldGroup:
			if p.Group != f.Value {
				return false
			}
		case domain.FieldSubgroup:
			if p.Subgroup != f.Value {
				return false
			}
		case domain.FieldOnSale:
			if p.OnSale != f.Value {
				return false
			}
		case domain.FieldIsNew:
			if p.IsNew != f.Value {
				return false
			}
		}
	}
	return true
}

type memKV struct {
	mu   sync.Mutex
	data map[string]string
}

func (m *memKV) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memKV) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *memKV) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// seed — 25 товаров skincare: первые 5 в группе Tratamiento/Serums, остальные в Limpieza.
func seed() []domain.Product {
	base := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	out := make([]domain.Product, 25)
	for i := range out {
		group, sub := "Limpieza", "Limpiadores"
		if i < 5 {
			group, sub = "Tratamiento", "Serums"
		}
		out[i] = domain.Product{
			ID:        fmt.Sprintf("sk-%02d", i),
			Name:      fmt.Sprintf("Producto %02d", i),
			Price:     float64(50000 + i*1000),
			Category:  domain.CategorySkincare,
			Group:     group,
			Subgroup:  sub,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}
	}
	return out
}

func newTestModel(t *testing.T) (Model, *memSource, *usecase.CartStore) {
	t.Helper()
	ctx := context.Background()
	src := &memSource{rows: seed()}
	svc := usecase.NewCatalogService(src, memory.NewResultCache(100, 0), nopLogger{},
		usecase.CatalogLimits{Latest: 8, OnSale: 8, Related: 4})
	cart := usecase.NewCartStore(ctx, &memKV{data: map[string]string{}}, usecase.DefaultCartKey, nopLogger{})
	fm := money.NewFormatter("es-CO")
	m := New(ctx, Deps{
		Catalog:  svc,
		Cart:     cart,
		Checkout: usecase.NewCheckout(usecase.CheckoutConfig{Phone: "573202507109", ShippingBase: 12000, FreeShippingFrom: 150000}, fm),
		Money:    fm,
		Log:      nopLogger{},
		PageSize: 12,
	})
	return m, src, cart
}

// send — Update и синхронное выполнение всех порождённых команд.
func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, cmd := m.Update(msg)
	m = next.(Model)
	for i := 0; cmd != nil && i < 10; i++ {
		out := cmd()
		if out == nil {
			return m
		}
		if _, ok := out.(tea.QuitMsg); ok {
			return m
		}
		next, cmd = m.Update(out)
		m = next.(Model)
	}
	return m
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
	keyRight = tea.KeyMsg{Type: tea.KeyRight}
	keyLeft  = tea.KeyMsg{Type: tea.KeyLeft}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
)

func selectSkincare(t *testing.T, m Model) Model {
	t.Helper()
	m = send(t, m, keyDown) // maquillaje -> skincare
	return send(t, m, keyEnter)
}

func TestInitLoadsHome(t *testing.T) {
	m, _, _ := newTestModel(t)
	msg := m.Init()()
	m = send(t, m, msg)
	if len(m.home.Latest) != 8 {
		t.Fatalf("want 8 latest products on home, got %d", len(m.home.Latest))
	}
	if m.home.Latest[0].ID != "sk-24" {
		t.Fatalf("latest must be newest first, got %s", m.home.Latest[0].ID)
	}
}

func TestSelectCategoryAndPaging(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = selectSkincare(t, m)

	if m.view.Facet.Category != domain.CategorySkincare {
		t.Fatalf("category not selected: %+v", m.view.Facet)
	}
	if p := m.view.Paging; p.Page != 1 || p.TotalCount != 25 || p.TotalPages != 3 {
		t.Fatalf("unexpected paging: %+v", p)
	}
	if len(m.view.Items) != 12 {
		t.Fatalf("want 12 items on first page, got %d", len(m.view.Items))
	}

	m = send(t, m, keyRight)
	m = send(t, m, keyRight)
	if m.view.Paging.Page != 3 || len(m.view.Items) != 1 {
		t.Fatalf("want last page with 1 item, got page=%d items=%d", m.view.Paging.Page, len(m.view.Items))
	}
	m = send(t, m, keyRight)
	if m.view.Paging.Page != 3 {
		t.Fatalf("next on last page must be a no-op, got %d", m.view.Paging.Page)
	}
	m = send(t, m, keyLeft)
	if m.view.Paging.Page != 2 {
		t.Fatalf("want page 2, got %d", m.view.Paging.Page)
	}
}

func TestGroupFilterAndBreadcrumbBack(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = selectSkincare(t, m)

	m = send(t, m, keyTab) // группы
	m = send(t, m, keyDown)
	m = send(t, m, keyDown) // Todos, Limpieza, Tratamiento
	m = send(t, m, keyEnter)

	if m.view.Facet.ActiveGroup != "Tratamiento" {
		t.Fatalf("group not applied: %+v", m.view.Facet)
	}
	if m.view.Paging.TotalCount != 5 || m.view.Paging.Page != 1 {
		t.Fatalf("unexpected paging after group filter: %+v", m.view.Paging)
	}
	if got := len(m.view.Breadcrumbs); got != 3 {
		t.Fatalf("want 3 breadcrumbs, got %d", got)
	}

	m = send(t, m, runes("b"))
	if m.view.Facet.ActiveGroup != domain.All || m.view.Paging.TotalCount != 25 {
		t.Fatalf("breadcrumb up must reset group: %+v", m.view)
	}

	m = send(t, m, runes("b"))
	if m.view.Facet.Category != "" || m.focus != paneCategories {
		t.Fatalf("breadcrumb from category must return home, got %+v", m.view.Facet)
	}
}

func TestSubitemIgnoredWithoutGroup(t *testing.T) {
	m, src, _ := newTestModel(t)
	m = selectSkincare(t, m)
	before := src.calls

	m = send(t, m, keyTab)
	m = send(t, m, keyTab) // подгруппы
	m = send(t, m, keyDown)
	m = send(t, m, keyEnter)
	if src.calls != before {
		t.Fatalf("subitem without group must not query the source")
	}
	if m.view.Facet.ActiveSubitem != domain.All {
		t.Fatalf("subitem must stay All, got %q", m.view.Facet.ActiveSubitem)
	}
}

func TestFetchFailureShowsError(t *testing.T) {
	m, src, _ := newTestModel(t)
	src.fail = errors.New("catalog down")
	m = selectSkincare(t, m)
	if m.view.Err == nil || !strings.Contains(m.status, "catalog down") {
		t.Fatalf("fetch error must surface in status, got %q", m.status)
	}
}

func TestStaleViewIgnored(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = selectSkincare(t, m)
	m = send(t, m, viewMsg{view: usecase.CatalogView{Stale: true}})
	if m.view.Facet.Category != domain.CategorySkincare {
		t.Fatalf("stale view must not replace the current one")
	}
}

func TestCartFromCatalog(t *testing.T) {
	m, _, cart := newTestModel(t)
	m = selectSkincare(t, m)

	m = send(t, m, keyTab)
	m = send(t, m, keyTab)
	m = send(t, m, keyTab) // товары
	m = send(t, m, keyEnter)
	m = send(t, m, keyEnter)

	items := cart.Items()
	if len(items) != 1 || items[0].ID != "sk-24" || items[0].Quantity != 2 {
		t.Fatalf("unexpected cart: %+v", items)
	}

	m = send(t, m, keyTab) // корзина
	m = send(t, m, runes("+"))
	if got := cart.Count(); got != 3 {
		t.Fatalf("want 3 after increment, got %d", got)
	}
	m = send(t, m, runes("-"))
	if got := cart.Count(); got != 2 {
		t.Fatalf("want 2 after decrement, got %d", got)
	}

	m = send(t, m, runes("e"))
	if !m.editing {
		t.Fatalf("edit mode expected")
	}
	m.qty.SetValue("")
	m = send(t, m, runes("7"))
	m = send(t, m, keyEnter)
	if got := cart.Count(); got != 7 || m.editing {
		t.Fatalf("want quantity 7 after edit, got %d (editing=%v)", got, m.editing)
	}

	m = send(t, m, runes("x"))
	if cart.Count() != 0 {
		t.Fatalf("item must be removed")
	}
	if !strings.Contains(m.View(), "Carrito (0)") {
		t.Fatalf("view must reflect empty cart")
	}
}

func TestCheckout(t *testing.T) {
	m, _, cart := newTestModel(t)

	m = send(t, m, runes("c"))
	if m.order != nil || !strings.Contains(m.status, usecase.ErrEmptyCart.Error()) {
		t.Fatalf("empty cart must not produce an order, status=%q", m.status)
	}

	ctx := context.Background()
	if err := cart.Add(ctx, domain.ProductRef{ID: "a", Name: "Serum", UnitPrice: 50000}, 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	m = send(t, m, runes("c"))
	if m.order == nil {
		t.Fatalf("order expected")
	}
	if m.order.Quote.Shipping != 12000 || m.order.Quote.Total != 62000 {
		t.Fatalf("unexpected quote: %+v", m.order.Quote)
	}
	if !strings.HasPrefix(m.order.Link, "https://wa.me/573202507109?text=") {
		t.Fatalf("unexpected link: %s", m.order.Link)
	}
	if !strings.Contains(m.View(), "wa.me") {
		t.Fatalf("view must show the order link")
	}

	m = send(t, m, runes("X"))
	if cart.Count() != 0 || m.order != nil {
		t.Fatalf("clear must empty the cart and drop the order")
	}
}

func TestQuit(t *testing.T) {
	m, _, _ := newTestModel(t)
	_, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatalf("quit command expected")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("want tea.QuitMsg")
	}
}
